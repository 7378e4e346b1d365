package model

import "fmt"

type Runtime string

const (
	RuntimeDocker Runtime = "docker"
	RuntimePodman Runtime = "podman"
)

// Runtimes lists the supported container runtimes in default probe order.
var Runtimes = []Runtime{RuntimeDocker, RuntimePodman}

func ParseRuntime(s string) (Runtime, error) {
	switch Runtime(s) {
	case RuntimeDocker, RuntimePodman:
		return Runtime(s), nil
	}
	return "", fmt.Errorf("unsupported container runtime %q", s)
}
