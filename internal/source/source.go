// Package source tells whether a process that owns a port belongs to a
// container runtime, either because it runs inside a container or because it
// is the runtime's port forwarder.
package source

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var procPath = "/proc"

// proxies maps runtime port-forwarding helpers to their runtime.
var proxies = map[string]string{
	"docker-proxy": "docker",
	"rootlessport": "podman",
	"slirp4netns":  "podman",
	"pasta":        "podman",
	"conmon":       "podman",
	"rootlesskit":  "docker",
}

// ContainerOf returns the runtime name behind pid, or "" if the process is a
// plain host process.
func ContainerOf(pid int, command string) string {
	if rt, ok := proxies[command]; ok {
		return rt
	}
	return detectContainer(pid)
}

func detectContainer(pid int) string {
	data, err := os.ReadFile(filepath.Join(procPath, strconv.Itoa(pid), "cgroup"))
	if err != nil {
		return ""
	}
	return classifyCgroup(string(data))
}

// classifyCgroup checks more specific markers first: kubernetes pods often
// also mention docker or containerd.
func classifyCgroup(content string) string {
	switch {
	case strings.Contains(content, "kubepods"):
		return "kubernetes"
	case strings.Contains(content, "libpod"):
		return "podman"
	case strings.Contains(content, "/docker/"), strings.Contains(content, "docker-"):
		return "docker"
	case strings.Contains(content, "colima"):
		return "colima"
	case strings.Contains(content, "containerd"):
		return "containerd"
	}
	return ""
}
