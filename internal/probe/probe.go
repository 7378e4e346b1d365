// Package probe runs the port-to-owner resolution pipeline: an ordered chain of
// process probes and an ordered chain of container-runtime probes, each
// stopping at the first strategy that reports an owner.
package probe

import (
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// ProcessProbe is one strategy for finding the processes bound to a port.
// It returns raw pid tokens as the underlying tool printed them; nil means
// inconclusive. Probes never fail.
type ProcessProbe interface {
	Name() string
	Probe(port int) []string
}

// ContainerProbe is one container runtime. Probe returns container ids;
// Describe returns the descriptive listing used for normal-mode output.
type ContainerProbe interface {
	Runtime() model.Runtime
	Probe(port int) []string
	Describe(port int) []model.ContainerOwner
}

type processFunc struct {
	name string
	fn   func(port int) []string
}

func (p processFunc) Name() string            { return p.name }
func (p processFunc) Probe(port int) []string { return p.fn(port) }

// ProcessFunc adapts fn to a ProcessProbe.
func ProcessFunc(name string, fn func(port int) []string) ProcessProbe {
	return processFunc{name: name, fn: fn}
}

type containerFunc struct {
	runtime  model.Runtime
	ids      func(port int) []string
	describe func(port int) []model.ContainerOwner
}

func (c containerFunc) Runtime() model.Runtime   { return c.runtime }
func (c containerFunc) Probe(port int) []string { return c.ids(port) }

func (c containerFunc) Describe(port int) []model.ContainerOwner {
	if c.describe == nil {
		return nil
	}
	return c.describe(port)
}

// ContainerFunc adapts a pair of functions to a ContainerProbe. describe may be nil.
func ContainerFunc(rt model.Runtime, ids func(port int) []string, describe func(port int) []model.ContainerOwner) ContainerProbe {
	return containerFunc{runtime: rt, ids: ids, describe: describe}
}

// ParsePID validates a pid token. Non-numeric tokens and 0 are rejected.
func ParsePID(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	pid, err := strconv.Atoi(token)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Process probe names, in chain order.
const (
	Procfs  = "procfs"
	Lsof    = "lsof"
	Netstat = "netstat"
)

// ProcessOrder is the fixed process chain order: cheapest and most precise first.
var ProcessOrder = []string{Procfs, Lsof, Netstat}
