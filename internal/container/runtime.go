// Package container adapts the docker and podman CLIs. Every call is a
// read-only `ps` query filtered by published port.
package container

import (
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/internal/logging"
	"github.com/pranshuparmar/portwho/internal/proc"
	"github.com/pranshuparmar/portwho/pkg/model"
)

const listFormat = "{{.ID}}\t{{.Names}}\t{{.Image}}\t{{.Status}}\t{{.Ports}}"

// Runtime is one container CLI.
type Runtime struct {
	Name   model.Runtime
	Binary string
}

// New returns the adapter for rt, invoking the binary of the same name.
func New(rt model.Runtime) *Runtime {
	return &Runtime{Name: rt, Binary: string(rt)}
}

func (r *Runtime) filter(port int) string {
	return "publish=" + strconv.Itoa(port)
}

// IDs lists the ids of containers publishing port. A missing binary or an
// unreachable daemon yields nil.
func (r *Runtime) IDs(port int) []string {
	out, err := proc.Run(r.Binary, "ps", "--filter", r.filter(port), "--format", "{{.ID}}")
	if err != nil {
		logging.Debug("container runtime unavailable", "runtime", r.Name, "err", err)
		return nil
	}

	var ids []string
	for line := range strings.Lines(string(out)) {
		if id := strings.TrimSpace(line); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// List returns the descriptive listing of containers publishing port.
// Only mappings that cover port are kept in Ports.
func (r *Runtime) List(port int) []model.ContainerOwner {
	out, err := proc.Run(r.Binary, "ps", "--filter", r.filter(port), "--format", listFormat)
	if err != nil {
		logging.Debug("container listing failed", "runtime", r.Name, "err", err)
		return nil
	}
	return parseListing(string(out), r.Name, port)
}

// ListCommand is the shell command a user runs to see the same listing.
func (r *Runtime) ListCommand(port int) string {
	return r.Binary + " ps --filter " + r.filter(port)
}

func parseListing(output string, rt model.Runtime, port int) []model.ContainerOwner {
	var owners []model.ContainerOwner
	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		for len(cols) < 5 {
			cols = append(cols, "")
		}

		var ports []model.PortMapping
		for _, m := range ParsePorts(cols[4]) {
			if m.Contains(port) {
				ports = append(ports, m)
			}
		}

		owners = append(owners, model.ContainerOwner{
			ID:      strings.TrimSpace(cols[0]),
			Runtime: rt,
			Name:    strings.TrimSpace(cols[1]),
			Image:   strings.TrimSpace(cols[2]),
			Status:  strings.TrimSpace(cols[3]),
			Ports:   ports,
		})
	}
	return owners
}
