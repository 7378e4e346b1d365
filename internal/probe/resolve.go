package probe

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/internal/logging"
	"github.com/pranshuparmar/portwho/pkg/model"
)

// outcome is what a chain reports back to the resolver.
type outcome int

const (
	// inconclusive: no probe of the chain found an owner
	inconclusive outcome = iota
	// found: a probe found owners; the rest of the chain was skipped
	found
	// settled: restricted mode has its answer; nothing else needs to run
	settled
)

// Resolver holds the two probe chains and the enrichment hooks.
type Resolver struct {
	Processes  []ProcessProbe
	Containers []ContainerProbe

	// CommandName, UserName and ContainerHint enrich process owners in
	// normal mode. Any may be nil.
	CommandName   func(pid int) string
	UserName      func(pid int) string
	ContainerHint func(pid int, command string) string

	// SocketVisible reports whether the kernel lists a socket on the port.
	// Used only to explain an empty normal-mode result. May be nil.
	SocketVisible func(port int) bool

	Logger *slog.Logger
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.WithComponent("probe")
}

// Resolve runs the chains for port and returns the aggregated state.
// PidOnly skips the container chain and ContainerOnly skips the process
// chain, since neither could change their output.
func (r *Resolver) Resolve(port int, mode model.OutputMode) *State {
	state := NewState(port, mode)

	if mode != model.ModeContainerOnly {
		if r.runProcesses(state) == settled {
			return state
		}
	}

	if mode != model.ModePidOnly {
		if r.runContainers(state) == settled {
			return state
		}
	}

	if mode == model.ModeNormal && !state.FoundProcess && r.SocketVisible != nil {
		state.HiddenSocket = r.SocketVisible(port)
	}

	return state
}

func (r *Resolver) runProcesses(state *State) outcome {
	log := r.logger()

	for _, p := range r.Processes {
		tokens := p.Probe(state.Port)
		log.Debug("process probe ran", "probe", p.Name(), "port", state.Port, "tokens", len(tokens))

		for _, tok := range tokens {
			pid, ok := ParsePID(tok)
			if !ok {
				log.Debug("rejected pid token", "probe", p.Name(), "token", tok)
				continue
			}

			if state.Mode == model.ModePidOnly {
				state.AddProcess(model.ProcessOwner{PID: pid, Probe: p.Name()})
				return settled
			}

			if state.seenPIDs[pid] {
				continue
			}
			state.AddProcess(r.enrich(pid, p.Name()))
		}

		if state.FoundProcess {
			return found
		}
		log.Debug("process probe inconclusive", "probe", p.Name())
	}
	return inconclusive
}

func (r *Resolver) enrich(pid int, probeName string) model.ProcessOwner {
	owner := model.ProcessOwner{PID: pid, Probe: probeName}
	if r.CommandName != nil {
		owner.Command = r.CommandName(pid)
	}
	if r.UserName != nil {
		owner.User = r.UserName(pid)
	}
	if r.ContainerHint != nil {
		owner.Container = r.ContainerHint(pid, owner.Command)
	}
	return owner
}

func (r *Resolver) runContainers(state *State) outcome {
	log := r.logger()

	for _, c := range r.Containers {
		ids := c.Probe(state.Port)
		log.Debug("container probe ran", "runtime", c.Runtime(), "port", state.Port, "ids", len(ids))

		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			state.AddContainer(model.ContainerOwner{ID: id, Runtime: c.Runtime()})
			if state.Mode == model.ModeContainerOnly {
				return settled
			}
		}

		if state.FoundContainer {
			if state.Mode == model.ModeNormal {
				describe(state, c.Describe(state.Port))
			}
			return found
		}
		log.Debug("container probe inconclusive", "runtime", c.Runtime())
	}
	return inconclusive
}

// describe merges listing details into the recorded containers. Runtimes may
// print ids of different lengths in the two listings, so a prefix match is used.
func describe(state *State, listing []model.ContainerOwner) {
	for i := range state.Containers {
		rec := &state.Containers[i]
		for _, d := range listing {
			if d.ID == "" || !(strings.HasPrefix(d.ID, rec.ID) || strings.HasPrefix(rec.ID, d.ID)) {
				continue
			}
			rec.Name = d.Name
			rec.Image = d.Image
			rec.Status = d.Status
			rec.Ports = d.Ports
			break
		}
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
