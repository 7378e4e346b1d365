package probe

import "github.com/pranshuparmar/portwho/pkg/model"

// Exit codes
const (
	ExitOK       = 0
	ExitNotFound = 1 // restricted mode found nothing
)

// State accumulates the owners found during one run.
type State struct {
	Port int              `json:"port"`
	Mode model.OutputMode `json:"-"`

	FoundProcess   bool `json:"found_process"`
	FoundContainer bool `json:"found_container"`

	Processes  []model.ProcessOwner   `json:"processes"`
	Containers []model.ContainerOwner `json:"containers"`

	// HiddenSocket is set when the kernel lists a socket on the port but no
	// probe could name its owner, usually a permission problem.
	HiddenSocket bool `json:"hidden_socket,omitempty"`

	seenPIDs       map[int]bool
	seenContainers map[string]bool
}

// NewState returns an empty state for port in mode.
func NewState(port int, mode model.OutputMode) *State {
	return &State{
		Port:           port,
		Mode:           mode,
		Processes:      []model.ProcessOwner{},
		Containers:     []model.ContainerOwner{},
		seenPIDs:       make(map[int]bool),
		seenContainers: make(map[string]bool),
	}
}

// AddProcess records p unless its pid was already seen.
func (s *State) AddProcess(p model.ProcessOwner) bool {
	if p.PID <= 0 || s.seenPIDs[p.PID] {
		return false
	}
	s.seenPIDs[p.PID] = true
	s.Processes = append(s.Processes, p)
	s.FoundProcess = true
	return true
}

// AddContainer records c unless its id was already seen.
func (s *State) AddContainer(c model.ContainerOwner) bool {
	if c.ID == "" || s.seenContainers[c.ID] {
		return false
	}
	s.seenContainers[c.ID] = true
	s.Containers = append(s.Containers, c)
	s.FoundContainer = true
	return true
}

// ExitCode is 0 in normal mode, and in restricted modes 0 only if the
// requested category has an owner.
func (s *State) ExitCode() int {
	switch s.Mode {
	case model.ModePidOnly:
		if !s.FoundProcess {
			return ExitNotFound
		}
	case model.ModeContainerOnly:
		if !s.FoundContainer {
			return ExitNotFound
		}
	}
	return ExitOK
}

// Bare returns the single identifier printed in restricted mode.
func (s *State) Bare() (string, bool) {
	switch s.Mode {
	case model.ModePidOnly:
		if len(s.Processes) > 0 {
			return itoa(s.Processes[0].PID), true
		}
	case model.ModeContainerOnly:
		if len(s.Containers) > 0 {
			return s.Containers[0].ID, true
		}
	}
	return "", false
}
