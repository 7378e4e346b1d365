package model

// OutputMode selects what the run prints. It is fixed for the lifetime of a run.
type OutputMode int

const (
	ModeNormal OutputMode = iota
	// ModePidOnly prints a bare pid or fails
	ModePidOnly
	// ModeContainerOnly prints a bare container id or fails
	ModeContainerOnly
)

func (m OutputMode) String() string {
	switch m {
	case ModePidOnly:
		return "pid"
	case ModeContainerOnly:
		return "container"
	default:
		return "normal"
	}
}

// Restricted reports whether the mode is one of the scripting modes.
func (m OutputMode) Restricted() bool {
	return m == ModePidOnly || m == ModeContainerOnly
}
