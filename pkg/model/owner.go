package model

// ProcessOwner is an OS process bound to the queried port.
type ProcessOwner struct {
	PID     int    `json:"pid"`
	Command string `json:"command,omitempty"`
	User    string `json:"user,omitempty"`

	// Probe names the strategy that reported this pid
	Probe string `json:"probe"`

	// Container is a runtime hint read from the process cgroup ("docker", "podman", ...)
	Container string `json:"container,omitempty"`
}

// ContainerOwner is a container publishing the queried port.
type ContainerOwner struct {
	ID      string  `json:"id"`
	Runtime Runtime `json:"runtime"`

	// Descriptive fields, filled from the runtime listing in normal mode
	Name   string        `json:"name,omitempty"`
	Image  string        `json:"image,omitempty"`
	Status string        `json:"status,omitempty"`
	Ports  []PortMapping `json:"ports,omitempty"`
}
