package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// PortMapping is one published port of a container, as listed by the runtime.
type PortMapping struct {
	HostIP        string `json:"host_ip,omitempty"`
	HostPortStart int    `json:"host_port_start"`
	HostPortEnd   int    `json:"host_port_end"`
	ContainerPort string `json:"container_port"`
	Proto         string `json:"proto"`
}

// Contains reports whether port falls inside the published host range.
func (m PortMapping) Contains(port int) bool {
	return port >= m.HostPortStart && port <= m.HostPortEnd
}

func (m PortMapping) String() string {
	host := strconv.Itoa(m.HostPortStart)
	if m.HostPortEnd != m.HostPortStart {
		host = fmt.Sprintf("%d-%d", m.HostPortStart, m.HostPortEnd)
	}
	if m.HostIP != "" {
		host = m.HostIP + ":" + host
	}
	return fmt.Sprintf("%s->%s/%s", host, m.ContainerPort, m.Proto)
}

// ParsePort validates a port argument. Only decimal digits are accepted.
func ParsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("port is required")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid port %q: must be numeric", s)
		}
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < MinPort || port > MaxPort {
		return 0, fmt.Errorf("invalid port %q: must be between %d and %d", s, MinPort, MaxPort)
	}
	return port, nil
}
