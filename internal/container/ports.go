package container

import (
	"strings"

	"github.com/docker/go-connections/nat"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// ParsePorts parses the Ports column of `ps` output, e.g.
//
//	0.0.0.0:5432->5432/tcp, [::]:8000-8010->8000-8010/tcp, 6379/tcp
//
// Entries without a host side (exposed but not published) are skipped.
func ParsePorts(column string) []model.PortMapping {
	var mappings []model.PortMapping
	for _, entry := range strings.Split(column, ",") {
		entry = strings.TrimSpace(entry)
		host, ctr, ok := strings.Cut(entry, "->")
		if !ok {
			continue
		}

		ip := ""
		hostPorts := host
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			ip = strings.Trim(host[:idx], "[]")
			hostPorts = host[idx+1:]
		}

		start, end, err := nat.ParsePortRangeToInt(hostPorts)
		if err != nil || start == 0 {
			continue
		}

		proto, ctrPort := nat.SplitProtoPort(ctr)
		if ctrPort == "" {
			continue
		}

		mappings = append(mappings, model.PortMapping{
			HostIP:        ip,
			HostPortStart: start,
			HostPortEnd:   end,
			ContainerPort: ctrPort,
			Proto:         proto,
		})
	}
	return mappings
}
