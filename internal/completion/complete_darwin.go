//go:build darwin

package completion

import (
	"strings"

	"github.com/pranshuparmar/portwho/internal/proc"
)

// getListeningPorts returns a list of all listening TCP ports
func getListeningPorts() []string {
	out, err := proc.Run("lsof", "-i", "-P", "-n", "-s", "TCP:LISTEN")
	if err != nil {
		return nil
	}
	return parseLsofListing(string(out))
}

func parseLsofListing(output string) []string {
	var ports []int
	for _, line := range strings.Split(output, "\n") {
		// Skip header
		if strings.HasPrefix(line, "COMMAND") {
			continue
		}
		// Only process lines that are actually TCP LISTEN
		// (the -s TCP:LISTEN filter doesn't exclude UDP lines)
		if !strings.Contains(line, "(LISTEN)") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		// The NAME field (9th) contains the address:port
		ports = append(ports, portOf(fields[8]))
	}

	return uniqueSortedInts(ports)
}
