//go:build linux

package completion

import (
	"os"
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/internal/proc"
)

var procNetTCP = []string{"/proc/net/tcp", "/proc/net/tcp6"}

// getListeningPorts returns a list of all listening TCP ports
func getListeningPorts() []string {
	// Try ss first (faster)
	out, err := proc.Run("ss", "-tlnH")
	if err == nil {
		return parseSSOutput(string(out))
	}

	// Fallback to reading /proc/net/tcp
	return getListeningPortsProc()
}

// parseSSOutput parses ss -tlnH output
func parseSSOutput(output string) []string {
	var ports []int
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		// Local address is in the 4th field (index 3)
		ports = append(ports, portOf(fields[3]))
	}
	return uniqueSortedInts(ports)
}

// getListeningPortsProc reads from /proc/net/tcp
func getListeningPortsProc() []string {
	var ports []int
	for _, path := range procNetTCP {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			fields := strings.Fields(line)
			if len(fields) < 4 {
				continue
			}
			// Skip header
			if fields[0] == "sl" {
				continue
			}
			// Check if state is LISTEN (0A)
			if fields[3] != "0A" {
				continue
			}
			// Local address is in field 1, format: IP:PORT (hex)
			addr := fields[1]
			if idx := strings.LastIndex(addr, ":"); idx != -1 {
				port64, err := strconv.ParseInt(addr[idx+1:], 16, 32)
				if err == nil && port64 > 0 {
					ports = append(ports, int(port64))
				}
			}
		}
	}

	return uniqueSortedInts(ports)
}
