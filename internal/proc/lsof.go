package proc

import (
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/internal/logging"
)

// LsofPIDs asks lsof for the processes with a socket on port.
// With -t lsof prints one pid per line and nothing else.
func LsofPIDs(port int) []string {
	out, err := Run("lsof", "-n", "-P", "-t", "-i", ":"+strconv.Itoa(port), "-sTCP:LISTEN")
	if err != nil {
		// lsof exits 1 when nothing matches, so this is the usual "no result" path
		logging.Debug("lsof returned no result", "port", port, "err", err)
		return nil
	}
	return parseLsofOutput(string(out))
}

func parseLsofOutput(output string) []string {
	var pids []string
	for line := range strings.Lines(output) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pids = append(pids, line)
	}
	return pids
}
