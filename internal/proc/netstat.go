package proc

import (
	"strconv"
	"strings"

	"github.com/pranshuparmar/portwho/internal/logging"
)

// NetstatPIDs scans `netstat -tlnp` for LISTEN rows on port and returns the
// pid half of each "pid/program" token.
func NetstatPIDs(port int) []string {
	out, err := Run("netstat", "-tlnp")
	if err != nil {
		logging.Debug("netstat failed", "err", err)
		return nil
	}
	return parseNetstatOutput(string(out), port)
}

// parseNetstatOutput handles rows like
//
//	tcp   0   0 0.0.0.0:8080   0.0.0.0:*   LISTEN   4321/webserver
//
// Rows whose owner column is "-" (no permission) yield nothing.
func parseNetstatOutput(output string, port int) []string {
	suffix := ":" + strconv.Itoa(port)

	var pids []string
	for line := range strings.Lines(output) {
		fields := strings.Fields(line)
		if len(fields) < 7 {
			continue
		}

		stateIdx := -1
		for i, f := range fields {
			if f == "LISTEN" {
				stateIdx = i
				break
			}
		}
		if stateIdx == -1 || stateIdx+1 >= len(fields) {
			continue
		}

		if !strings.HasSuffix(fields[3], suffix) {
			continue
		}

		owner := fields[stateIdx+1]
		pid, _, ok := strings.Cut(owner, "/")
		if !ok || pid == "" {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
