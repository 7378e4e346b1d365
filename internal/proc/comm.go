package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CommandName returns the short command name of pid, or "" if it cannot be
// determined. procfs is consulted first, then ps.
func CommandName(pid int) string {
	data, err := os.ReadFile(filepath.Join(procPath, strconv.Itoa(pid), "comm"))
	if err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			return name
		}
	}

	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "comm=")
	if err != nil {
		return ""
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return ""
	}
	// macOS and the BSDs print the full executable path
	return filepath.Base(name)
}
