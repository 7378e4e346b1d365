//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pranshuparmar/portwho/internal/logging"
)

// 0A = LISTEN
const stateListen = "0A"

// listeningInodes returns the socket inodes of LISTEN rows in /proc/net/tcp{,6}
// whose local port equals port.
func listeningInodes(port int) map[string]bool {
	inodes := make(map[string]bool)
	targetHex := fmt.Sprintf("%04X", port)

	parse := func(path string) {
		f, err := os.Open(path)
		if err != nil {
			logging.Debug("socket table unreadable", "path", path, "err", err)
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Scan() // skip header

		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) < 10 {
				continue
			}

			local := fields[1]
			state := fields[3]
			inode := fields[9]

			if state != stateListen || inode == "0" {
				continue
			}

			idx := strings.LastIndex(local, ":")
			if idx == -1 || !strings.EqualFold(local[idx+1:], targetHex) {
				continue
			}
			inodes[inode] = true
		}
	}

	parse(filepath.Join(procPath, "net", "tcp"))
	parse(filepath.Join(procPath, "net", "tcp6"))

	return inodes
}

// SocketPIDs finds the processes holding a descriptor on a listening socket
// for port. It returns the pid directory names as found under procfs.
func SocketPIDs(port int) []string {
	inodes := listeningInodes(port)
	if len(inodes) == 0 {
		return nil
	}

	entries, err := os.ReadDir(procPath)
	if err != nil {
		return nil
	}

	var pids []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if !isDigits(name) || seen[name] {
			continue
		}

		fdDir := filepath.Join(procPath, name, "fd")
		fds, err := os.ReadDir(fdDir)
		if err != nil {
			continue
		}

		for _, fd := range fds {
			link, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
			if err != nil || !strings.HasPrefix(link, "socket:[") {
				continue
			}
			inode := strings.TrimSuffix(strings.TrimPrefix(link, "socket:["), "]")
			if inodes[inode] {
				seen[name] = true
				pids = append(pids, name)
				break
			}
		}
	}

	return pids
}

// HasListeningSocket reports whether the kernel lists a socket on port,
// regardless of whether its owner is visible to us.
func HasListeningSocket(port int) bool {
	return len(listeningInodes(port)) > 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
