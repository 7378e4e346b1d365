//go:build linux

package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// UserName returns the owner of pid as a login name, the numeric uid when
// /etc/passwd has no entry, or "" if the process is gone.
func UserName(pid int) string {
	info, err := os.Stat(filepath.Join(procPath, strconv.Itoa(pid)))
	if err != nil {
		return ""
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}

	return lookupUID(int(stat.Uid), passwdPath)
}

var passwdPath = "/etc/passwd"

func lookupUID(uid int, passwd string) string {
	if uid == 0 {
		return "root"
	}
	uidStr := strconv.Itoa(uid)
	data, err := os.ReadFile(passwd)
	if err == nil {
		for line := range strings.Lines(string(data)) {
			fields := strings.Split(line, ":")
			if len(fields) > 2 && fields[2] == uidStr {
				return fields[0]
			}
		}
	}
	return uidStr
}
