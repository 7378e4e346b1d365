//go:build !linux

package proc

import (
	"strconv"
	"strings"
)

func UserName(pid int) string {
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "user=")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
