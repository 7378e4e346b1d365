//go:build !linux

package proc

// SocketPIDs is unavailable without procfs; the chain falls through to lsof.
func SocketPIDs(port int) []string {
	return nil
}

func HasListeningSocket(port int) bool {
	return false
}
