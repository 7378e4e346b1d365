//go:build !darwin && !linux

package completion

// getListeningPorts returns a list of all listening TCP ports.
// Not implemented for this platform.
func getListeningPorts() []string {
	return nil
}
