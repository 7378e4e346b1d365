package proc

// procPath is the procfs mount point. Tests point it at a temp dir.
var procPath = "/proc"

// SetProcPath redirects procfs reads, returning a func that restores the previous root.
func SetProcPath(path string) (restore func()) {
	prev := procPath
	procPath = path
	return func() { procPath = prev }
}
