//go:build windows || plan9 || js || wasip1

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"portwho is only supported on Linux, macOS and the BSDs.\n\nIf you are seeing this message, you are attempting to build or run portwho on an unsupported platform.",
	)
	os.Exit(1)
}
