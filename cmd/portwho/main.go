//go:build !windows && !plan9 && !js && !wasip1

package main

import (
	"os"

	"github.com/pranshuparmar/portwho/internal/app"
)

var version = ""

func main() {
	app.SetVersion(version)
	os.Exit(app.Execute())
}
