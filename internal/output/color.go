package output

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pranshuparmar/portwho/pkg/model"
)

// ColorEnabled decides whether normal-mode output is colored. -nocolor and
// "never" always win; "always" skips detection; otherwise NO_COLOR, a dumb
// terminal, or a non-terminal stdout disable color.
func ColorEnabled(out *os.File, noColorFlag bool, setting string, getenv func(string) string) bool {
	if noColorFlag || setting == model.ColorNever {
		return false
	}
	if setting == model.ColorAlways {
		return true
	}
	if getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return false
	}
	if out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
