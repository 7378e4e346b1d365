package app

import "strings"

// longFlags may be written with a single dash, e.g. -pid or -nocolor.
var longFlags = map[string]bool{
	"pid":       true,
	"container": true,
	"nocolor":   true,
	"no-color":  true,
	"json":      true,
	"verbose":   true,
	"config":    true,
	"help":      true,
	"version":   true,
}

// normalizeArgs rewrites single-dash long flags to the double-dash form pflag
// expects. Everything after "--" is left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			name, _, _ := strings.Cut(arg[1:], "=")
			if longFlags[name] {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}
