package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/portwho/internal/probe"
)

// RenderBare prints the single restricted-mode identifier, uncolored, on one
// line. Nothing is written when the state has no owner for its mode.
func RenderBare(w io.Writer, s *probe.State) bool {
	id, ok := s.Bare()
	if !ok {
		return false
	}
	fmt.Fprintln(w, sanitize(id))
	return true
}
