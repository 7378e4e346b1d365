package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pranshuparmar/portwho/internal/probe"
)

func ToJSON(s *probe.State) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// RenderJSON writes the state as indented JSON followed by a newline.
func RenderJSON(w io.Writer, s *probe.State) error {
	out, err := ToJSON(s)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
