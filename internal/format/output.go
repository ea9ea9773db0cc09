package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Liner is implemented by values with a plain one-record-per-line rendering.
type Liner interface {
	Lines() []string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text (values must implement Liner)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteText(w io.Writer, v any) error {
	l, ok := v.(Liner)
	if !ok {
		return fmt.Errorf("text format not supported for %T", v)
	}
	for _, line := range l.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
