// Package iojson provides JSON helpers for command IO: line-oriented
// output for scripting and a flag-driven reader for JSON input from a
// file or stdin.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteLine encodes obj as a single JSON line. Intended for outputs
// consumed by scripts or other tools, one record per line.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteIndent encodes obj as indented JSON for human consumption.
func WriteIndent(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
