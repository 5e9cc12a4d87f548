// Package render — JSON renderer.
// Emits the flat runtime record of a mutation object.
package render

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

// JSONRenderer produces indented JSON output.
type JSONRenderer struct {
	// Indent is the per-level indentation. Defaults to two spaces.
	Indent string
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{Indent: "  "}
}

// Render converts the object into indented JSON.
func (r *JSONRenderer) Render(obj *mutation.Object) ([]byte, error) {
	return MarshalIndent(obj, r.Indent)
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// MarshalIndent encodes v as JSON and indents it. json-iterator writes
// json.Marshaler output verbatim, so indentation is applied afterwards.
func MarshalIndent(v any, indent string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, data, "", indent); err != nil {
		return nil, fmt.Errorf("indenting JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Query evaluates a gjson path against rendered JSON and returns the matched
// value as JSON text.
func Query(data []byte, path string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("query %q: input is not valid JSON", path)
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return "", fmt.Errorf("query %q matched nothing", path)
	}
	return res.Raw, nil
}
