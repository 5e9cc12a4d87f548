// Package render — XML renderer.
// Maps the object back to mutation markup, the persisted form.
package render

import (
	"bytes"
	"fmt"

	"github.com/adroitwhiz/scratch-vm/core/markup"
	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

// XMLRenderer renders an object back into mutation markup.
type XMLRenderer struct{}

// NewXMLRenderer creates an XMLRenderer.
func NewXMLRenderer() *XMLRenderer {
	return &XMLRenderer{}
}

// Render converts the object into XML.
func (r *XMLRenderer) Render(obj *mutation.Object) ([]byte, error) {
	n, err := mutation.ToNode(obj)
	if err != nil {
		return nil, fmt.Errorf("mapping to markup: %w", err)
	}
	var buf bytes.Buffer
	if err := markup.Encode(&buf, n); err != nil {
		return nil, fmt.Errorf("encoding XML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Extension returns the file extension for XML output.
func (r *XMLRenderer) Extension() string {
	return ".xml"
}
