// Package render — Markdown renderer.
// Builds an HTML outline of the mutation tree and normalizes it to Markdown
// with html-to-markdown, the same way page content is normalized.
package render

import (
	"bytes"
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"

	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

// MarkdownRenderer renders a mutation tree as a nested Markdown list.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the object into a Markdown outline.
func (r *MarkdownRenderer) Render(obj *mutation.Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, outlineHTML(obj)); err != nil {
		return nil, fmt.Errorf("rendering outline HTML: %w", err)
	}
	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
