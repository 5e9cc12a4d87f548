// Package output handles file naming and writing for mutadapt outputs.
// Filenames are derived from the input source: a file keeps its base name,
// a URL is flattened (e.g., example_com_project_mutation), stdin is "stdin".
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// StdoutPath is returned by Write when output went to the stream.
const StdoutPath = "-"

// Writer writes rendered output to disk, or to a stream when no directory is set.
type Writer struct {
	OutputDir string
	stream    io.Writer
}

// New creates a Writer targeting outputDir. If outputDir is empty, output is
// written to stream instead.
func New(outputDir string, stream io.Writer) (*Writer, error) {
	if outputDir != "" {
		// Ensure the output directory exists.
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir, stream: stream}, nil
}

// Write stores data for the given source and returns where it went.
func (w *Writer) Write(src string, data []byte, ext string) (string, error) {
	if w.OutputDir == "" {
		if _, err := w.stream.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return StdoutPath, nil
	}

	path := filepath.Join(w.OutputDir, Filename(src)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename derives a flat, extension-less output name from a source.
func Filename(src string) string {
	if src == "" || src == "-" {
		return "stdin"
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return filenameFromURL(src)
	}
	base := filepath.Base(src)
	return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro.xml → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	path = strings.TrimSuffix(path, filepath.Ext(path))
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
