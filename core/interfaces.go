// Package core defines the pipeline interfaces for mutadapt.
// Each stage of the pipeline is a clean, testable interface:
// load → parse → adapt → render → write.
package core

import (
	"context"

	"github.com/adroitwhiz/scratch-vm/core/markup"
	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

// FetchResult holds raw markup and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// Fetcher retrieves raw markup from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Adapter converts a parsed mutation tree into its runtime object.
type Adapter interface {
	FromNode(n *markup.Node) (*mutation.Object, error)
	// Deprecated: parse first and call FromNode.
	FromText(text string) (*mutation.Object, error)
}

// Renderer converts a mutation object into a final output format.
type Renderer interface {
	Render(obj *mutation.Object) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}

var _ Adapter = (*mutation.Adapter)(nil)
