// Package render provides output renderers for mutation objects.
// This file builds the outline shared by the Markdown and PDF renderers:
// one entry per element, depth-first, with its fields in name order.
package render

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// outlineEntry is one element of a mutation tree, flattened for display.
type outlineEntry struct {
	Depth  int
	Tag    string
	Fields []string // "name=value"
}

func outline(obj *mutation.Object) []outlineEntry {
	var entries []outlineEntry
	var walk func(o *mutation.Object, depth int)
	walk = func(o *mutation.Object, depth int) {
		entries = append(entries, outlineEntry{
			Depth:  depth,
			Tag:    o.TagName,
			Fields: fieldPairs(o),
		})
		for _, c := range o.Children {
			walk(c, depth+1)
		}
	}
	walk(obj, 0)
	return entries
}

func fieldPairs(o *mutation.Object) []string {
	names := o.FieldNames()
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+fieldText(o.Fields[name]))
	}
	return pairs
}

// fieldText shows text fields as-is and everything else as compact JSON.
func fieldText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	text, err := json.MarshalToString(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return text
}

// outlineHTML renders obj as a nested HTML list:
// <ul><li><strong>tag</strong> name=value, ...<ul>children</ul></li></ul>
func outlineHTML(obj *mutation.Object) *html.Node {
	ul := element(atom.Ul)
	ul.AppendChild(outlineItem(obj))
	return ul
}

func outlineItem(o *mutation.Object) *html.Node {
	li := element(atom.Li)
	strong := element(atom.Strong)
	strong.AppendChild(&html.Node{Type: html.TextNode, Data: o.TagName})
	li.AppendChild(strong)

	if pairs := fieldPairs(o); len(pairs) > 0 {
		li.AppendChild(&html.Node{Type: html.TextNode, Data: " " + strings.Join(pairs, ", ")})
	}
	if len(o.Children) > 0 {
		ul := element(atom.Ul)
		for _, c := range o.Children {
			ul.AppendChild(outlineItem(c))
		}
		li.AppendChild(ul)
	}
	return li
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
