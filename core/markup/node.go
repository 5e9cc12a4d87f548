// Package markup defines the parsed markup tree that mutation conversion
// operates on, along with the parsers that produce it.
//
// A Node only carries elements: text, comments and processing instructions
// are not part of a mutation tree and are dropped by every parser.
package markup

import "github.com/pkg/errors"

// ErrInvalidMarkup is returned when markup text cannot be parsed into a tree.
var ErrInvalidMarkup = errors.New("invalid markup")

// Attr is a single attribute as exposed by a DOM: the value has had markup
// entities resolved once by the parser.
type Attr struct {
	Name  string
	Value string
}

// Node is an element in a parsed markup tree.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
}

// NewNode creates a Node with the given tag and attributes, in order.
func NewNode(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// Append adds children in order and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named attribute, or appends it if absent.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Elements returns every descendant of n (n included) with the given tag,
// in depth-first document order.
func (n *Node) Elements(tag string) []*Node {
	var found []*Node
	n.walk(func(e *Node) {
		if e.Tag == tag {
			found = append(found, e)
		}
	})
	return found
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// Parser turns markup text into a tree rooted at the document element.
type Parser interface {
	Parse(text string) (*Node, error)
}

// ParserFor returns the parser registered for a syntax name ("xml" or "html").
func ParserFor(syntax string) (Parser, error) {
	switch syntax {
	case "", "xml":
		return XMLParser{}, nil
	case "html":
		return HTMLParser{}, nil
	default:
		return nil, errors.Errorf("unknown markup syntax %q (want xml or html)", syntax)
	}
}
