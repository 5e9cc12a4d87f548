package markup

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// XMLParser is a strict XML parser. Names are kept exactly as written, with
// namespace prefixes preserved as "prefix:local".
type XMLParser struct{}

// Parse parses text and returns its document element.
func (XMLParser) Parse(text string) (*Node, error) {
	d := xml.NewDecoder(strings.NewReader(text))
	d.Strict = true

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidMarkup, "%v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, errors.Wrapf(ErrInvalidMarkup, "extra element <%s> after document element at offset %d",
					qualifiedName(t.Name), d.InputOffset())
			}
			n, err := nodeFromStart(t)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, errors.Wrapf(ErrInvalidMarkup, "unexpected end element </%s>", name)
			}
			if open := stack[len(stack)-1]; open.Tag != name {
				return nil, errors.Wrapf(ErrInvalidMarkup, "element <%s> closed by </%s>", open.Tag, name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return nil, errors.Wrapf(ErrInvalidMarkup, "text outside document element at offset %d", d.InputOffset())
			}
		}
	}

	if len(stack) > 0 {
		return nil, errors.Wrapf(ErrInvalidMarkup, "unclosed element <%s>", stack[len(stack)-1].Tag)
	}
	if root == nil {
		return nil, errors.Wrap(ErrInvalidMarkup, "no document element")
	}
	return root, nil
}

func nodeFromStart(t xml.StartElement) (*Node, error) {
	n := &Node{Tag: qualifiedName(t.Name)}
	if len(t.Attr) > 0 {
		n.Attrs = make([]Attr, 0, len(t.Attr))
	}
	for _, a := range t.Attr {
		name := qualifiedName(a.Name)
		if _, dup := n.Attr(name); dup {
			return nil, errors.Wrapf(ErrInvalidMarkup, "duplicate attribute %q on <%s>", name, n.Tag)
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
	}
	return n, nil
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}
