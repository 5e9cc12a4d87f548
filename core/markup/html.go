package markup

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser is a lenient, DOM-style parser. Tag and attribute names are
// lowercased the way an HTML DOM reports them, unclosed elements are closed at
// the end of input and stray end tags are ignored.
//
// Only the first top-level element is returned. Any later top-level element
// is discarded together with its subtree and no error is reported, whereas
// XMLParser rejects a second root as invalid markup.
//
// It tokenizes rather than building a full HTML document so that self-closing
// custom elements such as <mutation/> stay empty instead of swallowing their
// following siblings.
type HTMLParser struct{}

// Parse parses text and returns its first top-level element.
func (HTMLParser) Parse(text string) (*Node, error) {
	z := html.NewTokenizer(strings.NewReader(text))

	var (
		root  *Node
		stack []*Node
	)
	add := func(n *Node) bool {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			return true
		}
		if root == nil {
			root = n
			return true
		}
		// Only the first top-level element is the document element.
		return false
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrapf(ErrInvalidMarkup, "%v", err)
			}
			if root == nil {
				return nil, errors.Wrap(ErrInvalidMarkup, "no document element")
			}
			return root, nil
		case html.StartTagToken:
			n := nodeFromToken(z.Token())
			if add(n) {
				stack = append(stack, n)
			}
		case html.SelfClosingTagToken:
			add(nodeFromToken(z.Token()))
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].Tag == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func nodeFromToken(tok html.Token) *Node {
	n := &Node{Tag: tok.Data}
	for _, a := range tok.Attr {
		name := attrName(a)
		if _, dup := n.Attr(name); dup {
			continue
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Val})
	}
	return n
}

func attrName(a html.Attribute) string {
	if a.Namespace == "" {
		return a.Key
	}
	return a.Namespace + ":" + a.Key
}

// FromHTML lifts an x/net/html DOM into a Node tree. A document node is
// unwrapped to its document element; non-element children are dropped.
func FromHTML(n *html.Node) (*Node, error) {
	if n == nil {
		return nil, errors.Wrap(ErrInvalidMarkup, "nil DOM node")
	}
	if n.Type == html.DocumentNode {
		n = firstElement(n)
		if n == nil {
			return nil, errors.Wrap(ErrInvalidMarkup, "document has no element")
		}
	}
	if n.Type != html.ElementNode {
		return nil, errors.Wrapf(ErrInvalidMarkup, "DOM node of type %d is not an element", n.Type)
	}
	return fromHTMLElement(n), nil
}

func fromHTMLElement(n *html.Node) *Node {
	out := &Node{Tag: n.Data}
	for _, a := range n.Attr {
		out.Attrs = append(out.Attrs, Attr{Name: attrName(a), Value: a.Val})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out.Children = append(out.Children, fromHTMLElement(c))
		}
	}
	return out
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// ToHTML builds an x/net/html document whose document element mirrors n.
// The result can be handed to goquery or html.Render.
func ToHTML(n *Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(toHTMLElement(n))
	return doc
}

func toHTMLElement(n *Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	for _, c := range n.Children {
		el.AppendChild(toHTMLElement(c))
	}
	return el
}
