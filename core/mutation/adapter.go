// Package mutation converts mutation markup attached to a block into the
// object tree the block runtime works with.
//
// Every attribute becomes a field of the same name holding its entity-decoded
// text, so attributes introduced by new block types pass through without any
// change here. Two attribute names are reserved:
//
//   - xmlns is a namespace declaration and never becomes a field.
//   - blockinfo holds a JSON payload. It is deserialized and exposed as the
//     field blockInfo; the lowercase name is what markup parsing produces, the
//     mixed case name is what the runtime uses everywhere else.
package mutation

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/adroitwhiz/scratch-vm/core/markup"
)

const (
	// AttrNamespace is the namespace declaration attribute, dropped on conversion.
	AttrNamespace = "xmlns"
	// AttrBlockInfo is the markup name of the embedded block info payload.
	AttrBlockInfo = "blockinfo"
	// FieldBlockInfo is the runtime name of the deserialized block info payload.
	FieldBlockInfo = "blockInfo"

	keyTagName  = "tagName"
	keyChildren = "children"
)

var (
	// ErrInvalidBlockInfo is returned when a blockinfo attribute is not valid JSON.
	ErrInvalidBlockInfo = errors.New("invalid block info payload")
	// ErrUnsupportedInput is returned by Adapt for inputs that are neither
	// markup text nor a parsed tree.
	ErrUnsupportedInput = errors.New("unsupported mutation input")
	// ErrReservedField is returned when an Object carries a field under a
	// reserved markup name, which conversion would never produce.
	ErrReservedField = errors.New("reserved field name")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Adapter converts mutation markup into Objects. It holds no per-call state
// and is safe for concurrent use.
type Adapter struct {
	logger logrus.FieldLogger
	parser markup.Parser
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger that receives the deprecation warning for text input.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithParser sets the parser used for text input. Defaults to markup.XMLParser.
func WithParser(p markup.Parser) Option {
	return func(a *Adapter) {
		a.parser = p
	}
}

// New creates an Adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		logger: logrus.StandardLogger(),
		parser: markup.XMLParser{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAdapter = New()

// Adapt converts input with the default adapter. See Adapter.Adapt.
func Adapt(input any) (*Object, error) {
	return defaultAdapter.Adapt(input)
}

// FromNode converts a parsed tree with the default adapter.
func FromNode(n *markup.Node) (*Object, error) {
	return defaultAdapter.FromNode(n)
}

// Adapt converts a mutation given either as a parsed tree (*markup.Node or an
// x/net/html DOM node) or as markup text (string or []byte). Text input is
// deprecated and logs a warning on every call.
func (a *Adapter) Adapt(input any) (*Object, error) {
	switch v := input.(type) {
	case *markup.Node:
		return a.FromNode(v)
	case *html.Node:
		n, err := markup.FromHTML(v)
		if err != nil {
			return nil, err
		}
		return a.FromNode(n)
	case string:
		return a.FromText(v)
	case []byte:
		return a.FromText(string(v))
	default:
		return nil, errors.Wrapf(ErrUnsupportedInput, "%T", input)
	}
}

// FromText parses mutation markup text and converts its document element.
//
// Deprecated: parse the markup first and call FromNode.
func (a *Adapter) FromText(text string) (*Object, error) {
	a.logger.WithField("component", "mutation").Warn("Mutations from text are deprecated")

	n, err := a.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return a.FromNode(n)
}

// FromNode converts a parsed mutation tree.
func (a *Adapter) FromNode(n *markup.Node) (*Object, error) {
	if n == nil {
		return nil, errors.Wrap(ErrUnsupportedInput, "nil node")
	}
	return convert(n)
}

func convert(n *markup.Node) (*Object, error) {
	obj := &Object{
		TagName:  n.Tag,
		Fields:   make(map[string]any, len(n.Attrs)),
		Children: make([]*Object, 0, len(n.Children)),
	}

	for _, attr := range n.Attrs {
		prop := attr.Name
		if prop == AttrNamespace {
			continue
		}
		obj.Fields[prop] = html.UnescapeString(attr.Value)
		if prop == AttrBlockInfo {
			info, err := decodeBlockInfo(obj.Fields[prop].(string))
			if err != nil {
				return nil, errors.Wrapf(err, "<%s>", n.Tag)
			}
			obj.Fields[FieldBlockInfo] = info
			delete(obj.Fields, AttrBlockInfo)
		}
	}

	for _, child := range n.Children {
		c, err := convert(child)
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, c)
	}
	return obj, nil
}

func decodeBlockInfo(payload string) (any, error) {
	var info any
	if err := json.UnmarshalFromString(payload, &info); err != nil {
		return nil, errors.Wrapf(ErrInvalidBlockInfo, "%v", err)
	}
	return info, nil
}
