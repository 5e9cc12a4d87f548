package mutation

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/adroitwhiz/scratch-vm/core/markup"
)

// ToNode maps an Object back to markup for persisting. blockInfo is written
// as JSON under blockinfo, text fields are written as-is and any other value
// is JSON encoded. Attributes are emitted in field name order.
//
// Values are entity-escaped once more than the markup needs, since conversion
// decodes entities again after the parser has resolved them.
//
// Fields named xmlns or blockinfo fail with ErrReservedField: conversion drops
// the first and replaces the second, so neither could come back unchanged.
// Nil objects and nil children are rejected too.
func ToNode(o *Object) (*markup.Node, error) {
	if o == nil {
		return nil, errors.New("nil mutation object")
	}
	n := &markup.Node{Tag: o.TagName}
	for _, name := range o.FieldNames() {
		value := o.Fields[name]
		if name == AttrNamespace || name == AttrBlockInfo {
			return nil, errors.Wrapf(ErrReservedField, "field %q of <%s>", name, o.TagName)
		}
		if name == FieldBlockInfo {
			text, err := json.MarshalToString(value)
			if err != nil {
				return nil, errors.Wrapf(err, "encoding %s of <%s>", FieldBlockInfo, o.TagName)
			}
			n.Attrs = append(n.Attrs, markup.Attr{Name: AttrBlockInfo, Value: escapeEntities(text)})
			continue
		}
		if s, ok := value.(string); ok {
			n.Attrs = append(n.Attrs, markup.Attr{Name: name, Value: escapeEntities(s)})
			continue
		}
		text, err := json.MarshalToString(value)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding field %q of <%s>", name, o.TagName)
		}
		n.Attrs = append(n.Attrs, markup.Attr{Name: name, Value: escapeEntities(text)})
	}
	for _, child := range o.Children {
		c, err := ToNode(child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func escapeEntities(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}
