package mutation

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Object is the runtime form of a mutation element: its tag, one field per
// attribute and its converted children. The attribute vocabulary is open, so
// fields are kept in a map rather than a fixed struct.
type Object struct {
	TagName  string
	Fields   map[string]any
	Children []*Object
}

// Field returns the named field.
func (o *Object) Field(name string) (any, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// Text returns the named field when it holds text.
func (o *Object) Text(name string) (string, bool) {
	s, ok := o.Fields[name].(string)
	return s, ok
}

// BlockInfo returns the deserialized block info payload, if the element had one.
func (o *Object) BlockInfo() (any, bool) {
	return o.Field(FieldBlockInfo)
}

// FieldNames returns the field names in sorted order.
func (o *Object) FieldNames() []string {
	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// record flattens o into the map the block runtime consumes. tagName and
// children take precedence over attribute fields of the same name.
func (o *Object) record() map[string]any {
	rec := make(map[string]any, len(o.Fields)+2)
	for k, v := range o.Fields {
		rec[k] = v
	}
	children := o.Children
	if children == nil {
		children = []*Object{}
	}
	rec[keyTagName] = o.TagName
	rec[keyChildren] = children
	return rec
}

// MarshalJSON encodes o as a flat record.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.record())
}

// MarshalYAML encodes o as a flat record.
func (o *Object) MarshalYAML() (interface{}, error) {
	return o.record(), nil
}

// UnmarshalJSON decodes a flat record produced by MarshalJSON. Null children
// and the reserved names xmlns and blockinfo are rejected.
func (o *Object) UnmarshalJSON(data []byte) error {
	var raw map[string]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = Object{Fields: make(map[string]any, len(raw)), Children: []*Object{}}
	for k, v := range raw {
		var err error
		switch k {
		case keyTagName:
			err = json.Unmarshal(v, &o.TagName)
		case keyChildren:
			err = json.Unmarshal(v, &o.Children)
			if err == nil {
				err = checkChildren(o.Children)
			}
		case AttrNamespace, AttrBlockInfo:
			err = ErrReservedField
		default:
			var field any
			err = json.Unmarshal(v, &field)
			o.Fields[k] = field
		}
		if err != nil {
			return errors.Wrapf(err, "decoding %q", k)
		}
	}
	if o.Children == nil {
		o.Children = []*Object{}
	}
	return nil
}

func checkChildren(children []*Object) error {
	for i, c := range children {
		if c == nil {
			return errors.Errorf("child %d is null", i)
		}
	}
	return nil
}
