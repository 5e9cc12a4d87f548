package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/adroitwhiz/scratch-vm/core/markup"
)

func sampleObject(t *testing.T) *Object {
	t.Helper()
	obj, err := FromNode(markup.NewNode("block", attr("type", "foo")).Append(
		markup.NewNode("mutation",
			attr("blockinfo", `{"hasNext":true,"args":["a","b"]}`),
			attr("proccode", `say "%s" & <go>`),
		),
	))
	require.NoError(t, err)
	return obj
}

func TestObject_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleObject(t))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"tagName": "block",
		"type": "foo",
		"children": [{
			"tagName": "mutation",
			"blockInfo": {"hasNext": true, "args": ["a", "b"]},
			"proccode": "say \"%s\" & <go>",
			"children": []
		}]
	}`, string(data))

	assert.True(t, gjson.GetBytes(data, "children.0.blockInfo.hasNext").Bool())
	assert.False(t, gjson.GetBytes(data, "children.0.blockinfo").Exists())
}

func TestObject_StructuralKeysWin(t *testing.T) {
	obj := &Object{TagName: "m", Fields: map[string]any{"children": "text", "tagName": "other"}}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagName":"m","children":[]}`, string(data))
}

func TestObject_UnmarshalJSON(t *testing.T) {
	want := sampleObject(t)
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Object
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, &got)

	for _, input := range []string{
		`{"tagName": 3}`,
		`[]`,
		`{"tagName": "m", "children": [null]}`,
		`{"tagName": "m", "children": [{"tagName": "a", "children": [null]}]}`,
		`{"tagName": "m", "blockInfo": {"a": 1}, "blockinfo": "x"}`,
		`{"tagName": "m", "xmlns": "http://example.com"}`,
	} {
		var bad Object
		assert.Error(t, json.Unmarshal([]byte(input), &bad), input)
	}
}

func TestObject_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleObject(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "block", decoded["tagName"])
	children := decoded["children"].([]any)
	require.Len(t, children, 1)
	child := children[0].(map[string]any)
	assert.Equal(t, map[string]any{"hasNext": true, "args": []any{"a", "b"}}, child["blockInfo"])
	assert.NotContains(t, child, "blockinfo")
}

func TestObject_Accessors(t *testing.T) {
	obj := sampleObject(t)

	s, ok := obj.Text("type")
	assert.True(t, ok)
	assert.Equal(t, "foo", s)

	_, ok = obj.BlockInfo()
	assert.False(t, ok, "no blockInfo field without a blockinfo attribute")

	m := obj.Children[0]
	_, ok = m.Text(FieldBlockInfo)
	assert.False(t, ok)
	info, ok := m.BlockInfo()
	assert.True(t, ok)
	assert.Equal(t, true, info.(map[string]any)["hasNext"])
	assert.Equal(t, []string{"blockInfo", "proccode"}, m.FieldNames())
}

func TestToNode_RoundTrip(t *testing.T) {
	tests := []*Object{
		sampleObject(t),
		{
			TagName: "mutation",
			Fields: map[string]any{
				"literal":   "&amp; stays &lt;literal&gt;",
				"blockInfo": nil,
				"count":     float64(3),
			},
			Children: []*Object{},
		},
	}
	for _, want := range tests {
		n, err := ToNode(want)
		require.NoError(t, err)

		_, hasMarkupName := n.Attr(AttrBlockInfo)
		_, hasInfo := want.BlockInfo()
		assert.Equal(t, hasInfo, hasMarkupName)

		parsed, err := markup.XMLParser{}.Parse(n.String())
		require.NoError(t, err)
		got, err := FromNode(parsed)
		require.NoError(t, err)

		if _, ok := want.Fields["count"]; ok {
			// Non-text fields come back as their JSON text.
			want.Fields["count"] = "3"
		}
		assert.Equal(t, want, got)
	}
}

func TestToNode_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  *Object
		err  error
	}{
		{"unencodable block info", &Object{TagName: "m", Fields: map[string]any{"blockInfo": make(chan int)}}, nil},
		{"blockinfo beside blockInfo", &Object{TagName: "m", Fields: map[string]any{"blockInfo": map[string]any{"a": 1.0}, "blockinfo": "x"}}, ErrReservedField},
		{"blockinfo alone", &Object{TagName: "m", Fields: map[string]any{"blockinfo": "{}"}}, ErrReservedField},
		{"xmlns", &Object{TagName: "m", Fields: map[string]any{"xmlns": "http://example.com"}}, ErrReservedField},
		{"nil child", &Object{TagName: "m", Children: []*Object{nil}}, nil},
		{"nil object", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ToNode(tt.obj)
			require.Error(t, err)
			assert.Nil(t, n)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}
