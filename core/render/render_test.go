package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/adroitwhiz/scratch-vm/core"
	"github.com/adroitwhiz/scratch-vm/core/markup"
	"github.com/adroitwhiz/scratch-vm/core/mutation"
)

func sample(t *testing.T) *mutation.Object {
	t.Helper()
	n, err := markup.XMLParser{}.Parse(
		`<block type="foo"><mutation proccode="say %s" blockinfo="{&quot;hasNext&quot;:true}"><arg id="a"/></mutation></block>`)
	require.NoError(t, err)
	obj, err := mutation.FromNode(n)
	require.NoError(t, err)
	return obj
}

func TestRenderers_Extension(t *testing.T) {
	for ext, r := range map[string]core.Renderer{
		".json": NewJSONRenderer(),
		".yaml": NewYAMLRenderer(),
		".md":   NewMarkdownRenderer(),
		".pdf":  NewPDFRenderer(),
		".xml":  NewXMLRenderer(),
	} {
		assert.Equal(t, ext, r.Extension())
	}
}

func TestJSONRenderer(t *testing.T) {
	data, err := NewJSONRenderer().Render(sample(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasSuffix(data, []byte("\n")))
	assert.Contains(t, string(data), "\n  \"children\": [")
	assert.Equal(t, "block", gjson.GetBytes(data, "tagName").String())
	assert.Equal(t, "foo", gjson.GetBytes(data, "type").String())
	assert.True(t, gjson.GetBytes(data, "children.0.blockInfo.hasNext").Bool())
	assert.Equal(t, "a", gjson.GetBytes(data, "children.0.children.0.id").String())
	assert.Equal(t, int64(0), gjson.GetBytes(data, "children.0.children.0.children.#").Int())
}

func TestQuery(t *testing.T) {
	data, err := NewJSONRenderer().Render(sample(t))
	require.NoError(t, err)

	got, err := Query(data, "children.0.blockInfo")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hasNext":true}`, got)

	_, err = Query(data, "children.5")
	assert.Error(t, err)
	_, err = Query([]byte("{nope"), "a")
	assert.Error(t, err)
}

func TestYAMLRenderer(t *testing.T) {
	data, err := NewYAMLRenderer().Render(sample(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "foo", decoded["type"])
	child := decoded["children"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"hasNext": true}, child["blockInfo"])
	assert.Equal(t, "say %s", child["proccode"])
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(sample(t))
	require.NoError(t, err)

	md := string(data)
	assert.Contains(t, md, "**block**")
	assert.Contains(t, md, "type=foo")
	assert.Contains(t, md, "**mutation**")
	assert.Contains(t, md, "proccode=say %s")
	assert.Contains(t, md, "**arg**")
	assert.Less(t, strings.Index(md, "**block**"), strings.Index(md, "**arg**"))
}

func TestPDFRenderer(t *testing.T) {
	data, err := NewPDFRenderer().Render(sample(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestXMLRenderer_RoundTrip(t *testing.T) {
	want := sample(t)
	data, err := NewXMLRenderer().Render(want)
	require.NoError(t, err)

	n, err := markup.XMLParser{}.Parse(string(data))
	require.NoError(t, err)
	got, err := mutation.FromNode(n)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOutline(t *testing.T) {
	entries := outline(sample(t))
	require.Len(t, entries, 3)
	assert.Equal(t, outlineEntry{Depth: 0, Tag: "block", Fields: []string{"type=foo"}}, entries[0])
	assert.Equal(t, []string{`blockInfo={"hasNext":true}`, "proccode=say %s"}, entries[1].Fields)
	assert.Equal(t, 2, entries[2].Depth)
}
