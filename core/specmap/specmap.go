// Package specmap exports a spec map from a block toolbox: for every block
// opcode, the names of its inputs and fields and what kind of value each takes.
//
// The toolbox is markup with <category> elements holding <block> elements, as
// produced for the palette. A shadowed value input maps to its shadow's type,
// a value input without a shadow is a boolean input, a statement input is a
// substack and a field is a field.
package specmap

import (
	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/adroitwhiz/scratch-vm/core/markup"
)

// Input kinds for entries that are not shadowed value inputs.
const (
	KindBoolean  = "boolean"
	KindSubstack = "substack"
	KindField    = "field"
)

// Map is keyed by block opcode (or block id when the block has no type), then
// by input or field name.
type Map map[string]map[string]string

// Builder builds spec maps.
type Builder struct {
	logger logrus.FieldLogger
}

// New creates a Builder that reports skipped or duplicate blocks to logger.
func New(logger logrus.FieldLogger) *Builder {
	return &Builder{logger: logger.WithField("component", "specmap")}
}

// Build walks the toolbox rooted at root. Blocks directly inside a
// <category> are used; when there are none, blocks directly under the root
// are used instead.
func (b *Builder) Build(root *markup.Node) (Map, error) {
	if root == nil {
		return nil, errors.New("specmap: nil toolbox")
	}
	doc := goquery.NewDocumentFromNode(markup.ToHTML(root))

	blocks := doc.Find("category > block")
	if blocks.Length() == 0 {
		blocks = doc.Children().ChildrenFiltered("block")
	}

	specMap := make(Map, blocks.Length())
	seen := mapset.NewSet[string]()
	blocks.Each(func(_ int, block *goquery.Selection) {
		key := blockKey(block)
		if key == "" {
			b.logger.Warn("skipping block without type or id")
			return
		}
		if !seen.Add(key) {
			b.logger.WithField("block", key).Warn("duplicate block in toolbox; later definition wins")
		}
		specMap[key] = b.blockValues(key, block)
	})
	return specMap, nil
}

func blockKey(block *goquery.Selection) string {
	if t, ok := block.Attr("type"); ok && t != "" {
		return t
	}
	id, _ := block.Attr("id")
	return id
}

func (b *Builder) blockValues(key string, block *goquery.Selection) map[string]string {
	values := make(map[string]string)

	block.ChildrenFiltered("value").Each(func(_ int, value *goquery.Selection) {
		name, ok := value.Attr("name")
		if !ok {
			return
		}
		shadow := value.ChildrenFiltered("shadow").First()
		if shadowType, ok := shadow.Attr("type"); ok {
			values[name] = shadowType
			return
		}
		values[name] = KindBoolean
		b.logger.WithFields(logrus.Fields{"block": key, "input": name}).
			Debugf("no shadowed value; added as %s", KindBoolean)
	})
	block.ChildrenFiltered("statement").Each(func(_ int, stmt *goquery.Selection) {
		if name, ok := stmt.Attr("name"); ok {
			values[name] = KindSubstack
		}
	})
	block.ChildrenFiltered("field").Each(func(_ int, field *goquery.Selection) {
		if name, ok := field.Attr("name"); ok && name != "" {
			values[name] = KindField
		}
	})
	return values
}
