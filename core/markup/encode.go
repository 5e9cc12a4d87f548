package markup

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

// Encode writes n as XML. Attribute values are escaped so that XMLParser
// reads them back unchanged; elements without children are self-closed.
func Encode(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if err := encodeNode(bw, n); err != nil {
		return err
	}
	return bw.Flush()
}

// String returns the XML encoding of n.
func (n *Node) String() string {
	var sb strings.Builder
	_ = Encode(&sb, n)
	return sb.String()
}

func encodeNode(w *bufio.Writer, n *Node) error {
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if len(n.Children) == 0 {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')
	for _, c := range n.Children {
		if err := encodeNode(w, c); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	_, err := w.WriteString(">")
	return err
}
