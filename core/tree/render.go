package tree

import (
	"bytes"
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/encoding"
)

// DefaultIndent is the indentation used by Render.
const DefaultIndent = "  "

// Render serializes e as pretty-printed XML with two-space indentation.
func Render(e Element) string {
	return RenderIndent(e, DefaultIndent)
}

// RenderIndent serializes e using the given indentation string.
// Attributes are written in insertion order and children in append order.
// CDATA-marked text is written verbatim inside a CDATA section.
func RenderIndent(e Element, indent string) string {
	var buf bytes.Buffer
	writeElement(&buf, e, 0, indent)
	return buf.String()
}

func writeElement(w *bytes.Buffer, e Element, depth int, indent string) {
	if isNil(e) {
		return
	}
	n := e.Base()
	writeIndent(w, depth, indent)

	if _, ok := e.(*Comment); ok {
		w.WriteString("<!--")
		w.WriteString(encoding.EscapeComment(n.text))
		w.WriteString("-->\n")
		return
	}

	w.WriteString("<")
	w.WriteString(n.tag)
	for _, key := range n.attrs.keys {
		w.WriteString(" ")
		w.WriteString(key)
		w.WriteString("=\"")
		w.WriteString(encoding.EscapeXMLAttr(n.attrs.values[key]))
		w.WriteString("\"")
	}

	if len(n.children) == 0 && !n.hasText {
		w.WriteString("/>\n")
		return
	}

	w.WriteString(">")
	if n.hasText {
		writeText(w, n)
	}
	if len(n.children) > 0 {
		w.WriteString("\n")
		for _, child := range n.children {
			writeElement(w, child, depth+1, indent)
		}
		writeIndent(w, depth, indent)
	}
	w.WriteString("</")
	w.WriteString(n.tag)
	w.WriteString(">\n")
}

func writeText(w *bytes.Buffer, n *Node) {
	if n.cdata {
		w.WriteString(encoding.CDATA(n.text))
		return
	}
	w.WriteString(encoding.EscapeXMLText(n.text))
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	w.WriteString(strings.Repeat(indent, depth))
}
