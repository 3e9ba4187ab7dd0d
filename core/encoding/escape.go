// Package encoding provides the escaping rules used when rendering tool
// documents as XML.
package encoding

import (
	"strings"
)

// EscapeXMLText escapes only the basic XML entities for text content.
func EscapeXMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeXMLAttr escapes text for use in double-quoted XML attributes.
// Newlines and tabs are written as character references so a parser reads
// them back unchanged instead of normalizing them to spaces.
func EscapeXMLAttr(s string) string {
	s = EscapeXMLText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "\n", "&#10;")
	s = strings.ReplaceAll(s, "\r", "&#13;")
	s = strings.ReplaceAll(s, "\t", "&#9;")
	return s
}

// CDATA wraps s in a CDATA section. An embedded "]]>" terminator is split
// across two adjacent sections.
func CDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// EscapeComment makes s safe inside an XML comment, which may not contain
// "--" or end with "-".
func EscapeComment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}
