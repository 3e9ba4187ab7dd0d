// Package xml wraps xmlquery and xpath for reading tool documents.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated by xmlquery, which uses
//     Go's encoding/xml internally and never fetches external entities.
package xml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element.
type Node struct {
	node *xmlquery.Node
}

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses XML from r and returns a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Comments returns the text of document-level comments preceding the root.
func (d *Document) Comments() []string {
	if d.root == nil {
		return nil
	}
	var out []string
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			break
		}
		if child.Type == xmlquery.CommentNode {
			out = append(out, child.Data)
		}
	}
	return out
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the element's own text, concatenating its direct text and
// CDATA children. Text of nested elements is not included.
func (n *Node) Text() string {
	if n.node == nil {
		return ""
	}
	var b strings.Builder
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

// HasText reports whether the element has any direct text or CDATA child.
func (n *Node) HasText() bool {
	if n.node == nil {
		return false
	}
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			return true
		}
	}
	return false
}

// IsCDATA reports whether the element's text is held in a CDATA section.
func (n *Node) IsCDATA() bool {
	if n.node == nil {
		return false
	}
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.CharDataNode {
			return true
		}
	}
	return false
}

// InnerText returns all text content of the node and its descendants.
func (n *Node) InnerText() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// Comments returns the text of the element's direct comment children.
func (n *Node) Comments() []string {
	if n.node == nil {
		return nil
	}
	var out []string
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.CommentNode {
			out = append(out, child.Data)
		}
	}
	return out
}

// Attrs returns the attributes in document order.
func (n *Node) Attrs() []Attr {
	if n.node == nil {
		return nil
	}
	attrs := make([]Attr, 0, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs = append(attrs, Attr{Name: attrName(attr.Name.Space, attr.Name.Local), Value: attr.Value})
	}
	return attrs
}

// Attr returns the value of a specific attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n.node == nil {
		return "", false
	}
	for _, attr := range n.node.Attr {
		if attrName(attr.Name.Space, attr.Name.Local) == name {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute, or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// OutputXML serializes the element and its subtree.
func (n *Node) OutputXML() string {
	if n.node == nil {
		return ""
	}
	return n.node.OutputXML(true)
}

func attrName(space, local string) string {
	if space == "" {
		return local
	}
	return space + ":" + local
}
