// Package tree provides the generic element tree that tool documents are
// built from: tagged nodes with ordered attributes, ordered children,
// optional text or CDATA content, and per-type child acceptance.
//
// Concrete element types embed Node and call Init from their constructor:
//
//	type Inputs struct{ tree.Node }
//
//	func NewInputs() *Inputs {
//		i := &Inputs{}
//		i.Init(i, "inputs")
//		return i
//	}
//
// A type refines what it may contain by overriding Accepts.
package tree

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
)

// Element is implemented by every node of a tool document. Implementations
// must be pointers to structs embedding Node.
type Element interface {
	// Base returns the embedded generic node.
	Base() *Node
	// Accepts reports whether child may be appended.
	Accepts(child Element) bool
}

// Validator is implemented by elements with structural rules that can only be
// checked once the tree is complete.
type Validator interface {
	Validate() error
}

// Node is the generic tree element.
type Node struct {
	tag      string
	attrs    Attrs
	children []Element
	parent   Element // non-owning, used for path walking only
	self     Element // the concrete element embedding this node
	text     string
	hasText  bool
	cdata    bool
}

// Init binds the node to the concrete element that embeds it.
func (n *Node) Init(self Element, tag string) {
	n.self = self
	n.tag = tag
}

// Base returns n.
func (n *Node) Base() *Node {
	return n
}

// Accepts rejects every child. Container types override it.
func (n *Node) Accepts(Element) bool {
	return false
}

// Tag returns the XML tag name.
func (n *Node) Tag() string {
	return n.tag
}

// Attrs returns the node's attribute list for direct manipulation.
func (n *Node) Attrs() *Attrs {
	return &n.attrs
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	return n.attrs.Get(key)
}

// SetAttr coerces and stores an attribute; nil removes it.
func (n *Node) SetAttr(key string, value any) {
	n.attrs.Set(key, value)
}

// Text returns the text content and whether any was set.
func (n *Node) Text() (string, bool) {
	return n.text, n.hasText
}

// SetText sets plain text content, escaped on output.
func (n *Node) SetText(s string) {
	n.text, n.hasText, n.cdata = s, true, false
}

// SetCDATA sets text content that is written verbatim inside a CDATA section.
func (n *Node) SetCDATA(s string) {
	n.text, n.hasText, n.cdata = s, true, true
}

// ClearText removes any text content.
func (n *Node) ClearText() {
	n.text, n.hasText, n.cdata = "", false, false
}

// IsCDATA reports whether the text content is CDATA-marked.
func (n *Node) IsCDATA() bool {
	return n.cdata
}

// Children returns the children in append order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) Element {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Parent returns the element this node was last appended to.
func (n *Node) Parent() Element {
	return n.parent
}

// Append adds child after checking that the concrete element accepts it.
func (n *Node) Append(child Element) error {
	if n.self == nil {
		return fmt.Errorf("tree: append to uninitialized <%s> node", n.tag)
	}
	return Append(n.self, child)
}

// Append links child under parent. A child the parent does not accept is
// rejected with a TypeMismatchError naming both types. An element appended a
// second time is re-parented for path resolution.
func Append(parent, child Element) error {
	if isNil(child) {
		return errors.NewTypeMismatch(TypeName(parent), "<nil>")
	}
	if !parent.Accepts(child) {
		return errors.NewTypeMismatch(TypeName(parent), TypeName(child))
	}
	c := child.Base()
	if c.self == nil {
		c.self = child
	}
	c.parent = parent
	p := parent.Base()
	p.children = append(p.children, child)
	return nil
}

// MustAppend is like Append but panics on rejection. It is meant for
// statically known trees such as examples and fixtures.
func MustAppend(parent Element, children ...Element) {
	for _, child := range children {
		if err := Append(parent, child); err != nil {
			panic(err)
		}
	}
}

// TypeName names an element's concrete type for error messages.
func TypeName(e Element) string {
	if isNil(e) {
		return "<nil>"
	}
	return fmt.Sprintf("%T", e)
}

// Snapshot returns a fully independent deep copy of e and its subtree.
// Parent links inside the copy point at copied elements; the copy's root has
// no parent.
func Snapshot[E Element](e E) E {
	if isNil(e) {
		return e
	}
	return snapshot(e, nil).(E)
}

func snapshot(e, parent Element) Element {
	// shallow copy of the concrete element, then rebuild the node state
	src := reflect.ValueOf(e).Elem()
	dup := reflect.New(src.Type())
	dup.Elem().Set(src)
	c := dup.Interface().(Element)

	from, to := e.Base(), c.Base()
	to.attrs = from.attrs.Clone()
	to.parent = parent
	to.self = c
	to.children = make([]Element, 0, len(from.children))
	for _, child := range from.children {
		to.children = append(to.children, snapshot(child, c))
	}
	return c
}

// Walk visits e and its descendants depth-first in document order. Returning
// false from fn skips the element's subtree.
func Walk(e Element, fn func(Element) bool) {
	if isNil(e) || !fn(e) {
		return
	}
	for _, child := range e.Base().children {
		Walk(child, fn)
	}
}

// Validate runs every Validator in the subtree and joins their errors.
func Validate(e Element) error {
	var errs []error
	Walk(e, func(el Element) bool {
		if v, ok := el.(Validator); ok {
			if err := v.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
		return true
	})
	return stderrors.Join(errs...)
}

// Comment is an XML comment node.
type Comment struct {
	Node
}

// NewComment creates a comment holding text.
func NewComment(text string) *Comment {
	c := &Comment{}
	c.Init(c, "!--")
	c.SetText(text)
	return c
}

func isNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
