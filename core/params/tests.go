package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// Tests is the <tests> section.
type Tests struct {
	tree.Node
}

// NewTests creates an empty tests section.
func NewTests() *Tests {
	t := &Tests{}
	t.Init(t, "tests")
	return t
}

func (t *Tests) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *Test, *Expand:
		return true
	}
	return false
}

// Test is one functional test case.
type Test struct {
	tree.Node
}

// NewTest creates a test case; expect_num_outputs and expect_failure are
// passed with Attr.
func NewTest(opts ...Option) *Test {
	t := &Test{}
	t.Init(t, "test")
	collect(opts).applyAttrs(&t.Node)
	return t
}

func (t *Test) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *TestParam, *TestOutput, *TestOutputCollection, *TestRepeat, *TestSection, *TestConditional, *Expand:
		return true
	}
	return false
}

// acceptsTestInput is the child rule of the test-side input containers.
func acceptsTestInput(child tree.Element) bool {
	switch child.(type) {
	case *TestParam, *TestRepeat, *TestSection, *TestConditional:
		return true
	}
	return false
}

// TestParam supplies a value for an input.
type TestParam struct {
	tree.Node
}

// NewTestParam creates a test <param>; value, ftype and dbkey are passed as
// options.
func NewTestParam(name string, opts ...Option) *TestParam {
	p := &TestParam{}
	p.Init(p, "param")
	p.SetAttr("name", name)
	collect(opts).applyAttrs(&p.Node)
	return p
}

// TestOutput checks a produced dataset.
type TestOutput struct {
	tree.Node
}

// NewTestOutput creates a test <output>; name, file, ftype, sort, value,
// md5, checksum, compare, lines_diff and delta are passed as options.
func NewTestOutput(opts ...Option) *TestOutput {
	o := &TestOutput{}
	o.Init(o, "output")
	collect(opts).applyAttrs(&o.Node)
	return o
}

func (o *TestOutput) Accepts(child tree.Element) bool {
	_, ok := child.(*TestOCElement)
	return ok
}

// TestOutputCollection checks a produced collection.
type TestOutputCollection struct {
	tree.Node
}

// NewTestOutputCollection creates an output_collection check; type and
// count are passed as options.
func NewTestOutputCollection(name string, opts ...Option) *TestOutputCollection {
	c := &TestOutputCollection{}
	c.Init(c, "output_collection")
	c.SetAttr("name", name)
	collect(opts).applyAttrs(&c.Node)
	return c
}

func (c *TestOutputCollection) Accepts(child tree.Element) bool {
	_, ok := child.(*TestOCElement)
	return ok
}

// TestOCElement checks one element of a collection output.
type TestOCElement struct {
	tree.Node
}

// NewTestOCElement creates an <element>; file, ftype and the comparison
// attributes are passed as options.
func NewTestOCElement(name string, opts ...Option) *TestOCElement {
	e := &TestOCElement{}
	e.Init(e, "element")
	e.SetAttr("name", name)
	collect(opts).applyAttrs(&e.Node)
	return e
}

// Nested collections nest elements.
func (e *TestOCElement) Accepts(child tree.Element) bool {
	_, ok := child.(*TestOCElement)
	return ok
}

// TestRepeat supplies one instance of a repeat.
type TestRepeat struct {
	tree.Node
}

// NewTestRepeat creates a test <repeat>.
func NewTestRepeat(name string, opts ...Option) *TestRepeat {
	r := &TestRepeat{}
	r.Init(r, "repeat")
	r.SetAttr("name", name)
	collect(opts).applyAttrs(&r.Node)
	return r
}

func (r *TestRepeat) Accepts(child tree.Element) bool {
	return acceptsTestInput(child)
}

// TestSection supplies the values of a section.
type TestSection struct {
	tree.Node
}

// NewTestSection creates a test <section>.
func NewTestSection(name string, opts ...Option) *TestSection {
	s := &TestSection{}
	s.Init(s, "section")
	s.SetAttr("name", name)
	collect(opts).applyAttrs(&s.Node)
	return s
}

func (s *TestSection) Accepts(child tree.Element) bool {
	return acceptsTestInput(child)
}

// TestConditional supplies the discriminator and branch values of a
// conditional.
type TestConditional struct {
	tree.Node
}

// NewTestConditional creates a test <conditional>.
func NewTestConditional(name string, opts ...Option) *TestConditional {
	c := &TestConditional{}
	c.Init(c, "conditional")
	c.SetAttr("name", name)
	collect(opts).applyAttrs(&c.Node)
	return c
}

func (c *TestConditional) Accepts(child tree.Element) bool {
	return acceptsTestInput(child)
}
