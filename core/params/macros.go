package params

import (
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// Macros is the <macros> section of a tool or of a macro file.
type Macros struct {
	tree.Node
}

// NewMacros creates an empty macros section.
func NewMacros() *Macros {
	m := &Macros{}
	m.Init(m, "macros")
	return m
}

func (m *Macros) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *Import, *Token, *XMLMacro:
		return true
	}
	return false
}

// Import pulls in a macro file.
type Import struct {
	tree.Node
}

// NewImport creates an <import> of file.
func NewImport(file string) *Import {
	i := &Import{}
	i.Init(i, "import")
	i.SetText(file)
	return i
}

// Token is a named text substitution, referenced as @NAME@.
type Token struct {
	tree.Node
}

// NewToken creates a token whose value is kept verbatim as CDATA.
func NewToken(name, value string) *Token {
	t := &Token{}
	t.Init(t, "token")
	t.SetAttr("name", name)
	t.SetCDATA(value)
	return t
}

// Name returns the token name.
func (t *Token) Name() string {
	v, _ := t.Attr("name")
	return v
}

// XMLMacro is a named <xml> fragment expanded with <expand macro=...>. It
// holds parameters, outputs, or a whole requirements, tests or citations
// section.
type XMLMacro struct {
	tree.Node
}

// NewXMLMacro creates an xml macro.
func NewXMLMacro(name string) *XMLMacro {
	x := &XMLMacro{}
	x.Init(x, "xml")
	x.SetAttr("name", name)
	return x
}

// Name returns the macro name.
func (x *XMLMacro) Name() string {
	v, _ := x.Attr("name")
	return v
}

func (x *XMLMacro) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *OutputData, *OutputCollection, *Requirements, *Tests, *Citations:
		return true
	}
	return acceptsInput(child)
}

// CLI joins the command lines of the macro's children.
func (x *XMLMacro) CLI() string {
	return childLines(x)
}

// Expand is an <expand macro=...> placeholder.
type Expand struct {
	tree.Node
}

// NewExpand creates an expand of macro.
func NewExpand(macro string) *Expand {
	e := &Expand{}
	e.Init(e, "expand")
	e.SetAttr("macro", macro)
	return e
}

// Macro returns the name of the expanded macro.
func (e *Expand) Macro() string {
	v, _ := e.Attr("macro")
	return v
}

// CommandLine is always empty: the macro's command line lives elsewhere.
func (e *Expand) CommandLine() string {
	return ""
}

// ExpandIO is an expand whose command line is carried by a token of the
// same name in upper case.
type ExpandIO struct {
	Expand
}

// NewExpandIO creates an expand of macro that also emits @MACRO@ in the
// command line.
func NewExpandIO(macro string) *ExpandIO {
	e := &ExpandIO{}
	e.Init(e, "expand")
	e.SetAttr("macro", macro)
	return e
}

// CommandLine returns the token reference @MACRO@.
func (e *ExpandIO) CommandLine() string {
	return "@" + strings.ToUpper(e.Macro()) + "@"
}
