package tool

import (
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// MacrosTool exports a tool's inputs and outputs as a macro file instead of
// a tool document. A tool using the file expands <ID>_inmacro and
// <ID>_outmacro and references the @<ID>_INMACRO@ and @<ID>_OUTMACRO@
// tokens in its command.
type MacrosTool struct {
	*Tool
}

// NewMacrosTool creates a macro document with empty inputs and outputs.
func NewMacrosTool(name, id, version, description, executable string, opts ...Option) (*MacrosTool, error) {
	t, err := New(name, id, version, description, executable, opts...)
	if err != nil {
		return nil, err
	}
	t.Inputs = params.NewInputs()
	t.Outputs = params.NewOutputs()
	return &MacrosTool{Tool: t}, nil
}

// Export renders the <macros> document. Command options do not apply.
func (m *MacrosTool) Export(ExportOptions) (string, error) {
	return tree.Render(m.Document()), nil
}

// Document builds the exported <macros> tree: the configured macros,
// requirements, tests and citations wrapped as xml macros, then the command
// tokens and the input and output macros.
func (m *MacrosTool) Document() tree.Element {
	root := newRoot("macros")
	for _, c := range m.comments {
		tree.MustAppend(root, tree.NewComment(c))
	}
	if m.Macros != nil {
		for _, child := range tree.Snapshot(m.Macros).Children() {
			tree.MustAppend(root, child)
		}
	}
	wrap := func(name string, section tree.Element) {
		x := params.NewXMLMacro(name)
		tree.MustAppend(x, section)
		tree.MustAppend(root, x)
	}
	if m.Requirements != nil {
		wrap("requirements", tree.Snapshot(m.Requirements))
	}
	if m.Tests != nil {
		wrap(m.ID+"_tests", tree.Snapshot(m.Tests))
	}
	if m.Citations != nil {
		wrap("citations", tree.Snapshot(m.Citations))
	}

	upper := strings.ToUpper(m.ID)
	inMacro := params.NewXMLMacro(m.ID + "_inmacro")
	outMacro := params.NewXMLMacro(m.ID + "_outmacro")
	var inLines, outLines string
	if m.Inputs != nil {
		inputs := tree.Snapshot(m.Inputs)
		inLines = inputs.CLI()
		tree.MustAppend(inMacro, inputs.Children()...)
	}
	if m.Outputs != nil {
		outputs := tree.Snapshot(m.Outputs)
		outLines = outputs.CLI()
		tree.MustAppend(outMacro, outputs.Children()...)
	}

	tree.MustAppend(root,
		params.NewToken(upper+"_INMACRO", inLines),
		params.NewToken(upper+"_OUTMACRO", outLines),
		inMacro,
		outMacro,
	)
	return root
}
