// Package importer reconstructs tool documents from existing Galaxy tool
// wrapper XML. Import is best-effort: tags without a handler are logged and
// skipped.
package importer

import (
	"os"
	"slices"
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tool"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

// Import reads and imports the tool wrapper at path.
func Import(path string) (*tool.Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	t, err := ImportBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "import %s", path)
	}
	return t, nil
}

// ImportBytes imports a tool wrapper from its XML text.
func ImportBytes(data []byte) (*tool.Tool, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, errors.NewParse("XML", "", err.Error())
	}
	return ImportDocument(doc)
}

// ImportDocument imports a parsed tool wrapper.
func ImportDocument(doc *xml.Document) (*tool.Tool, error) {
	root := doc.Root()
	if root == nil || root.Name() != "tool" {
		return nil, errors.NewValidation("root", "", "document root must be <tool>")
	}
	t, err := newTool(root)
	if err != nil {
		return nil, err
	}
	for _, c := range root.Comments() {
		t.AddComment(c)
	}
	// top-level expands are kept where they stood, after the last
	// section seen before them
	t.ExplicitExpands = true
	after := ""
	for _, child := range root.Children() {
		if child.Name() == "expand" {
			macro := child.AttrOr("macro", "")
			t.Expands = append(t.Expands, tool.Expand{Macro: macro, After: after})
			logging.Debug("top-level expand", "macro", macro, "after", after)
			continue
		}
		if err := loadSection(t, child); err != nil {
			return nil, err
		}
		if slices.Contains(sectionTags, child.Name()) {
			after = child.Name()
		}
	}
	return t, nil
}

// newTool creates the tool from the root attributes and the description,
// command and version_command children.
func newTool(root *xml.Node) (*tool.Tool, error) {
	name, err := required(root, "name")
	if err != nil {
		return nil, err
	}
	id, err := required(root, "id")
	if err != nil {
		return nil, err
	}

	var opts []tool.Option
	if strings.EqualFold(root.AttrOr("hidden", ""), "true") {
		opts = append(opts, tool.Hidden())
	}
	if strings.EqualFold(root.AttrOr("workflow_compatible", ""), "false") {
		opts = append(opts, tool.WorkflowCompatible(false))
	}
	if v, ok := root.Attr("profile"); ok {
		opts = append(opts, tool.Profile(v))
	}
	if v, ok := root.Attr("tool_type"); ok {
		opts = append(opts, tool.ToolType(v))
	}
	if v, ok := root.Attr("URL_method"); ok {
		opts = append(opts, tool.URLMethod(v))
	}

	var description, executable, command string
	for _, child := range root.Children() {
		switch child.Name() {
		case "description":
			description = child.Text()
		case "command":
			command = child.Text()
			if fields := strings.Fields(command); len(fields) > 0 {
				executable = fields[0]
			}
			if v, ok := child.Attr("interpreter"); ok {
				opts = append(opts, tool.Interpreter(v))
			}
		case "version_command":
			opts = append(opts, tool.VersionCommand(child.Text()))
		}
	}

	t, err := tool.New(name, id, root.AttrOr("version", ""), description, executable, opts...)
	if err != nil {
		return nil, err
	}
	t.Command = command
	return t, nil
}

// sectionTags are the tool children an expand can be placed after.
var sectionTags = []string{
	"description", "macros", "edam_operations", "edam_topics", "requirements",
	"stdio", "version_command", "command", "configfiles", "inputs",
	"request_param_translation", "outputs", "tests", "help", "citations",
}

func loadSection(t *tool.Tool, n *xml.Node) error {
	var err error
	switch n.Name() {
	case "description", "command", "version_command":
		logging.Debug("loaded with the tool", "tag", n.Name())
	case "help":
		t.Help = n.Text()
	case "macros":
		t.Macros, err = loadMacros(n)
	case "edam_topics":
		t.EdamTopics, err = loadEdamTopics(n)
	case "edam_operations":
		t.EdamOperations, err = loadEdamOperations(n)
	case "requirements":
		t.Requirements, err = loadRequirements(n)
	case "stdio":
		t.Stdios, err = loadStdios(n)
	case "configfiles":
		t.Configfiles, err = loadConfigfiles(n)
	case "inputs":
		t.Inputs = params.NewInputs(attrOptions(n)...)
		err = loadInputs(t.Inputs, n)
	case "request_param_translation":
		t.RequestParamTranslation, err = loadRequestParamTranslation(n)
	case "outputs":
		t.Outputs = params.NewOutputs()
		err = loadOutputs(t.Outputs, n)
	case "tests":
		t.Tests, err = loadTests(n)
	case "citations":
		t.Citations, err = loadCitations(n)
	default:
		logging.UnprocessedTag(n.Name(), "tool")
	}
	if err != nil {
		return errors.Wrapf(err, "<%s>", n.Name())
	}
	return nil
}

// required returns a mandatory attribute.
func required(n *xml.Node, key string) (string, error) {
	v, ok := n.Attr(key)
	if !ok {
		return "", errors.NewValidation(key, "", "<"+n.Name()+"> requires a "+key+" attribute")
	}
	return v, nil
}

// attrOptions passes the element's attributes through in document order,
// skipping the ones a constructor already consumed.
func attrOptions(n *xml.Node, consumed ...string) []params.Option {
	var opts []params.Option
	for _, a := range n.Attrs() {
		if slices.Contains(consumed, a.Name) {
			continue
		}
		opts = append(opts, params.Attr(a.Name, a.Value))
	}
	return opts
}

// appendAll builds each child of n with build and appends it to parent.
// build returns nil for children it skipped.
func appendAll(parent tree.Element, n *xml.Node, build func(*xml.Node, string) (tree.Element, error)) error {
	for _, child := range n.Children() {
		e, err := build(child, n.Name())
		if err != nil {
			return err
		}
		if e == nil {
			continue
		}
		if err := tree.Append(parent, e); err != nil {
			return err
		}
	}
	return nil
}
