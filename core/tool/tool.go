// Package tool assembles Galaxy tool wrapper documents from their sections
// and exports them as XML.
package tool

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

// Valid values for the tool_type and URL_method attributes.
var (
	ValidToolTypes  = []string{"data_source", "data_source_async"}
	ValidURLMethods = []string{"get", "post"}
)

var profilePattern = regexp.MustCompile(`^\d+\.\d+$`)

// Tool is a tool wrapper document. Sections left nil are omitted from the
// export, or replaced by an <expand> placeholder when macro files are
// configured.
type Tool struct {
	Name        string
	ID          string
	Version     string
	Description string
	Executable  string

	Interpreter        string
	VersionCommand     string
	Profile            string
	Hidden             bool
	WorkflowCompatible bool
	ToolType           string
	URLMethod          string

	// CommandOverride replaces the synthesized command text when non-empty.
	CommandOverride string
	// Command is a previously recorded command text, reused by
	// ExportOptions.KeepOldCommand.
	Command string
	Help    string

	Macros                  *params.Macros
	EdamOperations          *params.EdamOperations
	EdamTopics              *params.EdamTopics
	Requirements            *params.Requirements
	Stdios                  *params.Stdios
	Configfiles             *params.Configfiles
	Inputs                  *params.Inputs
	RequestParamTranslation *params.RequestParamTranslation
	Outputs                 *params.Outputs
	Tests                   *params.Tests
	Citations               *params.Citations

	// Expands are top-level <expand> elements written in place.
	Expands []Expand
	// ExplicitExpands turns off the placeholders generated for absent
	// requirements, tests and citations, leaving only Expands.
	ExplicitExpands bool

	comments []string
}

// Expand is a top-level macro expansion written after the section named
// After. An empty After places it before the description.
type Expand struct {
	Macro string
	After string
}

// Option configures a Tool at construction.
type Option func(*Tool)

// Hidden hides the tool from the tool panel.
func Hidden() Option { return func(t *Tool) { t.Hidden = true } }

// WorkflowCompatible sets whether the tool may be used in workflows.
func WorkflowCompatible(ok bool) Option { return func(t *Tool) { t.WorkflowCompatible = ok } }

// ToolType marks a data source tool.
func ToolType(toolType string) Option { return func(t *Tool) { t.ToolType = toolType } }

// URLMethod sets how a data source tool calls back; it requires ToolType.
func URLMethod(method string) Option { return func(t *Tool) { t.URLMethod = method } }

// Interpreter sets the command interpreter attribute.
func Interpreter(interpreter string) Option { return func(t *Tool) { t.Interpreter = interpreter } }

// VersionCommand sets the command that prints the wrapped tool's version.
func VersionCommand(cmd string) Option { return func(t *Tool) { t.VersionCommand = cmd } }

// Profile sets the Galaxy profile the tool targets, such as "21.05".
func Profile(profile string) Option { return func(t *Tool) { t.Profile = profile } }

// CommandOverride replaces the synthesized command text.
func CommandOverride(cmd string) Option { return func(t *Tool) { t.CommandOverride = cmd } }

// MacroFiles imports the given macro files. Sections left unset then export
// as <expand> placeholders.
func MacroFiles(files ...string) Option {
	return func(t *Tool) {
		if t.Macros == nil {
			t.Macros = params.NewMacros()
		}
		for _, f := range files {
			tree.MustAppend(t.Macros, params.NewImport(f))
		}
	}
}

// New creates a tool document.
func New(name, id, version, description, executable string, opts ...Option) (*Tool, error) {
	t := &Tool{
		Name:               name,
		ID:                 id,
		Version:            version,
		Description:        description,
		Executable:         executable,
		WorkflowCompatible: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tool) validate() error {
	if t.ToolType != "" && !slices.Contains(ValidToolTypes, t.ToolType) {
		return errors.NewValidation("tool_type", t.ToolType,
			"must be one of "+strings.Join(ValidToolTypes, ","))
	}
	if t.URLMethod != "" && !slices.Contains(ValidURLMethods, t.URLMethod) {
		return errors.NewValidation("URL_method", t.URLMethod,
			"must be one of "+strings.Join(ValidURLMethods, ","))
	}
	if t.Profile != "" && !profilePattern.MatchString(t.Profile) {
		return errors.NewValidation("profile", t.Profile, "must look like 21.05")
	}
	return nil
}

// AddComment adds an XML comment written before the description.
func (t *Tool) AddComment(text string) {
	t.comments = append(t.comments, text)
}

// Comments returns the comments added with AddComment.
func (t *Tool) Comments() []string {
	return slices.Clone(t.comments)
}

// HasMacros reports whether a macros section is configured.
func (t *Tool) HasMacros() bool {
	return t.Macros != nil
}

// ExportOptions controls command synthesis during export.
type ExportOptions struct {
	// KeepOldCommand reuses Tool.Command verbatim instead of deriving the
	// command from the inputs and outputs.
	KeepOldCommand bool
}

// rootElement is the <tool> or <macros> document root.
type rootElement struct {
	tree.Node
}

func newRoot(tag string) *rootElement {
	r := &rootElement{}
	r.Init(r, tag)
	return r
}

func (r *rootElement) Accepts(tree.Element) bool {
	return true
}

// Export renders the document. The tool itself is not modified; every
// section is copied before it is attached to the output tree.
func (t *Tool) Export(opts ExportOptions) (string, error) {
	root, err := t.Document(opts)
	if err != nil {
		return "", err
	}
	return tree.Render(root), nil
}

// Document builds the exported element tree.
func (t *Tool) Document(opts ExportOptions) (tree.Element, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	inputs := tree.Snapshot(t.Inputs)
	outputs := tree.Snapshot(t.Outputs)

	command, err := t.commandText(inputs, outputs, opts)
	if err != nil {
		return nil, err
	}

	root := newRoot("tool")
	root.SetAttr("name", t.Name)
	root.SetAttr("id", t.ID)
	root.SetAttr("version", t.Version)
	if t.Hidden {
		root.SetAttr("hidden", true)
	}
	if !t.WorkflowCompatible {
		root.SetAttr("workflow_compatible", false)
	}
	if t.Profile != "" {
		root.SetAttr("profile", t.Profile)
	}
	if t.ToolType != "" {
		root.SetAttr("tool_type", t.ToolType)
		if t.URLMethod != "" {
			root.SetAttr("URL_method", t.URLMethod)
		}
	}

	add := func(e tree.Element) {
		if e != nil {
			tree.MustAppend(root, e)
		}
	}
	// step adds a section, then the expands placed after it.
	step := func(section string, e tree.Element) {
		add(e)
		for _, x := range t.Expands {
			if x.After == section {
				add(params.NewExpand(x.Macro))
			}
		}
	}

	for _, c := range t.comments {
		add(tree.NewComment(c))
	}
	step("", nil)
	var description, versionCommand tree.Element
	if t.Description != "" {
		description = textElement("description", t.Description, false)
	}
	step("description", description)
	step("macros", orNil(tree.Snapshot(t.Macros)))
	step("edam_operations", orNil(tree.Snapshot(t.EdamOperations)))
	step("edam_topics", orNil(tree.Snapshot(t.EdamTopics)))
	step("requirements", t.sectionOrExpand("requirements", orNil(tree.Snapshot(t.Requirements)), "requirements"))
	if t.Stdios != nil {
		step("stdio", tree.Snapshot(t.Stdios))
	} else {
		step("stdio", params.DefaultStdios())
	}
	if t.VersionCommand != "" {
		versionCommand = textElement("version_command", t.VersionCommand, true)
	}
	step("version_command", versionCommand)

	cmd := textElement("command", command, true)
	if t.Interpreter != "" {
		cmd.SetAttr("interpreter", t.Interpreter)
	}
	step("command", cmd)

	step("configfiles", orNil(tree.Snapshot(t.Configfiles)))
	step("inputs", orNil(inputs))
	step("request_param_translation", orNil(tree.Snapshot(t.RequestParamTranslation)))
	step("outputs", orNil(outputs))
	step("tests", t.sectionOrExpand("tests", orNil(tree.Snapshot(t.Tests)), t.ID+"_tests"))
	step("help", textElement("help", t.Help, true))
	step("citations", t.sectionOrExpand("citations", orNil(tree.Snapshot(t.Citations)), "citations"))
	return root, nil
}

// commandText synthesizes the command template from the copied inputs and
// outputs.
func (t *Tool) commandText(inputs *params.Inputs, outputs *params.Outputs, opts ExportOptions) (string, error) {
	if t.CommandOverride != "" {
		return t.CommandOverride, nil
	}
	if opts.KeepOldCommand {
		if t.Command != "" {
			return t.Command, nil
		}
		logging.Warn("no recorded command to keep, using the executable",
			"tool", t.ID, "executable", t.Executable)
		return t.Executable, nil
	}
	if inputs == nil {
		err := errors.NewMissingSection("inputs")
		logging.Error("cannot build command", "tool", t.ID, "error", err)
		return "", errors.Wrapf(err, "export %s", t.ID)
	}

	inputLines := inputs.CLI()
	if inputLines == "" {
		logging.Warn("inputs produced no command line", "tool", t.ID)
	}
	var outputLines string
	if outputs != nil {
		outputLines = outputs.CLI()
	} else {
		logging.SectionMissing("outputs", "none", "tool", t.ID)
	}

	var lines []string
	for _, l := range []string{inputLines, outputLines} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", t.Executable, strings.Join(lines, "\n"))), nil
}

// sectionOrExpand returns section, or an expand of macro when the section is
// absent, macros are configured and ExplicitExpands is off.
func (t *Tool) sectionOrExpand(name string, section tree.Element, macro string) tree.Element {
	if section != nil {
		return section
	}
	if !t.HasMacros() || t.ExplicitExpands {
		return nil
	}
	logging.SectionMissing(name, "expand", "macro", macro)
	return params.NewExpand(macro)
}

// textNode is a leaf element holding text or CDATA.
type textNode struct {
	tree.Node
}

func textElement(tag, text string, cdata bool) *textNode {
	n := &textNode{}
	n.Init(n, tag)
	if cdata {
		n.SetCDATA(text)
	} else {
		n.SetText(text)
	}
	return n
}

// orNil turns a typed nil pointer into an untyped nil element.
func orNil[E interface {
	tree.Element
	comparable
}](e E) tree.Element {
	var zero E
	if e == zero {
		return nil
	}
	return e
}
