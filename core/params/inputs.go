// Package params defines the typed elements of a tool document and derives
// the Cheetah command-line template from the input and output trees.
package params

import (
	"fmt"
	"slices"
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// inputParameter is implemented by elements that may sit inside an inputs
// container.
type inputParameter interface {
	tree.Element
	isInputParameter()
}

// identified is implemented by elements whose identifier takes part in
// variable-reference paths.
type identified interface {
	Identifier() string
}

// acceptsInput is the child rule shared by inputs, sections, repeats, when
// branches and XML macros.
func acceptsInput(child tree.Element) bool {
	switch child.(type) {
	case *When:
		return false
	case *Expand, *ExpandIO:
		return true
	case inputParameter:
		return true
	}
	return false
}

// InputParameter is the base of every element that contributes to the
// command line from the inputs tree.
type InputParameter struct {
	tree.Node
	argument
}

func (p *InputParameter) init(self tree.Element, tag, name string, s *settings) {
	p.Init(self, tag)
	p.argument = newArgument(name, s)
	if name != "" {
		p.SetAttr("name", name)
	}
}

func (p *InputParameter) isInputParameter() {}

// Reference returns the Cheetah variable for the parameter: "$" followed by
// the dot-joined identifiers of its identified ancestors. A repeat ancestor
// contributes its loop variable and ends the walk.
func (p *InputParameter) Reference() string {
	parts := []string{p.identifier}
	for anc := p.Parent(); anc != nil; anc = anc.Base().Parent() {
		if r, ok := anc.(*Repeat); ok {
			parts = append(parts, r.LoopVariable())
			break
		}
		if id, ok := anc.(identified); ok && id.Identifier() != "" {
			parts = append(parts, id.Identifier())
		}
	}
	slices.Reverse(parts)
	return "$" + strings.Join(parts, ".")
}

func (p *InputParameter) commandLineActual() string {
	if p.positional {
		return p.Reference()
	}
	return p.Flag() + p.separator + p.Reference()
}

// Inputs is the <inputs> section.
type Inputs struct {
	tree.Node
}

// NewInputs creates an inputs section. Data-source tools pass action,
// check_value, method, target and nginx_upload as attributes.
func NewInputs(opts ...Option) *Inputs {
	i := &Inputs{}
	i.Init(i, "inputs")
	collect(opts).applyAttrs(&i.Node)
	return i
}

func (i *Inputs) Accepts(child tree.Element) bool {
	return acceptsInput(child)
}

// CLI joins the command lines of the top-level inputs.
func (i *Inputs) CLI() string {
	return childLines(i)
}

// Section groups parameters under a collapsible heading. Its children are
// flattened into the command line.
type Section struct {
	InputParameter
}

// NewSection creates a section; expanded and help are passed as options.
func NewSection(name, title string, opts ...Option) *Section {
	s := &Section{}
	cfg := collect(opts)
	s.init(s, "section", name, cfg)
	s.SetAttr("title", title)
	cfg.applyAttrs(&s.Node)
	return s
}

func (s *Section) Accepts(child tree.Element) bool {
	return acceptsInput(child)
}

func (s *Section) commandLineActual() string {
	return childLines(s)
}

// Repeat holds parameters the user may supply any number of times. Its
// children are rendered inside a #for loop.
type Repeat struct {
	InputParameter
}

// NewRepeat creates a repeat; min, max and default are passed as options.
func NewRepeat(name, title string, opts ...Option) *Repeat {
	r := &Repeat{}
	cfg := collect(opts)
	r.init(r, "repeat", name, cfg)
	r.SetAttr("title", title)
	cfg.applyAttrs(&r.Node)
	return r
}

func (r *Repeat) Accepts(child tree.Element) bool {
	return acceptsInput(child)
}

// LoopVariable names the variable bound by the repeat's #for loop.
func (r *Repeat) LoopVariable() string {
	return "i_" + r.identifier
}

func (r *Repeat) commandLineBefore() string {
	if r.before != nil {
		return *r.before
	}
	return fmt.Sprintf("#for $%s in %s:", r.LoopVariable(), r.Reference())
}

func (r *Repeat) commandLineActual() string {
	return childLines(r)
}

func (r *Repeat) commandLineAfter() string {
	if r.after != nil {
		return *r.after
	}
	return "#end for"
}

// Conditional switches between when branches on the value of its first
// child, a select parameter.
type Conditional struct {
	InputParameter
}

// NewConditional creates a conditional. Append the discriminating select
// first, then one When per branch.
func NewConditional(name string, opts ...Option) *Conditional {
	c := &Conditional{}
	cfg := collect(opts)
	c.init(c, "conditional", name, cfg)
	cfg.applyAttrs(&c.Node)
	return c
}

func (c *Conditional) Accepts(child tree.Element) bool {
	if c.Len() == 0 {
		_, ok := child.(*SelectParam)
		return ok
	}
	_, ok := child.(*When)
	return ok
}

// Discriminator returns the select parameter the branches are keyed on.
func (c *Conditional) Discriminator() *SelectParam {
	sel, _ := c.Child(0).(*SelectParam)
	return sel
}

// Whens returns the branches in append order.
func (c *Conditional) Whens() []*When {
	var whens []*When
	for _, child := range c.Children() {
		if w, ok := child.(*When); ok {
			whens = append(whens, w)
		}
	}
	return whens
}

// CommandLine renders one #if block per branch with command-line content.
func (c *Conditional) CommandLine() string {
	if cl, ok := c.CommandLineOverride(); ok {
		return cl
	}
	sel := c.Discriminator()
	if sel == nil {
		return ""
	}
	ref := sel.Reference()
	var lines []string
	for _, w := range c.Whens() {
		body := CommandLine(w)
		if body == "" {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("#if str(%s) == \"%s\"", ref, w.Value()),
			body,
			"#end if")
	}
	return strings.Join(lines, "\n")
}

// Validate checks that the conditional has a discriminator, that no branch
// value repeats, and that every branch value is one of the discriminator's
// static options. Branches may be missing for some options. Discriminators
// with dynamic options are not checked against their values.
func (c *Conditional) Validate() error {
	field := "conditional " + c.identifier
	sel := c.Discriminator()
	if sel == nil {
		return errors.NewValidation(field, "", "first child must be a select parameter")
	}
	declared := sel.OptionValues()
	seen := make(map[string]bool)
	for _, w := range c.Whens() {
		v := w.Value()
		if seen[v] {
			return errors.NewValidation(field, v, fmt.Sprintf("when value %q appears more than once", v))
		}
		seen[v] = true
		if !sel.HasDynamicOptions() && !slices.Contains(declared, v) {
			return errors.NewValidation(field, v,
				fmt.Sprintf("when value %q is not an option of %s", v, sel.Identifier()))
		}
	}
	return nil
}

// When is one branch of a conditional.
type When struct {
	InputParameter
}

// NewWhen creates the branch selected when the discriminator equals value.
func NewWhen(value string) *When {
	w := &When{}
	w.init(w, "when", "", &settings{})
	w.SetAttr("value", value)
	return w
}

func (w *When) Accepts(child tree.Element) bool {
	return acceptsInput(child)
}

// Value returns the discriminator value the branch is keyed on.
func (w *When) Value() string {
	v, _ := w.Attr("value")
	return v
}

func (w *When) commandLineActual() string {
	return childLines(w)
}
