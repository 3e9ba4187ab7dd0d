package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// Outputs is the <outputs> section.
type Outputs struct {
	tree.Node
}

// NewOutputs creates an empty outputs section.
func NewOutputs() *Outputs {
	o := &Outputs{}
	o.Init(o, "outputs")
	return o
}

func (o *Outputs) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *OutputData, *OutputCollection, *Expand, *ExpandIO:
		return true
	}
	return false
}

// CLI joins the command lines of the outputs. Collections contribute none.
func (o *Outputs) CLI() string {
	return childLines(o)
}

// OutputData is a <data> output dataset.
type OutputData struct {
	tree.Node
	argument
}

// NewOutputData creates an output dataset. An empty format leaves the
// attribute unset; format_source, metadata_source, label, from_work_dir and
// hidden are passed as options.
func NewOutputData(name, format string, opts ...Option) *OutputData {
	o := &OutputData{}
	o.Init(o, "data")
	cfg := collect(opts)
	o.argument = newArgument(name, cfg)
	o.SetAttr("name", name)
	if format != "" {
		o.SetAttr("format", format)
	}
	cfg.applyAttrs(&o.Node)
	return o
}

func (o *OutputData) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *OutputFilter, *ChangeFormat, *DiscoverDatasets:
		return true
	}
	return false
}

// Reference returns the output's Cheetah variable.
func (o *OutputData) Reference() string {
	return "$" + o.identifier
}

// CommandLine renders the output's fragment: the reference, preceded by the
// flag unless the output is positional.
func (o *OutputData) CommandLine() string {
	if cl, ok := o.CommandLineOverride(); ok {
		return cl
	}
	if o.positional {
		return o.Reference()
	}
	return o.Flag() + o.separator + o.Reference()
}

// OutputCollection is a <collection> output.
type OutputCollection struct {
	tree.Node
}

// NewOutputCollection creates a collection output; type, label,
// format_source, type_source, structured_like and inherit_format are passed
// as options.
func NewOutputCollection(name string, opts ...Option) *OutputCollection {
	c := &OutputCollection{}
	c.Init(c, "collection")
	c.SetAttr("name", name)
	collect(opts).applyAttrs(&c.Node)
	return c
}

func (c *OutputCollection) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *OutputData, *OutputFilter, *DiscoverDatasets:
		return true
	}
	return false
}

// OutputFilter is a <filter> whose text is a Python expression deciding
// whether the output is produced.
type OutputFilter struct {
	tree.Node
}

// NewOutputFilter creates a filter holding expr.
func NewOutputFilter(expr string) *OutputFilter {
	f := &OutputFilter{}
	f.Init(f, "filter")
	f.SetText(expr)
	return f
}

// ChangeFormat holds <when> rules that switch an output's format.
type ChangeFormat struct {
	tree.Node
}

// NewChangeFormat creates an empty change_format.
func NewChangeFormat() *ChangeFormat {
	c := &ChangeFormat{}
	c.Init(c, "change_format")
	return c
}

func (c *ChangeFormat) Accepts(child tree.Element) bool {
	_, ok := child.(*ChangeFormatWhen)
	return ok
}

// ChangeFormatWhen sets format when the input named by input equals value.
type ChangeFormatWhen struct {
	tree.Node
}

// NewChangeFormatWhen creates a change_format rule.
func NewChangeFormatWhen(input, format, value string, opts ...Option) *ChangeFormatWhen {
	w := &ChangeFormatWhen{}
	w.Init(w, "when")
	w.SetAttr("input", input)
	w.SetAttr("format", format)
	w.SetAttr("value", value)
	collect(opts).applyAttrs(&w.Node)
	return w
}

// DiscoverDatasets collects outputs the tool writes under a pattern.
type DiscoverDatasets struct {
	tree.Node
}

// NewDiscoverDatasets creates a discover_datasets matching pattern, which
// may be empty for from_provided_metadata;
// directory, format, ext, visible and assign_primary_output are passed as
// options.
func NewDiscoverDatasets(pattern string, opts ...Option) *DiscoverDatasets {
	d := &DiscoverDatasets{}
	d.Init(d, "discover_datasets")
	if pattern != "" {
		d.SetAttr("pattern", pattern)
	}
	collect(opts).applyAttrs(&d.Node)
	return d
}
