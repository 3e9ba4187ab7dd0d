package params

import (
	"slices"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// SelectParam is a drop-down or multi-select of static or dynamic options.
type SelectParam struct {
	Param
}

// NewSelectParam creates a select. Static options given with SelectOptions
// are appended in sorted value order; a Default that is not one of them is
// rejected before anything is built.
func NewSelectParam(name string, opts ...Option) (*SelectParam, error) {
	cfg := collect(opts)
	values := make([]string, 0, len(cfg.options))
	for v := range cfg.options {
		values = append(values, v)
	}
	slices.Sort(values)
	if cfg.def != nil && cfg.options != nil && !slices.Contains(values, *cfg.def) {
		return nil, errors.NewInvalidDefault(name, *cfg.def, values)
	}

	p := &SelectParam{}
	p.initParam(p, name, "select", cfg)
	for _, v := range values {
		selected := cfg.def != nil && *cfg.def == v
		if err := p.Append(NewSelectOption(v, cfg.options[v], selected)); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustSelectParam is like NewSelectParam but panics on an invalid default.
func MustSelectParam(name string, opts ...Option) *SelectParam {
	p, err := NewSelectParam(name, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *SelectParam) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *SelectOption, *DynamicOptions, *ValidatorParam:
		return true
	}
	return false
}

// OptionValues returns the values of the static options in order.
func (p *SelectParam) OptionValues() []string {
	var values []string
	for _, child := range p.Children() {
		if o, ok := child.(*SelectOption); ok {
			values = append(values, o.Value())
		}
	}
	return values
}

// HasDynamicOptions reports whether the option list is filled at run time.
func (p *SelectParam) HasDynamicOptions() bool {
	for _, child := range p.Children() {
		if _, ok := child.(*DynamicOptions); ok {
			return true
		}
	}
	return false
}

// SelectOption is a static <option> of a select.
type SelectOption struct {
	tree.Node
}

// NewSelectOption creates an option; text is what the user sees.
func NewSelectOption(value, text string, selected bool) *SelectOption {
	o := &SelectOption{}
	o.Init(o, "option")
	o.SetAttr("value", value)
	if selected {
		o.SetAttr("selected", true)
	}
	o.SetText(text)
	return o
}

// Value returns the option's value attribute.
func (o *SelectOption) Value() string {
	v, _ := o.Attr("value")
	return v
}

// DynamicOptions is an <options> element filling a select at run time from
// a dataset, file, data table or parameter.
type DynamicOptions struct {
	tree.Node
}

// NewDynamicOptions creates an options element; from_dataset, from_file,
// from_data_table, from_parameter, options_filter_attribute and
// meta_file_key are passed with Attr.
func NewDynamicOptions(opts ...Option) *DynamicOptions {
	d := &DynamicOptions{}
	d.Init(d, "options")
	collect(opts).applyAttrs(&d.Node)
	return d
}

func (d *DynamicOptions) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *OptionsColumn, *OptionsFilter, *ValidatorParam:
		return true
	}
	return false
}

// OptionsColumn maps a column of the option source to name or value.
type OptionsColumn struct {
	tree.Node
}

// NewOptionsColumn creates a <column name=... index=...>.
func NewOptionsColumn(name string, index any) *OptionsColumn {
	c := &OptionsColumn{}
	c.Init(c, "column")
	c.SetAttr("name", name)
	c.SetAttr("index", index)
	return c
}

// OptionsFilter narrows dynamic options.
type OptionsFilter struct {
	tree.Node
}

// NewOptionsFilter creates a <filter type=...>; column, name, ref, key,
// multiple, separator, keep, value and ref_attribute are passed with Attr.
func NewOptionsFilter(filterType string, opts ...Option) *OptionsFilter {
	f := &OptionsFilter{}
	f.Init(f, "filter")
	f.SetAttr("type", filterType)
	collect(opts).applyAttrs(&f.Node)
	return f
}
