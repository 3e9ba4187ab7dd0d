package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// DefaultLabel is written for flagged parameters declared without a label.
const DefaultLabel = "Author did not provide help for this parameter... "

// Param is the base of the <param> element types.
type Param struct {
	InputParameter
	paramType string
}

func (p *Param) initParam(self tree.Element, name, paramType string, s *settings) {
	p.init(self, "param", name, s)
	p.paramType = paramType
	p.SetAttr("type", paramType)
	s.applyAttrs(&p.Node)
	if p.numDashes > 0 {
		if arg, ok := p.Attr("argument"); ok && !p.positional {
			p.flag = arg
		} else if !p.positional {
			p.SetAttr("argument", p.Flag())
		}
		if !p.Attrs().Has("label") {
			p.SetAttr("label", DefaultLabel)
		}
	}
}

// Type returns the value of the type attribute.
func (p *Param) Type() string {
	return p.paramType
}

func (p *Param) Accepts(child tree.Element) bool {
	_, ok := child.(*ValidatorParam)
	return ok
}

// TextParam is a free text parameter.
type TextParam struct {
	Param
}

// NewTextParam creates a text parameter. Value sets its default text.
func NewTextParam(name string, opts ...Option) *TextParam {
	p := &TextParam{}
	p.initParam(p, name, "text", collect(opts))
	return p
}

// Flagged text values are quoted; positional ones render bare.
func (p *TextParam) commandLineActual() string {
	if p.positional {
		return p.Reference()
	}
	return p.Flag() + p.separator + "'" + p.Reference() + "'"
}

// IntegerParam is an integer parameter.
type IntegerParam struct {
	Param
}

// NewIntegerParam creates an integer parameter with the given default. A nil
// value leaves the attribute unset.
func NewIntegerParam(name string, value any, opts ...Option) *IntegerParam {
	p := &IntegerParam{}
	p.initParam(p, name, "integer", collect(append([]Option{Value(value)}, opts...)))
	return p
}

// FloatParam is a floating point parameter.
type FloatParam struct {
	Param
}

// NewFloatParam creates a float parameter with the given default. A nil
// value leaves the attribute unset.
func NewFloatParam(name string, value any, opts ...Option) *FloatParam {
	p := &FloatParam{}
	p.initParam(p, name, "float", collect(append([]Option{Value(value)}, opts...)))
	return p
}

// BooleanParam is a checkbox. Its command line is the bare reference;
// truevalue and falsevalue carry the flag text.
type BooleanParam struct {
	Param
}

// NewBooleanParam creates a boolean parameter. Unless given, checked
// defaults to false, truevalue to the flag and falsevalue to "".
func NewBooleanParam(name string, opts ...Option) *BooleanParam {
	p := &BooleanParam{}
	p.initParam(p, name, "boolean", collect(opts))
	if !p.Attrs().Has("checked") {
		p.SetAttr("checked", false)
	}
	if !p.Attrs().Has("truevalue") {
		p.SetAttr("truevalue", p.Flag())
	}
	if !p.Attrs().Has("falsevalue") {
		p.SetAttr("falsevalue", "")
	}
	return p
}

func (p *BooleanParam) commandLineActual() string {
	return p.Reference()
}

// DataParam selects a dataset from the history.
type DataParam struct {
	Param
}

// NewDataParam creates a data parameter; format and multiple are passed as
// options.
func NewDataParam(name string, opts ...Option) *DataParam {
	p := &DataParam{}
	p.initParam(p, name, "data", collect(opts))
	return p
}

// DataCollectionParam selects a dataset collection.
type DataCollectionParam struct {
	Param
}

// NewDataCollectionParam creates a data_collection parameter;
// collection_type is passed with Attr.
func NewDataCollectionParam(name string, opts ...Option) *DataCollectionParam {
	p := &DataCollectionParam{}
	p.initParam(p, name, "data_collection", collect(opts))
	return p
}

// HiddenParam carries a fixed value that the user never sees.
type HiddenParam struct {
	Param
}

// NewHiddenParam creates a hidden parameter.
func NewHiddenParam(name string, opts ...Option) *HiddenParam {
	p := &HiddenParam{}
	p.initParam(p, name, "hidden", collect(opts))
	return p
}

// ValidatorParam is a <validator> attached to a param.
type ValidatorParam struct {
	tree.Node
}

// NewValidatorParam creates a validator of the given type. Regular
// expressions and expressions are passed with Content.
func NewValidatorParam(validatorType string, opts ...Option) *ValidatorParam {
	v := &ValidatorParam{}
	v.Init(v, "validator")
	v.SetAttr("type", validatorType)
	cfg := collect(opts)
	cfg.applyAttrs(&v.Node)
	if cfg.text != nil {
		v.SetText(*cfg.text)
	}
	return v
}
