package manifest

import (
	"fmt"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// optionList collects parameter options, skipping values left unset.
type optionList []params.Option

func (l *optionList) str(opt func(string) params.Option, v string) {
	if v != "" {
		*l = append(*l, opt(v))
	}
}

func (l *optionList) attr(key string, v any) {
	if v != nil {
		*l = append(*l, params.Attr(key, v))
	}
}

func (l *optionList) flag(opt func(bool) params.Option, v *bool) {
	if v != nil {
		*l = append(*l, opt(*v))
	}
}

// options returns the attribute and command-line options shared by every
// parameter kind, in the order their attributes render.
func (in *Input) options() []params.Option {
	var l optionList
	l.str(params.Label, in.Label)
	l.str(params.Help, in.Help)
	l.str(params.Format, in.Format)
	l.flag(params.Optional, in.Optional)
	l.attr("min", in.Min)
	l.attr("max", in.Max)
	l.flag(params.Multiple, in.Multiple)
	l.str(params.Argument, in.Argument)
	if in.NumDashes > 0 {
		l = append(l, params.NumDashes(in.NumDashes))
	}
	if in.Positional {
		l = append(l, params.Positional())
	}
	if in.Separator != nil {
		l = append(l, params.Separator(*in.Separator))
	}
	l.str(params.CommandLineOverride, in.CommandLine)
	return l
}

func buildInputs(ins []Input) (*params.Inputs, error) {
	inputs := params.NewInputs()
	if err := appendInputs(inputs, ins, "inputs"); err != nil {
		return nil, err
	}
	return inputs, nil
}

func appendInputs(parent tree.Element, ins []Input, path string) error {
	for i := range ins {
		at := fmt.Sprintf("%s[%d]", path, i)
		e, err := buildInput(&ins[i], at)
		if err != nil {
			return err
		}
		if err := tree.Append(parent, e); err != nil {
			return errors.Wrapf(err, "%s", at)
		}
	}
	return nil
}

func buildInput(in *Input, path string) (tree.Element, error) {
	if in.Name == "" && in.Argument == "" {
		return nil, errors.NewValidation(path+".name", "", "is required")
	}
	if in.Name == "" {
		named := *in
		named.Name = params.NameFromArgument(in.Argument)
		in = &named
	}
	kind := or(in.Kind, "text")
	opts := in.options()

	var p tree.Element
	switch kind {
	case "text":
		if in.Value != nil {
			opts = append(opts, params.Value(in.Value))
		}
		p = params.NewTextParam(in.Name, opts...)
	case "integer":
		p = params.NewIntegerParam(in.Name, in.Value, opts...)
	case "float":
		p = params.NewFloatParam(in.Name, in.Value, opts...)
	case "boolean":
		var l optionList
		l.flag(params.Checked, in.Checked)
		l.str(params.TrueValue, in.TrueValue)
		l.str(params.FalseValue, in.FalseValue)
		p = params.NewBooleanParam(in.Name, append(opts, l...)...)
	case "data":
		p = params.NewDataParam(in.Name, opts...)
	case "data_collection":
		p = params.NewDataCollectionParam(in.Name, opts...)
	case "hidden":
		if in.Value != nil {
			opts = append(opts, params.Value(in.Value))
		}
		p = params.NewHiddenParam(in.Name, opts...)
	case "select":
		if len(in.Options) > 0 {
			opts = append(opts, params.SelectOptions(in.Options))
		}
		if in.Default != "" {
			opts = append(opts, params.Default(in.Default))
		}
		sel, err := params.NewSelectParam(in.Name, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		p = sel
	case "section":
		s := params.NewSection(in.Name, in.Title, sectionOptions(in)...)
		return s, appendInputs(s, in.Inputs, path+".inputs")
	case "repeat":
		r := params.NewRepeat(in.Name, in.Title, sectionOptions(in)...)
		return r, appendInputs(r, in.Inputs, path+".inputs")
	case "conditional":
		return buildConditional(in, path)
	default:
		return nil, errors.NewValidation(path+".kind", kind, "unknown input kind")
	}

	for i, v := range in.Validators {
		if err := tree.Append(p, buildValidator(v)); err != nil {
			return nil, errors.Wrapf(err, "%s.validators[%d]", path, i)
		}
	}
	return p, nil
}

// sectionOptions keeps the attributes a section or repeat carries. Their
// command line is made of their children.
func sectionOptions(in *Input) []params.Option {
	var l optionList
	l.str(params.Help, in.Help)
	l.attr("min", in.Min)
	l.attr("max", in.Max)
	return l
}

func buildConditional(in *Input, path string) (tree.Element, error) {
	if in.Select == nil {
		return nil, errors.NewValidation(path+".select", "", "a conditional needs a select discriminator")
	}
	c := params.NewConditional(in.Name)
	disc := *in.Select
	disc.Kind = "select"
	sel, err := buildInput(&disc, path+".select")
	if err != nil {
		return nil, err
	}
	if err := tree.Append(c, sel); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	for i, w := range in.Whens {
		at := fmt.Sprintf("%s.whens[%d]", path, i)
		when := params.NewWhen(w.Value)
		if err := appendInputs(when, w.Inputs, at+".inputs"); err != nil {
			return nil, err
		}
		if err := tree.Append(c, when); err != nil {
			return nil, errors.Wrapf(err, "%s", at)
		}
	}
	return c, nil
}

func buildValidator(v Validator) *params.ValidatorParam {
	var l optionList
	l.str(func(s string) params.Option { return params.Attr("message", s) }, v.Message)
	l.attr("min", v.Min)
	l.attr("max", v.Max)
	l.str(params.Content, v.Content)
	return params.NewValidatorParam(v.Type, l...)
}
