package importer

import (
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

// loadInputs appends the parameters under n to parent. It serves inputs,
// sections, repeats, conditionals and when branches.
func loadInputs(parent tree.Element, n *xml.Node) error {
	return appendAll(parent, n, inputElement)
}

func inputElement(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "param":
		return paramElement(n, parent)
	case "conditional":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		if kids := n.Children(); len(kids) == 0 || kids[0].Name() != "param" || kids[0].AttrOr("type", "") != "select" {
			logging.Warn("skipping conditional without a select discriminator",
				"conditional", name, "parent", parent)
			return nil, nil
		}
		c := params.NewConditional(name, attrOptions(n, "name")...)
		return c, loadInputs(c, n)
	case "when":
		value, err := required(n, "value")
		if err != nil {
			return nil, err
		}
		w := params.NewWhen(value)
		return w, loadInputs(w, n)
	case "section":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		s := params.NewSection(name, n.AttrOr("title", ""), attrOptions(n, "name", "title")...)
		return s, loadInputs(s, n)
	case "repeat":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		r := params.NewRepeat(name, n.AttrOr("title", ""), attrOptions(n, "name", "title")...)
		return r, loadInputs(r, n)
	case "expand":
		return params.NewExpand(n.AttrOr("macro", "")), nil
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

// paramName returns the name attribute, or the name Galaxy derives from
// argument when name is absent.
func paramName(n *xml.Node) (string, error) {
	if name, ok := n.Attr("name"); ok {
		return name, nil
	}
	if arg, ok := n.Attr("argument"); ok {
		return params.NameFromArgument(arg), nil
	}
	return required(n, "name")
}

func paramElement(n *xml.Node, parent string) (tree.Element, error) {
	paramType, err := required(n, "type")
	if err != nil {
		return nil, err
	}
	name, err := paramName(n)
	if err != nil {
		return nil, err
	}
	opts := attrOptions(n, "name", "type")

	var p tree.Element
	switch paramType {
	case "text":
		p = params.NewTextParam(name, opts...)
	case "integer":
		p = params.NewIntegerParam(name, nil, opts...)
	case "float":
		p = params.NewFloatParam(name, nil, opts...)
	case "boolean":
		p = params.NewBooleanParam(name, opts...)
	case "data":
		p = params.NewDataParam(name, opts...)
	case "data_collection":
		p = params.NewDataCollectionParam(name, opts...)
	case "hidden":
		p = params.NewHiddenParam(name, opts...)
	case "select":
		sel, err := params.NewSelectParam(name, opts...)
		if err != nil {
			return nil, err
		}
		return sel, appendAll(sel, n, selectChild)
	default:
		logging.UnprocessedTag("param type="+paramType, parent)
		return nil, nil
	}
	return p, appendAll(p, n, paramChild)
}

func paramChild(n *xml.Node, parent string) (tree.Element, error) {
	if n.Name() == "validator" {
		return validatorElement(n)
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

func selectChild(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "option":
		selected := strings.EqualFold(n.AttrOr("selected", ""), "true")
		return params.NewSelectOption(n.AttrOr("value", ""), n.Text(), selected), nil
	case "options":
		o := params.NewDynamicOptions(attrOptions(n)...)
		return o, appendAll(o, n, optionsChild)
	case "validator":
		return validatorElement(n)
	}
	logging.UnprocessedTag(n.Name(), "param type=select")
	return nil, nil
}

func optionsChild(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "column":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		return params.NewOptionsColumn(name, n.AttrOr("index", "")), nil
	case "filter":
		filterType, err := required(n, "type")
		if err != nil {
			return nil, err
		}
		return params.NewOptionsFilter(filterType, attrOptions(n, "type")...), nil
	case "validator":
		return validatorElement(n)
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

func validatorElement(n *xml.Node) (tree.Element, error) {
	validatorType, err := required(n, "type")
	if err != nil {
		return nil, err
	}
	opts := attrOptions(n, "type")
	if n.HasText() {
		if text := n.Text(); strings.TrimSpace(text) != "" {
			opts = append(opts, params.Content(text))
		}
	}
	return params.NewValidatorParam(validatorType, opts...), nil
}
