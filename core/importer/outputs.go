package importer

import (
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

func loadOutputs(outputs *params.Outputs, n *xml.Node) error {
	return appendAll(outputs, n, outputElement)
}

func outputElement(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "data":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		d := params.NewOutputData(name, "", attrOptions(n, "name")...)
		return d, appendAll(d, n, outputChild)
	case "collection":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		c := params.NewOutputCollection(name, attrOptions(n, "name")...)
		return c, appendAll(c, n, collectionChild)
	case "expand":
		return params.NewExpand(n.AttrOr("macro", "")), nil
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

// outputChild builds the children of <data>.
func outputChild(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "filter":
		return params.NewOutputFilter(n.Text()), nil
	case "change_format":
		cf := params.NewChangeFormat()
		return cf, appendAll(cf, n, changeFormatWhen)
	case "discover_datasets":
		return params.NewDiscoverDatasets("", attrOptions(n)...), nil
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

// collectionChild builds the children of <collection>.
func collectionChild(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "data":
		return outputElement(n, parent)
	case "filter", "discover_datasets":
		return outputChild(n, parent)
	}
	logging.UnprocessedTag(n.Name(), parent)
	return nil, nil
}

func changeFormatWhen(n *xml.Node, parent string) (tree.Element, error) {
	if n.Name() != "when" {
		logging.UnprocessedTag(n.Name(), parent)
		return nil, nil
	}
	for _, key := range []string{"input", "format", "value"} {
		if _, err := required(n, key); err != nil {
			return nil, err
		}
	}
	return params.NewChangeFormatWhen(n.AttrOr("input", ""), n.AttrOr("format", ""), n.AttrOr("value", ""),
		attrOptions(n, "input", "format", "value")...), nil
}
