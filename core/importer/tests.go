package importer

import (
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

func loadTests(n *xml.Node) (*params.Tests, error) {
	tests := params.NewTests()
	err := appendAll(tests, n, func(c *xml.Node, parent string) (tree.Element, error) {
		switch c.Name() {
		case "test":
			t := params.NewTest(attrOptions(c)...)
			return t, appendAll(t, c, testChild)
		case "expand":
			return params.NewExpand(c.AttrOr("macro", "")), nil
		}
		logging.UnprocessedTag(c.Name(), parent)
		return nil, nil
	})
	return tests, err
}

func testChild(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "output":
		o := params.NewTestOutput(attrOptions(n)...)
		return o, appendAll(o, n, testElement)
	case "output_collection":
		name, err := required(n, "name")
		if err != nil {
			return nil, err
		}
		c := params.NewTestOutputCollection(name, attrOptions(n, "name")...)
		return c, appendAll(c, n, testElement)
	case "expand":
		return params.NewExpand(n.AttrOr("macro", "")), nil
	}
	return testInput(n, parent)
}

// testInput builds the input side of a test: params and their repeat,
// section and conditional groupings.
func testInput(n *xml.Node, parent string) (tree.Element, error) {
	switch n.Name() {
	case "param", "repeat", "section", "conditional":
	default:
		logging.UnprocessedTag(n.Name(), parent)
		return nil, nil
	}
	name, err := required(n, "name")
	if err != nil {
		return nil, err
	}
	opts := attrOptions(n, "name")

	var e tree.Element
	switch n.Name() {
	case "param":
		p := params.NewTestParam(name, opts...)
		for _, c := range n.Children() {
			logging.UnprocessedTag(c.Name(), "param")
		}
		return p, nil
	case "repeat":
		e = params.NewTestRepeat(name, opts...)
	case "section":
		e = params.NewTestSection(name, opts...)
	default:
		e = params.NewTestConditional(name, opts...)
	}
	return e, appendAll(e, n, testInput)
}

func testElement(n *xml.Node, parent string) (tree.Element, error) {
	if n.Name() != "element" {
		logging.UnprocessedTag(n.Name(), parent)
		return nil, nil
	}
	name, err := required(n, "name")
	if err != nil {
		return nil, err
	}
	e := params.NewTestOCElement(name, attrOptions(n, "name")...)
	return e, appendAll(e, n, testElement)
}
