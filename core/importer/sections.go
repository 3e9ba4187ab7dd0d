package importer

import (
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

func loadMacros(n *xml.Node) (*params.Macros, error) {
	m := params.NewMacros()
	err := appendAll(m, n, func(c *xml.Node, parent string) (tree.Element, error) {
		switch c.Name() {
		case "import":
			return params.NewImport(c.Text()), nil
		case "token":
			name, err := required(c, "name")
			if err != nil {
				return nil, err
			}
			return params.NewToken(name, c.Text()), nil
		case "xml":
			return loadXMLMacro(c)
		}
		logging.UnprocessedTag(c.Name(), parent)
		return nil, nil
	})
	return m, err
}

func loadXMLMacro(n *xml.Node) (tree.Element, error) {
	name, err := required(n, "name")
	if err != nil {
		return nil, err
	}
	x := params.NewXMLMacro(name)
	err = appendAll(x, n, func(c *xml.Node, parent string) (tree.Element, error) {
		switch c.Name() {
		case "data", "collection":
			return outputElement(c, parent)
		case "requirements":
			return loadRequirements(c)
		case "tests":
			return loadTests(c)
		case "citations":
			return loadCitations(c)
		}
		return inputElement(c, parent)
	})
	return x, err
}

func loadEdamTopics(n *xml.Node) (*params.EdamTopics, error) {
	e := params.NewEdamTopics()
	err := appendAll(e, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "edam_topic" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		return params.NewEdamTopic(c.Text()), nil
	})
	return e, err
}

func loadEdamOperations(n *xml.Node) (*params.EdamOperations, error) {
	e := params.NewEdamOperations()
	err := appendAll(e, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "edam_operation" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		return params.NewEdamOperation(c.Text()), nil
	})
	return e, err
}

func loadRequirements(n *xml.Node) (*params.Requirements, error) {
	r := params.NewRequirements()
	err := appendAll(r, n, func(c *xml.Node, parent string) (tree.Element, error) {
		switch c.Name() {
		case "requirement":
			reqType, err := required(c, "type")
			if err != nil {
				return nil, err
			}
			return params.NewRequirement(reqType, c.Text(), attrOptions(c, "type")...), nil
		case "container":
			containerType, err := required(c, "type")
			if err != nil {
				return nil, err
			}
			return params.NewContainer(containerType, c.Text()), nil
		case "expand":
			return params.NewExpand(c.AttrOr("macro", "")), nil
		}
		logging.UnprocessedTag(c.Name(), parent)
		return nil, nil
	})
	return r, err
}

func loadStdios(n *xml.Node) (*params.Stdios, error) {
	s := params.NewStdios()
	err := appendAll(s, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "exit_code" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		return params.NewStdio(c.AttrOr("range", ""), c.AttrOr("level", ""), attrOptions(c, "range", "level")...), nil
	})
	return s, err
}

func loadConfigfiles(n *xml.Node) (*params.Configfiles, error) {
	cf := params.NewConfigfiles()
	err := appendAll(cf, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "configfile" && c.Name() != "inputs" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		name, err := required(c, "name")
		if err != nil {
			return nil, err
		}
		if c.Name() == "inputs" {
			return params.NewConfigfileDefaultInputs(name, attrOptions(c, "name")...), nil
		}
		return params.NewConfigfile(name, c.Text()), nil
	})
	return cf, err
}

func loadCitations(n *xml.Node) (*params.Citations, error) {
	cs := params.NewCitations()
	err := appendAll(cs, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "citation" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		citationType, err := required(c, "type")
		if err != nil {
			return nil, err
		}
		return params.NewCitation(citationType, c.Text()), nil
	})
	return cs, err
}

func loadRequestParamTranslation(n *xml.Node) (*params.RequestParamTranslation, error) {
	rpt := params.NewRequestParamTranslation()
	err := appendAll(rpt, n, func(c *xml.Node, parent string) (tree.Element, error) {
		if c.Name() != "request_param" {
			logging.UnprocessedTag(c.Name(), parent)
			return nil, nil
		}
		rp := params.NewRequestParam(c.AttrOr("galaxy_name", ""), c.AttrOr("remote_name", ""), c.AttrOr("missing", ""),
			attrOptions(c, "galaxy_name", "remote_name", "missing")...)
		err := appendAll(rp, c, func(ap *xml.Node, parent string) (tree.Element, error) {
			if ap.Name() != "append_param" {
				logging.UnprocessedTag(ap.Name(), parent)
				return nil, nil
			}
			a := params.NewAppendParam(attrOptions(ap)...)
			err := appendAll(a, ap, func(v *xml.Node, parent string) (tree.Element, error) {
				if v.Name() != "value" {
					logging.UnprocessedTag(v.Name(), parent)
					return nil, nil
				}
				return params.NewAppendParamValue(v.AttrOr("name", ""), v.AttrOr("missing", "")), nil
			})
			return a, err
		})
		return rp, err
	})
	return rpt, err
}
