package main

import (
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tool"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// aragornInputs fills inputs with the example parameters: a flag, a float,
// a conditional, an integer range written through an override, a positional
// integer and a select fed from a .loc file.
func aragornInputs(inputs tree.Element, floatParent tree.Element) {
	tree.MustAppend(inputs,
		params.NewBooleanParam("flag", params.Label("Flag label"), params.Help("Flag help"), params.NumDashes(1)))
	tree.MustAppend(floatParent,
		params.NewFloatParam("float", 0, params.Label("Float label"), params.Help("Float help"), params.NumDashes(1)))
	if floatParent != inputs {
		tree.MustAppend(inputs, floatParent)
	}

	cond := params.NewConditional("cond", params.Label("Conditional"))
	bye := params.NewWhen("bye")
	tree.MustAppend(bye, params.NewIntegerParam("some_int", 0, params.NumDashes(1), params.Label("Advanced value")))
	tree.MustAppend(cond,
		params.MustSelectParam("Select", params.SelectOptions(map[string]string{"hi": "1", "bye": "2"})),
		params.NewWhen("hi"),
		bye,
	)
	tree.MustAppend(inputs, cond)

	tree.MustAppend(inputs,
		params.NewIntegerParam("int_min", 0, params.Label("int_min label"), params.Help("int_min help"),
			params.NumDashes(1), params.CommandLineOverride("-i$int_min,$int_max")),
		params.NewIntegerParam("int_max", 0, params.Label("int_max label"), params.Help("int_max help"),
			params.NumDashes(1), params.CommandLineOverride("")),
		params.NewIntegerParam("posint", 0, params.Label("posint label"), params.Help("posinthelp"),
			params.Positional(), params.NumDashes(2)),
	)

	options := params.NewDynamicOptions(params.Attr("from_file", "loc_file.loc"))
	tree.MustAppend(options,
		params.NewOptionsColumn("name", 0),
		params.NewOptionsColumn("value", 1),
		params.NewOptionsFilter("sort_by", params.Attr("name", "sorted"), params.Attr("column", "1")),
	)
	local := params.MustSelectParam("select_local")
	tree.MustAppend(local, options)
	tree.MustAppend(inputs, local)
}

func aragornConfigfiles() *params.Configfiles {
	c := params.NewConfigfiles()
	tree.MustAppend(c,
		params.NewConfigfile("testing", "Hello <> World"),
		params.NewConfigfileDefaultInputs("inputs"),
	)
	return c
}

func aragorn() (*tool.Tool, error) {
	t, err := tool.New("aragorn", "se.lu.mbioekol.mbio-serv2.aragorn", "1.2.36",
		"Aragorn is a tRNA finder", "aragorn.exe", tool.VersionCommand("aragorn.exe --version"))
	if err != nil {
		return nil, err
	}
	t.Inputs = params.NewInputs()
	aragornInputs(t.Inputs, t.Inputs)
	t.Outputs = params.NewOutputs()
	tree.MustAppend(t.Outputs, params.NewOutputData("output", "tabular", params.NumDashes(1)))
	t.Configfiles = aragornConfigfiles()
	t.Help = "HI"
	t.AddComment("This tool descriptor has been generated using galaxyxml.")
	return t, nil
}

func aragornMacros() (*tool.MacrosTool, error) {
	m, err := tool.NewMacrosTool("aragorn", "aragorn", "1.2.36",
		"Aragorn is a tRNA finder", "aragorn.exe", tool.VersionCommand("aragorn.exe --version"))
	if err != nil {
		return nil, err
	}
	m.Requirements = params.NewRequirements()
	tree.MustAppend(m.Requirements,
		params.NewRequirement("package", "samtools", params.Version("1.0.0")),
		params.NewContainer("docker", "one_super_image"),
	)
	aragornInputs(m.Inputs, params.NewSection("float_section", "Float section"))
	tree.MustAppend(m.Outputs, params.NewOutputData("output", "tabular", params.NumDashes(1)))
	m.Tests = params.NewTests()
	test := params.NewTest()
	tree.MustAppend(test,
		params.NewTestParam("flag", params.Value("true")),
		params.NewTestOutput(params.Attr("name", "output"), params.File("output.tab")),
	)
	tree.MustAppend(m.Tests, test)
	m.Citations = params.NewCitations()
	tree.MustAppend(m.Citations, params.NewCitation("doi", "10.1093/nar/gkh152"))
	m.Configfiles = aragornConfigfiles()
	m.Help = "HI"
	return m, nil
}
