package manifest

import (
	"fmt"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

func buildOutputs(outs []Output) (*params.Outputs, error) {
	if len(outs) == 0 {
		return nil, nil
	}
	outputs := params.NewOutputs()
	if err := appendOutputs(outputs, outs, "outputs"); err != nil {
		return nil, err
	}
	return outputs, nil
}

func appendOutputs(parent tree.Element, outs []Output, path string) error {
	for i := range outs {
		at := fmt.Sprintf("%s[%d]", path, i)
		e, err := buildOutput(&outs[i], at)
		if err != nil {
			return err
		}
		if err := tree.Append(parent, e); err != nil {
			return errors.Wrapf(err, "%s", at)
		}
	}
	return nil
}

func buildOutput(out *Output, path string) (tree.Element, error) {
	if out.Name == "" {
		return nil, errors.NewValidation(path+".name", "", "is required")
	}
	var l optionList
	switch or(out.Kind, "data") {
	case "data":
		l.str(params.Label, out.Label)
		l.str(func(s string) params.Option { return params.Attr("from_work_dir", s) }, out.FromWorkDir)
		if out.NumDashes > 0 {
			l = append(l, params.NumDashes(out.NumDashes))
		}
		if out.Positional {
			l = append(l, params.Positional())
		}
		l.str(params.CommandLineOverride, out.CommandLine)
		d := params.NewOutputData(out.Name, out.Format, l...)
		for _, expr := range out.Filters {
			tree.MustAppend(d, params.NewOutputFilter(expr))
		}
		for _, pattern := range out.Discover {
			tree.MustAppend(d, params.NewDiscoverDatasets(pattern))
		}
		return d, nil
	case "collection":
		l.str(func(s string) params.Option { return params.Attr("type", s) }, out.Type)
		l.str(params.Label, out.Label)
		c := params.NewOutputCollection(out.Name, l...)
		for _, expr := range out.Filters {
			tree.MustAppend(c, params.NewOutputFilter(expr))
		}
		for _, pattern := range out.Discover {
			tree.MustAppend(c, params.NewDiscoverDatasets(pattern))
		}
		return c, appendOutputs(c, out.Outputs, path+".outputs")
	}
	return nil, errors.NewValidation(path+".kind", out.Kind, "unknown output kind")
}

func buildTests(tests []Test) (*params.Tests, error) {
	if len(tests) == 0 {
		return nil, nil
	}
	ts := params.NewTests()
	for i, tc := range tests {
		var opts []params.Option
		if tc.ExpectNumOutputs > 0 {
			opts = append(opts, params.Attr("expect_num_outputs", tc.ExpectNumOutputs))
		}
		test := params.NewTest(opts...)
		for j, p := range tc.Params {
			if p.Name == "" {
				return nil, errors.NewValidation(fmt.Sprintf("tests[%d].params[%d].name", i, j), "", "is required")
			}
			var popts []params.Option
			if p.Value != nil {
				popts = append(popts, params.Value(p.Value))
			}
			tree.MustAppend(test, params.NewTestParam(p.Name, popts...))
		}
		for _, o := range tc.Outputs {
			var l optionList
			l.str(func(s string) params.Option { return params.Attr("name", s) }, o.Name)
			l.str(params.File, o.File)
			l.str(params.Ftype, o.Ftype)
			l.str(func(s string) params.Option { return params.Attr("compare", s) }, o.Compare)
			tree.MustAppend(test, params.NewTestOutput(l...))
		}
		tree.MustAppend(ts, test)
	}
	return ts, nil
}
