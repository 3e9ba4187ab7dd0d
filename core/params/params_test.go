package params

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

func attr(t *testing.T, e tree.Element, key string) string {
	t.Helper()
	v, ok := e.Base().Attr(key)
	if !ok {
		t.Fatalf("<%s> has no %s attribute", e.Base().Tag(), key)
	}
	return v
}

func mustAppend(t *testing.T, parent tree.Element, children ...tree.Element) {
	t.Helper()
	for _, child := range children {
		if err := tree.Append(parent, child); err != nil {
			t.Fatalf("Append(%s, %s): %v", tree.TypeName(parent), tree.TypeName(child), err)
		}
	}
}

func TestReferenceScoping(t *testing.T) {
	inputs := NewInputs()
	series := NewRepeat("series", "Series")
	adv := NewSection("adv", "Advanced")
	window := NewIntegerParam("window", 5, NumDashes(2))
	mustAppend(t, inputs, series)
	mustAppend(t, series, adv)
	mustAppend(t, adv, window)

	if got := window.Reference(); got != "$i_series.adv.window" {
		t.Errorf("Reference() = %q, want %q", got, "$i_series.adv.window")
	}
	if got := series.Reference(); got != "$series" {
		t.Errorf("repeat Reference() = %q, want %q", got, "$series")
	}

	want := strings.Join([]string{
		"#for $i_series in $series:",
		"--window $i_series.adv.window",
		"#end for",
	}, "\n")
	if got := inputs.CLI(); got != want {
		t.Errorf("CLI() =\n%s\nwant\n%s", got, want)
	}
}

func TestNestedRepeatStopsAtInnermost(t *testing.T) {
	outer := NewRepeat("outer", "Outer")
	cond := NewConditional("mode")
	sel := MustSelectParam("kind", SelectOptions(map[string]string{"a": "A"}))
	inner := NewRepeat("inner", "Inner")
	mustAppend(t, outer, cond)
	mustAppend(t, cond, sel)
	when := NewWhen("a")
	mustAppend(t, cond, when)
	mustAppend(t, when, inner)
	leaf := NewFloatParam("x", 1.5, Positional())
	mustAppend(t, inner, leaf)

	if got := inner.Reference(); got != "$i_outer.mode.inner" {
		t.Errorf("inner Reference() = %q", got)
	}
	if got := leaf.Reference(); got != "$i_inner.x" {
		t.Errorf("leaf Reference() = %q", got)
	}
	if got := sel.Reference(); got != "$i_outer.mode.kind" {
		t.Errorf("select Reference() = %q", got)
	}
}

func TestBooleanDefaults(t *testing.T) {
	p := NewBooleanParam("name", NumDashes(1))
	tests := map[string]string{
		"checked":    "false",
		"truevalue":  "-name",
		"falsevalue": "",
		"argument":   "-name",
		"label":      DefaultLabel,
	}
	for key, want := range tests {
		if got := attr(t, p, key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if got := CommandLine(p); got != "$name" {
		t.Errorf("CommandLine() = %q, want $name", got)
	}

	explicit := NewBooleanParam("keep", TrueValue("--keep-all"), FalseValue("--drop"), Checked(true))
	if got := attr(t, explicit, "truevalue"); got != "--keep-all" {
		t.Errorf("truevalue = %q", got)
	}
	if got := attr(t, explicit, "checked"); got != "true" {
		t.Errorf("checked = %q", got)
	}
}

func TestParamAttributes(t *testing.T) {
	t.Run("zero dashes derive nothing", func(t *testing.T) {
		p := NewIntegerParam("count", 3)
		if p.Attrs().Has("label") || p.Attrs().Has("argument") {
			t.Errorf("unexpected derived attributes: %v", p.Attrs().Keys())
		}
		if got := p.Flag(); got != "count" {
			t.Errorf("Flag() = %q", got)
		}
		if got := CommandLine(p); got != "count $count" {
			t.Errorf("CommandLine() = %q", got)
		}
	})

	t.Run("attribute order", func(t *testing.T) {
		p := NewFloatParam("ratio", 0.5, Label("Ratio"), Min(0), Max(1), NumDashes(1))
		want := []string{"name", "type", "value", "label", "min", "max", "argument"}
		if got := p.Attrs().Keys(); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("nil value is dropped", func(t *testing.T) {
		p := NewIntegerParam("n", nil)
		if p.Attrs().Has("value") {
			t.Error("nil value should not be set")
		}
	})

	t.Run("positional skips argument", func(t *testing.T) {
		p := NewDataParam("input", Format("fasta"), NumDashes(1), Positional())
		if p.Attrs().Has("argument") {
			t.Error("positional parameter should not get an argument attribute")
		}
		if got := CommandLine(p); got != "$input" {
			t.Errorf("CommandLine() = %q", got)
		}
	})

	t.Run("render", func(t *testing.T) {
		p := NewIntegerParam("n", 2, Label("N"), Help("count & size"))
		want := `<param name="n" type="integer" value="2" label="N" help="count &amp; size"/>` + "\n"
		if got := tree.Render(p); got != want {
			t.Errorf("Render() = %q, want %q", got, want)
		}
	})
}

func TestTextQuoting(t *testing.T) {
	tests := []struct {
		name  string
		param *TextParam
		want  string
	}{
		{"flagged", NewTextParam("title", NumDashes(2)), "--title '$title'"},
		{"positional", NewTextParam("title", Positional()), "$title"},
		{"separator", NewTextParam("title", NumDashes(1), Separator("=")), "-title='$title'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandLine(tt.param); got != tt.want {
				t.Errorf("CommandLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplicitArgumentFlag(t *testing.T) {
	p := NewIntegerParam("min_len", 3, Argument("--min-len"), NumDashes(2))
	if got := CommandLine(p); got != "--min-len $min_len" {
		t.Errorf("CommandLine() = %q", got)
	}
	if arg, _ := p.Attr("argument"); arg != "--min-len" {
		t.Errorf("argument = %q", arg)
	}
	if got := NameFromArgument("--min-len"); got != "min_len" {
		t.Errorf("NameFromArgument() = %q", got)
	}
}

func TestCommandLineOverride(t *testing.T) {
	inputs := NewInputs()
	a := NewDataParam("reads", Positional(), CommandLineOverride("$reads $mates"))
	b := NewDataParam("mates", Positional(), CommandLineOverride(""))
	c := NewIntegerParam("k", 21, NumDashes(1))
	mustAppend(t, inputs, a, b, c)

	want := "$reads $mates\n-k $k"
	if got := inputs.CLI(); got != want {
		t.Errorf("CLI() = %q, want %q", got, want)
	}

	c.SetCommandLineOverride("-k 31")
	if got := CommandLine(c); got != "-k 31" {
		t.Errorf("after SetCommandLineOverride: %q", got)
	}
	c.ClearCommandLineOverride()
	if got := CommandLine(c); got != "-k $k" {
		t.Errorf("after ClearCommandLineOverride: %q", got)
	}
}

func TestSelect(t *testing.T) {
	t.Run("invalid default", func(t *testing.T) {
		p, err := NewSelectParam("mode", SelectOptions(map[string]string{"a": "1", "b": "2"}), Default("z"))
		if p != nil {
			t.Error("no select should be built for an invalid default")
		}
		var invalid *errors.InvalidDefaultError
		if !errors.As(err, &invalid) {
			t.Fatalf("err = %v, want InvalidDefaultError", err)
		}
		if invalid.Default != "z" || strings.Join(invalid.Options, ",") != "a,b" {
			t.Errorf("InvalidDefaultError = %+v", invalid)
		}
	})

	t.Run("options sorted with default selected", func(t *testing.T) {
		p, err := NewSelectParam("mode", SelectOptions(map[string]string{"z": "Last", "a": "First"}), Default("z"))
		if err != nil {
			t.Fatal(err)
		}
		want := strings.Join([]string{
			`<param name="mode" type="select">`,
			`  <option value="a">First</option>`,
			`  <option value="z" selected="true">Last</option>`,
			`</param>`,
			``,
		}, "\n")
		if got := tree.Render(p); got != want {
			t.Errorf("Render() =\n%s\nwant\n%s", got, want)
		}
		if got := p.OptionValues(); strings.Join(got, ",") != "a,z" {
			t.Errorf("OptionValues() = %v", got)
		}
	})

	t.Run("dynamic options", func(t *testing.T) {
		p := MustSelectParam("column", Attr("multiple", true))
		opts := NewDynamicOptions(Attr("from_dataset", "input"))
		mustAppend(t, opts, NewOptionsColumn("name", 0), NewOptionsFilter("sort_by", Attr("column", 0)))
		mustAppend(t, p, opts)
		if !p.HasDynamicOptions() {
			t.Error("HasDynamicOptions() = false")
		}
		if err := tree.Append(opts, NewIntegerParam("x", 1)); !errors.Is(err, errors.ErrTypeMismatch) {
			t.Errorf("options accepted a param: %v", err)
		}
	})
}

func newModeConditional(t *testing.T) (*Conditional, *When, *When) {
	t.Helper()
	cond := NewConditional("cond")
	sel := MustSelectParam("Select", SelectOptions(map[string]string{"hi": "1", "bye": "2"}))
	hi := NewWhen("hi")
	bye := NewWhen("bye")
	mustAppend(t, cond, sel, hi, bye)
	mustAppend(t, bye, NewIntegerParam("some_int", 1, NumDashes(1)))
	return cond, hi, bye
}

func TestConditionalCommandLine(t *testing.T) {
	cond, _, _ := newModeConditional(t)
	want := strings.Join([]string{
		`#if str($cond.Select) == "bye"`,
		`-some_int $cond.some_int`,
		`#end if`,
	}, "\n")
	if got := CommandLine(cond); got != want {
		t.Errorf("CommandLine() =\n%s\nwant\n%s", got, want)
	}
}

func TestConditionalAcceptance(t *testing.T) {
	cond := NewConditional("c")
	if err := tree.Append(cond, NewWhen("a")); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("when before discriminator: err = %v", err)
	}
	mustAppend(t, cond, MustSelectParam("s", SelectOptions(map[string]string{"a": "A"})))
	if err := tree.Append(cond, NewIntegerParam("i", 1)); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("param after discriminator: err = %v", err)
	}
	if err := tree.Append(NewSection("s", "S"), NewWhen("a")); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("when inside section: err = %v", err)
	}
}

func TestConditionalValidate(t *testing.T) {
	cond, _, _ := newModeConditional(t)
	if err := cond.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	mustAppend(t, cond, NewWhen("other"))
	err := tree.Validate(cond)
	var verr *errors.ValidationError
	if !errors.As(err, &verr) || verr.Value != "other" {
		t.Errorf("Validate() = %v, want ValidationError for other", err)
	}

	dup, _, _ := newModeConditional(t)
	mustAppend(t, dup, NewWhen("hi"))
	if err := dup.Validate(); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("duplicate when: %v", err)
	}

	if err := NewConditional("empty").Validate(); err == nil {
		t.Error("conditional without discriminator should fail validation")
	}
}

func TestOutputs(t *testing.T) {
	outputs := NewOutputs()
	table := NewOutputData("output", "tabular", NumDashes(1))
	mustAppend(t, table, NewChangeFormat(), NewOutputFilter("keep"))
	split := NewOutputCollection("split", Attr("type", "list"), Label("Split"))
	mustAppend(t, split, NewDiscoverDatasets(`__name_and_ext__`, Attr("directory", "out")))
	mustAppend(t, outputs, table, split, NewOutputData("log", "txt", Positional()))

	if got := outputs.CLI(); got != "-output $output\n$log" {
		t.Errorf("CLI() = %q", got)
	}
	if err := tree.Append(outputs, NewIntegerParam("n", 1)); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("outputs accepted a param: %v", err)
	}
	if table.Attrs().Has("hidden") {
		t.Error("hidden should only be set when given")
	}
}

func TestMacroElements(t *testing.T) {
	inputs := NewInputs()
	mustAppend(t, inputs, NewExpand("common_inputs"), NewExpandIO("extra_inputs"), NewIntegerParam("n", 1, NumDashes(1)))
	if got := inputs.CLI(); got != "@EXTRA_INPUTS@\n-n $n" {
		t.Errorf("CLI() = %q", got)
	}

	macros := NewMacros()
	xml := NewXMLMacro("common_inputs")
	mustAppend(t, xml, NewDataParam("input", Format("fasta")), NewOutputData("out", "fasta"))
	mustAppend(t, macros, NewImport("macros.xml"), NewToken("VERSION", "1.0"), xml)
	if err := tree.Append(macros, NewIntegerParam("n", 1)); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("macros accepted a param: %v", err)
	}
	if got := xml.CLI(); got != "input $input\nout $out" {
		t.Errorf("XMLMacro CLI() = %q", got)
	}
	want := `<token name="VERSION"><![CDATA[1.0]]></token>` + "\n"
	if got := tree.Render(macros.Child(1)); got != want {
		t.Errorf("token render = %q, want %q", got, want)
	}
}

func TestQueryHelpers(t *testing.T) {
	topics := NewEdamTopics()
	mustAppend(t, topics, NewEdamTopic("topic_0797"))
	ops := NewEdamOperations()
	mustAppend(t, ops, NewEdamOperation("operation_0004"))
	cites := NewCitations()
	mustAppend(t, cites, NewCitation("doi", "10.1093/nar/gkh152"))

	if !topics.HasTopic("topic_0797") || topics.HasTopic("topic_0001") {
		t.Error("HasTopic mismatch")
	}
	if !ops.HasOperation("operation_0004") || ops.HasOperation("operation_0001") {
		t.Error("HasOperation mismatch")
	}
	if !cites.HasCitation("doi", "10.1093/nar/gkh152") || cites.HasCitation("bibtex", "10.1093/nar/gkh152") {
		t.Error("HasCitation mismatch")
	}
}

func TestRequestParamTranslation(t *testing.T) {
	url := NewRequestParam("URL", "URL", "")
	other := NewRequestParam("dbkey", "db", "?")
	appendParam := NewAppendParam()
	mustAppend(t, appendParam, NewAppendParamValue("", ""))
	mustAppend(t, url, appendParam)
	if err := tree.Append(other, NewAppendParam()); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("non-URL request_param accepted append_param: %v", err)
	}

	translation := NewRequestParamTranslation()
	mustAppend(t, translation, url, other)
	want := strings.Join([]string{
		`<request_param_translation>`,
		`  <request_param galaxy_name="URL" remote_name="URL" missing="">`,
		`    <append_param separator="&amp;" first_separator="?" join="=">`,
		`      <value name="_export" missing="1"/>`,
		`    </append_param>`,
		`  </request_param>`,
		`  <request_param galaxy_name="dbkey" remote_name="db" missing="?"/>`,
		`</request_param_translation>`,
		``,
	}, "\n")
	if got := tree.Render(translation); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTestsSection(t *testing.T) {
	tests := NewTests()
	test := NewTest(Attr("expect_num_outputs", 1))
	out := NewTestOutput(Attr("name", "output"), File("out.tab"))
	coll := NewTestOutputCollection("split", Attr("type", "list"))
	mustAppend(t, coll, NewTestOCElement("a", File("a.fa")))
	cond := NewTestConditional("cond")
	mustAppend(t, cond, NewTestParam("Select", Value("bye")))
	mustAppend(t, test, NewTestParam("input", Value("in.fa"), Ftype("fasta")), cond, out, coll)
	mustAppend(t, tests, test)

	if err := tree.Append(test, NewIntegerParam("n", 1)); !errors.Is(err, errors.ErrTypeMismatch) {
		t.Errorf("test accepted an input param: %v", err)
	}
	if got := tests.Child(0).Base().Len(); got != 4 {
		t.Errorf("test has %d children, want 4", got)
	}
}

func TestDefaultStdios(t *testing.T) {
	want := "<stdio>\n  <exit_code range=\"1:\" level=\"fatal\"/>\n</stdio>\n"
	if got := tree.Render(DefaultStdios()); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSnapshotKeepsCommandLine(t *testing.T) {
	inputs := NewInputs()
	series := NewRepeat("series", "Series")
	mustAppend(t, inputs, series)
	mustAppend(t, series, NewTextParam("label", NumDashes(1)))

	snap := tree.Snapshot(inputs)
	if got, want := snap.CLI(), inputs.CLI(); got != want {
		t.Errorf("snapshot CLI() = %q, want %q", got, want)
	}
	series.SetCommandLineOverride("")
	if snap.CLI() == inputs.CLI() {
		t.Error("override on the original leaked into the snapshot")
	}
}
