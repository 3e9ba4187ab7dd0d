package tool

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/core/xml"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.InitLogger(logging.LevelDebug, logging.FormatText)
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.SetOutput(os.Stderr)
		logging.InitLogger(logging.LevelInfo, logging.FormatText)
	})
	return &buf
}

func newAragorn(t *testing.T) *Tool {
	t.Helper()
	tl, err := New("aragorn", "aragorn", "1.2.36", "Aragorn is a tRNA finder", "aragorn",
		VersionCommand("aragorn -V"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tl.Inputs = params.NewInputs()
	tl.Outputs = params.NewOutputs()
	tree.MustAppend(tl.Inputs,
		params.NewBooleanParam("flag", params.Label("Flag label"), params.Help("Flag help"), params.NumDashes(1)),
		params.NewFloatParam("float", 0, params.Label("Float label"), params.Help("Float help"), params.NumDashes(1)),
	)
	tree.MustAppend(tl.Outputs, params.NewOutputData("output", "tabular", params.NumDashes(1)))
	tl.Help = "HI"
	return tl
}

func parse(t *testing.T, doc string) *xml.Document {
	t.Helper()
	d, err := xml.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("exported document does not parse: %v\n%s", err, doc)
	}
	return d
}

func first(t *testing.T, d *xml.Document, expr string) *xml.Node {
	t.Helper()
	n, err := d.XPathFirst(expr)
	if err != nil {
		t.Fatalf("XPathFirst(%q): %v", expr, err)
	}
	if n == nil {
		t.Fatalf("no match for %q", expr)
	}
	return n
}

func childNames(n *xml.Node) []string {
	var names []string
	for _, c := range n.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestExportAragorn(t *testing.T) {
	tl := newAragorn(t)
	out, err := tl.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	d := parse(t, out)

	root := d.Root()
	if root.Name() != "tool" || root.AttrOr("name", "") != "aragorn" {
		t.Fatalf("root = <%s name=%q>", root.Name(), root.AttrOr("name", ""))
	}
	for _, key := range []string{"hidden", "workflow_compatible", "profile"} {
		if _, ok := root.Attr(key); ok {
			t.Errorf("default attribute %s should be omitted", key)
		}
	}

	wantOrder := []string{"description", "stdio", "version_command", "command", "inputs", "outputs", "help"}
	if got := childNames(root); strings.Join(got, ",") != strings.Join(wantOrder, ",") {
		t.Errorf("children = %v, want %v", got, wantOrder)
	}

	cmd := first(t, d, "/tool/command")
	if !cmd.IsCDATA() {
		t.Error("command should be CDATA")
	}
	wantCmd := "aragorn $flag\n-float $float\n-output $output"
	if got := cmd.Text(); got != wantCmd {
		t.Errorf("command = %q, want %q", got, wantCmd)
	}

	help := root.Children()[len(root.Children())-1]
	if help.Name() != "help" || help.Text() != "HI" {
		t.Errorf("last child = <%s>%s", help.Name(), help.Text())
	}

	flag := first(t, d, "/tool/inputs/param[@name='flag']")
	if v, _ := flag.Attr("truevalue"); v != "-flag" {
		t.Errorf("truevalue = %q", v)
	}
	exit := first(t, d, "/tool/stdio/exit_code")
	if exit.AttrOr("range", "") != "1:" || exit.AttrOr("level", "") != "fatal" {
		t.Errorf("default stdio = %v", exit.Attrs())
	}
}

func TestExportIdempotent(t *testing.T) {
	tl := newAragorn(t)
	tl.CommandOverride = ""
	tl.AddComment("generated")

	a := mustExport(t, tl)
	b := mustExport(t, tl)
	if a != b {
		t.Errorf("exports differ:\n%s\n---\n%s", a, b)
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("fingerprints differ")
	}
	if tl.CommandOverride != "" {
		t.Errorf("CommandOverride changed to %q", tl.CommandOverride)
	}
	if tl.Inputs.Base().Parent() != nil {
		t.Error("export re-parented the tool's own inputs")
	}
	if !strings.HasPrefix(a, "<tool") {
		t.Errorf("export should start with the root element: %.40q", a)
	}
	if !strings.Contains(a, "  <!--generated-->\n") {
		t.Error("comment missing")
	}
}

func TestExportMissingInputs(t *testing.T) {
	logs := captureLogs(t)
	tl, err := New("t", "t", "1", "", "run")
	if err != nil {
		t.Fatal(err)
	}
	_, err = tl.Export(ExportOptions{})
	var missing *errors.MissingSectionError
	if !errors.As(err, &missing) || missing.Section != "inputs" {
		t.Fatalf("err = %v, want MissingSectionError for inputs", err)
	}
	if !strings.Contains(logs.String(), "cannot build command") {
		t.Errorf("missing inputs were not logged: %s", logs.String())
	}

	tl.CommandOverride = "run --all"
	out, err := tl.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("override should not need inputs: %v", err)
	}
	if cmd := first(t, parse(t, out), "/tool/command"); cmd.Text() != "run --all" {
		t.Errorf("command = %q", cmd.Text())
	}
}

func TestExportMissingOutputs(t *testing.T) {
	tl, err := New("t", "t", "1", "", "run")
	if err != nil {
		t.Fatal(err)
	}
	tl.Inputs = params.NewInputs()
	tree.MustAppend(tl.Inputs, params.NewDataParam("input", params.Positional()))
	out, err := tl.Export(ExportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if cmd := first(t, parse(t, out), "/tool/command"); cmd.Text() != "run $input" {
		t.Errorf("command = %q", cmd.Text())
	}
}

func TestKeepOldCommand(t *testing.T) {
	tl := newAragorn(t)
	tl.Command = "aragorn -gc1 $input > $output"
	out, err := tl.Export(ExportOptions{KeepOldCommand: true})
	if err != nil {
		t.Fatal(err)
	}
	if cmd := first(t, parse(t, out), "/tool/command"); cmd.Text() != tl.Command {
		t.Errorf("command = %q, want %q", cmd.Text(), tl.Command)
	}

	logs := captureLogs(t)
	tl.Command = ""
	out, err = tl.Export(ExportOptions{KeepOldCommand: true})
	if err != nil {
		t.Fatal(err)
	}
	if cmd := first(t, parse(t, out), "/tool/command"); cmd.Text() != "aragorn" {
		t.Errorf("fallback command = %q", cmd.Text())
	}
	if !strings.Contains(logs.String(), "no recorded command") {
		t.Error("fallback was not logged")
	}
}

func TestExportSectionsAndPlaceholders(t *testing.T) {
	tl := newAragorn(t)
	tl.Interpreter = "python"
	tl.Profile = "21.05"
	tl.Hidden = true
	tl.WorkflowCompatible = false

	t.Run("without macros", func(t *testing.T) {
		d := parse(t, mustExport(t, tl))
		if nodes, _ := d.XPath("/tool/expand"); len(nodes) != 0 {
			t.Errorf("unexpected expand placeholders: %d", len(nodes))
		}
		root := d.Root()
		want := []string{"name", "id", "version", "hidden", "workflow_compatible", "profile"}
		var got []string
		for _, a := range root.Attrs() {
			got = append(got, a.Name)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("root attributes = %v, want %v", got, want)
		}
		if v, _ := first(t, d, "/tool/command").Attr("interpreter"); v != "python" {
			t.Errorf("interpreter = %q", v)
		}
	})

	t.Run("with macros", func(t *testing.T) {
		withMacros := *tl
		MacroFiles("macros.xml")(&withMacros)
		d := parse(t, mustExport(t, &withMacros))
		want := []string{"description", "macros", "expand", "stdio", "version_command", "command", "inputs", "outputs", "expand", "help", "expand"}
		if got := childNames(d.Root()); strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("children = %v, want %v", got, want)
		}
		nodes, err := d.XPath("/tool/expand")
		if err != nil {
			t.Fatal(err)
		}
		var macros []string
		for _, n := range nodes {
			macros = append(macros, n.AttrOr("macro", ""))
		}
		if strings.Join(macros, ",") != "requirements,aragorn_tests,citations" {
			t.Errorf("expand macros = %v", macros)
		}
		if imp := first(t, d, "/tool/macros/import"); imp.Text() != "macros.xml" {
			t.Errorf("import = %q", imp.Text())
		}
	})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		field string
	}{
		{"tool type", []Option{ToolType("bogus")}, "tool_type"},
		{"url method", []Option{ToolType("data_source"), URLMethod("put")}, "URL_method"},
		{"profile", []Option{Profile("latest")}, "profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("n", "i", "1", "", "x", tt.opts...)
			var verr *errors.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("err = %v, want ValidationError for %s", err, tt.field)
			}
		})
	}

	tl, err := New("n", "i", "1", "", "x", ToolType("data_source"), URLMethod("post"))
	if err != nil {
		t.Fatal(err)
	}
	tl.Inputs = params.NewInputs()
	d := parse(t, mustExport(t, tl))
	if d.Root().AttrOr("tool_type", "") != "data_source" || d.Root().AttrOr("URL_method", "") != "post" {
		t.Errorf("data source attributes = %v", d.Root().Attrs())
	}
}

func TestMacrosTool(t *testing.T) {
	m, err := NewMacrosTool("aragorn", "aragorn", "1.2.36", "", "aragorn")
	if err != nil {
		t.Fatal(err)
	}
	tree.MustAppend(m.Inputs, params.NewIntegerParam("n", 1, params.NumDashes(1)))
	tree.MustAppend(m.Outputs, params.NewOutputData("out", "txt", params.Positional()))
	m.Requirements = params.NewRequirements()
	tree.MustAppend(m.Requirements, params.NewRequirement("package", "aragorn", params.Version("1.2.36")))

	out, err := m.Export(ExportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	d := parse(t, out)
	if d.Root().Name() != "macros" {
		t.Fatalf("root = %s", d.Root().Name())
	}
	if tok := first(t, d, "/macros/token[@name='ARAGORN_INMACRO']"); tok.Text() != "-n $n" {
		t.Errorf("inmacro token = %q", tok.Text())
	}
	if tok := first(t, d, "/macros/token[@name='ARAGORN_OUTMACRO']"); tok.Text() != "$out" {
		t.Errorf("outmacro token = %q", tok.Text())
	}
	first(t, d, "/macros/xml[@name='aragorn_inmacro']/param[@name='n']")
	first(t, d, "/macros/xml[@name='aragorn_outmacro']/data[@name='out']")
	first(t, d, "/macros/xml[@name='requirements']/requirements/requirement")

	if m.Inputs.Len() != 1 {
		t.Error("export moved the tool's own inputs")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("<tool/>")
	if len(a) != 64 {
		t.Errorf("len = %d, want 64", len(a))
	}
	if a == Fingerprint("<tool />") {
		t.Error("different documents share a fingerprint")
	}
}

func mustExport(t *testing.T, tl *Tool) string {
	t.Helper()
	out, err := tl.Export(ExportOptions{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	return out
}
