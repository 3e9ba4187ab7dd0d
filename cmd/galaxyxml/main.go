// Command galaxyxml builds, reformats and checks Galaxy tool wrappers.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/galaxyxml/core/cheetah"
	"github.com/FocuswithJustin/galaxyxml/core/importer"
	"github.com/FocuswithJustin/galaxyxml/core/tool"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
	"github.com/FocuswithJustin/galaxyxml/internal/manifest"
	"github.com/FocuswithJustin/galaxyxml/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for galaxyxml.
type CLI struct {
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Build    BuildCmd    `cmd:"" help:"Build a tool wrapper from a TOML manifest"`
	Reformat ReformatCmd `cmd:"" help:"Import a tool wrapper and write it in canonical form"`
	Check    CheckCmd    `cmd:"" help:"Check that a tool wrapper exports stably and its command is well formed"`
	Example  ExampleCmd  `cmd:"" help:"Print the aragorn example tool"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// BuildCmd exports the tool described by a manifest.
type BuildCmd struct {
	Manifest       string `arg:"" help:"Path to the TOML manifest" type:"existingfile"`
	Out            string `short:"o" help:"Write the tool XML to this file instead of stdout"`
	KeepOldCommand bool   `name:"keep-old-command" help:"Reuse the manifest's recorded command"`
}

func (c *BuildCmd) Run(out io.Writer) error {
	t, err := manifest.Load(c.Manifest)
	if err != nil {
		return err
	}
	doc, err := t.Export(tool.ExportOptions{KeepOldCommand: c.KeepOldCommand})
	if err != nil {
		return err
	}
	logging.Info("built tool", "id", t.ID, "manifest", c.Manifest)
	return emit(out, c.Out, doc)
}

// ReformatCmd round-trips a tool XML through the importer.
type ReformatCmd struct {
	Tool           string `arg:"" help:"Path to the tool XML" type:"existingfile"`
	Out            string `short:"o" help:"Write the tool XML to this file instead of stdout"`
	KeepOldCommand bool   `name:"keep-old-command" default:"true" negatable:"" help:"Keep the imported command instead of synthesizing one"`
}

func (c *ReformatCmd) Run(out io.Writer) error {
	t, err := load(c.Tool)
	if err != nil {
		return err
	}
	doc, err := t.Export(tool.ExportOptions{KeepOldCommand: c.KeepOldCommand})
	if err != nil {
		return err
	}
	return emit(out, c.Out, doc)
}

// CheckCmd verifies that a tool XML is a fixed point of import and export
// and lints its command template.
type CheckCmd struct {
	Tool string `arg:"" help:"Path to the tool XML" type:"existingfile"`
}

func (c *CheckCmd) Run(out io.Writer) error {
	t, err := load(c.Tool)
	if err != nil {
		return err
	}
	opts := tool.ExportOptions{KeepOldCommand: true}
	first, err := t.Export(opts)
	if err != nil {
		return err
	}
	second, err := t.Export(opts)
	if err != nil {
		return err
	}
	again, err := importer.ImportBytes([]byte(first))
	if err != nil {
		return fmt.Errorf("re-import: %w", err)
	}
	third, err := again.Export(opts)
	if err != nil {
		return err
	}

	var problems []string
	sum := tool.Fingerprint(first)
	if tool.Fingerprint(second) != sum {
		problems = append(problems, "export is not repeatable")
	}
	if tool.Fingerprint(third) != sum {
		problems = append(problems, "export changes after a round trip through import")
	}
	if err := tree.Validate(t.Inputs); err != nil {
		problems = append(problems, err.Error())
	}
	command := t.Command
	if t.CommandOverride != "" {
		command = t.CommandOverride
	}
	for _, issue := range cheetah.Check(command) {
		problems = append(problems, "command "+issue.String())
	}

	fmt.Fprintf(out, "%s  %s\n", sum, c.Tool)
	for _, p := range problems {
		fmt.Fprintf(out, "  %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %d problem(s)", c.Tool, len(problems))
	}
	return nil
}

// ExampleCmd prints the aragorn example.
type ExampleCmd struct {
	Macros bool `help:"Print the macro file variant"`
}

func (c *ExampleCmd) Run(out io.Writer) error {
	var doc string
	var err error
	if c.Macros {
		var m *tool.MacrosTool
		if m, err = aragornMacros(); err == nil {
			doc, err = m.Export(tool.ExportOptions{})
		}
	} else {
		var t *tool.Tool
		if t, err = aragorn(); err == nil {
			doc, err = t.Export(tool.ExportOptions{})
		}
	}
	if err != nil {
		return err
	}
	return emit(out, "", doc)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	fmt.Fprintf(out, "galaxyxml version %s\n", version)
	return nil
}

func load(path string) (*tool.Tool, error) {
	data, err := validation.ReadDocument(path, validation.KindXML)
	if err != nil {
		return nil, err
	}
	t, err := importer.ImportBytes(data)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return t, nil
}

func emit(out io.Writer, path, doc string) error {
	if path == "" {
		_, err := io.WriteString(out, doc)
		return err
	}
	if err := validation.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Info("wrote tool", "path", path)
	return nil
}

func run(args []string, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("galaxyxml"),
		kong.Description("Build, reformat and check Galaxy tool wrappers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	logging.InitLogger(logging.ParseLevel(cli.LogLevel), logging.ParseFormat(cli.LogFormat))
	return ctx.Run()
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "galaxyxml: %v\n", err)
		os.Exit(1)
	}
}
