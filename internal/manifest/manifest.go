// Package manifest builds tool documents from TOML manifests.
//
// A manifest lists the tool attributes at the top level and its parameters
// as arrays of tables:
//
//	name = "Aragorn"
//	id = "aragorn"
//	version = "1.2.36"
//	executable = "aragorn"
//
//	[[inputs]]
//	kind = "data"
//	name = "input"
//	format = "fasta"
//	num_dashes = 1
//
// Sections and repeats nest their parameters under inputs; a conditional
// carries its discriminator under select and its branches under whens.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
	"github.com/FocuswithJustin/galaxyxml/core/params"
	"github.com/FocuswithJustin/galaxyxml/core/tool"
	"github.com/FocuswithJustin/galaxyxml/core/tree"
	"github.com/FocuswithJustin/galaxyxml/internal/logging"
	"github.com/FocuswithJustin/galaxyxml/internal/validation"
)

// File is the decoded form of a manifest.
type File struct {
	Name               string   `toml:"name"`
	ID                 string   `toml:"id"`
	Version            string   `toml:"version"`
	Description        string   `toml:"description"`
	Executable         string   `toml:"executable"`
	Interpreter        string   `toml:"interpreter"`
	VersionCommand     string   `toml:"version_command"`
	Profile            string   `toml:"profile"`
	Hidden             bool     `toml:"hidden"`
	WorkflowCompatible bool     `toml:"workflow_compatible"`
	ToolType           string   `toml:"tool_type"`
	URLMethod          string   `toml:"url_method"`
	Command            string   `toml:"command"`
	Help               string   `toml:"help"`
	Comments           []string `toml:"comments"`
	MacroFiles         []string `toml:"macro_files"`
	EdamTopics         []string `toml:"edam_topics"`
	EdamOperations     []string `toml:"edam_operations"`

	Requirements []Requirement `toml:"requirements"`
	Containers   []Container   `toml:"containers"`
	Citations    []Citation    `toml:"citations"`
	Stdio        []Stdio       `toml:"stdio"`
	Inputs       []Input       `toml:"inputs"`
	Outputs      []Output      `toml:"outputs"`
	Tests        []Test        `toml:"tests"`
}

type Requirement struct {
	Type    string `toml:"type"`
	Value   string `toml:"value"`
	Version string `toml:"version"`
}

type Container struct {
	Type  string `toml:"type"`
	Image string `toml:"image"`
}

type Citation struct {
	Type  string `toml:"type"`
	Value string `toml:"value"`
}

type Stdio struct {
	Range       string `toml:"range"`
	Level       string `toml:"level"`
	Description string `toml:"description"`
}

// Input is a parameter, section, repeat or conditional. Kind selects which;
// it defaults to "text".
type Input struct {
	Kind        string            `toml:"kind"`
	Name        string            `toml:"name"`
	Label       string            `toml:"label"`
	Help        string            `toml:"help"`
	Format      string            `toml:"format"`
	Argument    string            `toml:"argument"`
	Value       any               `toml:"value"`
	Min         any               `toml:"min"`
	Max         any               `toml:"max"`
	Optional    *bool             `toml:"optional"`
	Multiple    *bool             `toml:"multiple"`
	Checked     *bool             `toml:"checked"`
	TrueValue   string            `toml:"truevalue"`
	FalseValue  string            `toml:"falsevalue"`
	NumDashes   int               `toml:"num_dashes"`
	Positional  bool              `toml:"positional"`
	Separator   *string           `toml:"separator"`
	CommandLine string            `toml:"command_line"`
	Options     map[string]string `toml:"options"`
	Default     string            `toml:"default"`
	Title       string            `toml:"title"`
	Validators  []Validator       `toml:"validators"`

	Inputs []Input `toml:"inputs"`
	Select *Input  `toml:"select"`
	Whens  []When  `toml:"whens"`
}

type Validator struct {
	Type    string `toml:"type"`
	Message string `toml:"message"`
	Content string `toml:"content"`
	Min     any    `toml:"min"`
	Max     any    `toml:"max"`
}

type When struct {
	Value  string  `toml:"value"`
	Inputs []Input `toml:"inputs"`
}

// Output is a data output or, with kind "collection", an output collection.
type Output struct {
	Kind        string   `toml:"kind"`
	Name        string   `toml:"name"`
	Format      string   `toml:"format"`
	Label       string   `toml:"label"`
	FromWorkDir string   `toml:"from_work_dir"`
	Type        string   `toml:"type"`
	NumDashes   int      `toml:"num_dashes"`
	Positional  bool     `toml:"positional"`
	CommandLine string   `toml:"command_line"`
	Filters     []string `toml:"filters"`
	Discover    []string `toml:"discover"`
	Outputs     []Output `toml:"outputs"`
}

type Test struct {
	ExpectNumOutputs int          `toml:"expect_num_outputs"`
	Params           []TestParam  `toml:"params"`
	Outputs          []TestOutput `toml:"outputs"`
}

type TestParam struct {
	Name  string `toml:"name"`
	Value any    `toml:"value"`
}

type TestOutput struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`
	Ftype   string `toml:"ftype"`
	Compare string `toml:"compare"`
}

// Load reads the manifest at path and builds its tool. Macro files are
// resolved relative to the manifest's directory.
func Load(path string) (*tool.Tool, error) {
	data, err := validation.ReadDocument(path, validation.KindTOML)
	if err != nil {
		return nil, errors.Wrapf(errors.NewIO("read", path, err), "load manifest")
	}
	t, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load manifest %s", path)
	}
	return t, nil
}

// Parse decodes a manifest and builds its tool.
func Parse(data []byte, baseDir string) (*tool.Tool, error) {
	var f File
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.NewParse("TOML", "", err.Error())
	}
	for _, key := range meta.Undecoded() {
		logging.Warn("unknown manifest key", "key", key.String())
	}
	if !meta.IsDefined("workflow_compatible") {
		f.WorkflowCompatible = true
	}
	return f.Build(baseDir)
}

// Build converts the manifest into a tool document and validates its
// conditionals.
func (f *File) Build(baseDir string) (*tool.Tool, error) {
	required := []struct{ field, value string }{
		{"name", f.Name}, {"id", f.ID}, {"version", f.Version}, {"executable", f.Executable},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, errors.NewValidation(r.field, "", "is required")
		}
	}

	opts := []tool.Option{tool.WorkflowCompatible(f.WorkflowCompatible)}
	if f.Hidden {
		opts = append(opts, tool.Hidden())
	}
	optional := []struct {
		value string
		opt   func(string) tool.Option
	}{
		{f.Interpreter, tool.Interpreter},
		{f.VersionCommand, tool.VersionCommand},
		{f.Profile, tool.Profile},
		{f.ToolType, tool.ToolType},
		{f.URLMethod, tool.URLMethod},
		{f.Command, tool.CommandOverride},
	}
	for _, o := range optional {
		if o.value != "" {
			opts = append(opts, o.opt(o.value))
		}
	}
	if len(f.MacroFiles) > 0 {
		files := make([]string, len(f.MacroFiles))
		for i, mf := range f.MacroFiles {
			clean, err := validation.SanitizePath(baseDir, mf)
			if err != nil {
				return nil, errors.Wrapf(err, "macro file %q", mf)
			}
			files[i] = filepath.ToSlash(clean)
		}
		opts = append(opts, tool.MacroFiles(files...))
	}

	t, err := tool.New(f.Name, f.ID, f.Version, f.Description, f.Executable, opts...)
	if err != nil {
		return nil, err
	}
	t.Help = f.Help
	for _, c := range f.Comments {
		t.AddComment(c)
	}

	f.buildMetadata(t)

	if t.Inputs, err = buildInputs(f.Inputs); err != nil {
		return nil, err
	}
	if t.Outputs, err = buildOutputs(f.Outputs); err != nil {
		return nil, err
	}
	if t.Tests, err = buildTests(f.Tests); err != nil {
		return nil, err
	}
	if err := tree.Validate(t.Inputs); err != nil {
		return nil, err
	}
	return t, nil
}

func (f *File) buildMetadata(t *tool.Tool) {
	if len(f.Requirements)+len(f.Containers) > 0 {
		t.Requirements = params.NewRequirements()
		for _, r := range f.Requirements {
			var opts []params.Option
			if r.Version != "" {
				opts = append(opts, params.Version(r.Version))
			}
			tree.MustAppend(t.Requirements, params.NewRequirement(or(r.Type, "package"), r.Value, opts...))
		}
		for _, c := range f.Containers {
			tree.MustAppend(t.Requirements, params.NewContainer(or(c.Type, "docker"), c.Image))
		}
	}
	if len(f.EdamTopics) > 0 {
		t.EdamTopics = params.NewEdamTopics()
		for _, term := range f.EdamTopics {
			tree.MustAppend(t.EdamTopics, params.NewEdamTopic(term))
		}
	}
	if len(f.EdamOperations) > 0 {
		t.EdamOperations = params.NewEdamOperations()
		for _, term := range f.EdamOperations {
			tree.MustAppend(t.EdamOperations, params.NewEdamOperation(term))
		}
	}
	if len(f.Citations) > 0 {
		t.Citations = params.NewCitations()
		for _, c := range f.Citations {
			tree.MustAppend(t.Citations, params.NewCitation(or(c.Type, "doi"), c.Value))
		}
	}
	if len(f.Stdio) > 0 {
		t.Stdios = params.NewStdios()
		for _, s := range f.Stdio {
			var opts []params.Option
			if s.Description != "" {
				opts = append(opts, params.Attr("description", s.Description))
			}
			tree.MustAppend(t.Stdios, params.NewStdio(s.Range, s.Level, opts...))
		}
	}
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
