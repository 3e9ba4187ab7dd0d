package params

import (
	"strings"

	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// defaultSeparator is written between a flag and its value.
const defaultSeparator = " "

// argument holds the command-line state shared by input parameters and
// output datasets.
type argument struct {
	identifier string
	numDashes  int
	separator  string
	positional bool
	flag       string
	override   *string
	before     *string
	after      *string
}

func newArgument(identifier string, s *settings) argument {
	a := argument{
		identifier: identifier,
		numDashes:  s.numDashes,
		separator:  defaultSeparator,
		positional: s.positional,
		override:   s.override,
	}
	if s.separator != nil {
		a.separator = *s.separator
	}
	return a
}

// NameFromArgument derives a parameter name from an argument attribute the
// way Galaxy does: leading dashes dropped, inner dashes become underscores.
func NameFromArgument(arg string) string {
	return strings.ReplaceAll(strings.TrimLeft(arg, "-"), "-", "_")
}

// Identifier returns the name used for flags and variable references.
func (a *argument) Identifier() string {
	return a.identifier
}

// NumDashes returns the number of dashes preceding the flag.
func (a *argument) NumDashes() int {
	return a.numDashes
}

// Positional reports whether the parameter renders without a flag.
func (a *argument) Positional() bool {
	return a.positional
}

// Separator returns the text written between flag and value.
func (a *argument) Separator() string {
	return a.separator
}

// SetSeparator changes the text written between flag and value.
func (a *argument) SetSeparator(sep string) {
	a.separator = sep
}

// Flag returns the dashes followed by the identifier. With zero dashes the
// flag is the bare identifier. An explicit argument attribute wins when
// dashes are set.
func (a *argument) Flag() string {
	if a.flag != "" {
		return a.flag
	}
	return strings.Repeat("-", a.numDashes) + a.identifier
}

// SetCommandLineOverride replaces derivation with a literal fragment.
func (a *argument) SetCommandLineOverride(cl string) {
	a.override = &cl
}

// ClearCommandLineOverride restores derived command-line output.
func (a *argument) ClearCommandLineOverride() {
	a.override = nil
}

// CommandLineOverride returns the literal override and whether one is set.
func (a *argument) CommandLineOverride() (string, bool) {
	if a.override == nil {
		return "", false
	}
	return *a.override, true
}

// SetCommandLineBefore sets a literal line emitted before the fragment.
func (a *argument) SetCommandLineBefore(line string) {
	a.before = &line
}

// SetCommandLineAfter sets a literal line emitted after the fragment.
func (a *argument) SetCommandLineAfter(line string) {
	a.after = &line
}

func (a *argument) commandLineBefore() string {
	if a.before == nil {
		return ""
	}
	return *a.before
}

func (a *argument) commandLineAfter() string {
	if a.after == nil {
		return ""
	}
	return *a.after
}

// commandLiner is implemented by elements that render their command line as
// a whole.
type commandLiner interface {
	CommandLine() string
}

// commandParts is implemented by elements whose command line is the
// before/actual/after triad.
type commandParts interface {
	commandLineBefore() string
	commandLineActual() string
	commandLineAfter() string
	CommandLineOverride() (string, bool)
}

// CommandLine renders the command-line fragment contributed by e. Elements
// that contribute nothing render "".
func CommandLine(e tree.Element) string {
	switch v := e.(type) {
	case commandLiner:
		return v.CommandLine()
	case commandParts:
		return compose(v)
	}
	return ""
}

func compose(p commandParts) string {
	actual, ok := p.CommandLineOverride()
	if !ok {
		actual = p.commandLineActual()
	}
	return joinLines(p.commandLineBefore(), actual, p.commandLineAfter())
}

// childLines joins the non-empty command lines of e's children.
func childLines(e tree.Element) string {
	children := e.Base().Children()
	lines := make([]string, 0, len(children))
	for _, child := range children {
		lines = append(lines, CommandLine(child))
	}
	return joinLines(lines...)
}

func joinLines(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n")
}
