// Package cheetah lints the block structure of Cheetah command templates.
// It checks that #for, #if, #while, #def, #block, #try and #raw directives
// are closed by the matching #end, and that #elif, #else, #except and
// #finally appear inside the block they belong to.
package cheetah

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/galaxyxml/core/errors"
)

// directive is one line starting with '#'.
type directive struct {
	Keyword string   `parser:"Hash @Ident?"`
	Args    []string `parser:"@(Ident | Hash | Other)*"`
}

var directiveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `##.*`},
	{Name: "Hash", Pattern: `#`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `[^\s#A-Za-z_]+`},
})

var directiveParser = participle.MustBuild[directive](
	participle.Lexer(directiveLexer),
	participle.Elide("Comment", "Whitespace"),
)

// blocks are the directives closed by "#end <keyword>".
var blocks = []string{"for", "if", "while", "def", "block", "try", "raw"}

// Issue is a structural problem found on a template line.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

type open struct {
	keyword string
	line    int
}

// Check returns the structural issues of template. Lines are numbered from 1.
func Check(template string) []Issue {
	var issues []Issue
	var stack []open
	report := func(line int, format string, args ...any) {
		issues = append(issues, Issue{Line: line, Message: fmt.Sprintf(format, args...)})
	}
	inside := func(keyword string) bool {
		return len(stack) > 0 && stack[len(stack)-1].keyword == keyword
	}

	for i, raw := range strings.Split(template, "\n") {
		line := i + 1
		text := strings.TrimSpace(raw)
		if !strings.HasPrefix(text, "#") || strings.HasPrefix(text, "##") {
			continue
		}
		// the keyword must follow '#' directly; "# if unset" is a shell comment
		if len(text) > 1 && (text[1] == ' ' || text[1] == '\t') {
			continue
		}
		// inside #raw only the closing directive counts
		if inside("raw") && !strings.HasPrefix(text, "#end") {
			continue
		}
		d, err := directiveParser.ParseString("", text)
		if err != nil {
			report(line, "unparseable directive: %v", err)
			continue
		}

		switch d.Keyword {
		case "for", "while", "def", "block", "try", "raw":
			stack = append(stack, open{d.Keyword, line})
		case "if":
			// "#if cond then a else b" is a one-line expression
			if !slices.Contains(d.Args, "then") {
				stack = append(stack, open{"if", line})
			}
		case "elif":
			if !inside("if") {
				report(line, "#elif outside #if")
			}
		case "else":
			if !inside("if") {
				report(line, "#else outside #if")
			}
		case "except", "finally":
			if !inside("try") {
				report(line, "#%s outside #try", d.Keyword)
			}
		case "end":
			if len(d.Args) == 0 || !slices.Contains(blocks, d.Args[0]) {
				report(line, "#end must name the block it closes")
				continue
			}
			closing := d.Args[0]
			if len(stack) == 0 {
				report(line, "#end %s without an open #%s", closing, closing)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.keyword != closing {
				report(line, "#end %s closes #%s opened on line %d", closing, top.keyword, top.line)
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		report(stack[i].line, "#%s is never closed", stack[i].keyword)
	}
	return issues
}

// Validate returns a ValidationError describing every issue in template, or
// nil when its blocks are balanced.
func Validate(template string) error {
	issues := Check(template)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return errors.NewValidation("command", "", strings.Join(msgs, "; "))
}
