package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// Requirements is the <requirements> section.
type Requirements struct {
	tree.Node
}

// NewRequirements creates an empty requirements section.
func NewRequirements() *Requirements {
	r := &Requirements{}
	r.Init(r, "requirements")
	return r
}

func (r *Requirements) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *Requirement, *Container, *Expand:
		return true
	}
	return false
}

// Requirement is a package the tool depends on.
type Requirement struct {
	tree.Node
}

// NewRequirement creates a requirement of reqType (usually "package") named
// value. The version is passed with Version.
func NewRequirement(reqType, value string, opts ...Option) *Requirement {
	r := &Requirement{}
	r.Init(r, "requirement")
	r.SetAttr("type", reqType)
	collect(opts).applyAttrs(&r.Node)
	r.SetText(value)
	return r
}

// Container is a container image the tool can run in.
type Container struct {
	tree.Node
}

// NewContainer creates a container of containerType ("docker",
// "singularity") for image.
func NewContainer(containerType, image string) *Container {
	c := &Container{}
	c.Init(c, "container")
	c.SetAttr("type", containerType)
	c.SetText(image)
	return c
}

// EdamTopics is the <edam_topics> section.
type EdamTopics struct {
	tree.Node
}

// NewEdamTopics creates an empty edam_topics section.
func NewEdamTopics() *EdamTopics {
	e := &EdamTopics{}
	e.Init(e, "edam_topics")
	return e
}

func (e *EdamTopics) Accepts(child tree.Element) bool {
	_, ok := child.(*EdamTopic)
	return ok
}

// HasTopic reports whether topic is listed.
func (e *EdamTopics) HasTopic(topic string) bool {
	return hasText(e, topic)
}

// EdamTopic is one EDAM topic term such as "topic_0797".
type EdamTopic struct {
	tree.Node
}

// NewEdamTopic creates an edam_topic.
func NewEdamTopic(term string) *EdamTopic {
	e := &EdamTopic{}
	e.Init(e, "edam_topic")
	e.SetText(term)
	return e
}

// EdamOperations is the <edam_operations> section.
type EdamOperations struct {
	tree.Node
}

// NewEdamOperations creates an empty edam_operations section.
func NewEdamOperations() *EdamOperations {
	e := &EdamOperations{}
	e.Init(e, "edam_operations")
	return e
}

func (e *EdamOperations) Accepts(child tree.Element) bool {
	_, ok := child.(*EdamOperation)
	return ok
}

// HasOperation reports whether operation is listed.
func (e *EdamOperations) HasOperation(operation string) bool {
	return hasText(e, operation)
}

// EdamOperation is one EDAM operation term such as "operation_0004".
type EdamOperation struct {
	tree.Node
}

// NewEdamOperation creates an edam_operation.
func NewEdamOperation(term string) *EdamOperation {
	e := &EdamOperation{}
	e.Init(e, "edam_operation")
	e.SetText(term)
	return e
}

// Citations is the <citations> section.
type Citations struct {
	tree.Node
}

// NewCitations creates an empty citations section.
func NewCitations() *Citations {
	c := &Citations{}
	c.Init(c, "citations")
	return c
}

func (c *Citations) Accepts(child tree.Element) bool {
	_, ok := child.(*Citation)
	return ok
}

// HasCitation reports whether a citation of citationType with value is listed.
func (c *Citations) HasCitation(citationType, value string) bool {
	for _, child := range c.Children() {
		t, _ := child.Base().Attr("type")
		text, _ := child.Base().Text()
		if t == citationType && text == value {
			return true
		}
	}
	return false
}

// Citation is a doi or bibtex reference.
type Citation struct {
	tree.Node
}

// NewCitation creates a citation of citationType ("doi", "bibtex").
func NewCitation(citationType, value string) *Citation {
	c := &Citation{}
	c.Init(c, "citation")
	c.SetAttr("type", citationType)
	c.SetText(value)
	return c
}

// Configfiles is the <configfiles> section.
type Configfiles struct {
	tree.Node
}

// NewConfigfiles creates an empty configfiles section.
func NewConfigfiles() *Configfiles {
	c := &Configfiles{}
	c.Init(c, "configfiles")
	return c
}

func (c *Configfiles) Accepts(child tree.Element) bool {
	switch child.(type) {
	case *Configfile, *ConfigfileDefaultInputs:
		return true
	}
	return false
}

// Configfile is a template rendered to a file before the command runs.
type Configfile struct {
	tree.Node
}

// NewConfigfile creates a configfile whose template is kept verbatim as CDATA.
func NewConfigfile(name, text string) *Configfile {
	c := &Configfile{}
	c.Init(c, "configfile")
	c.SetAttr("name", name)
	c.SetCDATA(text)
	return c
}

// ConfigfileDefaultInputs dumps all inputs as JSON into a config file.
type ConfigfileDefaultInputs struct {
	tree.Node
}

// NewConfigfileDefaultInputs creates an <inputs name=...> configfile;
// filename and data_style are passed with Attr.
func NewConfigfileDefaultInputs(name string, opts ...Option) *ConfigfileDefaultInputs {
	c := &ConfigfileDefaultInputs{}
	c.Init(c, "inputs")
	c.SetAttr("name", name)
	collect(opts).applyAttrs(&c.Node)
	return c
}

// Stdios is the <stdio> section.
type Stdios struct {
	tree.Node
}

// NewStdios creates an empty stdio section.
func NewStdios() *Stdios {
	s := &Stdios{}
	s.Init(s, "stdio")
	return s
}

func (s *Stdios) Accepts(child tree.Element) bool {
	_, ok := child.(*Stdio)
	return ok
}

// Stdio is an <exit_code> rule.
type Stdio struct {
	tree.Node
}

// NewStdio creates an exit_code rule for the exit code range, such as "1:",
// reported at level, such as "fatal". Empty arguments fall back to those
// values.
func NewStdio(codeRange, level string, opts ...Option) *Stdio {
	if codeRange == "" {
		codeRange = "1:"
	}
	if level == "" {
		level = "fatal"
	}
	s := &Stdio{}
	s.Init(s, "exit_code")
	s.SetAttr("range", codeRange)
	s.SetAttr("level", level)
	collect(opts).applyAttrs(&s.Node)
	return s
}

// DefaultStdios returns the stdio section that treats any non-zero exit code
// as fatal.
func DefaultStdios() *Stdios {
	s := NewStdios()
	tree.MustAppend(s, NewStdio("", ""))
	return s
}

func hasText(e tree.Element, want string) bool {
	for _, child := range e.Base().Children() {
		if text, _ := child.Base().Text(); text == want {
			return true
		}
	}
	return false
}
