package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// Option configures an element at construction time. Attribute options are
// written in the order they are given, after the constructor's own
// attributes.
type Option func(*settings)

type settings struct {
	attrs      tree.Attrs
	numDashes  int
	positional bool
	separator  *string
	override   *string
	text       *string
	options    map[string]string
	def        *string
}

func collect(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// applyAttrs copies the collected attributes onto n.
func (s *settings) applyAttrs(n *tree.Node) {
	for _, key := range s.attrs.Keys() {
		v, _ := s.attrs.Get(key)
		n.Attrs().SetString(key, v)
	}
}

// Attr sets an arbitrary attribute. The value is coerced: booleans become
// "true"/"false", slices collapse to their first element, and nil leaves the
// attribute unset.
func Attr(key string, value any) Option {
	return func(s *settings) {
		s.attrs.Set(key, value)
	}
}

// Label sets the label attribute.
func Label(label string) Option { return Attr("label", label) }

// Help sets the help attribute.
func Help(help string) Option { return Attr("help", help) }

// Optional sets the optional attribute.
func Optional(optional bool) Option { return Attr("optional", optional) }

// Value sets the value attribute.
func Value(value any) Option { return Attr("value", value) }

// Min sets the min attribute.
func Min(min any) Option { return Attr("min", min) }

// Max sets the max attribute.
func Max(max any) Option { return Attr("max", max) }

// Format sets the format attribute.
func Format(format string) Option { return Attr("format", format) }

// Multiple sets the multiple attribute.
func Multiple(multiple bool) Option { return Attr("multiple", multiple) }

// Checked sets a boolean parameter's checked attribute.
func Checked(checked bool) Option { return Attr("checked", checked) }

// TrueValue sets a boolean parameter's truevalue attribute.
func TrueValue(v string) Option { return Attr("truevalue", v) }

// FalseValue sets a boolean parameter's falsevalue attribute.
func FalseValue(v string) Option { return Attr("falsevalue", v) }

// Argument sets the argument attribute explicitly.
func Argument(arg string) Option { return Attr("argument", arg) }

// Version sets the version attribute of a requirement.
func Version(version string) Option { return Attr("version", version) }

// Ftype sets the ftype attribute of a test parameter or output.
func Ftype(ftype string) Option { return Attr("ftype", ftype) }

// File sets the file attribute of a test output.
func File(file string) Option { return Attr("file", file) }

// NumDashes sets how many dashes precede the parameter's flag.
func NumDashes(n int) Option {
	return func(s *settings) {
		if n < 0 {
			n = 0
		}
		s.numDashes = n
	}
}

// Positional marks a parameter as positional: it renders without a flag.
func Positional() Option {
	return func(s *settings) {
		s.positional = true
	}
}

// Separator sets the text written between a flag and its value.
func Separator(sep string) Option {
	return func(s *settings) {
		s.separator = &sep
	}
}

// CommandLineOverride replaces the derived command-line fragment with a
// literal string. An empty override suppresses the fragment.
func CommandLineOverride(cl string) Option {
	return func(s *settings) {
		s.override = &cl
	}
}

// Content sets an element's text, for elements that carry text such as
// regex validators.
func Content(text string) Option {
	return func(s *settings) {
		s.text = &text
	}
}

// SelectOptions declares a select parameter's static options as a
// value→text mapping. Options are added in sorted value order.
func SelectOptions(options map[string]string) Option {
	return func(s *settings) {
		s.options = options
	}
}

// Default marks one of a select parameter's options as selected.
func Default(value string) Option {
	return func(s *settings) {
		s.def = &value
	}
}
