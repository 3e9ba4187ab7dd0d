package params

import (
	"github.com/FocuswithJustin/galaxyxml/core/tree"
)

// RequestParamTranslation maps the parameters a remote data source sends
// back onto Galaxy names.
type RequestParamTranslation struct {
	tree.Node
}

// NewRequestParamTranslation creates an empty request_param_translation.
func NewRequestParamTranslation() *RequestParamTranslation {
	r := &RequestParamTranslation{}
	r.Init(r, "request_param_translation")
	return r
}

func (r *RequestParamTranslation) Accepts(child tree.Element) bool {
	_, ok := child.(*RequestParam)
	return ok
}

// RequestParam translates one remote parameter.
type RequestParam struct {
	tree.Node
	galaxyName string
}

// NewRequestParam creates a request_param. missing is the value used when
// the remote side omits the parameter.
func NewRequestParam(galaxyName, remoteName, missing string, opts ...Option) *RequestParam {
	r := &RequestParam{galaxyName: galaxyName}
	r.Init(r, "request_param")
	r.SetAttr("galaxy_name", galaxyName)
	r.SetAttr("remote_name", remoteName)
	r.SetAttr("missing", missing)
	collect(opts).applyAttrs(&r.Node)
	return r
}

// Only the URL parameter takes appended query arguments.
func (r *RequestParam) Accepts(child tree.Element) bool {
	_, ok := child.(*AppendParam)
	return ok && r.galaxyName == "URL"
}

// AppendParam appends query arguments to the URL parameter.
type AppendParam struct {
	tree.Node
}

// NewAppendParam creates an append_param with separator "&",
// first_separator "?" and join "=" unless overridden with Attr.
func NewAppendParam(opts ...Option) *AppendParam {
	a := &AppendParam{}
	a.Init(a, "append_param")
	a.SetAttr("separator", "&")
	a.SetAttr("first_separator", "?")
	a.SetAttr("join", "=")
	collect(opts).applyAttrs(&a.Node)
	return a
}

func (a *AppendParam) Accepts(child tree.Element) bool {
	_, ok := child.(*AppendParamValue)
	return ok
}

// AppendParamValue is one appended query argument.
type AppendParamValue struct {
	tree.Node
}

// NewAppendParamValue creates a <value>. Empty arguments fall back to name
// "_export" and missing "1".
func NewAppendParamValue(name, missing string) *AppendParamValue {
	if name == "" {
		name = "_export"
	}
	if missing == "" {
		missing = "1"
	}
	v := &AppendParamValue{}
	v.Init(v, "value")
	v.SetAttr("name", name)
	v.SetAttr("missing", missing)
	return v
}
