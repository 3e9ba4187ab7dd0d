package tree

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	gxerrors "github.com/FocuswithJustin/galaxyxml/core/errors"
)

// box accepts any child; leaf accepts none.
type box struct {
	Node
	label string
}

func newBox(tag string) *box {
	b := &box{label: tag}
	b.Init(b, tag)
	return b
}

func (b *box) Accepts(Element) bool { return true }

type leaf struct {
	Node
}

func newLeaf(tag string) *leaf {
	l := &leaf{}
	l.Init(l, tag)
	return l
}

type picky struct {
	Node
}

func newPicky() *picky {
	p := &picky{}
	p.Init(p, "picky")
	return p
}

func (p *picky) Accepts(child Element) bool {
	_, ok := child.(*leaf)
	return ok
}

type failing struct {
	Node
}

func (f *failing) Validate() error { return fmt.Errorf("%s is broken", f.Tag()) }

func TestAttrsOrder(t *testing.T) {
	var a Attrs
	a.Set("name", "x")
	a.Set("type", "integer")
	a.Set("value", 3)
	a.Set("name", "y")

	if got := strings.Join(a.Keys(), ","); got != "name,type,value" {
		t.Errorf("Keys() = %s, want name,type,value", got)
	}
	if v, _ := a.Get("name"); v != "y" {
		t.Errorf("name = %q, want y", v)
	}
	if v, _ := a.Get("value"); v != "3" {
		t.Errorf("value = %q, want 3", v)
	}

	a.Set("type", nil)
	if a.Has("type") {
		t.Error("nil value should delete the attribute")
	}
	if got := strings.Join(a.Keys(), ","); got != "name,value" {
		t.Errorf("Keys() after delete = %s", got)
	}
}

func TestAttrsClone(t *testing.T) {
	var a Attrs
	a.Set("k", "v")
	c := a.Clone()
	c.Set("k", "changed")
	c.Set("extra", true)
	if v, _ := a.Get("k"); v != "v" {
		t.Errorf("clone mutation leaked into original: %q", v)
	}
	if a.Len() != 1 {
		t.Errorf("original Len() = %d, want 1", a.Len())
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 0, "0"},
		{"float", 5.4, "5.4"},
		{"whole float", 1.0, "1"},
		{"string", "abc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceValue(tt.input); got != tt.want {
				t.Errorf("CoerceValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	in := map[string]any{
		"label":    "Flag",
		"optional": nil,
		"checked":  false,
		"format":   []any{"fasta", "fastq"},
		"nested":   map[string]any{"min": 1, "drop": nil},
	}

	out, ok := Coerce(in, false).(map[string]any)
	if !ok {
		t.Fatalf("Coerce() returned %T", Coerce(in, false))
	}
	if _, present := out["optional"]; present {
		t.Error("nil entries should be dropped")
	}
	if out["checked"] != "false" {
		t.Errorf("checked = %v, want \"false\"", out["checked"])
	}
	list, ok := out["format"].([]any)
	if !ok || len(list) != 2 || list[1] != "fastq" {
		t.Errorf("format = %v, want [fasta fastq]", out["format"])
	}
	nested := out["nested"].(map[string]any)
	if nested["min"] != "1" || len(nested) != 1 {
		t.Errorf("nested = %v", nested)
	}

	killed := Coerce(in, true).(map[string]any)
	if killed["format"] != "fasta" {
		t.Errorf("killLists format = %v, want fasta", killed["format"])
	}
	if Coerce([]any{}, true) != nil {
		t.Error("empty list with killLists should coerce to nil")
	}
	var missing *string
	if Coerce(missing, true) != nil {
		t.Error("nil *string should coerce to nil")
	}
}

func TestAppendAcceptance(t *testing.T) {
	p := newPicky()
	if err := p.Append(newLeaf("ok")); err != nil {
		t.Fatalf("Append(leaf) error = %v", err)
	}

	err := p.Append(newBox("nope"))
	if err == nil {
		t.Fatal("Append(box) should fail")
	}
	if !errors.Is(err, gxerrors.ErrTypeMismatch) {
		t.Errorf("error %v should be a type mismatch", err)
	}
	var tm *gxerrors.TypeMismatchError
	if !errors.As(err, &tm) || tm.Parent != "*tree.picky" || tm.Child != "*tree.box" {
		t.Errorf("TypeMismatchError = %+v", tm)
	}
	if p.Len() != 1 {
		t.Errorf("rejected child was linked: Len() = %d", p.Len())
	}

	l := newLeaf("leaf")
	if err := l.Append(newLeaf("child")); err == nil {
		t.Error("leaf nodes accept nothing")
	}
	if err := p.Append(nil); err == nil {
		t.Error("nil child should be rejected")
	}
}

func TestAppendSetsParent(t *testing.T) {
	root := newBox("root")
	child := newBox("child")
	MustAppend(root, child)
	if child.Parent() != Element(root) {
		t.Error("Append should set the parent link")
	}
	if root.Child(0) != Element(child) || root.Child(1) != nil {
		t.Error("Child() indexing is wrong")
	}
}

func TestUninitializedAppend(t *testing.T) {
	var n Node
	if err := n.Append(newLeaf("x")); err == nil {
		t.Error("append on an uninitialized node should fail")
	}
}

func TestSnapshotIndependence(t *testing.T) {
	root := newBox("root")
	root.SetAttr("id", "r")
	mid := newBox("mid")
	inner := newLeaf("inner")
	inner.SetText("text")
	MustAppend(root, mid)
	MustAppend(mid, inner)

	snap := Snapshot(root)
	if snap == root {
		t.Fatal("Snapshot returned the same pointer")
	}
	if snap.label != "root" {
		t.Errorf("struct fields not copied: label = %q", snap.label)
	}

	snapMid := snap.Child(0).(*box)
	if snapMid == mid {
		t.Fatal("children were not copied")
	}
	if snapMid.Parent() != Element(snap) {
		t.Error("copied child should point at copied parent")
	}
	if snap.Parent() != nil {
		t.Error("snapshot root should have no parent")
	}

	snap.SetAttr("id", "changed")
	MustAppend(snapMid, newLeaf("extra"))
	snapMid.Child(0).Base().SetText("changed")

	if v, _ := root.Attr("id"); v != "r" {
		t.Errorf("original attr mutated: %q", v)
	}
	if mid.Len() != 1 {
		t.Errorf("original children mutated: Len() = %d", mid.Len())
	}
	if txt, _ := inner.Text(); txt != "text" {
		t.Errorf("original text mutated: %q", txt)
	}

	// appending a snapshot child elsewhere leaves the original parent alone
	other := newBox("other")
	MustAppend(other, snapMid)
	if mid.Parent() != Element(root) {
		t.Error("original parent link changed")
	}
}

func TestSnapshotNil(t *testing.T) {
	var b *box
	if Snapshot(b) != nil {
		t.Error("Snapshot(nil) should be nil")
	}
}

func TestRender(t *testing.T) {
	root := newBox("tool")
	root.SetAttr("name", "aragorn")
	root.SetAttr("hidden", nil)
	root.SetAttr("version", "1 & 2")
	MustAppend(root, NewComment("generated -- here"))

	desc := newLeaf("description")
	desc.SetText("a <b> c")
	cmd := newLeaf("command")
	cmd.SetCDATA("aragorn $input > $output")
	empty := newBox("inputs")
	blank := newLeaf("help")
	blank.SetCDATA("")
	MustAppend(root, desc, cmd, empty, blank)

	want := strings.Join([]string{
		`<tool name="aragorn" version="1 &amp; 2">`,
		`  <!--generated - - here-->`,
		`  <description>a &lt;b&gt; c</description>`,
		`  <command><![CDATA[aragorn $input > $output]]></command>`,
		`  <inputs/>`,
		`  <help><![CDATA[]]></help>`,
		`</tool>`,
		``,
	}, "\n")
	if got := Render(root); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderNested(t *testing.T) {
	a := newBox("a")
	b := newBox("b")
	c := newLeaf("c")
	c.SetAttr("x", "1")
	MustAppend(a, b)
	MustAppend(b, c)

	want := "<a>\n\t<b>\n\t\t<c x=\"1\"/>\n\t</b>\n</a>\n"
	if got := RenderIndent(a, "\t"); got != want {
		t.Errorf("RenderIndent() = %q, want %q", got, want)
	}
}

func TestWalkAndValidate(t *testing.T) {
	root := newBox("root")
	bad := &failing{}
	bad.Init(bad, "bad")
	skipped := newBox("skip")
	hidden := &failing{}
	hidden.Init(hidden, "hidden")
	MustAppend(skipped, hidden)
	MustAppend(root, bad, skipped)

	var tags []string
	Walk(root, func(e Element) bool {
		tags = append(tags, e.Base().Tag())
		return e.Base().Tag() != "skip"
	})
	if got := strings.Join(tags, ","); got != "root,bad,skip" {
		t.Errorf("Walk order = %s", got)
	}

	err := Validate(root)
	if err == nil {
		t.Fatal("Validate should report failing elements")
	}
	if !strings.Contains(err.Error(), "bad is broken") || !strings.Contains(err.Error(), "hidden is broken") {
		t.Errorf("Validate() = %v", err)
	}

	if err := Validate(newBox("clean")); err != nil {
		t.Errorf("Validate(clean) = %v", err)
	}
}
