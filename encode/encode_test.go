package encode

import (
	"bytes"
	"testing"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/format"
	"github.com/signadot/tony-edit/ir"
	"github.com/signadot/tony-edit/parse"
)

func TestRoundTrip(t *testing.T) {
	// an untouched tree must reproduce its source byte-for-byte
	for _, src := range []string{
		`{a: 42, b: [1, 2]}`,
		"{a: 42,    b: [1,\n  2]}",
		"# header\n{name: \"app\", port: 8080}\n",
		"{base: &b {x: 1}, other: *b}",
		"{a: 1}\n---\n{b: 2}\n",
		`[1, 2.5, "three", null, true]`,
	} {
		tree, err := parse.Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		buf := bytes.NewBuffer(nil)
		if err := EncodeTree(tree, buf, Preserve(true)); err != nil {
			t.Fatalf("EncodeTree(%q): %v", src, err)
		}
		if buf.String() != src {
			t.Errorf("round trip of %q gave %q", src, buf.String())
		}
	}
}

func TestPartialPreservation(t *testing.T) {
	// editing one value dirties its ancestor chain; untouched siblings
	// keep their original rendering, quirky spacing included
	src := `{a: 42, b: [1,  2]}`
	tree, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	a := tree.GetMut(doc.Path{0})
	v := int64(43)
	a.Int64 = &v
	a.Number = ""

	buf := bytes.NewBuffer(nil)
	if err := EncodeTree(tree, buf, Preserve(true)); err != nil {
		t.Fatal(err)
	}
	want := "a: 43\nb: [1,  2]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEmptyRootContainerCanonical(t *testing.T) {
	for src, want := range map[string]string{
		"{}":   "{}\n",
		"[ ] ": "[]\n",
	} {
		tree, err := parse.Parse([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		buf := bytes.NewBuffer(nil)
		if err := EncodeTree(tree, buf, Preserve(true)); err != nil {
			t.Fatal(err)
		}
		if buf.String() != want {
			t.Errorf("empty container %q encoded as %q", src, buf.String())
		}
	}
}

func TestEncodeCanonicalYAML(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("name"), Val: ir.FromString("app")},
		{Key: ir.FromString("port"), Val: ir.FromInt(8080)},
		{Key: ir.FromString("tags"), Val: ir.FromSlice([]*ir.Node{
			ir.FromString("a"),
			ir.FromString("b"),
		})},
	})
	want := `name: app
port: 8080
tags:
  - a
  - b
`
	if got := MustString(node) + "\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeJSON(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("name"), Val: ir.FromString("app")},
		{Key: ir.FromString("tags"), Val: ir.FromSlice([]*ir.Node{
			ir.FromString("a"),
			ir.FromString("b"),
		})},
	})
	want := `{
  "name": "app",
  "tags": [
    "a",
    "b"
  ]
}`
	if got := MustString(node, EncodeFormat(format.JSONFormat)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeComments(t *testing.T) {
	key := ir.FromString("retries")
	key.Comment = ir.FromComment([]string{"per request"}, ir.AbovePosition)
	val := ir.FromInt(3)
	val.Comment = ir.FromComment([]string{"tuned"}, ir.InlinePosition)
	node := ir.FromKeyVals([]ir.KeyVal{{Key: key, Val: val}})

	want := "# per request\nretries: 3 # tuned"
	if got := MustString(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// JSON output drops comments
	if got := MustString(node, EncodeFormat(format.JSONFormat)); got != `{
  "retries": 3
}` {
		t.Errorf("json got %q", got)
	}
}

func TestEncodeBlockString(t *testing.T) {
	msg := ir.FromString("line one\nline two")
	msg.Style = ir.LiteralStyle
	msg.Lines = []string{"line one", "line two"}
	node := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("msg"), Val: msg}})

	want := "msg: |\n  line one\n  line two"
	if got := MustString(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeAnchorsAliases(t *testing.T) {
	base := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("x"), Val: ir.FromInt(1)}})
	base.Anchor = "defaults"
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("base"), Val: base},
		{Key: ir.FromString("other"), Val: ir.FromAlias("defaults")},
	})
	want := "base: &defaults\n  x: 1\nother: *defaults"
	if got := MustString(node); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeNumberRepr(t *testing.T) {
	intTree, err := parse.Parse([]byte(`{n: 42}`))
	if err != nil {
		t.Fatal(err)
	}
	floatTree, err := parse.Parse([]byte(`{n: 42.0}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := MustString(intTree.Get(doc.Path{0})); got != "42" {
		t.Errorf("int = %q", got)
	}
	if got := MustString(floatTree.Get(doc.Path{0})); got != "42.0" {
		t.Errorf("float = %q", got)
	}
}

func TestQuoting(t *testing.T) {
	for in, want := range map[string]string{
		"plain":   "plain",
		"true":    `"true"`,
		"3.14":    `"3.14"`,
		"a: b":    `"a: b"`,
		"*star":   `"*star"`,
		"-lead":   `"-lead"`,
		"":        `""`,
		"mid#tag": `"mid#tag"`,
	} {
		if got := MustString(ir.FromString(in)); got != want {
			t.Errorf("quote(%q) = %q, want %q", in, got, want)
		}
	}
}
