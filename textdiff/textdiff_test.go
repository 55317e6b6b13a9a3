package textdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-edit/parse"
)

func TestStrings(t *testing.T) {
	from := "a: 1\nb: 2\nc: 3\n"
	to := "a: 1\nb: 20\nc: 3\n"
	got := Strings(from, to)
	want := []Line{
		{Op: Equal, Text: "a: 1"},
		{Op: Delete, Text: "b: 2"},
		{Op: Insert, Text: "b: 20"},
		{Op: Equal, Text: "c: 3"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", d)
	}
	if !Changed(got) {
		t.Error("Changed = false for a real change")
	}
}

func TestStringsEqual(t *testing.T) {
	s := "x: 1\ny: 2\n"
	if lines := Strings(s, s); Changed(lines) {
		t.Errorf("identical inputs reported changed: %v", lines)
	}
}

func TestTrees(t *testing.T) {
	from, err := parse.Parse([]byte(`{a: 1, b: 2}`))
	if err != nil {
		t.Fatal(err)
	}
	to, err := parse.Parse([]byte(`{a: 1, b: 3}`))
	if err != nil {
		t.Fatal(err)
	}
	lines, err := Trees(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if !Changed(lines) {
		t.Fatal("no change detected")
	}
	var ins, del int
	for _, ln := range lines {
		switch ln.Op {
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	if ins == 0 || del == 0 {
		t.Errorf("expected both sides in the diff, got %v", lines)
	}
}

func TestRender(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	err := Render(buf, []Line{
		{Op: Equal, Text: "a: 1"},
		{Op: Delete, Text: "b: 2"},
		{Op: Insert, Text: "b: 3"},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := " a: 1\n-b: 2\n+b: 3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
