package doc

import (
	"errors"
	"testing"

	"github.com/signadot/tony-edit/ir"
)

func intArray(vs ...int64) *ir.Node {
	nodes := make([]*ir.Node, len(vs))
	for i, v := range vs {
		nodes[i] = ir.FromInt(v)
	}
	return ir.FromSlice(nodes)
}

func testTree() *Tree {
	// {items: [0,1,2,3,4], meta: {name: "x"}}
	return New(ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("items"), Val: intArray(0, 1, 2, 3, 4)},
		{Key: ir.FromString("meta"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("name"), Val: ir.FromString("x")},
		})},
	}))
}

func TestGet(t *testing.T) {
	tr := testTree()
	tests := []struct {
		name string
		path Path
		want func(*ir.Node) bool
	}{
		{"root", Path{}, func(n *ir.Node) bool { return n != nil && n.Type == ir.ObjectType }},
		{"first pair value", Path{0}, func(n *ir.Node) bool { return n != nil && n.Type == ir.ArrayType }},
		{"array element", Path{0, 2}, func(n *ir.Node) bool { return n != nil && *n.Int64 == 2 }},
		{"nested object", Path{1, 0}, func(n *ir.Node) bool { return n != nil && n.String == "x" }},
		{"out of range", Path{0, 9}, func(n *ir.Node) bool { return n == nil }},
		{"through scalar", Path{1, 0, 0}, func(n *ir.Node) bool { return n == nil }},
		{"negative", Path{-1}, func(n *ir.Node) bool { return n == nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Get(tt.path); !tt.want(got) {
				t.Errorf("Get(%s) = %v", tt.path, got)
			}
		})
	}
}

func TestGetDoesNotDirty(t *testing.T) {
	tr := testTree()
	clearModified(tr.Root)
	tr.Get(Path{0, 2})
	if tr.Root.Modified || tr.Root.Values[0].Modified {
		t.Error("Get marked nodes modified")
	}
}

func TestGetMutDirtyCascade(t *testing.T) {
	tr := testTree()
	clearModified(tr.Root)

	n := tr.GetMut(Path{0, 2})
	if n == nil {
		t.Fatal("GetMut returned nil")
	}
	// every node on the walk is dirty even though nothing was written
	if !tr.Root.Modified {
		t.Error("root not marked modified")
	}
	if !tr.Root.Values[0].Modified {
		t.Error("intermediate container not marked modified")
	}
	if !n.Modified {
		t.Error("target not marked modified")
	}
	// the sibling subtree stays clean
	if tr.Root.Values[1].Modified {
		t.Error("untouched sibling marked modified")
	}
	if tr.Root.Values[0].Values[0].Modified {
		t.Error("untouched array element marked modified")
	}
}

func TestInsertShift(t *testing.T) {
	tr := testTree()
	if err := tr.InsertInArray(Path{0, 2}, ir.FromInt(99)); err != nil {
		t.Fatal(err)
	}
	arr := tr.Get(Path{0})
	if len(arr.Values) != 6 {
		t.Fatalf("length %d after insert", len(arr.Values))
	}
	if got := tr.Get(Path{0, 2}); *got.Int64 != 99 {
		t.Errorf("inserted element = %d", *got.Int64)
	}
	// former element at 2 shifted to 3
	if got := tr.Get(Path{0, 3}); *got.Int64 != 2 {
		t.Errorf("shifted element = %d", *got.Int64)
	}
}

func TestInsertAppendAtLength(t *testing.T) {
	tr := testTree()
	if err := tr.InsertInArray(Path{0, 5}, ir.FromInt(5)); err != nil {
		t.Fatal(err)
	}
	if got := tr.Get(Path{0, 5}); got == nil || *got.Int64 != 5 {
		t.Errorf("appended element = %v", got)
	}
	if err := tr.InsertInArray(Path{0, 9}, ir.FromInt(9)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("insert past length = %v, want ErrOutOfBounds", err)
	}
}

func TestInsertInObject(t *testing.T) {
	tr := testTree()
	if err := tr.InsertInObject(Path{1}, "version", ir.FromInt(2)); err != nil {
		t.Fatal(err)
	}
	root := tr.Get(Path{})
	if root.Fields[1].String != "version" {
		t.Errorf("pair 1 key = %q", root.Fields[1].String)
	}
	if root.Fields[2].String != "meta" {
		t.Errorf("pair 2 key = %q, want shifted meta", root.Fields[2].String)
	}
	if got := tr.Get(Path{1}); *got.Int64 != 2 {
		t.Errorf("pair 1 value = %v", got)
	}
	// the fields' parent bookkeeping is rebuilt
	if got := tr.Get(Path{2, 0}); got == nil || got.String != "x" {
		t.Errorf("meta.name after shift = %v", got)
	}
}

func TestInsertAtRoot(t *testing.T) {
	// empty path: the root itself is the target at index 0
	tr := testTree()
	if err := tr.InsertInObject(Path{}, "first", ir.Null()); err != nil {
		t.Fatal(err)
	}
	if tr.Root.Fields[0].String != "first" {
		t.Errorf("root pair 0 key = %q", tr.Root.Fields[0].String)
	}
	if len(tr.Root.Fields) != 3 {
		t.Errorf("root has %d pairs", len(tr.Root.Fields))
	}
}

func TestInsertWrongContainer(t *testing.T) {
	tr := testTree()
	if err := tr.InsertInObject(Path{0, 0}, "k", ir.Null()); !errors.Is(err, ErrNotContainer) {
		t.Errorf("object insert into array = %v, want ErrNotContainer", err)
	}
	if err := tr.InsertInArray(Path{1, 0}, ir.Null()); !errors.Is(err, ErrNotContainer) {
		t.Errorf("array insert into object = %v, want ErrNotContainer", err)
	}
}

func TestReplace(t *testing.T) {
	tr := testTree()
	if err := tr.Replace(Path{0, 2}, ir.FromString("mid")); err != nil {
		t.Fatal(err)
	}
	got := tr.Get(Path{0, 2})
	if got.String != "mid" || got.ParentIndex != 2 || got.Parent != tr.Get(Path{0}) {
		t.Errorf("replaced node = %v (parent %v, index %d)", got, got.Parent, got.ParentIndex)
	}
	// object member replacement keeps the key
	if err := tr.Replace(Path{1, 0}, ir.FromInt(7)); err != nil {
		t.Fatal(err)
	}
	meta := tr.Get(Path{1})
	if meta.Fields[0].String != "name" || *meta.Values[0].Int64 != 7 {
		t.Errorf("meta = %v: %v", meta.Fields[0], meta.Values[0])
	}
	if meta.Values[0].ParentField != "name" {
		t.Errorf("ParentField = %q", meta.Values[0].ParentField)
	}
}

func TestReplaceRoot(t *testing.T) {
	tr := testTree()
	if err := tr.Replace(Root(), ir.FromBool(true)); err != nil {
		t.Fatal(err)
	}
	if tr.Root.Type != ir.BoolType || !tr.Root.Modified {
		t.Errorf("root = %v", tr.Root)
	}
}

func TestReplaceErrors(t *testing.T) {
	tr := testTree()
	if err := tr.Replace(Path{0, 9}, ir.Null()); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v", err)
	}
	if err := tr.Replace(Path{1, 0, 0}, ir.Null()); !errors.Is(err, ErrNotContainer) {
		t.Errorf("err = %v", err)
	}
	if err := tr.Replace(Path{5, 0}, ir.Null()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestDeleteShiftInverse(t *testing.T) {
	tr := testTree()
	if err := tr.Delete(Path{0, 1}); err != nil {
		t.Fatal(err)
	}
	arr := tr.Get(Path{0})
	if len(arr.Values) != 4 {
		t.Fatalf("length %d after delete", len(arr.Values))
	}
	// the element formerly at p+1 is now at p
	if got := tr.Get(Path{0, 1}); *got.Int64 != 2 {
		t.Errorf("element at deleted position = %d, want 2", *got.Int64)
	}
}

func TestDeleteObjectPair(t *testing.T) {
	tr := testTree()
	if err := tr.Delete(Path{0}); err != nil {
		t.Fatal(err)
	}
	if len(tr.Root.Fields) != 1 {
		t.Fatalf("%d pairs after delete", len(tr.Root.Fields))
	}
	if tr.Root.Fields[0].String != "meta" {
		t.Errorf("remaining key = %q", tr.Root.Fields[0].String)
	}
	if got := tr.Get(Path{0, 0}); got == nil || got.String != "x" {
		t.Errorf("meta.name after delete = %v", got)
	}
}

func TestDeleteErrors(t *testing.T) {
	tr := testTree()
	tests := []struct {
		name string
		path Path
		want error
	}{
		{"root", Path{}, ErrDeleteRoot},
		{"out of bounds", Path{0, 9}, ErrOutOfBounds},
		{"missing parent", Path{9, 0}, ErrNotFound},
		{"scalar parent", Path{1, 0, 0}, ErrNotContainer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.Delete(tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Delete(%s) = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
	// failed deletes leave the structure intact
	if n := tr.Get(Path{0}); len(n.Values) != 5 {
		t.Errorf("array length %d after failed deletes", len(n.Values))
	}
	if len(tr.Root.Fields) != 2 {
		t.Errorf("root has %d pairs after failed deletes", len(tr.Root.Fields))
	}
}

func TestCloneIndependent(t *testing.T) {
	tr := testTree()
	tr.Source = "{}"
	c := tr.Clone()
	if err := c.Delete(Path{0}); err != nil {
		t.Fatal(err)
	}
	if len(tr.Root.Fields) != 2 {
		t.Error("deleting in clone mutated original")
	}
	if c.Source != tr.Source {
		t.Error("clone lost source")
	}
}

func clearModified(n *ir.Node) {
	n.Modified = false
	for _, f := range n.Fields {
		clearModified(f)
	}
	for _, v := range n.Values {
		clearModified(v)
	}
}
