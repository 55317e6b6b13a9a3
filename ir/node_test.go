package ir

import (
	"testing"
)

func TestConstructorsMarkModified(t *testing.T) {
	nodes := []*Node{
		FromString("x"),
		FromInt(42),
		FromFloat(42.0),
		FromBool(true),
		Null(),
		FromAlias("base"),
		FromSlice([]*Node{FromInt(1)}),
		FromKeyVals([]KeyVal{{Key: FromString("a"), Val: FromInt(1)}}),
		FromDocs([]*Node{Null()}),
	}
	for _, n := range nodes {
		if !n.Modified {
			t.Errorf("%s node constructed with Modified=false", n.Type)
		}
		if n.Span != nil {
			t.Errorf("%s node constructed with a span", n.Type)
		}
	}
}

func TestFromKeyValsOrder(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: FromString("z"), Val: FromInt(1)},
		{Key: FromString("a"), Val: FromInt(2)},
		{Key: FromString("m"), Val: FromInt(3)},
	})
	want := []string{"z", "a", "m"}
	for i, f := range obj.Fields {
		if f.String != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.String, want[i])
		}
	}
	for i, v := range obj.Values {
		if v.ParentIndex != i {
			t.Errorf("value %d has ParentIndex %d", i, v.ParentIndex)
		}
		if v.Parent != obj {
			t.Errorf("value %d has wrong parent", i)
		}
	}
}

func TestClonePreservesMetadata(t *testing.T) {
	orig := FromString("hello")
	orig.Modified = false
	orig.Span = &Span{Start: 3, End: 10}
	orig.Style = LiteralStyle
	orig.Anchor = "greeting"

	c := orig.Clone()
	if c.Modified {
		t.Error("clone flipped Modified")
	}
	if c.Span == nil || *c.Span != (Span{Start: 3, End: 10}) {
		t.Errorf("clone span = %v", c.Span)
	}
	if c.Span == orig.Span {
		t.Error("clone shares span pointer")
	}
	if c.Style != LiteralStyle || c.Anchor != "greeting" {
		t.Errorf("clone lost style/anchor: %v %q", c.Style, c.Anchor)
	}
}

func TestCloneDeep(t *testing.T) {
	inner := FromSlice([]*Node{FromInt(1), FromInt(2)})
	obj := FromKeyVals([]KeyVal{{Key: FromString("items"), Val: inner}})

	c := obj.Clone()
	if Compare(obj, c) != 0 {
		t.Fatal("clone not equal to original")
	}
	// mutating the clone must not touch the original
	c.Values[0].Values[0].Int64 = nil
	f := 9.5
	c.Values[0].Values[0].Float64 = &f
	if obj.Values[0].Values[0].Int64 == nil {
		t.Error("clone shares number storage with original")
	}
}

func TestGetScansInOrder(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromInt(1)},
		{Key: FromString("b"), Val: FromInt(2)},
	})
	if got := Get(obj, "b"); got == nil || *got.Int64 != 2 {
		t.Errorf("Get(b) = %v", got)
	}
	if got := Get(obj, "zz"); got != nil {
		t.Errorf("Get(zz) = %v, want nil", got)
	}
}

func TestVisitPreOrder(t *testing.T) {
	tree := FromSlice([]*Node{
		FromKeyVals([]KeyVal{{Key: FromString("x"), Val: FromInt(1)}}),
		FromInt(2),
	})
	var pre []Type
	err := tree.Visit(func(y *Node, isPost bool) (bool, error) {
		if !isPost {
			pre = append(pre, y.Type)
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Type{ArrayType, ObjectType, NumberType, NumberType}
	if len(pre) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(pre), len(want))
	}
	for i := range want {
		if pre[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, pre[i], want[i])
		}
	}
}

func TestReindex(t *testing.T) {
	arr := FromSlice([]*Node{FromInt(0), FromInt(1), FromInt(2)})
	arr.Values = append(arr.Values[:1], arr.Values[2:]...)
	arr.Reindex()
	for i, v := range arr.Values {
		if v.ParentIndex != i {
			t.Errorf("after reindex, value %d has ParentIndex %d", i, v.ParentIndex)
		}
	}
}
