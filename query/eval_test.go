package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
)

func kv(key string, val *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: ir.FromString(key), Val: val}
}

// {store: {book: [{title: "a", price: 8.95}, {title: "b", price: 12.99}],
//          bicycle: {price: 19.95}},
//  items: [0, 1, 2, 3, 4]}
func storeTree() *doc.Tree {
	book := ir.FromSlice([]*ir.Node{
		ir.FromKeyVals([]ir.KeyVal{
			kv("title", ir.FromString("a")),
			kv("price", ir.FromFloat(8.95)),
		}),
		ir.FromKeyVals([]ir.KeyVal{
			kv("title", ir.FromString("b")),
			kv("price", ir.FromFloat(12.99)),
		}),
	})
	store := ir.FromKeyVals([]ir.KeyVal{
		kv("book", book),
		kv("bicycle", ir.FromKeyVals([]ir.KeyVal{
			kv("price", ir.FromFloat(19.95)),
		})),
	})
	items := ir.FromSlice([]*ir.Node{
		ir.FromInt(0), ir.FromInt(1), ir.FromInt(2), ir.FromInt(3), ir.FromInt(4),
	})
	return doc.New(ir.FromKeyVals([]ir.KeyVal{
		kv("store", store),
		kv("items", items),
	}))
}

func TestEval(t *testing.T) {
	tree := storeTree()
	tests := []struct {
		query string
		want  []doc.Path
	}{
		{"$", []doc.Path{{}}},
		{"$.store", []doc.Path{{0}}},
		{"$.store.book", []doc.Path{{0, 0}}},
		{"$.store.book[0].price", []doc.Path{{0, 0, 0, 1}}},
		{"$['store']['bicycle']", []doc.Path{{0, 1}}},
		{"$.items[0]", []doc.Path{{1, 0}}},
		{"$.items[-1]", []doc.Path{{1, 4}}},
		{"$.items[0:3]", []doc.Path{{1, 0}, {1, 1}, {1, 2}}},
		{"$.items[-2:]", []doc.Path{{1, 3}, {1, 4}}},
		{"$.items[:2]", []doc.Path{{1, 0}, {1, 1}}},
		{"$.items[2:99]", []doc.Path{{1, 2}, {1, 3}, {1, 4}}},
		{"$.items[3:1]", nil},
		{"$.store[*]", []doc.Path{{0, 0}, {0, 1}}},
		{"$.*", []doc.Path{{0}, {1}}},
		{
			// pre-order: both books, then the bicycle
			"$..price",
			[]doc.Path{{0, 0, 0, 1}, {0, 0, 1, 1}, {0, 1, 0}},
		},
		{"$..title", []doc.Path{{0, 0, 0, 0}, {0, 0, 1, 0}}},
		{
			"$['items','store']",
			[]doc.Path{{1}, {0}},
		},
		{
			// absent names are skipped, not errors
			"$['missing','store']",
			[]doc.Path{{0}},
		},
		{"$.items[9]", nil},
		{"$.missing", nil},
		{"$.items.name", nil},
		{"$.store.book[?(price < 10)]", []doc.Path{{0, 0, 0}}},
		{"$.store.book[?(price > 1)].title", []doc.Path{{0, 0, 0, 0}, {0, 0, 1, 0}}},
		{"$.items[?(value > 2)]", []doc.Path{{1, 3}, {1, 4}}},
		{"$.store.book[?(missing == 'x')]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Run(tree, tt.query)
			if err != nil {
				t.Fatalf("Run(%q) = %v", tt.query, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestEvalRecursiveUnnamed(t *testing.T) {
	tree := doc.New(ir.FromKeyVals([]ir.KeyVal{
		kv("a", ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})),
		kv("b", ir.FromInt(3)),
	}))
	got, err := Run(tree, "$..*")
	if err != nil {
		t.Fatal(err)
	}
	want := []doc.Path{{}, {0}, {0, 0}, {0, 1}, {1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recursive descent order (-want +got):\n%s", diff)
	}
}

func TestEvalChildScansByName(t *testing.T) {
	// duplicate structure at different positions: name match must find the
	// key wherever it sits in pair order
	tree := doc.New(ir.FromKeyVals([]ir.KeyVal{
		kv("x", ir.FromInt(1)),
		kv("y", ir.FromInt(2)),
		kv("z", ir.FromInt(3)),
	}))
	got, err := Run(tree, "$.z")
	if err != nil {
		t.Fatal(err)
	}
	want := []doc.Path{{2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEvalMalformedQuery(t *testing.T) {
	tree := storeTree()
	got, err := Run(tree, "store.book")
	if err == nil {
		t.Fatal("missing leading $ accepted")
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("error = %v, want ErrSyntax", err)
	}
	if len(got) != 0 {
		t.Errorf("matches = %v, want none", got)
	}
}

func TestEvalDoesNotMutate(t *testing.T) {
	tree := storeTree()
	clear := func() {
		var walk func(n *ir.Node)
		walk = func(n *ir.Node) {
			n.Modified = false
			for _, f := range n.Fields {
				walk(f)
			}
			for _, v := range n.Values {
				walk(v)
			}
		}
		walk(tree.Root)
	}
	clear()
	if _, err := Run(tree, "$..price"); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(tree, "$.store.book[?(price < 10)]"); err != nil {
		t.Fatal(err)
	}
	dirty := false
	tree.Root.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost && y.Modified {
			dirty = true
		}
		return true, nil
	})
	if dirty {
		t.Error("query evaluation marked nodes modified")
	}
}
