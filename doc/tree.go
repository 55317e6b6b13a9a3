package doc

import (
	"fmt"

	"github.com/signadot/tony-edit/ir"
)

// Tree owns a document root plus the original source text, when known.
// Source is empty for programmatically constructed trees, in which case
// no span replay is possible and everything serializes canonically.
type Tree struct {
	Root   *ir.Node
	Source string
}

// New returns a tree over a programmatically constructed root.
func New(root *ir.Node) *Tree {
	return &Tree{Root: root}
}

// FromSource returns a tree over a parsed root together with the source
// text its spans index into.
func FromSource(root *ir.Node, source string) *Tree {
	return &Tree{Root: root, Source: source}
}

func (t *Tree) Clone() *Tree {
	var root *ir.Node
	if t.Root != nil {
		root = t.Root.Clone()
	}
	return &Tree{Root: root, Source: t.Source}
}

// Get walks p from the root and returns the addressed node, or nil if any
// step addresses a non-container or an out-of-range index.
func (t *Tree) Get(p Path) *ir.Node {
	cur := t.Root
	for _, i := range p {
		if cur == nil || !cur.Type.IsContainer() {
			return nil
		}
		if i < 0 || i >= len(cur.Values) {
			return nil
		}
		cur = cur.Values[i]
	}
	return cur
}

// GetMut is Get with mutable intent: every node on the walk, the target
// included, is marked modified whether or not the caller writes anything.
// Format preservation granularity is per-container as a consequence.
func (t *Tree) GetMut(p Path) *ir.Node {
	cur := t.Root
	if cur == nil {
		return nil
	}
	cur.MarkModified()
	for _, i := range p {
		if !cur.Type.IsContainer() {
			return nil
		}
		if i < 0 || i >= len(cur.Values) {
			return nil
		}
		cur = cur.Values[i]
		cur.MarkModified()
	}
	return cur
}

// Delete removes the node at p, closing the gap among its siblings.
// The root itself cannot be deleted.
func (t *Tree) Delete(p Path) error {
	if p.IsRoot() {
		return ErrDeleteRoot
	}
	parent := t.GetMut(p.Parent())
	if parent == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Parent())
	}
	idx := p.Last()
	switch parent.Type {
	case ir.ObjectType:
		if idx >= len(parent.Fields) {
			return fmt.Errorf("%w: %d >= %d at %s", ErrOutOfBounds, idx, len(parent.Fields), p.Parent())
		}
		parent.Fields = append(parent.Fields[:idx], parent.Fields[idx+1:]...)
		parent.Values = append(parent.Values[:idx], parent.Values[idx+1:]...)
	case ir.ArrayType, ir.MultiDocType:
		if idx >= len(parent.Values) {
			return fmt.Errorf("%w: %d >= %d at %s", ErrOutOfBounds, idx, len(parent.Values), p.Parent())
		}
		parent.Values = append(parent.Values[:idx], parent.Values[idx+1:]...)
	default:
		return fmt.Errorf("%w: %s at %s", ErrNotContainer, parent.Type, p.Parent())
	}
	parent.Reindex()
	return nil
}

// Replace swaps the node at p for node, keeping the surrounding pair key
// when p addresses an object member. Replacing the root swaps the whole
// document.
func (t *Tree) Replace(p Path, node *ir.Node) error {
	if p.IsRoot() {
		if t.Root == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		node.Parent = nil
		node.ParentIndex = 0
		node.ParentField = ""
		t.Root = node
		node.MarkModified()
		return nil
	}
	parent := t.GetMut(p.Parent())
	if parent == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Parent())
	}
	idx := p.Last()
	if !parent.Type.IsContainer() {
		return fmt.Errorf("%w: %s at %s", ErrNotContainer, parent.Type, p.Parent())
	}
	if idx < 0 || idx >= len(parent.Values) {
		return fmt.Errorf("%w: %d >= %d at %s", ErrOutOfBounds, idx, len(parent.Values), p.Parent())
	}
	parent.Values[idx] = node
	node.MarkModified()
	parent.Reindex()
	return nil
}

// InsertInObject inserts key:node at the positional index given by p's
// final element; p's prefix addresses the target object. The empty path
// addresses the root itself at index 0. Insertion exactly at the current
// length appends.
func (t *Tree) InsertInObject(p Path, key string, node *ir.Node) error {
	target, idx, err := t.insertTarget(p)
	if err != nil {
		return err
	}
	if target.Type != ir.ObjectType {
		return fmt.Errorf("%w: Object required, have %s at %s", ErrNotContainer, target.Type, p.Parent())
	}
	if idx > len(target.Fields) {
		return fmt.Errorf("%w: %d > %d at %s", ErrOutOfBounds, idx, len(target.Fields), p.Parent())
	}
	field := ir.FromString(key)
	target.Fields = append(target.Fields[:idx], append([]*ir.Node{field}, target.Fields[idx:]...)...)
	target.Values = append(target.Values[:idx], append([]*ir.Node{node}, target.Values[idx:]...)...)
	target.Reindex()
	return nil
}

// InsertInArray is InsertInObject for arrays and multi-document streams.
func (t *Tree) InsertInArray(p Path, node *ir.Node) error {
	target, idx, err := t.insertTarget(p)
	if err != nil {
		return err
	}
	switch target.Type {
	case ir.ArrayType, ir.MultiDocType:
	default:
		return fmt.Errorf("%w: Array required, have %s at %s", ErrNotContainer, target.Type, p.Parent())
	}
	if idx > len(target.Values) {
		return fmt.Errorf("%w: %d > %d at %s", ErrOutOfBounds, idx, len(target.Values), p.Parent())
	}
	target.Values = append(target.Values[:idx], append([]*ir.Node{node}, target.Values[idx:]...)...)
	target.Reindex()
	return nil
}

func (t *Tree) insertTarget(p Path) (*ir.Node, int, error) {
	if p.IsRoot() {
		target := t.GetMut(p)
		if target == nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return target, 0, nil
	}
	target := t.GetMut(p.Parent())
	if target == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, p.Parent())
	}
	return target, p.Last(), nil
}
