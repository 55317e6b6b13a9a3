package anchor

import (
	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
)

// FromTree builds a registry by walking tree: every node defining an
// anchor name is registered at its path, and every alias leaf is recorded
// as a reference. Called after each parse or load.
func FromTree(t *doc.Tree) *Registry {
	r := NewRegistry()
	if t == nil || t.Root == nil {
		return r
	}
	var walk func(n *ir.Node, p doc.Path)
	walk = func(n *ir.Node, p doc.Path) {
		if n.Anchor != "" {
			r.RegisterAnchor(n.Anchor, p)
		}
		if n.Type == ir.AliasType {
			r.RegisterAlias(p, n.AliasOf)
		}
		if !n.Type.IsContainer() {
			return
		}
		for i, c := range n.Values {
			walk(c, p.Child(i))
		}
	}
	walk(t.Root, doc.Root())
	return r
}

// Resolve follows an alias leaf to the node its anchor defines. Non-alias
// nodes resolve to themselves; a dangling alias resolves to nil.
func Resolve(r *Registry, t *doc.Tree, n *ir.Node) *ir.Node {
	if n == nil || n.Type != ir.AliasType {
		return n
	}
	p, ok := r.AnchorPath(n.AliasOf)
	if !ok {
		return nil
	}
	return t.Get(p)
}
