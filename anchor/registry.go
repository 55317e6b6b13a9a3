// Package anchor tracks anchor definitions and the alias paths referencing
// them.
//
// The registry is a name-indexed side table over positional tree paths, so
// aliases resolve by lookup rather than structural sharing and the document
// tree stays a strict ownership hierarchy. The registered paths are
// absolute and positional; edits that insert or remove earlier siblings
// make them stale (see DESIGN.md for the chosen stance).
package anchor

import (
	"slices"

	"github.com/signadot/tony-edit/doc"
)

// Registry maps anchor names to their defining paths and to the alias
// paths that reference them.
type Registry struct {
	anchors map[string]doc.Path
	aliases map[string][]doc.Path
}

func NewRegistry() *Registry {
	return &Registry{
		anchors: map[string]doc.Path{},
		aliases: map[string][]doc.Path{},
	}
}

// RegisterAnchor records path as the defining path of name. Re-registering
// a name is last-write-wins.
func (r *Registry) RegisterAnchor(name string, path doc.Path) {
	r.anchors[name] = path.Clone()
}

// RegisterAlias records aliasPath as a reference to the anchor named name.
// Registering the same alias path twice is a no-op.
func (r *Registry) RegisterAlias(aliasPath doc.Path, name string) {
	for _, p := range r.aliases[name] {
		if p.Equal(aliasPath) {
			return
		}
	}
	r.aliases[name] = append(r.aliases[name], aliasPath.Clone())
}

// AnchorPath returns the defining path of name, if registered.
func (r *Registry) AnchorPath(name string) (doc.Path, bool) {
	p, ok := r.anchors[name]
	return p, ok
}

// AliasesFor returns the alias paths referencing name, in registration
// order. An absent name yields an empty result, not an error.
func (r *Registry) AliasesFor(name string) []doc.Path {
	return slices.Clone(r.aliases[name])
}

// CanDeleteAnchor reports whether name has no aliases referencing it.
func (r *Registry) CanDeleteAnchor(name string) bool {
	return len(r.aliases[name]) == 0
}

// RemovePath updates the registry after the node at path was deleted from
// the tree: if path defines an anchor, that anchor and its now-dangling
// alias associations are cleared; any alias association at path is
// removed. The editing layer must call this for every tracked path it
// deletes.
func (r *Registry) RemovePath(path doc.Path) {
	for name, p := range r.anchors {
		if p.Equal(path) {
			delete(r.anchors, name)
			delete(r.aliases, name)
		}
	}
	for name, paths := range r.aliases {
		kept := paths[:0]
		for _, p := range paths {
			if !p.Equal(path) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(r.aliases, name)
			continue
		}
		r.aliases[name] = kept
	}
}

// Clear drops every registration. Used on new-file load.
func (r *Registry) Clear() {
	r.anchors = map[string]doc.Path{}
	r.aliases = map[string][]doc.Path{}
}

// Names returns the registered anchor names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.anchors))
	for name := range r.anchors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
