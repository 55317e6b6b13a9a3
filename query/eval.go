package query

import (
	"github.com/signadot/tony-edit/debug"
	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
)

// Run is the single entry point external collaborators consume: parse src
// and evaluate it against tree, returning the ordered match list or a
// syntax error. Zero matches is a valid non-error outcome.
func Run(tree *doc.Tree, src string) ([]doc.Path, error) {
	q, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if debug.Query() {
		debug.Logf("query %q parsed as %q\n", src, q.String())
	}
	res := Eval(tree, q)
	if debug.Eval() {
		debug.Logf("query %q matched %d paths\n", src, len(res))
	}
	return res, nil
}

// Eval applies q's segments left to right over a candidate path set
// seeded with the root path. Misses drop candidates silently.
func Eval(tree *doc.Tree, q *Query) []doc.Path {
	cands := []doc.Path{doc.Root()}
	for i := range q.Segments {
		cands = applySegment(tree, &q.Segments[i], cands)
		if len(cands) == 0 {
			return nil
		}
	}
	return cands
}

func applySegment(tree *doc.Tree, seg *Segment, cands []doc.Path) []doc.Path {
	var out []doc.Path
	for _, c := range cands {
		node := tree.Get(c)
		if node == nil {
			continue
		}
		switch seg.Kind {
		case RootKind:
			out = append(out, doc.Root())
		case CurrentKind:
			out = append(out, c)
		case ChildKind:
			// objects match by name, not position: linear scan over
			// ordered pairs
			if node.Type != ir.ObjectType {
				continue
			}
			for i, f := range node.Fields {
				if f.String == seg.Name {
					out = append(out, c.Child(i))
					break
				}
			}
		case IndexKind:
			if !node.Type.IsContainer() {
				continue
			}
			n := len(node.Values)
			i := seg.Index
			if i < 0 {
				i += n
			}
			if i < 0 || i >= n {
				continue
			}
			out = append(out, c.Child(i))
		case WildcardKind:
			if !node.Type.IsContainer() {
				continue
			}
			for i := range node.Values {
				out = append(out, c.Child(i))
			}
		case SliceKind:
			if !node.Type.IsContainer() {
				continue
			}
			start, end := sliceRange(seg.Start, seg.End, len(node.Values))
			for i := start; i < end; i++ {
				out = append(out, c.Child(i))
			}
		case MultiPropKind:
			if node.Type != ir.ObjectType {
				continue
			}
			for _, name := range seg.Names {
				for i, f := range node.Fields {
					if f.String == name {
						out = append(out, c.Child(i))
						break
					}
				}
			}
		case RecursiveKind:
			out = append(out, descend(node, c, seg.Name)...)
		case FilterKind:
			if !node.Type.IsContainer() || seg.filter == nil {
				continue
			}
			for i, child := range node.Values {
				if seg.filter.match(child) {
					out = append(out, c.Child(i))
				}
			}
		}
	}
	return out
}

// descend collects pre-order (parent before children, siblings left to
// right) every node in the subtree at path. A non-empty name keeps only
// nodes reached through an object pair with that key.
func descend(node *ir.Node, path doc.Path, name string) []doc.Path {
	var out []doc.Path
	if name == "" {
		out = append(out, path.Clone())
	}
	var walk func(n *ir.Node, p doc.Path)
	walk = func(n *ir.Node, p doc.Path) {
		if !n.Type.IsContainer() {
			return
		}
		for i, child := range n.Values {
			cp := p.Child(i)
			if name == "" || (n.Type == ir.ObjectType && n.Fields[i].String == name) {
				out = append(out, cp)
			}
			walk(child, cp)
		}
	}
	walk(node, path)
	return out
}

// sliceRange resolves Python-like slice bounds against length n: negative
// counts from the end, absent bounds default to the full range, and both
// clamp rather than error.
func sliceRange(startP, endP *int, n int) (int, int) {
	start, end := 0, n
	if startP != nil {
		start = *startP
		if start < 0 {
			start += n
		}
	}
	if endP != nil {
		end = *endP
		if end < 0 {
			end += n
		}
	}
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if end < start {
		end = start
	}
	return start, end
}
