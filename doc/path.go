package doc

import (
	"bytes"
	"slices"
	"strconv"
)

// Path locates a node from the tree root as a sequence of positional
// indices. The empty (or nil) path is the root.
type Path []int

// Root is the empty path.
func Root() Path { return Path{} }

func (p Path) IsRoot() bool { return len(p) == 0 }

// Parent returns the path minus its final index. Parent of the root is
// the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Last returns the final index, or -1 for the root.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns a new path extending p by index i.
func (p Path) Child(i int) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, i)
}

func (p Path) Clone() Path {
	return slices.Clone(p)
}

func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// HasPrefix reports whether q is p or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	return slices.Equal(p[:len(q)], q)
}

// String renders the path in bracket notation: "$", "$[0]", "$[0][2]".
func (p Path) String() string {
	buf := bytes.NewBufferString("$")
	for _, i := range p {
		buf.WriteByte('[')
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte(']')
	}
	return buf.String()
}
