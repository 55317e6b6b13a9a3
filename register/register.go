// Package register provides the vim-style structured clipboard: one
// unnamed register, 26 named registers (a-z, case-insensitive) and 10
// numbered registers (0-9).
//
// Registers hold captured nodes rather than text. Each captured node
// carries an optional source key, present when the node came from an
// object pair, so pasting can restore field names.
//
// Register 0 holds the most recent yank and is never touched by deletes.
// Registers 1-9 are a delete history ring: each delete shifts 1-8 up one
// slot, discards 9, and lands in 1.
//
// The set is owned by a single editing session; there is no locking.
package register

import (
	"slices"

	"github.com/signadot/tony-edit/ir"
)

// Content is what one register holds: a sequence of nodes plus a parallel
// sequence of optional source keys. Keys[i] is non-nil when Nodes[i] was
// captured from an object pair.
type Content struct {
	Nodes []*ir.Node
	Keys  []*string
}

// FromNodes builds content for nodes captured from an array: no keys.
func FromNodes(nodes ...*ir.Node) *Content {
	return &Content{
		Nodes: nodes,
		Keys:  make([]*string, len(nodes)),
	}
}

// FromPairs builds content for nodes captured from object pairs.
func FromPairs(keys []string, nodes []*ir.Node) *Content {
	ks := make([]*string, len(keys))
	for i := range keys {
		k := keys[i]
		ks[i] = &k
	}
	return &Content{Nodes: nodes, Keys: ks}
}

func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	res := &Content{
		Nodes: make([]*ir.Node, len(c.Nodes)),
		Keys:  make([]*string, len(c.Keys)),
	}
	for i, n := range c.Nodes {
		res.Nodes[i] = n.Clone()
	}
	for i, k := range c.Keys {
		if k != nil {
			kk := *k
			res.Keys[i] = &kk
		}
	}
	return res
}

// Set is the full register file.
type Set struct {
	unnamed  *Content
	named    map[rune]*Content
	numbered [10]*Content
}

func NewSet() *Set {
	return &Set{named: map[rune]*Content{}}
}

func (s *Set) Unnamed() *Content { return s.unnamed }

func (s *Set) SetUnnamed(c *Content) { s.unnamed = c }

// foldName lower-cases an ASCII register letter so 'a' and 'A' address the
// same slot. Returns 0 for anything outside a-z.
func foldName(reg rune) rune {
	if reg >= 'A' && reg <= 'Z' {
		reg += 'a' - 'A'
	}
	if reg < 'a' || reg > 'z' {
		return 0
	}
	return reg
}

func (s *Set) Named(reg rune) *Content {
	return s.named[foldName(reg)]
}

func (s *Set) SetNamed(reg rune, c *Content) {
	r := foldName(reg)
	if r == 0 {
		return
	}
	s.named[r] = c
}

func (s *Set) Numbered(n int) *Content {
	if n < 0 || n > 9 {
		return nil
	}
	return s.numbered[n]
}

func (s *Set) SetNumbered(n int, c *Content) {
	if n < 0 || n > 9 {
		return
	}
	s.numbered[n] = c
}

// Get unifies register access: an ASCII digit routes to the numbered
// registers, anything else to the named ones.
func (s *Set) Get(reg rune) *Content {
	if reg >= '0' && reg <= '9' {
		return s.numbered[reg-'0']
	}
	return s.Named(reg)
}

// AppendNamed concatenates c onto the named register reg, creating it if
// absent. In vim this is what writing to an upper-case register does.
func (s *Set) AppendNamed(reg rune, c *Content) {
	r := foldName(reg)
	if r == 0 || c == nil {
		return
	}
	cur := s.named[r]
	if cur == nil {
		s.named[r] = &Content{
			Nodes: slices.Clone(c.Nodes),
			Keys:  slices.Clone(c.Keys),
		}
		return
	}
	cur.Nodes = append(cur.Nodes, c.Nodes...)
	cur.Keys = append(cur.Keys, c.Keys...)
}

// PushDeleteHistory records a delete: slot 9 is discarded, 1-8 shift up,
// and c becomes slot 1. Slot 0 (the yank register) is untouched.
func (s *Set) PushDeleteHistory(c *Content) {
	for i := 9; i > 1; i-- {
		s.numbered[i] = s.numbered[i-1]
	}
	s.numbered[1] = c
}

// UpdateYankRegister unconditionally overwrites slot 0 with the most
// recent yank.
func (s *Set) UpdateYankRegister(c *Content) {
	s.numbered[0] = c
}

// Clear empties every register. Used on new-file load.
func (s *Set) Clear() {
	s.unnamed = nil
	s.named = map[rune]*Content{}
	s.numbered = [10]*Content{}
}
