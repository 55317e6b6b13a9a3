// Package history provides the branching undo/redo tree.
//
// The history is an arena of checkpoint nodes with explicit parent/child
// index links, so undo and redo are index moves with no re-parenting.
// Checkpointing while "current" already has children creates a genuine
// branch; the old subtree is kept. Redo at a branch point always follows
// the child with the highest creation sequence number, the most recently
// created branch.
//
// Undo at the root and redo at a leaf are defined no-ops, not errors.
// Arena index corruption is a programming bug and panics.
package history

import (
	"fmt"
	"time"

	"github.com/signadot/tony-edit/debug"
	"github.com/signadot/tony-edit/doc"
)

// Snapshot is one checkpoint payload: the full document tree plus the
// cursor path at checkpoint time.
type Snapshot struct {
	Tree   *doc.Tree
	Cursor doc.Path
}

func (s Snapshot) Clone() Snapshot {
	res := Snapshot{Cursor: s.Cursor.Clone()}
	if s.Tree != nil {
		res.Tree = s.Tree.Clone()
	}
	return res
}

type node struct {
	snap     Snapshot
	parent   int // -1 for the root
	children []int
	seq      uint64
	at       time.Time
}

// History is the undo arena. It owns its snapshots: payloads are cloned
// on the way in and on the way out.
type History struct {
	arena   []*node
	current int
	nextSeq uint64
	limit   int
	live    int
}

type Option func(*History)

// WithLimit caps the number of live checkpoints. Once exceeded, the
// oldest leaf checkpoints off the root-to-current path are evicted.
// Zero means unlimited.
func WithLimit(n int) Option {
	return func(h *History) { h.limit = n }
}

// New constructs a history whose root (index 0, sequence 0) holds the
// initial snapshot.
func New(initial Snapshot, opts ...Option) *History {
	h := &History{current: 0, nextSeq: 1, live: 1}
	for _, opt := range opts {
		opt(h)
	}
	h.arena = []*node{{
		snap:   initial.Clone(),
		parent: -1,
		seq:    0,
		at:     time.Now(),
	}}
	return h
}

func (h *History) at(i int) *node {
	if i < 0 || i >= len(h.arena) || h.arena[i] == nil {
		panic(fmt.Sprintf("history: invalid arena index %d", i))
	}
	return h.arena[i]
}

// AddCheckpoint records snap as a child of the current checkpoint and
// moves current there. Sequence numbers are monotonic and never reused.
func (h *History) AddCheckpoint(snap Snapshot) {
	cur := h.at(h.current)
	idx := len(h.arena)
	h.arena = append(h.arena, &node{
		snap:   snap.Clone(),
		parent: h.current,
		seq:    h.nextSeq,
		at:     time.Now(),
	})
	h.nextSeq++
	cur.children = append(cur.children, idx)
	h.current = idx
	h.live++
	if debug.History() {
		debug.Logf("history: checkpoint %d (parent %d, %d live)\n", idx, h.arena[idx].parent, h.live)
	}
	h.evict()
}

// Undo moves current to its parent and returns the parent's snapshot.
// At the root it returns false and moves nothing.
func (h *History) Undo() (Snapshot, bool) {
	cur := h.at(h.current)
	if cur.parent < 0 {
		return Snapshot{}, false
	}
	h.current = cur.parent
	return h.at(h.current).snap.Clone(), true
}

// Redo moves current to its most recently created child and returns that
// child's snapshot. At a leaf it returns false and moves nothing.
func (h *History) Redo() (Snapshot, bool) {
	cur := h.at(h.current)
	if len(cur.children) == 0 {
		return Snapshot{}, false
	}
	best := -1
	var bestSeq uint64
	for _, ci := range cur.children {
		c := h.at(ci)
		if best < 0 || c.seq > bestSeq {
			best = ci
			bestSeq = c.seq
		}
	}
	h.current = best
	return h.at(h.current).snap.Clone(), true
}

// Current returns the snapshot at the current checkpoint.
func (h *History) Current() Snapshot {
	return h.at(h.current).snap.Clone()
}

func (h *History) CanUndo() bool { return h.at(h.current).parent >= 0 }

func (h *History) CanRedo() bool { return len(h.at(h.current).children) > 0 }

// Len returns the number of live checkpoints.
func (h *History) Len() int { return h.live }

// evict enforces the checkpoint limit by removing the oldest leaves that
// are neither the root nor on the root-to-current path. The arena is not
// compacted; freed slots stay nil so links remain stable.
func (h *History) evict() {
	if h.limit <= 0 {
		return
	}
	for h.live > h.limit {
		victim := -1
		var victimSeq uint64
		for i, n := range h.arena {
			if n == nil || i == 0 || i == h.current {
				continue
			}
			if len(n.children) != 0 {
				continue
			}
			if victim < 0 || n.seq < victimSeq {
				victim = i
				victimSeq = n.seq
			}
		}
		if victim < 0 {
			return
		}
		v := h.at(victim)
		p := h.at(v.parent)
		kept := p.children[:0]
		for _, ci := range p.children {
			if ci != victim {
				kept = append(kept, ci)
			}
		}
		p.children = kept
		h.arena[victim] = nil
		h.live--
	}
}
