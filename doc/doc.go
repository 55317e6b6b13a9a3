// Package doc provides the path-addressed document tree.
//
// A Tree owns a root ir.Node plus, when the tree came from a parser, the
// original source text used for byte-exact replay of unmodified spans.
//
// A Path is a sequence of non-negative positional indices: at each depth
// the index selects the nth key/value pair of an object or the nth element
// of an array or multi-document stream. The empty path denotes the root.
// Paths are not stable across sibling insertions/deletions that occur
// before them.
//
// Mutable access is deliberately coarse: GetMut marks every node walked
// to reach the target as modified, even when nothing is written through
// the result. Format preservation therefore operates at whole-subtree
// granularity (see package encode).
package doc
