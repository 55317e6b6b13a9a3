// Package ir provides the intermediate representation (IR) for documents
// handled by the editing engine.
//
// # Overview
//
// The IR package defines the core data structures for representing
// hierarchical data documents (JSON/YAML family) as a tree of nodes. All
// documents, whether parsed from text or created programmatically, are
// represented as ir.Node trees.
//
// # Node Structure
//
// A Node represents a single value in a document. Nodes can be:
//
//   - Atomic types: null, boolean, number, string, alias
//   - Composite types: object (key-value pairs), array (ordered list),
//     multi-document stream
//   - Metadata: comments, source spans, anchor names
//
// Each node maintains parent-child relationships, allowing navigation
// through the tree structure.
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there will always be the same number of fields as values. Field order is
// semantically significant and preserved; positional addressing (the nth
// pair) is well defined because of this.
//
// # Numbers
//
// Number values are placed under:
//
//   - Int64: if it is an integer (64-bit signed)
//   - Float64: if it is a floating point number (64-bit IEEE float)
//   - Number: the source representation, kept so that 42 and 42.0
//     round-trip differently
//
// # Strings
//
// String canonical values are stored under the String field. Style records
// whether the source used plain, literal-block, or folded-block form; Lines
// may carry the block decomposition. Style never affects equality of
// content, only round-tripping.
//
// # Anchors and Aliases
//
// A node may define an anchor name (Anchor field). An AliasType node is a
// leaf referencing an anchor by name (AliasOf field); aliases are resolved
// through the anchor registry, never by structural sharing, so the tree
// stays acyclic.
//
// # Format Metadata
//
// Span records the byte range a node occupied in its original source text.
// Modified records whether the node has been touched since parse. A freshly
// constructed Node always has Modified=true and no Span; parsers clear
// Modified and set Span. Mutable access through the document tree marks
// every node along the traversal Modified.
//
// # Thread Safety
//
// Node structures are not thread-safe. The engine owns all nodes in a
// single editing session and never shares them across goroutines.
//
// # Related Packages
//
//   - github.com/signadot/tony-edit/parse - Parses text into IR nodes
//   - github.com/signadot/tony-edit/encode - Encodes IR nodes to text
//   - github.com/signadot/tony-edit/doc - Path-addressed document tree
//   - github.com/signadot/tony-edit/query - Structural queries over IR
package ir
