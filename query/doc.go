// Package query implements the structural query language used for search:
// a JSONPath-style DSL evaluated against the document tree, producing an
// ordered list of matching positional paths.
//
// # Syntax
//
// A query begins with '$' (the root) followed by segments:
//
//	$.store.book          child selection by name
//	$['store']['book']    bracket-quoted child selection
//	$.items[0]            index, negative counts from the end
//	$.items[*]  $.*       wildcard over immediate children
//	$..price              recursive descent, optionally named
//	$.items[1:3]          Python-like slice, open/negative bounds ok
//	$['a','b']            multiple properties in the order given
//	$.items[?(price < 10)] filter predicate over immediate children
//
// Filter predicates are expr-lang expressions evaluated with the child's
// object fields in scope plus the child itself bound to "value".
//
// # Evaluation
//
// Segments apply left to right over a current set of candidate paths,
// starting with the root path. Name selection over objects scans ordered
// pairs linearly; out-of-range indices, absent names and failing
// predicates silently drop candidates. Zero matches is a valid outcome,
// distinct from a syntax error.
package query
