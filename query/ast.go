package query

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

type SegmentKind int

const (
	// RootKind anchors the query at the document root.
	RootKind SegmentKind = iota
	// CurrentKind is reserved; the evaluator never produces or consumes it.
	CurrentKind
	// ChildKind selects an object pair by key name.
	ChildKind
	// IndexKind selects a child by position; negative counts from the end.
	IndexKind
	// WildcardKind expands to all immediate children.
	WildcardKind
	// RecursiveKind is recursive descent, optionally restricted to a key name.
	RecursiveKind
	// SliceKind selects a contiguous index range, Python-style.
	SliceKind
	// MultiPropKind selects several named properties in the order given.
	MultiPropKind
	// FilterKind keeps children whose predicate evaluates truthy.
	FilterKind
)

// Segment is one step of a parsed query. The populated fields depend on
// Kind, mirroring how the node IR keeps a single struct per value.
type Segment struct {
	Kind  SegmentKind
	Name  string   // ChildKind; RecursiveKind when named
	Names []string // MultiPropKind
	Index int      // IndexKind
	Start *int     // SliceKind
	End   *int     // SliceKind

	// FilterKind: the predicate source and its compiled form.
	FilterSrc string
	filter    *filterProgram
}

// Query is an ordered segment list; Segments[0] is always RootKind.
type Query struct {
	Source   string
	Segments []Segment
}

func (s *Segment) String() string {
	switch s.Kind {
	case RootKind:
		return "$"
	case CurrentKind:
		return "@"
	case ChildKind:
		return "." + s.Name
	case IndexKind:
		return "[" + strconv.Itoa(s.Index) + "]"
	case WildcardKind:
		return "[*]"
	case RecursiveKind:
		if s.Name == "" {
			return "..*"
		}
		return ".." + s.Name
	case SliceKind:
		start, end := "", ""
		if s.Start != nil {
			start = strconv.Itoa(*s.Start)
		}
		if s.End != nil {
			end = strconv.Itoa(*s.End)
		}
		return "[" + start + ":" + end + "]"
	case MultiPropKind:
		quoted := make([]string, len(s.Names))
		for i, n := range s.Names {
			quoted[i] = "'" + n + "'"
		}
		return "[" + strings.Join(quoted, ",") + "]"
	case FilterKind:
		return "[?(" + s.FilterSrc + ")]"
	default:
		return fmt.Sprintf("<segment kind %d>", s.Kind)
	}
}

func (q *Query) String() string {
	buf := bytes.NewBuffer(nil)
	for _, s := range q.Segments {
		buf.WriteString(s.String())
	}
	return buf.String()
}
