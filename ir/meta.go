package ir

// Span is a half-open byte range [Start, End) into the original source text
// of the document a node was parsed from.
type Span struct {
	Start int
	End   int
}

func (s *Span) Len() int {
	if s == nil {
		return 0
	}
	return s.End - s.Start
}

// Style records how a string was written in the source. It affects only
// round-tripping, never equality of content.
type Style int

const (
	PlainStyle Style = iota
	LiteralStyle
	FoldedStyle
)

func (s Style) String() string {
	switch s {
	case PlainStyle:
		return "plain"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	default:
		return "<unknown style>"
	}
}

// Position records where a comment sits relative to the value it annotates.
type Position int

const (
	AbovePosition Position = iota
	InlinePosition
	StandalonePosition
)

func (p Position) String() string {
	switch p {
	case AbovePosition:
		return "above"
	case InlinePosition:
		return "inline"
	case StandalonePosition:
		return "standalone"
	default:
		return "<unknown position>"
	}
}
