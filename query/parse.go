package query

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse consumes a query string and produces its ordered segment list. A
// valid query begins with '$'. Bracket and quote nesting must be
// balanced; malformed brackets and slices are syntax errors, never
// silently ignored.
func Parse(src string) (*Query, error) {
	p := &parser{src: src}
	if len(src) == 0 {
		return nil, &UnexpectedEndError{Expected: "'$'"}
	}
	if src[0] != '$' {
		return nil, &UnexpectedTokenError{Pos: 0, Found: string(src[0]), Expected: "'$'"}
	}
	p.pos = 1
	q := &Query{Source: src, Segments: []Segment{{Kind: RootKind}}}
	for p.pos < len(p.src) {
		seg, err := p.segment()
		if err != nil {
			return nil, err
		}
		q.Segments = append(q.Segments, seg...)
	}
	return q, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) segment() ([]Segment, error) {
	switch p.src[p.pos] {
	case '.':
		return p.dotSegment()
	case '[':
		seg, err := p.bracketSegment()
		if err != nil {
			return nil, err
		}
		return []Segment{seg}, nil
	default:
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return nil, &UnexpectedTokenError{
			Pos:      p.pos,
			Found:    string(r),
			Expected: "'.' or '['",
		}
	}
}

func (p *parser) dotSegment() ([]Segment, error) {
	p.pos++ // consumed '.'
	if p.pos >= len(p.src) {
		return nil, &UnexpectedEndError{Expected: "name, '*' or '.'"}
	}
	if p.src[p.pos] == '.' {
		return p.recursiveSegment()
	}
	if p.src[p.pos] == '*' {
		p.pos++
		return []Segment{{Kind: WildcardKind}}, nil
	}
	name, ok := p.name()
	if !ok {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return nil, &UnexpectedTokenError{
			Pos:      p.pos,
			Found:    string(r),
			Expected: "name or '*'",
		}
	}
	return []Segment{{Kind: ChildKind, Name: name}}, nil
}

// recursiveSegment parses the tail of '..name', '..*' or '..[...]'.
// The caller consumed the first dot; p.pos is on the second.
func (p *parser) recursiveSegment() ([]Segment, error) {
	p.pos++
	if p.pos >= len(p.src) {
		return nil, &UnexpectedEndError{Expected: "name, '*' or '['"}
	}
	switch p.src[p.pos] {
	case '*':
		p.pos++
		return []Segment{{Kind: RecursiveKind}}, nil
	case '[':
		// unnamed descent followed by a bracket selector
		seg, err := p.bracketSegment()
		if err != nil {
			return nil, err
		}
		return []Segment{{Kind: RecursiveKind}, seg}, nil
	}
	name, ok := p.name()
	if !ok {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return nil, &UnexpectedTokenError{
			Pos:      p.pos,
			Found:    string(r),
			Expected: "name, '*' or '['",
		}
	}
	return []Segment{{Kind: RecursiveKind, Name: name}}, nil
}

func (p *parser) bracketSegment() (Segment, error) {
	p.pos++ // consumed '['
	if p.pos >= len(p.src) {
		return Segment{}, &UnexpectedEndError{Expected: "']'"}
	}
	switch p.src[p.pos] {
	case '*':
		p.pos++
		if err := p.expect(']'); err != nil {
			return Segment{}, err
		}
		return Segment{Kind: WildcardKind}, nil
	case '?':
		return p.filterSegment()
	case '\'', '"':
		return p.propertySegment()
	default:
		return p.indexOrSliceSegment()
	}
}

func (p *parser) filterSegment() (Segment, error) {
	p.pos++ // consumed '?'
	if err := p.expect('('); err != nil {
		return Segment{}, err
	}
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				src := p.src[start:p.pos]
				p.pos++
				if err := p.expect(']'); err != nil {
					return Segment{}, err
				}
				prog, err := compileFilter(src)
				if err != nil {
					return Segment{}, &InvalidSyntaxError{
						Msg: "bad filter expression " + strconv.Quote(src) + ": " + err.Error(),
					}
				}
				return Segment{Kind: FilterKind, FilterSrc: src, filter: prog}, nil
			}
		case '\'', '"':
			if _, err := p.quoted(); err != nil {
				return Segment{}, err
			}
			continue
		}
		p.pos++
	}
	return Segment{}, &UnexpectedEndError{Expected: "')'"}
}

func (p *parser) propertySegment() (Segment, error) {
	var names []string
	for {
		name, err := p.quoted()
		if err != nil {
			return Segment{}, err
		}
		names = append(names, name)
		p.skipSpaces()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			p.skipSpaces()
			if p.pos >= len(p.src) || (p.src[p.pos] != '\'' && p.src[p.pos] != '"') {
				return Segment{}, &UnexpectedEndError{Expected: "quoted name after ','"}
			}
			continue
		}
		break
	}
	if err := p.expect(']'); err != nil {
		return Segment{}, err
	}
	if len(names) == 1 {
		return Segment{Kind: ChildKind, Name: names[0]}, nil
	}
	return Segment{Kind: MultiPropKind, Names: names}, nil
}

func (p *parser) indexOrSliceSegment() (Segment, error) {
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return Segment{}, &UnexpectedEndError{Expected: "']'"}
	}
	body := p.src[p.pos : p.pos+end]
	bodyPos := p.pos
	p.pos += end + 1

	if strings.Contains(body, ":") {
		parts := strings.SplitN(body, ":", 3)
		if len(parts) > 2 {
			return Segment{}, &InvalidSyntaxError{
				Msg: "slice " + strconv.Quote(body) + " has more than one ':'",
			}
		}
		seg := Segment{Kind: SliceKind}
		var err error
		if seg.Start, err = sliceBound(parts[0]); err != nil {
			return Segment{}, &InvalidSyntaxError{Msg: "bad slice start " + strconv.Quote(parts[0])}
		}
		if seg.End, err = sliceBound(parts[1]); err != nil {
			return Segment{}, &InvalidSyntaxError{Msg: "bad slice end " + strconv.Quote(parts[1])}
		}
		return seg, nil
	}

	idx, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		found := body
		if found == "" {
			found = "]"
		}
		return Segment{}, &UnexpectedTokenError{
			Pos:      bodyPos,
			Found:    found,
			Expected: "index, slice, '*', '?' or quoted name",
		}
	}
	return Segment{Kind: IndexKind, Index: idx}, nil
}

func sliceBound(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// quoted scans a single- or double-quoted name with backslash escapes.
// p.pos is on the opening quote.
func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) quoted() (string, error) {
	q := p.src[p.pos]
	p.pos++
	buf := strings.Builder{}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", &UnexpectedEndError{Expected: "escaped character"}
			}
			buf.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case q:
			p.pos++
			return buf.String(), nil
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	return "", &UnexpectedEndError{Expected: "closing " + string(q)}
}

// name scans an unquoted child name: letters, digits, '_' and '-'.
func (p *parser) name() (string, bool) {
	start := p.pos
	for p.pos < len(p.src) {
		r, sz := utf8.DecodeRuneInString(p.src[p.pos:])
		if !isNameRune(r) {
			break
		}
		p.pos += sz
	}
	if p.pos == start {
		return "", false
	}
	return p.src[start:p.pos], true
}

func isNameRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) expect(c byte) error {
	if p.pos >= len(p.src) {
		return &UnexpectedEndError{Expected: "'" + string(c) + "'"}
	}
	if p.src[p.pos] != c {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		return &UnexpectedTokenError{Pos: p.pos, Found: string(r), Expected: "'" + string(c) + "'"}
	}
	p.pos++
	return nil
}
