// Package parse turns source text into document trees.
//
// Parse handles the flow syntax, a JSON superset: comments (#), YAML-style
// anchors (&name) and aliases (*name), optional trailing commas, unquoted
// object keys, and multi-document streams separated by --- lines. Every
// parsed node carries its byte span into the source and Modified=false, so
// the encoder can replay untouched regions byte-exactly.
//
// ParseYAML imports block YAML through gopkg.in/yaml.v3. Imported trees
// carry no spans; they serialize canonically.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
)

// Error is a parse failure with position detail.
type Error struct {
	Line int // 1-based
	Col  int // 1-based
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: line %d col %d: %s", ir.ErrParse, e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error { return ir.ErrParse }

// Parse parses flow-syntax source into a tree carrying the original
// source for span replay. A stream of --- separated documents yields a
// MultiDocType root.
func Parse(d []byte) (*doc.Tree, error) {
	p := &parser{src: string(d)}
	root, err := p.stream()
	if err != nil {
		return nil, err
	}
	return doc.FromSource(root, p.src), nil
}

type parser struct {
	src string
	pos int

	// pending comment lines gathered above the next value
	pending      []string
	pendingStart int
}

func (p *parser) errf(at int, msg string, args ...any) error {
	line, col := 1, 1
	for i := 0; i < at && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &Error{Line: line, Col: col, Msg: fmt.Sprintf(msg, args...)}
}

// stream parses one or more --- separated documents.
func (p *parser) stream() (*ir.Node, error) {
	var docs []*ir.Node
	seenSep := false
	for {
		p.skipSpace()
		if p.atDocSep() {
			p.pos += 3
			seenSep = true
			continue
		}
		if p.pos >= len(p.src) {
			break
		}
		n, err := p.value()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		docs = append(docs, n)
		if p.pos < len(p.src) && !p.atDocSep() {
			return nil, p.errf(p.pos, "trailing content after document")
		}
	}
	var root *ir.Node
	switch {
	case len(docs) == 0:
		if !seenSep {
			return nil, p.errf(p.pos, "empty document")
		}
		root = withSpan(ir.FromDocs(nil), 0, len(p.src))
	case len(docs) == 1 && !seenSep:
		root = docs[0]
	default:
		root = withSpan(ir.FromDocs(docs), 0, len(p.src))
	}
	// comments below the last value stay with the root as standalones
	if len(p.pending) > 0 {
		if root.Comment == nil {
			c := ir.FromComment(p.pending, ir.StandalonePosition)
			c.Parent = root
			withSpan(c, p.pendingStart, p.pos)
			root.Comment = c
		} else {
			root.Comment.Lines = append(root.Comment.Lines, p.pending...)
		}
		p.pending = nil
	}
	return root, nil
}

func (p *parser) atDocSep() bool {
	if !strings.HasPrefix(p.src[p.pos:], "---") {
		return false
	}
	// only at line starts
	return p.pos == 0 || p.src[p.pos-1] == '\n'
}

func withSpan(n *ir.Node, start, end int) *ir.Node {
	n.Span = &ir.Span{Start: start, End: end}
	n.Modified = false
	return n
}

// skipSpace consumes whitespace and comment lines, stashing full-line
// comments so the next value can adopt them as an above-comment.
func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '#':
			if len(p.pending) == 0 {
				p.pendingStart = p.pos
			}
			p.pending = append(p.pending, p.commentLine())
		default:
			if c == '/' && strings.HasPrefix(p.src[p.pos:], "//") {
				if len(p.pending) == 0 {
					p.pendingStart = p.pos
				}
				p.pos++ // align on the second slash for commentLine
				p.pending = append(p.pending, p.commentLine())
				continue
			}
			return
		}
	}
}

// commentLine consumes from the comment marker to end of line and returns
// the comment content without the marker.
func (p *parser) commentLine() string {
	p.pos++ // marker
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.pos++
	}
	return strings.TrimPrefix(strings.TrimSuffix(p.src[start:p.pos], "\r"), " ")
}

// takePending attaches stashed above-comments to n.
func (p *parser) takePending(n *ir.Node) {
	if len(p.pending) == 0 {
		return
	}
	c := ir.FromComment(p.pending, ir.AbovePosition)
	c.Parent = n
	withSpan(c, p.pendingStart, p.pos)
	n.Comment = c
	p.pending = nil
}

// inlineComment attaches a same-line trailing comment to n, if present.
func (p *parser) inlineComment(n *ir.Node) {
	i := p.pos
	for i < len(p.src) && (p.src[i] == ' ' || p.src[i] == '\t') {
		i++
	}
	if i >= len(p.src) || p.src[i] != '#' {
		return
	}
	start := i
	p.pos = i
	line := p.commentLine()
	c := ir.FromComment([]string{line}, ir.InlinePosition)
	c.Parent = n
	withSpan(c, start, p.pos)
	if n.Comment != nil {
		// above-comment already present: keep both sets of lines on it
		n.Comment.Lines = append(n.Comment.Lines, line)
		return
	}
	n.Comment = c
}

func (p *parser) value() (*ir.Node, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errf(p.pos, "unexpected end of input")
	}
	start := p.pos
	var anchor string
	if p.src[p.pos] == '&' {
		p.pos++
		anchor = p.ident()
		if anchor == "" {
			return nil, p.errf(p.pos, "anchor name expected after '&'")
		}
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf(p.pos, "value expected after anchor &%s", anchor)
		}
	}

	var (
		n   *ir.Node
		err error
	)
	switch c := p.src[p.pos]; {
	case c == '{':
		n, err = p.object()
	case c == '[':
		n, err = p.array()
	case c == '"' || c == '\'':
		n, err = p.quotedString()
	case c == '*':
		p.pos++
		name := p.ident()
		if name == "" {
			err = p.errf(p.pos, "alias name expected after '*'")
			break
		}
		n = ir.FromAlias(name)
	default:
		n, err = p.scalar()
	}
	if err != nil {
		return nil, err
	}
	n.Anchor = anchor
	p.takePending(n)
	withSpan(n, start, p.pos)
	return n, nil
}

func (p *parser) object() (*ir.Node, error) {
	open := p.pos
	p.pos++ // '{'
	var kvs []ir.KeyVal
	seen := map[string]bool{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf(open, "unclosed '{'")
		}
		if p.src[p.pos] == '}' {
			p.pos++
			break
		}
		keyStart := p.pos
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		if seen[key.String] {
			return nil, p.errf(keyStart, "duplicate key %q", key.String)
		}
		seen[key.String] = true
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errf(p.pos, "':' expected after key %q", key.String)
		}
		p.pos++
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		p.inlineComment(val)
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			p.inlineComment(val)
		}
	}
	return ir.FromKeyVals(kvs), nil
}

func (p *parser) key() (*ir.Node, error) {
	p.skipSpace()
	start := p.pos
	var (
		k   *ir.Node
		err error
	)
	if p.pos < len(p.src) && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
		k, err = p.quotedString()
	} else {
		name := p.ident()
		if name == "" {
			return nil, p.errf(p.pos, "object key expected")
		}
		k = ir.FromString(name)
	}
	if err != nil {
		return nil, err
	}
	p.takePending(k)
	return withSpan(k, start, p.pos), nil
}

func (p *parser) array() (*ir.Node, error) {
	open := p.pos
	p.pos++ // '['
	var vals []*ir.Node
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf(open, "unclosed '['")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			break
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		p.inlineComment(v)
		vals = append(vals, v)
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			p.inlineComment(v)
		}
	}
	return ir.FromSlice(vals), nil
}

func (p *parser) quotedString() (*ir.Node, error) {
	q := p.src[p.pos]
	start := p.pos
	p.pos++
	buf := strings.Builder{}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return nil, p.errf(p.pos, "unterminated escape")
			}
			e := p.src[p.pos+1]
			switch e {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case 'u':
				if p.pos+6 > len(p.src) {
					return nil, p.errf(p.pos, "short unicode escape")
				}
				v, err := strconv.ParseUint(p.src[p.pos+2:p.pos+6], 16, 32)
				if err != nil {
					return nil, p.errf(p.pos, "bad unicode escape")
				}
				buf.WriteRune(rune(v))
				p.pos += 4
			default:
				buf.WriteByte(e)
			}
			p.pos += 2
		case q:
			p.pos++
			return ir.FromString(buf.String()), nil
		case '\n':
			return nil, p.errf(start, "unterminated string")
		default:
			buf.WriteByte(c)
			p.pos++
		}
	}
	return nil, p.errf(start, "unterminated string")
}

// scalar parses an unquoted token: null, booleans and numbers. The number
// text itself is preserved so 42 and 42.0 stay distinct.
func (p *parser) scalar() (*ir.Node, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == '}' || c == ']' || c == ':' || c == '#' ||
			c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		p.pos++
	}
	word := p.src[start:p.pos]
	if word == "" {
		return nil, p.errf(start, "value expected, found %q", p.src[start])
	}
	switch word {
	case "null", "~":
		return ir.Null(), nil
	case "true":
		return ir.FromBool(true), nil
	case "false":
		return ir.FromBool(false), nil
	}
	if i, err := strconv.ParseInt(word, 10, 64); err == nil {
		n := ir.FromInt(i)
		n.Number = word
		return n, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		n := ir.FromFloat(f)
		n.Number = word
		return n, nil
	}
	return nil, p.errf(start, "unrecognized value %q", word)
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
