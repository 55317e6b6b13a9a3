// Package encode serializes document trees back to text.
//
// The serialization contract: a node with Modified=false and a valid span,
// in a tree that still carries its original source, is emitted as the
// exact original bytes for that span; everything else re-serializes
// canonically under the active options. Because mutable access dirties
// whole ancestor chains, preservation operates at subtree granularity.
// An empty top-level container always serializes canonically.
package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/format"
	"github.com/signadot/tony-edit/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent   int
	comments bool
	preserve bool
	source   string

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode canonically serializes a bare node. Span replay never applies
// here; use EncodeTree for that.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if err := encode(node, w, 0, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// EncodeTree serializes a whole tree, replaying unmodified spans from the
// tree source when the Preserve option is set.
func EncodeTree(t *doc.Tree, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if es.preserve {
		es.source = t.Source
	}
	if t.Root == nil {
		return fmt.Errorf("%w: tree has no root", ErrEncoding)
	}
	// a completely untouched tree replays its whole source byte-for-byte,
	// surrounding comments and whitespace included
	if _, ok := es.raw(t.Root); ok {
		return writeString(w, es.source)
	}
	if err := encode(t.Root, w, 0, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// MustString canonically serializes node, panicking on encoder failure.
// For debug and test output.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{
		indent:   2,
		comments: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsJSON() {
		es.comments = false
	}
	return es
}

// raw reports whether node can be replayed from the original source and
// returns the bytes when it can. Empty top-level containers always fall
// through to the canonical path.
func (es *EncState) raw(node *ir.Node) (string, bool) {
	if es.source == "" || node.Modified || node.Span == nil {
		return "", false
	}
	if node.Span.Start < 0 || node.Span.End > len(es.source) || node.Span.Start > node.Span.End {
		return "", false
	}
	if node.Parent == nil && node.Type.IsContainer() && len(node.Values) == 0 {
		return "", false
	}
	return es.source[node.Span.Start:node.Span.End], true
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func encode(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	if raw, ok := es.raw(node); ok {
		return writeString(w, raw)
	}
	if es.format.IsJSON() {
		return encodeJSON(node, w, depth, es)
	}
	return encodeYAML(node, w, depth, es)
}

// --- canonical YAML ---

func encodeYAML(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	switch node.Type {
	case ir.MultiDocType:
		for i, d := range node.Values {
			if i > 0 || len(node.Values) > 1 {
				if err := writeString(w, "---\n"); err != nil {
					return err
				}
			}
			if err := encodeYAML(d, w, depth, es); err != nil {
				return err
			}
			if i < len(node.Values)-1 {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
			}
		}
		return nil
	case ir.ObjectType:
		return encodeYAMLObject(node, w, depth, es)
	case ir.ArrayType:
		return encodeYAMLArray(node, w, depth, es)
	default:
		return writeString(w, es.anchorPrefix(node)+es.scalarString(node))
	}
}

func (es *EncState) anchorPrefix(node *ir.Node) string {
	if node.Anchor == "" {
		return ""
	}
	s := "&" + node.Anchor
	if es.Color != nil {
		s = es.Color(node.Type, AnchorColor, s)
	}
	return s + " "
}

func (es *EncState) pad(depth int) string {
	return strings.Repeat(" ", depth*es.indent)
}

func (es *EncState) aboveComment(node *ir.Node, w io.Writer, depth int) error {
	if !es.comments || node.Comment == nil || node.Comment.Pos == ir.InlinePosition {
		return nil
	}
	for _, ln := range node.Comment.Lines {
		s := es.pad(depth) + "# " + ln
		if es.Color != nil {
			s = es.Color(ir.CommentType, CommentColor, s)
		}
		if err := writeString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) inlineComment(node *ir.Node) string {
	if !es.comments || node.Comment == nil || node.Comment.Pos != ir.InlinePosition {
		return ""
	}
	if len(node.Comment.Lines) == 0 {
		return ""
	}
	s := " # " + node.Comment.Lines[0]
	if es.Color != nil {
		s = es.Color(ir.CommentType, CommentColor, s)
	}
	return s
}

func encodeYAMLObject(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, es.anchorPrefix(node)+"{}")
	}
	if prefix := es.anchorPrefix(node); prefix != "" {
		if err := writeString(w, strings.TrimSuffix(prefix, " ")+"\n"+es.pad(depth)); err != nil {
			return err
		}
	}
	for i := range node.Fields {
		key, val := node.Fields[i], node.Values[i]
		if i > 0 {
			if err := writeString(w, es.pad(depth)); err != nil {
				return err
			}
		}
		if err := es.aboveComment(key, w, depth); err != nil {
			return err
		}
		ks := es.yamlQuote(key.String)
		if es.Color != nil {
			ks = es.Color(ir.ObjectType, FieldColor, ks)
		}
		if err := writeString(w, ks+es.colored(ir.ObjectType, SepColor, ":")); err != nil {
			return err
		}
		if err := es.yamlValueAfterKey(val, w, depth); err != nil {
			return err
		}
		if i < len(node.Fields)-1 {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// yamlValueAfterKey writes either " value" for scalars and empty
// containers, or a newline plus an indented block for populated ones.
func (es *EncState) yamlValueAfterKey(val *ir.Node, w io.Writer, depth int) error {
	if raw, ok := es.raw(val); ok {
		return writeString(w, " "+raw+es.inlineComment(val))
	}
	switch val.Type {
	case ir.ObjectType, ir.ArrayType, ir.MultiDocType:
		if len(val.Values) == 0 {
			empty := "{}"
			if val.Type != ir.ObjectType {
				empty = "[]"
			}
			return writeString(w, " "+es.anchorPrefix(val)+empty+es.inlineComment(val))
		}
		if prefix := es.anchorPrefix(val); prefix != "" {
			if err := writeString(w, " "+strings.TrimSuffix(prefix, " ")); err != nil {
				return err
			}
		}
		if err := writeString(w, es.inlineComment(val)+"\n"+es.pad(depth+1)); err != nil {
			return err
		}
		return encodeYAMLBody(val, w, depth+1, es)
	case ir.StringType:
		if val.Style == ir.LiteralStyle || val.Style == ir.FoldedStyle {
			return es.yamlBlockString(val, w, depth+1)
		}
	}
	return writeString(w, " "+es.anchorPrefix(val)+es.scalarString(val)+es.inlineComment(val))
}

// encodeYAMLBody is encodeYAML for containers whose anchor was already
// written by the caller.
func encodeYAMLBody(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	anchor := node.Anchor
	node.Anchor = ""
	err := encodeYAML(node, w, depth, es)
	node.Anchor = anchor
	return err
}

func (es *EncState) yamlBlockString(val *ir.Node, w io.Writer, depth int) error {
	marker := "|"
	if val.Style == ir.FoldedStyle {
		marker = ">"
	}
	lines := val.Lines
	if len(lines) == 0 {
		lines = strings.Split(val.String, "\n")
	}
	if err := writeString(w, " "+marker+es.inlineComment(val)); err != nil {
		return err
	}
	for _, ln := range lines {
		s := "\n" + es.pad(depth) + ln
		if es.Color != nil {
			s = es.Color(ir.StringType, LiteralColor, s)
		}
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func encodeYAMLArray(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, es.anchorPrefix(node)+"[]")
	}
	if prefix := es.anchorPrefix(node); prefix != "" {
		if err := writeString(w, strings.TrimSuffix(prefix, " ")+"\n"+es.pad(depth)); err != nil {
			return err
		}
	}
	for i, val := range node.Values {
		if i > 0 {
			if err := writeString(w, es.pad(depth)); err != nil {
				return err
			}
		}
		if err := es.aboveComment(val, w, depth); err != nil {
			return err
		}
		if err := writeString(w, es.colored(ir.ArrayType, SepColor, "-")+" "); err != nil {
			return err
		}
		if raw, ok := es.raw(val); ok {
			if err := writeString(w, raw+es.inlineComment(val)); err != nil {
				return err
			}
		} else if val.Type.IsContainer() && len(val.Values) > 0 {
			if err := writeString(w, es.anchorPrefix(val)); err != nil {
				return err
			}
			if err := encodeYAMLBody(val, w, depth+1, es); err != nil {
				return err
			}
		} else {
			if err := writeString(w, es.anchorPrefix(val)+es.scalarString(val)+es.inlineComment(val)); err != nil {
				return err
			}
		}
		if i < len(node.Values)-1 {
			if err := writeString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- canonical JSON ---

func encodeJSON(node *ir.Node, w io.Writer, depth int, es *EncState) error {
	if raw, ok := es.raw(node); ok {
		return writeString(w, raw)
	}
	switch node.Type {
	case ir.MultiDocType:
		// JSON has no stream syntax; emit one document per line
		for i, d := range node.Values {
			if err := encodeJSON(d, w, depth, es); err != nil {
				return err
			}
			if i < len(node.Values)-1 {
				if err := writeString(w, "\n"); err != nil {
					return err
				}
			}
		}
		return nil
	case ir.ObjectType:
		if len(node.Fields) == 0 {
			return writeString(w, "{}")
		}
		if err := writeString(w, "{\n"); err != nil {
			return err
		}
		for i := range node.Fields {
			ks := strconv.Quote(node.Fields[i].String)
			if es.Color != nil {
				ks = es.Color(ir.ObjectType, FieldColor, ks)
			}
			if err := writeString(w, es.pad(depth+1)+ks+": "); err != nil {
				return err
			}
			if err := encodeJSON(node.Values[i], w, depth+1, es); err != nil {
				return err
			}
			sep := ",\n"
			if i == len(node.Fields)-1 {
				sep = "\n"
			}
			if err := writeString(w, sep); err != nil {
				return err
			}
		}
		return writeString(w, es.pad(depth)+"}")
	case ir.ArrayType:
		if len(node.Values) == 0 {
			return writeString(w, "[]")
		}
		if err := writeString(w, "[\n"); err != nil {
			return err
		}
		for i, val := range node.Values {
			if err := writeString(w, es.pad(depth+1)); err != nil {
				return err
			}
			if err := encodeJSON(val, w, depth+1, es); err != nil {
				return err
			}
			sep := ",\n"
			if i == len(node.Values)-1 {
				sep = "\n"
			}
			if err := writeString(w, sep); err != nil {
				return err
			}
		}
		return writeString(w, es.pad(depth)+"]")
	case ir.StringType:
		return writeString(w, es.colored(ir.StringType, ValueColor, strconv.Quote(node.String)))
	case ir.AliasType:
		// aliases have no JSON form; keep the reference legible
		return writeString(w, es.colored(ir.AliasType, ValueColor, strconv.Quote("*"+node.AliasOf)))
	default:
		return writeString(w, es.scalarString(node))
	}
}

// --- scalars ---

func (es *EncState) colored(t ir.Type, attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, attr, s)
}

func (es *EncState) scalarString(node *ir.Node) string {
	switch node.Type {
	case ir.NullType:
		return es.colored(ir.NullType, ValueColor, "null")
	case ir.BoolType:
		return es.colored(ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NumberType:
		return es.colored(ir.NumberType, ValueColor, ir.NumberString(node))
	case ir.StringType:
		return es.colored(ir.StringType, ValueColor, es.yamlQuote(node.String))
	case ir.AliasType:
		return es.colored(ir.AliasType, ValueColor, "*"+node.AliasOf)
	case ir.CommentType:
		return ""
	default:
		return fmt.Sprintf("<%s>", node.Type)
	}
}

// yamlQuote quotes v only when a plain rendering would re-parse as
// something else.
func (es *EncState) yamlQuote(v string) string {
	if es.format.IsJSON() {
		return strconv.Quote(v)
	}
	if v == "" || needsQuote(v) {
		return strconv.Quote(v)
	}
	return v
}

func needsQuote(v string) bool {
	switch v {
	case "null", "~", "true", "false":
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	switch v[0] {
	case '*', '&', '%', '@', ':', '#', ',', '{', '[', '(', '-', '?', '|', '>', '!', '"', '\'':
		return true
	}
	return strings.ContainsAny(v, ":#\n\t{}[],")
}
