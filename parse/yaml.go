package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/tony-edit/doc"
	"github.com/signadot/tony-edit/ir"
	"gopkg.in/yaml.v3"
)

// ParseYAML imports block-YAML source, including anchors, aliases, block
// string styles, comments and multi-document streams. The imported tree
// has no source spans, so it always serializes canonically.
func ParseYAML(d []byte) (*doc.Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(d))
	var docs []*ir.Node
	for {
		var yn yaml.Node
		err := dec.Decode(&yn)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ir.ErrParse, err)
		}
		n, err := fromYAML(&yn)
		if err != nil {
			return nil, err
		}
		docs = append(docs, n)
	}
	switch len(docs) {
	case 0:
		return nil, fmt.Errorf("%w: empty document", ir.ErrParse)
	case 1:
		return doc.New(docs[0]), nil
	default:
		return doc.New(ir.FromDocs(docs)), nil
	}
}

func fromYAML(y *yaml.Node) (*ir.Node, error) {
	var (
		n   *ir.Node
		err error
	)
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return ir.Null(), nil
		}
		return fromYAML(y.Content[0])
	case yaml.MappingNode:
		kvs := make([]ir.KeyVal, 0, len(y.Content)/2)
		for i := 0; i+1 < len(y.Content); i += 2 {
			key, kerr := fromYAML(y.Content[i])
			if kerr != nil {
				return nil, kerr
			}
			val, verr := fromYAML(y.Content[i+1])
			if verr != nil {
				return nil, verr
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		n = ir.FromKeyVals(kvs)
	case yaml.SequenceNode:
		vals := make([]*ir.Node, 0, len(y.Content))
		for _, c := range y.Content {
			v, verr := fromYAML(c)
			if verr != nil {
				return nil, verr
			}
			vals = append(vals, v)
		}
		n = ir.FromSlice(vals)
	case yaml.AliasNode:
		n = ir.FromAlias(y.Value)
	case yaml.ScalarNode:
		n, err = fromYAMLScalar(y)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: line %d: unhandled yaml node kind %d", ir.ErrParse, y.Line, y.Kind)
	}
	n.Anchor = y.Anchor
	attachYAMLComments(n, y)
	return n, nil
}

func fromYAMLScalar(y *yaml.Node) (*ir.Node, error) {
	switch y.Tag {
	case "!!null":
		return ir.Null(), nil
	case "!!bool":
		v, err := strconv.ParseBool(y.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad bool %q", ir.ErrParse, y.Line, y.Value)
		}
		return ir.FromBool(v), nil
	case "!!int":
		i, err := strconv.ParseInt(y.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad int %q", ir.ErrParse, y.Line, y.Value)
		}
		n := ir.FromInt(i)
		n.Number = y.Value
		return n, nil
	case "!!float":
		f, err := strconv.ParseFloat(y.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad float %q", ir.ErrParse, y.Line, y.Value)
		}
		n := ir.FromFloat(f)
		n.Number = y.Value
		return n, nil
	default:
		n := ir.FromString(y.Value)
		switch y.Style {
		case yaml.LiteralStyle:
			n.Style = ir.LiteralStyle
			n.Lines = strings.Split(y.Value, "\n")
		case yaml.FoldedStyle:
			n.Style = ir.FoldedStyle
			n.Lines = strings.Split(y.Value, "\n")
		}
		return n, nil
	}
}

func attachYAMLComments(n *ir.Node, y *yaml.Node) {
	above := commentLines(y.HeadComment)
	inline := commentLines(y.LineComment)
	foot := commentLines(y.FootComment)
	switch {
	case len(above) > 0:
		c := ir.FromComment(append(above, inline...), ir.AbovePosition)
		c.Parent = n
		n.Comment = c
	case len(inline) > 0:
		c := ir.FromComment(inline, ir.InlinePosition)
		c.Parent = n
		n.Comment = c
	}
	if len(foot) > 0 {
		if n.Comment == nil {
			c := ir.FromComment(foot, ir.StandalonePosition)
			c.Parent = n
			n.Comment = c
			return
		}
		n.Comment.Lines = append(n.Comment.Lines, foot...)
	}
}

// commentLines strips yaml.v3's '#' markers from a comment block.
func commentLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	res := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimPrefix(ln, "#")
		res = append(res, strings.TrimPrefix(ln, " "))
	}
	return res
}
