package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	Lines   []string
	Style   Style
	Comment *Node
	Pos     Position

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64

	// Anchor is the anchor name this node defines, if any. AliasOf is the
	// referenced anchor name when Type is AliasType.
	Anchor  string
	AliasOf string

	Span     *Span
	Modified bool
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Style = y.Style
	dst.Pos = y.Pos
	dst.Anchor = y.Anchor
	dst.AliasOf = y.AliasOf
	dst.Modified = y.Modified
	if y.Span != nil {
		sp := *y.Span
		dst.Span = &sp
	}
	dst.Lines = slices.Clone(y.Lines)
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}

	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	if y.Comment != nil {
		dstComment := &Node{}
		y.Comment.CloneTo(dstComment)
		dst.Comment = dstComment
	}
	return dst
}

func (y *Node) NonCommentParent() *Node {
	p := y.Parent
	if p == nil {
		return nil
	}
	if p.Type == CommentType {
		return p.Parent
	}
	return p
}

func FromString(v string) *Node {
	return FromStringAt(&Node{Modified: true}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	p.Modified = true
	return p
}

func FromInt(v int64) *Node {
	return &Node{
		Type:     NumberType,
		Int64:    &v,
		Modified: true,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:     NumberType,
		Float64:  &f,
		Modified: true,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type:     BoolType,
		Bool:     v,
		Modified: true,
	}
}

func Null() *Node {
	return &Node{Type: NullType, Modified: true}
}

// FromAlias constructs an alias leaf referencing the anchor named name.
func FromAlias(name string) *Node {
	return &Node{
		Type:     AliasType,
		AliasOf:  name,
		Modified: true,
	}
}

// FromComment constructs a comment node with the given content lines and
// position.
func FromComment(lines []string, pos Position) *Node {
	return &Node{
		Type:     CommentType,
		Lines:    slices.Clone(lines),
		Pos:      pos,
		Modified: true,
	}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		field := node.Fields[i]
		if field.Type == NullType {
			continue
		}
		res[field.String] = node.Values[i]
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Modified: true}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
			Modified:    true,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Modified: true}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Modified = true
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = &Node{Type: NullType, Modified: true}
		} else if kv.Key.Type == StringType {
			kv.Key.ParentField = kv.Key.String
			kv.Val.ParentField = kv.Key.ParentField
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:     ArrayType,
		Modified: true,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// FromDocs constructs a multi-document stream node from top-level documents.
func FromDocs(docs []*Node) *Node {
	res := &Node{
		Type:     MultiDocType,
		Modified: true,
	}
	res.Values = make([]*Node, len(docs))
	for i, y := range docs {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// MarkModified sets the modified flag on y, discarding nothing else. The
// document tree calls this on every node it hands out mutable access to,
// and on every ancestor walked to reach it.
func (y *Node) MarkModified() {
	y.Modified = true
}

// MarkModifiedAll marks y and its whole subtree modified. Callers splicing
// a subtree from one document into another use this so spans indexing the
// old source never replay against the new one.
func (y *Node) MarkModifiedAll() {
	y.Modified = true
	for _, f := range y.Fields {
		f.MarkModifiedAll()
	}
	for _, v := range y.Values {
		v.MarkModifiedAll()
	}
	if y.Comment != nil {
		y.Comment.MarkModifiedAll()
	}
}

// Reindex restores ParentIndex/ParentField bookkeeping of y's direct
// children after a positional insert or delete.
func (y *Node) Reindex() {
	for i, v := range y.Values {
		v.Parent = y
		v.ParentIndex = i
		if i < len(y.Fields) {
			f := y.Fields[i]
			f.Parent = y
			f.ParentIndex = i
			v.ParentField = f.String
			f.ParentField = f.String
		}
	}
}
