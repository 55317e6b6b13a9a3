package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
	CommentType
	AliasType
	MultiDocType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType:   "Object",
		ArrayType:    "Array",
		StringType:   "String",
		NumberType:   "Number",
		BoolType:     "Bool",
		NullType:     "Null",
		CommentType:  "Comment",
		AliasType:    "Alias",
		MultiDocType: "MultiDoc",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Comment":  CommentType,
		"Null":     NullType,
		"Bool":     BoolType,
		"Number":   NumberType,
		"String":   StringType,
		"Array":    ArrayType,
		"Object":   ObjectType,
		"Alias":    AliasType,
		"MultiDoc": MultiDocType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
		CommentType,
		AliasType,
		MultiDocType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType, CommentType, MultiDocType:
		return false
	default:
		return true
	}
}

// IsContainer reports whether positional child addressing applies to t.
func (t Type) IsContainer() bool {
	switch t {
	case ObjectType, ArrayType, MultiDocType:
		return true
	default:
		return false
	}
}
