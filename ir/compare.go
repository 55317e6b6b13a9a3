package ir

import (
	"cmp"
	"strconv"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// String style and format metadata (spans, modified flags) never
// participate in the comparison.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case AliasType:
		return strings.Compare(a.AliasOf, b.AliasOf)
	case ArrayType, MultiDocType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType, CommentType:
		return 0
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Comment < Null < Bool < Number < String < Alias < Array < MultiDoc < Object
func rank(t Type) int {
	switch t {
	case CommentType:
		return 0
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case AliasType:
		return 5
	case ArrayType:
		return 6
	case MultiDocType:
		return 7
	case ObjectType:
		return 8
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	// Sub-rank: Int64 < Float64 < String
	subRankA := numberSubRank(a)
	subRankB := numberSubRank(b)
	if subRankA != subRankB {
		return cmp.Compare(subRankA, subRankB)
	}

	if a.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	if a.Float64 != nil {
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return strings.Compare(a.Number, b.Number)
}

func numberSubRank(a *Node) int {
	if a.Int64 != nil {
		return 0
	}
	if a.Float64 != nil {
		return 1
	}
	return 2
}

func compareArrays(a, b *Node) int {
	if c := cmp.Compare(len(a.Values), len(b.Values)); c != 0 {
		return c
	}
	for i := range a.Values {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareObjects(a, b *Node) int {
	if c := cmp.Compare(len(a.Fields), len(b.Fields)); c != 0 {
		return c
	}
	for i := range a.Fields {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

// NumberString returns the display representation of a number node,
// preferring the preserved source representation.
func NumberString(y *Node) string {
	if y.Number != "" {
		return y.Number
	}
	if y.Int64 != nil {
		return strconv.FormatInt(*y.Int64, 10)
	}
	if y.Float64 != nil {
		return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
	}
	return "0"
}
