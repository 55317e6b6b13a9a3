package query

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/tony-edit/ir"
)

type filterProgram struct {
	prog *vm.Program
}

func compileFilter(src string) (*filterProgram, error) {
	prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return &filterProgram{prog: prog}, nil
}

// match evaluates the predicate over one child candidate. The child's
// object fields are in scope by name and the child itself is bound to
// "value". Runtime errors and non-boolean results drop the candidate
// rather than failing the query.
func (f *filterProgram) match(node *ir.Node) bool {
	env := map[string]any{"value": toAny(node)}
	if node.Type == ir.ObjectType {
		for i, field := range node.Fields {
			if field.Type == ir.StringType {
				env[field.String] = toAny(node.Values[i])
			}
		}
	}
	out, err := expr.Run(f.prog, env)
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

// toAny converts a node into plain Go values for expression evaluation.
// Object field order is irrelevant to predicates, so a map suffices here.
func toAny(y *ir.Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.StringType:
		return y.String
	case ir.AliasType:
		return y.AliasOf
	case ir.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case ir.ArrayType, ir.MultiDocType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = toAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			if f.Type != ir.StringType {
				continue
			}
			res[f.String] = toAny(y.Values[i])
		}
		return res
	case ir.CommentType:
		return nil
	default:
		return nil
	}
}
