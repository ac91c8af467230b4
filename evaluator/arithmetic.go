package evaluator

import (
	"math"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

// Coercion is explicit and narrow: arithmetic wants numbers on both sides,
// '+' concatenates only when both operands already are strings, and ordering
// comparisons across incompatible types are an error, never coerced.
func evalInfix(c rill.Context, n *ast.Infix) (rill.Value, *errors.Signal) {
	switch n.Operator {
	case `&&`, `||`:
		return evalBooleanOp(c, n)
	}

	lhs, sig := eval(c, n.Lhs)
	if sig != nil {
		return nil, sig
	}
	rhs, sig := eval(c, n.Rhs)
	if sig != nil {
		return nil, sig
	}

	switch n.Operator {
	case `==`:
		return types.WrapBoolean(rill.Equals(lhs, rhs)), nil
	case `!=`:
		return types.WrapBoolean(!rill.Equals(lhs, rhs)), nil
	case `+`:
		if ls, ok := lhs.(*types.StringValue); ok {
			if rs, ok := rhs.(*types.StringValue); ok {
				return types.WrapString(ls.String() + rs.String()), nil
			}
		}
		if _, ok := lhs.(*types.StringValue); ok {
			panic(concatError(n, lhs, rhs))
		}
		if _, ok := rhs.(*types.StringValue); ok {
			panic(concatError(n, lhs, rhs))
		}
		return arith(n, lhs, rhs), nil
	case `-`, `*`, `/`, `%`:
		return arith(n, lhs, rhs), nil
	case `<`, `<=`, `>`, `>=`:
		return compare(n, lhs, rhs), nil
	default:
		panic(rill.Error(n, rill.UnsupportedNode, issue.H{`node`: `'` + n.Operator + `' operator`}))
	}
}

func evalBooleanOp(c rill.Context, n *ast.Infix) (rill.Value, *errors.Signal) {
	lhs, sig := eval(c, n.Lhs)
	if sig != nil {
		return nil, sig
	}
	lb := toBoolean(n.Lhs, lhs)
	if n.Operator == `&&` && !lb {
		return types.BooleanFalse, nil
	}
	if n.Operator == `||` && lb {
		return types.BooleanTrue, nil
	}
	rhs, sig := eval(c, n.Rhs)
	if sig != nil {
		return nil, sig
	}
	return types.WrapBoolean(toBoolean(n.Rhs, rhs)), nil
}

func toBoolean(location issue.Location, v rill.Value) bool {
	b, ok := v.(*types.BooleanValue)
	if !ok {
		panic(rill.Error(location, rill.TypeMismatch, issue.H{
			`expected`: `boolean`, `actual`: types.TypeNameOf(v)}))
	}
	return b.Bool()
}

func arith(n *ast.Infix, lhs, rhs rill.Value) rill.Value {
	ln, lok := lhs.(*types.NumberValue)
	rn, rok := rhs.(*types.NumberValue)
	if !(lok && rok) {
		panic(rill.Error(n, rill.ArithmeticOperand, issue.H{
			`operator`: n.Operator, `left`: types.TypeNameOf(lhs), `right`: types.TypeNameOf(rhs)}))
	}
	a := ln.Float()
	b := rn.Float()
	switch n.Operator {
	case `+`:
		return types.WrapNumber(a + b)
	case `-`:
		return types.WrapNumber(a - b)
	case `*`:
		return types.WrapNumber(a * b)
	case `/`:
		return types.WrapNumber(a / b)
	default:
		return types.WrapNumber(math.Mod(a, b))
	}
}

func compare(n *ast.Infix, lhs, rhs rill.Value) rill.Value {
	var cmp int
	switch l := lhs.(type) {
	case *types.NumberValue:
		if r, ok := rhs.(*types.NumberValue); ok {
			switch {
			case l.Float() < r.Float():
				cmp = -1
			case l.Float() > r.Float():
				cmp = 1
			}
			return orderResult(n.Operator, cmp)
		}
	case *types.StringValue:
		if r, ok := rhs.(*types.StringValue); ok {
			switch {
			case l.String() < r.String():
				cmp = -1
			case l.String() > r.String():
				cmp = 1
			}
			return orderResult(n.Operator, cmp)
		}
	}
	panic(rill.Error(n, rill.ComparisonIncompatible, issue.H{
		`left`: types.TypeNameOf(lhs), `right`: types.TypeNameOf(rhs)}))
}

func orderResult(operator string, cmp int) rill.Value {
	switch operator {
	case `<`:
		return types.WrapBoolean(cmp < 0)
	case `<=`:
		return types.WrapBoolean(cmp <= 0)
	case `>`:
		return types.WrapBoolean(cmp > 0)
	default:
		return types.WrapBoolean(cmp >= 0)
	}
}

func evalPrefix(c rill.Context, n *ast.Prefix) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Operand)
	if sig != nil {
		return nil, sig
	}
	switch n.Operator {
	case `!`:
		return types.WrapBoolean(!toBoolean(n.Operand, v)), nil
	case `-`:
		num, ok := v.(*types.NumberValue)
		if !ok {
			panic(rill.Error(n, rill.ArithmeticOperand, issue.H{
				`operator`: `-`, `left`: `number`, `right`: types.TypeNameOf(v)}))
		}
		return types.WrapNumber(-num.Float()), nil
	default:
		panic(rill.Error(n, rill.UnsupportedNode, issue.H{`node`: `'` + n.Operator + `' operator`}))
	}
}

func concatError(n *ast.Infix, lhs, rhs rill.Value) issue.Reported {
	return rill.Error(n, rill.ConcatOperand, issue.H{
		`left`: types.TypeNameOf(lhs), `right`: types.TypeNameOf(rhs)})
}
