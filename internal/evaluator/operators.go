package evaluator

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalBinaryExpr(b *ast.BinaryExpr, ctx *runtime.Context) (value.Value, error) {
	// && and || short-circuit: the right side is only evaluated when the
	// left side doesn't already decide the result.
	if b.Op == ast.OpAnd || b.Op == ast.OpOr {
		left, err := Eval(b.Left, ctx)
		if err != nil {
			return nil, err
		}
		lt := value.IsTruthy(left)
		if b.Op == ast.OpAnd && !lt {
			return value.Bool(false), nil
		}
		if b.Op == ast.OpOr && lt {
			return value.Bool(true), nil
		}
		right, err := Eval(b.Right, ctx)
		if err != nil {
			return nil, err
		}
		return value.Bool(value.IsTruthy(right)), nil
	}

	left, err := Eval(b.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := Eval(b.Right, ctx)
	if err != nil {
		return nil, err
	}
	loc := locOf(b)

	switch b.Op {
	case ast.OpEq:
		return value.Bool(value.DeepEquals(left, right)), nil
	case ast.OpNeq:
		return value.Bool(!value.DeepEquals(left, right)), nil
	case ast.OpAdd:
		if ls, ok := left.(value.String); ok {
			return ls + value.String(value.FormatValue(right)), nil
		}
		return arithmetic(b.Op, left, right, loc)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return arithmetic(b.Op, left, right, loc)
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return compare(b.Op, left, right, loc)
	default:
		return nil, rillerr.New(rillerr.TypeError, "unknown binary operator", loc, nil)
	}
}

func arithmetic(op ast.BinaryOp, left, right value.Value, loc *rillerr.Location) (value.Value, error) {
	ln, ok := left.(value.Number)
	if !ok {
		return nil, rillerr.ArithmeticTypeError(string(value.InferType(left)), loc)
	}
	rn, ok := right.(value.Number)
	if !ok {
		return nil, rillerr.ArithmeticTypeError(string(value.InferType(right)), loc)
	}
	switch op {
	case ast.OpAdd:
		return ln + rn, nil
	case ast.OpSub:
		return ln - rn, nil
	case ast.OpMul:
		return ln * rn, nil
	case ast.OpDiv:
		if rn == 0 {
			return nil, rillerr.DivisionByZero(loc)
		}
		return ln / rn, nil
	case ast.OpMod:
		if rn == 0 {
			return nil, rillerr.DivisionByZero(loc)
		}
		return value.Number(int64(ln) % int64(rn)), nil
	default:
		return nil, rillerr.New(rillerr.TypeError, "unknown arithmetic operator", loc, nil)
	}
}

func compare(op ast.BinaryOp, left, right value.Value, loc *rillerr.Location) (value.Value, error) {
	switch l := left.(type) {
	case value.Number:
		r, ok := right.(value.Number)
		if !ok {
			return nil, rillerr.ComparisonTypeError(string(value.InferType(left)), string(value.InferType(right)), loc)
		}
		return compareOrdered(op, float64(l), float64(r)), nil
	case value.String:
		r, ok := right.(value.String)
		if !ok {
			return nil, rillerr.ComparisonTypeError(string(value.InferType(left)), string(value.InferType(right)), loc)
		}
		return compareStrings(op, string(l), string(r)), nil
	default:
		return nil, rillerr.ComparisonTypeError(string(value.InferType(left)), string(value.InferType(right)), loc)
	}
}

func compareOrdered[T int | float64](op ast.BinaryOp, l, r T) value.Value {
	switch op {
	case ast.OpLt:
		return value.Bool(l < r)
	case ast.OpGt:
		return value.Bool(l > r)
	case ast.OpLte:
		return value.Bool(l <= r)
	default:
		return value.Bool(l >= r)
	}
}

func compareStrings(op ast.BinaryOp, l, r string) value.Value {
	switch op {
	case ast.OpLt:
		return value.Bool(l < r)
	case ast.OpGt:
		return value.Bool(l > r)
	case ast.OpLte:
		return value.Bool(l <= r)
	default:
		return value.Bool(l >= r)
	}
}

func evalUnaryExpr(u *ast.UnaryExpr, ctx *runtime.Context) (value.Value, error) {
	v, err := Eval(u.Operand, ctx)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case ast.OpNeg:
		n, ok := v.(value.Number)
		if !ok {
			return nil, rillerr.ArithmeticTypeError(string(value.InferType(v)), locOf(u))
		}
		return -n, nil
	case ast.OpNot:
		return value.Bool(!value.IsTruthy(v)), nil
	default:
		return nil, rillerr.New(rillerr.TypeError, "unknown unary operator", locOf(u), nil)
	}
}
