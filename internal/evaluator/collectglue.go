package evaluator

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/collect"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func collectExpand(v value.Value, limit int, ctx *runtime.Context, loc *rillerr.Location) ([]value.Value, error) {
	callNext := func(next value.Callable) (*value.Dict, error) {
		v, err := Invoke(next, value.NewPositionalTuple(nil), ctx, loc)
		if err != nil {
			return nil, err
		}
		d, ok := v.(*value.Dict)
		if !ok {
			return nil, rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
		}
		return d, nil
	}
	return collect.Expand(v, limit, callNext, loc)
}

// operatorBody returns a collect.BodyFunc that evaluates body against
// each element, with `$` bound to the element and `$@` bound to the
// running accumulator (spec.md §4.6).
func operatorBody(body ast.OperatorBody, ctx *runtime.Context) collect.BodyFunc {
	return func(element value.Value, index int, acc value.Value) (value.Value, error) {
		child := ctx.Child()
		child = child.WithPipeValue(element)
		child.Scope.Define(accumulatorName, acc, value.InferType(acc))
		return evalOperatorBody(body, child)
	}
}

func evalOperatorBody(body ast.OperatorBody, ctx *runtime.Context) (value.Value, error) {
	switch b := body.(type) {
	case *ast.InlineClosureBody:
		c, err := evalClosure(b.Closure, ctx)
		if err != nil {
			return nil, err
		}
		return Invoke(c.(value.Callable), value.NewPositionalTuple([]value.Value{ctx.PipeValue}), ctx, locOf(body))
	case *ast.BlockOperatorBody:
		return evalBlock(b.Block, ctx)
	case *ast.ExprOperatorBody:
		return Eval(b.Expr, ctx)
	default:
		return nil, rillerr.New(rillerr.TypeError, "unknown operator body", locOf(body), nil)
	}
}
