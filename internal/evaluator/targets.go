package evaluator

import (
	"github.com/rcrsr/rill/internal/access"
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/callable"
	"github.com/rcrsr/rill/internal/collect"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalPipeTarget(target ast.PipeTarget, ctx *runtime.Context) (value.Value, error) {
	switch t := target.(type) {
	case *ast.HostCallTarget:
		return evalHostCall(t.Name, t.Args, ctx, locOf(t))
	case *ast.ClosureCallTarget:
		return evalClosureCall(t.Callee, t.Args, ctx, locOf(t))
	case *ast.PipeInvokeTarget:
		return evalPipeInvoke(t, ctx)
	case *ast.MethodCallTarget:
		return evalMethodCallOnPipe(t, ctx)
	case *ast.ConditionalTarget:
		return evalConditional(t.Cond, ctx)
	case *ast.LoopTarget:
		return evalLoop(t.Loop, ctx)
	case *ast.DoWhileTarget:
		return evalDoWhile(t.DoWhile, ctx)
	case *ast.BlockTarget:
		return evalBlock(t.Block, ctx)
	case *ast.DestructureTarget:
		return ctx.PipeValue, evalDestructure(t.Pattern, ctx.PipeValue, ctx, locOf(t))
	case *ast.SliceTarget:
		return evalSliceTarget(t, ctx)
	case *ast.SpreadTarget:
		return access.Spread(ctx.PipeValue, locOf(t))
	case *ast.TypeAssertionTarget:
		if !value.CheckType(ctx.PipeValue, value.TypeName(t.TypeName)) {
			return nil, rillerr.TypeAssertionFailed(t.TypeName, string(value.InferType(ctx.PipeValue)), locOf(t))
		}
		return ctx.PipeValue, nil
	case *ast.TypeCheckTarget:
		return value.Bool(value.CheckType(ctx.PipeValue, value.TypeName(t.TypeName))), nil
	case *ast.EachTarget:
		return evalEachTarget(t, ctx)
	case *ast.MapTarget:
		return evalMapTarget(t, ctx)
	case *ast.FoldTarget:
		return evalFoldTarget(t, ctx)
	case *ast.FilterTarget:
		return evalFilterTarget(t, ctx)
	default:
		return nil, rillerr.New(rillerr.TypeError, "unhandled pipe target", locOf(target), nil)
	}
}

func evalArgs(exprs []ast.Expr, ctx *runtime.Context) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := Eval(e, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalHostCall(name string, argExprs []ast.Expr, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	fn, ok := ctx.Functions().Lookup(name)
	if !ok {
		return nil, rillerr.UndefinedFunctionErr(name, loc)
	}
	vals, err := evalArgs(argExprs, ctx)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 && ctx.PipeValue != value.Null {
		vals = []value.Value{ctx.PipeValue}
	}
	params := toCallableParams(fn.Params)
	rc := callable.NewRuntimeCallable(name, params, len(params) == 0, fn.Fn)
	return Invoke(rc, value.NewPositionalTuple(vals), ctx, loc)
}

func toCallableParams(params []runtime.ParamSpec) []callable.Param {
	out := make([]callable.Param, len(params))
	for i, p := range params {
		out[i] = callable.Param{Name: p.Name, Type: p.Type, HasDefault: p.Required == false && p.DefaultValue != nil, Default: p.DefaultValue}
	}
	return out
}

func evalClosureCall(calleeExpr ast.Expr, argExprs []ast.Expr, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	calleeVal, err := Eval(calleeExpr, ctx)
	if err != nil {
		return nil, err
	}
	c, ok := calleeVal.(value.Callable)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "value is not callable", loc, nil)
	}
	vals, err := evalArgs(argExprs, ctx)
	if err != nil {
		return nil, err
	}
	vals = maybeAutoInsertPipe(c, vals, ctx)
	return Invoke(c, value.NewPositionalTuple(vals), ctx, loc)
}

// maybeAutoInsertPipe prepends the current pipe value when the callable
// declares exactly one more parameter than the caller supplied
// arguments for (spec.md §4.4's pipe-first auto-insert).
func maybeAutoInsertPipe(c value.Callable, vals []value.Value, ctx *runtime.Context) []value.Value {
	type withParams interface{ Params() []callable.Param }
	wp, ok := c.(withParams)
	if !ok {
		return vals
	}
	if len(wp.Params()) == len(vals)+1 {
		return append([]value.Value{ctx.PipeValue}, vals...)
	}
	return vals
}

func evalPipeInvoke(t *ast.PipeInvokeTarget, ctx *runtime.Context) (value.Value, error) {
	c, ok := ctx.PipeValue.(value.Callable)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "pipe value is not callable", locOf(t), nil)
	}
	vals, err := evalArgs(t.Args, ctx)
	if err != nil {
		return nil, err
	}
	return Invoke(c, value.NewPositionalTuple(vals), ctx, locOf(t))
}

func evalMethodCallOnPipe(t *ast.MethodCallTarget, ctx *runtime.Context) (value.Value, error) {
	return evalMethodCall(nil, t.Method, t.Args, ctx, locOf(t))
}

// evalMethodCall resolves a dict's own callable field for Method first,
// falling back to a registered receiver method (spec.md §4.4). recv is
// nil when called from a pipe target, meaning "use the current pipe
// value".
func evalMethodCall(recvExpr ast.Expr, method string, argExprs []ast.Expr, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	recv := ctx.PipeValue
	if recvExpr != nil {
		v, err := Eval(recvExpr, ctx)
		if err != nil {
			return nil, err
		}
		recv = v
	}
	vals, err := evalArgs(argExprs, ctx)
	if err != nil {
		return nil, err
	}

	if d, ok := recv.(*value.Dict); ok {
		if fv, ok := d.Get(method); ok {
			if c, ok := fv.(value.Callable); ok {
				return Invoke(c, value.NewPositionalTuple(vals), ctx, loc)
			}
		}
	}

	m, ok := ctx.Methods().Lookup(method)
	if !ok {
		return nil, rillerr.UndefinedMethodErr(method, loc)
	}
	bound, err := callable.BindParams(method, toCallableParams(m.Params), value.NewPositionalTuple(vals), loc)
	if err != nil {
		return nil, err
	}
	return m.Fn(recv, orderedArgs(toCallableParams(m.Params), bound), ctx, loc)
}

func evalSliceTarget(t *ast.SliceTarget, ctx *runtime.Context) (value.Value, error) {
	start, err := evalOptionalInt(t.Start, ctx)
	if err != nil {
		return nil, err
	}
	stop, err := evalOptionalInt(t.Stop, ctx)
	if err != nil {
		return nil, err
	}
	step, err := evalOptionalInt(t.Step, ctx)
	if err != nil {
		return nil, err
	}
	return access.Slice(ctx.PipeValue, start, stop, step, locOf(t))
}

func evalOptionalInt(e ast.Expr, ctx *runtime.Context) (*int, error) {
	if e == nil {
		return nil, nil
	}
	v, err := Eval(e, ctx)
	if err != nil {
		return nil, err
	}
	n, ok := v.(value.Number)
	if !ok {
		return nil, rillerr.ArithmeticTypeError(string(value.InferType(v)), locOf(e))
	}
	i := int(n)
	return &i, nil
}

func evalEachTarget(t *ast.EachTarget, ctx *runtime.Context) (value.Value, error) {
	elements, err := collectExpand(ctx.PipeValue, ctx.IterationLimit(), ctx, locOf(t))
	if err != nil {
		return nil, err
	}
	initial, err := evalInitial(t.Initial, ctx)
	if err != nil {
		return nil, err
	}
	return collect.Each(elements, initial, operatorBody(t.Body, ctx))
}

func evalFoldTarget(t *ast.FoldTarget, ctx *runtime.Context) (value.Value, error) {
	elements, err := collectExpand(ctx.PipeValue, ctx.IterationLimit(), ctx, locOf(t))
	if err != nil {
		return nil, err
	}
	initial, err := Eval(t.Initial, ctx)
	if err != nil {
		return nil, err
	}
	return collect.Fold(elements, initial, operatorBody(t.Body, ctx))
}

func evalMapTarget(t *ast.MapTarget, ctx *runtime.Context) (value.Value, error) {
	elements, err := collectExpand(ctx.PipeValue, ctx.IterationLimit(), ctx, locOf(t))
	if err != nil {
		return nil, err
	}
	out, err := collect.Map(elements, operatorBody(t.Body, ctx))
	if err != nil {
		return nil, err
	}
	return value.NewList(out), nil
}

func evalFilterTarget(t *ast.FilterTarget, ctx *runtime.Context) (value.Value, error) {
	elements, err := collectExpand(ctx.PipeValue, ctx.IterationLimit(), ctx, locOf(t))
	if err != nil {
		return nil, err
	}
	out, err := collect.Filter(elements, operatorBody(t.Body, ctx))
	if err != nil {
		return nil, err
	}
	return value.NewList(out), nil
}

func evalInitial(e ast.Expr, ctx *runtime.Context) (value.Value, error) {
	if e == nil {
		return value.Null, nil
	}
	return Eval(e, ctx)
}
