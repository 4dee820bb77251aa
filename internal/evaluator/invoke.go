package evaluator

import (
	"time"

	"github.com/rcrsr/rill/internal/callable"
	"github.com/rcrsr/rill/internal/hostcall"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Invoke calls c with args, dispatching on its variant (spec.md §4.3).
// Script callables bind a fresh scope parented at their defining scope
// and run their body; runtime/application callables race their native
// Go function against the configured timeout via internal/hostcall.
// Every call pushes and pops a call-stack frame for diagnostics
// regardless of variant.
func Invoke(c value.Callable, args *value.Tuple, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	name := callableName(c)
	frame := rillerr.Frame{FunctionName: name}
	if loc != nil {
		frame.Location = *loc
	}
	ctx.PushFrame(frame)
	defer ctx.PopFrame()

	start := timeNow()
	v, err := invokeDispatch(c, args, ctx, loc)
	if cb := ctx.Callbacks().OnFunctionReturn; cb != nil && err == nil {
		cb(runtime.FunctionReturnEvent{Name: name, Value: v, DurationMs: timeNow().Sub(start).Milliseconds()})
	}
	if err != nil {
		if re, ok := err.(*rillerr.Error); ok {
			return nil, re.WithStack(ctx.CallStackSnapshot())
		}
	}
	return v, err
}

// timeNow wraps time.Now for Invoke's duration measurement, which reads
// it once before and once after the dispatch.
func timeNow() time.Time { return time.Now() }

func invokeDispatch(c value.Callable, args *value.Tuple, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	switch sc := c.(type) {
	case *callable.ScriptCallable:
		return invokeScript(sc, args, ctx, loc)
	case *callable.RuntimeCallable:
		bound, err := callable.BindParams(sc.Name(), sc.Params(), args, loc)
		if err != nil {
			return nil, err
		}
		ordered := orderedArgs(sc.Params(), bound)
		emitHostCall(ctx, sc.Name(), ordered)
		return hostcall.Call(sc.Name(), sc.Fn, ordered, ctx, loc, ctx.Timeout())
	case *callable.ApplicationCallable:
		bound, err := callable.BindParams(sc.Name(), sc.Params(), args, loc)
		if err != nil {
			return nil, err
		}
		ordered := orderedArgs(sc.Params(), bound)
		emitHostCall(ctx, sc.Name(), ordered)
		return hostcall.Call(sc.Name(), sc.Fn, ordered, ctx, loc, ctx.Timeout())
	default:
		return nil, rillerr.New(rillerr.TypeError, "unknown callable variant", loc, nil)
	}
}

func invokeScript(sc *callable.ScriptCallable, args *value.Tuple, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	bound, err := callable.BindParams("<closure>", sc.Params(), args, loc)
	if err != nil {
		return nil, err
	}
	callScope := runtime.NewScope(sc.DefiningScope())
	for _, p := range sc.Params() {
		v := bound[p.Name]
		callScope.Define(p.Name, v, value.InferType(v))
	}
	callCtx := ctx.WithScope(callScope)
	return evalBlock(sc.Body(), callCtx)
}

func orderedArgs(params []callable.Param, bound map[string]value.Value) []value.Value {
	out := make([]value.Value, len(params))
	for i, p := range params {
		out[i] = bound[p.Name]
	}
	return out
}

func emitHostCall(ctx *runtime.Context, name string, args []value.Value) {
	cb := ctx.Callbacks().OnHostCall
	if cb == nil {
		return
	}
	anyArgs := make([]any, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}
	cb(runtime.HostCallEvent{Name: name, Args: anyArgs})
}

func callableName(c value.Callable) string {
	type named interface{ Name() string }
	if n, ok := c.(named); ok {
		return n.Name()
	}
	return "<closure>"
}
