package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/callable"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func TestInvokeScriptCallableBindsParams(t *testing.T) {
	ctx := newCtx()
	body := block(ast.NewBinaryExpr(sp(), ast.OpAdd,
		ast.NewVariable(sp(), "a", nil, nil, nil),
		ast.NewVariable(sp(), "b", nil, nil, nil)))
	params := []callable.Param{{Name: "a", Type: value.TypeAny}, {Name: "b", Type: value.TypeAny}}
	sc := callable.NewScriptCallable(params, body, ctx.Scope)

	args := value.NewPositionalTuple([]value.Value{value.Number(2), value.Number(3)})
	got, err := Invoke(sc, args, ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(5) {
		t.Errorf("got %#v, want 5", got)
	}
}

func TestInvokeRuntimeCallableDispatchesThroughHostcall(t *testing.T) {
	ctx := newCtx()
	fn := func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return args[0].(value.Number) + 1, nil
	}
	rc := callable.NewRuntimeCallable("inc", []callable.Param{{Name: "n", Type: value.TypeAny}}, false, fn)
	got, err := Invoke(rc, value.NewPositionalTuple([]value.Value{value.Number(1)}), ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(2) {
		t.Errorf("got %#v, want 2", got)
	}
}

func TestInvokePushesAndPopsCallStackFrame(t *testing.T) {
	ctx := newCtx()
	fn := func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		frames := ctx.CallStackSnapshot()
		if len(frames) != 1 || frames[0].FunctionName != "probe" {
			t.Errorf("frames = %#v, want one frame named probe", frames)
		}
		return value.Null, nil
	}
	rc := callable.NewRuntimeCallable("probe", nil, false, fn)
	if _, err := Invoke(rc, value.NewPositionalTuple(nil), ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.CallStackSnapshot()) != 0 {
		t.Error("frame should be popped after Invoke returns")
	}
}

func TestInvokeWrapsErrorWithCallStack(t *testing.T) {
	ctx := newCtx()
	fn := func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return nil, rillerr.UndefinedVariableErr("missing", nil)
	}
	rc := callable.NewRuntimeCallable("boom", nil, false, fn)
	_, err := Invoke(rc, value.NewPositionalTuple(nil), ctx, nil)
	re, ok := err.(*rillerr.Error)
	if !ok {
		t.Fatalf("expected *rillerr.Error, got %T", err)
	}
	if len(re.Stack) == 0 {
		t.Error("expected call stack to be attached to the error")
	}
}
