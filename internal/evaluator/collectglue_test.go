package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/callable"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// counterIterator returns a dict-shaped iterator that yields n, n+1, ...
// up to (excluding) limit, matching spec.md's {value, done, next} shape.
func counterIterator(n, limit int) *value.Dict {
	d := value.NewDict()
	d.Set("value", value.Number(float64(n)))
	d.Set("done", value.Bool(n >= limit))
	next := callable.NewRuntimeCallable("next", nil, false, func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return counterIterator(n+1, limit), nil
	})
	d.Set("next", next)
	return d
}

func TestCollectExpandDrainsIterator(t *testing.T) {
	ctx := newCtx()
	it := counterIterator(0, 3)
	out, err := collectExpand(it, ctx.IterationLimit(), ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 || out[0] != value.Number(0) || out[2] != value.Number(2) {
		t.Fatalf("got %#v", out)
	}
}

func TestEvalMapTargetOverIterator(t *testing.T) {
	ctx := newCtx().WithPipeValue(counterIterator(0, 3))
	body := ast.NewExprOperatorBody(sp(), ast.NewBinaryExpr(sp(), ast.OpMul, ast.NewPipeValue(sp()), num(10)))
	target := ast.NewMapTarget(sp(), body)

	got, err := evalPipeTarget(target, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := got.(*value.List)
	if !ok || len(l.Items) != 3 || l.Items[2] != value.Number(20) {
		t.Fatalf("got %#v", got)
	}
}
