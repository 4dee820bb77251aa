package runtime

import (
	"testing"
	"time"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

func TestNewContextDefaults(t *testing.T) {
	ctx := NewContext()
	if ctx.Functions() == nil || ctx.Methods() == nil {
		t.Fatal("expected default registries to be installed")
	}
	if ctx.Signal() == nil || ctx.Signal().Aborted() {
		t.Fatal("expected a fresh, unaborted signal")
	}
	if ctx.PipeValue != value.Null {
		t.Errorf("expected root pipe value to be Null, got %v", ctx.PipeValue)
	}
	if ctx.Scope.Parent() != nil {
		t.Error("expected root scope to have no parent")
	}
}

func TestContextOptions(t *testing.T) {
	funcs := NewFunctionRegistry()
	ctx := NewContext(
		WithFunctions(funcs),
		WithTimeout(5*time.Second),
		WithAutoExceptionPatterns([]string{"^retry:"}),
		WithMaxCallStackDepth(3),
	)
	if ctx.Functions() != funcs {
		t.Error("expected WithFunctions registry to be installed")
	}
	if ctx.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", ctx.Timeout())
	}
	if len(ctx.AutoExceptionPatterns()) != 1 {
		t.Fatalf("expected 1 auto-exception pattern, got %d", len(ctx.AutoExceptionPatterns()))
	}
	ctx.PushFrame(rillerr.Frame{FunctionName: "a"})
	ctx.PushFrame(rillerr.Frame{FunctionName: "b"})
	ctx.PushFrame(rillerr.Frame{FunctionName: "c"})
	ctx.PushFrame(rillerr.Frame{FunctionName: "d"})
	if snap := ctx.CallStackSnapshot(); len(snap) != 3 {
		t.Errorf("expected ring buffer capped at 3, got %d", len(snap))
	}
}

func TestContextChildSharesStateNotScope(t *testing.T) {
	ctx := NewContext()
	ctx.Scope.Define("x", value.Number(1), value.TypeNumber)
	child := ctx.Child()

	if child.Scope == ctx.Scope {
		t.Error("Child should create a new scope")
	}
	if child.Scope.Parent() != ctx.Scope {
		t.Error("Child scope should be parented at the calling scope")
	}
	if child.Functions() != ctx.Functions() {
		t.Error("Child should share the function registry")
	}
	if v, ok := child.Scope.Get("x"); !ok || v != value.Number(1) {
		t.Error("Child scope should see parent bindings")
	}
}

func TestContextWithPipeValueDoesNotMutateOriginal(t *testing.T) {
	ctx := NewContext()
	next := ctx.WithPipeValue(value.Number(42))
	if ctx.PipeValue != value.Null {
		t.Error("original context's PipeValue should be untouched")
	}
	if next.PipeValue != value.Number(42) {
		t.Errorf("next.PipeValue = %v, want 42", next.PipeValue)
	}
}

func TestContextWithScopeRebindsForClosures(t *testing.T) {
	ctx := NewContext()
	definingScope := NewScope(nil)
	definingScope.Define("y", value.String("closed-over"), value.TypeString)

	rebound := ctx.WithScope(NewScope(definingScope))
	v, ok := rebound.Scope.Get("y")
	if !ok || v != value.String("closed-over") {
		t.Error("expected rebound context to see the defining scope's bindings")
	}
	if ctx.Scope == rebound.Scope {
		t.Error("WithScope should not mutate the original context's scope")
	}
}

func TestContextAnnotationsPushPop(t *testing.T) {
	ctx := NewContext()
	ctx.PushAnnotations(map[string]value.Value{"limit": value.Number(7)})
	if got := ctx.IterationLimit(); got != 7 {
		t.Errorf("IterationLimit() = %d, want 7", got)
	}
	ctx.PopAnnotations()
	if got := ctx.IterationLimit(); got != defaultIterationLimit {
		t.Errorf("IterationLimit() after pop = %d, want default", got)
	}
}

func TestContextAnnotationLookupMiss(t *testing.T) {
	ctx := NewContext()
	if _, ok := ctx.Annotation("nope"); ok {
		t.Error("expected Annotation to report false when nothing is pushed")
	}
}
