package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func TestSetVariableTypedFreshBind(t *testing.T) {
	scope := runtime.NewScope(nil)
	if err := setVariableTyped(scope, "x", value.Number(1), "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := scope.Get("x")
	if !ok || v != value.Number(1) {
		t.Fatalf("x = %#v, ok %v", v, ok)
	}
}

func TestSetVariableTypedLockedMismatch(t *testing.T) {
	scope := runtime.NewScope(nil)
	if err := setVariableTyped(scope, "x", value.Number(1), "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := setVariableTyped(scope, "x", value.String("oops"), "", nil)
	if err == nil {
		t.Fatal("expected locked-type mismatch error")
	}
}

func TestSetVariableTypedExplicitAnnotationMismatch(t *testing.T) {
	scope := runtime.NewScope(nil)
	err := setVariableTyped(scope, "x", value.Number(1), "string", nil)
	if err == nil {
		t.Fatal("expected assignment type mismatch error")
	}
}

func TestSetVariableTypedCannotShadowOuterScope(t *testing.T) {
	outer := runtime.NewScope(nil)
	if err := setVariableTyped(outer, "x", value.Number(1), "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner := runtime.NewScope(outer)
	err := setVariableTyped(inner, "x", value.Number(2), "", nil)
	if err == nil {
		t.Fatal("expected cannot-shadow error for a name already bound in an outer scope")
	}
}

func TestSetVariableTypedSameTypeRelockIsFine(t *testing.T) {
	scope := runtime.NewScope(nil)
	if err := setVariableTyped(scope, "x", value.Number(1), "", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := setVariableTyped(scope, "x", value.Number(2), "", nil); err != nil {
		t.Fatalf("unexpected error re-assigning same locked type: %v", err)
	}
	v, _ := scope.Get("x")
	if v != value.Number(2) {
		t.Errorf("x = %#v, want 2", v)
	}
}
