package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/value"
)

func TestEvalVariableUndefinedErrors(t *testing.T) {
	ctx := newCtx()
	_, err := Eval(ast.NewVariable(sp(), "missing", nil, nil, nil), ctx)
	if err == nil {
		t.Fatal("expected UndefinedVariable error")
	}
}

func TestEvalVariableDefaultValue(t *testing.T) {
	ctx := newCtx()
	got, err := Eval(ast.NewVariable(sp(), "missing", nil, nil, num(9)), ctx)
	if err != nil || got != value.Number(9) {
		t.Fatalf("got %#v, err %v", got, err)
	}
}

func TestEvalVariableExistenceCheck(t *testing.T) {
	ctx := newCtx()
	got, err := Eval(ast.NewVariable(sp(), "missing", nil, &ast.ExistenceCheck{}, nil), ctx)
	if err != nil || got != value.Bool(false) {
		t.Fatalf("got %#v, err %v", got, err)
	}

	ctx.Scope.Define("present", value.Number(1), value.TypeNumber)
	got, err = Eval(ast.NewVariable(sp(), "present", nil, &ast.ExistenceCheck{}, nil), ctx)
	if err != nil || got != value.Bool(true) {
		t.Fatalf("got %#v, err %v", got, err)
	}
}

func TestEvalVariableFieldAccess(t *testing.T) {
	ctx := newCtx()
	d := value.NewDict()
	d.Set("name", value.String("rill"))
	ctx.Scope.Define("cfg", d, value.TypeDict)

	chain := []ast.AccessStep{{Field: &ast.FieldAccess{Kind: ast.FieldLiteral, Name: "name"}}}
	got, err := Eval(ast.NewVariable(sp(), "cfg", chain, nil, nil), ctx)
	if err != nil || got != value.String("rill") {
		t.Fatalf("got %#v, err %v", got, err)
	}
}

func TestEvalVariableBracketAccessNegativeIndex(t *testing.T) {
	ctx := newCtx()
	list := value.NewList([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	ctx.Scope.Define("xs", list, value.TypeList)

	chain := []ast.AccessStep{{Bracket: &ast.BracketAccess{Index: ast.NewUnaryExpr(sp(), ast.OpNeg, num(1))}}}
	got, err := Eval(ast.NewVariable(sp(), "xs", chain, nil, nil), ctx)
	if err != nil || got != value.Number(3) {
		t.Fatalf("got %#v, err %v, want last element via -1", got, err)
	}
}

func TestEvalVariableFieldAlternatives(t *testing.T) {
	ctx := newCtx()
	d := value.NewDict()
	d.Set("b", value.Number(2))
	ctx.Scope.Define("d", d, value.TypeDict)

	chain := []ast.AccessStep{{Field: &ast.FieldAccess{Kind: ast.FieldAlternatives, Alternatives: []string{"a", "b", "c"}}}}
	got, err := Eval(ast.NewVariable(sp(), "d", chain, nil, nil), ctx)
	if err != nil || got != value.Number(2) {
		t.Fatalf("got %#v, err %v", got, err)
	}
}
