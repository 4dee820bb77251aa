package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/value"
)

func TestArithmeticOperators(t *testing.T) {
	ctx := newCtx()
	cases := []struct {
		op   ast.BinaryOp
		a, b float64
		want value.Value
	}{
		{ast.OpAdd, 2, 3, value.Number(5)},
		{ast.OpSub, 5, 2, value.Number(3)},
		{ast.OpMul, 4, 3, value.Number(12)},
		{ast.OpDiv, 9, 2, value.Number(4.5)},
		{ast.OpMod, 9, 4, value.Number(1)},
	}
	for _, c := range cases {
		got, err := Eval(ast.NewBinaryExpr(sp(), c.op, num(c.a), num(c.b)), ctx)
		if err != nil {
			t.Fatalf("op %v: unexpected error: %v", c.op, err)
		}
		if got != c.want {
			t.Errorf("op %v: got %#v, want %#v", c.op, got, c.want)
		}
	}
}

func TestStringConcatenationViaAdd(t *testing.T) {
	ctx := newCtx()
	left := ast.NewStringLiteral(sp(), []ast.StringPart{{Literal: "n="}})
	got, err := Eval(ast.NewBinaryExpr(sp(), ast.OpAdd, left, num(3)), ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.String("n=3") {
		t.Errorf("got %#v", got)
	}
}

func TestComparisonOperators(t *testing.T) {
	ctx := newCtx()
	got, err := Eval(ast.NewBinaryExpr(sp(), ast.OpGte, num(3), num(3)), ctx)
	if err != nil || got != value.Bool(true) {
		t.Fatalf("got %#v, err %v", got, err)
	}

	_, err = Eval(ast.NewBinaryExpr(sp(), ast.OpLt, num(1), ast.NewBoolLiteral(sp(), true)), ctx)
	if err == nil {
		t.Fatal("expected ComparisonTypeError for mixed types")
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	ctx := newCtx()
	// The right side references an undefined variable; if `&&` didn't
	// short-circuit on a false left side this would error.
	right := ast.NewVariable(sp(), "undefined", nil, nil, nil)
	got, err := Eval(ast.NewBinaryExpr(sp(), ast.OpAnd, ast.NewBoolLiteral(sp(), false), right), ctx)
	if err != nil || got != value.Bool(false) {
		t.Fatalf("got %#v, err %v", got, err)
	}

	got, err = Eval(ast.NewBinaryExpr(sp(), ast.OpOr, ast.NewBoolLiteral(sp(), true), right), ctx)
	if err != nil || got != value.Bool(true) {
		t.Fatalf("got %#v, err %v", got, err)
	}
}

func TestEqualityUsesDeepEquals(t *testing.T) {
	ctx := newCtx()
	listA := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2)})
	listB := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2)})
	got, err := Eval(ast.NewBinaryExpr(sp(), ast.OpEq, listA, listB), ctx)
	if err != nil || got != value.Bool(true) {
		t.Fatalf("got %#v, err %v, want structural equality for equal lists", got, err)
	}
}

func TestUnaryOperators(t *testing.T) {
	ctx := newCtx()
	got, err := Eval(ast.NewUnaryExpr(sp(), ast.OpNot, ast.NewBoolLiteral(sp(), false)), ctx)
	if err != nil || got != value.Bool(true) {
		t.Fatalf("got %#v, err %v", got, err)
	}

	_, err = Eval(ast.NewUnaryExpr(sp(), ast.OpNeg, ast.NewBoolLiteral(sp(), true)), ctx)
	if err == nil {
		t.Fatal("expected ArithmeticTypeError negating a bool")
	}
}
