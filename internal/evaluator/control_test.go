package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func block(exprs ...ast.Expr) *ast.Block {
	stmts := make([]*ast.Statement, len(exprs))
	for i, e := range exprs {
		stmts[i] = ast.NewStatement(sp(), nil, e)
	}
	return ast.NewBlock(sp(), stmts)
}

func TestEvalConditionalBranches(t *testing.T) {
	ctx := newCtx()
	cond := ast.NewConditional(sp(), ast.NewBoolLiteral(sp(), true), block(num(1)), block(num(2)))
	got, err := Eval(cond, ctx)
	if err != nil || got != value.Number(1) {
		t.Fatalf("got %#v, err %v", got, err)
	}

	cond2 := ast.NewConditional(sp(), ast.NewBoolLiteral(sp(), false), block(num(1)), block(num(2)))
	got, err = Eval(cond2, ctx)
	if err != nil || got != value.Number(2) {
		t.Fatalf("got %#v, err %v", got, err)
	}
}

func TestEvalConditionalRequiresBool(t *testing.T) {
	ctx := newCtx()
	cond := ast.NewConditional(sp(), num(1), block(num(1)), nil)
	_, err := Eval(cond, ctx)
	if err == nil {
		t.Fatal("expected BooleanExpected error")
	}
}

func TestEvalDoWhileRunsUntilFalse(t *testing.T) {
	ctx := newCtx()
	term := &ast.Terminator{Kind: ast.TermCapture, Name: "n"}
	incr := ast.NewPipeChain(sp(), ast.NewBinaryExpr(sp(), ast.OpAdd, ast.NewVariable(sp(), "n", nil, nil, num(0)), num(1)), nil, term)
	body := block(incr)
	cond := ast.NewBinaryExpr(sp(), ast.OpLt, ast.NewVariable(sp(), "n", nil, nil, nil), num(3))
	dw := ast.NewDoWhile(sp(), body, cond)
	got, err := Eval(dw, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(3) {
		t.Errorf("got %#v, want 3", got)
	}
}

func TestEvalLoopOverList(t *testing.T) {
	ctx := newCtx()
	list := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2), num(3)})
	l := ast.NewLoop(sp(), list, block(ast.NewPipeValue(sp())))
	got, err := Eval(l, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(3) {
		t.Errorf("got %#v, want last element 3", got)
	}
}

func TestEvalLoopWhileBool(t *testing.T) {
	// The body runs in a child scope, so the final count is observed
	// through the capture callback rather than the outer scope.
	var last runtime.CaptureEvent
	ctx := runtime.NewContext(runtime.WithCallbacks(runtime.Callbacks{
		OnCapture: func(ev runtime.CaptureEvent) { last = ev },
	}))
	term := &ast.Terminator{Kind: ast.TermCapture, Name: "count"}
	incrAndTest := ast.NewPipeChain(
		sp(),
		ast.NewBinaryExpr(sp(), ast.OpAdd, ast.NewVariable(sp(), "count", nil, nil, num(0)), num(1)),
		nil,
		term,
	)
	cont := ast.NewBinaryExpr(sp(), ast.OpLt, ast.NewVariable(sp(), "count", nil, nil, nil), num(3))
	body := block(incrAndTest, cont)
	l := ast.NewLoop(sp(), ast.NewBoolLiteral(sp(), true), body)
	got, err := Eval(l, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Bool(false) {
		t.Errorf("got %#v, want false (loop condition gone false)", got)
	}
	if last.Name != "count" || last.Value != "3" {
		t.Errorf("last capture = %#v, want count = 3", last)
	}
}
