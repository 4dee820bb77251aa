package evaluator

import (
	"testing"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func TestEvalHostCallUsesPipeValueWhenNoArgs(t *testing.T) {
	funcs := runtime.NewFunctionRegistry()
	err := funcs.Register("double", []runtime.ParamSpec{{Name: "n", Type: value.TypeNumber, Required: true}},
		func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
			return args[0].(value.Number) * 2, nil
		})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := runtime.NewContext(runtime.WithFunctions(funcs)).WithPipeValue(value.Number(5))
	target := ast.NewHostCallTarget(sp(), "double", nil)
	chain := ast.NewPipeChain(sp(), num(5), []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(10) {
		t.Errorf("got %#v", got)
	}
}

func TestEvalClosureCallWithPipeFirstAutoInsert(t *testing.T) {
	ctx := newCtx()
	body := ast.NewBlock(sp(), []*ast.Statement{
		ast.NewStatement(sp(), nil, ast.NewBinaryExpr(sp(), ast.OpAdd, ast.NewVariable(sp(), "n", nil, nil, nil), ast.NewVariable(sp(), "m", nil, nil, nil))),
	})
	closure := ast.NewClosure(sp(), []ast.Param{{Name: "n"}, {Name: "m"}}, body)

	callTarget := ast.NewClosureCallTarget(sp(), closure, []ast.Expr{num(3)})
	chain := ast.NewPipeChain(sp(), num(4), []ast.PipeTarget{callTarget}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(7) {
		t.Errorf("got %#v, want 7 (pipe value 4 auto-inserted + arg 3)", got)
	}
}

func TestEvalEachTargetAccumulates(t *testing.T) {
	ctx := newCtx()
	body := ast.NewExprOperatorBody(sp(), ast.NewBinaryExpr(sp(), ast.OpAdd, ast.NewAccumulator(sp()), ast.NewPipeValue(sp())))
	target := ast.NewEachTarget(sp(), body, num(0))
	list := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2), num(3)})
	chain := ast.NewPipeChain(sp(), list, []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(6) {
		t.Errorf("got %#v, want 6", got)
	}
}

func TestEvalMapTargetDoubles(t *testing.T) {
	ctx := newCtx()
	body := ast.NewExprOperatorBody(sp(), ast.NewBinaryExpr(sp(), ast.OpMul, ast.NewPipeValue(sp()), num(2)))
	target := ast.NewMapTarget(sp(), body)
	list := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2), num(3)})
	chain := ast.NewPipeChain(sp(), list, []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := got.(*value.List)
	if !ok || len(l.Items) != 3 || l.Items[0] != value.Number(2) || l.Items[2] != value.Number(6) {
		t.Fatalf("got %#v", got)
	}
}

func TestEvalFilterTargetKeepsTruthy(t *testing.T) {
	ctx := newCtx()
	body := ast.NewExprOperatorBody(sp(), ast.NewBinaryExpr(sp(), ast.OpGt, ast.NewPipeValue(sp()), num(1)))
	target := ast.NewFilterTarget(sp(), body)
	list := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2), num(3)})
	chain := ast.NewPipeChain(sp(), list, []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := got.(*value.List)
	if !ok || len(l.Items) != 2 {
		t.Fatalf("got %#v", got)
	}
}

func TestEvalMethodCallPrefersDictOwnCallableField(t *testing.T) {
	ctx := newCtx()
	body := block(num(99))
	closure := ast.NewClosure(sp(), nil, body)
	dictLit := ast.NewDictLiteral(sp(), []ast.DictEntry{{Key: "greet", Value: closure}})

	target := ast.NewMethodCallTarget(sp(), "greet", nil)
	chain := ast.NewPipeChain(sp(), dictLit, []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Number(99) {
		t.Errorf("got %#v, want the dict's own callable field to win", got)
	}
}

func TestEvalMethodCallFallsBackToRegistry(t *testing.T) {
	methods := runtime.NewMethodRegistry()
	err := methods.Register("upper", nil, func(recv value.Value, args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return value.String(string(recv.(value.String)) + "!"), nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := runtime.NewContext(runtime.WithMethods(methods))
	target := ast.NewMethodCallTarget(sp(), "upper", nil)
	str := ast.NewStringLiteral(sp(), []ast.StringPart{{Literal: "hi"}})
	chain := ast.NewPipeChain(sp(), str, []ast.PipeTarget{target}, nil)
	got, err := Eval(chain, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.String("hi!") {
		t.Errorf("got %#v", got)
	}
}

func TestEvalDestructureTargetBindsIntoChainScope(t *testing.T) {
	ctx := newCtx()
	pattern := &ast.DestructurePattern{Positional: []ast.DestructureElement{{Name: "a"}, {Name: "b"}}}
	target := ast.NewDestructureTarget(sp(), pattern)
	list := ast.NewListLiteral(sp(), []ast.Expr{num(1), num(2)})
	term := &ast.Terminator{Kind: ast.TermCapture, Name: "unused"}
	chain := ast.NewPipeChain(sp(), list, []ast.PipeTarget{target}, term)
	if _, err := Eval(chain, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := ctx.Scope.Get("a")
	if !ok || a != value.Number(1) {
		t.Fatalf("a = %#v, ok %v", a, ok)
	}
}
