// Package evaluator walks the parsed ast.Document and produces Values,
// implementing spec.md §4: pipe chains, primaries, operators, access
// chains, control flow, and collection operators. It is the one package
// that ties internal/value, internal/ast, internal/runtime,
// internal/callable, internal/control, internal/collect,
// internal/access, and internal/hostcall together.
package evaluator

import (
	"fmt"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// EvalDocument runs every top-level statement in order against ctx,
// returning the last statement's value (spec.md §3). Annotations attach
// to the statement they precede for the statement's duration only.
func EvalDocument(doc *ast.Document, ctx *runtime.Context) (value.Value, error) {
	return evalStatements(doc.Statements, ctx)
}

func evalStatements(stmts []*ast.Statement, ctx *runtime.Context) (value.Value, error) {
	result := value.Value(value.Null)
	for _, stmt := range stmts {
		v, err := evalStatement(stmt, ctx)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalStatement(stmt *ast.Statement, ctx *runtime.Context) (value.Value, error) {
	if len(stmt.Annotations) > 0 {
		frame := make(map[string]value.Value)
		for _, ann := range stmt.Annotations {
			for _, arg := range ann.Args {
				if arg.Spread {
					v, err := Eval(arg.Value, ctx)
					if err != nil {
						return nil, err
					}
					if d, ok := v.(*value.Dict); ok {
						for _, k := range d.Keys() {
							fv, _ := d.Get(k)
							frame[k] = fv
						}
					}
					continue
				}
				v, err := Eval(arg.Value, ctx)
				if err != nil {
					return nil, err
				}
				frame[arg.Name] = v
			}
		}
		ctx.PushAnnotations(frame)
		defer ctx.PopAnnotations()
	}
	return Eval(stmt.Expr, ctx)
}

// Eval dispatches on the concrete type of expr.
func Eval(expr ast.Expr, ctx *runtime.Context) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.PipeChain:
		return evalPipeChain(e, ctx)
	case *ast.NumberLiteral:
		return value.Number(e.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(e.Value), nil
	case *ast.NullLiteral:
		return value.Null, nil
	case *ast.StringLiteral:
		return evalStringLiteral(e, ctx)
	case *ast.TupleLiteral:
		return evalTupleLiteral(e, ctx)
	case *ast.ListLiteral:
		return evalListLiteral(e, ctx)
	case *ast.DictLiteral:
		return evalDictLiteral(e, ctx)
	case *ast.Closure:
		return evalClosure(e, ctx)
	case *ast.Variable:
		return evalVariable(e, ctx)
	case *ast.PipeValue:
		return ctx.PipeValue, nil
	case *ast.Accumulator:
		v, _ := ctx.Scope.Get(accumulatorName)
		if v == nil {
			return value.Null, nil
		}
		return v, nil
	case *ast.GroupedExpr:
		return Eval(e.Inner, ctx)
	case *ast.TypeAssertion:
		return evalTypeAssertion(e, ctx)
	case *ast.TypeCheck:
		return evalTypeCheck(e, ctx)
	case *ast.Spread:
		return evalSpread(e, ctx)
	case *ast.BinaryExpr:
		return evalBinaryExpr(e, ctx)
	case *ast.UnaryExpr:
		return evalUnaryExpr(e, ctx)
	case *ast.HostCall:
		return evalHostCall(e.Name, e.Args, ctx, locOf(e))
	case *ast.ClosureCall:
		return evalClosureCall(e.Callee, e.Args, ctx, locOf(e))
	case *ast.MethodCall:
		return evalMethodCall(e.Receiver, e.Method, e.Args, ctx, locOf(e))
	case *ast.Conditional:
		return evalConditional(e, ctx)
	case *ast.Loop:
		return evalLoop(e, ctx)
	case *ast.DoWhile:
		return evalDoWhile(e, ctx)
	case *ast.Block:
		return evalBlock(e, ctx)
	default:
		return nil, rillerr.New(rillerr.TypeError, fmt.Sprintf("unhandled expression node %T", expr), locOf(expr), nil)
	}
}

// accumulatorName is the reserved scope key each/fold bind the current
// accumulator under so `$@` can resolve through ordinary variable
// lookup (spec.md §4.6).
const accumulatorName = "$@"

func locOf(n ast.Node) *rillerr.Location {
	sp := n.Span().Start
	return &rillerr.Location{Line: sp.Line, Column: sp.Column, Offset: sp.Offset}
}
