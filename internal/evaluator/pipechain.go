package evaluator

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/control"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalPipeChain(p *ast.PipeChain, ctx *runtime.Context) (value.Value, error) {
	head, err := Eval(p.Head, ctx)
	if err != nil {
		return nil, err
	}
	// The chain's own scope is shared across every target (a destructure
	// target binds names later targets and the terminator can see); only
	// PipeValue threads forward step to step.
	cur := ctx.WithPipeValue(head)

	for _, target := range p.Targets {
		v, err := evalPipeTarget(target, cur)
		if err != nil {
			return nil, err
		}
		cur = cur.WithPipeValue(v)
	}

	if p.Terminator == nil {
		return cur.PipeValue, nil
	}

	switch p.Terminator.Kind {
	case ast.TermBreak:
		return nil, &control.BreakSignal{Value: cur.PipeValue}
	case ast.TermReturn:
		return nil, &control.ReturnSignal{Value: cur.PipeValue}
	case ast.TermCapture:
		if err := setVariableTyped(cur.Scope, p.Terminator.Name, cur.PipeValue, p.Terminator.TypeName, locOf(p)); err != nil {
			return nil, err
		}
		if cb := cur.Callbacks().OnCapture; cb != nil {
			cb(runtime.CaptureEvent{Name: p.Terminator.Name, Value: value.FormatValue(cur.PipeValue)})
		}
		return cur.PipeValue, nil
	default:
		return cur.PipeValue, nil
	}
}
