package evaluator

import (
	"errors"

	"github.com/rcrsr/rill/internal/access"
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/control"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalConditional(c *ast.Conditional, ctx *runtime.Context) (value.Value, error) {
	cond := ctx.PipeValue
	if c.Condition != nil {
		v, err := Eval(c.Condition, ctx)
		if err != nil {
			return nil, err
		}
		cond = v
	}
	b, ok := cond.(value.Bool)
	if !ok {
		return nil, rillerr.BooleanExpected(locOf(c))
	}
	if bool(b) {
		return evalBlock(c.Then, ctx)
	}
	if c.Else != nil {
		return evalBlock(c.Else, ctx)
	}
	return value.Null, nil
}

func evalBlock(b *ast.Block, ctx *runtime.Context) (value.Value, error) {
	return evalBlockInScope(b, ctx.Child())
}

// evalBlockInScope runs a block's statements directly against scopeCtx
// instead of spawning a fresh child, so callers that need one scope to
// span several evaluations of the same block (loop bodies accumulating
// state across iterations) can reuse it.
func evalBlockInScope(b *ast.Block, scopeCtx *runtime.Context) (value.Value, error) {
	result, err := evalStatements(b.Statements, scopeCtx)
	if err != nil {
		var ret *control.ReturnSignal
		if errors.As(err, &ret) {
			return ret.Value, nil
		}
		return nil, err
	}
	return result, nil
}

func evalDoWhile(dw *ast.DoWhile, ctx *runtime.Context) (value.Value, error) {
	// One scope spans every iteration so a `:>` capture in the body
	// (e.g. an accumulator) is visible to the condition and the next
	// pass, rather than being discarded at the end of each iteration.
	iterCtx := ctx.Child()
	result := value.Value(value.Null)
	for {
		v, err := evalBlockInScope(dw.Body, iterCtx)
		if err != nil {
			var brk *control.BreakSignal
			if errors.As(err, &brk) {
				if brk.Value != nil {
					return brk.Value, nil
				}
				return result, nil
			}
			return nil, err
		}
		result = v

		cv, err := Eval(dw.Condition, iterCtx)
		if err != nil {
			return nil, err
		}
		b, ok := cv.(value.Bool)
		if !ok {
			return nil, rillerr.BooleanExpected(locOf(dw))
		}
		if !bool(b) {
			return result, nil
		}
	}
}

// evalLoop dispatches the unified `@` loop on the runtime type of its
// input (spec.md §4.5): a bool repeats the body while true (like a
// while loop with no separate condition expression, the body's own last
// statement deciding continuation via the pipe value), a list/string/
// dict/iterator walks each element with `$` bound to it, and anything
// else runs the body exactly once with `$` bound to the input.
func evalLoop(l *ast.Loop, ctx *runtime.Context) (value.Value, error) {
	input := ctx.PipeValue
	if l.Input != nil {
		v, err := Eval(l.Input, ctx)
		if err != nil {
			return nil, err
		}
		input = v
	}

	switch t := input.(type) {
	case value.Bool:
		return loopWhile(bool(t), l, ctx)
	case *value.List, value.String, *value.Dict:
		return loopOverCollection(input, l, ctx)
	default:
		child := ctx.WithPipeValue(input)
		v, err := evalBlockCatchingBreak(l.Body, child)
		if brk, ok := v.(breakResult); ok {
			if brk.value != nil {
				return brk.value, nil
			}
			return value.Null, nil
		}
		return v, err
	}
}

func loopWhile(initial bool, l *ast.Loop, ctx *runtime.Context) (value.Value, error) {
	// See evalDoWhile: one scope spans every iteration so a capture in
	// the body can be read back as the next iteration's continuation
	// value.
	iterCtx := ctx.Child()
	cond := initial
	result := value.Value(value.Null)
	limit := ctx.IterationLimit()
	iterations := 0
	for cond {
		if iterations >= limit {
			return nil, rillerr.LimitExceededErr(limit, iterations, locOf(l))
		}
		iterations++
		v, err := evalBlockInScope(l.Body, iterCtx)
		if err != nil {
			var brk *control.BreakSignal
			if errors.As(err, &brk) {
				if brk.Value != nil {
					return brk.Value, nil
				}
				return result, nil
			}
			return nil, err
		}
		result = v
		b, ok := v.(value.Bool)
		if !ok {
			return nil, rillerr.BooleanExpected(locOf(l))
		}
		cond = bool(b)
	}
	return result, nil
}

func loopOverCollection(input value.Value, l *ast.Loop, ctx *runtime.Context) (value.Value, error) {
	elements, err := expandCollection(input, ctx, locOf(l))
	if err != nil {
		return nil, err
	}
	result := value.Value(value.Null)
	for _, el := range elements {
		child := ctx.WithPipeValue(el)
		v, err := evalBlockCatchingBreak(l.Body, child)
		if err != nil {
			return nil, err
		}
		if brk, ok := v.(breakResult); ok {
			if brk.value != nil {
				return brk.value, nil
			}
			return result, nil
		}
		result = v
	}
	return result, nil
}

// breakResult distinguishes "the loop was told to stop" from an ordinary
// body value, since both flow through the same return slot.
type breakResult struct{ value value.Value }

func (breakResult) Kind() value.Kind { return value.KindNull }
func (breakResult) String() string  { return "break" }

func evalBlockCatchingBreak(b *ast.Block, ctx *runtime.Context) (value.Value, error) {
	v, err := evalBlock(b, ctx)
	if err != nil {
		var brk *control.BreakSignal
		if errors.As(err, &brk) {
			return breakResult{value: brk.Value}, nil
		}
		return nil, err
	}
	return v, nil
}

func expandCollection(v value.Value, ctx *runtime.Context, loc *rillerr.Location) ([]value.Value, error) {
	limit := ctx.IterationLimit()
	return collectExpand(v, limit, ctx, loc)
}

func evalDestructure(pattern *ast.DestructurePattern, v value.Value, ctx *runtime.Context, loc *rillerr.Location) error {
	bound, err := access.Destructure(pattern, v, loc)
	if err != nil {
		return err
	}
	for name, bv := range bound {
		ctx.Scope.Define(name, bv, value.InferType(bv))
	}
	return nil
}
