package evaluator

import (
	"strings"

	"github.com/rcrsr/rill/internal/access"
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/callable"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalStringLiteral(s *ast.StringLiteral, ctx *runtime.Context) (value.Value, error) {
	var b strings.Builder
	// The pipe value is preserved across interpolated expressions
	// (spec.md §4.4): each part evaluates against the same ctx.PipeValue
	// the literal started with, not a value threaded part-to-part.
	for _, part := range s.Parts {
		if part.Expr == nil {
			b.WriteString(part.Literal)
			continue
		}
		v, err := Eval(part.Expr, ctx)
		if err != nil {
			return nil, err
		}
		b.WriteString(value.FormatValue(v))
	}
	return value.String(b.String()), nil
}

func evalTupleLiteral(t *ast.TupleLiteral, ctx *runtime.Context) (value.Value, error) {
	if len(t.Entries) == 0 {
		return value.NewPositionalTuple(nil), nil
	}
	named := t.Entries[0].Name != ""
	entries := make([]value.TupleEntry, len(t.Entries))
	for i, e := range t.Entries {
		v, err := Eval(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		entries[i] = value.TupleEntry{Name: e.Name, Value: v}
	}
	if named {
		return value.NewNamedTuple(entries), nil
	}
	vals := make([]value.Value, len(entries))
	for i, e := range entries {
		vals[i] = e.Value
	}
	return value.NewPositionalTuple(vals), nil
}

func evalListLiteral(l *ast.ListLiteral, ctx *runtime.Context) (value.Value, error) {
	items := make([]value.Value, len(l.Elements))
	for i, el := range l.Elements {
		v, err := Eval(el, ctx)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewList(items), nil
}

func evalDictLiteral(d *ast.DictLiteral, ctx *runtime.Context) (value.Value, error) {
	dict := value.NewDict()
	for _, e := range d.Entries {
		v, err := Eval(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		if c, ok := v.(value.Callable); ok {
			v = c.Rebind(dict)
		}
		dict.Set(e.Key, v)
	}
	return dict, nil
}

func evalClosure(c *ast.Closure, ctx *runtime.Context) (value.Value, error) {
	params := make([]callable.Param, len(c.Params))
	for i, p := range c.Params {
		cp := callable.Param{Name: p.Name, Type: paramType(p.TypeName)}
		if p.DefaultValue != nil {
			dv, err := Eval(p.DefaultValue, ctx)
			if err != nil {
				return nil, err
			}
			cp.HasDefault = true
			cp.Default = dv
		}
		params[i] = cp
	}
	return callable.NewScriptCallable(params, c.Body, ctx.Scope), nil
}

func paramType(name string) value.TypeName {
	if name == "" {
		return value.TypeAny
	}
	return value.TypeName(name)
}

func evalTypeAssertion(t *ast.TypeAssertion, ctx *runtime.Context) (value.Value, error) {
	v, err := resolveAssertionOperand(t.Expr, ctx)
	if err != nil {
		return nil, err
	}
	want := value.TypeName(t.TypeName)
	if !value.CheckType(v, want) {
		return nil, rillerr.TypeAssertionFailed(t.TypeName, string(value.InferType(v)), locOf(t))
	}
	return v, nil
}

func evalTypeCheck(t *ast.TypeCheck, ctx *runtime.Context) (value.Value, error) {
	v, err := resolveAssertionOperand(t.Expr, ctx)
	if err != nil {
		return nil, err
	}
	return value.Bool(value.CheckType(v, value.TypeName(t.TypeName))), nil
}

func resolveAssertionOperand(expr ast.Expr, ctx *runtime.Context) (value.Value, error) {
	if expr == nil {
		return ctx.PipeValue, nil
	}
	return Eval(expr, ctx)
}

func evalSpread(s *ast.Spread, ctx *runtime.Context) (value.Value, error) {
	v, err := Eval(s.Expr, ctx)
	if err != nil {
		return nil, err
	}
	return access.Spread(v, locOf(s))
}
