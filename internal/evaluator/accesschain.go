package evaluator

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func evalVariable(v *ast.Variable, ctx *runtime.Context) (value.Value, error) {
	cur, ok := ctx.Scope.Get(v.Name)
	if !ok {
		if v.Existence == nil && v.DefaultValue == nil {
			return nil, rillerr.UndefinedVariableErr(v.Name, locOf(v))
		}
		cur, ok = value.Null, false
	}

	found := ok
	var err error
	for _, step := range v.Chain {
		if !found {
			break
		}
		cur, found, err = stepInto(cur, step, ctx)
		if err != nil {
			return nil, err
		}
		cur, err = autoInvokeProperty(cur, ctx, locOf(v))
		if err != nil {
			return nil, err
		}
	}

	if v.Existence != nil {
		if !found {
			return value.Bool(false), nil
		}
		if v.Existence.TypeName != "" {
			return value.Bool(value.CheckType(cur, value.TypeName(v.Existence.TypeName))), nil
		}
		return value.Bool(true), nil
	}

	if (!found || cur == value.Null) && v.DefaultValue != nil {
		return Eval(v.DefaultValue, ctx)
	}
	if !found {
		return value.Null, nil
	}
	return cur, nil
}

// autoInvokeProperty implements spec.md Glossary's property-style
// auto-invoke: a zero-parameter callable bound to a dict, reached as a
// chain step, is called automatically rather than returned as a value.
func autoInvokeProperty(v value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	c, ok := v.(value.Callable)
	if !ok || !c.IsProperty() {
		return v, nil
	}
	return Invoke(c, value.NewPositionalTuple(nil), ctx, loc)
}

func stepInto(cur value.Value, step ast.AccessStep, ctx *runtime.Context) (value.Value, bool, error) {
	if step.Bracket != nil {
		idx, err := Eval(step.Bracket.Index, ctx)
		if err != nil {
			return nil, false, err
		}
		return bracketInto(cur, idx)
	}
	return fieldInto(cur, step.Field, ctx)
}

func bracketInto(cur, idx value.Value) (value.Value, bool, error) {
	n, ok := idx.(value.Number)
	if !ok {
		return value.Null, false, nil
	}
	i := int(n)
	switch t := cur.(type) {
	case *value.List:
		if i < 0 {
			i += len(t.Items)
		}
		if i < 0 || i >= len(t.Items) {
			return value.Null, false, nil
		}
		return t.Items[i], true, nil
	case *value.Tuple:
		v, ok := t.At(i)
		if !ok {
			return value.Null, false, nil
		}
		return v, true, nil
	case value.String:
		runes := []rune(string(t))
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return value.Null, false, nil
		}
		return value.String(string(runes[i])), true, nil
	default:
		return value.Null, false, nil
	}
}

func fieldInto(cur value.Value, f *ast.FieldAccess, ctx *runtime.Context) (value.Value, bool, error) {
	key, ok, err := resolveFieldKey(cur, f, ctx)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return value.Null, false, nil
	}
	return lookupKey(cur, key)
}

func resolveFieldKey(cur value.Value, f *ast.FieldAccess, ctx *runtime.Context) (string, bool, error) {
	switch f.Kind {
	case ast.FieldLiteral:
		return f.Name, true, nil
	case ast.FieldVariableNamed:
		v, ok := ctx.Scope.Get(f.VariableName)
		if !ok {
			return "", false, nil
		}
		s, ok := v.(value.String)
		if !ok {
			return "", false, nil
		}
		return string(s), true, nil
	case ast.FieldAlternatives:
		for _, alt := range f.Alternatives {
			if _, found, _ := lookupKey(cur, alt); found {
				return alt, true, nil
			}
		}
		return "", false, nil
	case ast.FieldComputed:
		v, err := Eval(f.Expr, ctx)
		if err != nil {
			return "", false, err
		}
		return keyFromValue(v)
	case ast.FieldBlock:
		v, err := evalBlock(f.Block, ctx)
		if err != nil {
			return "", false, err
		}
		return keyFromValue(v)
	default:
		return "", false, nil
	}
}

func keyFromValue(v value.Value) (string, bool, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", false, nil
	}
	return string(s), true, nil
}

func lookupKey(cur value.Value, key string) (value.Value, bool, error) {
	switch t := cur.(type) {
	case *value.Dict:
		v, ok := t.Get(key)
		return v, ok, nil
	case *value.Tuple:
		v, ok := t.Get(key)
		return v, ok, nil
	default:
		return value.Null, false, nil
	}
}
