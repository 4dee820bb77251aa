// Package access implements the structural Value operations spec.md
// §4.7 describes: pattern destructuring, slicing, and spreading. None of
// these need to evaluate sub-expressions — the evaluator resolves every
// embedded expression (slice bounds, nested pattern targets) into plain
// Values first, so this package only ever manipulates already-evaluated
// data.
package access

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// Destructure matches v against pattern, returning every bound name and
// its value (nested patterns flatten into the same map). A `_` skip slot
// binds nothing.
func Destructure(pattern *ast.DestructurePattern, v value.Value, loc *rillerr.Location) (map[string]value.Value, error) {
	bound := make(map[string]value.Value)
	if err := destructureInto(pattern, v, loc, bound); err != nil {
		return nil, err
	}
	return bound, nil
}

func destructureInto(pattern *ast.DestructurePattern, v value.Value, loc *rillerr.Location, bound map[string]value.Value) error {
	if len(pattern.Keyed) > 0 {
		return destructureKeyed(pattern.Keyed, v, loc, bound)
	}
	return destructurePositional(pattern.Positional, v, loc, bound)
}

func destructurePositional(elements []ast.DestructureElement, v value.Value, loc *rillerr.Location, bound map[string]value.Value) error {
	items, err := positionalItems(v, loc)
	if err != nil {
		return err
	}
	if len(items) != len(elements) {
		return rillerr.DestructureSizeMismatch(len(elements), len(items), loc)
	}
	for i, el := range elements {
		switch {
		case el.Nested != nil:
			if err := destructureInto(el.Nested, items[i], loc, bound); err != nil {
				return err
			}
		case el.Name != "":
			bound[el.Name] = items[i]
		default:
			// `_` skip slot: binds nothing.
		}
	}
	return nil
}

func positionalItems(v value.Value, loc *rillerr.Location) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return t.Items, nil
	case *value.Tuple:
		if t.Named {
			return nil, rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
		}
		items := make([]value.Value, t.Len())
		for i := range items {
			items[i], _ = t.At(i)
		}
		return items, nil
	default:
		return nil, rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
	}
}

func destructureKeyed(keys []ast.KeyPattern, v value.Value, loc *rillerr.Location, bound map[string]value.Value) error {
	d, ok := v.(*value.Dict)
	if !ok {
		return rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
	}
	for _, k := range keys {
		fv, ok := d.Get(k.Key)
		if !ok {
			return rillerr.DestructureMissingKey(k.Key, d.Keys(), loc)
		}
		bound[k.Var] = fv
	}
	return nil
}
