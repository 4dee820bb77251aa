// Package collect implements the element-expansion and bounded-execution
// machinery the collection operators (each/map/fold/filter, spec.md
// §4.6) share. It never evaluates an ast.Expr itself — every per-element
// body invocation is handed in as a callback, so this package stays free
// of an import cycle with internal/evaluator.
package collect

import (
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// NextFunc invokes a dict's `next` callable, returning the iterator's
// next state dict.
type NextFunc func(next value.Callable) (*value.Dict, error)

// Expand materializes v into a slice of elements a collection operator
// can walk: a list's items, a string's runes (each a one-rune String), a
// plain dict's entries (as a 2-entry named tuple {key, value}, sorted by
// key for determinism), or an iterator dict drained via callNext up to
// limit. Anything else is a type error.
func Expand(v value.Value, limit int, callNext NextFunc, loc *rillerr.Location) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return append([]value.Value(nil), t.Items...), nil
	case value.String:
		runes := []rune(string(t))
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.String(string(r))
		}
		return out, nil
	case *value.Dict:
		if value.IsIterator(t) {
			return drainIterator(t, limit, callNext, loc)
		}
		keys := t.SortedKeys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			fv, _ := t.Get(k)
			out[i] = value.NewNamedTuple([]value.TupleEntry{{Name: "key", Value: value.String(k)}, {Name: "value", Value: fv}})
		}
		return out, nil
	default:
		return nil, rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
	}
}

func drainIterator(d *value.Dict, limit int, callNext NextFunc, loc *rillerr.Location) ([]value.Value, error) {
	var out []value.Value
	cur := d
	for i := 0; i < limit; i++ {
		doneVal, _ := cur.Get("done")
		if b, ok := doneVal.(value.Bool); ok && bool(b) {
			return out, nil
		}
		v, _ := cur.Get("value")
		out = append(out, v)

		nextVal, _ := cur.Get("next")
		nextFn, ok := nextVal.(value.Callable)
		if !ok {
			return out, nil
		}
		state, err := callNext(nextFn)
		if err != nil {
			return nil, err
		}
		cur = state
	}
	return nil, rillerr.LimitExceededErr(limit, limit, loc)
}
