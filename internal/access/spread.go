package access

import (
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// Spread converts a list into a positional tuple or a dict into a named
// tuple (spec.md §4.4); any other kind is a type error.
func Spread(v value.Value, loc *rillerr.Location) (*value.Tuple, error) {
	switch t := v.(type) {
	case *value.List:
		return value.NewPositionalTuple(t.Items), nil
	case *value.Dict:
		entries := make([]value.TupleEntry, 0, t.Len())
		for _, k := range t.Keys() {
			fv, _ := t.Get(k)
			entries = append(entries, value.TupleEntry{Name: k, Value: fv})
		}
		return value.NewNamedTuple(entries), nil
	default:
		return nil, rillerr.SpreadTypeError(string(value.InferType(v)), loc)
	}
}
