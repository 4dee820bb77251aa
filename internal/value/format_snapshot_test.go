package value

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFormatValueSnapshot pins FormatValue's rendering of each value kind
// against a golden file, so a rendering regression shows up as a diff
// instead of a silent behavior change (spec.md §8's "two deeply-equal
// values always format identically" property, exercised concretely).
func TestFormatValueSnapshot(t *testing.T) {
	list := NewList([]Value{Number(1), String("two"), Bool(true)})
	dict := NewDict()
	dict.Set("name", String("rill"))
	dict.Set("count", Number(3))
	tuple := NewNamedTuple([]TupleEntry{{Name: "x", Value: Number(1)}, {Name: "y", Value: Number(2)}})
	posTuple := NewPositionalTuple([]Value{Number(1), Number(2), Number(3)})

	cases := map[string]Value{
		"null":           Null,
		"bool_true":      Bool(true),
		"bool_false":     Bool(false),
		"number_integer": Number(42),
		"number_decimal": Number(3.14),
		"string":         String("hello"),
		"list":           list,
		"dict":           dict,
		"named_tuple":    tuple,
		"positional_tuple": posTuple,
	}

	for name, v := range cases {
		snaps.MatchSnapshot(t, name, FormatValue(v))
	}
}
