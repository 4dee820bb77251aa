package rillerr

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestErrorMessageSnapshot pins the formatted message of each error kind
// against a golden file (spec.md §7), so a change to the human-readable
// error text is a visible diff rather than a test that silently keeps
// passing.
func TestErrorMessageSnapshot(t *testing.T) {
	loc := &Location{Line: 3, Column: 7, Offset: 20}

	cases := map[string]error{
		"undefined_variable": UndefinedVariableErr("x", loc),
		"undefined_function": UndefinedFunctionErr("doThing", loc),
		"type_error":         New(TypeError, "expected number, got string", loc, nil),
		"timeout":            TimeoutErr("slowCall", int64(500), loc),
		"abort":              AbortErr(loc),
		"no_location":        New(LimitExceeded, "iteration limit exceeded", nil, nil),
	}

	for name, err := range cases {
		snaps.MatchSnapshot(t, name, err.Error())
	}
}
