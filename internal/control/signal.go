// Package control defines the two control-flow signals spec.md §4.6
// describes: break (unwinds to the nearest enclosing loop or collection
// operator) and return (unwinds to the nearest enclosing block or
// closure). Both are modeled as error values rather than panics, since
// Go's ordinary (value, error) return threading already carries them
// across every "suspension point" the evaluator has (host calls,
// map/filter bodies, iterator next() calls) without needing a second
// unwinding mechanism.
package control

import "github.com/rcrsr/rill/internal/value"

// BreakSignal unwinds to the nearest enclosing loop or collection
// operator, which must catch it rather than propagate it further.
type BreakSignal struct {
	Value value.Value
}

func (b *BreakSignal) Error() string { return "break" }

// ReturnSignal unwinds to the nearest enclosing block or closure
// invocation, which must catch it rather than propagate it further.
type ReturnSignal struct {
	Value value.Value
}

func (r *ReturnSignal) Error() string { return "return" }
