package value

// CallableVariant distinguishes the three callable flavors of spec.md
// §4.3. This is a closed union: a new callable kind needs a new tag here
// and a matching case everywhere a CallableVariant is switched on.
type CallableVariant int

const (
	// CallableScript is a parsed closure with a defining scope.
	CallableScript CallableVariant = iota
	// CallableRuntime is a runtime-provided native function.
	CallableRuntime
	// CallableApplication is a host-application-provided native function,
	// identical in shape to CallableRuntime but distinguished for
	// introspection.
	CallableApplication
)

// Callable is implemented by every callable value. It lives in this
// package, rather than internal/callable, so that Value (and the
// dict/deepEquals/format logic that must recognize a closure without
// knowing its concrete shape) never needs to import the callable package
// back — the callable package imports value, not the reverse.
type Callable interface {
	Value
	Variant() CallableVariant
	// IsProperty reports whether this is a zero-parameter, property-style
	// callable (spec.md Glossary).
	IsProperty() bool
	// BoundDict returns the dict this callable was rebound to when it
	// became a dict entry, or nil if it was never bound. It is a weak
	// back-reference: implementations must not traverse it during
	// equality or formatting (spec.md §9).
	BoundDict() *Dict
	// Rebind returns a copy of this callable bound to d. Spec.md §4.3
	// requires BoundDict be set exactly once; callers only invoke Rebind
	// when constructing a dict literal's callable-valued entries.
	Rebind(d *Dict) Callable
	// Equal implements the closed-form equality spec.md §4.1 requires for
	// script callables (shared defining scope, identical param shapes,
	// structurally identical bodies) and reference equality for
	// runtime/application callables. Delegated to the concrete type
	// because only internal/callable knows a script callable's shape.
	Equal(other Callable) bool
}
