package evaluator

import (
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// setVariableTyped implements spec.md §4.2's monotonic typing rule for a
// `:> $name[:type]` capture: an explicit type annotation must match the
// value, a name already locked in this scope must keep its locked type,
// and a name bound in an outer scope can never be shadowed by a capture
// in an inner one.
func setVariableTyped(scope *runtime.Scope, name string, v value.Value, explicitType string, loc *rillerr.Location) error {
	valueType := value.InferType(v)
	if explicitType != "" {
		want := value.TypeName(explicitType)
		if !value.CheckType(v, want) {
			return rillerr.AssignmentTypeMismatch(name, string(valueType), explicitType, loc)
		}
		valueType = want
	}

	if locked, ok := scope.LockedType(name); ok {
		if locked != valueType {
			return rillerr.LockedTypeMismatch(name, string(locked), string(valueType), loc)
		}
		scope.Define(name, v, locked)
		return nil
	}

	if scope.Has(name) {
		return rillerr.CannotShadow(name, loc)
	}

	scope.Define(name, v, valueType)
	return nil
}
