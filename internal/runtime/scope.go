// Package runtime implements spec.md §3/§4.2: the chained Scope, the
// per-execution Context (pipe value, annotation stack, cancellation,
// bounded call stack, observability callbacks), and the monotonic
// variable-typing rules assignment enforces.
//
// Scope is modeled on go-dws's interp.Environment (store + outer link,
// Get walks parents, writes land locally), generalized with a parallel
// variableTypes table to carry spec.md's per-scope type-locking that
// DWScript's statically-typed Environment has no equivalent for, and with
// case-sensitive names since, unlike DWScript, Rill treats names that
// differ only in case as distinct identifiers.
package runtime

import "github.com/rcrsr/rill/internal/value"

// Scope holds one level of the variable chain: the bindings created in
// this scope, the type each name was locked to on first assignment, and a
// link to the parent scope reads fall through to.
type Scope struct {
	variables     map[string]value.Value
	variableTypes map[string]value.TypeName
	parent        *Scope
}

// NewScope creates a scope whose parent is parent (nil for a root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables:     make(map[string]value.Value),
		variableTypes: make(map[string]value.TypeName),
		parent:        parent,
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Get walks the scope chain outward, returning the first binding found.
func (s *Scope) Get(name string) (value.Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name is bound anywhere in the scope chain.
func (s *Scope) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// HasLocal reports whether name is bound directly in this scope, without
// walking to parents.
func (s *Scope) HasLocal(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// LockedType returns the type name locked to name in this scope, if any.
func (s *Scope) LockedType(name string) (value.TypeName, bool) {
	t, ok := s.variableTypes[name]
	return t, ok
}

// Define binds name to v directly in this scope, locking its type to
// lockedType without running the assignment-time shadow/lock checks
// spec.md §4.2 describes for `:> $name` captures. This is the primitive
// closure parameter binding uses (spec.md §4.3): parameter binding is
// specified as its own procedure, separate from setVariableTyped.
func (s *Scope) Define(name string, v value.Value, lockedType value.TypeName) {
	s.variables[name] = v
	s.variableTypes[name] = lockedType
}

// Range calls f for every binding directly in this scope (not parents).
// Iteration order is unspecified.
func (s *Scope) Range(f func(name string, v value.Value)) {
	for k, v := range s.variables {
		f(k, v)
	}
}
