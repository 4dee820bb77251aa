// Package callable implements the three callable variants spec.md §4.3
// describes: script closures (an ast.Closure plus the scope it closed
// over), and runtime/application callables (native Go functions exposed
// through internal/runtime's HostFunc/MethodFunc contract). It imports
// internal/value, internal/ast, and internal/runtime; nothing in those
// packages imports this one back, which is why value.Callable lives in
// internal/value rather than here (see that file's doc comment).
package callable

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Param is a script closure's bound parameter contract: its declared
// type (value.TypeAny when untyped) and its default value, already
// evaluated at closure-creation time against the defining scope
// (spec.md §4.3 — default-value expressions are not re-evaluated per
// call).
type Param struct {
	Name       string
	Type       value.TypeName
	HasDefault bool
	Default    value.Value
}

// ScriptCallable is a parsed closure bound to the scope it was created
// in. Grounded on go-dws's closure/lambda value, which likewise pairs an
// AST body with a captured environment for late-bound execution.
type ScriptCallable struct {
	params        []Param
	body          *ast.Block
	definingScope *runtime.Scope
	bound         *value.Dict
}

// NewScriptCallable builds a ScriptCallable. params' Default values must
// already be evaluated.
func NewScriptCallable(params []Param, body *ast.Block, definingScope *runtime.Scope) *ScriptCallable {
	return &ScriptCallable{params: params, body: body, definingScope: definingScope}
}

// Params returns the closure's declared parameter contract.
func (s *ScriptCallable) Params() []Param { return s.params }

// Body returns the closure's statement block.
func (s *ScriptCallable) Body() *ast.Block { return s.body }

// DefiningScope returns the scope the closure closed over, which a call
// binds a fresh child scope against (spec.md §4.3).
func (s *ScriptCallable) DefiningScope() *runtime.Scope { return s.definingScope }

func (s *ScriptCallable) Kind() value.Kind  { return value.KindClosure }
func (s *ScriptCallable) String() string    { return "<closure>" }
func (s *ScriptCallable) Variant() value.CallableVariant { return value.CallableScript }
func (s *ScriptCallable) IsProperty() bool  { return len(s.params) == 0 }
func (s *ScriptCallable) BoundDict() *value.Dict { return s.bound }

// Rebind returns a copy of s bound to d, per spec.md §4.3's "bound
// exactly once when it becomes a dict entry" rule.
func (s *ScriptCallable) Rebind(d *value.Dict) value.Callable {
	ns := *s
	ns.bound = d
	return &ns
}

// Equal implements spec.md §4.1's closed-form closure equality: the same
// defining scope, the same parameter shapes, and the same body (by
// identity — two closures parsed from identical source text are still
// distinct closures, since spec.md draws the line at structural sharing,
// not textual equality).
func (s *ScriptCallable) Equal(other value.Callable) bool {
	o, ok := other.(*ScriptCallable)
	if !ok {
		return false
	}
	if s.body != o.body || s.definingScope != o.definingScope {
		return false
	}
	if len(s.params) != len(o.params) {
		return false
	}
	for i, p := range s.params {
		if p.Name != o.params[i].Name || p.Type != o.params[i].Type {
			return false
		}
	}
	return true
}

// nativeCallable is the shared shape of RuntimeCallable and
// ApplicationCallable: a named, already-Go-typed function with no AST
// body to walk. Distinguishing the two variants is for introspection
// only (spec.md §4.3); invocation is identical.
type nativeCallable struct {
	name     string
	params   []Param
	property bool
	bound    *value.Dict
}

func (n *nativeCallable) Kind() value.Kind  { return value.KindClosure }
func (n *nativeCallable) String() string    { return "<native:" + n.name + ">" }
func (n *nativeCallable) IsProperty() bool  { return n.property }
func (n *nativeCallable) BoundDict() *value.Dict { return n.bound }
func (n *nativeCallable) Params() []Param   { return n.params }
func (n *nativeCallable) Name() string      { return n.name }

// RuntimeCallable wraps a HostFunc registered by the Rill runtime itself
// (core builtins). Grounded on go-dws's builtin-function value wrapper.
type RuntimeCallable struct {
	nativeCallable
	Fn runtime.HostFunc
}

// NewRuntimeCallable builds a RuntimeCallable.
func NewRuntimeCallable(name string, params []Param, property bool, fn runtime.HostFunc) *RuntimeCallable {
	return &RuntimeCallable{nativeCallable: nativeCallable{name: name, params: params, property: property}, Fn: fn}
}

func (r *RuntimeCallable) Variant() value.CallableVariant { return value.CallableRuntime }

func (r *RuntimeCallable) Rebind(d *value.Dict) value.Callable {
	nr := *r
	nr.bound = d
	return &nr
}

func (r *RuntimeCallable) Equal(other value.Callable) bool {
	o, ok := other.(*RuntimeCallable)
	return ok && o == r
}

// ApplicationCallable wraps a host-application-provided function
// (registered via the embedding API). Identical to RuntimeCallable in
// every way except the variant tag, so host code can distinguish "my own
// function" from a core builtin during introspection.
type ApplicationCallable struct {
	nativeCallable
	Fn runtime.HostFunc
}

// NewApplicationCallable builds an ApplicationCallable.
func NewApplicationCallable(name string, params []Param, property bool, fn runtime.HostFunc) *ApplicationCallable {
	return &ApplicationCallable{nativeCallable: nativeCallable{name: name, params: params, property: property}, Fn: fn}
}

func (a *ApplicationCallable) Variant() value.CallableVariant { return value.CallableApplication }

func (a *ApplicationCallable) Rebind(d *value.Dict) value.Callable {
	na := *a
	na.bound = d
	return &na
}

func (a *ApplicationCallable) Equal(other value.Callable) bool {
	o, ok := other.(*ApplicationCallable)
	return ok && o == a
}
