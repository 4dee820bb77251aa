package runtime

import (
	"fmt"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// ParamSpec describes one declared parameter of a host function or
// method, as spec.md §4.8 requires: a name, an expected type (TypeAny
// matches anything), whether it's required, and an optional default
// value used when the caller omits it.
type ParamSpec struct {
	Name         string
	Type         value.TypeName
	Required     bool
	DefaultValue value.Value
}

// HostFunc is the Go shape a host function takes. It receives its
// already-validated arguments in declaration order, the active Context,
// and the call-site location for error attribution. Long-running work
// should watch ctx.Signal() and return promptly if it fires; the
// host-call dispatcher races this against ctx.Timeout() in its own
// goroutine rather than the function managing that itself.
type HostFunc func(args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error)

// MethodFunc is the Go shape a receiver method takes: the receiver value,
// then the same contract as HostFunc.
type MethodFunc func(recv value.Value, args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error)

// HostFunction is one registered host function: its declared parameter
// contract plus the Go function implementing it.
type HostFunction struct {
	Name   string
	Params []ParamSpec
	Fn     HostFunc
}

// Method is one registered receiver method.
type Method struct {
	Name   string
	Params []ParamSpec
	Fn     MethodFunc
}

func validateParams(params []ParamSpec) error {
	for _, p := range params {
		if !p.Required && p.DefaultValue != nil && !value.CheckType(p.DefaultValue, p.Type) {
			return rillerr.InvalidDefaultValue(p.Name, string(p.Type), string(value.InferType(p.DefaultValue)))
		}
	}
	return nil
}

// FunctionRegistry maps extension-qualified names ("ns::name", or a bare
// name for core builtins) to their HostFunction (spec.md §4.8, §6).
type FunctionRegistry struct {
	funcs map[string]*HostFunction
}

// NewFunctionRegistry creates an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{funcs: make(map[string]*HostFunction)}
}

// Register adds a host function under name, validating any declared
// default values against their declared types at registration time
// rather than at every call site.
func (r *FunctionRegistry) Register(name string, params []ParamSpec, fn HostFunc) error {
	if err := validateParams(params); err != nil {
		return err
	}
	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("host function %q already registered", name)
	}
	r.funcs[name] = &HostFunction{Name: name, Params: params, Fn: fn}
	return nil
}

// Lookup returns the function registered under name, if any.
func (r *FunctionRegistry) Lookup(name string) (*HostFunction, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Names returns the registered function names in no particular order.
func (r *FunctionRegistry) Names() []string {
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	return out
}

// MethodRegistry maps method names to their Method (spec.md §4.5
// dot-chain access steps that resolve to a receiver method rather than a
// field).
type MethodRegistry struct {
	methods map[string]*Method
}

// NewMethodRegistry creates an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]*Method)}
}

// Register adds a method under name.
func (r *MethodRegistry) Register(name string, params []ParamSpec, fn MethodFunc) error {
	if err := validateParams(params); err != nil {
		return err
	}
	if _, exists := r.methods[name]; exists {
		return fmt.Errorf("method %q already registered", name)
	}
	r.methods[name] = &Method{Name: name, Params: params, Fn: fn}
	return nil
}

// Lookup returns the method registered under name, if any.
func (r *MethodRegistry) Lookup(name string) (*Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}
