// Package rill is the embedding API: the surface a host application
// links against to parse and evaluate Rill scripts, register Go
// functions and methods as host callables, mount extensions, and observe
// evaluation through callbacks.
//
// Modeled on go-dws's pkg/dwscript embedding package: a functional-options
// constructor returning an *Engine, plus RegisterFunction/RegisterMethod
// built on reflection so a host application can hand this package an
// ordinary Go func or method value without writing marshaling code by
// hand. Rill's Eval differs from go-dws's Result{Output, Success} shape:
// Rill has no built-in output stream, so Eval returns the pipe chain's
// final value directly.
package rill

import (
	"time"

	"github.com/rcrsr/rill/internal/evaluator"
	"github.com/rcrsr/rill/internal/hostcall"
	"github.com/rcrsr/rill/internal/parser"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Version is the engine's semantic version, used to build help URLs for
// error values.
const Version = "0.1.0"

// Engine holds the host-function and method registries, timeout, and
// callbacks a script evaluates against. An Engine is safe to reuse
// across many Eval calls but is not safe for concurrent registration and
// evaluation; register everything before the first Eval.
type Engine struct {
	functions             *runtime.FunctionRegistry
	methods               *runtime.MethodRegistry
	timeout               time.Duration
	autoExceptionPatterns []string
	callbacks             runtime.Callbacks
	maxCallStackDepth     int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTimeout sets the per-host-call timeout. Zero (the default) means
// no timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithAutoExceptionPatterns sets the regular expressions matched against
// host-call error messages to decide whether they surface as an
// AUTO_EXCEPTION error value instead of propagating raw.
func WithAutoExceptionPatterns(patterns []string) Option {
	return func(e *Engine) { e.autoExceptionPatterns = patterns }
}

// WithCallbacks installs the observability callbacks an evaluation
// exposes: onCapture, onHostCall, onFunctionReturn, onLogEvent.
func WithCallbacks(cb runtime.Callbacks) Option {
	return func(e *Engine) { e.callbacks = cb }
}

// WithMaxCallStackDepth overrides the call-stack ring buffer's capacity
// used for call-stack extraction on error.
func WithMaxCallStackDepth(n int) Option {
	return func(e *Engine) { e.maxCallStackDepth = n }
}

// New builds an Engine, applying opts in order.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		functions: runtime.NewFunctionRegistry(),
		methods:   runtime.NewMethodRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SetTimeout updates the per-host-call timeout on an already-constructed
// Engine, for hosts that decide the timeout after New (e.g. from a
// loaded config file).
func (e *Engine) SetTimeout(d time.Duration) { e.timeout = d }

// SetCallbacks replaces the observability callbacks on an
// already-constructed Engine.
func (e *Engine) SetCallbacks(cb runtime.Callbacks) { e.callbacks = cb }

// newContext builds the root runtime.Context for one Eval call, wiring
// in everything registered on e so far.
func (e *Engine) newContext() *runtime.Context {
	return runtime.NewContext(
		runtime.WithFunctions(e.functions),
		runtime.WithMethods(e.methods),
		runtime.WithTimeout(e.timeout),
		runtime.WithAutoExceptionPatterns(e.autoExceptionPatterns),
		runtime.WithCallbacks(e.callbacks),
		runtime.WithMaxCallStackDepth(e.maxCallStackDepth),
	)
}

// Eval parses and evaluates src, returning the pipe chain's final value.
// Parse errors and evaluation errors are both returned as error;
// evaluation errors unwrap to a *rillerr.Error when the failure
// originates in Rill's own error taxonomy.
func (e *Engine) Eval(src string) (value.Value, error) {
	doc, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return evaluator.EvalDocument(doc, e.newContext())
}

// EvalWithContext parses and evaluates src against a caller-supplied
// context, for callers that need to thread a pre-built pipe value or
// scope into the run (e.g. a REPL resuming a prior statement's result).
func (e *Engine) EvalWithContext(src string, ctx *runtime.Context) (value.Value, error) {
	doc, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return evaluator.EvalDocument(doc, ctx)
}

// NewContext exposes a root evaluation context wired to this Engine's
// registries and configuration, for callers driving EvalWithContext.
func (e *Engine) NewContext() *runtime.Context {
	return e.newContext()
}

// MountExtension registers every function an extension exposes under
// "namespace::name". funcs declares each function's parameter contract;
// impls supplies the Go implementation for each declared name.
func (e *Engine) MountExtension(namespace string, funcs map[string][]runtime.ParamSpec, impls map[string]runtime.HostFunc) error {
	return hostcall.MountExtension(e.functions, namespace, funcs, impls)
}

// CallStack extracts the frozen call-stack snapshot carried on err, if
// any.
func CallStack(err error) ([]rillerr.Frame, error) {
	return rillerr.ExtractCallStack(err)
}

// HelpURL returns the documentation URL for a Rill error value's
// errorId, using this package's Version.
func HelpURL(errorID string) string {
	return rillerr.HelpURL(errorID, Version)
}
