package runtime

import (
	"sync"
	"time"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// shared holds everything that stays constant across the lifetime of one
// evaluation: registries, cancellation, timeouts, the call stack, and the
// annotation stack. Context values copy cheaply because only this pointer
// is shared; Scope and PipeValue are per-Context.
type shared struct {
	Functions             *FunctionRegistry
	Methods               *MethodRegistry
	Signal                *Signal
	Timeout               time.Duration
	AutoExceptionPatterns []string
	Callbacks             Callbacks
	MaxCallStackDepth     int

	mu          sync.Mutex
	callStack   *callStack
	annotations *annotationStack
}

// Context is the per-evaluation-node handle threaded through the
// evaluator: the implicit pipe value, the active Scope, and a pointer to
// the state shared across the whole run (spec.md §3).
type Context struct {
	sh        *shared
	PipeValue value.Value
	Scope     *Scope
}

// Option configures a Context at construction time.
type Option func(*shared)

// WithFunctions installs the host-function registry.
func WithFunctions(r *FunctionRegistry) Option { return func(s *shared) { s.Functions = r } }

// WithMethods installs the method registry.
func WithMethods(r *MethodRegistry) Option { return func(s *shared) { s.Methods = r } }

// WithTimeout sets the per-host-call timeout (spec.md §4.8). Zero means
// no timeout.
func WithTimeout(d time.Duration) Option { return func(s *shared) { s.Timeout = d } }

// WithAutoExceptionPatterns sets the regular expressions matched against
// host-call error messages to decide whether they surface as
// AUTO_EXCEPTION instead of propagating raw (spec.md §4.8).
func WithAutoExceptionPatterns(patterns []string) Option {
	return func(s *shared) { s.AutoExceptionPatterns = patterns }
}

// WithCallbacks installs the observability callbacks.
func WithCallbacks(cb Callbacks) Option { return func(s *shared) { s.Callbacks = cb } }

// WithMaxCallStackDepth overrides the call-stack ring buffer's capacity.
func WithMaxCallStackDepth(n int) Option { return func(s *shared) { s.MaxCallStackDepth = n } }

// NewContext creates a root Context with a fresh root Scope.
func NewContext(opts ...Option) *Context {
	s := &shared{Signal: NewSignal()}
	for _, opt := range opts {
		opt(s)
	}
	if s.Functions == nil {
		s.Functions = NewFunctionRegistry()
	}
	if s.Methods == nil {
		s.Methods = NewMethodRegistry()
	}
	s.callStack = newCallStack(s.MaxCallStackDepth)
	s.annotations = &annotationStack{}
	return &Context{sh: s, PipeValue: value.Null, Scope: NewScope(nil)}
}

// Child returns a Context for a nested block: a new child Scope, the same
// shared state, and the current pipe value preserved as the starting
// point for the nested pipe chain.
func (c *Context) Child() *Context {
	return &Context{sh: c.sh, PipeValue: c.PipeValue, Scope: NewScope(c.Scope)}
}

// WithPipeValue returns a copy of c with PipeValue replaced, for threading
// a pipe chain's implicit value forward without mutating the caller.
func (c *Context) WithPipeValue(v value.Value) *Context {
	nc := *c
	nc.PipeValue = v
	return &nc
}

// WithScope returns a copy of c with Scope replaced, e.g. to rebind a
// closure's execution to its defining scope (spec.md §4.3).
func (c *Context) WithScope(s *Scope) *Context {
	nc := *c
	nc.Scope = s
	return &nc
}

// Functions returns the host-function registry.
func (c *Context) Functions() *FunctionRegistry { return c.sh.Functions }

// Methods returns the method registry.
func (c *Context) Methods() *MethodRegistry { return c.sh.Methods }

// Signal returns the run's cancellation signal.
func (c *Context) Signal() *Signal { return c.sh.Signal }

// Timeout returns the configured per-host-call timeout.
func (c *Context) Timeout() time.Duration { return c.sh.Timeout }

// AutoExceptionPatterns returns the configured auto-exception regex
// source strings.
func (c *Context) AutoExceptionPatterns() []string { return c.sh.AutoExceptionPatterns }

// Callbacks returns the observability callbacks.
func (c *Context) Callbacks() Callbacks { return c.sh.Callbacks }

// PushFrame records f as the innermost active call, for diagnostics.
func (c *Context) PushFrame(f rillerr.Frame) {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	c.sh.callStack.push(f)
}

// PopFrame removes the innermost active call frame.
func (c *Context) PopFrame() {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	c.sh.callStack.pop()
}

// CallStackSnapshot returns a frozen copy of the active call chain.
func (c *Context) CallStackSnapshot() []rillerr.Frame {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	return c.sh.callStack.snapshot()
}

// PushAnnotations activates a new innermost `^(...)` annotation frame.
func (c *Context) PushAnnotations(frame map[string]value.Value) {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	c.sh.annotations.push(frame)
}

// PopAnnotations deactivates the innermost annotation frame.
func (c *Context) PopAnnotations() {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	c.sh.annotations.pop()
}

// Annotation looks up key in the active annotation stack, innermost
// frame first.
func (c *Context) Annotation(key string) (value.Value, bool) {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	return c.sh.annotations.get(key)
}

// IterationLimit resolves the active `limit` annotation, or the default
// when none is set (spec.md §9).
func (c *Context) IterationLimit() int {
	c.sh.mu.Lock()
	defer c.sh.mu.Unlock()
	return c.sh.annotations.iterationLimit()
}
