package runtime

// CaptureEvent is delivered to Callbacks.OnCapture after a `:> $name`
// terminator binds a value (spec.md §4.4).
type CaptureEvent struct {
	Name  string
	Value any
}

// HostCallEvent is delivered to Callbacks.OnHostCall before a host
// function runs (spec.md §4.8).
type HostCallEvent struct {
	Name string
	Args []any
}

// FunctionReturnEvent is delivered to Callbacks.OnFunctionReturn after a
// host function returns (spec.md §4.8).
type FunctionReturnEvent struct {
	Name       string
	Value      any
	DurationMs int64
}

// LogEvent is a structured event an extension emits via
// emitExtensionEvent (spec.md §4.8, §6).
type LogEvent struct {
	Event     string
	Subsystem string
	Timestamp string
	Extra     map[string]any
}

// Callbacks is the observability surface spec.md §3/§6 exposes. Every
// field is optional; the evaluator nil-checks before calling.
type Callbacks struct {
	OnCapture        func(CaptureEvent)
	OnHostCall       func(HostCallEvent)
	OnFunctionReturn func(FunctionReturnEvent)
	OnLogEvent       func(LogEvent)
}
