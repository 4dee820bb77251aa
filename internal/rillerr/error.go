package rillerr

import "fmt"

// Location is a point in the script source an error is attributed to.
type Location struct {
	Line   int
	Column int
	Offset int
}

// Frame is one entry of a frozen call-stack snapshot (spec.md §6 "Call
// stack extraction").
type Frame struct {
	Location     Location
	FunctionName string
}

// Error is the structured error record spec.md §6/§7 specifies: a kind, a
// stable errorId, a message, an optional location, and optional
// documented structured context.
type Error struct {
	Kind     Kind
	ID       string
	Message  string
	Location *Location
	Context  map[string]any
	Stack    []Frame
	Cause    error
}

// New builds an Error of kind k. loc and context may be nil.
func New(k Kind, message string, loc *Location, context map[string]any) *Error {
	return &Error{Kind: k, ID: ErrorID(k), Message: message, Location: loc, Context: context}
}

// Newf builds an Error with a formatted message.
func Newf(k Kind, loc *Location, context map[string]any, format string, args ...any) *Error {
	return New(k, fmt.Sprintf(format, args...), loc, context)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("%s error at line %d, column %d: %s", e.Kind, e.Location.Line, e.Location.Column, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap exposes a wrapped cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// WithStack returns a copy of e carrying the given frozen call-stack
// snapshot.
func (e *Error) WithStack(frames []Frame) *Error {
	ne := *e
	ne.Stack = frames
	return &ne
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	ne := *e
	ne.Cause = cause
	return &ne
}
