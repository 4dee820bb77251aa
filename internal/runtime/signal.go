package runtime

import "sync/atomic"

// Signal is the externally-settable cancellation signal spec.md §3/§5
// describes: cooperative, single context-wide, never forcibly cancelling
// an in-flight host call.
type Signal struct {
	aborted atomic.Bool
}

// NewSignal creates an unset signal.
func NewSignal() *Signal { return &Signal{} }

// Abort marks the signal as fired. Safe to call from any goroutine,
// including concurrently with Aborted.
func (s *Signal) Abort() { s.aborted.Store(true) }

// Aborted reports whether Abort has been called.
func (s *Signal) Aborted() bool { return s.aborted.Load() }
