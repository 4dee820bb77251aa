// Package hostcall implements the dispatch concerns around invoking a
// registered host function: racing it against a timeout, checking the
// cancellation signal, and validating/mounting extension namespaces. It
// never evaluates an ast.Expr — the evaluator resolves call arguments
// into Values first and hands this package the already-evaluated
// HostFunc to run.
package hostcall

import (
	"regexp"
	"time"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Call runs fn in its own goroutine and races it against timeout
// (spec.md §4.8). A zero timeout disables the race. The goroutine is
// never forcibly killed on timeout — it keeps running to completion in
// the background, and its result is discarded; fn implementations
// should poll ctx.Signal() to exit early when possible.
func Call(name string, fn runtime.HostFunc, args []value.Value, ctx *runtime.Context, loc *rillerr.Location, timeout time.Duration) (value.Value, error) {
	if ctx.Signal().Aborted() {
		return nil, rillerr.AbortErr(loc)
	}
	if timeout <= 0 {
		return fn(args, ctx, loc)
	}

	type result struct {
		v   value.Value
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(args, ctx, loc)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-time.After(timeout):
		return nil, rillerr.TimeoutErr(name, timeout.Milliseconds(), loc)
	}
}

// MatchAutoException checks msg against the configured auto-exception
// patterns, returning the first one that matches (spec.md §4.8).
func MatchAutoException(msg string, patterns []string, loc *rillerr.Location) (*rillerr.Error, bool) {
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(msg) {
			return rillerr.AutoExceptionErr(p, msg, loc), true
		}
	}
	return nil, false
}
