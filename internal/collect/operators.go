package collect

import (
	"errors"
	"sync"

	"github.com/rcrsr/rill/internal/control"
	"github.com/rcrsr/rill/internal/value"
)

// BodyFunc evaluates a collection-operator body for one element, with
// acc holding the current accumulator value (value.Null when the
// operator has none).
type BodyFunc func(element value.Value, index int, acc value.Value) (value.Value, error)

// Each runs body sequentially over elements, threading an accumulator
// when the operator declared one, and stopping early on a BreakSignal
// (spec.md §4.6). The final accumulator value is returned; a
// BreakSignal's carried value, if any, overrides it.
func Each(elements []value.Value, initial value.Value, body BodyFunc) (value.Value, error) {
	acc := initial
	for i, el := range elements {
		next, err := body(el, i, acc)
		if err != nil {
			var brk *control.BreakSignal
			if errors.As(err, &brk) {
				if brk.Value != nil {
					return brk.Value, nil
				}
				return acc, nil
			}
			return nil, err
		}
		acc = next
	}
	return acc, nil
}

// Fold runs body sequentially over elements, requiring and returning an
// accumulator (spec.md §4.6). fold has no break shorthand distinct from
// each's, but a BreakSignal still short-circuits it the same way.
func Fold(elements []value.Value, initial value.Value, body BodyFunc) (value.Value, error) {
	return Each(elements, initial, body)
}

// maxParallelism bounds map/filter's concurrent body invocations
// (spec.md §4.6 "bounded-parallel"). The `limit` annotation is dual
// purpose: it also caps iteration counts (see Expand), but concurrency
// itself never exceeds this constant regardless of `limit`'s value,
// since `limit` bounds work done, not goroutines spawned.
const maxParallelism = 8

// Map runs body over every element concurrently (bounded by
// maxParallelism), preserving input order in the result (spec.md §4.6).
func Map(elements []value.Value, body BodyFunc) ([]value.Value, error) {
	out := make([]value.Value, len(elements))
	errs := make([]error, len(elements))
	runBounded(len(elements), func(i int) {
		v, err := body(elements[i], i, value.Null)
		out[i], errs[i] = v, err
	})
	for _, err := range errs {
		if err != nil {
			return nil, firstBreakOrErr(err)
		}
	}
	return out, nil
}

// Filter runs the predicate body over every element concurrently
// (bounded by maxParallelism), keeping elements whose body result is
// truthy, in input order (spec.md §4.6).
func Filter(elements []value.Value, body BodyFunc) ([]value.Value, error) {
	keep := make([]bool, len(elements))
	errs := make([]error, len(elements))
	runBounded(len(elements), func(i int) {
		v, err := body(elements[i], i, value.Null)
		if err != nil {
			errs[i] = err
			return
		}
		keep[i] = value.IsTruthy(v)
	})
	for _, err := range errs {
		if err != nil {
			return nil, firstBreakOrErr(err)
		}
	}
	var out []value.Value
	for i, k := range keep {
		if k {
			out = append(out, elements[i])
		}
	}
	return out, nil
}

func firstBreakOrErr(err error) error {
	var brk *control.BreakSignal
	if errors.As(err, &brk) {
		return brk
	}
	return err
}

func runBounded(n int, f func(i int)) {
	sem := make(chan struct{}, maxParallelism)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			f(i)
		}(i)
	}
	wg.Wait()
}
