package access

import (
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

// Slice implements `-> /<start:stop:step>` over a list or string
// (spec.md §4.4): Python-style bounds, negative indices counting from
// the end, a nil bound meaning "omitted", and a zero step rejected
// outright.
func Slice(v value.Value, start, stop, step *int, loc *rillerr.Location) (value.Value, error) {
	if step != nil && *step == 0 {
		return nil, rillerr.SliceStepZero(loc)
	}
	st := 1
	if step != nil {
		st = *step
	}

	switch t := v.(type) {
	case *value.List:
		lo, hi := sliceBounds(len(t.Items), start, stop, st)
		return value.NewList(sliceIndices(t.Items, lo, hi, st)), nil
	case value.String:
		runes := []rune(string(t))
		lo, hi := sliceBounds(len(runes), start, stop, st)
		return value.String(string(sliceIndices(runes, lo, hi, st))), nil
	default:
		return nil, rillerr.CollectionOperandTypeError(string(value.InferType(v)), loc)
	}
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return i
}

func sliceBounds(n int, start, stop *int, step int) (int, int) {
	var lo, hi int
	if step > 0 {
		lo, hi = 0, n
	} else {
		lo, hi = n-1, -1
	}
	if start != nil {
		lo = clamp(normalizeIndex(*start, n), n, step)
	}
	if stop != nil {
		hi = clamp(normalizeIndex(*stop, n), n, step)
	}
	return lo, hi
}

func clamp(i, n, step int) int {
	if step > 0 {
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	if i < -1 {
		return -1
	}
	if i >= n {
		return n - 1
	}
	return i
}

func sliceIndices[T any](items []T, lo, hi, step int) []T {
	var out []T
	if step > 0 {
		for i := lo; i < hi; i += step {
			out = append(out, items[i])
		}
	} else {
		for i := lo; i > hi; i += step {
			out = append(out, items[i])
		}
	}
	return out
}
