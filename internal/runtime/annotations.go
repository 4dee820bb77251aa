package runtime

import "github.com/rcrsr/rill/internal/value"

// defaultIterationLimit bounds unbounded-looking constructs (iterator
// expansion, `@` loops over non-collection pipe values) when no `limit`
// annotation is active (spec.md §9).
const defaultIterationLimit = 10000

// annotationStack tracks nested `^(...)` annotation blocks. Lookups walk
// from the innermost frame outward, so a nested annotation shadows an
// outer one for the keys it sets.
type annotationStack struct {
	frames []map[string]value.Value
}

func (a *annotationStack) push(frame map[string]value.Value) {
	a.frames = append(a.frames, frame)
}

func (a *annotationStack) pop() {
	if len(a.frames) == 0 {
		return
	}
	a.frames = a.frames[:len(a.frames)-1]
}

func (a *annotationStack) top() map[string]value.Value {
	if len(a.frames) == 0 {
		return nil
	}
	return a.frames[len(a.frames)-1]
}

// get walks the annotation stack from innermost to outermost, returning
// the first value bound to key.
func (a *annotationStack) get(key string) (value.Value, bool) {
	for i := len(a.frames) - 1; i >= 0; i-- {
		if v, ok := a.frames[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}

// iterationLimit resolves the active `limit` annotation, falling back to
// defaultIterationLimit when none is set or the bound value isn't a
// usable positive number.
func (a *annotationStack) iterationLimit() int {
	v, ok := a.get("limit")
	if !ok {
		return defaultIterationLimit
	}
	n, ok := v.(value.Number)
	if !ok || n <= 0 {
		return defaultIterationLimit
	}
	return int(n)
}
