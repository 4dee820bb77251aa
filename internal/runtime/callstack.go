package runtime

import "github.com/rcrsr/rill/internal/rillerr"

// defaultMaxCallStackDepth bounds the ring buffer when Options doesn't
// override it.
const defaultMaxCallStackDepth = 100

// callStack is a ring buffer recording the active call chain for
// diagnostics. Unlike go-dws's CallStack, which raises an error when the
// stack overflows, this one silently drops the oldest frame and keeps
// going: spec.md §5 specifies ring-buffer semantics, diagnostic only, not
// a recursion guard.
type callStack struct {
	frames []rillerr.Frame
	max    int
}

func newCallStack(max int) *callStack {
	if max <= 0 {
		max = defaultMaxCallStackDepth
	}
	return &callStack{max: max}
}

func (c *callStack) push(f rillerr.Frame) {
	c.frames = append(c.frames, f)
	if len(c.frames) > c.max {
		c.frames = c.frames[len(c.frames)-c.max:]
	}
}

func (c *callStack) pop() {
	if len(c.frames) == 0 {
		return
	}
	c.frames = c.frames[:len(c.frames)-1]
}

// snapshot returns a copy of the current frames, oldest first.
func (c *callStack) snapshot() []rillerr.Frame {
	out := make([]rillerr.Frame, len(c.frames))
	copy(out, c.frames)
	return out
}
