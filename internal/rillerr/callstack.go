package rillerr

// ExtractCallStack implements spec.md §6's call-stack extraction
// interface: given a runtime error, return its frozen call-stack
// snapshot. A non-runtime error argument raises a TYPE_ERROR, per spec.
func ExtractCallStack(err error) ([]Frame, error) {
	re, ok := err.(*Error)
	if !ok {
		return nil, New(TypeError, "ExtractCallStack requires a runtime error value", nil, nil)
	}
	out := make([]Frame, len(re.Stack))
	copy(out, re.Stack)
	return out, nil
}
