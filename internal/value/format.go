package value

// FormatValue renders v for display (error messages, capture logging,
// string interpolation fallback). Two deeply-equal values always format
// identically (spec.md §8); the converse need not hold, e.g. 1 and 1.0
// both render "1" without being distinguishable anyway since Number is a
// single float64 kind.
func FormatValue(v Value) string {
	if v == nil {
		return "null"
	}
	return v.String()
}
