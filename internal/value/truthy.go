package value

// IsTruthy implements spec.md §4.4's truthiness rule: false, 0, "", an
// empty list, an empty dict, and null are falsy; everything else,
// including callables, is truthy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	switch tv := v.(type) {
	case nullValue:
		return false
	case Bool:
		return bool(tv)
	case Number:
		return tv != 0
	case String:
		return tv != ""
	case *List:
		return tv.Len() > 0
	case *Dict:
		return tv.Len() > 0
	default:
		return true
	}
}
