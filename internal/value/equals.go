package value

// DeepEquals implements spec.md §4.1's structural equality: lists compared
// pairwise, dicts by key sets and recursive values, tuples by entry
// sequence, numbers by IEEE-754 equality (so NaN != NaN), and callables
// per Callable.Equal.
func DeepEquals(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case nullValue:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case *List:
		bv := b.(*List)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !DeepEquals(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		bv := b.(*Dict)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			bval, ok := bv.Get(k)
			if !ok {
				return false
			}
			aval, _ := av.Get(k)
			if !DeepEquals(aval, bval) {
				return false
			}
		}
		return true
	case *Tuple:
		bv := b.(*Tuple)
		if av.Named != bv.Named || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if av.Named && av.Entries[i].Name != bv.Entries[i].Name {
				return false
			}
			if !DeepEquals(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	case *Vector:
		bv := b.(*Vector)
		if av.Model != bv.Model || len(av.Data) != len(bv.Data) {
			return false
		}
		for i := range av.Data {
			if av.Data[i] != bv.Data[i] {
				return false
			}
		}
		return true
	case Callable:
		bv, ok := b.(Callable)
		if !ok {
			return false
		}
		return av.Equal(bv)
	default:
		return false
	}
}
