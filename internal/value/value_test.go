package value

import "testing"

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want TypeName
	}{
		{"null", Null, TypeNull},
		{"bool", Bool(true), TypeBool},
		{"number", Number(3.14), TypeNumber},
		{"string", String("hi"), TypeString},
		{"list", NewList(nil), TypeList},
		{"dict", NewDict(), TypeDict},
		{"tuple", NewPositionalTuple(nil), TypeTuple},
		{"vector", &Vector{Data: []float32{1, 2}, Model: "m"}, TypeVector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.v); got != tt.want {
				t.Errorf("InferType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckTypeAnyAlwaysMatches(t *testing.T) {
	if !CheckType(Number(1), TypeAny) {
		t.Fatal("TypeAny should match any value")
	}
	if CheckType(String("x"), TypeNumber) {
		t.Fatal("sanity: mismatched type should not match")
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), false},
		{"nonzero", Number(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty list", NewList(nil), false},
		{"nonempty list", NewList([]Value{Number(1)}), true},
		{"empty dict", NewDict(), false},
		{"null", Null, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTruthy(tt.v); got != tt.want {
				t.Errorf("IsTruthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTruthyNonEmptyDictIsTruthy(t *testing.T) {
	d := NewDict()
	d.Set("a", Number(1))
	if !IsTruthy(d) {
		t.Fatal("nonempty dict should be truthy")
	}
}

func TestDeepEqualsScalars(t *testing.T) {
	if !DeepEquals(Number(1), Number(1)) {
		t.Error("1 == 1 should be true")
	}
	if DeepEquals(Number(1), Number(2)) {
		t.Error("1 == 2 should be false")
	}
	nan := Number(nanValue())
	if DeepEquals(nan, nan) {
		t.Error("NaN should not equal NaN")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestDeepEqualsLists(t *testing.T) {
	a := NewList([]Value{Number(1), String("x")})
	b := NewList([]Value{Number(1), String("x")})
	c := NewList([]Value{Number(1), String("y")})
	if !DeepEquals(a, b) {
		t.Error("equal lists should be equal")
	}
	if DeepEquals(a, c) {
		t.Error("different lists should not be equal")
	}
}

func TestDeepEqualsDicts(t *testing.T) {
	a := NewDict()
	a.Set("x", Number(1))
	a.Set("y", Number(2))
	b := NewDict()
	b.Set("y", Number(2))
	b.Set("x", Number(1))
	if !DeepEquals(a, b) {
		t.Error("dicts with same keys/values in different insertion order should be equal")
	}
}

func TestDeepEqualsTuples(t *testing.T) {
	a := NewPositionalTuple([]Value{Number(1), Number(2)})
	b := NewPositionalTuple([]Value{Number(1), Number(2)})
	named := NewNamedTuple([]TupleEntry{{Name: "x", Value: Number(1)}})
	if !DeepEquals(a, b) {
		t.Error("equal positional tuples should be equal")
	}
	if DeepEquals(a, named) {
		t.Error("tuples of different kind should never be equal")
	}
}

func TestTupleRoundTrip(t *testing.T) {
	list := NewList([]Value{Number(1), Number(2), Number(3)})
	tuple := NewPositionalTuple(list.Items)
	back := tuple.ToList()
	if !DeepEquals(list, back) {
		t.Error("spreading a tuple-from-list back into a list should reconstruct the original list")
	}
}

func TestNamedTupleMixedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing a tuple with an unnamed entry via NewNamedTuple")
		}
	}()
	NewNamedTuple([]TupleEntry{{Name: "a", Value: Number(1)}, {Value: Number(2)}})
}

func TestIsIterator(t *testing.T) {
	notIter := NewDict()
	notIter.Set("value", Number(1))
	if IsIterator(notIter) {
		t.Error("dict missing done/next should not be an iterator")
	}

	badDone := NewDict()
	badDone.Set("value", Number(1))
	badDone.Set("done", Number(0))
	if IsIterator(badDone) {
		t.Error("dict with non-bool done should not be an iterator")
	}
}

func TestFormatValueMatchesDeepEquals(t *testing.T) {
	a := NewList([]Value{Number(1), String("x")})
	b := NewList([]Value{Number(1), String("x")})
	if !DeepEquals(a, b) {
		t.Fatal("precondition failed")
	}
	if FormatValue(a) != FormatValue(b) {
		t.Error("deeply equal values must format identically")
	}
}
