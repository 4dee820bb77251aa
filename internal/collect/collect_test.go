package collect

import (
	"sort"
	"sync"
	"testing"

	"github.com/rcrsr/rill/internal/control"
	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

func TestExpandList(t *testing.T) {
	list := value.NewList([]value.Value{value.Number(1), value.Number(2)})
	els, err := Expand(list, 10, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("got %d elements, want 2", len(els))
	}
}

func TestExpandString(t *testing.T) {
	els, err := Expand(value.String("ab"), 10, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 || els[0] != value.String("a") || els[1] != value.String("b") {
		t.Errorf("got %v", els)
	}
}

func TestExpandDictSortedByKey(t *testing.T) {
	d := value.NewDict()
	d.Set("b", value.Number(2))
	d.Set("a", value.Number(1))
	els, err := Expand(d, 10, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("got %d elements", len(els))
	}
	first := els[0].(*value.Tuple)
	k, _ := first.Get("key")
	if k != value.String("a") {
		t.Errorf("expected sorted-by-key order, first key = %v", k)
	}
}

func TestExpandTypeError(t *testing.T) {
	_, err := Expand(value.Number(1), 10, nil, nil)
	re, ok := err.(*rillerr.Error)
	if !ok || re.Kind != rillerr.TypeError {
		t.Fatalf("expected TYPE_ERROR, got %#v", err)
	}
}

func TestExpandIteratorDrains(t *testing.T) {
	makeState := func(n int) *value.Dict {
		d := value.NewDict()
		d.Set("value", value.Number(n))
		d.Set("done", value.Bool(n >= 3))
		d.Set("next", stubCallable(n))
		return d
	}
	callNext := func(c value.Callable) (*value.Dict, error) {
		n := int(c.(stubCallable))
		return makeState(n + 1), nil
	}
	els, err := Expand(makeState(0), 10, callNext, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(els) != 3 {
		t.Fatalf("got %d elements, want 3", len(els))
	}
}

type stubCallable int

func (stubCallable) Kind() value.Kind                 { return value.KindClosure }
func (stubCallable) String() string                   { return "<stub>" }
func (stubCallable) Variant() value.CallableVariant    { return value.CallableRuntime }
func (stubCallable) IsProperty() bool                  { return true }
func (stubCallable) BoundDict() *value.Dict            { return nil }
func (s stubCallable) Rebind(d *value.Dict) value.Callable { return s }
func (s stubCallable) Equal(other value.Callable) bool { return false }

func TestEachAccumulatesAndBreaks(t *testing.T) {
	els := []value.Value{value.Number(1), value.Number(2), value.Number(3)}
	result, err := Each(els, value.Number(0), func(el value.Value, i int, acc value.Value) (value.Value, error) {
		n := el.(value.Number)
		if n == 2 {
			return nil, &control.BreakSignal{}
		}
		return acc.(value.Number) + n, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != value.Number(1) {
		t.Errorf("result = %v, want 1 (accumulated before break)", result)
	}
}

func TestEachBreakWithValue(t *testing.T) {
	els := []value.Value{value.Number(1), value.Number(2)}
	result, err := Each(els, value.Number(0), func(el value.Value, i int, acc value.Value) (value.Value, error) {
		return nil, &control.BreakSignal{Value: value.String("stopped")}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != value.String("stopped") {
		t.Errorf("result = %v, want stopped", result)
	}
}

func TestFoldReduces(t *testing.T) {
	els := []value.Value{value.Number(1), value.Number(2), value.Number(3)}
	result, err := Fold(els, value.Number(0), func(el value.Value, i int, acc value.Value) (value.Value, error) {
		return acc.(value.Number) + el.(value.Number), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != value.Number(6) {
		t.Errorf("result = %v, want 6", result)
	}
}

func TestMapPreservesOrder(t *testing.T) {
	els := make([]value.Value, 20)
	for i := range els {
		els[i] = value.Number(i)
	}
	result, err := Map(els, func(el value.Value, i int, acc value.Value) (value.Value, error) {
		return el.(value.Number) * value.Number(2), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range result {
		if v != value.Number(i*2) {
			t.Fatalf("result[%d] = %v, want %d", i, v, i*2)
		}
	}
}

func TestFilterKeepsTruthyInOrder(t *testing.T) {
	els := []value.Value{value.Number(1), value.Number(2), value.Number(3), value.Number(4)}
	result, err := Filter(els, func(el value.Value, i int, acc value.Value) (value.Value, error) {
		return value.Bool(int(el.(value.Number))%2 == 0), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 || result[0] != value.Number(2) || result[1] != value.Number(4) {
		t.Errorf("result = %v", result)
	}
}

func TestMapPropagatesError(t *testing.T) {
	els := []value.Value{value.Number(1)}
	_, err := Map(els, func(el value.Value, i int, acc value.Value) (value.Value, error) {
		return nil, rillerr.New(rillerr.TypeError, "boom", nil, nil)
	})
	if err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestFilterConcurrencyIsBounded(t *testing.T) {
	els := make([]value.Value, 50)
	for i := range els {
		els[i] = value.Number(i)
	}
	seen := make([]int, 0, 50)
	var mu sync.Mutex
	_, err := Filter(els, func(el value.Value, i int, acc value.Value) (value.Value, error) {
		mu.Lock()
		seen = append(seen, i)
		mu.Unlock()
		return value.Bool(true), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 50 {
		t.Fatalf("expected all 50 elements visited, got %d", len(seen))
	}
	sort.Ints(seen)
	for i, v := range seen {
		if v != i {
			t.Fatalf("expected every index visited exactly once, got %v", seen)
		}
	}
}
