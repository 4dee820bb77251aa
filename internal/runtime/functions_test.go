package runtime

import (
	"testing"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
)

func TestFunctionRegistryRegisterAndLookup(t *testing.T) {
	r := NewFunctionRegistry()
	err := r.Register("add", []ParamSpec{
		{Name: "a", Type: value.TypeNumber, Required: true},
		{Name: "b", Type: value.TypeNumber, Required: true},
	}, func(args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error) {
		return args[0].(value.Number) + args[1].(value.Number), nil
	})
	if err != nil {
		t.Fatalf("unexpected registration error: %v", err)
	}

	fn, ok := r.Lookup("add")
	if !ok {
		t.Fatal("expected to find registered function")
	}
	result, callErr := fn.Fn([]value.Value{value.Number(2), value.Number(3)}, nil, nil)
	if callErr != nil {
		t.Fatalf("unexpected call error: %v", callErr)
	}
	if result != value.Number(5) {
		t.Errorf("result = %v, want 5", result)
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected Lookup to report false for unregistered names")
	}
}

func TestFunctionRegistryRejectsDuplicate(t *testing.T) {
	r := NewFunctionRegistry()
	noop := func(args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error) {
		return value.Null, nil
	}
	if err := r.Register("f", nil, noop); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if err := r.Register("f", nil, noop); err == nil {
		t.Error("expected an error registering a duplicate name")
	}
}

func TestFunctionRegistryRejectsBadDefaultValue(t *testing.T) {
	r := NewFunctionRegistry()
	err := r.Register("withDefault", []ParamSpec{
		{Name: "n", Type: value.TypeNumber, Required: false, DefaultValue: value.String("nope")},
	}, func(args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error) {
		return value.Null, nil
	})
	if err == nil {
		t.Fatal("expected registration to reject a mistyped default value")
	}
	rerr, ok := err.(*rillerr.Error)
	if !ok || rerr.Kind != rillerr.TypeError {
		t.Fatalf("expected a TYPE_ERROR, got %#v", err)
	}
}

func TestFunctionRegistryAcceptsMatchingDefaultValue(t *testing.T) {
	r := NewFunctionRegistry()
	err := r.Register("withDefault", []ParamSpec{
		{Name: "n", Type: value.TypeNumber, Required: false, DefaultValue: value.Number(10)},
	}, func(args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error) {
		return value.Null, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMethodRegistryRegisterAndLookup(t *testing.T) {
	r := NewMethodRegistry()
	err := r.Register("length", nil, func(recv value.Value, args []value.Value, ctx *Context, loc *rillerr.Location) (value.Value, error) {
		l, ok := recv.(*value.List)
		if !ok {
			return nil, rillerr.CollectionOperandTypeError(string(value.InferType(recv)), loc)
		}
		return value.Number(l.Len()), nil
	})
	if err != nil {
		t.Fatalf("unexpected registration error: %v", err)
	}

	m, ok := r.Lookup("length")
	if !ok {
		t.Fatal("expected to find registered method")
	}
	list := value.NewList([]value.Value{value.Number(1), value.Number(2)})
	result, callErr := m.Fn(list, nil, nil, nil)
	if callErr != nil {
		t.Fatalf("unexpected call error: %v", callErr)
	}
	if result != value.Number(2) {
		t.Errorf("result = %v, want 2", result)
	}
}
