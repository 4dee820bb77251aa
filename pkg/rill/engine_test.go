package rill

import (
	"errors"
	"testing"

	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

func TestEvalSimplePipeChain(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := e.Eval(`5 -> |x| { $x + 1 }`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	n, ok := v.(value.Number)
	if !ok || n != 6 {
		t.Fatalf("expected 6, got %v", v)
	}
}

func TestEvalParseError(t *testing.T) {
	e, _ := New()
	if _, err := e.Eval(`-> ->`); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRegisterFunctionBasicRoundTrip(t *testing.T) {
	e, _ := New()
	if err := e.RegisterFunction("double", func(n float64) float64 { return n * 2 }); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	v, err := e.Eval(`double(21)`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if n, ok := v.(value.Number); !ok || n != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestRegisterFunctionErrorReturnPropagates(t *testing.T) {
	e, _ := New()
	boom := errors.New("boom")
	if err := e.RegisterFunction("fail", func() (string, error) { return "", boom }); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	if _, err := e.Eval(`fail()`); err == nil {
		t.Fatal("expected propagated error")
	}
}

func TestRegisterFunctionRejectsNil(t *testing.T) {
	e, _ := New()
	if err := e.RegisterFunction("nope", nil); err == nil {
		t.Fatal("expected error for nil fn")
	}
}

func TestRegisterFunctionRejectsNonFunction(t *testing.T) {
	e, _ := New()
	if err := e.RegisterFunction("nope", 42); err == nil {
		t.Fatal("expected error for non-function")
	}
}

func TestRegisterFunctionRejectsDuplicate(t *testing.T) {
	e, _ := New()
	fn := func() float64 { return 1 }
	if err := e.RegisterFunction("once", fn); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	if err := e.RegisterFunction("once", fn); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

type counter struct{ n int }

func (c *counter) Increment(by float64) float64 {
	c.n += int(by)
	return float64(c.n)
}

func TestRegisterMethodBindsFixedReceiver(t *testing.T) {
	e, _ := New()
	c := &counter{}
	if err := e.RegisterMethod("bump", c, "Increment"); err != nil {
		t.Fatalf("RegisterMethod: %v", err)
	}
	if m, ok := e.methods.Lookup("bump"); !ok || m == nil {
		t.Fatal("expected method registered")
	}
}

func TestRegisterMethodRejectsMissingMethod(t *testing.T) {
	e, _ := New()
	c := &counter{}
	if err := e.RegisterMethod("nope", c, "DoesNotExist"); err == nil {
		t.Fatal("expected error for missing method")
	}
}

func TestRegisterMethodRejectsNilReceiver(t *testing.T) {
	e, _ := New()
	if err := e.RegisterMethod("nope", nil, "Increment"); err == nil {
		t.Fatal("expected error for nil receiver")
	}
}

func TestCallbacksOnCaptureFires(t *testing.T) {
	var captured string
	e, _ := New(WithCallbacks(runtime.Callbacks{
		OnCapture: func(ev runtime.CaptureEvent) { captured = ev.Name },
	}))
	if _, err := e.Eval(`5 :> $x`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if captured != "x" {
		t.Fatalf("expected capture of x, got %q", captured)
	}
}

func TestHelpURLRoundTrip(t *testing.T) {
	url := HelpURL("RILL-R001")
	if url == "" {
		t.Fatal("expected non-empty help URL")
	}
}
