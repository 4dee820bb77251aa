package rill

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// RegisterFunction exposes an ordinary Go function to scripts under name,
// using reflection to marshal arguments and return values across the
// boundary. fn must be a non-nil, non-variadic
// function whose parameters and results are each one of bool, a numeric
// kind, string, a slice/array, a map with string keys, `any`, or a
// (T, error) result pair. Registering a duplicate name or an
// unsupported function shape returns an error.
func (e *Engine) RegisterFunction(name string, fn any) error {
	if name == "" {
		return errors.New("rill: RegisterFunction: name must not be empty")
	}
	if fn == nil {
		return errors.New("rill: RegisterFunction: fn must not be nil")
	}
	rv := reflect.ValueOf(fn)
	rt := rv.Type()
	if rt.Kind() != reflect.Func {
		return fmt.Errorf("rill: RegisterFunction: fn must be a function, got %s", rt.Kind())
	}
	if rt.IsVariadic() {
		return fmt.Errorf("rill: RegisterFunction %q: variadic functions are not supported", name)
	}

	params := make([]runtime.ParamSpec, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		pt := rt.In(i)
		if !supportedKind(pt.Kind()) {
			return fmt.Errorf("rill: RegisterFunction %q: unsupported parameter %d type %s", name, i, pt)
		}
		tn, err := goTypeToTypeName(pt)
		if err != nil {
			return fmt.Errorf("rill: RegisterFunction %q: %w", name, err)
		}
		params[i] = runtime.ParamSpec{Name: fmt.Sprintf("arg%d", i), Type: tn, Required: true}
	}

	returnsError, err := checkReturnShape(name, rt)
	if err != nil {
		return err
	}

	host := func(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return callReflected(rv, rt, args, returnsError, loc)
	}
	return e.functions.Register(name, params, host)
}

// RegisterMethod exposes a single method of a Go receiver to scripts as
// scriptName, resolved via a dot-chain access step. The
// receiver is fixed at registration time; the script-side receiver
// value passed through the access chain is ignored, since there is
// exactly one bound Go object behind the method.
func (e *Engine) RegisterMethod(scriptName string, receiver any, methodName string) error {
	if scriptName == "" {
		return errors.New("rill: RegisterMethod: scriptName must not be empty")
	}
	if receiver == nil {
		return errors.New("rill: RegisterMethod: receiver must not be nil")
	}
	if methodName == "" {
		return errors.New("rill: RegisterMethod: methodName must not be empty")
	}

	rv := reflect.ValueOf(receiver)
	method := rv.MethodByName(methodName)
	if !method.IsValid() {
		return fmt.Errorf("rill: RegisterMethod %q: receiver %T has no exported method %q", scriptName, receiver, methodName)
	}
	rt := method.Type()
	if rt.IsVariadic() {
		return fmt.Errorf("rill: RegisterMethod %q: variadic methods are not supported", scriptName)
	}

	params := make([]runtime.ParamSpec, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		pt := rt.In(i)
		if !supportedKind(pt.Kind()) {
			return fmt.Errorf("rill: RegisterMethod %q: unsupported parameter %d type %s", scriptName, i, pt)
		}
		tn, err := goTypeToTypeName(pt)
		if err != nil {
			return fmt.Errorf("rill: RegisterMethod %q: %w", scriptName, err)
		}
		params[i] = runtime.ParamSpec{Name: fmt.Sprintf("arg%d", i), Type: tn, Required: true}
	}

	returnsError, err := checkReturnShape(scriptName, rt)
	if err != nil {
		return err
	}

	fn := func(_ value.Value, args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
		return callReflected(method, rt, args, returnsError, loc)
	}
	return e.methods.Register(scriptName, params, fn)
}

// checkReturnShape validates a function or method's result list is one
// of: nothing, a single marshalable value, or (T, error).
func checkReturnShape(name string, rt reflect.Type) (returnsError bool, err error) {
	switch rt.NumOut() {
	case 0:
		return false, nil
	case 1:
		if rt.Out(0) == errorType {
			return true, nil
		}
		if !supportedKind(rt.Out(0).Kind()) {
			return false, fmt.Errorf("rill: register %q: unsupported return type %s", name, rt.Out(0))
		}
		return false, nil
	case 2:
		if rt.Out(1) != errorType {
			return false, fmt.Errorf("rill: register %q: second return value must be error", name)
		}
		if !supportedKind(rt.Out(0).Kind()) {
			return false, fmt.Errorf("rill: register %q: unsupported return type %s", name, rt.Out(0))
		}
		return true, nil
	default:
		return false, fmt.Errorf("rill: register %q: at most two return values are supported", name)
	}
}

// callReflected marshals args, invokes fn, and marshals its result back
// into a value.Value, translating a non-nil trailing error return into
// the function's error result.
func callReflected(fn reflect.Value, rt reflect.Type, args []value.Value, returnsError bool, loc *rillerr.Location) (value.Value, error) {
	in := make([]reflect.Value, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		var arg value.Value = value.Null
		if i < len(args) {
			arg = args[i]
		}
		rv, err := fromValue(arg, rt.In(i))
		if err != nil {
			return nil, rillerr.New(rillerr.TypeError, err.Error(), loc, nil)
		}
		in[i] = rv
	}

	out := fn.Call(in)

	if rt.NumOut() == 0 {
		return value.Null, nil
	}
	if returnsError {
		if errVal := out[len(out)-1]; !errVal.IsNil() {
			return nil, errVal.Interface().(error)
		}
	}
	if rt.NumOut() == 1 && returnsError {
		return value.Null, nil
	}
	return toValue(out[0])
}
