package rill

import (
	"fmt"
	"reflect"

	"github.com/rcrsr/rill/internal/value"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// supportedKind reports whether reflect.Kind k can be marshaled across
// the Rill/Go boundary. Channels, funcs (other than the registered
// callable itself), and unsafe pointers have no Rill-side representation,
// since Rill's value kinds are a closed set with no analogue for them.
func supportedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String,
		reflect.Slice, reflect.Array,
		reflect.Map,
		reflect.Interface:
		return true
	default:
		return false
	}
}

// goTypeToTypeName maps a Go reflect.Type to the declared Rill parameter
// type used in a HostFunction's ParamSpec. An empty
// interface parameter accepts any Rill value.
func goTypeToTypeName(t reflect.Type) (value.TypeName, error) {
	switch t.Kind() {
	case reflect.Bool:
		return value.TypeBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value.TypeNumber, nil
	case reflect.String:
		return value.TypeString, nil
	case reflect.Slice, reflect.Array:
		return value.TypeList, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return "", fmt.Errorf("rill: unsupported map key type %s, only string keys are supported", t.Key())
		}
		return value.TypeDict, nil
	case reflect.Interface:
		return value.TypeAny, nil
	default:
		return "", fmt.Errorf("rill: unsupported parameter type %s", t)
	}
}

// toValue converts a Go reflect.Value returned from a registered
// function into a Rill value.Value.
func toValue(rv reflect.Value) (value.Value, error) {
	if !rv.IsValid() {
		return value.Null, nil
	}
	switch rv.Kind() {
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Number(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Number(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return value.Number(rv.Float()), nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.NewList(nil), nil
		}
		items := make([]value.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			v, err := toValue(rv.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.NewList(items), nil
	case reflect.Map:
		if rv.Kind() == reflect.Map && rv.IsNil() {
			return value.NewDict(), nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("rill: unsupported map key type %s", rv.Type().Key())
		}
		d := value.NewDict()
		iter := rv.MapRange()
		for iter.Next() {
			v, err := toValue(iter.Value())
			if err != nil {
				return nil, err
			}
			d.Set(iter.Key().String(), v)
		}
		return d, nil
	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return value.Null, nil
		}
		return toValue(rv.Elem())
	default:
		return nil, fmt.Errorf("rill: unsupported return type %s", rv.Type())
	}
}

// fromValue converts a Rill value.Value into a reflect.Value assignable
// to target, the declared Go parameter type a registered function or
// method expects.
func fromValue(v value.Value, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Interface && target.NumMethod() == 0 {
		return reflect.ValueOf(toNative(v)), nil
	}

	switch target.Kind() {
	case reflect.Bool:
		b, ok := v.(value.Bool)
		if !ok {
			return reflect.Value{}, fmt.Errorf("rill: expected bool, got %s", value.InferType(v))
		}
		return reflect.ValueOf(bool(b)).Convert(target), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		n, ok := v.(value.Number)
		if !ok {
			return reflect.Value{}, fmt.Errorf("rill: expected number, got %s", value.InferType(v))
		}
		return reflect.ValueOf(float64(n)).Convert(target), nil
	case reflect.String:
		s, ok := v.(value.String)
		if !ok {
			return reflect.Value{}, fmt.Errorf("rill: expected string, got %s", value.InferType(v))
		}
		return reflect.ValueOf(string(s)).Convert(target), nil
	case reflect.Slice:
		l, ok := v.(*value.List)
		if !ok {
			return reflect.Value{}, fmt.Errorf("rill: expected list, got %s", value.InferType(v))
		}
		out := reflect.MakeSlice(target, l.Len(), l.Len())
		for i, item := range l.Items {
			elem, err := fromValue(item, target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case reflect.Map:
		d, ok := v.(*value.Dict)
		if !ok {
			return reflect.Value{}, fmt.Errorf("rill: expected dict, got %s", value.InferType(v))
		}
		out := reflect.MakeMapWithSize(target, d.Len())
		for _, k := range d.Keys() {
			dv, _ := d.Get(k)
			elem, err := fromValue(dv, target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(k), elem)
		}
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("rill: unsupported parameter type %s", target)
	}
}

// toNative converts a Rill value into the plain Go representation used
// for an `any`-typed host function parameter or return value.
func toNative(v value.Value) any {
	switch vv := v.(type) {
	case nil:
		return nil
	case value.Bool:
		return bool(vv)
	case value.Number:
		return float64(vv)
	case value.String:
		return string(vv)
	case *value.List:
		out := make([]any, len(vv.Items))
		for i, item := range vv.Items {
			out[i] = toNative(item)
		}
		return out
	case *value.Dict:
		out := make(map[string]any, vv.Len())
		for _, k := range vv.Keys() {
			dv, _ := vv.Get(k)
			out[k] = toNative(dv)
		}
		return out
	default:
		if v.Kind() == value.KindNull {
			return nil
		}
		return v.String()
	}
}
