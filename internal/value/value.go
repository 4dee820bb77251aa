// Package value implements Rill's tagged value union (spec.md §3-§4.1):
// the Value interface and its concrete kinds, type inference, structural
// equality, truthiness, and formatting. Modeled on go-dws's
// interp.Value interface (one concrete struct per kind, dispatched by
// method rather than a type-tag switch scattered through callers).
package value

import "fmt"

// Kind names one of the closed set of runtime types a Value may have.
type Kind string

const (
	KindNull    Kind = "null"
	KindBool    Kind = "bool"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindList    Kind = "list"
	KindDict    Kind = "dict"
	KindTuple   Kind = "tuple"
	KindVector  Kind = "vector"
	KindClosure Kind = "closure"
)

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// Null is the single null value.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) Kind() Kind     { return KindNull }
func (nullValue) String() string { return "null" }

// Bool wraps a boolean value.
type Bool bool

func (Bool) Kind() Kind         { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number wraps an IEEE-754 double.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (n Number) String() string {
	return formatNumber(float64(n))
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// String wraps a string value.
type String string

func (String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// List is an ordered, mutable-by-its-owning-scope sequence of values.
type List struct {
	Items []Value
}

// NewList builds a List from the given items (not copied).
func NewList(items []Value) *List { return &List{Items: items} }

func (*List) Kind() Kind { return KindList }

func (l *List) String() string {
	s := "["
	for i, v := range l.Items {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + "]"
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Items) }

// Clone returns a shallow copy of the list.
func (l *List) Clone() *List {
	items := make([]Value, len(l.Items))
	copy(items, l.Items)
	return &List{Items: items}
}
