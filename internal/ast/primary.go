package ast

// NumberLiteral is an IEEE-754 double literal.
type NumberLiteral struct {
	exprBase
	Value float64
}

// NewNumberLiteral builds a NumberLiteral.
func NewNumberLiteral(span Span, value float64) *NumberLiteral {
	return &NumberLiteral{exprBase: newExprBase(span), Value: value}
}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	exprBase
	Value bool
}

// NewBoolLiteral builds a BoolLiteral.
func NewBoolLiteral(span Span, value bool) *BoolLiteral {
	return &BoolLiteral{exprBase: newExprBase(span), Value: value}
}

// NullLiteral is the `null` literal.
type NullLiteral struct{ exprBase }

// NewNullLiteral builds a NullLiteral.
func NewNullLiteral(span Span) *NullLiteral { return &NullLiteral{exprBase: newExprBase(span)} }

// StringPart is one piece of an interpolated string literal: either a
// literal fragment or an interpolated expression.
type StringPart struct {
	Literal string
	Expr    Expr // nil when this part is a literal fragment
}

// StringLiteral is a list of literal fragments and interpolation
// expressions, evaluated left to right with the pipe value preserved
// across interpolations (spec.md §4.4).
type StringLiteral struct {
	exprBase
	Parts []StringPart
}

// NewStringLiteral builds a StringLiteral.
func NewStringLiteral(span Span, parts []StringPart) *StringLiteral {
	return &StringLiteral{exprBase: newExprBase(span), Parts: parts}
}

// TupleEntry is a single `(key, value)` pair in a tuple literal; Name is
// empty for positional entries.
type TupleEntry struct {
	Name  string
	Value Expr
}

// TupleLiteral is an ordered sequence of tuple entries, all-positional or
// all-named (spec.md §3 invariant I4).
type TupleLiteral struct {
	exprBase
	Entries []TupleEntry
}

// NewTupleLiteral builds a TupleLiteral.
func NewTupleLiteral(span Span, entries []TupleEntry) *TupleLiteral {
	return &TupleLiteral{exprBase: newExprBase(span), Entries: entries}
}

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	exprBase
	Elements []Expr
}

// NewListLiteral builds a ListLiteral.
func NewListLiteral(span Span, elements []Expr) *ListLiteral {
	return &ListLiteral{exprBase: newExprBase(span), Elements: elements}
}

// DictEntry is one `key: value` pair in a dict literal.
type DictEntry struct {
	Key   string
	Value Expr
}

// DictLiteral is `{k1: v1, k2: v2, ...}`.
type DictLiteral struct {
	exprBase
	Entries []DictEntry
}

// NewDictLiteral builds a DictLiteral.
func NewDictLiteral(span Span, entries []DictEntry) *DictLiteral {
	return &DictLiteral{exprBase: newExprBase(span), Entries: entries}
}

// Param is one closure parameter: an optional type annotation and an
// optional default-value expression (evaluated eagerly at closure-creation
// time, per spec.md §4.3).
type Param struct {
	Name         string
	TypeName     string // empty when not explicitly typed
	DefaultValue Expr   // nil when the parameter has no default
}

// Closure is `|p1, p2| { body }`; a zero-parameter closure is
// property-style (spec.md Glossary).
type Closure struct {
	exprBase
	Params []Param
	Body   *Block
}

// NewClosure builds a Closure.
func NewClosure(span Span, params []Param, body *Block) *Closure {
	return &Closure{exprBase: newExprBase(span), Params: params, Body: body}
}

// FieldAccessKind distinguishes the variants of a variable's field access
// chain step (spec.md §4.4 "Access chain").
type FieldAccessKind int

const (
	// FieldLiteral is `.name`.
	FieldLiteral FieldAccessKind = iota
	// FieldVariableNamed is `.$nameVar` — the field name is itself a
	// variable's value.
	FieldVariableNamed
	// FieldAlternatives is `.[a, b, c]` — the first existing key wins.
	FieldAlternatives
	// FieldComputed is `.[expr]` — a single computed key.
	FieldComputed
	// FieldBlock is `.[{ ... }]` — a block whose result is the key.
	FieldBlock
)

// FieldAccess is one field-access step in a variable's access chain.
type FieldAccess struct {
	Kind         FieldAccessKind
	Name         string   // FieldLiteral
	VariableName string   // FieldVariableNamed
	Alternatives []string // FieldAlternatives
	Expr         Expr     // FieldComputed
	Block        *Block   // FieldBlock
}

// BracketAccess is `[expr]`: expr must evaluate to an integer index,
// negative indices wrapping from the end.
type BracketAccess struct {
	Index Expr
}

// AccessStep is one step of a variable's mixed field/bracket access
// chain.
type AccessStep struct {
	Field   *FieldAccess   // set for a field-access step
	Bracket *BracketAccess // set for a bracket-access step
}

// ExistenceCheck is `.?field` or `.?field&type`, attached to a Variable in
// place of further chain traversal.
type ExistenceCheck struct {
	TypeName string // empty when no type filter was given
}

// Variable is `$name` followed by a mixed chain of field/bracket accesses,
// an optional trailing existence check, and an optional default-value
// expression evaluated when any step along the chain resolves to null.
type Variable struct {
	exprBase
	Name            string
	Chain           []AccessStep
	Existence       *ExistenceCheck
	DefaultValue    Expr
}

// NewVariable builds a Variable.
func NewVariable(span Span, name string, chain []AccessStep, existence *ExistenceCheck, def Expr) *Variable {
	return &Variable{exprBase: newExprBase(span), Name: name, Chain: chain, Existence: existence, DefaultValue: def}
}

// PipeValue is the bare `$` primary (the current pipe value, with no
// further access chain).
type PipeValue struct{ exprBase }

// NewPipeValue builds a PipeValue.
func NewPipeValue(span Span) *PipeValue { return &PipeValue{exprBase: newExprBase(span)} }

// Accumulator is the bare `$@` primary used inside collection-operator
// bodies.
type Accumulator struct{ exprBase }

// NewAccumulator builds an Accumulator.
func NewAccumulator(span Span) *Accumulator { return &Accumulator{exprBase: newExprBase(span)} }

// GroupedExpr is a parenthesized expression, `(expr)`.
type GroupedExpr struct {
	exprBase
	Inner Expr
}

// NewGroupedExpr builds a GroupedExpr.
func NewGroupedExpr(span Span, inner Expr) *GroupedExpr {
	return &GroupedExpr{exprBase: newExprBase(span), Inner: inner}
}

// TypeAssertion is `expr:type` (or `:type`, shorthand for `$:type`, when
// Expr is nil).
type TypeAssertion struct {
	exprBase
	Expr     Expr
	TypeName string
}

// NewTypeAssertion builds a TypeAssertion.
func NewTypeAssertion(span Span, expr Expr, typeName string) *TypeAssertion {
	return &TypeAssertion{exprBase: newExprBase(span), Expr: expr, TypeName: typeName}
}

// TypeCheck is `expr:?type` (or `:?type`, shorthand for `$:?type`, when
// Expr is nil).
type TypeCheck struct {
	exprBase
	Expr     Expr
	TypeName string
}

// NewTypeCheck builds a TypeCheck.
func NewTypeCheck(span Span, expr Expr, typeName string) *TypeCheck {
	return &TypeCheck{exprBase: newExprBase(span), Expr: expr, TypeName: typeName}
}

// Spread converts a list to a positional tuple, or a dict to a named
// tuple, as a standalone primary (as opposed to a pipe-chain SpreadTarget).
type Spread struct {
	exprBase
	Expr Expr
}

// NewSpread builds a Spread.
func NewSpread(span Span, expr Expr) *Spread {
	return &Spread{exprBase: newExprBase(span), Expr: expr}
}

// DestructurePattern is the pattern inside `*<...>`: positional or
// key-form, never mixed (spec.md §4.7).
type DestructurePattern struct {
	Positional []DestructureElement
	Keyed      []KeyPattern
}

// DestructureElement is one positional slot: either a variable binding
// (Name non-empty), a `_` skip (both empty), or a nested pattern.
type DestructureElement struct {
	Name   string
	Nested *DestructurePattern
}

// KeyPattern is one `key: $var` entry in a key-form destructure.
type KeyPattern struct {
	Key string
	Var string
}
