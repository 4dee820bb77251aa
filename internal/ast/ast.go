// Package ast defines the syntax tree the evaluator walks. The lexer and
// parser that produce this tree are external collaborators to the runtime
// evaluator; this package only fixes the node shapes so the evaluator has
// something typed to consume.
package ast

// Position is a single point in source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span covers the source range of a node, start inclusive, end exclusive.
type Span struct {
	Start Position
	End   Position
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
	node()
}

type base struct {
	span Span
}

func (b base) Span() Span { return b.span }
func (base) node()        {}

func newBase(span Span) base { return base{span: span} }

// Document is a parsed program: an ordered sequence of statements.
type Document struct {
	base
	Statements []*Statement
}

// NewDocument builds a Document node.
func NewDocument(span Span, statements []*Statement) *Document {
	return &Document{base: newBase(span), Statements: statements}
}

// Statement is one entry in a document's or block's statement list,
// optionally carrying annotations.
type Statement struct {
	base
	Annotations []*Annotation
	Expr        Expr
}

// NewStatement builds a Statement node.
func NewStatement(span Span, annotations []*Annotation, expr Expr) *Statement {
	return &Statement{base: newBase(span), Annotations: annotations, Expr: expr}
}

// Annotation is a single `^(k: v, ...)` entry attached to a statement.
type Annotation struct {
	base
	Args []AnnotationArg
}

// NewAnnotation builds an Annotation node.
func NewAnnotation(span Span, args []AnnotationArg) *Annotation {
	return &Annotation{base: newBase(span), Args: args}
}

// AnnotationArg is either a `name: expr` pair or a `...expr` dict spread.
type AnnotationArg struct {
	Name   string // empty when Spread is true
	Spread bool
	Value  Expr
}

// Expr is implemented by every expression node, including pipe chains.
type Expr interface {
	Node
	expr()
}

type exprBase struct{ base }

func (exprBase) expr() {}

func newExprBase(span Span) exprBase { return exprBase{newBase(span)} }
