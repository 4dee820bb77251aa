package ast

// Conditional is `condition ? thenBranch : elseBranch`; Condition may be
// nil to mean "use the current pipe value" (spec.md §4.5).
type Conditional struct {
	exprBase
	Condition Expr
	Then      *Block
	Else      *Block // nil when there is no else branch
}

// NewConditional builds a Conditional.
func NewConditional(span Span, cond Expr, then, els *Block) *Conditional {
	return &Conditional{exprBase: newExprBase(span), Condition: cond, Then: then, Else: els}
}

// Loop is the unified `@` loop; Input may be nil to mean "use the current
// pipe value". Dispatch on the runtime type of Input is spec.md §4.5's
// responsibility, not the parser's.
type Loop struct {
	exprBase
	Input Expr
	Body  *Block
}

// NewLoop builds a Loop.
func NewLoop(span Span, input Expr, body *Block) *Loop {
	return &Loop{exprBase: newExprBase(span), Input: input, Body: body}
}

// DoWhile is a do-while loop: body runs once, then Condition is checked
// before each further iteration.
type DoWhile struct {
	exprBase
	Body      *Block
	Condition Expr
}

// NewDoWhile builds a DoWhile.
func NewDoWhile(span Span, body *Block, cond Expr) *DoWhile {
	return &DoWhile{exprBase: newExprBase(span), Body: body, Condition: cond}
}

// Block is a sequence of statements executed in a fresh child scope; its
// value is the value of the last statement.
type Block struct {
	exprBase
	Statements []*Statement
}

// NewBlock builds a Block.
func NewBlock(span Span, statements []*Statement) *Block {
	return &Block{exprBase: newExprBase(span), Statements: statements}
}
