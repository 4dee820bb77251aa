package ast

// PipeChain is `head ( -> target )* terminator?`, the central expression
// form of the language: a head expression threaded through zero or more
// pipe targets and an optional terminator.
type PipeChain struct {
	exprBase
	Head       Expr
	Targets    []PipeTarget
	Terminator *Terminator
}

// NewPipeChain builds a PipeChain node.
func NewPipeChain(span Span, head Expr, targets []PipeTarget, term *Terminator) *PipeChain {
	return &PipeChain{exprBase: newExprBase(span), Head: head, Targets: targets, Terminator: term}
}

// TerminatorKind distinguishes the three chain terminators.
type TerminatorKind int

const (
	// TermBreak is `-> break`.
	TermBreak TerminatorKind = iota
	// TermReturn is `-> return`.
	TermReturn
	// TermCapture is `:> $name[:type]`.
	TermCapture
)

// Terminator is the optional tail of a PipeChain.
type Terminator struct {
	Kind     TerminatorKind
	Name     string // set when Kind == TermCapture
	TypeName string // optional explicit type for TermCapture
}

// PipeTarget is implemented by every node that can follow `->` in a chain.
type PipeTarget interface {
	Node
	pipeTarget()
}

type pipeTargetBase struct{ base }

func (pipeTargetBase) pipeTarget() {}

func newPipeTargetBase(span Span) pipeTargetBase { return pipeTargetBase{newBase(span)} }

// HostCallTarget invokes a registered host function; when Args is empty and
// the caller's pipe value is non-null, the dispatcher implicitly appends it.
type HostCallTarget struct {
	pipeTargetBase
	Name string
	Args []Expr
}

// NewHostCallTarget builds a HostCallTarget.
func NewHostCallTarget(span Span, name string, args []Expr) *HostCallTarget {
	return &HostCallTarget{pipeTargetBase: newPipeTargetBase(span), Name: name, Args: args}
}

// ClosureCallTarget calls a variable holding a callable, pipe-first
// auto-inserted when the callable takes one more parameter than given.
type ClosureCallTarget struct {
	pipeTargetBase
	Callee Expr
	Args   []Expr
}

// NewClosureCallTarget builds a ClosureCallTarget.
func NewClosureCallTarget(span Span, callee Expr, args []Expr) *ClosureCallTarget {
	return &ClosureCallTarget{pipeTargetBase: newPipeTargetBase(span), Callee: callee, Args: args}
}

// PipeInvokeTarget is `-> $()`: invoke the current pipe value as a callable.
type PipeInvokeTarget struct {
	pipeTargetBase
	Args []Expr
}

// NewPipeInvokeTarget builds a PipeInvokeTarget.
func NewPipeInvokeTarget(span Span, args []Expr) *PipeInvokeTarget {
	return &PipeInvokeTarget{pipeTargetBase: newPipeTargetBase(span), Args: args}
}

// MethodCallTarget is `-> .method(args)`, dispatched against a dict's own
// callable field or, failing that, a registered method.
type MethodCallTarget struct {
	pipeTargetBase
	Method string
	Args   []Expr
}

// NewMethodCallTarget builds a MethodCallTarget.
func NewMethodCallTarget(span Span, method string, args []Expr) *MethodCallTarget {
	return &MethodCallTarget{pipeTargetBase: newPipeTargetBase(span), Method: method, Args: args}
}

// ConditionalTarget threads the pipe value into an inline conditional.
type ConditionalTarget struct {
	pipeTargetBase
	Cond *Conditional
}

// NewConditionalTarget builds a ConditionalTarget.
func NewConditionalTarget(span Span, cond *Conditional) *ConditionalTarget {
	return &ConditionalTarget{pipeTargetBase: newPipeTargetBase(span), Cond: cond}
}

// LoopTarget threads the pipe value into a `@` loop.
type LoopTarget struct {
	pipeTargetBase
	Loop *Loop
}

// NewLoopTarget builds a LoopTarget.
func NewLoopTarget(span Span, loop *Loop) *LoopTarget {
	return &LoopTarget{pipeTargetBase: newPipeTargetBase(span), Loop: loop}
}

// DoWhileTarget threads the pipe value into a do-while loop.
type DoWhileTarget struct {
	pipeTargetBase
	DoWhile *DoWhile
}

// NewDoWhileTarget builds a DoWhileTarget.
func NewDoWhileTarget(span Span, dw *DoWhile) *DoWhileTarget {
	return &DoWhileTarget{pipeTargetBase: newPipeTargetBase(span), DoWhile: dw}
}

// BlockTarget threads the pipe value into an inline block.
type BlockTarget struct {
	pipeTargetBase
	Block *Block
}

// NewBlockTarget builds a BlockTarget.
func NewBlockTarget(span Span, block *Block) *BlockTarget {
	return &BlockTarget{pipeTargetBase: newPipeTargetBase(span), Block: block}
}

// DestructureTarget is `-> *<...>`.
type DestructureTarget struct {
	pipeTargetBase
	Pattern *DestructurePattern
}

// NewDestructureTarget builds a DestructureTarget.
func NewDestructureTarget(span Span, pattern *DestructurePattern) *DestructureTarget {
	return &DestructureTarget{pipeTargetBase: newPipeTargetBase(span), Pattern: pattern}
}

// SliceTarget is `-> /<start:stop:step>`; any bound may be nil to mean
// "omitted".
type SliceTarget struct {
	pipeTargetBase
	Start, Stop, Step Expr
}

// NewSliceTarget builds a SliceTarget.
func NewSliceTarget(span Span, start, stop, step Expr) *SliceTarget {
	return &SliceTarget{pipeTargetBase: newPipeTargetBase(span), Start: start, Stop: stop, Step: step}
}

// SpreadTarget is `-> ...`: converts a list to a positional tuple or a
// dict to a named tuple.
type SpreadTarget struct {
	pipeTargetBase
}

// NewSpreadTarget builds a SpreadTarget.
func NewSpreadTarget(span Span) *SpreadTarget {
	return &SpreadTarget{pipeTargetBase: newPipeTargetBase(span)}
}

// TypeAssertionTarget is `-> :type`.
type TypeAssertionTarget struct {
	pipeTargetBase
	TypeName string
}

// NewTypeAssertionTarget builds a TypeAssertionTarget.
func NewTypeAssertionTarget(span Span, typeName string) *TypeAssertionTarget {
	return &TypeAssertionTarget{pipeTargetBase: newPipeTargetBase(span), TypeName: typeName}
}

// TypeCheckTarget is `-> :?type`.
type TypeCheckTarget struct {
	pipeTargetBase
	TypeName string
}

// NewTypeCheckTarget builds a TypeCheckTarget.
func NewTypeCheckTarget(span Span, typeName string) *TypeCheckTarget {
	return &TypeCheckTarget{pipeTargetBase: newPipeTargetBase(span), TypeName: typeName}
}

// There is no capture pipe target: capture is only ever represented as a
// chain Terminator with TermCapture (see spec.md §4.4).

// EachTarget is the `each` collection operator: sequential, supports an
// optional accumulator and `break`.
type EachTarget struct {
	pipeTargetBase
	Body    OperatorBody
	Initial Expr // nil when no explicit accumulator seed is given
}

// NewEachTarget builds an EachTarget.
func NewEachTarget(span Span, body OperatorBody, initial Expr) *EachTarget {
	return &EachTarget{pipeTargetBase: newPipeTargetBase(span), Body: body, Initial: initial}
}

// MapTarget is the `map` collection operator: bounded-parallel, order
// preserving.
type MapTarget struct {
	pipeTargetBase
	Body OperatorBody
}

// NewMapTarget builds a MapTarget.
func NewMapTarget(span Span, body OperatorBody) *MapTarget {
	return &MapTarget{pipeTargetBase: newPipeTargetBase(span), Body: body}
}

// FoldTarget is the `fold` collection operator: sequential reduction
// requiring an accumulator.
type FoldTarget struct {
	pipeTargetBase
	Body    OperatorBody
	Initial Expr
}

// NewFoldTarget builds a FoldTarget.
func NewFoldTarget(span Span, body OperatorBody, initial Expr) *FoldTarget {
	return &FoldTarget{pipeTargetBase: newPipeTargetBase(span), Body: body, Initial: initial}
}

// FilterTarget is the `filter` collection operator: bounded-parallel
// predicate evaluation, order preserving.
type FilterTarget struct {
	pipeTargetBase
	Body OperatorBody
}

// NewFilterTarget builds a FilterTarget.
func NewFilterTarget(span Span, body OperatorBody) *FilterTarget {
	return &FilterTarget{pipeTargetBase: newPipeTargetBase(span), Body: body}
}

// OperatorBody is implemented by every shape a collection-operator body may
// take: inline closure, block, or any other expression evaluated with `$`
// bound to the element (grouped expression, variable reference, postfix
// expression, spread).
type OperatorBody interface {
	Node
	operatorBody()
}

type operatorBodyBase struct{ base }

func (operatorBodyBase) operatorBody() {}

// InlineClosureBody wraps a Closure used directly as an operator body.
type InlineClosureBody struct {
	operatorBodyBase
	Closure *Closure
}

// NewInlineClosureBody builds an InlineClosureBody.
func NewInlineClosureBody(span Span, closure *Closure) *InlineClosureBody {
	return &InlineClosureBody{operatorBodyBase: operatorBodyBase{newBase(span)}, Closure: closure}
}

// BlockOperatorBody wraps a Block used directly as an operator body.
type BlockOperatorBody struct {
	operatorBodyBase
	Block *Block
}

// NewBlockOperatorBody builds a BlockOperatorBody.
func NewBlockOperatorBody(span Span, block *Block) *BlockOperatorBody {
	return &BlockOperatorBody{operatorBodyBase: operatorBodyBase{newBase(span)}, Block: block}
}

// ExprOperatorBody wraps any other expression used as an operator body.
type ExprOperatorBody struct {
	operatorBodyBase
	Expr Expr
}

// NewExprOperatorBody builds an ExprOperatorBody.
func NewExprOperatorBody(span Span, expr Expr) *ExprOperatorBody {
	return &ExprOperatorBody{operatorBodyBase: operatorBodyBase{newBase(span)}, Expr: expr}
}
