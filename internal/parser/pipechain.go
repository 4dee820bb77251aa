package parser

import (
	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/lexer"
)

// parsePipeChain parses `head ( -> target )* terminator?`, spec.md §4.4's
// central expression form.
func (p *Parser) parsePipeChain() ast.Expr {
	start := p.cur.Pos
	head := p.parseExpr()

	var targets []ast.PipeTarget
	var term *ast.Terminator

	for p.curIs(lexer.ARROW) {
		p.next()
		if p.curIs(lexer.BREAK) {
			p.next()
			term = &ast.Terminator{Kind: ast.TermBreak}
			break
		}
		if p.curIs(lexer.RETURN) {
			p.next()
			term = &ast.Terminator{Kind: ast.TermReturn}
			break
		}
		targets = append(targets, p.parsePipeTarget())
	}

	if term == nil && p.curIs(lexer.CAPTURE) {
		p.next()
		p.expect(lexer.DOLLAR)
		name := p.cur.Literal
		p.expect(lexer.IDENT)
		typeName := ""
		if p.curIs(lexer.COLON) {
			p.next()
			typeName = p.cur.Literal
			p.expect(lexer.IDENT)
		}
		term = &ast.Terminator{Kind: ast.TermCapture, Name: name, TypeName: typeName}
	}

	if len(targets) == 0 && term == nil {
		return head
	}
	return ast.NewPipeChain(p.posFrom(start), head, targets, term)
}

func (p *Parser) parsePipeTarget() ast.PipeTarget {
	start := p.cur.Pos

	switch {
	case p.curIs(lexer.IDENT):
		name := p.cur.Literal
		p.next()
		args := p.parseArgs()
		return ast.NewHostCallTarget(p.posFrom(start), name, args)

	case p.curIs(lexer.DOLLAR) && p.peekIs(lexer.LPAREN):
		p.next()
		args := p.parseArgs()
		return ast.NewPipeInvokeTarget(p.posFrom(start), args)

	case p.curIs(lexer.DOLLAR) && p.peekIs(lexer.IDENT):
		p.next()
		name := p.cur.Literal
		p.next()
		callee := ast.NewVariable(p.posFrom(start), name, nil, nil, nil)
		args := p.parseArgs()
		return ast.NewClosureCallTarget(p.posFrom(start), callee, args)

	case p.curIs(lexer.DOT):
		p.next()
		method := p.cur.Literal
		p.expect(lexer.IDENT)
		args := p.parseArgs()
		return ast.NewMethodCallTarget(p.posFrom(start), method, args)

	case p.curIs(lexer.QUESTION):
		cond := p.parseConditional(nil, toAstPos(start)).(*ast.Conditional)
		return ast.NewConditionalTarget(p.posFrom(start), cond)

	case p.curIs(lexer.AT):
		p.next()
		body := p.parseBlock()
		loop := ast.NewLoop(p.posFrom(start), nil, body)
		return ast.NewLoopTarget(p.posFrom(start), loop)

	case p.curIs(lexer.DO):
		dw := p.parseDoWhile(start).(*ast.DoWhile)
		return ast.NewDoWhileTarget(p.posFrom(start), dw)

	case p.curIs(lexer.LPAREN):
		expr := p.parseExpr()
		loop, ok := expr.(*ast.Loop)
		if !ok {
			p.errorf("expected `@` loop after grouped pipe target")
			return ast.NewBlockTarget(p.posFrom(start), ast.NewBlock(p.posFrom(start), nil))
		}
		return ast.NewLoopTarget(p.posFrom(start), loop)

	case p.curIs(lexer.PIPE):
		closure := p.parseClosure(start)
		return ast.NewClosureCallTarget(p.posFrom(start), closure, nil)

	case p.curIs(lexer.LBRACE):
		block := p.parseBlock()
		return ast.NewBlockTarget(p.posFrom(start), block)

	case p.curIs(lexer.STAR) && p.peekIs(lexer.LT):
		return p.parseDestructureTarget(start)

	case p.curIs(lexer.SLASH) && p.peekIs(lexer.LT):
		return p.parseSliceTarget(start)

	case p.curIs(lexer.ELLIPSIS):
		p.next()
		return ast.NewSpreadTarget(p.posFrom(start))

	case p.curIs(lexer.COLON):
		p.next()
		if p.curIs(lexer.QUESTION) {
			p.next()
			typeName := p.cur.Literal
			p.expect(lexer.IDENT)
			return ast.NewTypeCheckTarget(p.posFrom(start), typeName)
		}
		typeName := p.cur.Literal
		p.expect(lexer.IDENT)
		return ast.NewTypeAssertionTarget(p.posFrom(start), typeName)

	case p.curIs(lexer.EACH):
		p.next()
		initial := p.parseOperatorInitial()
		body := p.parseOperatorBody()
		return ast.NewEachTarget(p.posFrom(start), body, initial)

	case p.curIs(lexer.MAP):
		p.next()
		body := p.parseOperatorBody()
		return ast.NewMapTarget(p.posFrom(start), body)

	case p.curIs(lexer.FOLD):
		p.next()
		initial := p.parseOperatorInitial()
		body := p.parseOperatorBody()
		return ast.NewFoldTarget(p.posFrom(start), body, initial)

	case p.curIs(lexer.FILTER):
		p.next()
		body := p.parseOperatorBody()
		return ast.NewFilterTarget(p.posFrom(start), body)

	default:
		p.errorf("unexpected token %s %q in pipe target", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.NewBlockTarget(p.posFrom(start), ast.NewBlock(p.posFrom(start), nil))
	}
}

// parseOperatorInitial parses the optional `(expr)` accumulator seed
// preceding an each/fold operator body.
func (p *Parser) parseOperatorInitial() ast.Expr {
	if !p.curIs(lexer.LPAREN) {
		return nil
	}
	p.next()
	initial := p.parseExpr()
	p.expect(lexer.RPAREN)
	return initial
}

// parseOperatorBody parses a collection-operator body: an inline closure,
// a bare block, or any other expression evaluated with `$` bound to the
// element (spec.md §4.6).
func (p *Parser) parseOperatorBody() ast.OperatorBody {
	start := p.cur.Pos
	switch {
	case p.curIs(lexer.PIPE):
		closure := p.parseClosure(start).(*ast.Closure)
		return ast.NewInlineClosureBody(p.posFrom(start), closure)
	case p.curIs(lexer.LBRACE):
		block := p.parseBlock()
		return ast.NewBlockOperatorBody(p.posFrom(start), block)
	default:
		expr := p.parseExpr()
		return ast.NewExprOperatorBody(p.posFrom(start), expr)
	}
}

func (p *Parser) parseDestructureTarget(start lexer.Position) ast.PipeTarget {
	p.next() // skip *
	p.expect(lexer.LT)
	pattern := p.parseDestructurePattern()
	p.expect(lexer.GT)
	return ast.NewDestructureTarget(p.posFrom(start), pattern)
}

func (p *Parser) parseDestructurePattern() *ast.DestructurePattern {
	if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
		var keyed []ast.KeyPattern
		for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
			key := p.cur.Literal
			p.expect(lexer.IDENT)
			p.expect(lexer.COLON)
			p.expect(lexer.DOLLAR)
			varName := p.cur.Literal
			p.expect(lexer.IDENT)
			keyed = append(keyed, ast.KeyPattern{Key: key, Var: varName})
			if p.curIs(lexer.COMMA) {
				p.next()
			}
		}
		return &ast.DestructurePattern{Keyed: keyed}
	}

	var positional []ast.DestructureElement
	for !p.curIs(lexer.GT) && !p.curIs(lexer.EOF) {
		positional = append(positional, p.parseDestructureElement())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	return &ast.DestructurePattern{Positional: positional}
}

func (p *Parser) parseDestructureElement() ast.DestructureElement {
	switch {
	case p.curIs(lexer.STAR) && p.peekIs(lexer.LT):
		p.next()
		p.next()
		nested := p.parseDestructurePattern()
		p.expect(lexer.GT)
		return ast.DestructureElement{Nested: nested}
	case p.curIs(lexer.DOLLAR):
		p.next()
		name := p.cur.Literal
		p.expect(lexer.IDENT)
		return ast.DestructureElement{Name: name}
	case p.curIs(lexer.IDENT) && p.cur.Literal == "_":
		p.next()
		return ast.DestructureElement{}
	default:
		p.errorf("expected destructure element, got %s %q", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.DestructureElement{}
	}
}

// parseSliceTarget parses `/<start:stop:step>`; any of the three bounds
// may be omitted to mean "use the default" (spec.md §4.7). Because `::`
// lexes as one token, an omitted stop between two colons is written
// `/<a: :c>`. Bounds are additive expressions, so the closing `>` is never
// read as a comparison.
func (p *Parser) parseSliceTarget(start lexer.Position) ast.PipeTarget {
	p.next() // skip /
	p.expect(lexer.LT)

	startExpr := p.tryParseSliceBound()
	var stopExpr, stepExpr ast.Expr
	if !p.curIs(lexer.CAPTURE) {
		p.expect(lexer.COLON)
		stopExpr = p.tryParseSliceBound()
		if p.curIs(lexer.COLON) {
			p.next()
			stepExpr = p.tryParseSliceBound()
		}
	}
	// `:>` lexes as one token, so `/<a:>` and `/<a:b:>` close on it.
	if p.curIs(lexer.CAPTURE) {
		p.next()
	} else {
		p.expect(lexer.GT)
	}
	return ast.NewSliceTarget(p.posFrom(start), startExpr, stopExpr, stepExpr)
}

func (p *Parser) tryParseSliceBound() ast.Expr {
	if p.curIs(lexer.COLON) || p.curIs(lexer.GT) || p.curIs(lexer.CAPTURE) {
		return nil
	}
	return p.parseAdditive()
}
