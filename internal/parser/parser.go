// Package parser turns a Rill token stream into the ast package's node
// tree. Like internal/lexer, it is an external collaborator to the
// runtime evaluator (spec.md §1) — kept deliberately small since the
// concrete surface grammar is not itself part of the specified core.
package parser

import (
	"fmt"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/lexer"
)

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	lx *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	errors []error
}

// New creates a Parser over the given source text.
func New(input string) *Parser {
	p := &Parser{lx: lexer.New(input)}
	p.next()
	p.next()
	return p
}

func newSub(input string) *Parser { return New(input) }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lx.NextToken()
}

// Errors returns all accumulated parse errors.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Errorf("%s (line %d, column %d): %s",
		p.cur.Type, p.cur.Pos.Line, p.cur.Pos.Column, fmt.Sprintf(format, args...)))
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

// expect advances past the current token if it matches t, else records an
// error and leaves the cursor unmoved.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)
	return false
}

func toAstPos(lp lexer.Position) ast.Position {
	return ast.Position{Line: lp.Line, Column: lp.Column, Offset: lp.Offset}
}

// posFrom builds a Span running from start (a raw lexer position captured
// before some production began) to the parser's current position.
func (p *Parser) posFrom(start lexer.Position) ast.Span {
	return ast.Span{Start: toAstPos(start), End: toAstPos(p.cur.Pos)}
}

// spanFrom builds a Span running from an already-converted ast.Position
// (typically another node's Span().Start) to the current position.
func (p *Parser) spanFrom(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: toAstPos(p.cur.Pos)}
}

// Parse scans and parses a full Rill program.
func Parse(input string) (*ast.Document, error) {
	p := New(input)
	doc := p.parseDocument()
	if errs := p.lx.Errors(); len(errs) > 0 {
		return doc, fmt.Errorf("%d lexical error(s), first: %s", len(errs), errs[0].Error())
	}
	if len(p.errors) > 0 {
		return doc, fmt.Errorf("%d parse error(s), first: %w", len(p.errors), p.errors[0])
	}
	return doc, nil
}

func (p *Parser) parseDocument() *ast.Document {
	start := p.cur.Pos
	var stmts []*ast.Statement
	for !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		for p.curIs(lexer.SEMICOLON) {
			p.next()
		}
	}
	return ast.NewDocument(p.posFrom(start), stmts)
}

func (p *Parser) parseStatement() *ast.Statement {
	start := p.cur.Pos
	var annotations []*ast.Annotation
	for p.curIs(lexer.CARET) {
		annotations = append(annotations, p.parseAnnotation())
	}
	expr := p.parsePipeChain()
	return ast.NewStatement(p.posFrom(start), annotations, expr)
}

func (p *Parser) parseAnnotation() *ast.Annotation {
	start := p.cur.Pos
	p.next() // skip ^
	p.expect(lexer.LPAREN)

	var args []ast.AnnotationArg
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.ELLIPSIS) {
			p.next()
			args = append(args, ast.AnnotationArg{Spread: true, Value: p.parseExpr()})
		} else {
			name := p.cur.Literal
			p.expect(lexer.IDENT)
			p.expect(lexer.COLON)
			args = append(args, ast.AnnotationArg{Name: name, Value: p.parseExpr()})
		}
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return ast.NewAnnotation(p.posFrom(start), args)
}

// parseBlock parses `{ stmt; stmt; ... }`.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Pos
	p.expect(lexer.LBRACE)
	var stmts []*ast.Statement
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		for p.curIs(lexer.SEMICOLON) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewBlock(p.posFrom(start), stmts)
}

// parseArgs parses a comma-separated `(expr, expr, ...)` argument list.
func (p *Parser) parseArgs() []ast.Expr {
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpr())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

// parseExpr parses everything below a pipe chain's head: the full binary/
// unary/postfix ladder down to a primary, plus the trailing ternary-like
// conditional and loop forms that bind a leading expression as their input.
func (p *Parser) parseExpr() ast.Expr {
	expr := p.parseLogicalOr()
	start := expr.Span().Start

	if p.curIs(lexer.QUESTION) {
		cond := p.parseConditional(expr, start)
		return cond
	}
	if p.curIs(lexer.AT) {
		p.next()
		body := p.parseBlock()
		return ast.NewLoop(p.spanFrom(start), expr, body)
	}
	return expr
}

func (p *Parser) parseConditional(cond ast.Expr, start ast.Position) ast.Expr {
	p.next() // skip ?
	then := p.parseBlock()
	var els *ast.Block
	if p.curIs(lexer.COLON) {
		p.next()
		els = p.parseBlock()
	}
	return ast.NewConditional(p.spanFrom(start), cond, then, els)
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.curIs(lexer.OR_OR) {
		start := left.Span().Start
		p.next()
		right := p.parseLogicalAnd()
		left = ast.NewBinaryExpr(p.spanFrom(start), ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.curIs(lexer.AND_AND) {
		start := left.Span().Start
		p.next()
		right := p.parseEquality()
		left = ast.NewBinaryExpr(p.spanFrom(start), ast.OpAnd, left, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.curIs(lexer.EQ_EQ) || p.curIs(lexer.NOT_EQ) {
		start := left.Span().Start
		op := ast.OpEq
		if p.curIs(lexer.NOT_EQ) {
			op = ast.OpNeq
		}
		p.next()
		right := p.parseRelational()
		left = ast.NewBinaryExpr(p.spanFrom(start), op, left, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.curIs(lexer.LT) || p.curIs(lexer.GT) || p.curIs(lexer.LTE) || p.curIs(lexer.GTE) {
		start := left.Span().Start
		var op ast.BinaryOp
		switch p.cur.Type {
		case lexer.LT:
			op = ast.OpLt
		case lexer.GT:
			op = ast.OpGt
		case lexer.LTE:
			op = ast.OpLte
		case lexer.GTE:
			op = ast.OpGte
		}
		p.next()
		right := p.parseAdditive()
		left = ast.NewBinaryExpr(p.spanFrom(start), op, left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		start := left.Span().Start
		op := ast.OpAdd
		if p.curIs(lexer.MINUS) {
			op = ast.OpSub
		}
		p.next()
		right := p.parseMultiplicative()
		left = ast.NewBinaryExpr(p.spanFrom(start), op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) || p.curIs(lexer.PERCENT) {
		start := left.Span().Start
		var op ast.BinaryOp
		switch p.cur.Type {
		case lexer.STAR:
			op = ast.OpMul
		case lexer.SLASH:
			op = ast.OpDiv
		case lexer.PERCENT:
			op = ast.OpMod
		}
		p.next()
		right := p.parseUnary()
		left = ast.NewBinaryExpr(p.spanFrom(start), op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.curIs(lexer.MINUS) || p.curIs(lexer.NOT) {
		start := p.cur.Pos
		op := ast.OpNeg
		if p.curIs(lexer.NOT) {
			op = ast.OpNot
		}
		p.next()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(p.posFrom(start), op, operand)
	}
	return p.parsePostfix()
}

// parsePostfix handles the trailing `:type` / `:?type` assertion and
// check forms that can follow any primary.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for p.curIs(lexer.COLON) && (p.peekIs(lexer.IDENT) || p.peekIs(lexer.QUESTION)) {
		start := expr.Span().Start
		p.next() // skip :
		if p.curIs(lexer.QUESTION) {
			p.next()
			typeName := p.cur.Literal
			p.expect(lexer.IDENT)
			expr = ast.NewTypeCheck(p.spanFrom(start), expr, typeName)
			continue
		}
		typeName := p.cur.Literal
		p.expect(lexer.IDENT)
		expr = ast.NewTypeAssertion(p.spanFrom(start), expr, typeName)
	}
	return expr
}
