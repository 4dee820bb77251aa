package parser

import (
	"strconv"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/lexer"
)

func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur.Pos

	switch p.cur.Type {
	case lexer.NUMBER:
		lit := p.cur.Literal
		p.next()
		v, _ := strconv.ParseFloat(lit, 64)
		return ast.NewNumberLiteral(p.posFrom(start), v)
	case lexer.STRING:
		raw := p.cur.Literal
		p.next()
		return p.parseStringLiteral(raw, start)
	case lexer.TRUE:
		p.next()
		return ast.NewBoolLiteral(p.posFrom(start), true)
	case lexer.FALSE:
		p.next()
		return ast.NewBoolLiteral(p.posFrom(start), false)
	case lexer.NULL:
		p.next()
		return ast.NewNullLiteral(p.posFrom(start))
	case lexer.LPAREN:
		return p.parseParenExpr(start)
	case lexer.LBRACE:
		return p.parseDictLiteral(start)
	case lexer.LBRACK:
		return p.parseListLiteral(start)
	case lexer.PIPE:
		return p.parseClosure(start)
	case lexer.DOLLAR:
		return p.parseDollarPrimary(start)
	case lexer.ACCUM:
		p.next()
		return ast.NewAccumulator(p.posFrom(start))
	case lexer.IDENT:
		return p.parseHostCallOrBareIdent(start)
	case lexer.QUESTION:
		return p.parseConditional(nil, toAstPos(start))
	case lexer.AT:
		p.next()
		body := p.parseBlock()
		return ast.NewLoop(p.posFrom(start), nil, body)
	case lexer.DO:
		return p.parseDoWhile(start)
	case lexer.ELLIPSIS:
		p.next()
		return ast.NewSpread(p.posFrom(start), p.parseExpr())
	case lexer.COLON:
		p.next()
		if p.curIs(lexer.QUESTION) {
			p.next()
			typeName := p.cur.Literal
			p.expect(lexer.IDENT)
			return ast.NewTypeCheck(p.posFrom(start), nil, typeName)
		}
		typeName := p.cur.Literal
		p.expect(lexer.IDENT)
		return ast.NewTypeAssertion(p.posFrom(start), nil, typeName)
	default:
		p.errorf("unexpected token %s %q in expression", p.cur.Type, p.cur.Literal)
		p.next()
		return ast.NewNullLiteral(p.posFrom(start))
	}
}

func (p *Parser) parseDoWhile(start lexer.Position) ast.Expr {
	p.next() // skip do
	body := p.parseBlock()
	p.expect(lexer.WHILE)
	cond := p.parseExpr()
	return ast.NewDoWhile(p.posFrom(start), body, cond)
}

// parseParenExpr disambiguates `(expr)` (GroupedExpr) from `(a, b)` /
// `(k: v, ...)` (TupleLiteral), per spec.md §3's all-positional-or-all-named
// invariant.
func (p *Parser) parseParenExpr(start lexer.Position) ast.Expr {
	p.next() // skip (
	if p.curIs(lexer.RPAREN) {
		p.next()
		return ast.NewTupleLiteral(p.posFrom(start), nil)
	}

	first := p.parseTupleEntry()
	if p.curIs(lexer.COMMA) {
		entries := []ast.TupleEntry{first}
		for p.curIs(lexer.COMMA) {
			p.next()
			if p.curIs(lexer.RPAREN) {
				break
			}
			entries = append(entries, p.parseTupleEntry())
		}
		p.expect(lexer.RPAREN)
		return ast.NewTupleLiteral(p.posFrom(start), entries)
	}

	p.expect(lexer.RPAREN)
	if first.Name != "" {
		return ast.NewTupleLiteral(p.posFrom(start), []ast.TupleEntry{first})
	}
	return ast.NewGroupedExpr(p.posFrom(start), first.Value)
}

// parseTupleEntry parses either `name: expr` or a bare positional `expr`.
func (p *Parser) parseTupleEntry() ast.TupleEntry {
	if p.curIs(lexer.IDENT) && p.peekIs(lexer.COLON) {
		name := p.cur.Literal
		p.next()
		p.next() // skip :
		return ast.TupleEntry{Name: name, Value: p.parseExpr()}
	}
	return ast.TupleEntry{Value: p.parseExpr()}
}

// parseListLiteral parses `[expr, expr, ...]`. A bare `[...]` is always a
// ListLiteral; it never competes with the access-chain `.[...]` or `[idx]`
// bracket forms, which only appear after a variable or field.
func (p *Parser) parseListLiteral(start lexer.Position) ast.Expr {
	p.next() // skip [
	var elements []ast.Expr
	for !p.curIs(lexer.RBRACK) && !p.curIs(lexer.EOF) {
		elements = append(elements, p.parseExpr())
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACK)
	return ast.NewListLiteral(p.posFrom(start), elements)
}

func (p *Parser) parseDictLiteral(start lexer.Position) ast.Expr {
	p.next() // skip {
	var entries []ast.DictEntry
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		key := p.cur.Literal
		if p.curIs(lexer.STRING) {
			key, _ = unescapeLiteral(p.cur.Literal)
		}
		p.next()
		p.expect(lexer.COLON)
		entries = append(entries, ast.DictEntry{Key: key, Value: p.parseExpr()})
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewDictLiteral(p.posFrom(start), entries)
}

func (p *Parser) parseClosure(start lexer.Position) ast.Expr {
	p.next() // skip opening |
	var params []ast.Param
	for !p.curIs(lexer.PIPE) && !p.curIs(lexer.EOF) {
		param := ast.Param{Name: p.cur.Literal}
		p.expect(lexer.IDENT)
		if p.curIs(lexer.COLON) {
			p.next()
			param.TypeName = p.cur.Literal
			p.expect(lexer.IDENT)
		}
		if p.curIs(lexer.EQUAL) {
			p.next()
			param.DefaultValue = p.parseExpr()
		}
		params = append(params, param)
		if p.curIs(lexer.COMMA) {
			p.next()
		}
	}
	p.expect(lexer.PIPE)
	body := p.parseBlock()
	return ast.NewClosure(p.posFrom(start), params, body)
}

// parseDollarPrimary handles every primary form beginning with `$`: the
// bare pipe value, a named variable with its access chain, and a
// closure-call-by-name (`$f(args)`).
func (p *Parser) parseDollarPrimary(start lexer.Position) ast.Expr {
	p.next() // skip $
	if !p.curIs(lexer.IDENT) {
		return ast.NewPipeValue(p.posFrom(start))
	}
	name := p.cur.Literal
	p.next()

	if p.curIs(lexer.LPAREN) {
		callee := ast.NewVariable(p.posFrom(start), name, nil, nil, nil)
		args := p.parseArgs()
		return ast.NewClosureCall(p.posFrom(start), callee, args)
	}

	chain, existence := p.parseAccessChain()
	var def ast.Expr
	if p.curIs(lexer.QUESTION_QQ) {
		p.next()
		def = p.parseExpr()
	}
	return ast.NewVariable(p.posFrom(start), name, chain, existence, def)
}

// parseAccessChain parses the mixed field/bracket access chain that
// follows a variable name, and its optional trailing existence check
// (spec.md §4.4).
func (p *Parser) parseAccessChain() ([]ast.AccessStep, *ast.ExistenceCheck) {
	var chain []ast.AccessStep
	for {
		switch {
		case p.curIs(lexer.DOT) && p.peekIs(lexer.QUESTION):
			p.next() // .
			p.next() // ?
			typeName := ""
			if p.curIs(lexer.IDENT) {
				// the checked field becomes the chain's final step, so the
				// existence check reports whether that field resolves.
				chain = append(chain, ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldLiteral, Name: p.cur.Literal}})
				p.next()
			}
			if p.curIs(lexer.AMP) {
				p.next()
				typeName = p.cur.Literal
				p.expect(lexer.IDENT)
			}
			return chain, &ast.ExistenceCheck{TypeName: typeName}

		case p.curIs(lexer.DOT) && p.peekIs(lexer.DOLLAR):
			p.next() // .
			p.next() // $
			varName := p.cur.Literal
			p.expect(lexer.IDENT)
			chain = append(chain, ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldVariableNamed, VariableName: varName}})

		case p.curIs(lexer.DOT) && p.peekIs(lexer.LBRACK):
			p.next() // .
			chain = append(chain, p.parseBracketFieldAccess())

		case p.curIs(lexer.DOT):
			p.next()
			name := p.cur.Literal
			p.expect(lexer.IDENT)
			chain = append(chain, ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldLiteral, Name: name}})

		case p.curIs(lexer.LBRACK):
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.RBRACK)
			chain = append(chain, ast.AccessStep{Bracket: &ast.BracketAccess{Index: idx}})

		default:
			return chain, nil
		}
	}
}

// parseBracketFieldAccess parses `.[...]`: alternatives (a comma list of
// string literals), a block (`.[{ ... }]`), or a single computed key.
func (p *Parser) parseBracketFieldAccess() ast.AccessStep {
	p.next() // skip [
	if p.curIs(lexer.LBRACE) {
		block := p.parseBlock()
		p.expect(lexer.RBRACK)
		return ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldBlock, Block: block}}
	}

	first := p.cur
	if first.Type == lexer.STRING && p.peekIs(lexer.COMMA) {
		alts := []string{mustUnescape(first.Literal)}
		p.next()
		for p.curIs(lexer.COMMA) {
			p.next()
			lit := mustUnescape(p.cur.Literal)
			p.expect(lexer.STRING)
			alts = append(alts, lit)
		}
		p.expect(lexer.RBRACK)
		return ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldAlternatives, Alternatives: alts}}
	}

	expr := p.parseExpr()
	p.expect(lexer.RBRACK)
	return ast.AccessStep{Field: &ast.FieldAccess{Kind: ast.FieldComputed, Expr: expr}}
}

func mustUnescape(raw string) string {
	s, _ := unescapeLiteral(raw)
	return s
}

// parseHostCallOrBareIdent handles a bare identifier at primary position.
// Rill only permits identifiers as call targets (`name(args)`, optionally
// namespaced `ns::name`); a bare identifier with no call parens is a
// parse error, since variable references always carry the `$` sigil.
func (p *Parser) parseHostCallOrBareIdent(start lexer.Position) ast.Expr {
	name := p.cur.Literal
	p.next()
	if !p.curIs(lexer.LPAREN) {
		p.errorf("expected '(' after function name %q", name)
		return ast.NewNullLiteral(p.posFrom(start))
	}
	args := p.parseArgs()

	if p.curIs(lexer.DOT) {
		return p.parseMethodChain(ast.NewHostCall(p.posFrom(start), name, args), start)
	}
	return ast.NewHostCall(p.posFrom(start), name, args)
}

// parseMethodChain wraps receiver in zero or more `.method(args)` calls,
// used when a method call appears at pipe-chain head position rather
// than after `->`.
func (p *Parser) parseMethodChain(receiver ast.Expr, start lexer.Position) ast.Expr {
	for p.curIs(lexer.DOT) && p.peekIs(lexer.IDENT) {
		p.next() // .
		method := p.cur.Literal
		p.next()
		if !p.curIs(lexer.LPAREN) {
			p.errorf("expected '(' after method name %q", method)
			break
		}
		args := p.parseArgs()
		receiver = ast.NewMethodCall(p.posFrom(start), receiver, method, args)
	}
	return receiver
}
