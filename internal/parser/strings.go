package parser

import (
	"strings"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/lexer"
)

// unescapeLiteral processes `\"`, `\\`, `\n`, `\t` escapes in a raw string
// token's literal text. It does not handle `${...}` interpolation — callers
// that need interpolation go through parseStringLiteral instead.
func unescapeLiteral(raw string) (string, error) {
	var b strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i == len(runes)-1 {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case '"':
			b.WriteRune('"')
		case '\\':
			b.WriteRune('\\')
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String(), nil
}

// parseStringLiteral splits a string token's raw content on `${...}`
// interpolation boundaries, unescaping literal fragments and recursively
// parsing each interpolated expression with a fresh sub-parser.
func (p *Parser) parseStringLiteral(raw string, start lexer.Position) ast.Expr {
	var parts []ast.StringPart
	runes := []rune(raw)
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			parts = append(parts, ast.StringPart{Literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i < len(runes)-1 {
			switch runes[i+1] {
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			case '"':
				lit.WriteRune('"')
			case '\\':
				lit.WriteRune('\\')
			case '$':
				lit.WriteRune('$')
			default:
				lit.WriteRune(runes[i+1])
			}
			i++
			continue
		}
		if runes[i] == '$' && i+1 < len(runes) && runes[i+1] == '{' {
			end := matchBrace(runes, i+2)
			if end < 0 {
				p.errorf("unterminated interpolation in string literal")
				lit.WriteString(string(runes[i:]))
				break
			}
			flushLiteral()
			exprSrc := string(runes[i+2 : end])
			sub := newSub(exprSrc)
			expr := sub.parseExpr()
			parts = append(parts, ast.StringPart{Expr: expr})
			i = end
			continue
		}
		lit.WriteRune(runes[i])
	}
	flushLiteral()

	return ast.NewStringLiteral(p.posFrom(start), parts)
}

// matchBrace returns the index of the `}` matching the `{` implicitly
// opened just before openAt, or -1 if unterminated. Nested braces (e.g. a
// dict literal inside an interpolation) are depth-counted.
func matchBrace(runes []rune, openAt int) int {
	depth := 1
	for i := openAt; i < len(runes); i++ {
		switch runes[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
