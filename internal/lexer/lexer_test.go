package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `42 -> map |x| { $x * 2 } -> filter { $ > 5 } -> fold(0) { $@ + $ }`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{NUMBER, "42"},
		{ARROW, "->"},
		{MAP, "map"},
		{PIPE, "|"},
		{IDENT, "x"},
		{PIPE, "|"},
		{LBRACE, "{"},
		{DOLLAR, "$"},
		{IDENT, "x"},
		{STAR, "*"},
		{NUMBER, "2"},
		{RBRACE, "}"},
		{ARROW, "->"},
		{FILTER, "filter"},
		{LBRACE, "{"},
		{DOLLAR, "$"},
		{GT, ">"},
		{NUMBER, "5"},
		{RBRACE, "}"},
		{ARROW, "->"},
		{FOLD, "fold"},
		{LPAREN, "("},
		{NUMBER, "0"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{ACCUM, "$@"},
		{PLUS, "+"},
		{DOLLAR, "$"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong, expected=%s got=%s (literal=%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenOperatorsAndPunctuation(t *testing.T) {
	input := `-> :> ?? :: ... .. $@ == != <= >= && || -`

	tests := []TokenType{
		ARROW, CAPTURE, QUESTION_QQ, DOUBLE_COLON, ELLIPSIS, DOTDOT, ACCUM,
		EQ_EQ, NOT_EQ, LTE, GTE, AND_AND, OR_OR, MINUS, EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%s got=%s (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := `true false null break return each map fold filter do while`
	tests := []TokenType{
		TRUE, FALSE, NULL, BREAK, RETURN, EACH, MAP, FOLD, FILTER, DO, WHILE, EOF,
	}
	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - expected=%s got=%s", i, expected, tok.Type)
		}
	}
}

func TestNamespacedIdentifier(t *testing.T) {
	l := New(`c1::inc()`)
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "c1::inc" {
		t.Fatalf("expected namespaced ident c1::inc, got %s %q", tok.Type, tok.Literal)
	}
	if tok := l.NextToken(); tok.Type != LPAREN {
		t.Fatalf("expected LPAREN after namespaced call, got %s", tok.Type)
	}
}

func TestStringLiteralRawCapture(t *testing.T) {
	l := New(`"hello ${$x} world\n"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := `hello ${$x} world\n`
	if tok.Literal != want {
		t.Fatalf("expected raw literal %q, got %q", want, tok.Literal)
	}
}

func TestUnterminatedStringRecordsError(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexical error, got %d", len(l.Errors()))
	}
}

func TestNumberLiteralsDecimalOnly(t *testing.T) {
	input := `3.14 42 1_000 2e10 1.5e-3`
	l := New(input)
	for i := 0; i < 5; i++ {
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("token %d: expected NUMBER, got %s %q", i, tok.Type, tok.Literal)
		}
	}
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := New("#")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexical error, got %d", len(l.Errors()))
	}
}

func TestBOMIsStripped(t *testing.T) {
	l := New("\xEF\xBB\xBF42")
	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "42" {
		t.Fatalf("expected NUMBER 42 after BOM strip, got %s %q", tok.Type, tok.Literal)
	}
}

func TestLineCommentSkipped(t *testing.T) {
	l := New("1 // comment\n2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("expected 1, 2 got %q, %q", first.Literal, second.Literal)
	}
}

func TestBlockCommentSkipped(t *testing.T) {
	l := New("1 /* block\ncomment */ 2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != "1" || second.Literal != "2" {
		t.Fatalf("expected 1, 2 got %q, %q", first.Literal, second.Literal)
	}
}

func TestPositionTrackingByRuneColumn(t *testing.T) {
	l := New("héllo")
	tok := l.NextToken()
	if tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %s", tok.Type)
	}
	if tok.Pos.Column != 1 {
		t.Fatalf("expected identifier to start at column 1, got %d", tok.Pos.Column)
	}
}

func TestTracingOptionDoesNotAffectTokens(t *testing.T) {
	l := New("1 + 1", WithTracing(true))
	if tok := l.NextToken(); tok.Type != NUMBER {
		t.Fatalf("expected NUMBER, got %s", tok.Type)
	}
}
