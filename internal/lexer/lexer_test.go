package lexer

import (
	"sageleaf/internal/token"
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `let x : Real = 40;
add x 2; # trailing comment
let f : (Real -> Real) -> Real = add;
// a whole line comment
{ let y : Real = 1_000.25; y }
.5
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "Real"},
		{token.ASSIGN, "="},
		{token.NUMBER, "40"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "add"},
		{token.IDENT, "x"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"},
		{token.IDENT, "f"},
		{token.COLON, ":"},
		{token.LPAREN, "("},
		{token.IDENT, "Real"},
		{token.ARROW, "->"},
		{token.IDENT, "Real"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "Real"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.SEMICOLON, ";"},
		{token.LBRACE, "{"},
		{token.LET, "let"},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.IDENT, "Real"},
		{token.ASSIGN, "="},
		{token.NUMBER, "1000.25"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "y"},
		{token.RBRACE, "}"},
		{token.NUMBER, ".5"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestIllegalTokens(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		literal string
	}{
		{"lone minus", "-", "-"},
		{"unknown symbol", "+", "+"},
		{"dangling underscore", "1_", "1_"},
		{"lone period", ".", "."},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tok := New(c.input).NextToken()
			if tok.Type != token.ILLEGAL {
				t.Errorf("expected ILLEGAL, got %q", tok.Type)
			}
			if tok.Literal != c.literal {
				t.Errorf("expected literal %q, got %q", c.literal, tok.Literal)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("add  x\n2")
	expected := []int{0, 5, 7, 8}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, pos := range expected {
		if tokens[i].Position != pos {
			t.Errorf("token %d (%q): expected position %d, got %d", i, tokens[i].Literal, pos, tokens[i].Position)
		}
	}
}
