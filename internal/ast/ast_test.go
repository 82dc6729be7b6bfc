package ast

import (
	"errors"
	"sageleaf/internal/token"
	"testing"
)

func TestNewExpressionRejectsEmpty(t *testing.T) {
	expr, err := NewExpression()
	if !errors.Is(err, ErrEmptyExpression) {
		t.Fatalf("expected ErrEmptyExpression, got %v", err)
	}
	if expr != nil {
		t.Errorf("expected nil expression, got %v", expr)
	}
}

func TestString(t *testing.T) {
	add := &Identifier{Token: token.Token{Type: token.IDENT, Literal: "add"}, Name: "add"}
	x := &Identifier{Token: token.Token{Type: token.IDENT, Literal: "x"}, Name: "x"}
	two := &NumberLiteral{Token: token.Token{Type: token.NUMBER, Literal: "2"}, Value: 2}

	realType := &NamedType{Name: "Real"}
	program := &Program{
		Statements: []Statement{
			&Binding{
				Token: token.Token{Type: token.LET, Literal: "let"},
				Name:  x,
				Type:  realType,
				Value: &Expression{Terms: []Term{&NumberLiteral{Value: 40}}},
			},
			&Expression{Terms: []Term{add, x, two}},
			&Expression{Terms: []Term{&Block{Statements: []Statement{
				&Expression{Terms: []Term{x}},
			}}}},
		},
	}

	expected := "let x : Real = 40; add x 2; { x };"
	if program.String() != expected {
		t.Errorf("program.String() wrong. expected=%q, got=%q", expected, program.String())
	}
}

func TestFunctionTypeString(t *testing.T) {
	cases := []struct {
		name     string
		typ      TypeExpr
		expected string
	}{
		{
			"right nested",
			&FunctionType{
				Input:  &NamedType{Name: "Real"},
				Output: &FunctionType{Input: &NamedType{Name: "Real"}, Output: &NamedType{Name: "Real"}},
			},
			"Real -> Real -> Real",
		},
		{
			"function input",
			&FunctionType{
				Input:  &FunctionType{Input: &NamedType{Name: "Real"}, Output: &NamedType{Name: "Real"}},
				Output: &NamedType{Name: "Unit"},
			},
			"(Real -> Real) -> Unit",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.typ.String(); got != c.expected {
				t.Errorf("expected %s, got %s", c.expected, got)
			}
		})
	}
}
