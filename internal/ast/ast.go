package ast

import (
	"bytes"
	"errors"
	"sageleaf/internal/token"
	"strconv"
	"strings"
)

var ErrEmptyExpression = errors.New("expression must contain at least one term")

// The base Node interface
type Node interface {
	TokenLiteral() string
	String() string
}

// Term is a NumberLiteral, Identifier or Block.
type Term interface {
	Node
	termNode()
}

// Statement is a Binding or an Expression.
type Statement interface {
	Node
	statementNode()
}

// TypeExpr is the syntactic form of a type: a NamedType or a FunctionType.
type TypeExpr interface {
	Node
	typeNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	} else {
		return ""
	}
}

func (p *Program) String() string {
	var out bytes.Buffer

	for i, s := range p.Statements {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(s.String())
		out.WriteString(";")
	}

	return out.String()
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) termNode()            {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string {
	if nl.Token.Literal != "" {
		return nl.Token.Literal
	}
	return strconv.FormatFloat(nl.Value, 'g', -1, 64)
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Name  string
}

func (i *Identifier) termNode()            {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Name }

type Block struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (b *Block) termNode()            {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer

	out.WriteString("{")
	for i, s := range b.Statements {
		if i > 0 {
			out.WriteString(";")
		}
		out.WriteString(" ")
		out.WriteString(s.String())
	}
	out.WriteString(" }")

	return out.String()
}

// Expression is a juxtaposition of terms, folded left to right by application.
type Expression struct {
	Terms []Term
}

// NewExpression rejects an empty term list.
func NewExpression(terms ...Term) (*Expression, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyExpression
	}
	return &Expression{Terms: terms}, nil
}

func (e *Expression) statementNode() {}
func (e *Expression) TokenLiteral() string {
	if len(e.Terms) > 0 {
		return e.Terms[0].TokenLiteral()
	}
	return ""
}
func (e *Expression) String() string {
	parts := make([]string, 0, len(e.Terms))
	for _, t := range e.Terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

type Binding struct {
	Token token.Token // the token.LET token
	Name  *Identifier
	Type  TypeExpr
	Value *Expression
}

func (b *Binding) statementNode()       {}
func (b *Binding) TokenLiteral() string { return b.Token.Literal }
func (b *Binding) String() string {
	var out bytes.Buffer

	out.WriteString("let ")
	out.WriteString(b.Name.String())
	out.WriteString(" : ")
	if b.Type != nil {
		out.WriteString(b.Type.String())
	}
	out.WriteString(" = ")
	if b.Value != nil {
		out.WriteString(b.Value.String())
	}

	return out.String()
}

type NamedType struct {
	Token token.Token
	Name  string
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Literal }
func (nt *NamedType) String() string       { return nt.Name }

// FunctionType is the arrow form `Input -> Output`; arrows associate to the right.
type FunctionType struct {
	Token  token.Token // the token.ARROW token
	Input  TypeExpr
	Output TypeExpr
}

func (ft *FunctionType) typeNode()            {}
func (ft *FunctionType) TokenLiteral() string { return ft.Token.Literal }
func (ft *FunctionType) String() string {
	in := ft.Input.String()
	if _, ok := ft.Input.(*FunctionType); ok {
		in = "(" + in + ")"
	}
	return in + " -> " + ft.Output.String()
}
