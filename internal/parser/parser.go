package parser

import (
	"fmt"
	"sageleaf/internal/ast"
	"sageleaf/internal/lexer"
	"sageleaf/internal/token"
	"sageleaf/internal/util"
	"strconv"
)

// ParseError is a syntax error located in the source.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e ParseError) String() string {
	return fmt.Sprintf("[%3d:%2d] %s", e.Line, e.Column, e.Message)
}

type Parser struct {
	l      *lexer.Lexer
	src    string // source code here
	errors []ParseError

	curToken  token.Token
	peekToken token.Token
}

func New(l *lexer.Lexer, source string) *Parser {
	p := &Parser{
		l:      l,
		src:    source,
		errors: []ParseError{},
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// ParseSource is a shorthand for lexing and parsing a whole source text.
func ParseSource(source string) (*ast.Program, []string) {
	p := New(lexer.New(source), source)
	program := p.ParseProgram()
	return program, p.Errors()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) addError(message string, args ...interface{}) {
	p.addErrorAt(p.curToken.Position, message, args...)
}

func (p *Parser) addErrorAt(pos int, message string, args ...interface{}) {
	line, col := util.GetLineAndColumn(p.src, pos)
	p.errors = append(p.errors, ParseError{
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(message, args...),
	})
}

func (p *Parser) peekError(t token.TokenType) {
	p.addErrorAt(p.peekToken.Position, "expected next token to be %s, got %s instead", t, describe(p.peekToken))
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	} else {
		p.peekError(t)
		return false
	}
}

func (p *Parser) Errors() []string {
	msgs := make([]string, len(p.errors))
	for i, e := range p.errors {
		msgs[i] = e.String()
	}
	return msgs
}

// ParseErrors returns the errors with their positions, in the order they were found.
func (p *Parser) ParseErrors() []ParseError {
	return p.errors
}

// ParseProgram parses `;`-separated statements up to EOF. The final semicolon is optional.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	program.Statements = []ast.Statement{}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)

		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		} else if !p.peekTokenIs(token.EOF) {
			p.addErrorAt(p.peekToken.Position, "expected ; after statement, got %s instead", describe(p.peekToken))
			p.nextToken()
			p.synchronize()
			continue
		}
		p.nextToken()
	}

	return program
}

// synchronize skips the rest of a broken statement.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		if b := p.parseBinding(); b != nil {
			return b
		}
		return nil
	default:
		if e := p.parseExpression(); e != nil {
			return e
		}
		return nil
	}
}

func (p *Parser) parseBinding() *ast.Binding {
	stmt := &ast.Binding{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()

	stmt.Type = p.parseType()
	if stmt.Type == nil {
		return nil
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}

	return stmt
}

// parseType reads `atom [-> type]`, so arrows nest to the right.
func (p *Parser) parseType() ast.TypeExpr {
	var input ast.TypeExpr

	switch p.curToken.Type {
	case token.IDENT:
		input = &ast.NamedType{Token: p.curToken, Name: p.curToken.Literal}
	case token.LPAREN:
		p.nextToken()
		input = p.parseType()
		if input == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	default:
		p.addError("expected a type, got %s instead", describe(p.curToken))
		return nil
	}

	if !p.peekTokenIs(token.ARROW) {
		return input
	}
	p.nextToken()
	fn := &ast.FunctionType{Token: p.curToken, Input: input}
	p.nextToken()

	fn.Output = p.parseType()
	if fn.Output == nil {
		return nil
	}
	return fn
}

func (p *Parser) parseExpression() *ast.Expression {
	var terms []ast.Term

	for {
		term := p.parseTerm()
		if term == nil {
			return nil
		}
		terms = append(terms, term)

		if !isTermStart(p.peekToken.Type) {
			break
		}
		p.nextToken()
	}

	expr, err := ast.NewExpression(terms...)
	if err != nil {
		p.addError("%s", err)
		return nil
	}
	return expr
}

func (p *Parser) parseTerm() ast.Term {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseNumberLiteral()
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
	case token.LBRACE:
		return p.parseBlock()
	case token.ILLEGAL:
		p.addError("illegal token %q", p.curToken.Literal)
		return nil
	default:
		p.addError("expected a term, got %s instead", describe(p.curToken))
		return nil
	}
}

func (p *Parser) parseNumberLiteral() ast.Term {
	lit := &ast.NumberLiteral{Token: p.curToken}

	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError("could not parse %q as number", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseBlock() ast.Term {
	block := &ast.Block{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			p.addErrorAt(block.Token.Position, "unterminated block")
			return nil
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)

		switch {
		case p.peekTokenIs(token.SEMICOLON):
			p.nextToken()
			p.nextToken()
		case p.peekTokenIs(token.RBRACE):
			p.nextToken()
		default:
			p.addErrorAt(p.peekToken.Position, "expected ; or } after statement, got %s instead", describe(p.peekToken))
			return nil
		}
	}

	return block
}

func isTermStart(t token.TokenType) bool {
	return t == token.NUMBER || t == token.IDENT || t == token.LBRACE
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s (%q)", tok.Type, tok.Literal)
}
