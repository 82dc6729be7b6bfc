package lexer

import (
	"errors"
	"sageleaf/internal/token"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize drains the lexer, the trailing EOF token included.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	startPosition := l.position

	switch l.ch {
	case '=':
		tok = newToken(token.ASSIGN, l.ch, startPosition)
	case '-':
		tok = l.handleCompoundToken(token.ILLEGAL, '>', token.ARROW)
	case ':':
		tok = newToken(token.COLON, l.ch, startPosition)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, startPosition)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startPosition)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startPosition)
	case '{':
		tok = newToken(token.LBRACE, l.ch, startPosition)
	case '}':
		tok = newToken(token.RBRACE, l.ch, startPosition)
	case '.':
		if !isDigit(l.peekChar()) {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
			break
		}
		return l.numberToken(startPosition)
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
		tok.Position = startPosition
		return tok
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Position = startPosition
			return tok
		} else if isDigit(l.ch) {
			return l.numberToken(startPosition)
		} else {
			tok = newToken(token.ILLEGAL, l.ch, startPosition)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) numberToken(startPosition int) token.Token {
	literal, err := l.readNumber()
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Literal: l.input[startPosition:l.position], Position: startPosition}
	}
	return token.Token{Type: token.NUMBER, Literal: literal, Position: startPosition}
}

func (l *Lexer) handleCompoundToken(
	t token.TokenType,
	ch1 rune,
	t1 token.TokenType,
) token.Token {
	startPosition := l.position
	if l.peekChar() == ch1 {
		first := l.ch
		l.readChar()
		literal := string(first) + string(l.ch)
		return token.Token{Type: t1, Literal: literal, Position: startPosition}
	} else {
		return newToken(t, l.ch, startPosition)
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '#':
			l.skipToLineEnd()
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber returns the literal with any digit separators removed.
func (l *Lexer) readNumber() (string, error) {
	numStr := ""
	if err := l.readDigits(&numStr); err != nil {
		return "", err
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		numStr += string(l.ch)
		l.readChar()
		if err := l.readDigits(&numStr); err != nil {
			return "", err
		}
	}
	return numStr, nil
}

func (l *Lexer) readDigits(numStr *string) error {
	for isDigit(l.ch) || l.ch == '_' {
		if l.ch == '_' {
			peek := l.peekChar()
			prev := rune(0)
			if l.position > 0 {
				prev = rune(l.input[l.position-1])
			}
			// Rule: _ must be between digits
			if !isDigit(prev) || !isDigit(peek) {
				l.readChar()
				return errors.New("underscore must be between digits in number literal")
			}
		} else {
			*numStr += string(l.ch)
		}
		l.readChar()
	}
	return nil
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}
