package vibes

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer turns source text into tokens on demand. ch is the rune at byte
// offset pos; next is the offset of the rune after it.
type lexer struct {
	input string
	pos   int
	next  int
	ch    rune

	line   int
	column int
}

var keywords = map[string]TokenType{
	"if":    tokenIf,
	"elsif": tokenElsif,
	"else":  tokenElse,
	"end":   tokenEnd,
	"for":   tokenFor,
	"in":    tokenIn,
	"true":  tokenTrue,
	"false": tokenFalse,
	"nil":   tokenNil,
}

var pairOperators = map[[2]rune]TokenType{
	{'.', '.'}: tokenRange,
	{'=', '='}: tokenEQ,
	{'!', '='}: tokenNotEQ,
	{'<', '='}: tokenLTE,
	{'>', '='}: tokenGTE,
	{'&', '&'}: tokenAnd,
	{'|', '|'}: tokenOr,
}

var singleOperators = map[rune]TokenType{
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenAsterisk,
	'/': tokenSlash,
	'%': tokenPercent,
	'!': tokenBang,
	'=': tokenAssign,
	'<': tokenLT,
	'>': tokenGT,
	'.': tokenDot,
	',': tokenComma,
	':': tokenColon,
	'(': tokenLParen,
	')': tokenRParen,
	'{': tokenLBrace,
	'}': tokenRBrace,
	'[': tokenLBracket,
	']': tokenRBracket,
}

var stringEscapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
	'0': 0,
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1}
	l.advance()
	return l
}

func (l *lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos = l.next
	l.column++
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += w
}

// peekAt returns the rune n positions after the one following ch, or 0
// past the end of input.
func (l *lexer) peekAt(n int) rune {
	off := l.next
	for ; n >= 0; n-- {
		if off >= len(l.input) {
			return 0
		}
		r, w := utf8.DecodeRuneInString(l.input[off:])
		if n == 0 {
			return r
		}
		off += w
	}
	return 0
}

func (l *lexer) peek() rune { return l.peekAt(0) }

func (l *lexer) NextToken() Token {
	l.skipTrivia()
	pos := Position{Line: l.line, Column: l.column}

	switch {
	case l.ch == 0:
		return Token{Type: tokenEOF, Pos: pos}
	case l.ch == '"':
		return l.scanString(pos)
	case isIdentifierStart(l.ch):
		return l.scanIdentifier(pos)
	case isDigit(l.ch):
		return l.scanNumber(pos)
	}

	if tt, ok := pairOperators[[2]rune{l.ch, l.peek()}]; ok {
		l.advance()
		l.advance()
		return Token{Type: tt, Literal: string(tt), Pos: pos}
	}

	ch := l.ch
	l.advance()
	if tt, ok := singleOperators[ch]; ok {
		return Token{Type: tt, Literal: string(tt), Pos: pos}
	}
	return Token{Type: tokenIllegal, Literal: string(ch), Pos: pos}
}

func (l *lexer) skipTrivia() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for l.ch != 0 && l.ch != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) scanIdentifier(pos Position) Token {
	start := l.pos
	for isIdentifierRune(l.ch) {
		l.advance()
	}
	literal := l.input[start:l.pos]
	tt, ok := keywords[literal]
	if !ok {
		tt = tokenIdent
	}
	return Token{Type: tt, Literal: literal, Pos: pos}
}

// scanNumber reads an integer or float literal. Underscores between digits
// are separators and are dropped from the literal. A number running into
// letters, such as an exponent with no digits, is illegal.
func (l *lexer) scanNumber(pos Position) Token {
	start := l.pos
	var sb strings.Builder
	tt := tokenInt

	l.scanDigits(&sb)
	if l.ch == '.' && isDigit(l.peek()) {
		tt = tokenFloat
		sb.WriteByte('.')
		l.advance()
		l.scanDigits(&sb)
	}
	if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
		tt = tokenFloat
		sb.WriteByte('e')
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			sb.WriteRune(l.ch)
			l.advance()
		}
		l.scanDigits(&sb)
	}
	if isIdentifierRune(l.ch) {
		for isIdentifierRune(l.ch) || l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		return Token{Type: tokenIllegal, Literal: "malformed number " + l.input[start:l.pos], Pos: pos}
	}
	return Token{Type: tt, Literal: sb.String(), Pos: pos}
}

func (l *lexer) scanDigits(sb *strings.Builder) {
	prevDigit := false
	for {
		switch {
		case isDigit(l.ch):
			sb.WriteRune(l.ch)
			prevDigit = true
		case l.ch == '_' && prevDigit && isDigit(l.peek()):
			prevDigit = false
		default:
			return
		}
		l.advance()
	}
}

func (l *lexer) exponentFollows() bool {
	next := l.peek()
	if next == '+' || next == '-' {
		return isDigit(l.peekAt(1))
	}
	return isDigit(next)
}

func (l *lexer) scanString(pos Position) Token {
	var sb strings.Builder
	l.advance()
	for l.ch != '"' {
		switch l.ch {
		case 0:
			return Token{Type: tokenIllegal, Literal: "unterminated string", Pos: pos}
		case '\\':
			l.advance()
			if l.ch == 0 {
				continue
			}
			if r, ok := stringEscapes[l.ch]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(l.ch)
			}
		default:
			sb.WriteRune(l.ch)
		}
		l.advance()
	}
	l.advance()
	return Token{Type: tokenString, Literal: sb.String(), Pos: pos}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
