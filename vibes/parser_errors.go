package vibes

import (
	"fmt"
	"strings"
)

type parseError struct {
	pos    Position
	msg    string
	source string
}

func (e *parseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.pos.Line, e.pos.Column, e.msg)
	if frame := formatCodeFrame(e.source, e.pos); frame != "" {
		b.WriteByte('\n')
		b.WriteString(frame)
	}
	return b.String()
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, describeToken(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addParseError(tok.Pos, "unexpected "+describeToken(tok))
}

func (p *parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &parseError{pos: pos, msg: msg, source: p.l.input})
}

var tokenLabels = map[TokenType]string{
	tokenIllegal: "invalid token",
	tokenEOF:     "end of input",
	tokenIdent:   "identifier",
	tokenInt:     "integer",
	tokenFloat:   "float",
	tokenString:  "string",
}

func tokenLabel(tt TokenType) string {
	if label, ok := tokenLabels[tt]; ok {
		return label
	}
	for word, kw := range keywords {
		if kw == tt {
			return "'" + word + "'"
		}
	}
	return fmt.Sprintf("%q", string(tt))
}

// describeToken labels tok for a message. Illegal tokens carry the
// lexer's diagnosis in their literal.
func describeToken(tok Token) string {
	if tok.Type == tokenIllegal {
		return fmt.Sprintf("%s %q", tokenLabel(tok.Type), tok.Literal)
	}
	return "token " + tokenLabel(tok.Type)
}
