package token

import (
	"fmt"
)

// Token represents a lexical token.
//
// Literal holds the payload of NUMBER (float64) and STRING (string) tokens,
// nil otherwise. Line is 1-based.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
}

func NewToken(t TokenType, lexeme string, literal any, line int) Token {
	return Token{
		Type:    t,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    line,
	}
}

// Describe renders the token the way diagnostics refer to it.
func (t Token) Describe() string {
	if t.Type == EOF {
		return "end"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}

// GoString implements fmt.GoStringer.
func (t Token) GoString() string {
	return fmt.Sprintf("{Type: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Type, t.Lexeme, t.Literal, t.Line)
}

var _ fmt.Stringer = (*Token)(nil)
var _ fmt.GoStringer = (*Token)(nil)
