package loxerrors

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/leonardinius/prattlox/internal/token"
)

var (
	ErrParseError           = errors.New("parse error.")
	ErrParseUnexpectedToken = errors.New("unexpected token.")
)

// UnexpectedTokenError is the structured cause of parse errors: the parser
// wanted Expected (a lexeme such as ")" or a description such as
// "expression") and got Found. After optionally names the construct.
type UnexpectedTokenError struct {
	Expected string
	After    string
	Found    token.Token
}

func NewUnexpectedTokenError(expected, after string, found token.Token) *UnexpectedTokenError {
	return &UnexpectedTokenError{Expected: expected, After: after, Found: found}
}

// Error implements error.
func (e *UnexpectedTokenError) Error() string {
	after := e.After
	if after != "" {
		after = " " + after
	}
	return fmt.Sprintf("expected %s%s, found %s.", e.describeExpected(), after, e.Found.Describe())
}

// Is reports ErrParseUnexpectedToken as a match.
func (e *UnexpectedTokenError) Is(target error) bool {
	return target == ErrParseUnexpectedToken
}

// Lexemes are quoted, descriptions are not.
func (e *UnexpectedTokenError) describeExpected() string {
	for _, r := range e.Expected {
		if !unicode.IsLetter(r) && r != ' ' {
			return "'" + e.Expected + "'"
		}
	}
	return e.Expected
}

func NewParseError(tok *token.Token, cause error) error {
	return &ParserError{tok: tok, cause: cause}
}

// ParserError is one failed statement. The parser recovers after it, so a
// single parse may produce several.
type ParserError struct {
	tok   *token.Token
	cause error
}

// Line returns the line of the offending token.
func (p *ParserError) Line() int {
	return p.tok.Line
}

// Token returns the offending token.
func (p *ParserError) Token() token.Token {
	return *p.tok
}

// Error implements error.
func (p *ParserError) Error() string {
	where := "at end"
	if p.tok.Type != token.EOF {
		where = fmt.Sprintf("at '%s'", p.tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] parse error %s: %v", p.tok.Line, where, p.cause)
}

func (p *ParserError) Unwrap() error {
	return p.cause
}

// Is lets callers match any parse error with ErrParseError.
func (p *ParserError) Is(target error) bool {
	return target == ErrParseError
}

var _ error = (*ParserError)(nil)
var _ error = (*UnexpectedTokenError)(nil)
var _ unwrapInterface = (*ParserError)(nil)
