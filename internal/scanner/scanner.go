package scanner

import (
	"errors"
	"strconv"
	"unicode"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/token"
)

// Scanner turns source text into a token stream terminated by EOF.
//
// Scan keeps going after a syntax error; all of them are returned joined.
type Scanner interface {
	Scan() ([]token.Token, error)
}

var singleCharTokens = map[rune]token.TokenType{
	'(': token.LEFT_PAREN,
	')': token.RIGHT_PAREN,
	'{': token.LEFT_BRACE,
	'}': token.RIGHT_BRACE,
	',': token.COMMA,
	'.': token.DOT,
	'-': token.MINUS,
	'+': token.PLUS,
	';': token.SEMICOLON,
	'*': token.STAR,
}

// operatorTokens are the operators that take an optional trailing '='.
var operatorTokens = map[rune]struct{ plain, withEqual token.TokenType }{
	'!': {token.BANG, token.BANG_EQUAL},
	'=': {token.EQUAL, token.EQUAL_EQUAL},
	'<': {token.LESS, token.LESS_EQUAL},
	'>': {token.GREATER, token.GREATER_EQUAL},
}

type scanner struct {
	source []rune
	tokens []token.Token
	errs   []error

	// start and startLine mark the lexeme being scanned, pos and line the
	// cursor.
	start, startLine int
	pos, line        int
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), line: 1}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start, s.startLine = s.pos, s.line
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))

	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}
	return s.tokens, nil
}

func (s *scanner) scanToken() {
	c := s.advance()

	if t, ok := singleCharTokens[c]; ok {
		s.emit(t, nil)
		return
	}
	if op, ok := operatorTokens[c]; ok {
		if s.match('=') {
			s.emit(op.withEqual, nil)
		} else {
			s.emit(op.plain, nil)
		}
		return
	}

	switch {
	case c == ' ', c == '\r', c == '\t', c == '\n':
	case c == '/':
		s.slash()
	case c == '"':
		s.string()
	case isDigit(c):
		s.number()
	case isAlpha(c):
		s.word()
	default:
		s.fail(loxerrors.ErrScanUnexpectedCharacter, strconv.QuoteRune(c))
	}
}

// slash is a division operator or the start of a comment.
func (s *scanner) slash() {
	switch {
	case s.match('/'):
		for !s.isAtEnd() && s.peek() != '\n' {
			s.advance()
		}
	case s.match('*'):
		s.blockComment()
	default:
		s.emit(token.SLASH, nil)
	}
}

// blockComment skips a /* */ comment. Comments nest.
func (s *scanner) blockComment() {
	for depth := 1; depth > 0; {
		switch {
		case s.isAtEnd():
			s.fail(loxerrors.ErrScanUnterminatedComment, "")
			return
		case s.peek() == '*' && s.peekNext() == '/':
			s.pos += 2
			depth--
		case s.peek() == '/' && s.peekNext() == '*':
			s.pos += 2
			depth++
		default:
			s.advance()
		}
	}
}

// string scans a string literal. Strings may span lines and have no escapes.
func (s *scanner) string() {
	for !s.isAtEnd() && s.peek() != '"' {
		s.advance()
	}
	if s.isAtEnd() {
		s.fail(loxerrors.ErrScanUnterminatedString, "")
		return
	}
	s.advance()

	s.emit(token.STRING, string(s.source[s.start+1:s.pos-1]))
}

// number scans digits with an optional fraction. A trailing '.' is not part
// of the number.
func (s *scanner) number() {
	s.skipDigits()
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		s.skipDigits()
	}

	value, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		s.fail(err, "")
		return
	}
	s.emit(token.NUMBER, value)
}

func (s *scanner) word() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}

	if keyword, ok := token.LookupKeyword(s.lexeme()); ok {
		s.emit(keyword, nil)
		return
	}
	s.emit(token.IDENTIFIER, nil)
}

func (s *scanner) skipDigits() {
	for isDigit(s.peek()) {
		s.advance()
	}
}

func (s *scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() rune {
	return s.peekAt(s.pos)
}

func (s *scanner) peekNext() rune {
	return s.peekAt(s.pos + 1)
}

func (s *scanner) peekAt(i int) rune {
	if i >= len(s.source) {
		return 0
	}
	return s.source[i]
}

func (s *scanner) advance() rune {
	c := s.source[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

func (s *scanner) match(expected rune) bool {
	if s.isAtEnd() || s.peek() != expected {
		return false
	}
	s.advance()
	return true
}

func (s *scanner) lexeme() string {
	return string(s.source[s.start:s.pos])
}

func (s *scanner) emit(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, s.lexeme(), literal, s.startLine))
}

// fail records a syntax error at the line the lexeme starts on.
func (s *scanner) fail(cause error, details string) {
	s.errs = append(s.errs, loxerrors.NewScanError(s.startLine, cause, details))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// isAlpha accepts ASCII letters and '_'. Other letters are rejected so that
// identifiers stay ASCII.
func isAlpha(c rune) bool {
	return c < unicode.MaxASCII && (unicode.IsLetter(c) || c == '_')
}

var _ Scanner = (*scanner)(nil)
