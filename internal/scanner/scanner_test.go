package scanner_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/scanner"
	"github.com/leonardinius/prattlox/internal/token"
)

func tok(t token.TokenType, lexeme string, line int) token.Token {
	return token.NewToken(t, lexeme, nil, line)
}

func lit(t token.TokenType, lexeme string, literal any, line int) token.Token {
	return token.NewToken(t, lexeme, literal, line)
}

func eof(line int) token.Token {
	return tok(token.EOF, "", line)
}

func TestScanTokens(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{"empty", "", []token.Token{eof(1)}},
		{
			"punctuation",
			"(){},.*+-;/",
			[]token.Token{
				tok(token.LEFT_PAREN, "(", 1),
				tok(token.RIGHT_PAREN, ")", 1),
				tok(token.LEFT_BRACE, "{", 1),
				tok(token.RIGHT_BRACE, "}", 1),
				tok(token.COMMA, ",", 1),
				tok(token.DOT, ".", 1),
				tok(token.STAR, "*", 1),
				tok(token.PLUS, "+", 1),
				tok(token.MINUS, "-", 1),
				tok(token.SEMICOLON, ";", 1),
				tok(token.SLASH, "/", 1),
				eof(1),
			},
		},
		{
			"operators",
			"! != = == < <= > >=",
			[]token.Token{
				tok(token.BANG, "!", 1),
				tok(token.BANG_EQUAL, "!=", 1),
				tok(token.EQUAL, "=", 1),
				tok(token.EQUAL_EQUAL, "==", 1),
				tok(token.LESS, "<", 1),
				tok(token.LESS_EQUAL, "<=", 1),
				tok(token.GREATER, ">", 1),
				tok(token.GREATER_EQUAL, ">=", 1),
				eof(1),
			},
		},
		{
			"operators are greedy",
			"!====<==",
			[]token.Token{
				tok(token.BANG_EQUAL, "!=", 1),
				tok(token.EQUAL_EQUAL, "==", 1),
				tok(token.EQUAL, "=", 1),
				tok(token.LESS_EQUAL, "<=", 1),
				tok(token.EQUAL, "=", 1),
				eof(1),
			},
		},
		{
			"operator at end",
			"!!",
			[]token.Token{tok(token.BANG, "!", 1), tok(token.BANG, "!", 1), eof(1)},
		},
		{
			"whitespace",
			"! \r\t=",
			[]token.Token{tok(token.BANG, "!", 1), tok(token.EQUAL, "=", 1), eof(1)},
		},
		{"line comment", "//comment", []token.Token{eof(1)}},
		{
			"line comment after token",
			"!//comment\n=",
			[]token.Token{tok(token.BANG, "!", 1), tok(token.EQUAL, "=", 2), eof(2)},
		},
		{
			"nested block comment",
			"/* a /* nested */ comment */!",
			[]token.Token{tok(token.BANG, "!", 1), eof(1)},
		},
		{
			"block comment counts lines",
			"/*\n\n*/ x",
			[]token.Token{tok(token.IDENTIFIER, "x", 3), eof(3)},
		},
		{
			"string",
			`"string"`,
			[]token.Token{lit(token.STRING, `"string"`, "string", 1), eof(1)},
		},
		{
			"empty string",
			`""`,
			[]token.Token{lit(token.STRING, `""`, "", 1), eof(1)},
		},
		{
			"strings have no escapes",
			`"a\nb"`,
			[]token.Token{lit(token.STRING, `"a\nb"`, `a\nb`, 1), eof(1)},
		},
		{
			"integer",
			"10",
			[]token.Token{lit(token.NUMBER, "10", 10.0, 1), eof(1)},
		},
		{
			"leading zeroes",
			"0012.34",
			[]token.Token{lit(token.NUMBER, "0012.34", 12.34, 1), eof(1)},
		},
		{
			"trailing dot",
			"12.",
			[]token.Token{lit(token.NUMBER, "12", 12.0, 1), tok(token.DOT, ".", 1), eof(1)},
		},
		{
			"leading dot",
			".5",
			[]token.Token{tok(token.DOT, ".", 1), lit(token.NUMBER, "5", 5.0, 1), eof(1)},
		},
		{
			"multiline string keeps its first line",
			"1\n\"a\nb\"\nc",
			[]token.Token{
				lit(token.NUMBER, "1", 1.0, 1),
				lit(token.STRING, "\"a\nb\"", "a\nb", 2),
				tok(token.IDENTIFIER, "c", 4),
				eof(4),
			},
		},
		{
			"identifiers",
			"_a a1 orchid",
			[]token.Token{
				tok(token.IDENTIFIER, "_a", 1),
				tok(token.IDENTIFIER, "a1", 1),
				tok(token.IDENTIFIER, "orchid", 1),
				eof(1),
			},
		},
		{
			"keywords",
			"and class else false for fun if nil or print return super this true var while",
			[]token.Token{
				tok(token.AND, "and", 1),
				tok(token.CLASS, "class", 1),
				tok(token.ELSE, "else", 1),
				tok(token.FALSE, "false", 1),
				tok(token.FOR, "for", 1),
				tok(token.FUN, "fun", 1),
				tok(token.IF, "if", 1),
				tok(token.NIL, "nil", 1),
				tok(token.OR, "or", 1),
				tok(token.PRINT, "print", 1),
				tok(token.RETURN, "return", 1),
				tok(token.SUPER, "super", 1),
				tok(token.THIS, "this", 1),
				tok(token.TRUE, "true", 1),
				tok(token.VAR, "var", 1),
				tok(token.WHILE, "while", 1),
				eof(1),
			},
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()

			tokens, err := scanner.NewScanner(tc.input).Scan()
			require.NoError(tt, err)
			assert.Equal(tt, tc.expected, tokens)
		})
	}
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name  string
		input string
		err   string
		cause error
	}{
		{"unexpected character", "⌘", "[line 1] Error: Unexpected character. '⌘'", loxerrors.ErrScanUnexpectedCharacter},
		{"non-ascii letter", "é", "[line 1] Error: Unexpected character. 'é'", loxerrors.ErrScanUnexpectedCharacter},
		{"unterminated string", "\n\"abc\n", "[line 2] Error: Unterminated string.", loxerrors.ErrScanUnterminatedString},
		{"unterminated comment", "/* abc /* */", "[line 1] Error: Unterminated comment.", loxerrors.ErrScanUnterminatedComment},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()

			tokens, err := scanner.NewScanner(tc.input).Scan()
			assert.Nil(tt, tokens)
			assert.EqualError(tt, err, tc.err)
			assert.ErrorIs(tt, err, tc.cause)
		})
	}
}

func TestScanCollectsAllErrors(t *testing.T) {
	t.Parallel()

	s := scanner.NewScanner("var a = 1 @\nprint a #;\n\"open")
	tokens, err := s.Scan()
	require.Error(t, err)
	assert.Nil(t, tokens)

	errs := loxerrors.Flatten(err)
	require.Len(t, errs, 3)

	var lines []int
	for _, e := range errs {
		var scanErr *loxerrors.ScannerError
		require.True(t, errors.As(e, &scanErr))
		lines = append(lines, scanErr.Line())
	}
	assert.Equal(t, []int{1, 2, 3}, lines)
	assert.ErrorIs(t, errs[0], loxerrors.ErrScanUnexpectedCharacter)
	assert.ErrorIs(t, errs[1], loxerrors.ErrScanUnexpectedCharacter)
	assert.ErrorIs(t, errs[2], loxerrors.ErrScanUnterminatedString)
}
