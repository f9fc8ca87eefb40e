package parser

import (
	"errors"
	"fmt"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/token"
)

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	// Parse parses a whole program.
	//
	// A malformed statement does not stop the parse: the error is recorded,
	// the parser skips to the next statement boundary and carries on.
	// On failure the returned error joins every recorded *loxerrors.ParserError
	// (see loxerrors.Flatten) and no statements are returned.
	Parse() ([]Stmt, error)

	// ParseExpression parses a single expression spanning all tokens.
	ParseExpression() (Expr, error)
}

type parser struct {
	tokens  []token.Token
	current int
	err     error
	errs    []error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v, errs: %#v}", p.tokens, p.current, p.err, p.errs)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v, errs: %d}", len(p.tokens), p.err, len(p.errs))
}

// Parse implements Parser.
func (p *parser) Parse() ([]Stmt, error) {
	statements := p.statements(token.EOF)

	if len(p.errs) > 0 {
		// if we are at error state, we do not return invalid ast tree
		return nilStatements, errors.Join(p.errs...)
	}

	return statements, nil
}

// ParseExpression implements Parser.
func (p *parser) ParseExpression() (Expr, error) {
	expr := p.expression()
	if !p.isDone() {
		p.reportExprError(p.unexpected("end of input", "after expression"))
	}

	if p.err != nil {
		return nilExpr, p.err
	}
	return expr, nil
}

// statements collects statements up to (not including) terminator, the
// shared loop of the program and of blocks. Failed statements are recorded
// and skipped.
func (p *parser) statements(terminator token.TokenType) []Stmt {
	var stmts []Stmt

	for !p.isAtEnd() && !p.check(terminator) {
		start := p.current
		stmt := p.statement()
		if p.err != nil {
			p.recover(start)
			continue
		}
		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *parser) statement() Stmt {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	if p.match(token.PRINT) {
		return p.printStatement()
	}

	if p.match(token.LEFT_BRACE) {
		return p.blockStatement()
	}

	if p.match(token.IF) {
		return p.ifStatement()
	}

	if p.match(token.WHILE) {
		return p.whileStatement()
	}

	return p.expressionStatement()
}

func (p *parser) varDeclaration() Stmt {
	if !p.match(token.IDENTIFIER) {
		return p.reportStmtError(p.unexpected("variable name", "after 'var'"))
	}
	name := p.previous()

	var initializer Expr = nilExpr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(p.unexpected(";", "after variable declaration"))
	}

	return &StmtVar{Name: name.Lexeme, Initializer: initializer, Line: name.Line}
}

func (p *parser) printStatement() Stmt {
	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(p.unexpected(";", "after print value"))
	}

	return &StmtPrint{Expression: expr}
}

func (p *parser) blockStatement() Stmt {
	stmts := p.statements(token.RIGHT_BRACE)

	if !p.match(token.RIGHT_BRACE) {
		return p.reportStmtError(p.unexpected("}", "after block"))
	}

	return &StmtBlock{Statements: stmts}
}

func (p *parser) ifStatement() Stmt {
	condition := p.condition("if")
	thenBranch := p.statement()

	var elseBranch Stmt = nilStmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}

	if p.err != nil {
		return nilStmt
	}
	return &StmtIf{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *parser) whileStatement() Stmt {
	condition := p.condition("while")
	body := p.statement()

	if p.err != nil {
		return nilStmt
	}
	return &StmtWhile{Condition: condition, Body: body}
}

// condition parses the parenthesized condition of if and while. The
// parentheses are not kept in the tree.
func (p *parser) condition(keyword string) Expr {
	if !p.match(token.LEFT_PAREN) {
		return p.reportExprError(p.unexpected("(", "after '"+keyword+"'"))
	}

	expr := p.expression()

	if !p.match(token.RIGHT_PAREN) {
		return p.reportExprError(p.unexpected(")", "after "+keyword+" condition"))
	}

	return expr
}

func (p *parser) expressionStatement() Stmt {
	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(p.unexpected(";", "after expression"))
	}

	return &StmtExpression{Expression: expr}
}

func (p *parser) expression() Expr {
	return p.parseExpr(bpNone)
}

// parseExpr is the precedence climbing loop: it keeps folding infix
// operators into expr while they bind tighter than threshold.
func (p *parser) parseExpr(threshold int) Expr {
	expr := p.prefix()

	for {
		op, ok := p.peekBinaryOperator()
		if !ok || op.bindingPower() <= threshold {
			break
		}
		operator := p.advance()
		expr = p.infix(expr, op, operator)
	}

	return expr
}

func (p *parser) prefix() Expr {
	if op, ok := p.peekUnaryOperator(); ok {
		operator := p.advance()
		right := p.parseExpr(op.bindingPower())
		return &ExprUnary{Operator: op, Right: right, Line: operator.Line}
	}

	return p.primary()
}

func (p *parser) infix(left Expr, op BinaryOperator, operator *token.Token) Expr {
	if op == BinaryEqual {
		// right associative: a = b = c is a = (b = c)
		value := p.parseExpr(op.bindingPower() - 1)
		return &ExprAssign{Target: left, Value: value, Line: operator.Line}
	}

	right := p.parseExpr(op.bindingPower())
	return &ExprBinary{Left: left, Operator: op, Right: right, Line: operator.Line}
}

func (p *parser) primary() Expr {
	if p.match(token.FALSE) {
		return NewBoolLiteral(false)
	}
	if p.match(token.TRUE) {
		return NewBoolLiteral(true)
	}
	if p.match(token.NIL) {
		return NewNilLiteral()
	}

	if p.match(token.NUMBER) {
		return p.numberLiteral(p.previous())
	}

	if p.match(token.STRING) {
		tok := p.previous()
		s, _ := tok.Literal.(string)
		return NewStringLiteral(s)
	}

	if p.match(token.IDENTIFIER) {
		tok := p.previous()
		return &ExprVariable{Name: tok.Lexeme, Line: tok.Line}
	}

	return p.grouping()
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		if !p.match(token.RIGHT_PAREN) {
			return p.reportExprError(p.unexpected(")", "after expression"))
		}
		return &ExprGrouping{Expression: expr}
	}

	return p.reportExprError(p.unexpected("expression", ""))
}

func (p *parser) numberLiteral(tok *token.Token) Expr {
	switch n := tok.Literal.(type) {
	case float64:
		return NewNumberLiteral(n)
	case int:
		return NewNumberLiteral(float64(n))
	}
	return p.reportTokenExprError(tok, p.unexpected("number", ""))
}

func (p *parser) peekUnaryOperator() (UnaryOperator, bool) {
	if p.isDone() {
		return 0, false
	}
	return unaryOperatorOf(p.peek().Type)
}

func (p *parser) peekBinaryOperator() (BinaryOperator, bool) {
	if p.isDone() {
		return 0, false
	}
	return binaryOperatorOf(p.peek().Type)
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// Be carefull with isAtEnd, it does not check for parse errors.
// Use isDone instead.
// isAtEnd is used from the statement loop, synchronize and advance only.
func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) isDone() bool {
	// at the end, OR, have errors
	return p.isAtEnd() || p.err != nil
}

func (p *parser) unexpected(expected, after string) error {
	return loxerrors.NewUnexpectedTokenError(expected, after, *p.peek())
}

func (p *parser) reportStmtError(err error) Stmt {
	if p.err != nil {
		return nilStmt
	}

	p.err = loxerrors.NewParseError(p.peek(), err)

	return nilStmt
}

func (p *parser) reportExprError(err error) Expr {
	return p.reportTokenExprError(p.peek(), err)
}

func (p *parser) reportTokenExprError(tok *token.Token, err error) Expr {
	if p.err != nil {
		return nilExpr
	}
	p.err = loxerrors.NewParseError(tok, err)
	return nilExpr
}

// recover records the pending error and resynchronizes. start is where the
// failed statement began; at least one token is always consumed.
func (p *parser) recover(start int) {
	p.errs = append(p.errs, p.err)
	p.err = nil

	p.synchronize()

	if p.current == start {
		p.advance()
	}
}

// synchronize discards tokens up to the next statement boundary: just past
// a ';', or before a '}' or a keyword that starts a statement.
func (p *parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case token.SEMICOLON:
			p.advance()
			return
		case token.RIGHT_BRACE,
			token.VAR,
			token.PRINT,
			token.IF,
			token.WHILE:
			return
		}

		p.advance()
	}
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
