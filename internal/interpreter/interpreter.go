package interpreter

import (
	"errors"
	"fmt"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/parser"
)

type Interpreter interface {
	// Interpret executes statements in order and stops at the first runtime
	// error, which is reported and returned.
	// The value of a trailing expression statement is returned for echo, nil
	// otherwise.
	//
	// Not thread safe. Bindings persist across calls.
	Interpret(stmts []parser.Stmt) (Value, error)

	// Execute executes a single statement.
	Execute(stmt parser.Stmt) error

	// Evaluate evaluates a single expression.
	Evaluate(expr parser.Expr) (Value, error)

	// Environment returns the scopes the interpreter runs against.
	Environment() *Environment
}

type interpreter struct {
	*interpreterOpts
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	return &interpreter{interpreterOpts: newInterpreterOpts(options...)}
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(stmts []parser.Stmt) (Value, error) {
	value := NilValue

	for _, stmt := range stmts {
		var err error
		if expr, ok := stmt.(*parser.StmtExpression); ok {
			value, err = i.evaluate(expr.Expression)
		} else {
			value, err = NilValue, i.execute(stmt)
		}

		if err != nil {
			i.reporter.ReportPanic(err)
			return nil, err
		}
	}

	return value, nil
}

// Execute implements Interpreter.
func (i *interpreter) Execute(stmt parser.Stmt) error {
	return i.execute(stmt)
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(expr parser.Expr) (Value, error) {
	return i.evaluate(expr)
}

// Environment implements Interpreter.
func (i *interpreter) Environment() *Environment {
	return i.env
}

func (i *interpreter) execute(stmt parser.Stmt) error {
	switch stmt := stmt.(type) {
	case *parser.StmtExpression:
		_, err := i.evaluate(stmt.Expression)
		return err
	case *parser.StmtPrint:
		return i.executePrint(stmt)
	case *parser.StmtVar:
		return i.executeVar(stmt)
	case *parser.StmtBlock:
		return i.executeBlock(stmt.Statements)
	case *parser.StmtIf:
		return i.executeIf(stmt)
	case *parser.StmtWhile:
		return i.executeWhile(stmt)
	}

	panic(fmt.Sprintf("unexpected statement %T", stmt))
}

func (i *interpreter) executePrint(stmt *parser.StmtPrint) error {
	value, err := i.evaluate(stmt.Expression)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(i.stdout, value.String())
	return err
}

func (i *interpreter) executeVar(stmt *parser.StmtVar) error {
	value := NilValue
	if stmt.Initializer != nil {
		var err error
		if value, err = i.evaluate(stmt.Initializer); err != nil {
			return err
		}
	}

	i.env.Define(stmt.Name, value)
	return nil
}

func (i *interpreter) executeBlock(stmts []parser.Stmt) error {
	i.env.PushScope()
	defer i.env.PopScope()

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *interpreter) executeIf(stmt *parser.StmtIf) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if IsTruthy(condition) {
		return i.execute(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}
	return nil
}

func (i *interpreter) executeWhile(stmt *parser.StmtWhile) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}
		if !IsTruthy(condition) {
			return nil
		}
		if err = i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

func (i *interpreter) evaluate(expr parser.Expr) (Value, error) {
	switch expr := expr.(type) {
	case *parser.ExprLiteral:
		return i.evaluateLiteral(expr), nil
	case *parser.ExprGrouping:
		return i.evaluate(expr.Expression)
	case *parser.ExprUnary:
		return i.evaluateUnary(expr)
	case *parser.ExprBinary:
		return i.evaluateBinary(expr)
	case *parser.ExprVariable:
		return i.evaluateVariable(expr)
	case *parser.ExprAssign:
		return i.evaluateAssign(expr)
	}

	panic(fmt.Sprintf("unexpected expression %T", expr))
}

func (i *interpreter) evaluateLiteral(expr *parser.ExprLiteral) Value {
	switch expr.Kind {
	case parser.LiteralNumber:
		return ValueNumber(expr.Number)
	case parser.LiteralString:
		return ValueString(expr.String)
	case parser.LiteralTrue:
		return TrueValue
	case parser.LiteralFalse:
		return FalseValue
	}
	return NilValue
}

func (i *interpreter) evaluateUnary(expr *parser.ExprUnary) (Value, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	value, err := unary(expr.Operator, right)
	if err != nil {
		return nil, i.runtimeError(expr.Line, err)
	}
	return value, nil
}

func (i *interpreter) evaluateBinary(expr *parser.ExprBinary) (Value, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	// and/or return the deciding operand itself, right is only evaluated
	// when left does not decide.
	switch expr.Operator {
	case parser.BinaryAnd:
		if !IsTruthy(left) {
			return left, nil
		}
		return i.evaluate(expr.Right)
	case parser.BinaryOr:
		if IsTruthy(left) {
			return left, nil
		}
		return i.evaluate(expr.Right)
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	value, err := binary(expr.Operator, left, right)
	if err != nil {
		return nil, i.runtimeError(expr.Line, err)
	}
	return value, nil
}

func (i *interpreter) evaluateVariable(expr *parser.ExprVariable) (Value, error) {
	if value, ok := i.env.Get(expr.Name); ok {
		return value, nil
	}

	return nil, i.runtimeError(expr.Line, loxerrors.ErrRuntimeUndefined(expr.Name))
}

func (i *interpreter) evaluateAssign(expr *parser.ExprAssign) (Value, error) {
	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	target, ok := expr.Target.(*parser.ExprVariable)
	if !ok {
		err = fmt.Errorf("%w %s.", loxerrors.ErrRuntimeInvalidAssignmentTarget, parser.NewAstPrinter().Print(expr.Target))
		return nil, i.runtimeError(expr.Line, err)
	}

	if err = i.env.Assign(target.Name, value); err != nil {
		return nil, i.runtimeError(target.Line, err)
	}
	return value, nil
}

func (i *interpreter) runtimeError(line int, err error) error {
	var rerr *loxerrors.RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	return loxerrors.NewRuntimeError(line, err)
}

var _ Interpreter = (*interpreter)(nil)
