package parser

import (
	"fmt"

	"github.com/leonardinius/prattlox/internal/token"
)

type UnaryOperator uint8

const (
	UnaryMinus UnaryOperator = iota
	UnaryNot
)

type BinaryOperator uint8

const (
	BinaryMinus BinaryOperator = iota
	BinaryPlus
	BinaryDivide
	BinaryMultiply
	BinaryNotEqual
	BinaryEqual // assignment, never stored in ExprBinary
	BinaryEqualEqual
	BinaryGreater
	BinaryGreaterEqual
	BinaryLess
	BinaryLessEqual
	BinaryAnd
	BinaryOr
)

// String returns the operator lexeme.
func (op UnaryOperator) String() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	}
	return fmt.Sprintf("UnaryOperator(%d)", uint8(op))
}

// Name returns the variant tag used in serialized trees.
func (op UnaryOperator) Name() string {
	switch op {
	case UnaryMinus:
		return "Minus"
	case UnaryNot:
		return "Not"
	}
	return op.String()
}

// String returns the operator lexeme.
func (op BinaryOperator) String() string {
	switch op {
	case BinaryMinus:
		return "-"
	case BinaryPlus:
		return "+"
	case BinaryDivide:
		return "/"
	case BinaryMultiply:
		return "*"
	case BinaryNotEqual:
		return "!="
	case BinaryEqual:
		return "="
	case BinaryEqualEqual:
		return "=="
	case BinaryGreater:
		return ">"
	case BinaryGreaterEqual:
		return ">="
	case BinaryLess:
		return "<"
	case BinaryLessEqual:
		return "<="
	case BinaryAnd:
		return "and"
	case BinaryOr:
		return "or"
	}
	return fmt.Sprintf("BinaryOperator(%d)", uint8(op))
}

// Name returns the variant tag used in serialized trees.
func (op BinaryOperator) Name() string {
	switch op {
	case BinaryMinus:
		return "Minus"
	case BinaryPlus:
		return "Plus"
	case BinaryDivide:
		return "Divide"
	case BinaryMultiply:
		return "Multiply"
	case BinaryNotEqual:
		return "NotEqual"
	case BinaryEqual:
		return "Equal"
	case BinaryEqualEqual:
		return "EqualEqual"
	case BinaryGreater:
		return "Greater"
	case BinaryGreaterEqual:
		return "GreaterEqual"
	case BinaryLess:
		return "Less"
	case BinaryLessEqual:
		return "LessEqual"
	case BinaryAnd:
		return "And"
	case BinaryOr:
		return "Or"
	}
	return op.String()
}

// Binding powers, higher binds tighter. Zero is the threshold a full
// expression is parsed with.
const (
	bpNone = iota
	bpAssignment
	bpOr
	bpAnd
	bpEquality
	bpComparison
	bpAdditive
	bpMultiplicative
	bpUnary
)

func (op BinaryOperator) bindingPower() int {
	switch op {
	case BinaryEqual:
		return bpAssignment
	case BinaryOr:
		return bpOr
	case BinaryAnd:
		return bpAnd
	case BinaryEqualEqual, BinaryNotEqual:
		return bpEquality
	case BinaryGreater, BinaryGreaterEqual, BinaryLess, BinaryLessEqual:
		return bpComparison
	case BinaryMinus, BinaryPlus:
		return bpAdditive
	case BinaryMultiply, BinaryDivide:
		return bpMultiplicative
	}
	panic("unreachable")
}

func (op UnaryOperator) bindingPower() int {
	return bpUnary
}

func unaryOperatorOf(t token.TokenType) (UnaryOperator, bool) {
	switch t {
	case token.MINUS:
		return UnaryMinus, true
	case token.BANG:
		return UnaryNot, true
	}
	return 0, false
}

func binaryOperatorOf(t token.TokenType) (BinaryOperator, bool) {
	switch t {
	case token.MINUS:
		return BinaryMinus, true
	case token.PLUS:
		return BinaryPlus, true
	case token.SLASH:
		return BinaryDivide, true
	case token.STAR:
		return BinaryMultiply, true
	case token.BANG_EQUAL:
		return BinaryNotEqual, true
	case token.EQUAL:
		return BinaryEqual, true
	case token.EQUAL_EQUAL:
		return BinaryEqualEqual, true
	case token.GREATER:
		return BinaryGreater, true
	case token.GREATER_EQUAL:
		return BinaryGreaterEqual, true
	case token.LESS:
		return BinaryLess, true
	case token.LESS_EQUAL:
		return BinaryLessEqual, true
	case token.AND:
		return BinaryAnd, true
	case token.OR:
		return BinaryOr, true
	}
	return 0, false
}

var _ fmt.Stringer = UnaryOperator(0)
var _ fmt.Stringer = BinaryOperator(0)
