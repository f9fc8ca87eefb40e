package interpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/leonardinius/prattlox/internal/loxerrors"
	"github.com/leonardinius/prattlox/internal/parser"
)

// maxStringLen caps the result of string repetition.
const maxStringLen = 1 << 30

func unary(op parser.UnaryOperator, right Value) (Value, error) {
	switch op {
	case parser.UnaryMinus:
		n, ok := right.(ValueNumber)
		if !ok {
			return nil, fmt.Errorf("%w, found %s.", loxerrors.ErrRuntimeOperandMustBeNumber, right.Type())
		}
		return -n, nil
	case parser.UnaryNot:
		return Bool(!IsTruthy(right)), nil
	}

	panic("unreachable")
}

// binary applies a non-logical infix operator to evaluated operands.
func binary(op parser.BinaryOperator, left, right Value) (Value, error) {
	switch op {
	case parser.BinaryEqualEqual:
		return Bool(left == right), nil
	case parser.BinaryNotEqual:
		return Bool(left != right), nil
	case parser.BinaryPlus:
		return add(left, right)
	case parser.BinaryMultiply:
		return multiply(left, right)
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op {
	case parser.BinaryMinus:
		return l - r, nil
	case parser.BinaryDivide:
		return l / r, nil
	case parser.BinaryGreater:
		return Bool(l > r), nil
	case parser.BinaryGreaterEqual:
		return Bool(l >= r), nil
	case parser.BinaryLess:
		return Bool(l < r), nil
	case parser.BinaryLessEqual:
		return Bool(l <= r), nil
	}

	panic("unreachable")
}

func add(left, right Value) (Value, error) {
	switch l := left.(type) {
	case ValueNumber:
		if r, ok := right.(ValueNumber); ok {
			return l + r, nil
		}
	case ValueString:
		if r, ok := right.(ValueString); ok {
			return l + r, nil
		}
	}

	return nil, operandsError(loxerrors.ErrRuntimeOperandsMustNumbersOrStrings, parser.BinaryPlus, left, right)
}

func multiply(left, right Value) (Value, error) {
	r, ok := right.(ValueNumber)
	if !ok {
		return nil, operandsError(loxerrors.ErrRuntimeOperandsMustNumbersOrRepeat, parser.BinaryMultiply, left, right)
	}

	switch l := left.(type) {
	case ValueNumber:
		return l * r, nil
	case ValueString:
		return repeat(l, r)
	}

	return nil, operandsError(loxerrors.ErrRuntimeOperandsMustNumbersOrRepeat, parser.BinaryMultiply, left, right)
}

// repeat concatenates count copies of s. The count is truncated toward zero;
// zero, negative and NaN counts give the empty string.
func repeat(s ValueString, count ValueNumber) (Value, error) {
	n := math.Trunc(float64(count))
	if len(s) == 0 || math.IsNaN(n) || n <= 0 {
		return ValueString(""), nil
	}
	if n > float64(maxStringLen/len(s)) {
		return nil, fmt.Errorf("%w: %d * %s.", loxerrors.ErrRuntimeRepeatCountTooLarge, len(s), count)
	}

	return ValueString(strings.Repeat(string(s), int(n))), nil
}

func numberOperands(op parser.BinaryOperator, left, right Value) (ValueNumber, ValueNumber, error) {
	l, lok := left.(ValueNumber)
	r, rok := right.(ValueNumber)
	if !lok || !rok {
		return 0, 0, operandsError(loxerrors.ErrRuntimeOperandsMustBeNumbers, op, left, right)
	}
	return l, r, nil
}

func operandsError(sentinel error, op parser.BinaryOperator, left, right Value) error {
	return fmt.Errorf("%w, found %s %s %s.", sentinel, left.Type(), op, right.Type())
}
