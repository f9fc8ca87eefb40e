package loxerrors

import (
	"errors"
	"fmt"
)

var (
	ErrRuntimeOperandMustBeNumber          = errors.New("expected a number")
	ErrRuntimeOperandsMustBeNumbers        = errors.New("operands must be numbers")
	ErrRuntimeOperandsMustNumbersOrStrings = errors.New("operands must be two numbers or two strings")
	ErrRuntimeOperandsMustNumbersOrRepeat  = errors.New("operands must be two numbers or a string and a number")
	ErrRuntimeUndefinedVariable            = errors.New("undefined variable")
	ErrRuntimeInvalidAssignmentTarget      = errors.New("cannot assign to")
	ErrRuntimeRepeatCountTooLarge          = errors.New("string repeat count too large")
)

// ErrRuntimeUndefined reports a read or assignment of a name no scope defines.
func ErrRuntimeUndefined(name string) error {
	return fmt.Errorf("%w '%s'.", ErrRuntimeUndefinedVariable, name)
}

func NewRuntimeError(line int, cause error) error {
	return &RuntimeError{line, cause}
}

// RuntimeError aborts the statement being executed.
type RuntimeError struct {
	line  int
	cause error
}

// Line returns the line of the failing expression.
func (r *RuntimeError) Line() int {
	return r.line
}

// Error implements error.
func (r *RuntimeError) Error() string {
	return fmt.Sprintf("%v\n[line %d] in script", r.cause, r.line)
}

func (r *RuntimeError) Unwrap() error {
	return r.cause
}

var _ error = (*RuntimeError)(nil)
var _ unwrapInterface = (*RuntimeError)(nil)
