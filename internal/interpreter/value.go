package interpreter

import (
	"fmt"
	"strconv"

	"github.com/leonardinius/prattlox/internal/parser"
)

type ValueType uint8

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueNumberType
	ValueStringType
)

func (t ValueType) String() string {
	switch t {
	case ValueNilType:
		return "nil"
	case ValueBoolType:
		return "bool"
	case ValueNumberType:
		return "number"
	case ValueStringType:
		return "string"
	}
	return "ValueType(" + strconv.Itoa(int(t)) + ")"
}

// Value is a runtime value. Values are comparable with ==: variants of
// different types are never equal.
type Value interface {
	Type() ValueType
	// String renders the value the way print does.
	String() string
}

type (
	ValueNil    struct{}
	ValueBool   bool
	ValueNumber float64
	ValueString string
)

var (
	NilValue   Value = ValueNil{}
	TrueValue  Value = ValueBool(true)
	FalseValue Value = ValueBool(false)
)

// Type implements Value.
func (ValueNil) Type() ValueType { return ValueNilType }

// Type implements Value.
func (ValueBool) Type() ValueType { return ValueBoolType }

// Type implements Value.
func (ValueNumber) Type() ValueType { return ValueNumberType }

// Type implements Value.
func (ValueString) Type() ValueType { return ValueStringType }

func (ValueNil) String() string { return "nil" }

func (v ValueBool) String() string { return strconv.FormatBool(bool(v)) }

func (v ValueNumber) String() string { return parser.FormatNumber(float64(v)) }

func (v ValueString) String() string { return string(v) }

// GoString implements fmt.GoStringer. Strings are quoted so that REPL echo
// tells "1" and 1 apart.
func (v ValueString) GoString() string { return strconv.Quote(string(v)) }

// Bool wraps b without allocating.
func Bool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// IsTruthy reports whether v counts as true: only false and nil do not.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case ValueNil:
		return false
	case ValueBool:
		return bool(v)
	}
	return true
}

// Inspect renders v for REPL echo: like String, with strings quoted.
func Inspect(v Value) string {
	if gs, ok := v.(fmt.GoStringer); ok {
		return gs.GoString()
	}
	return v.String()
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueNumber(0)
	_ Value = ValueString("")
)
