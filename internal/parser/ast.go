package parser

import "fmt"

// Expr is a node of the expression tree.
//
// The set of implementations is closed; consumers switch over the concrete
// types. Every node exclusively owns its children.
type Expr interface {
	exprNode()
}

type LiteralKind uint8

const (
	LiteralNil LiteralKind = iota
	LiteralTrue
	LiteralFalse
	LiteralNumber
	LiteralString
)

// String implements fmt.Stringer.
func (k LiteralKind) String() string {
	switch k {
	case LiteralNil:
		return "Nil"
	case LiteralTrue:
		return "True"
	case LiteralFalse:
		return "False"
	case LiteralNumber:
		return "Number"
	case LiteralString:
		return "String"
	}
	return fmt.Sprintf("LiteralKind(%d)", uint8(k))
}

// ExprLiteral holds a number, a string, true, false or nil.
// Number and String are only meaningful for the matching Kind.
type ExprLiteral struct {
	Kind   LiteralKind
	Number float64
	String string
}

type ExprUnary struct {
	Operator UnaryOperator
	Right    Expr
	Line     int
}

type ExprBinary struct {
	Left     Expr
	Operator BinaryOperator
	Right    Expr
	Line     int
}

type ExprGrouping struct {
	Expression Expr
}

type ExprVariable struct {
	Name string
	Line int
}

// ExprAssign is produced for any `target = value`; whether Target is
// assignable is decided at evaluation time.
type ExprAssign struct {
	Target Expr
	Value  Expr
	Line   int
}

func (*ExprLiteral) exprNode()  {}
func (*ExprUnary) exprNode()    {}
func (*ExprBinary) exprNode()   {}
func (*ExprGrouping) exprNode() {}
func (*ExprVariable) exprNode() {}
func (*ExprAssign) exprNode()   {}

func NewNumberLiteral(n float64) *ExprLiteral {
	return &ExprLiteral{Kind: LiteralNumber, Number: n}
}

func NewStringLiteral(s string) *ExprLiteral {
	return &ExprLiteral{Kind: LiteralString, String: s}
}

func NewBoolLiteral(b bool) *ExprLiteral {
	if b {
		return &ExprLiteral{Kind: LiteralTrue}
	}
	return &ExprLiteral{Kind: LiteralFalse}
}

func NewNilLiteral() *ExprLiteral {
	return &ExprLiteral{Kind: LiteralNil}
}

var (
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprVariable)(nil)
	_ Expr = (*ExprAssign)(nil)
)
