package parser

import (
	"strings"
)

// RPNPrinter renders expressions in reverse polish notation, e.g.
// (1 + 2) * 3 becomes "1 2 + 3 *". Unary minus is written as "~".
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

func (p *RPNPrinter) Print(expr Expr) string {
	switch expr := expr.(type) {
	case *ExprLiteral:
		return NewAstPrinter().literal(expr)
	case *ExprUnary:
		operator := expr.Operator.String()
		if expr.Operator == UnaryMinus {
			operator = "~"
		}
		return p.reverse(operator, expr.Right)
	case *ExprBinary:
		return p.reverse(expr.Operator.String(), expr.Left, expr.Right)
	case *ExprGrouping:
		return p.reverse("", expr.Expression)
	case *ExprVariable:
		return expr.Name
	case *ExprAssign:
		return p.reverse("=", expr.Target, expr.Value)
	}

	panic("unreachable")
}

func (p *RPNPrinter) reverse(name string, exprs ...Expr) string {
	out := new(strings.Builder)
	for _, expr := range exprs {
		_, _ = out.WriteString(p.Print(expr))
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	v := out.String()
	return strings.TrimSuffix(v, " ")
}
