package parser

import (
	"math"
	"strconv"
	"strings"
)

// AstPrinter renders trees as s-expressions, e.g. (* (- 123) (group 45.67)).
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

func (p *AstPrinter) Print(expr Expr) string {
	switch expr := expr.(type) {
	case *ExprLiteral:
		return p.literal(expr)
	case *ExprUnary:
		return p.parenthesize(expr.Operator.String(), expr.Right)
	case *ExprBinary:
		return p.parenthesize(expr.Operator.String(), expr.Left, expr.Right)
	case *ExprGrouping:
		return p.parenthesize("group", expr.Expression)
	case *ExprVariable:
		return "(var " + expr.Name + ")"
	case *ExprAssign:
		return p.parenthesize("=", expr.Target, expr.Value)
	case nil:
		return "<nil>"
	}

	panic("unreachable")
}

func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	switch stmt := stmt.(type) {
	case *StmtExpression:
		return p.parenthesize("expr", stmt.Expression)
	case *StmtPrint:
		return p.parenthesize("print", stmt.Expression)
	case *StmtVar:
		if stmt.Initializer == nil {
			return "(var " + stmt.Name + ")"
		}
		return p.parenthesize("var "+stmt.Name, stmt.Initializer)
	case *StmtBlock:
		out := new(strings.Builder)
		_, _ = out.WriteString("(block")
		for _, s := range stmt.Statements {
			_, _ = out.WriteString(" ")
			_, _ = out.WriteString(p.PrintStmt(s))
		}
		_, _ = out.WriteString(")")
		return out.String()
	case *StmtIf:
		s := "(if " + p.Print(stmt.Condition) + " " + p.PrintStmt(stmt.ThenBranch)
		if stmt.ElseBranch != nil {
			s += " " + p.PrintStmt(stmt.ElseBranch)
		}
		return s + ")"
	case *StmtWhile:
		return "(while " + p.Print(stmt.Condition) + " " + p.PrintStmt(stmt.Body) + ")"
	case nil:
		return "<nil>"
	}

	panic("unreachable")
}

func (p *AstPrinter) literal(expr *ExprLiteral) string {
	switch expr.Kind {
	case LiteralNumber:
		return FormatNumber(expr.Number)
	case LiteralString:
		return `"` + expr.String + `"`
	case LiteralTrue:
		return "true"
	case LiteralFalse:
		return "false"
	}
	return "nil"
}

func (p *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(p.Print(expr))
	}
	_, _ = out.WriteString(")")
	return out.String()
}

// FormatNumber renders n in the shortest decimal form that round-trips,
// without exponent: 3, 4.5, 0.1.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
