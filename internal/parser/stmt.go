package parser

// Stmt is a node of the statement tree. Like Expr, the set of
// implementations is closed.
type Stmt interface {
	stmtNode()
}

type StmtExpression struct {
	Expression Expr
}

type StmtPrint struct {
	Expression Expr
}

// StmtVar declares Name in the innermost scope. Initializer is nil when
// the declaration has none.
type StmtVar struct {
	Name        string
	Initializer Expr
	Line        int
}

type StmtBlock struct {
	Statements []Stmt
}

// StmtIf holds the condition without its parentheses. ElseBranch may be nil.
type StmtIf struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type StmtWhile struct {
	Condition Expr
	Body      Stmt
}

func (*StmtExpression) stmtNode() {}
func (*StmtPrint) stmtNode()      {}
func (*StmtVar) stmtNode()        {}
func (*StmtBlock) stmtNode()      {}
func (*StmtIf) stmtNode()         {}
func (*StmtWhile) stmtNode()      {}

var (
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtVar)(nil)
	_ Stmt = (*StmtBlock)(nil)
	_ Stmt = (*StmtIf)(nil)
	_ Stmt = (*StmtWhile)(nil)
)
