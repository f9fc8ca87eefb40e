package parser

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

// Trees serialize as externally tagged variants:
//
//	PrintStmt:
//	  Binary:
//	    operator: Plus
//	    left:
//	      Literal:
//	        Number: 1
//	    right:
//	      Var: x
//
// Tags and field names are stable; golden tests depend on them.

type yamlUnary struct {
	Operator string `yaml:"operator"`
	Right    Expr   `yaml:"right"`
}

type yamlBinary struct {
	Operator string `yaml:"operator"`
	Left     Expr   `yaml:"left"`
	Right    Expr   `yaml:"right"`
}

type yamlAssign struct {
	Target Expr `yaml:"target"`
	Value  Expr `yaml:"value"`
}

type yamlVarDecl struct {
	Name        string `yaml:"name"`
	Initializer Expr   `yaml:"initializer,omitempty"`
}

type yamlIf struct {
	Condition  Expr `yaml:"condition"`
	ThenBranch Stmt `yaml:"then_branch"`
	ElseBranch Stmt `yaml:"else_branch,omitempty"`
}

type yamlWhile struct {
	Condition Expr `yaml:"condition"`
	Body      Stmt `yaml:"body"`
}

func tagged(tag string, v any) (any, error) {
	return map[string]any{tag: v}, nil
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprLiteral) MarshalYAML() (any, error) {
	switch e.Kind {
	case LiteralNumber:
		return tagged("Literal", map[string]float64{"Number": e.Number})
	case LiteralString:
		return tagged("Literal", map[string]string{"String": e.String})
	}
	return tagged("Literal", e.Kind.String())
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprUnary) MarshalYAML() (any, error) {
	return tagged("Unary", yamlUnary{Operator: e.Operator.Name(), Right: e.Right})
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprBinary) MarshalYAML() (any, error) {
	return tagged("Binary", yamlBinary{Operator: e.Operator.Name(), Left: e.Left, Right: e.Right})
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprGrouping) MarshalYAML() (any, error) {
	return tagged("Grouping", e.Expression)
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprVariable) MarshalYAML() (any, error) {
	return tagged("Var", e.Name)
}

// MarshalYAML implements yaml.Marshaler.
func (e *ExprAssign) MarshalYAML() (any, error) {
	return tagged("Assign", yamlAssign{Target: e.Target, Value: e.Value})
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtExpression) MarshalYAML() (any, error) {
	return tagged("ExprStmt", s.Expression)
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtPrint) MarshalYAML() (any, error) {
	return tagged("PrintStmt", s.Expression)
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtVar) MarshalYAML() (any, error) {
	return tagged("VarDecl", yamlVarDecl{Name: s.Name, Initializer: s.Initializer})
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtBlock) MarshalYAML() (any, error) {
	statements := s.Statements
	if statements == nil {
		statements = []Stmt{}
	}
	return tagged("Block", statements)
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtIf) MarshalYAML() (any, error) {
	return tagged("If", yamlIf{Condition: s.Condition, ThenBranch: s.ThenBranch, ElseBranch: s.ElseBranch})
}

// MarshalYAML implements yaml.Marshaler.
func (s *StmtWhile) MarshalYAML() (any, error) {
	return tagged("While", yamlWhile{Condition: s.Condition, Body: s.Body})
}

// EncodeYAML writes v (a Stmt, an Expr or a slice of them) to w.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// ToYAML is EncodeYAML into a byte slice.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	_ yaml.Marshaler = (*ExprLiteral)(nil)
	_ yaml.Marshaler = (*ExprUnary)(nil)
	_ yaml.Marshaler = (*ExprBinary)(nil)
	_ yaml.Marshaler = (*ExprGrouping)(nil)
	_ yaml.Marshaler = (*ExprVariable)(nil)
	_ yaml.Marshaler = (*ExprAssign)(nil)
	_ yaml.Marshaler = (*StmtExpression)(nil)
	_ yaml.Marshaler = (*StmtPrint)(nil)
	_ yaml.Marshaler = (*StmtVar)(nil)
	_ yaml.Marshaler = (*StmtBlock)(nil)
	_ yaml.Marshaler = (*StmtIf)(nil)
	_ yaml.Marshaler = (*StmtWhile)(nil)
)
