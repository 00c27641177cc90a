package ast

// VarDecl binds Name to the value of Initializer for the remainder of the
// module.
type VarDecl struct {
	Name        string
	Initializer Expr
}

func (s *VarDecl) Accept(v StmtVisitor) any { return v.VisitVarDecl(s) }

// ExprStmt evaluates an expression for its side effect and discards the
// result.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) Accept(v StmtVisitor) any { return v.VisitExprStmt(s) }
