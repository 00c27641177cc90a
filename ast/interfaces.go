// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the partial evaluator, the ANF pass, and the code generator.
package ast

// ExprVisitor dispatches over the concrete expression node types.
type ExprVisitor interface {
	VisitConstant(e *Constant) any
	VisitVariableAccess(e *VariableAccess) any
	VisitUnary(e *Unary) any
	VisitBinary(e *Binary) any
	VisitCall(e *Call) any
	VisitGrouping(e *Grouping) any
}

// StmtVisitor dispatches over the concrete statement node types.
type StmtVisitor interface {
	VisitVarDecl(s *VarDecl) any
	VisitExprStmt(s *ExprStmt) any
}

// Expr is any expression node; Accept drives double-dispatch into a visitor.
type Expr interface {
	Accept(v ExprVisitor) any
}

// Stmt is any statement node.
type Stmt interface {
	Accept(v StmtVisitor) any
}

// Module is the top-level compilation unit: an ordered sequence of
// statements.
type Module struct {
	Statements []Stmt
}
