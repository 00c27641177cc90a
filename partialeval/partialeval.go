// Package partialeval folds constant sub-expressions in a module's AST
// bottom-up, before the ANF pass runs.
package partialeval

import "kiln/ast"

// Evaluator implements ast.ExprVisitor and ast.StmtVisitor to build a
// rewritten copy of a module's expressions, replacing any subtree whose
// operands are all constants with the folded constant. The input module is
// not modified.
type Evaluator struct{}

// New returns a fresh Evaluator. The evaluator carries no state between
// calls to Evaluate; it is safe to reuse.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns a new module with every foldable subtree replaced by its
// constant value. It is idempotent: Evaluate(Evaluate(m)) == Evaluate(m).
func (e *Evaluator) Evaluate(m *ast.Module) *ast.Module {
	statements := make([]ast.Stmt, len(m.Statements))
	for i, s := range m.Statements {
		statements[i] = s.Accept(e).(ast.Stmt)
	}
	return &ast.Module{Statements: statements}
}

func (e *Evaluator) VisitVarDecl(s *ast.VarDecl) any {
	return &ast.VarDecl{Name: s.Name, Initializer: s.Initializer.Accept(e).(ast.Expr)}
}

func (e *Evaluator) VisitExprStmt(s *ast.ExprStmt) any {
	return &ast.ExprStmt{Expression: s.Expression.Accept(e).(ast.Expr)}
}

func (e *Evaluator) VisitConstant(c *ast.Constant) any {
	return ast.Expr(&ast.Constant{Value: c.Value})
}

func (e *Evaluator) VisitVariableAccess(v *ast.VariableAccess) any {
	return ast.Expr(&ast.VariableAccess{Name: v.Name})
}

func (e *Evaluator) VisitUnary(u *ast.Unary) any {
	operand := u.Operand.Accept(e).(ast.Expr)
	if c, ok := operand.(*ast.Constant); ok {
		switch u.Operator {
		case ast.Negate:
			return ast.Expr(&ast.Constant{Value: -c.Value})
		}
	}
	return ast.Expr(&ast.Unary{Operator: u.Operator, Operand: operand})
}

func (e *Evaluator) VisitBinary(b *ast.Binary) any {
	left := b.Left.Accept(e).(ast.Expr)
	right := b.Right.Accept(e).(ast.Expr)

	lc, lok := left.(*ast.Constant)
	rc, rok := right.(*ast.Constant)
	if lok && rok {
		switch b.Operator {
		case ast.Add:
			return ast.Expr(&ast.Constant{Value: lc.Value + rc.Value})
		case ast.Sub:
			return ast.Expr(&ast.Constant{Value: lc.Value - rc.Value})
		case ast.Mul:
			return ast.Expr(&ast.Constant{Value: lc.Value * rc.Value})
		case ast.Div:
			// Division by a folded zero is left unfolded so the fault is
			// raised at runtime where the source expressed it.
			if rc.Value != 0 {
				return ast.Expr(&ast.Constant{Value: lc.Value / rc.Value})
			}
		}
	}
	return ast.Expr(&ast.Binary{Operator: b.Operator, Left: left, Right: right})
}

func (e *Evaluator) VisitCall(c *ast.Call) any {
	var args []ast.Expr
	if c.Arguments != nil {
		args = make([]ast.Expr, len(c.Arguments))
	}
	for i, a := range c.Arguments {
		args[i] = a.Accept(e).(ast.Expr)
	}
	return ast.Expr(&ast.Call{Callee: c.Callee, Arguments: args})
}

func (e *Evaluator) VisitGrouping(g *ast.Grouping) any {
	inner := g.Inner.Accept(e).(ast.Expr)
	if c, ok := inner.(*ast.Constant); ok {
		return ast.Expr(&ast.Constant{Value: c.Value})
	}
	return ast.Expr(&ast.Grouping{Inner: inner})
}
