// Package anf implements the "remove complex operands" pass: it rewrites a
// module's expressions so that every operand of a unary op, binary op, or
// call argument is an atom (a constant or a variable access), introducing
// fresh temporaries as needed.
package anf

import (
	"fmt"

	"kiln/ast"
)

// Pass carries the monotonic counter used to mint tmp_N names. A Pass
// instance transforms exactly one module; construct a fresh one per module.
type Pass struct {
	tempIndex int
}

// New returns a Pass ready to transform a module.
func New() *Pass {
	return &Pass{}
}

// result is the outcome of transforming a single expression: the rewritten
// expression, plus any variable declarations that must be emitted before
// the statement currently being transformed.
type result struct {
	expr   ast.Expr
	extras []ast.Stmt
}

// Transform returns a new module in ANF.
func (p *Pass) Transform(m *ast.Module) *ast.Module {
	var out []ast.Stmt
	for _, s := range m.Statements {
		out = append(out, p.transformStatement(s)...)
	}
	return &ast.Module{Statements: out}
}

func (p *Pass) transformStatement(s ast.Stmt) []ast.Stmt {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		r := p.transformExpr(stmt.Initializer, false)
		return append(r.extras, &ast.VarDecl{Name: stmt.Name, Initializer: r.expr})
	case *ast.ExprStmt:
		r := p.transformExpr(stmt.Expression, false)
		return append(r.extras, &ast.ExprStmt{Expression: r.expr})
	default:
		panic(fmt.Sprintf("anf: unsupported statement type %T", s))
	}
}

func (p *Pass) transformExpr(e ast.Expr, needAtom bool) result {
	switch expr := e.(type) {
	case *ast.Constant, *ast.VariableAccess:
		return result{expr: e}

	case *ast.Grouping:
		return p.transformExpr(expr.Inner, needAtom)

	case *ast.Unary:
		operand := p.transformExpr(expr.Operand, true)
		rebuilt := ast.Expr(&ast.Unary{Operator: expr.Operator, Operand: operand.expr})
		if !needAtom {
			return result{expr: rebuilt, extras: operand.extras}
		}
		name, decl := p.declareTemp(rebuilt)
		return result{expr: name, extras: append(operand.extras, decl)}

	case *ast.Binary:
		left := p.transformExpr(expr.Left, true)
		right := p.transformExpr(expr.Right, true)
		extras := append(left.extras, right.extras...)
		rebuilt := ast.Expr(&ast.Binary{Operator: expr.Operator, Left: left.expr, Right: right.expr})
		if !needAtom {
			return result{expr: rebuilt, extras: extras}
		}
		name, decl := p.declareTemp(rebuilt)
		return result{expr: name, extras: append(extras, decl)}

	case *ast.Call:
		var extras []ast.Stmt
		args := make([]ast.Expr, len(expr.Arguments))
		for i, a := range expr.Arguments {
			r := p.transformExpr(a, true)
			extras = append(extras, r.extras...)
			args[i] = r.expr
		}
		rebuilt := ast.Expr(&ast.Call{Callee: expr.Callee, Arguments: args})
		// A call nested inside another expression (needAtom) is always
		// bound to a fresh temporary: it has side effects and must never
		// be duplicated or reordered by a later pass. A call standing
		// alone as an entire expression statement, or directly as a
		// declaration's initializer, already has exactly one evaluation
		// site (the statement itself) and is left as-is.
		if !needAtom {
			return result{expr: rebuilt, extras: extras}
		}
		name, decl := p.declareTemp(rebuilt)
		return result{expr: name, extras: append(extras, decl)}

	default:
		panic(fmt.Sprintf("anf: unsupported expression type %T", e))
	}
}

func (p *Pass) declareTemp(value ast.Expr) (*ast.VariableAccess, ast.Stmt) {
	name := fmt.Sprintf("tmp_%d", p.tempIndex)
	p.tempIndex++
	decl := &ast.VarDecl{Name: name, Initializer: value}
	return &ast.VariableAccess{Name: name}, decl
}
