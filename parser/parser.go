// Package parser implements a recursive-descent, precedence-climbing parser
// that turns a token stream into a module AST.
package parser

import (
	"fmt"

	"kiln/ast"
	"kiln/diagnostics"
	"kiln/token"
)

// Parser holds a cursor into a finished token stream. It has no statement
// separator to resynchronize on, so the first error it hits is fatal: there
// is no error-recovery loop.
type Parser struct {
	tokens   []token.Token
	position int
}

// Make constructs a Parser over a complete token stream (EOF-terminated).
func Make(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) checkType(kind token.Kind) bool {
	if p.isFinished() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) isMatch(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.checkType(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consumeRequired(kind token.Kind, message string) (token.Token, error) {
	if p.checkType(kind) {
		return p.advance(), nil
	}
	cur := p.peek()
	return token.Token{}, &diagnostics.SyntaxError{
		Line: cur.Line, Column: cur.Column,
		Message: fmt.Sprintf("%s (found %s)", message, cur.Kind),
	}
}

// Parse consumes the whole token stream and returns a module AST, or the
// first syntax error encountered.
func (p *Parser) Parse() (*ast.Module, error) {
	var statements []ast.Stmt
	for !p.isFinished() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return &ast.Module{Statements: statements}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	if p.isMatch(token.LET) {
		return p.variableDeclaration()
	}
	return p.expressionStatement()
}

func (p *Parser) variableDeclaration() (ast.Stmt, error) {
	name, err := p.consumeRequired(token.IDENTIFIER, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeRequired(token.ASSIGN, "expected '=' after variable name"); err != nil {
		return nil, err
	}
	initializer, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeRequired(token.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name.Lexeme, Initializer: initializer}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeRequired(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.term()
}

func (p *Parser) term() (ast.Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PLUS, token.MINUS) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: binaryOperatorFor(op.Kind), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	left, err := p.call()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.STAR, token.SLASH) {
		op := p.previous()
		right, err := p.call()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: binaryOperatorFor(op.Kind), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.LPAREN) {
		name, ok := expr.(*ast.VariableAccess)
		if !ok {
			cur := p.previous()
			return nil, &diagnostics.SyntaxError{Line: cur.Line, Column: cur.Column, Message: "call target must be an identifier"}
		}
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.consumeRequired(token.RPAREN, "expected ')' after call arguments"); err != nil {
			return nil, err
		}
		return &ast.Call{Callee: name.Name, Arguments: args}, nil
	}
	return expr, nil
}

func (p *Parser) arguments() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.checkType(token.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	return args, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.isMatch(token.MINUS) {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.Negate, Operand: operand}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.isMatch(token.NUMBER):
		lit := p.previous()
		return &ast.Constant{Value: lit.Literal.(int64)}, nil
	case p.isMatch(token.IDENTIFIER):
		return &ast.VariableAccess{Name: p.previous().Lexeme}, nil
	case p.isMatch(token.LPAREN):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consumeRequired(token.RPAREN, "expected ')' after grouped expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner}, nil
	default:
		cur := p.peek()
		return nil, &diagnostics.SyntaxError{Line: cur.Line, Column: cur.Column, Message: fmt.Sprintf("unexpected token %s", cur.Kind)}
	}
}

func binaryOperatorFor(kind token.Kind) ast.BinaryOperator {
	switch kind {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.STAR:
		return ast.Mul
	case token.SLASH:
		return ast.Div
	default:
		panic(&diagnostics.DeveloperError{Message: "binaryOperatorFor called with non-operator token " + string(kind)})
	}
}
