package codegen

import (
	"strings"
	"testing"

	"kiln/ast"
)

func TestGenerateThreeDeclarations(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.VarDecl{Name: "foo", Initializer: &ast.Constant{Value: 4}},
		&ast.VarDecl{Name: "bar", Initializer: &ast.Constant{Value: 42}},
		&ast.VarDecl{Name: "baz", Initializer: &ast.Constant{Value: 127}},
	}}

	lines, err := New().Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"global main",
		"extern print_int",
		"section .text",
		"main:",
		"push rbp",
		"mov rbp, rsp",
		"sub rsp, 16",
		"mov dword [rbp - 4], 4",
		"mov dword [rbp - 8], 42",
		"mov dword [rbp - 12], 127",
		"mov rsp, rbp",
		"pop rbp",
		"xor rax, rax",
		"ret",
	}
	assertLines(t, lines, want)
}

func TestGenerateCallWithNoLocals(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.ExprStmt{Expression: &ast.Call{Callee: "print_int", Arguments: []ast.Expr{&ast.Constant{Value: 4}}}},
	}}

	lines, err := New().Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, l := range lines {
		if strings.HasPrefix(l, "sub rsp") {
			t.Errorf("did not expect a stack reservation line, got %q", l)
		}
	}

	want := []string{
		"global main",
		"extern print_int",
		"section .text",
		"main:",
		"push rbp",
		"mov rbp, rsp",
		"mov dword edi, 4",
		"call print_int",
		"mov rsp, rbp",
		"pop rbp",
		"xor rax, rax",
		"ret",
	}
	assertLines(t, lines, want)
}

func TestGenerateVariableAccessInitializer(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.VarDecl{Name: "a", Initializer: &ast.Constant{Value: 9}},
		&ast.VarDecl{Name: "b", Initializer: &ast.VariableAccess{Name: "a"}},
	}}

	lines, err := New().Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, lines, "mov dword eax, [rbp - 4]")
	assertContains(t, lines, "mov dword [rbp - 8], eax")
}

func TestGenerateCallArgumentFromVariable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.VarDecl{Name: "n", Initializer: &ast.Constant{Value: 4}},
		&ast.ExprStmt{Expression: &ast.Call{Callee: "print_int", Arguments: []ast.Expr{&ast.VariableAccess{Name: "n"}}}},
	}}

	lines, err := New().Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertContains(t, lines, "mov dword eax, [rbp - 4]")
	assertContains(t, lines, "mov dword edi, eax")
	assertContains(t, lines, "call print_int")
}

func TestGenerateRejectsNonAtomicOperand(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.VarDecl{Name: "x", Initializer: &ast.Binary{Operator: ast.Add, Left: &ast.Constant{Value: 1}, Right: &ast.Constant{Value: 2}}},
	}}

	if _, err := New().Generate(module); err == nil {
		t.Fatal("expected a DeveloperError for a non-atomic initializer reaching codegen")
	}
}

func TestGenerateRejectsUndeclaredVariable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Stmt{
		&ast.ExprStmt{Expression: &ast.Call{Callee: "print_int", Arguments: []ast.Expr{&ast.VariableAccess{Name: "missing"}}}},
	}}

	if _, err := New().Generate(module); err == nil {
		t.Fatal("expected a DeveloperError for an undeclared variable reference")
	}
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d\ngot: %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func assertContains(t *testing.T, lines []string, want string) {
	t.Helper()
	for _, l := range lines {
		if l == want {
			return
		}
	}
	t.Errorf("lines do not contain %q: %v", want, lines)
}
