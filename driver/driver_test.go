package driver

import (
	"strings"
	"testing"
)

func TestCompileEndToEnd(t *testing.T) {
	source := `
let a = 8 - (-((3 + 1)) + (1 + 1));
print_int(a);
`
	pipeline, err := Compile(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pipeline.Evaluated.Statements) != len(pipeline.Parsed.Statements) {
		t.Errorf("partial evaluation should not add or remove statements")
	}

	text := pipeline.AssemblyText()
	if !strings.Contains(text, "global main") {
		t.Errorf("assembly missing prelude: %s", text)
	}
	if !strings.Contains(text, "call print_int") {
		t.Errorf("assembly missing call to print_int: %s", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Errorf("assembly text should end with a trailing newline")
	}
}

func TestCompileDeterministic(t *testing.T) {
	source := "let x = 1 + 2 * 3; print_int(x);"
	first, err := Compile(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compile(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.AssemblyText() != second.AssemblyText() {
		t.Errorf("compiling the same source twice produced different output")
	}
}

func TestCompileReportsLexErrors(t *testing.T) {
	if _, err := Compile(`let x = "unterminated;`); err == nil {
		t.Fatal("expected a lex error for an unterminated string")
	}
}

func TestCompileReportsSyntaxErrors(t *testing.T) {
	if _, err := Compile(`let x = ;`); err == nil {
		t.Fatal("expected a syntax error for a missing expression")
	}
}

func TestCompileFoldsConstants(t *testing.T) {
	pipeline, err := Compile("let x = 2 * (3 + 4);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := pipeline.AssemblyText()
	if !strings.Contains(text, "mov dword [rbp - 4], 14") {
		t.Errorf("expected constant folding to produce 14, got: %s", text)
	}
}
