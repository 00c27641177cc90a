// Package driver wires the compiler passes together and handles the
// surrounding file/process concerns: reading source, writing the assembly
// listing, and optionally invoking an external assembler and linker.
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"kiln/anf"
	"kiln/ast"
	"kiln/codegen"
	"kiln/lexer"
	"kiln/parser"
	"kiln/partialeval"
)

// Pipeline is the result of running every pass over one source file; it
// keeps each intermediate stage alongside the final assembly.
type Pipeline struct {
	Source    string
	Parsed    *ast.Module
	Evaluated *ast.Module
	ANF       *ast.Module
	Assembly  []string
}

// Compile runs the full lex -> parse -> partial-eval -> anf -> codegen
// pipeline over source text.
func Compile(source string) (*Pipeline, error) {
	p := &Pipeline{Source: source}

	lex := lexer.New(source)
	tokens, err := lex.Scan()
	if err != nil {
		return nil, fmt.Errorf("lexing: %w", err)
	}

	module, err := parser.Make(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	p.Parsed = module

	p.Evaluated = partialeval.New().Evaluate(module)
	p.ANF = anf.New().Transform(p.Evaluated)

	lines, err := codegen.New().Generate(p.ANF)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}
	p.Assembly = lines
	return p, nil
}

// AssemblyText joins the generated instruction lines into a NASM source
// file, one instruction per line.
func (p *Pipeline) AssemblyText() string {
	return strings.Join(p.Assembly, "\n") + "\n"
}

// WriteAssembly writes the generated assembly to path, via a temp file
// renamed into place so a failed write never leaves a partial .asm file.
func WriteAssembly(path string, text string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

// AssembleAndLink shells out to nasm and a C compiler to turn an assembly
// file, plus a runtime object file providing print_int, into a native
// executable. This mirrors the external-toolchain invocation in the
// original driver, kept here as a thin, out-of-scope wrapper: the stderr of
// the external tools is passed through unchanged, and a failing tool is
// reported as a returned error wrapping its exit status.
func AssembleAndLink(asmPath, runtimeObjPath, outPath string) error {
	objPath := strings.TrimSuffix(asmPath, ".asm") + ".o"

	nasm := exec.Command("nasm", "-f", "elf64", asmPath, "-o", objPath)
	nasm.Stderr = os.Stderr
	if err := nasm.Run(); err != nil {
		return fmt.Errorf("nasm: %w", err)
	}

	cc := exec.Command("cc", objPath, runtimeObjPath, "-o", outPath)
	cc.Stderr = os.Stderr
	if err := cc.Run(); err != nil {
		return fmt.Errorf("cc: %w", err)
	}
	return nil
}
