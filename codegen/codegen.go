// Package codegen lowers a module already in ANF into a textual x86-64
// NASM assembly listing using a flat stack frame and the System V AMD64
// calling convention.
package codegen

import (
	"fmt"

	"kiln/ast"
	"kiln/diagnostics"
)

const slotSize = 4

// frame tracks stack-slot offsets assigned to declared variables, growing
// monotonically from rbp.
type frame struct {
	offsets    map[string]int
	nextOffset int
}

func newFrame() *frame {
	return &frame{offsets: make(map[string]int)}
}

func (f *frame) allocate(name string) int {
	f.nextOffset += slotSize
	f.offsets[name] = f.nextOffset
	return f.nextOffset
}

func (f *frame) offsetOf(name string) (int, bool) {
	off, ok := f.offsets[name]
	return off, ok
}

// Generator walks a module in ANF and emits assembly lines. It does not
// implement the ast visitor interfaces: emission is driven by Generate
// through type switches, since instruction selection depends on statement
// context.
type Generator struct {
	frame *frame
	lines []string
}

// New returns a Generator ready to lower one module.
func New() *Generator {
	return &Generator{frame: newFrame()}
}

// Generate lowers m to an ordered list of NASM lines. It recovers internal
// panics raised for invariant violations (operands that ANF should have
// made atomic) and reports them as a DeveloperError, so a bug in an earlier
// pass surfaces as a normal error return instead of crashing the caller.
func (g *Generator) Generate(m *ast.Module) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if devErr, ok := r.(*diagnostics.DeveloperError); ok {
				err = devErr
				return
			}
			err = &diagnostics.DeveloperError{Message: fmt.Sprintf("%v", r)}
		}
	}()

	declCount := 0
	for _, s := range m.Statements {
		if _, ok := s.(*ast.VarDecl); ok {
			declCount++
		}
	}

	g.emitPrelude()
	g.emitStackAllocation(declCount)
	for _, s := range m.Statements {
		g.emitStatement(s)
	}
	g.emitEpilogue()
	return g.lines, nil
}

func (g *Generator) emit(line string) {
	g.lines = append(g.lines, line)
}

func (g *Generator) emitPrelude() {
	g.emit("global main")
	g.emit("extern print_int")
	g.emit("section .text")
	g.emit("main:")
	g.emit("push rbp")
	g.emit("mov rbp, rsp")
}

func (g *Generator) emitEpilogue() {
	g.emit("mov rsp, rbp")
	g.emit("pop rbp")
	g.emit("xor rax, rax")
	g.emit("ret")
}

// emitStackAllocation reserves 16-byte-aligned stack space for declCount
// variable slots. No `sub rsp` line is emitted when there are no locals.
func (g *Generator) emitStackAllocation(declCount int) {
	bytesNeeded := slotSize * declCount
	if bytesNeeded == 0 {
		return
	}
	aligned := (bytesNeeded + 15) &^ 15
	g.emit(fmt.Sprintf("sub rsp, %d", aligned))
}

func (g *Generator) emitStatement(s ast.Stmt) {
	switch stmt := s.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(stmt)
	case *ast.ExprStmt:
		g.emitExprStatement(stmt.Expression)
	default:
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: unsupported statement type %T", s)})
	}
}

func (g *Generator) emitVarDecl(decl *ast.VarDecl) {
	offset := g.frame.allocate(decl.Name)
	switch init := decl.Initializer.(type) {
	case *ast.Constant:
		g.emit(fmt.Sprintf("mov dword [rbp - %d], %d", offset, init.Value))
	case *ast.VariableAccess:
		srcOffset := g.mustOffset(init.Name)
		g.emit(fmt.Sprintf("mov dword eax, [rbp - %d]", srcOffset))
		g.emit(fmt.Sprintf("mov dword [rbp - %d], eax", offset))
	case *ast.Call:
		// After ANF, a call initializer is either a temporary the ANF pass
		// bound for a nested call or a declaration whose whole initializer
		// is a call; both are emitted with the same sequence used for a
		// call expression statement. The call's return value is not
		// stored into the declaration's slot.
		g.emitCall(init)
	default:
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: non-atomic initializer %T reached codegen", decl.Initializer)})
	}
}

func (g *Generator) emitExprStatement(e ast.Expr) {
	call, ok := e.(*ast.Call)
	if !ok {
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: unsupported expression statement shape %T", e)})
	}
	g.emitCall(call)
}

func (g *Generator) emitCall(call *ast.Call) {
	if len(call.Arguments) != 1 {
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: call to %s has %d arguments, expected 1", call.Callee, len(call.Arguments))})
	}
	switch arg := call.Arguments[0].(type) {
	case *ast.Constant:
		g.emit(fmt.Sprintf("mov dword edi, %d", arg.Value))
	case *ast.VariableAccess:
		off := g.mustOffset(arg.Name)
		g.emit(fmt.Sprintf("mov dword eax, [rbp - %d]", off))
		g.emit("mov dword edi, eax")
	default:
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: non-atomic call argument %T reached codegen", arg)})
	}
	g.emit(fmt.Sprintf("call %s", call.Callee))
}

func (g *Generator) mustOffset(name string) int {
	off, ok := g.frame.offsetOf(name)
	if !ok {
		panic(&diagnostics.DeveloperError{Message: fmt.Sprintf("codegen: reference to undeclared variable %q", name)})
	}
	return off
}
