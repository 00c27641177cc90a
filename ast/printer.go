package ast

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// jsonPrinter implements both visitor interfaces, building a JSON-friendly
// tree of maps and slices for debugging the pipeline's intermediate shapes.
type jsonPrinter struct{}

func (p jsonPrinter) VisitVarDecl(s *VarDecl) any {
	return map[string]any{
		"type":        "VarDecl",
		"name":        s.Name,
		"initializer": s.Initializer.Accept(p),
	}
}

func (p jsonPrinter) VisitExprStmt(s *ExprStmt) any {
	return map[string]any{
		"type":       "ExprStmt",
		"expression": s.Expression.Accept(p),
	}
}

func (p jsonPrinter) VisitConstant(e *Constant) any {
	return map[string]any{"type": "Constant", "value": e.Value}
}

func (p jsonPrinter) VisitVariableAccess(e *VariableAccess) any {
	return map[string]any{"type": "VariableAccess", "name": e.Name}
}

func (p jsonPrinter) VisitUnary(e *Unary) any {
	return map[string]any{
		"type":     "Unary",
		"operator": e.Operator.String(),
		"operand":  e.Operand.Accept(p),
	}
}

func (p jsonPrinter) VisitBinary(e *Binary) any {
	return map[string]any{
		"type":     "Binary",
		"operator": e.Operator.String(),
		"left":     e.Left.Accept(p),
		"right":    e.Right.Accept(p),
	}
}

func (p jsonPrinter) VisitCall(e *Call) any {
	args := make([]any, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, a.Accept(p))
	}
	return map[string]any{
		"type":      "Call",
		"callee":    e.Callee,
		"arguments": args,
	}
}

func (p jsonPrinter) VisitGrouping(e *Grouping) any {
	return map[string]any{
		"type":  "Grouping",
		"inner": e.Inner.Accept(p),
	}
}

// PrintJSON renders a module's statements as a prettified JSON document.
func PrintJSON(statements []Stmt) (string, error) {
	printer := jsonPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WriteJSONToFile writes a module's JSON representation to path, echoing it
// to stdout in color for quick inspection.
func WriteJSONToFile(statements []Stmt, path string) error {
	s, err := PrintJSON(statements)
	if err != nil {
		return err
	}
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + s)
	fmt.Println(colorYellow + "-----" + colorReset)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %w", err)
	}
	return nil
}
