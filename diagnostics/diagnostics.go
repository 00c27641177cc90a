// Package diagnostics defines the error taxonomy shared across the
// compiler's passes: lex errors, parse errors, and pass invariant
// violations ("compiler bugs").
package diagnostics

import "fmt"

// LexError reports an unexpected character or malformed literal found while
// scanning source text.
type LexError struct {
	Line    int32
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// SyntaxError reports a token mismatch at a required grammar position.
type SyntaxError struct {
	Line    int32
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// DeveloperError reports a pass invariant violation: a shape that a prior
// pass was supposed to rule out. Encountering one means a compiler pass has
// a bug, not that the input source is invalid.
type DeveloperError struct {
	Message string
}

func (e *DeveloperError) Error() string {
	return fmt.Sprintf("internal compiler error: %s", e.Message)
}
