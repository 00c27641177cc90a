package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"kiln/anf"
	"kiln/ast"
	"kiln/lexer"
	"kiln/parser"
	"kiln/partialeval"
)

// anfCmd dumps the module after constant folding and complex-operand
// removal, to inspect the temporaries the ANF pass introduces.
type anfCmd struct{}

func (*anfCmd) Name() string     { return "anf" }
func (*anfCmd) Synopsis() string { return "Print the module after constant folding and ANF as JSON" }
func (*anfCmd) Usage() string {
	return `anf <file.kiln>:
  Run the pipeline through the ANF pass and print the resulting module.
`
}
func (*anfCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *anfCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens, err := lexer.New(string(data)).Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	module, err := parser.Make(tokens).Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}

	evaluated := partialeval.New().Evaluate(module)
	normalized := anf.New().Transform(evaluated)

	jsonStr, err := ast.PrintJSON(normalized.Statements)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(jsonStr)
	return subcommands.ExitSuccess
}
