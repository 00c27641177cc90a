package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"kiln/ast"
	"kiln/lexer"
	"kiln/parser"
)

// astCmd dumps the parsed AST for a source file as JSON, optionally to a
// file, for inspecting the parser's output in isolation.
type astCmd struct {
	out string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Print the parsed AST as JSON" }
func (*astCmd) Usage() string {
	return `ast [-o path] <file.kiln>:
  Lex and parse the file, printing the resulting AST as JSON.
`
}

func (cmd *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "", "also write the AST JSON to this file")
}

func (cmd *astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if cmd.out != "" {
		if err := ast.WriteJSONToFile(module.Statements, cmd.out); err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	jsonStr, err := ast.PrintJSON(module.Statements)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(strings.TrimSpace(jsonStr))
	return subcommands.ExitSuccess
}
