package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"kiln/lexer"
)

// tokensCmd dumps the lexer's token stream for a source file, one token per
// line, for debugging the lexical-analysis stage in isolation.
type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "Print the token stream for a source file" }
func (*tokensCmd) Usage() string {
	return `tokens <file.kiln>:
  Scan the file and print one token per line.
`
}
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *tokensCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	return subcommands.ExitSuccess
}
