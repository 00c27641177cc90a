package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"kiln/driver"
)

// buildCmd runs the full pipeline over a source file and writes the
// resulting NASM listing, optionally invoking nasm/cc to finish the build.
type buildCmd struct {
	asmOnly    bool
	runtimeObj string
	out        string
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "Compile a .kiln source file to assembly (and optionally a binary)" }
func (*buildCmd) Usage() string {
	return `build [-asm-only] [-runtime path] [-o path] <file.kiln>:
  Lex, parse, fold constants, remove complex operands, and emit x86-64 NASM
  assembly for the given source file.
`
}

func (cmd *buildCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.asmOnly, "asm-only", false, "write the .asm file and stop, without invoking nasm/cc")
	f.StringVar(&cmd.runtimeObj, "runtime", "runtime.o", "path to the runtime object file providing print_int")
	f.StringVar(&cmd.out, "o", "", "path for the final executable (default: source file name without extension)")
}

func (cmd *buildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}
	sourcePath := args[0]

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	pipeline, err := driver.Compile(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}

	asmPath := strings.TrimSuffix(sourcePath, ".kiln") + ".asm"
	if err := driver.WriteAssembly(asmPath, pipeline.AssemblyText()); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}

	if cmd.asmOnly {
		return subcommands.ExitSuccess
	}

	outPath := cmd.out
	if outPath == "" {
		outPath = strings.TrimSuffix(sourcePath, ".kiln")
	}
	if err := driver.AssembleAndLink(asmPath, cmd.runtimeObj, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
