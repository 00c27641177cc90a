package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/subcommands"

	"kiln/driver"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `
 _    _ _
| | _(_) |_ __
| |/ / | | '_ \
|   <| | | | | |
|_|\_\_|_|_| |_|
`

// replCmd starts an interactive session: each line is compiled through the
// full pipeline and the resulting assembly is printed, since the core has
// no evaluator to run it against.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive compile-and-print session" }
func (*replCmd) Usage() string {
	return `repl:
  Read lines of source, compile each to assembly, and print the result.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	printBanner(os.Stdout)

	rl, err := readline.New("kiln> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return subcommands.ExitSuccess
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return subcommands.ExitSuccess
		}
		rl.SaveHistory(line)
		evaluateLine(os.Stdout, line)
	}
}

func printBanner(w *os.File) {
	blueColor.Fprintln(w, strings.Repeat("-", 40))
	greenColor.Fprintln(w, banner)
	blueColor.Fprintln(w, strings.Repeat("-", 40))
	cyanColor.Fprintln(w, "Type a declaration or call, terminated with ';'")
	cyanColor.Fprintln(w, "Type '.exit' to quit")
	blueColor.Fprintln(w, strings.Repeat("-", 40))
}

func evaluateLine(w *os.File, line string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(w, "[internal error] %v\n", r)
		}
	}()

	pipeline, err := driver.Compile(line)
	if err != nil {
		redColor.Fprintf(w, "%v\n", err)
		return
	}
	yellowColor.Fprintln(w, pipeline.AssemblyText())
}
