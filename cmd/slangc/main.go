// Command slangc compiles Slang/Lox source files and prints their
// disassembled bytecode, or drops into a line-editing REPL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	slang "github.com/slang-lang/slangc"
	"github.com/slang-lang/slangc/internal/lexer"
	"github.com/slang-lang/slangc/internal/repl"
	"github.com/slang-lang/slangc/internal/table"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&compileCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

type compileCmd struct {
	trace      bool
	tokens     bool
	tableStats bool
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "compile a source file and print its disassembly" }
func (*compileCmd) Usage() string {
	return "compile [-trace] [-tokens] [-table-stats] <path>:\n" +
		"  read path, compile it, and print the disassembled chunk to stdout;\n" +
		"  print diagnostics to stderr and exit non-zero on a compile error.\n"
}

func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.trace, "trace", false, "interleave each instruction with the source line that produced it")
	f.BoolVar(&c.tokens, "tokens", false, "dump the token stream instead of compiling")
	f.BoolVar(&c.tableStats, "table-stats", false, "print open-addressed table query/collision counters after compiling")
}

func (c *compileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch f.NArg() {
	case 0:
		fmt.Fprintln(os.Stderr, "usage: slangc compile [path]")
		return subcommands.ExitUsageError
	case 1:
	default:
		fmt.Fprintln(os.Stderr, "usage: slangc compile [path]")
		return subcommands.ExitUsageError
	}

	path := f.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slangc: %v\n", err)
		return subcommands.ExitFailure
	}
	source := string(src)

	if c.tokens {
		fmt.Print(lexer.Dump(source))
		return subcommands.ExitSuccess
	}

	if c.tableStats {
		table.ResetDebugStats()
		table.CollectStats = true
		defer func() { table.CollectStats = false }()
	}

	chunk, diags, ok := slang.Compile(source)
	if !ok {
		for _, d := range diags {
			fmt.Fprintln(os.Stderr, d)
		}
		return subcommands.ExitFailure
	}

	if c.trace {
		fmt.Print(chunk.DisassembleSource(source))
	} else {
		fmt.Print(chunk.Disassemble())
	}
	if c.tableStats {
		stats := table.DebugStats()
		fmt.Fprintf(os.Stderr, "table: queries=%d collisions=%d\n", stats.Queries, stats.Collisions)
	}
	return subcommands.ExitSuccess
}

type replCmd struct{}

func (*replCmd) Name() string             { return "repl" }
func (*replCmd) Synopsis() string         { return "start an interactive compile-and-disassemble session" }
func (*replCmd) Usage() string            { return "repl:\n  read lines, compile each, and print its disassembly.\n" }
func (*replCmd) SetFlags(*flag.FlagSet)   {}
func (*replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := repl.Run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "slangc: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
