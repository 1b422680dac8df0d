// Package repl implements a line-editing front end over the compiler.
// Running the compiled bytecode is out of scope (no interpreter exists
// yet), so each line is compiled into a throwaway Chunk and immediately
// disassembled back to the terminal.
package repl

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/slang-lang/slangc/internal/compiler"
)

// Run reads lines from the terminal (via readline, for history and basic
// editing) until EOF, compiling and disassembling each one to out. An
// interrupt discards the current line and keeps reading.
func Run(out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "slang> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch err {
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return nil
		case nil:
		default:
			return fmt.Errorf("repl: %w", err)
		}
		if line == "" {
			continue
		}
		runLine(out, line)
	}
}

func runLine(out io.Writer, line string) {
	chunk, diags, ok := compiler.Compile(line)
	if !ok {
		for _, d := range diags {
			fmt.Fprintln(out, d)
		}
		return
	}
	fmt.Fprint(out, chunk.Disassemble())
}
