package lexer

import (
	"fmt"
	"strings"
)

// Dump runs a fresh Lexer over src to completion and renders one line
// per token: `line type lexeme`, with `|` in place of the line number
// when it repeats the previous token's line. This is the debug
// `-tokens` mode's backing implementation, grounded on lex_print.
func Dump(src string) string {
	l := New(src)
	var b strings.Builder
	lastLine := -1
	for {
		tok := l.Next()
		if tok.Line != lastLine {
			fmt.Fprintf(&b, "%4d ", tok.Line)
			lastLine = tok.Line
		} else {
			b.WriteString("   | ")
		}
		fmt.Fprintf(&b, "%-14s %s\n", tok.Type, tok.Lexeme)
		if tok.Type == TokenEOF {
			break
		}
	}
	return b.String()
}
