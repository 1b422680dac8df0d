package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders every instruction in c as one line of text,
// printing the source line number only when it changes from the
// previous instruction (a run of "     |" otherwise).
func (c *Chunk) Disassemble() string {
	var b strings.Builder
	lastLine := -1
	offset := 0
	for offset < c.Len() {
		line := c.lineAt(offset)
		shown := 0
		if line != lastLine {
			shown = line
		}
		offset = c.disassembleOp(&b, offset, shown)
		lastLine = line
	}
	return b.String()
}

// DisassembleSource is Disassemble with the original source text
// interleaved: each time the current line advances, the corresponding
// line of src is printed above the instructions it produced.
func (c *Chunk) DisassembleSource(src string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "constants: %s\n", c.consts.Repr())
	srcLines := strings.Split(src, "\n")
	printedLine := 0
	offset := 0
	for offset < c.Len() {
		line := c.lineAt(offset)
		if printedLine < line {
			b.WriteByte('\n')
			fmt.Fprintf(&b, "%13d ", line)
			if line-1 < len(srcLines) {
				b.WriteString(srcLines[line-1])
			} else {
				b.WriteString("at end of file")
			}
			b.WriteByte('\n')
			printedLine = line
		}
		offset = c.disassembleOp(&b, offset, 0)
	}
	return b.String()
}

func (c *Chunk) disassembleOp(b *strings.Builder, offset, line int) int {
	fmt.Fprintf(b, "%6d ", offset)
	if line == 0 {
		b.WriteString("     | ")
	} else {
		fmt.Fprintf(b, "%6d ", line)
	}
	op := c.ReadOp(offset)
	offset++
	if op >= opCount {
		fmt.Fprintf(b, "bad opcode: %d\n", byte(op))
		return offset
	}
	switch {
	case op.hasConstOperand():
		idx := c.ReadOperand(&offset)
		fmt.Fprintf(b, "%-16s %6d (%s)\n", op, idx, c.Const(int(idx)).Repr())
	case op.hasUnaryOperand():
		idx := c.ReadOperand(&offset)
		fmt.Fprintf(b, "%-16s %6d\n", op, idx)
	default:
		fmt.Fprintf(b, "%-16s\n", op)
	}
	return offset
}
