// Package bytecode implements the compiled output of a source file: a
// flat byte vector of opcodes and operands, a line table mapping byte
// offsets back to source lines, a deduplicated constant pool, and the
// disassembler that renders all three back to text.
//
// Grounded on original_source/frontend/bytecode.{h,c}.
package bytecode

import (
	"github.com/slang-lang/slangc/internal/value"
	"github.com/slang-lang/slangc/internal/varray"
)

// Chunk is one compiled unit: the output of a single compile() call.
type Chunk struct {
	code   varray.Array[byte]
	lines  []int // lines[i] is the cumulative byte count through source line i+1
	consts value.List
}

// New returns an empty Chunk ready to receive instructions.
func New() *Chunk { return &Chunk{} }

// Len returns the number of bytes emitted so far.
func (c *Chunk) Len() int { return c.code.Len() }

// Const returns the constant stored at idx.
func (c *Chunk) Const(idx int) value.Tag { return c.consts.Get(idx) }

func (c *Chunk) writeByte(line int, b byte) {
	c.code.Append(b)
	if line <= 0 {
		return
	}
	prev := 0
	if len(c.lines) > 0 {
		prev = c.lines[len(c.lines)-1]
	}
	for line > len(c.lines) {
		c.lines = append(c.lines, prev)
	}
	c.lines[line-1]++
}

// WriteOp emits a single opcode byte attributed to line.
func (c *Chunk) WriteOp(op OpCode, line int) { c.writeByte(line, byte(op)) }

// writeOperand encodes operand least-significant-byte-first: up to 8
// bytes carrying 7 payload bits plus a continuation bit, and if the
// value still doesn't fit, a 9th byte holding the remaining bits
// verbatim (not continuation-tagged).
func (c *Chunk) writeOperand(line int, operand uint64) {
	for i := 0; i < 8; i++ {
		if operand < 0x80 {
			c.writeByte(line, byte(operand))
			return
		}
		c.writeByte(line, 0x80|byte(operand&0x7f))
		operand >>= 7
	}
	c.writeByte(line, byte(operand))
}

// WriteUnary emits op followed by its encoded operand.
func (c *Chunk) WriteUnary(op OpCode, line int, operand uint64) {
	c.WriteOp(op, line)
	c.writeOperand(line, operand)
}

// ReserveUnary emits 10 placeholder OP_NOOP bytes (the maximum size of
// an opcode plus its operand) and returns the offset to later pass to
// PatchUnary. Used for forward jumps whose target isn't known yet.
func (c *Chunk) ReserveUnary(line int) int {
	idx := c.code.Len()
	for i := 0; i < 10; i++ {
		c.WriteOp(OpNoop, line)
	}
	return idx
}

// PatchUnary overwrites the 10 bytes reserved at bookmark with op and an
// operand computed so that, once decoded, execution resumes exactly at
// the chunk's current length. The operand is always written in the full
// 9-byte continuation form so the instruction's length doesn't change.
func (c *Chunk) PatchUnary(bookmark int, op OpCode) {
	length := c.code.Len()
	if bookmark > length {
		panic("bytecode: invalid bookmark")
	}
	operand := uint64(length - bookmark)
	if operand < 10 {
		panic("bytecode: invalid bookmark")
	}
	c.patchOperand(bookmark, op, operand-10)
}

// patchOperand overwrites the 10 bytes at bookmark with op and operand,
// always in the full 9-byte continuation form so the instruction's
// length never changes regardless of which bookmark called it.
func (c *Chunk) patchOperand(bookmark int, op OpCode, operand uint64) {
	c.code.Set(bookmark, byte(op))
	for i := 1; i < 9; i++ {
		c.code.Set(bookmark+i, 0x80|byte(operand&0x7f))
		operand >>= 7
	}
	c.code.Set(bookmark+9, byte(operand))
}

// EmitLoop reserves 10 bytes and immediately patches them into an
// OP_LOOP whose operand is the backward distance to target, a source
// offset that must already have been emitted. Unlike a forward jump
// reserved with ReserveUnary, a loop's landing point is already known,
// so reserve and patch happen back to back instead of bracketing the
// code they jump over.
func (c *Chunk) EmitLoop(line, target int) {
	bookmark := c.ReserveUnary(line)
	end := bookmark + 10
	if target > end {
		panic("bytecode: loop target must precede the loop instruction")
	}
	c.patchOperand(bookmark, OpLoop, uint64(end-target))
}

// ReadOp returns the opcode at offset.
func (c *Chunk) ReadOp(offset int) OpCode { return OpCode(c.code.Get(offset)) }

// ReadOperand decodes the variable-length operand starting at *offset,
// advancing *offset past it, mirroring chunk_read_operator.
func (c *Chunk) ReadOperand(offset *int) uint64 {
	b := c.code.Get(*offset)
	*offset++
	result := uint64(b)
	if result&0x80 == 0 {
		return result
	}
	result &= 0x7f
	for i := 1; i < 8; i++ {
		b := c.code.Get(*offset)
		*offset++
		if b&0x80 == 0 {
			return result | uint64(b)<<(7*i)
		}
		result |= uint64(b&0x7f) << (7 * i)
	}
	b = c.code.Get(*offset)
	*offset++
	return result | uint64(b)<<56
}

// RecordConst returns the index of t in the constant pool, appending it
// if it is not already present. Two constants dedup only when they are
// both tag_eq *and* of the same runtime type — a Double 1.0 and an
// Int64 1 are tag_eq but must not collapse into one constant slot, or a
// literal's static type would bleed into the other's.
func (c *Chunk) RecordConst(t value.Tag) int {
	for i := 0; i < c.consts.Len(); i++ {
		existing := c.consts.Get(i)
		if existing.Eq(t) && existing.Type() == t.Type() {
			return i
		}
	}
	c.consts.Append(t)
	return c.consts.Len() - 1
}

// Seal shrinks the code buffer to its final length. Called once the
// compiler has finished emitting into the chunk.
func (c *Chunk) Seal() { c.code.Seal() }

// Free releases every owned constant and the chunk's backing storage.
func (c *Chunk) Free() {
	c.consts.Free()
	c.code.Free()
	c.lines = nil
}

// lineAt returns the 1-indexed source line that produced the byte at
// offset, or 0 if offset falls outside any recorded line (only possible
// for bytes emitted with line <= 0, which Chunk itself never does).
func (c *Chunk) lineAt(offset int) int {
	for i, cumulative := range c.lines {
		if offset < cumulative {
			return i + 1
		}
	}
	return 0
}
