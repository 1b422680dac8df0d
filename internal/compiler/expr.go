package compiler

import (
	"math"
	"strconv"

	"github.com/slang-lang/slangc/internal/bytecode"
	"github.com/slang-lang/slangc/internal/lexer"
	"github.com/slang-lang/slangc/internal/value"
)

// compileInt emits an OP_CONSTANT for an integer literal: values that
// fit in 32 bits are stored inline as Pair(0, v); larger ones are boxed
// as a heap Int64. Parsed with base 0, matching strtoll's base-0 mode:
// the lexer only ever scans a decimal digit run (unary minus is a
// separate production), but a leading-zero run like "010" is still a
// valid digit run and base 0 reads it as octal, same as the reference
// compiler.
func (c *Compiler) compileInt(_ bool) {
	lexeme := c.prev.Lexeme
	n, err := strconv.ParseInt(lexeme, 0, 64)
	if err != nil {
		c.errAtPrev("integer constant out of range")
		return
	}
	var t value.Tag
	if n <= math.MaxInt32 {
		t = value.NewUPair(0, uint32(n))
	} else {
		ip := new(int64)
		*ip = n
		t = value.NewInt64(ip, true)
	}
	idx := c.chunk.RecordConst(t)
	c.chunk.WriteUnary(bytecode.OpConstant, c.prev.Line, uint64(idx))
}

func (c *Compiler) compileFloat(_ bool) {
	d, err := strconv.ParseFloat(c.prev.Lexeme, 64)
	if err != nil {
		c.errAtPrev("float constant out of range")
		return
	}
	idx := c.chunk.RecordConst(value.NewDouble(d))
	c.chunk.WriteUnary(bytecode.OpConstant, c.prev.Line, uint64(idx))
}

// sliceFromToken wraps t's lexeme as a Slice tag. The []byte conversion
// copies the lexeme, so the Slice does not alias the source text and
// the chunk does not depend on the source staying alive.
func sliceFromToken(t lexer.Token) value.Tag {
	return value.NewSlice(value.NewBorrowedStr([]byte(t.Lexeme)), true)
}

// compileString trims the surrounding quote bytes and stores a copy of
// the remaining bytes as a Slice constant (it does not borrow the source
// buffer); no escape processing, matching the current language surface.
func (c *Compiler) compileString(_ bool) {
	lexeme := c.prev.Lexeme
	inner := lexeme[1 : len(lexeme)-1]
	idx := c.chunk.RecordConst(value.NewSlice(value.NewBorrowedStr([]byte(inner)), true))
	c.chunk.WriteUnary(bytecode.OpConstant, c.prev.Line, uint64(idx))
}

func (c *Compiler) compileLiteral(_ bool) {
	switch c.prev.Type {
	case lexer.TokenFalse:
		c.chunk.WriteOp(bytecode.OpFalse, c.prev.Line)
	case lexer.TokenNil:
		c.chunk.WriteOp(bytecode.OpNil, c.prev.Line)
	case lexer.TokenTrue:
		c.chunk.WriteOp(bytecode.OpTrue, c.prev.Line)
	}
}

func (c *Compiler) compileUnary(_ bool) {
	t := c.prev
	c.compilePrecedence(PrecUnary)
	switch t.Type {
	case lexer.TokenMinus:
		c.chunk.WriteOp(bytecode.OpNegate, t.Line)
	case lexer.TokenBang:
		c.chunk.WriteOp(bytecode.OpNot, t.Line)
	}
}

// compileBinary emits the operator's instruction(s) after recursively
// compiling the right-hand operand at one precedence level tighter
// (left-associative). Subtraction, >=, and <= are synthesized from
// other instructions; the alphabet has no dedicated opcode for them.
// != is emitted as OP_EQUAL, OP_NOT, correcting the reference source's
// OP_NOT-only emission (see DESIGN.md).
func (c *Compiler) compileBinary(_ bool) {
	t := c.prev
	rule := ruleFor(t.Type)
	c.compilePrecedence(rule.precedence + 1)
	switch t.Type {
	case lexer.TokenBangEqual:
		c.chunk.WriteOp(bytecode.OpEqual, t.Line)
		c.chunk.WriteOp(bytecode.OpNot, t.Line)
	case lexer.TokenEqualEqual:
		c.chunk.WriteOp(bytecode.OpEqual, t.Line)
	case lexer.TokenGreater:
		c.chunk.WriteOp(bytecode.OpGreater, t.Line)
	case lexer.TokenGreaterEqual:
		c.chunk.WriteOp(bytecode.OpLess, t.Line)
		c.chunk.WriteOp(bytecode.OpNot, t.Line)
	case lexer.TokenLess:
		c.chunk.WriteOp(bytecode.OpLess, t.Line)
	case lexer.TokenLessEqual:
		c.chunk.WriteOp(bytecode.OpGreater, t.Line)
		c.chunk.WriteOp(bytecode.OpNot, t.Line)
	case lexer.TokenMinus:
		c.chunk.WriteOp(bytecode.OpNegate, t.Line)
		c.chunk.WriteOp(bytecode.OpAdd, t.Line)
	case lexer.TokenPlus:
		c.chunk.WriteOp(bytecode.OpAdd, t.Line)
	case lexer.TokenSlash:
		c.chunk.WriteOp(bytecode.OpDivide, t.Line)
	case lexer.TokenStar:
		c.chunk.WriteOp(bytecode.OpMultiply, t.Line)
	}
}

// compileVariable resolves prev's identifier as a local (if in scope and
// found) or a global otherwise, compiling either a read or, when
// canAssign and the next token is `=`, a write.
func (c *Compiler) compileVariable(canAssign bool) {
	name := sliceFromToken(c.prev)
	line := c.prev.Line
	if canAssign && c.match(lexer.TokenEqual) {
		c.compileExpression()
		if c.inScope() {
			if idx, found := c.resolveLocal(name); found {
				c.chunk.WriteUnary(bytecode.OpSetLocal, line, uint64(idx))
				return
			}
		}
		idx := c.chunk.RecordConst(name)
		c.chunk.WriteUnary(bytecode.OpSetGlobal, line, uint64(idx))
		return
	}
	if c.inScope() {
		if idx, found := c.resolveLocal(name); found {
			c.chunk.WriteUnary(bytecode.OpGetLocal, line, uint64(idx))
			return
		}
	}
	idx := c.chunk.RecordConst(name)
	c.chunk.WriteUnary(bytecode.OpGetGlobal, line, uint64(idx))
}

// compileAnd short-circuits: if the left side is false, skip the right
// side and leave it as the expression's value.
func (c *Compiler) compileAnd(_ bool) {
	line := c.prev.Line
	jump := c.chunk.ReserveUnary(line)
	c.chunk.WriteOp(bytecode.OpPop, line)
	c.compilePrecedence(PrecAnd)
	c.chunk.PatchUnary(jump, bytecode.OpJumpIfFalse)
}

// compileOr is compileAnd's mirror image.
func (c *Compiler) compileOr(_ bool) {
	line := c.prev.Line
	jump := c.chunk.ReserveUnary(line)
	c.chunk.WriteOp(bytecode.OpPop, line)
	c.compilePrecedence(PrecOr)
	c.chunk.PatchUnary(jump, bytecode.OpJumpIfTrue)
}

func (c *Compiler) compileGrouping(_ bool) {
	c.compileExpression()
	c.consume(lexer.TokenRightParen, "missing paren after expression")
}
