package bytecode

// OpCode is one instruction in a Chunk's byte vector. The alphabet is
// closed: this is the complete contract between the compiler and the
// (out of scope) interpreter that eventually walks a Chunk.
type OpCode uint8

const (
	OpNoop OpCode = iota
	OpConstant
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpPrint
	OpReturn
	OpNegate
	OpNot
	OpAdd
	OpMultiply
	OpDivide
	OpEqual
	OpGreater
	OpLess
	OpDefGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpLoop

	opCount // sentinel; not a real instruction
)

var opcodeNames = [opCount]string{
	OpNoop:        "OP_NOOP",
	OpConstant:    "OP_CONSTANT",
	OpNil:         "OP_NIL",
	OpTrue:        "OP_TRUE",
	OpFalse:       "OP_FALSE",
	OpPop:         "OP_POP",
	OpPrint:       "OP_PRINT",
	OpReturn:      "OP_RETURN",
	OpNegate:      "OP_NEGATE",
	OpNot:         "OP_NOT",
	OpAdd:         "OP_ADD",
	OpMultiply:    "OP_MULTIPLY",
	OpDivide:      "OP_DIVIDE",
	OpEqual:       "OP_EQUAL",
	OpGreater:     "OP_GREATER",
	OpLess:        "OP_LESS",
	OpDefGlobal:   "OP_DEF_GLOBAL",
	OpGetGlobal:   "OP_GET_GLOBAL",
	OpSetGlobal:   "OP_SET_GLOBAL",
	OpGetLocal:    "OP_GET_LOCAL",
	OpSetLocal:    "OP_SET_LOCAL",
	OpJump:        "OP_JUMP",
	OpJumpIfFalse: "OP_JUMP_IF_FALSE",
	OpJumpIfTrue:  "OP_JUMP_IF_TRUE",
	OpLoop:        "OP_LOOP",
}

func (op OpCode) String() string {
	if op >= opCount {
		return "OP_<bad>"
	}
	return opcodeNames[op]
}

// hasConstOperand reports whether op's unary operand indexes the
// constant pool, as opposed to a local slot or a jump offset — the
// disassembler prints the referenced constant's representation only
// for these.
func (op OpCode) hasConstOperand() bool {
	switch op {
	case OpConstant, OpDefGlobal, OpGetGlobal, OpSetGlobal:
		return true
	default:
		return false
	}
}

// hasUnaryOperand reports whether op is followed by an encoded operand
// at all.
func (op OpCode) hasUnaryOperand() bool {
	switch op {
	case OpConstant, OpDefGlobal, OpGetGlobal, OpSetGlobal,
		OpGetLocal, OpSetLocal, OpJump, OpJumpIfFalse, OpJumpIfTrue, OpLoop:
		return true
	default:
		return false
	}
}
