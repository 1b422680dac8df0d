// Package slang compiles Slang/Lox source into a bytecode chunk.
//
// # Overview
//
// Slang is a small dynamically-typed scripting language: numbers, strings,
// booleans, nil, variables, if/while/for control flow, and print. This
// package owns the public compile entry point; the actual work is split
// across internal/lexer (tokenizing), internal/compiler (a single-pass
// Pratt parser that emits bytecode directly, with no intermediate AST),
// and internal/bytecode (the Chunk the compiler emits into, plus a
// disassembler). Running the resulting bytecode is out of scope here: the
// instruction alphabet is closed and documented, but no interpreter walks
// it.
//
// # Basic usage
//
//	chunk, diags, ok := slang.Compile(`print 1 + 2;`)
//	if !ok {
//	    for _, d := range diags {
//	        fmt.Fprintln(os.Stderr, d)
//	    }
//	}
//	fmt.Println(chunk.Disassemble())
//
// ok is false if source contained any error; compilation still returns a
// best-effort chunk in that case, so a caller can inspect what did compile.
package slang
