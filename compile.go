package slang

import (
	"github.com/slang-lang/slangc/internal/bytecode"
	"github.com/slang-lang/slangc/internal/compiler"
)

// Diagnostic is one reported compile-time error: a parse or scope error
// attributable to a specific source line, as opposed to a Go-level
// failure (I/O, bad arguments) which this package reports as a plain
// error instead.
type Diagnostic = compiler.Diagnostic

// Compile compiles source into a Chunk. ok is false if source contained
// any error; the chunk is still the best-effort result of compiling as
// much of source as panic-mode recovery allowed, matching the reference
// compiler's policy of never aborting on a source error.
func Compile(source string) (chunk *bytecode.Chunk, diags []Diagnostic, ok bool) {
	return compiler.Compile(source)
}
