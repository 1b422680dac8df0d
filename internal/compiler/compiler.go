package compiler

import (
	"github.com/slang-lang/slangc/internal/bytecode"
	"github.com/slang-lang/slangc/internal/lexer"
	"github.com/slang-lang/slangc/internal/value"
)

// Compiler holds all state for one compile() call: the token cursor, the
// chunk being assembled, sticky error tracking, and the two parallel
// scope stacks that back local-variable resolution.
type Compiler struct {
	lex     *lexer.Lexer
	chunk   *bytecode.Chunk
	current lexer.Token
	prev    lexer.Token

	hadError  bool
	panicMode bool
	diags     []Diagnostic

	// scopes holds one *value.List of declared-local-name Tags per
	// nested block, innermost last. uninitialized mirrors it one-to-one
	// with the subset of names whose initializer hasn't finished
	// compiling yet. Both stacks are value.List of value.Tag wrapping
	// *value.List, matching the Tag-of-container pattern used
	// throughout the value model.
	scopes        value.List
	uninitialized value.List
}

// Compile compiles src into a fresh Chunk. The returned bool is false if
// any diagnostic was reported; the chunk is still usable (best-effort)
// in that case, matching the reference implementation's policy of never
// aborting on a source error.
func Compile(src string) (*bytecode.Chunk, []Diagnostic, bool) {
	c := &Compiler{lex: lexer.New(src), chunk: bytecode.New()}
	c.advance()
	for c.current.Type != lexer.TokenEOF {
		c.compileDeclaration()
	}
	c.chunk.WriteOp(bytecode.OpReturn, c.current.Line)
	c.chunk.Seal()
	return c.chunk, c.diags, !c.hadError
}

func (c *Compiler) errorAtToken(t lexer.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	if t.Type == lexer.TokenError {
		msg = t.Lexeme
	}
	d := Diagnostic{
		Line:      t.Line,
		Lexeme:    t.Lexeme,
		Message:   msg,
		Formatted: formatDiagnostic(t.Line, t.Lexeme, msg, t.Type == lexer.TokenEOF, t.Type == lexer.TokenError),
	}
	c.diags = append(c.diags, d)
}

func (c *Compiler) errAtCurrent(msg string) { c.errorAtToken(c.current, msg) }
func (c *Compiler) errAtPrev(msg string)    { c.errorAtToken(c.prev, msg) }

func (c *Compiler) advance() {
	c.prev = c.current
	for {
		c.current = c.lex.Next()
		if c.current.Type != lexer.TokenError {
			return
		}
		c.errAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(tt lexer.TokenType) bool { return c.current.Type == tt }

func (c *Compiler) match(tt lexer.TokenType) bool {
	if !c.check(tt) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(tt lexer.TokenType, msg string) {
	if c.check(tt) {
		c.advance()
		return
	}
	c.errAtCurrent(msg)
}

// synchronize discards tokens after a reported error until the next
// declaration boundary, so later, independent errors still get reported.
func (c *Compiler) synchronize() {
	if !c.panicMode {
		return
	}
	c.panicMode = false
	for c.current.Type != lexer.TokenEOF {
		if c.prev.Type == lexer.TokenSemicolon {
			return
		}
		switch c.current.Type {
		case lexer.TokenClass, lexer.TokenFun, lexer.TokenVar, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenPrint, lexer.TokenReturn:
			return
		}
		c.advance()
	}
}

func (c *Compiler) compilePrecedence(p Precedence) {
	c.advance()
	prefix := ruleFor(c.prev.Type).prefix
	if prefix == nil {
		c.errAtPrev("invalid expression")
		return
	}
	canAssign := p <= PrecAssignment
	prefix(c, canAssign)
	for p <= ruleFor(c.current.Type).precedence {
		c.advance()
		infix := ruleFor(c.prev.Type).infix
		infix(c, canAssign)
	}
	if canAssign && c.match(lexer.TokenEqual) {
		c.errAtCurrent("invalid target assignment")
	}
}

func (c *Compiler) compileExpression() { c.compilePrecedence(PrecAssignment) }

func (c *Compiler) inScope() bool { return c.scopes.Len() > 0 }

func (c *Compiler) enterScope() {
	c.scopes.Append(value.NewListTag(&value.List{}, true))
	c.uninitialized.Append(value.NewListTag(&value.List{}, true))
}

func (c *Compiler) exitScope() {
	c.scopes.Pop().Free()
	c.uninitialized.Pop().Free()
}

func (c *Compiler) topScopeList() *value.List {
	last, ok := c.scopes.Last()
	if !ok {
		panic("compiler: topScopeList called outside a scope")
	}
	return last.AsList()
}

func (c *Compiler) topUninitializedList() *value.List {
	last, ok := c.uninitialized.Last()
	if !ok {
		panic("compiler: topUninitializedList called outside a scope")
	}
	return last.AsList()
}

// declareLocal registers var in the innermost scope, rejecting a
// redeclaration of the same name within that scope.
func (c *Compiler) declareLocal(v value.Tag) {
	top := c.topScopeList()
	if _, found := top.Find(v); found {
		c.errAtPrev("variable already defined")
		return
	}
	top.Append(v)
	c.topUninitializedList().Append(v.ToRef())
}

// initializeLocal removes var from the innermost uninitialized list by
// swapping in the last entry, so later reads of the same name stop
// tripping the self-initializer check. A miss is tolerated rather than
// treated as a bug: declareLocal skips the append when it has already
// reported a redeclaration error for the same name.
func (c *Compiler) initializeLocal(v value.Tag) {
	lst := c.topUninitializedList()
	idx, found := lst.Find(v)
	if !found {
		return
	}
	last := lst.Pop()
	if idx < lst.Len() {
		lst.Get(idx).Free()
		lst.Set(idx, last)
	} else {
		last.Free()
	}
}

// resolveLocal looks up var across the scope stack, innermost first,
// returning a flat slot index summed across all shallower scopes. It
// reports "used in its own initializer" if var is still pending
// initialization in the innermost scope.
func (c *Compiler) resolveLocal(v value.Tag) (int, bool) {
	if _, found := c.topUninitializedList().Find(v); found {
		c.errAtPrev("local variable used in its own initializer")
		return 0, false
	}
	for i := c.scopes.Len(); i > 0; i-- {
		scope := c.scopes.Get(i - 1).AsList()
		if idx, found := scope.Find(v); found {
			for j := i - 1; j > 0; j-- {
				idx += c.scopes.Get(j - 1).AsList().Len()
			}
			return idx, true
		}
	}
	return 0, false
}
