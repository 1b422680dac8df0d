package compiler

import "github.com/slang-lang/slangc/internal/lexer"

// Precedence orders binding strength from loosest to tightest, the way
// compile_precedence climbs it.
type Precedence uint8

const (
	PrecNone Precedence = iota
	PrecAssignment        // =
	PrecOr                // or
	PrecAnd               // and
	PrecEquality          // == !=
	PrecComparison        // < > <= >=
	PrecTerm              // + -
	PrecFactor            // * /
	PrecUnary             // ! -
	PrecCall              // . () []
	PrecPrimary
)

// compileFn compiles one prefix or infix expression production.
// canAssign tells an identifier's prefix rule whether a trailing `=`
// should be treated as an assignment target.
type compileFn func(c *Compiler, canAssign bool)

type compileRule struct {
	prefix     compileFn
	infix      compileFn
	precedence Precedence
}

var rules map[lexer.TokenType]compileRule

func init() {
	rules = map[lexer.TokenType]compileRule{
		lexer.TokenLeftParen:    {prefix: (*Compiler).compileGrouping},
		lexer.TokenMinus:        {prefix: (*Compiler).compileUnary, infix: (*Compiler).compileBinary, precedence: PrecTerm},
		lexer.TokenPlus:         {infix: (*Compiler).compileBinary, precedence: PrecTerm},
		lexer.TokenSlash:        {infix: (*Compiler).compileBinary, precedence: PrecFactor},
		lexer.TokenStar:         {infix: (*Compiler).compileBinary, precedence: PrecFactor},
		lexer.TokenBang:         {prefix: (*Compiler).compileUnary},
		lexer.TokenBangEqual:    {infix: (*Compiler).compileBinary, precedence: PrecEquality},
		lexer.TokenEqualEqual:   {infix: (*Compiler).compileBinary, precedence: PrecEquality},
		lexer.TokenGreater:      {infix: (*Compiler).compileBinary, precedence: PrecComparison},
		lexer.TokenGreaterEqual: {infix: (*Compiler).compileBinary, precedence: PrecComparison},
		lexer.TokenLess:         {infix: (*Compiler).compileBinary, precedence: PrecComparison},
		lexer.TokenLessEqual:    {infix: (*Compiler).compileBinary, precedence: PrecComparison},
		lexer.TokenIdentifier:   {prefix: (*Compiler).compileVariable},
		lexer.TokenString:       {prefix: (*Compiler).compileString},
		lexer.TokenInt:          {prefix: (*Compiler).compileInt},
		lexer.TokenFloat:        {prefix: (*Compiler).compileFloat},
		lexer.TokenAnd:          {infix: (*Compiler).compileAnd, precedence: PrecAnd},
		lexer.TokenFalse:        {prefix: (*Compiler).compileLiteral},
		lexer.TokenNil:          {prefix: (*Compiler).compileLiteral},
		lexer.TokenOr:           {infix: (*Compiler).compileOr, precedence: PrecOr},
		lexer.TokenTrue:         {prefix: (*Compiler).compileLiteral},
	}
}

func ruleFor(tt lexer.TokenType) compileRule { return rules[tt] }
