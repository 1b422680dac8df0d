package lexer

import "testing"

func scanAll(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func TestFloatVsIntVsDotInt(t *testing.T) {
	toks := scanAll("1.2")
	if len(toks) != 2 || toks[0].Type != TokenFloat || toks[0].Lexeme != "1.2" {
		t.Fatalf("1.2 should scan as a single FLOAT token, got %+v", toks)
	}

	toks = scanAll("1.")
	if len(toks) < 3 || toks[0].Type != TokenInt || toks[1].Type != TokenDot {
		t.Fatalf("1. should scan as INT then DOT, got %+v", toks)
	}
}

func TestUnterminatedStringAtEOL(t *testing.T) {
	toks := scanAll("\"abc\ndef\"")
	if toks[0].Type != TokenError {
		t.Fatalf("expected error token, got %v", toks[0].Type)
	}
	if toks[0].Lexeme != "unterminated string at end of line" {
		t.Fatalf("unexpected message: %q", toks[0].Lexeme)
	}
}

func TestUnterminatedStringAtEOF(t *testing.T) {
	toks := scanAll("\"abc")
	if toks[0].Type != TokenError || toks[0].Lexeme != "unterminated string at end of file" {
		t.Fatalf("unexpected token: %+v", toks[0])
	}
}

func TestTerminatedStringBothQuoteStyles(t *testing.T) {
	for _, src := range []string{`"hi"`, `'hi'`} {
		toks := scanAll(src)
		if toks[0].Type != TokenString || toks[0].Lexeme != src {
			t.Fatalf("scanning %q: got %+v", src, toks[0])
		}
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll("var x = print_value")
	want := []TokenType{TokenVar, TokenIdentifier, TokenEqual, TokenIdentifier, TokenEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
	if toks[3].Lexeme != "print_value" {
		t.Fatalf("print_value must lex as one identifier, not split on the print keyword prefix, got %q", toks[3].Lexeme)
	}
}

func TestTwoCharOperators(t *testing.T) {
	toks := scanAll("!= == <= >= < > = !")
	want := []TokenType{
		TokenBangEqual, TokenEqualEqual, TokenLessEqual, TokenGreaterEqual,
		TokenLess, TokenGreater, TokenEqual, TokenBang, TokenEOF,
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	toks := scanAll("// a comment\n  1 // trailing\n2")
	if len(toks) != 3 || toks[0].Type != TokenInt || toks[0].Lexeme != "1" {
		t.Fatalf("got %+v", toks)
	}
	if toks[0].Line != 2 || toks[1].Line != 3 {
		t.Fatalf("line tracking wrong: %+v", toks)
	}
}

func TestLineNumbersAdvanceOnNewline(t *testing.T) {
	toks := scanAll("1\n2\n3")
	for i, want := range []int{1, 2, 3} {
		if toks[i].Line != want {
			t.Fatalf("token %d on line %d, want %d", i, toks[i].Line, want)
		}
	}
}

func TestUnexpectedCharacterProducesErrorToken(t *testing.T) {
	toks := scanAll("@")
	if toks[0].Type != TokenError {
		t.Fatalf("expected error token for '@', got %v", toks[0].Type)
	}
}
