package lexer

import "testing"

func collect(src string) []Token {
	l := New(src)

	var toks []Token

	for {
		tok := l.NextToken()
		toks = append(toks, tok)

		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func assertTypes(t *testing.T, src string, want ...TokenType) {
	t.Helper()

	toks := collect(src)

	if len(toks) != len(want)+1 {
		t.Fatalf("%q: got %d tokens (incl EOF), want %d: %v", src, len(toks), len(want)+1, toks)
	}

	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("%q: token %d = %s, want %s", src, i, toks[i].Type, w)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	assertTypes(t, "int x return foo while", TokenKwInt, TokenIdent, TokenKwReturn, TokenIdent, TokenKwWhile)
}

func TestIntegerAndFloatLiterals(t *testing.T) {
	toks := collect("42 3.14 0")

	if toks[0].Type != TokenInt || toks[0].Literal != "42" {
		t.Fatalf("got %v", toks[0])
	}

	if toks[1].Type != TokenFloat || toks[1].Literal != "3.14" {
		t.Fatalf("got %v", toks[1])
	}

	if toks[2].Type != TokenInt || toks[2].Literal != "0" {
		t.Fatalf("got %v", toks[2])
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	toks := collect(`"hi\n\"there\""`)

	if toks[0].Type != TokenString {
		t.Fatalf("got %v", toks[0])
	}

	if toks[0].Literal != "hi\n\"there\"" {
		t.Fatalf("got literal %q", toks[0].Literal)
	}
}

func TestCompoundOperators(t *testing.T) {
	assertTypes(t, "<<= >>= ... ++ -- && || == != <= >= += -=",
		TokenShlEq, TokenShrEq, TokenEllipsis, TokenInc, TokenDec,
		TokenAndAnd, TokenOrOr, TokenEq, TokenNe, TokenLe, TokenGe, TokenPlusEq, TokenMinusEq)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	assertTypes(t, "int x; // a trailing remark\nreturn x;", TokenKwInt, TokenIdent, TokenSemi, TokenKwReturn, TokenIdent, TokenSemi)
}

func TestBlockCommentsAreSkipped(t *testing.T) {
	assertTypes(t, "int /* skip\nthis */ x;", TokenKwInt, TokenIdent, TokenSemi)
}

func TestUnicodeIdentifiersNormalizeToNFC(t *testing.T) {
	// "é" as a precomposed codepoint (U+00E9) vs "e"+combining acute (U+0065 U+0301)
	// must normalize to the same NFC spelling.
	precomposed := "é"
	decomposed := "é"

	a := collect(precomposed + " = 1;")[0]
	b := collect(decomposed + " = 1;")[0]

	if a.Literal != b.Literal {
		t.Fatalf("expected NFC normalization to unify spellings, got %q vs %q", a.Literal, b.Literal)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := collect("int\nx;")

	if toks[0].Line != 1 {
		t.Fatalf("expected int on line 1, got %d", toks[0].Line)
	}

	if toks[1].Line != 2 {
		t.Fatalf("expected x on line 2, got %d", toks[1].Line)
	}
}

func TestUnterminatedStringProducesErrorToken(t *testing.T) {
	toks := collect(`"no closing quote`)

	if toks[0].Type != TokenError {
		t.Fatalf("expected an error token, got %v", toks[0])
	}
}
