package lexer

import "testing"

func collectAll(src string) []Token {
	lx := New("test.tmpl", src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestPlainTextPassesThrough(t *testing.T) {
	toks := collectAll("hello world")
	if len(toks) != 2 || toks[0].Type != TEXT || toks[0].Text != "hello world" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestTextNewlineIsItsOwnToken(t *testing.T) {
	toks := collectAll("a\nb")
	want := []TokenType{TEXT, TEXT_NEWLINE, TEXT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s", i, w, toks[i].Type)
		}
	}
}

func TestExpressionSwitch(t *testing.T) {
	toks := collectAll("pre $x$ post")
	want := []TokenType{TEXT, IDENT, TEXT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %v, got %+v", want, toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
	if toks[1].Text != "x" {
		t.Fatalf("expected identifier x, got %q", toks[1].Text)
	}
	if !toks[1].FirstAfterModeSwitch {
		t.Fatalf("expected first expression token to be flagged FirstAfterModeSwitch")
	}
	if !toks[2].FirstAfterModeSwitch {
		t.Fatalf("expected first text token after the expression to be flagged FirstAfterModeSwitch")
	}
}

func TestEmptyExpressionIsSilentlyCrossed(t *testing.T) {
	// "$$" is an empty expression region: it collapses straight back to
	// text mode within the same Next() call, so "foo" comes back as a text
	// token, not an identifier.
	toks := collectAll("$$foo")
	if toks[0].Type != TEXT || toks[0].Text != "foo" {
		t.Fatalf("expected text foo immediately, got %+v", toks[0])
	}
	if !toks[0].FirstAfterModeSwitch {
		t.Fatalf("expected silently-crossed token to be flagged FirstAfterModeSwitch")
	}
}

func TestSourceStartingWithDollarEntersExpressionMode(t *testing.T) {
	toks := collectAll("$x$")
	if toks[0].Type != IDENT || toks[0].Text != "x" {
		t.Fatalf("expected leading identifier, got %+v", toks[0])
	}
}

func TestKeywords(t *testing.T) {
	toks := collectAll("$if end for foreach in ignore_new_line define definitions begin_tab breakpoint has_attribute$")
	want := []TokenType{IF, END, FOR, FOR_EACH, IN, IGNORE_NEW_LINE, DEFINE, DEFINITIONS, BEGIN_TAB, BREAKPOINT, HAS_ATTRIBUTE, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
}

func TestTwoCharacterOperators(t *testing.T) {
	toks := collectAll("$== != <= >= && || ++ --$")
	want := []TokenType{EQUALS, NOT_EQUALS, LESS_EQUAL, GREATER_EQUAL, AND, OR, PLUS_PLUS, MINUS_MINUS, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
}

func TestSingleCharacterFallbackWhenSecondByteDoesNotMatch(t *testing.T) {
	toks := collectAll("$a = b < c > d ! e$")
	want := []TokenType{IDENT, ASSIGN, IDENT, LESS, IDENT, GREATER, IDENT, BANG, IDENT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
}

func TestNumberLiteral(t *testing.T) {
	toks := collectAll("$42$")
	if toks[0].Type != NUMBER || toks[0].Text != "42" {
		t.Fatalf("expected number 42, got %+v", toks[0])
	}
}

func TestStringLiteral(t *testing.T) {
	toks := collectAll(`$"hello"$`)
	if toks[0].Type != STRING || toks[0].Text != "hello" {
		t.Fatalf("expected string hello, got %+v", toks[0])
	}
}

func TestIncompleteString(t *testing.T) {
	toks := collectAll(`$"hello`)
	if toks[0].Type != INCOMPLETE_STRING {
		t.Fatalf("expected incomplete string, got %+v", toks[0])
	}
}

func TestIndexingAndMemberAccessPunctuators(t *testing.T) {
	toks := collectAll("$a.b[0]$")
	want := []TokenType{IDENT, DOT, IDENT, LBRACKET, NUMBER, RBRACKET, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: expected %s, got %s (%q)", i, w, toks[i].Type, toks[i].Text)
		}
	}
}
