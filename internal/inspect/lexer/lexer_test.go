package lexer

import "testing"

func collectTypes(src string) []TokenType {
	l := New("test.ins", src)
	var types []TokenType
	for {
		tok := l.Next()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	return types
}

func TestKeywordsRecognized(t *testing.T) {
	types := collectTypes("struct enum declare_type import declare_attribute alias_attribute")
	want := []TokenType{STRUCT, ENUM, DECLARE_TYPE, IMPORT, DECLARE_ATTRIBUTE, ALIAS_ATTRIBUTE, EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestIdentifierNotKeyword(t *testing.T) {
	l := New("test.ins", "Structure")
	tok := l.Next()
	if tok.Type != IDENT || tok.Text != "Structure" {
		t.Fatalf("expected IDENT Structure, got %s %q", tok.Type, tok.Text)
	}
}

func TestNumberLiteral(t *testing.T) {
	l := New("test.ins", "12345")
	tok := l.Next()
	if tok.Type != NUMBER || tok.Text != "12345" {
		t.Fatalf("expected NUMBER 12345, got %s %q", tok.Type, tok.Text)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New("test.ins", `"hello world"`)
	tok := l.Next()
	if tok.Type != STRING || tok.Text != "hello world" {
		t.Fatalf("expected STRING hello world, got %s %q", tok.Type, tok.Text)
	}
}

func TestIncompleteStringReported(t *testing.T) {
	l := New("test.ins", `"unterminated`)
	tok := l.Next()
	if tok.Type != INCOMPLETE_STRING {
		t.Fatalf("expected INCOMPLETE_STRING, got %s", tok.Type)
	}
}

func TestLineCommentSkipped(t *testing.T) {
	l := New("test.ins", "struct // a comment\nFoo")
	first := l.Next()
	second := l.Next()
	if first.Type != STRUCT || second.Type != IDENT || second.Text != "Foo" {
		t.Fatalf("expected STRUCT then IDENT Foo, got %s %s", first.Type, second.Type)
	}
	if second.Line != 2 {
		t.Fatalf("expected Foo on line 2, got %d", second.Line)
	}
}

func TestBlockCommentSkipped(t *testing.T) {
	l := New("test.ins", "struct /* multi\nline */ Foo")
	first := l.Next()
	second := l.Next()
	if first.Type != STRUCT || second.Type != IDENT || second.Text != "Foo" {
		t.Fatalf("expected STRUCT then IDENT Foo, got %s %s", first.Type, second.Type)
	}
}

func TestPunctuators(t *testing.T) {
	types := collectTypes(".,(){}[]<>'+-*/#!?~%&|:;=")
	want := []TokenType{
		DOT, COMMA, LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
		LANGLE, RANGLE, SINGLEQUOTE, PLUS, MINUS, STAR, SLASH, POUND,
		BANG, QUESTION, TILDE, PERCENT, AMP, PIPE, COLON, SEMICOLON, EQUALS, EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

func TestStructDeclSnippet(t *testing.T) {
	src := `struct Foo<Bar> { int X; string Name; }`
	types := collectTypes(src)
	want := []TokenType{
		STRUCT, IDENT, LANGLE, IDENT, RANGLE, LBRACE,
		IDENT, IDENT, SEMICOLON, IDENT, IDENT, SEMICOLON, RBRACE, EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}
