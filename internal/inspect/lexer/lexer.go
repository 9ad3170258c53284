package lexer

import "github.com/inspectgen/inspectgen/internal/errors"

// delimiter reports whether b ends a run of identifier/number characters
// (NextIdentifierOrNumber's switch statement in the original source).
func delimiter(b byte) bool {
	_, isPunct := singleCharPunctuators[b]
	return isPunct || b == 0 || b == '\r' || b == '\n' || b == '\t' || b == ' ' || b == '"'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Lexer scans ".ins" source one byte at a time, mirroring the teacher's
// position-tracking lexer but operating on raw bytes per the ASCII-only
// assumption documented in SPEC_FULL.md §1.
type Lexer struct {
	file string
	src  string
	at   int

	line       int
	column     int
	nextLine   int
	nextColumn int
}

// New creates a Lexer over src, attributing diagnostics to file.
func New(file, src string) *Lexer {
	return &Lexer{
		file:       file,
		src:        src,
		nextLine:   1,
		nextColumn: 1,
	}
}

func (l *Lexer) peek() byte {
	if l.at >= len(l.src) {
		return 0
	}
	return l.src[l.at]
}

func (l *Lexer) peekAt(offset int) byte {
	i := l.at + offset
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) advance() {
	l.at++
	l.nextColumn++
}

func (l *Lexer) eatIgnored() {
	for {
		c := l.peek()

		if isWhitespace(c) {
			if c == '\n' {
				l.nextLine++
				l.nextColumn = 0
			}
			l.advance()
			continue
		}

		if c == '/' && l.peekAt(1) == '/' {
			for l.peek() != '\n' && l.peek() != 0 {
				l.advance()
			}
			continue
		}

		if c == '/' && l.peekAt(1) == '*' {
			l.advance()
			l.advance()
			for {
				if l.peek() == 0 {
					return
				}
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}
				if l.peek() == '\n' {
					l.nextLine++
				}
				l.advance()
			}
			continue
		}

		break
	}
}

func (l *Lexer) pos() errors.Pos {
	return errors.Pos{File: l.file, Line: l.line, Column: l.column}
}

// Next scans and returns the next token, advancing the cursor.
func (l *Lexer) Next() Token {
	l.eatIgnored()

	l.line = l.nextLine
	l.column = l.nextColumn

	if l.at >= len(l.src) {
		return Token{Type: EOF, Line: l.line, Column: l.column}
	}

	c := l.peek()

	if tokType, ok := singleCharPunctuators[c]; ok {
		l.advance()
		return Token{Type: tokType, Text: string(c), Line: l.line, Column: l.column}
	}

	if c == '"' {
		l.advance()
		begin := l.at
		for l.peek() != '"' {
			if l.peek() == 0 {
				return Token{Type: INCOMPLETE_STRING, Text: l.src[begin:l.at], Line: l.line, Column: l.column}
			}
			l.advance()
		}
		text := l.src[begin:l.at]
		l.advance()
		return Token{Type: STRING, Text: text, Line: l.line, Column: l.column}
	}

	return l.identifierOrNumber()
}

// identifierOrNumber scans a run of non-delimiter characters, classifying it
// as NUMBER if every byte it contains is a digit, otherwise as a keyword or
// plain IDENT, exactly as NextIdentifierOrNumber does in the original.
func (l *Lexer) identifierOrNumber() Token {
	begin := l.at
	isNumber := true

	for !delimiter(l.peek()) {
		if isNumber && !isDigit(l.peek()) {
			isNumber = false
		}
		l.advance()
	}

	text := l.src[begin:l.at]
	tokType := IDENT
	switch {
	case isNumber:
		tokType = NUMBER
	default:
		tokType = lookupKeyword(text)
	}
	return Token{Type: tokType, Text: text, Line: l.line, Column: l.column}
}
