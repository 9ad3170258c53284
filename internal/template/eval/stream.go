package eval

import (
	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// stream is a recordable token cursor (§4.3.1): tokens already produced by
// the lexer are kept so the cursor can jump back to any earlier position
// (a for loop's condition and increment, a procedure's recorded body
// location) without re-lexing. Grounded on the original's token_stack +
// Jump/PopTokens, replacing the growable-array-with-Top-index with a plain
// Go slice and int.
type stream struct {
	lx     *wlex.Lexer
	tokens []wlex.Token
	top    int
}

func newStream(lx *wlex.Lexer) *stream {
	return &stream{lx: lx, top: -1}
}

// current returns the token at the cursor. Callers must have advanced past
// -1 first (via advance).
func (s *stream) current() wlex.Token {
	return s.tokens[s.top]
}

// advance moves the cursor forward one token, producing a new one from the
// lexer only the first time a position is visited (PushToken).
func (s *stream) advance() wlex.Token {
	s.top++
	if s.top < len(s.tokens) {
		return s.tokens[s.top]
	}
	tok := s.lx.Next()
	s.tokens = append(s.tokens, tok)
	return tok
}

// pos returns the cursor's current index, for later jump/PopTokens calls.
func (s *stream) pos() int { return s.top }

// jump moves the cursor directly to an earlier recorded position (a
// procedure's body_location, a for loop's condition/increment/body marks).
func (s *stream) jump(pos int) { s.top = pos }

// rewind moves the cursor back n tokens (PopTokens). The procedure-call
// lookahead undoes its speculative advance with jump instead.
func (s *stream) rewind(n int) { s.top -= n }
