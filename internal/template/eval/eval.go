// Package eval is the template evaluator (P2, §4.3): it drives the dual-mode
// lexer's token stream against a model.Dict scope chain, emitting text to an
// output writer while reconciling indentation on the fly.
package eval

import (
	"fmt"
	"strings"

	"github.com/inspectgen/inspectgen/internal/errors"
	"github.com/inspectgen/inspectgen/internal/model"
	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// Options configures the indentation machine; defaults match §4.3.6.
type Options struct {
	TabSize   int
	UseSpaces bool
}

// DefaultOptions is tab_size=4, tabs (not spaces) — the compile-time
// defaults the original ships with.
func DefaultOptions() Options {
	return Options{TabSize: 4, UseSpaces: false}
}

// Evaluator walks one template's token stream against a scope chain,
// writing generated output. Grounded on codegen_parse_write.cpp's writer
// object: the same fields (token stream, tab state, scope-level stack,
// temporary-item frames) collapsed into a single Go struct rather than the
// original's base-class-plus-lexer split, since Go has no use for the
// inheritance the C++ used to share the read-side/write-side parser shell.
type Evaluator struct {
	s      *stream
	tabs   *tabMachine
	frames *model.FrameStack
	out    *strings.Builder
	rep    *errors.Reporter
	file   string

	global *model.Dict
}

// New creates an Evaluator reading src (named file, for diagnostics) against
// global, writing to an internal buffer retrievable via Output.
func New(file, src string, global *model.Dict, opts Options) *Evaluator {
	lx := wlex.New(file, src)
	return &Evaluator{
		s:      newStream(lx),
		tabs:   newTabMachine(opts.TabSize, opts.UseSpaces),
		frames: &model.FrameStack{},
		out:    &strings.Builder{},
		rep:    &errors.Reporter{},
		file:   file,
		global: global,
	}
}

// Output returns everything written so far.
func (e *Evaluator) Output() string { return e.out.String() }

// Err returns the first diagnostic raised, if any.
func (e *Evaluator) Err() *errors.Diagnostic { return e.rep.Err() }

func (e *Evaluator) cur() wlex.Token  { return e.s.current() }
func (e *Evaluator) advance() wlex.Token { return e.s.advance() }
func (e *Evaluator) pos() int        { return e.s.pos() }
func (e *Evaluator) jump(p int)      { e.s.jump(p) }

func (e *Evaluator) posOf(tok wlex.Token) errors.Pos {
	return errors.Pos{File: e.file, Line: tok.Line, Column: tok.Column}
}

// fail records (at most) one diagnostic and returns a local error to unwind
// the current evaluation. The spec's "process-wide flag suppresses repeated
// generic messages" is subsumed by Reporter's own first-report-wins
// semantics: only the first call to fail (specific or generic) is ever kept,
// so no separate latch is needed here.
func (e *Evaluator) fail(tok wlex.Token, format string, args ...any) error {
	e.rep.Report(e.posOf(tok), format, args...)
	return fmt.Errorf("%s: %s", e.posOf(tok), fmt.Sprintf(format, args...))
}

func (e *Evaluator) failIllegal(tok wlex.Token) error {
	return e.fail(tok, "illegal expression")
}

// expect advances past the current token if it matches want, else fails.
func (e *Evaluator) expect(want wlex.TokenType, what string) (wlex.Token, error) {
	tok := e.cur()
	if tok.Type != want {
		return tok, e.fail(tok, "expected %s, got %q", what, tok.Text)
	}
	e.advance()
	return tok, nil
}

// Run primes the cursor and evaluates the whole template to EOF
// (EvaluateTemplate), against the global scope.
func (e *Evaluator) Run() error {
	e.advance()
	return e.evaluate(e.global, func(tok wlex.Token) bool { return tok.Type == wlex.EOF })
}

// evaluate is the per-block dispatch loop (Evaluate): it commits TEXT/
// TEXT_NEWLINE tokens straight to output and hands every other token to the
// statement/expression layer, until until(currentToken) reports true. scope
// is the dictionary identifier lookups resolve against at this nesting
// level.
func (e *Evaluator) evaluate(scope *model.Dict, until func(wlex.Token) bool) error {
	for {
		tok := e.cur()
		if until(tok) {
			return nil
		}
		switch tok.Type {
		case wlex.EOF:
			return nil
		case wlex.TEXT, wlex.TEXT_NEWLINE:
			e.commitToken(tok)
			e.advance()
		case wlex.SEMICOLON:
			e.advance()
		default:
			if err := e.evaluateTopLevel(scope); err != nil {
				return err
			}
		}
	}
}

// evaluateTopLevel dispatches a single non-text token to a statement form
// (§4.3.4) or, failing that, evaluates it as a full expression statement
// (§4.3.2, from the assignment level).
func (e *Evaluator) evaluateTopLevel(scope *model.Dict) error {
	tok := e.cur()
	switch tok.Type {
	case wlex.IF:
		return e.evalIf(scope)
	case wlex.FOR:
		return e.evalFor(scope)
	case wlex.FOR_EACH:
		return e.evalForEach(scope)
	case wlex.DEFINE:
		return e.evalDefine(scope)
	case wlex.DEFINITIONS:
		return e.evalDefinitions(scope)
	case wlex.BEGIN_TAB:
		return e.evalBeginTab(scope)
	case wlex.IGNORE_NEW_LINE:
		return e.evalIgnoreNewLine(scope)
	case wlex.BREAKPOINT:
		e.advance()
		return nil
	case wlex.END:
		return e.fail(tok, "unexpected end")
	default:
		// This has to come last (TryEvaluateWriteout in the original): a
		// bare expression with no leading keyword writes its value out.
		return e.evalWriteout(scope)
	}
}

// commitToken applies the indentation machine (§4.3.6) to one TEXT/
// TEXT_NEWLINE token and writes the result.
func (e *Evaluator) commitToken(tok wlex.Token) {
	if tok.Type == wlex.TEXT_NEWLINE {
		e.tabs.setLineBeginTabState()
		if !e.tabs.shouldIgnoreNewLine() {
			e.out.WriteByte('\n')
		}
		return
	}
	e.commitText(tok.Text)
}

// commitText runs one piece of text through the indentation machine and
// writes the result (CommitTextForAdjustment), shared by plain TEXT tokens
// and writeout's stringified expression value.
func (e *Evaluator) commitText(text string) {
	if isAllWhitespace(text) && e.tabs.shouldAdjust {
		e.tabs.queuedTabs += e.tabs.countLeadingTabs(text)
		return
	}
	adjusted := e.tabs.adjust(text)
	e.out.WriteString(e.tabs.renderTabs(adjusted))
}

func isAllWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}
