// Package errors provides the structured diagnostic type shared by the
// inspect lexer, the inspect parser, the template lexer, and the template
// evaluator.
//
// Every stage in inspectgen reports failures the same way: a single
// Diagnostic carrying a source position and a message, formatted as
// "file:line:col: message". The generator stops at the first diagnostic
// raised by any stage (there is no error recovery), so callers collect at
// most one.
package errors

import "fmt"

// Pos identifies a location in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single reported failure.
type Diagnostic struct {
	Pos     Pos
	Message string
}

// New creates a Diagnostic from a position and a printf-style message.
func New(pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface, producing the "file:line:col: message"
// wire format the spec requires.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos.String(), d.Message)
}

// Reporter keeps the first Diagnostic raised during a run; subsequent
// diagnostics are discarded. This mirrors the spec's "stops at the first
// error" policy and its design note to "accumulate a single error... the
// driver prints once" instead of printing eagerly at every failure site.
type Reporter struct {
	first *Diagnostic
}

// Report records a diagnostic if none has been recorded yet. Returns true
// if this call recorded the first diagnostic.
func (r *Reporter) Report(pos Pos, format string, args ...any) bool {
	if r.first != nil {
		return false
	}
	r.first = New(pos, format, args...)
	return true
}

// Err returns the first reported diagnostic, or nil if none was reported.
func (r *Reporter) Err() *Diagnostic {
	return r.first
}

// HasError reports whether a diagnostic has been recorded.
func (r *Reporter) HasError() bool {
	return r.first != nil
}
