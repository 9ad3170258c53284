package eval

import (
	"strconv"

	"github.com/inspectgen/inspectgen/internal/model"
	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// isScopeStarter reports whether tt opens a block that SkipPastMatchingEnd
// must balance against its own `end` when scanning past an unevaluated body
// (an `if`'s false branch, a `define`'s body at definition time, ...).
func isScopeStarter(tt wlex.TokenType) bool {
	switch tt {
	case wlex.FOR_EACH, wlex.FOR, wlex.IF, wlex.DEFINE, wlex.DEFINITIONS, wlex.BEGIN_TAB:
		return true
	}
	return false
}

// skipPastMatchingEnd advances the cursor past the `end` matching the block
// starting at the current token, counting nested scope-starters so an inner
// block's own `end` doesn't terminate the skip early.
func (e *Evaluator) skipPastMatchingEnd() error {
	begin := e.cur()
	cur := begin
	depth := 0
	for {
		if cur.Type == wlex.EOF {
			return e.fail(begin, "EOF reached before scope closed, are you missing an end?")
		}
		if isScopeStarter(cur.Type) {
			depth++
		}
		if cur.Type == wlex.END {
			if depth == 0 {
				e.advance()
				return nil
			}
			depth--
		}
		cur = e.advance()
	}
}

// continuePastToken advances until the current token is tt, then advances
// once more past it.
func (e *Evaluator) continuePastToken(tt wlex.TokenType, what string) error {
	tok := e.cur()
	for tok.Type != tt {
		tok = e.advance()
		if tok.Type == wlex.EOF {
			return e.fail(tok, "expected %q, found EOF", what)
		}
	}
	e.advance()
	return nil
}

// continueToModeSwitch advances until the current token is the first one
// after a text/expression mode boundary, WITHOUT consuming it — used to
// locate a for loop's body start just after its increment clause, relying
// on the lexer's FirstAfterModeSwitch flag rather than any bracket count.
// This is a deliberately preserved sharp edge (see DESIGN.md). The flag is
// set on the text token after the header's closing "$" and, when the body
// opens directly with another "$...$" region, on that region's first token,
// so both body shapes are found. With an empty increment clause the first
// flagged token is the body itself, so the increment position and the body
// position coincide and the body's first token is evaluated as the
// increment expression.
func (e *Evaluator) continueToModeSwitch() error {
	first := e.cur()
	cur := first
	for !cur.FirstAfterModeSwitch {
		cur = e.advance()
		if cur.Type == wlex.EOF {
			return e.fail(first, "unexpected EOF")
		}
	}
	return nil
}

func untilEnd(tok wlex.Token) bool { return tok.Type == wlex.END }

// evalIf implements `$if expr$ ... $end$`.
func (e *Evaluator) evalIf(scope *model.Dict) error {
	tok := e.advance() // past "if"

	e.frames.Push()
	cond, err := e.evalAssignment(scope)
	e.frames.Pop()
	if err != nil {
		return err
	}
	if cond.Tag != model.TagBool {
		return e.fail(tok, "expression does not evaluate to a bool")
	}

	if !cond.Bool {
		return e.skipPastMatchingEnd()
	}

	e.tabs.pushScopeLevel(false, true)
	if err := e.evaluate(scope, untilEnd); err != nil {
		return err
	}
	e.tabs.popScopeLevel(true)
	e.advance() // past "end"
	return nil
}

// evalFor implements `$for init ; cond ; step$ ... $end$`.
func (e *Evaluator) evalFor(scope *model.Dict) error {
	e.advance() // past "for"

	local := model.NewChildDict(scope)

	e.frames.Push()
	_, err := e.evalAssignment(local)
	e.frames.Pop()
	if err != nil {
		return err
	}

	if _, err := e.expect(wlex.SEMICOLON, "';'"); err != nil {
		return err
	}

	conditionPos := e.pos()
	if err := e.continuePastToken(wlex.SEMICOLON, ";"); err != nil {
		return err
	}

	incrementPos := e.pos()
	if err := e.continueToModeSwitch(); err != nil {
		return e.fail(e.cur(), "could not find body of for loop")
	}
	bodyPos := e.pos()

	for {
		e.jump(conditionPos)
		e.frames.Push()
		cond, err := e.evalAssignment(local)
		e.frames.Pop()
		if err != nil {
			return err
		}
		if cond.Tag != model.TagBool {
			return e.fail(e.cur(), "expression must evaluate to a boolean value")
		}
		if !cond.Bool {
			break
		}

		e.jump(bodyPos)
		e.tabs.pushScopeLevel(false, true)
		if err := e.evaluate(local, untilEnd); err != nil {
			return err
		}
		e.tabs.popScopeLevel(true)

		e.jump(incrementPos)
		e.frames.Push()
		_, err = e.evalAssignment(local)
		e.frames.Pop()
		if err != nil {
			return err
		}
	}

	e.jump(bodyPos)
	return e.skipPastMatchingEnd()
}

// evalForEach implements `$foreach X in expr$ ... $end$`.
func (e *Evaluator) evalForEach(scope *model.Dict) error {
	e.advance() // past "foreach"

	varTok := e.cur()
	if varTok.Type != wlex.IDENT {
		return e.fail(varTok, "expected identifier")
	}
	e.advance()

	if _, err := e.expect(wlex.IN, "'in'"); err != nil {
		return err
	}

	listTok := e.cur()
	e.frames.Push()
	listItem, err := e.evalAssignment(scope)
	e.frames.Pop()
	if err != nil {
		return err
	}
	if listItem.Tag != model.TagList {
		return e.fail(listTok, "expression did not evaluate to a list")
	}

	if listItem.List.Size() == 0 {
		return e.skipPastMatchingEnd()
	}

	local := model.NewChildDict(scope)
	returnPos := e.pos()

	items := listItem.List.Items
	for i, item := range items {
		local.Insert(varTok.Text, item)
		e.tabs.pushScopeLevel(false, true)
		if err := e.evaluate(local, untilEnd); err != nil {
			return err
		}
		e.tabs.popScopeLevel(true)

		if i != len(items)-1 {
			e.jump(returnPos)
		}
	}

	e.advance() // past "end"
	return nil
}

// evalDefine implements `$define Name(p1, ..., pn)$ ... $end$`: the body is
// never evaluated here, only its token-stream location is recorded.
func (e *Evaluator) evalDefine(scope *model.Dict) error {
	e.advance() // past "define"

	nameTok := e.cur()
	if nameTok.Type != wlex.IDENT {
		return e.fail(nameTok, "invalid identifier %q", nameTok.Text)
	}
	e.advance()

	if _, err := e.expect(wlex.LPAREN, "'('"); err != nil {
		return err
	}

	var params []string
	if e.cur().Type != wlex.RPAREN {
		for {
			tok := e.cur()
			if tok.Type != wlex.IDENT {
				return e.fail(tok, "expected identifier, got %q", tok.Text)
			}
			params = append(params, tok.Text)
			e.advance()

			if e.cur().Type == wlex.RPAREN {
				e.advance()
				break
			}
			if _, err := e.expect(wlex.COMMA, "','"); err != nil {
				return err
			}
		}
	} else {
		e.advance()
	}

	proc := &model.Procedure{
		Params:      params,
		ParentScope: scope,
		BodyPos:     e.pos(),
		TabState: model.TabState{
			TabsToAdd:    e.tabs.tabsToAdd,
			TabsToRemove: e.tabs.tabsToRemove + 1, // define starts another tab scope
		},
	}

	if err := e.skipPastMatchingEnd(); err != nil {
		return err
	}

	scope.Insert(nameTok.Text, model.NewProcedure(proc))
	return nil
}

// evalDefinitions implements `$definitions$ ... $end$`: a scope level with
// newline suppression enabled, letting a block of define statements emit
// nothing.
func (e *Evaluator) evalDefinitions(scope *model.Dict) error {
	e.advance() // past "definitions"
	e.tabs.pushScopeLevel(true, true)
	if err := e.evaluate(scope, untilEnd); err != nil {
		return err
	}
	e.tabs.popScopeLevel(true)
	e.advance() // past "end"
	return nil
}

// evalBeginTab implements `$begin_tab$ ... $end$`.
func (e *Evaluator) evalBeginTab(scope *model.Dict) error {
	e.advance() // past "begin_tab"
	e.tabs.pushScopeLevel(false, true)
	e.tabs.tabsToAdd++
	if err := e.evaluate(scope, untilEnd); err != nil {
		return err
	}
	e.tabs.tabsToAdd--
	e.tabs.popScopeLevel(true)
	e.advance() // past "end"
	return nil
}

// evalIgnoreNewLine implements `$ignore_new_line$`: if immediately followed
// by a TextNewLine, that one newline is swallowed without being emitted.
func (e *Evaluator) evalIgnoreNewLine(scope *model.Dict) error {
	e.advance() // past "ignore_new_line"
	if e.cur().Type == wlex.TEXT_NEWLINE {
		e.tabs.setIgnoreLineBeginTabState()
		e.advance()
	}
	return nil
}

// evalWriteout is the fallback statement form (TryEvaluateWriteout): a bare
// expression with no leading keyword writes its stringified value.
func (e *Evaluator) evalWriteout(scope *model.Dict) error {
	tok := e.cur()
	e.frames.Push()
	item, err := e.evalAssignment(scope)
	e.frames.Pop()
	if err != nil {
		return err
	}

	switch item.Tag {
	case model.TagString:
		e.commitText(item.Str)
	case model.TagInt:
		e.commitText(strconv.Itoa(item.Int))
	case model.TagBool:
		if item.Bool {
			e.commitText("True")
		} else {
			e.commitText("False")
		}
	case model.TagVoid:
		// no output
	default:
		return e.fail(tok, "reference cannot be converted to a string")
	}
	return nil
}
