package eval

import (
	"github.com/inspectgen/inspectgen/internal/model"
	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// evalProcedureCall recognizes `identifier(args...)` (§4.3.5). It is tried
// speculatively: an identifier not followed by "(" is rewound so the
// reference-chain parser gets a turn instead, matching the original's
// PushToken-then-PopTokens lookahead.
func (e *Evaluator) evalProcedureCall(scope *model.Dict) (model.Item, bool, error) {
	if e.cur().Type != wlex.IDENT {
		return model.Item{}, false, nil
	}
	idTok := e.cur()
	startPos := e.pos()
	e.advance()

	if e.cur().Type != wlex.LPAREN {
		e.jump(startPos)
		return model.Item{}, false, nil
	}
	e.advance() // past "("

	procItem, ok := model.Lookup(scope, idTok.Text)
	if !ok {
		return model.Item{}, true, e.fail(idTok, "could not find procedure %q", idTok.Text)
	}
	if procItem.Tag != model.TagProcedure {
		return model.Item{}, true, e.fail(idTok, "%q is not a procedure", idTok.Text)
	}
	proc := procItem.Proc

	callScope := model.NewChildDict(proc.ParentScope)

	if len(proc.Params) > 0 {
		for i, param := range proc.Params {
			if e.cur().Type == wlex.RPAREN {
				return model.Item{}, true, e.fail(e.cur(),
					"call to %s requires %d arguments, but was given %d", idTok.Text, len(proc.Params), i)
			}

			e.frames.Push()
			arg, err := e.evalAssignment(scope)
			e.frames.Pop()
			if err != nil {
				return model.Item{}, true, err
			}
			callScope.Insert(param, arg)

			if i != len(proc.Params)-1 {
				if _, err := e.expect(wlex.COMMA, "','"); err != nil {
					return model.Item{}, true, err
				}
			} else if e.cur().Type != wlex.RPAREN {
				return model.Item{}, true, e.fail(e.cur(),
					"too many args for call to %s, expected %d", idTok.Text, len(proc.Params))
			}
		}
	} else if e.cur().Type != wlex.RPAREN {
		return model.Item{}, true, e.fail(e.cur(),
			"too many args for call to %s, expected %d", idTok.Text, len(proc.Params))
	}

	// ReturnLocation: the cursor sits on ")" here, not yet consumed.
	returnPos := e.pos()

	e.jump(proc.BodyPos)
	saved := e.tabs.save()
	e.tabs.pushScopeLevel(false, false)
	e.tabs.tabsToAdd += proc.TabState.TabsToAdd
	e.tabs.tabsToRemove += proc.TabState.TabsToRemove

	err := e.evaluate(callScope, untilEnd)

	e.tabs.tabsToAdd -= proc.TabState.TabsToAdd
	e.tabs.tabsToRemove -= proc.TabState.TabsToRemove
	e.tabs.popScopeLevel(false)
	e.tabs.restore(saved)

	if err != nil {
		return model.Item{}, true, err
	}

	e.jump(returnPos)
	e.advance() // past ")"

	return model.Void(), true, nil
}
