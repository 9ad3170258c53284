package eval

import (
	"github.com/inspectgen/inspectgen/internal/model"
	wlex "github.com/inspectgen/inspectgen/internal/template/lexer"
)

// referenceCopy returns a read-only-borrow copy of orig that still carries
// Owner/OwnerKey, so a reference chain can keep resolving further `.`/`[]`
// steps (or terminate for assignment) without losing write-back identity.
func referenceCopy(orig model.Item) model.Item {
	cp := model.AsReferenceCopy(orig)
	cp.Owner, cp.OwnerKey = orig.Owner, orig.OwnerKey
	return cp
}

// evalReference parses a reference chain (§4.3.3): an identifier looked up
// in scope, followed by zero or more `.identifier` or `[expr]` steps.
// Grounded on TryEvaluateReference/TryEvaluateIndexer in
// codegen_parse_write.cpp; the original's FindLValueName UID scan is
// unnecessary here since model.Dict.Insert already stamps Owner/OwnerKey on
// every stored Item.
func (e *Evaluator) evalReference(scope *model.Dict) (model.Item, bool, error) {
	tok := e.cur()
	if tok.Type != wlex.IDENT {
		return model.Item{}, false, nil
	}
	e.advance()

	orig, ok := model.Lookup(scope, tok.Text)
	if !ok {
		return model.Item{}, true, e.fail(tok, "undeclared identifier %q", tok.Text)
	}
	item := referenceCopy(orig)
	e.frames.Track(item)

	for {
		switch e.cur().Type {
		case wlex.DOT:
			e.advance()
			nameTok := e.cur()
			if nameTok.Type != wlex.IDENT {
				return model.Item{}, true, e.fail(nameTok, "expected identifier after '.'")
			}
			e.advance()
			next, err := e.getMember(item, nameTok)
			if err != nil {
				return model.Item{}, true, err
			}
			item = next
			e.frames.Track(item)

		case wlex.LBRACKET:
			e.advance()
			e.frames.Push()
			index, err := e.evalAssignment(scope)
			e.frames.Pop()
			if err != nil {
				return model.Item{}, true, err
			}
			closeTok := e.cur()
			if closeTok.Type != wlex.RBRACKET {
				return model.Item{}, true, e.fail(closeTok, "expected ']'")
			}
			e.advance()
			next, err := e.getIndexed(item, index, closeTok)
			if err != nil {
				return model.Item{}, true, err
			}
			item = next
			e.frames.Track(item)

		default:
			return item, true, nil
		}
	}
}

// getMember resolves `.identifier` against item: the synthetic List.Size
// keyword, or a dictionary lookup.
func (e *Evaluator) getMember(item model.Item, nameTok wlex.Token) (model.Item, error) {
	if item.Tag == model.TagList && nameTok.Text == model.ListSizeKeyword {
		return model.NewInt(item.List.Size()), nil
	}
	if item.Tag != model.TagDict {
		return model.Item{}, e.fail(nameTok, "%q is not a dictionary", nameTok.Text)
	}
	member, ok := item.Dict.Get(nameTok.Text)
	if !ok {
		return model.Item{}, e.fail(nameTok, "undeclared member %q", nameTok.Text)
	}
	return referenceCopy(member), nil
}

// getIndexed resolves `[expr]` against item: Int indexes a List, String
// looks up attribute data on item.
func (e *Evaluator) getIndexed(item, index model.Item, tok wlex.Token) (model.Item, error) {
	switch index.Tag {
	case model.TagInt:
		if item.Tag != model.TagList {
			return model.Item{}, e.fail(tok, "cannot index a %s with an integer", item.Tag)
		}
		if index.Int < 0 || index.Int >= item.List.Size() {
			return model.Item{}, e.fail(tok, "index %d out of range (size %d)", index.Int, item.List.Size())
		}
		return referenceCopy(item.List.At(index.Int)), nil

	case model.TagString:
		if item.Attributes == nil {
			return model.Item{}, e.fail(tok, "item carries no attributes")
		}
		data, ok := item.Attributes.AttributeData.Get(index.Str)
		if !ok {
			return model.Item{}, e.fail(tok, "no attribute data named %q", index.Str)
		}
		return referenceCopy(data), nil

	default:
		return model.Item{}, e.fail(tok, "index must be Int or String, got %s", index.Tag)
	}
}
