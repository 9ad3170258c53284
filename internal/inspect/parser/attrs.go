package parser

import ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"

// tryParseAttributeList consumes zero or more attribute instances from the
// live parser cursor (used at top level, before a struct/declare_type/etc.
// keyword, where no reverse-parse ambiguity exists). Mirrors
// TryParseAttributeList's outer loop.
func (p *Parser) tryParseAttributeList() (*attrListNode, error) {
	var list *attrListNode
	for {
		inst, parsed, err := p.tryParseAttributeInstance()
		if err != nil {
			return nil, err
		}
		if !parsed {
			break
		}
		if list == nil {
			list = &attrListNode{}
		}
		list.Instances = append(list.Instances, inst)
	}
	return list, nil
}

// tryParseAttributeInstance parses "[Name(args...)]" or a bare alias
// identifier at the live cursor. Mirrors TryParseAttributeInstance.
func (p *Parser) tryParseAttributeInstance() (*attrInstanceNode, bool, error) {
	if !p.at(ilex.LBRACKET) {
		if !p.at(ilex.IDENT) {
			return nil, false, nil
		}
		inst := &attrInstanceNode{IsAlias: true, NameTok: p.cur}
		if err := p.next(); err != nil {
			return nil, false, err
		}
		return inst, true, nil
	}

	if err := p.next(); err != nil { // consume "["
		return nil, false, err
	}
	if err := p.expect(ilex.IDENT, "identifier"); err != nil {
		return nil, false, err
	}
	nameTok := p.cur
	if err := p.next(); err != nil {
		return nil, false, err
	}

	args, err := p.parseArgumentList()
	if err != nil {
		return nil, false, err
	}

	if err := p.expect(ilex.RBRACKET, "]"); err != nil {
		return nil, false, err
	}
	if err := p.next(); err != nil { // consume "]"
		return nil, false, err
	}

	return &attrInstanceNode{NameTok: nameTok, Args: args}, true, nil
}

// parseArgumentList parses "(arg, name: arg, ...)" from the live cursor,
// positioned at "(". Mirrors TryParseArgumentList.
func (p *Parser) parseArgumentList() ([]argItem, error) {
	if !p.at(ilex.LPAREN) {
		return nil, nil
	}
	if err := p.next(); err != nil { // consume "("
		return nil, err
	}

	var args []argItem
	for !p.at(ilex.RPAREN) {
		item := argItem{}

		first := p.cur
		item.Pos = first
		var run []ilex.Token

		if first.Type == ilex.IDENT {
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.at(ilex.COLON) {
				item.Named = true
				item.Name = first.Text
				if err := p.next(); err != nil {
					return nil, err
				}
			} else {
				run = append(run, first)
			}
		}

		for !p.at(ilex.COMMA) && !p.at(ilex.RPAREN) {
			if p.atEOF {
				return nil, p.fail(p.cur, "unexpected end of file while parsing argument list")
			}
			run = append(run, p.cur)
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		item.Value = joinTokenText(run)
		args = append(args, item)

		if p.at(ilex.RPAREN) {
			break
		}
		if err := p.next(); err != nil { // consume ","
			return nil, err
		}
	}

	if err := p.next(); err != nil { // consume ")"
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseAliasAttribute() (*aliasNode, error) {
	if err := p.next(); err != nil { // consume "alias_attribute"
		return nil, err
	}
	if err := p.expect(ilex.IDENT, "identifier"); err != nil {
		return nil, err
	}
	aliasTok := p.cur
	if err := p.next(); err != nil {
		return nil, err
	}

	target, parsed, err := p.tryParseAttributeInstance()
	if err != nil {
		return nil, err
	}
	if !parsed {
		return nil, p.fail(aliasTok, "expected attribute after alias name")
	}

	if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	return &aliasNode{AliasTok: aliasTok, Target: target}, nil
}

func (p *Parser) parseDeclareAttribute() (*attrDeclNode, error) {
	if err := p.next(); err != nil { // consume "declare_attribute"
		return nil, err
	}
	if err := p.expect(ilex.IDENT, "identifier"); err != nil {
		return nil, err
	}
	decl := &attrDeclNode{NameTok: p.cur}
	if err := p.next(); err != nil {
		return nil, err
	}

	if !p.at(ilex.LPAREN) {
		return nil, p.fail(p.cur, "expected \"(\"")
	}
	if err := p.next(); err != nil { // consume "("
		return nil, err
	}
	if p.at(ilex.RPAREN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
			return nil, err
		}
		return decl, p.next()
	}

	for {
		if err := p.expect(ilex.IDENT, "identifier"); err != nil {
			return nil, err
		}
		decl.Params = append(decl.Params, p.cur.Text)
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.at(ilex.RPAREN) {
			break
		}
		if err := p.expect(ilex.COMMA, ","); err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.next(); err != nil { // consume ")"
		return nil, err
	}
	if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	return decl, p.next()
}

// tokenCursor is a minimal forward cursor over a finite token slice, used to
// parse a field's leading attribute tokens once the reverse pass has
// located where the type begins (§4's field-header grammar).
type tokenCursor struct {
	toks []ilex.Token
	i    int
}

func (c *tokenCursor) at(t ilex.TokenType) bool {
	return c.i < len(c.toks) && c.toks[c.i].Type == t
}

func (c *tokenCursor) done() bool { return c.i >= len(c.toks) }

func (c *tokenCursor) cur() ilex.Token { return c.toks[c.i] }

func (c *tokenCursor) advance() { c.i++ }

// parseAttributeListFromTokens parses a bounded run of tokens (known not to
// contain anything but zero or more attribute instances) into an
// attrListNode, erroring if any input remains unconsumed.
func parseAttributeListFromTokens(toks []ilex.Token) (*attrListNode, error) {
	c := &tokenCursor{toks: toks}
	var list *attrListNode

	for !c.done() {
		if c.at(ilex.LBRACKET) {
			c.advance()
			if !c.at(ilex.IDENT) {
				return nil, errUnexpectedToken(c.toks, c.i)
			}
			nameTok := c.cur()
			c.advance()

			var args []argItem
			if c.at(ilex.LPAREN) {
				c.advance()
				for !c.at(ilex.RPAREN) {
					item := argItem{}
					if c.done() {
						return nil, errUnexpectedEOF
					}
					begin := c.cur()
					var run []ilex.Token
					if begin.Type == ilex.IDENT && c.i+1 < len(c.toks) && c.toks[c.i+1].Type == ilex.COLON {
						item.Named = true
						item.Name = begin.Text
						item.Pos = begin
						c.advance()
						c.advance()
					} else {
						item.Pos = begin
					}
					for !c.at(ilex.COMMA) && !c.at(ilex.RPAREN) {
						if c.done() {
							return nil, errUnexpectedEOF
						}
						run = append(run, c.cur())
						c.advance()
					}
					item.Value = joinTokenText(run)
					args = append(args, item)
					if c.at(ilex.RPAREN) {
						break
					}
					c.advance() // comma
				}
				if !c.at(ilex.RPAREN) {
					return nil, errUnexpectedEOF
				}
				c.advance()
			}

			if !c.at(ilex.RBRACKET) {
				return nil, errUnexpectedToken(c.toks, c.i)
			}
			c.advance()

			if list == nil {
				list = &attrListNode{}
			}
			list.Instances = append(list.Instances, &attrInstanceNode{NameTok: nameTok, Args: args})
			continue
		}

		if c.at(ilex.IDENT) {
			inst := &attrInstanceNode{IsAlias: true, NameTok: c.cur()}
			c.advance()
			if list == nil {
				list = &attrListNode{}
			}
			list.Instances = append(list.Instances, inst)
			continue
		}

		return nil, errUnexpectedToken(c.toks, c.i)
	}

	return list, nil
}
