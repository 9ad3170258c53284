package parser

import ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"

// parseField buffers every token up to (not including) the field's
// terminating ";" or "=", then walks that buffer backwards to recover the
// optional method-argument list, name, type, and finally any leading
// attribute list - disambiguating attributes from the type name is only
// possible once the terminator has located the name. Mirrors TryParseField.
func (p *Parser) parseField() (*fieldDecl, error) {
	firstTok := p.cur
	var buf []ilex.Token
	for !p.at(ilex.SEMICOLON) && !p.at(ilex.EQUALS) {
		if p.atEOF {
			return nil, p.fail(firstTok, "unexpected end of file while parsing field")
		}
		buf = append(buf, p.cur)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	terminator := p.cur

	if len(buf) == 0 {
		return nil, p.fail(terminator, "unexpected %q", terminator.Text)
	}

	i := len(buf) - 1
	field := &fieldDecl{}

	if buf[i].Type == ilex.RPAREN {
		args, ni, err := parseTypedArgListReverse(buf, i)
		if err != nil {
			return nil, p.fail(terminator, "%v", err)
		}
		field.IsMethod = true
		field.MethodArgs = args
		i = ni
	}

	if i < 0 {
		return nil, p.fail(terminator, "%v", errUnexpectedEOF)
	}
	if buf[i].Type != ilex.IDENT {
		return nil, p.fail(buf[i], "expected identifier, found %q", buf[i].Text)
	}
	field.NameTok = buf[i]
	i--

	typ, ni, err := parseTypeReverse(buf, i)
	if err != nil {
		return nil, p.fail(terminator, "%v", err)
	}
	field.Type = typ
	i = ni

	if i >= 0 {
		attrs, err := parseAttributeListFromTokens(buf[:i+1])
		if err != nil {
			return nil, p.fail(terminator, "%v", err)
		}
		field.Attributes = attrs
	}

	if p.at(ilex.EQUALS) {
		if err := p.next(); err != nil {
			return nil, err
		}
		begin := p.cur
		var initBuf []ilex.Token
		for !p.at(ilex.SEMICOLON) {
			if p.atEOF {
				return nil, p.fail(begin, "unexpected end of file while parsing field initializer")
			}
			initBuf = append(initBuf, p.cur)
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		field.HasInitializer = true
		field.InitializerText = joinTokenText(initBuf)
	}

	if err := p.next(); err != nil { // consume terminating ";"
		return nil, err
	}

	return field, nil
}

func joinTokenText(toks []ilex.Token) string {
	text := ""
	for i, t := range toks {
		if i > 0 {
			text += " "
		}
		text += t.Text
	}
	return text
}
