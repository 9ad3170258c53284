package parser

import ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"

// parseTypeReverse consumes buf backwards starting at index i, the original
// codegen_parse_inspect.cpp's TryParseTypeReverse walked via MoveBack over a
// token stack; here buf[i] plays the role of "current token" and the walk is
// a plain index decrement. Returns the parsed type and the index of the
// token just past the type's start (i.e. one before the first token it
// consumed) for the caller to keep unwinding.
func parseTypeReverse(buf []ilex.Token, i int) (*typeRef, int, error) {
	if i < 0 {
		return nil, i, errUnexpectedEOF
	}

	switch buf[i].Type {
	case ilex.STAR:
		inner, ni, err := parseTypeReverse(buf, i-1)
		if err != nil {
			return nil, ni, err
		}
		return &typeRef{IsPointer: true, Inner: inner}, ni, nil

	case ilex.AMP:
		inner, ni, err := parseTypeReverse(buf, i-1)
		if err != nil {
			return nil, ni, err
		}
		return &typeRef{IsReference: true, Inner: inner}, ni, nil

	case ilex.RANGLE:
		args, ni, err := parseTypeArgsReverse(buf, i)
		if err != nil {
			return nil, ni, err
		}
		if ni < 0 || buf[ni].Type != ilex.IDENT {
			return nil, ni, errUnexpectedToken(buf, ni)
		}
		return &typeRef{Name: buf[ni].Text, NameTok: buf[ni], Args: args}, ni - 1, nil

	case ilex.IDENT:
		return &typeRef{Name: buf[i].Text, NameTok: buf[i]}, i - 1, nil
	}

	return nil, i, errUnexpectedToken(buf, i)
}

// parseTypeArgsReverse consumes the "<T1, T2, ...>" suffix backwards,
// starting at buf[i] == RANGLE. Mirrors TryParseTypeArgsReverse.
func parseTypeArgsReverse(buf []ilex.Token, i int) ([]*typeRef, int, error) {
	j := i - 1
	var args []*typeRef
	for {
		arg, nj, err := parseTypeReverse(buf, j)
		if err != nil {
			return nil, nj, err
		}
		args = append(args, arg)
		j = nj

		if j < 0 {
			return nil, j, errUnexpectedEOF
		}
		if buf[j].Type == ilex.COMMA {
			j--
			continue
		}
		if buf[j].Type == ilex.LANGLE {
			break
		}
		return nil, j, errUnexpectedToken(buf, j)
	}

	for l, r := 0, len(args)-1; l < r; l, r = l+1, r-1 {
		args[l], args[r] = args[r], args[l]
	}
	return args, j - 1, nil
}

// parseTypedArgListReverse consumes a method's "(type name, ...)" argument
// list backwards, starting at buf[i] == RPAREN. Mirrors
// TryParseTypedArgumentListReverse, minus the per-argument attribute list
// branch (inspectgen method arguments carry no attributes; see DESIGN.md).
func parseTypedArgListReverse(buf []ilex.Token, i int) ([]typedArgDecl, int, error) {
	j := i - 1
	if j < 0 {
		return nil, j, errUnexpectedEOF
	}
	if buf[j].Type == ilex.LPAREN {
		return nil, j - 1, nil
	}

	var args []typedArgDecl
	for {
		if buf[j].Type != ilex.IDENT {
			return nil, j, errUnexpectedToken(buf, j)
		}
		name := buf[j].Text
		j--

		typ, nj, err := parseTypeReverse(buf, j)
		if err != nil {
			return nil, nj, err
		}
		j = nj

		args = append(args, typedArgDecl{Name: name, Type: typ})

		if j < 0 {
			return nil, j, errUnexpectedEOF
		}
		if buf[j].Type == ilex.COMMA {
			j--
			continue
		}
		if buf[j].Type == ilex.LPAREN {
			break
		}
		return nil, j, errUnexpectedToken(buf, j)
	}

	for l, r := 0, len(args)-1; l < r; l, r = l+1, r-1 {
		args[l], args[r] = args[r], args[l]
	}
	return args, j - 1, nil
}
