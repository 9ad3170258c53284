package parser

import (
	"errors"
	"fmt"

	ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"
)

var errUnexpectedEOF = errors.New("unexpected end of field while parsing type")

func errUnexpectedToken(buf []ilex.Token, i int) error {
	if i < 0 || i >= len(buf) {
		return errUnexpectedEOF
	}
	return fmt.Errorf("unexpected token %q", buf[i].Text)
}
