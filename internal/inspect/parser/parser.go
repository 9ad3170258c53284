// Package parser implements P1: the inspect-language parser that consumes
// L2 tokens and builds the global data dictionary (structs, types,
// attribute declarations/aliases), then resolves types and attributes
// against it (§4, §6.3 of SPEC_FULL.md).
//
// Grounded on original_source/src/codegen_parse_inspect.cpp. Where the
// original buffers tokens on an append-only stack and walks it backwards
// with MoveBack/MoveTo to disambiguate a field's optional leading attribute
// list from its type, this parser buffers the same run of tokens into a
// plain slice and walks that slice by index — same trick, idiomatic Go.
package parser

import (
	"fmt"
	"os"
	"path/filepath"

	ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"
	"github.com/inspectgen/inspectgen/internal/errors"
)

// maxImportDepth bounds the import lexer stack (§6.3: "Nesting imports
// beyond 10 is an error").
const maxImportDepth = 10

type openFile struct {
	lx   *ilex.Lexer
	dir  string
	file string
}

// Parser drives the inspect-language grammar over a stack of files.
type Parser struct {
	reporter *errors.Reporter

	files []*openFile
	cur   ilex.Token
	atEOF bool

	structs   []*structDecl
	typeDecls []*typeDeclNode
	attrDecls []*attrDeclNode
	aliases   []*aliasNode

	// importDepth counts files currently pushed beyond the root; only the
	// root file (importDepth == 0) contributes entries to the Structs list.
	importDepth int
}

// New creates a Parser that reports the first diagnostic it hits to reporter.
func New(reporter *errors.Reporter) *Parser {
	return &Parser{reporter: reporter}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *Parser) top() *openFile {
	return p.files[len(p.files)-1]
}

func (p *Parser) fail(tok ilex.Token, format string, args ...any) error {
	pos := errors.Pos{File: p.top().file, Line: tok.Line, Column: tok.Column}
	p.reporter.Report(pos, format, args...)
	return p.reporter.Err()
}

// next advances the cursor, popping the import stack on EOF.
func (p *Parser) next() error {
	for {
		p.cur = p.top().lx.Next()
		if p.cur.Type != ilex.EOF {
			return nil
		}
		if len(p.files) == 1 {
			p.atEOF = true
			return nil
		}
		p.files = p.files[:len(p.files)-1]
		p.importDepth--
	}
}

func (p *Parser) at(t ilex.TokenType) bool { return p.cur.Type == t }

func (p *Parser) expect(t ilex.TokenType, what string) error {
	if !p.at(t) {
		return p.fail(p.cur, "expected %s, found %q", what, p.cur.Text)
	}
	return nil
}

// ParseFile parses rootPath (and everything it imports) and returns the
// resolved GlobalScope dictionary.
func ParseFile(rootPath string, reporter *errors.Reporter) (*GlobalScope, error) {
	p := New(reporter)
	src, err := readFile(rootPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rootPath, err)
	}
	lx := ilex.New(rootPath, src)
	p.files = append(p.files, &openFile{lx: lx, dir: filepath.Dir(rootPath), file: rootPath})
	if err := p.next(); err != nil {
		return nil, err
	}

	if err := p.run(); err != nil {
		return nil, err
	}
	return p.resolve()
}

// run executes the top-level declaration loop (mirrors ParseInspect).
func (p *Parser) run() error {
	for {
		if p.atEOF {
			break
		}

		attrs, err := p.tryParseAttributeList()
		if err != nil {
			return err
		}
		if p.atEOF {
			if attrs != nil {
				return p.fail(p.cur, "attribute list cannot be defined here")
			}
			break
		}

		switch {
		case p.at(ilex.STRUCT):
			// Read before parsing: consuming the struct's closing ";" can
			// pop an imported file off the stack.
			fromImport := p.importDepth > 0
			decl, err := p.parseStruct()
			if err != nil {
				return err
			}
			decl.Attributes = attrs
			decl.FromImport = fromImport
			p.structs = append(p.structs, decl)
			continue

		case p.at(ilex.DECLARE_TYPE):
			decl, err := p.parseDeclareType()
			if err != nil {
				return err
			}
			decl.Attributes = attrs
			p.typeDecls = append(p.typeDecls, decl)
			continue

		case p.at(ilex.ALIAS_ATTRIBUTE):
			alias, err := p.parseAliasAttribute()
			if err != nil {
				return err
			}
			p.aliases = append(p.aliases, alias)
			continue

		case p.at(ilex.DECLARE_ATTRIBUTE):
			decl, err := p.parseDeclareAttribute()
			if err != nil {
				return err
			}
			p.attrDecls = append(p.attrDecls, decl)
			continue

		case p.at(ilex.IMPORT):
			if err := p.parseImport(); err != nil {
				return err
			}
			continue

		case p.at(ilex.ENUM):
			return p.fail(p.cur, "enum declarations are not yet supported")
		}

		if attrs != nil {
			return p.fail(p.cur, "attribute list cannot be defined here")
		}
		return p.fail(p.cur, "unexpected token %q", p.cur.Text)
	}

	return nil
}

func (p *Parser) parseImport() error {
	if err := p.next(); err != nil { // consume "import"
		return err
	}
	if err := p.expect(ilex.STRING, "string"); err != nil {
		return err
	}
	pathTok := p.cur
	if err := p.next(); err != nil {
		return err
	}
	if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
		return err
	}

	if p.importDepth >= maxImportDepth {
		return p.fail(pathTok, "import nesting exceeds %d levels", maxImportDepth)
	}

	fullPath := filepath.Join(p.top().dir, pathTok.Text)
	src, err := readFile(fullPath)
	if err != nil {
		return p.fail(pathTok, "unable to open file %q", pathTok.Text)
	}

	lx := ilex.New(fullPath, src)
	p.files = append(p.files, &openFile{lx: lx, dir: filepath.Dir(fullPath), file: fullPath})
	p.importDepth++

	return p.next()
}

func (p *Parser) parseDeclareType() (*typeDeclNode, error) {
	if err := p.next(); err != nil { // consume "declare_type"
		return nil, err
	}
	if err := p.expect(ilex.IDENT, "identifier after declare_type"); err != nil {
		return nil, err
	}
	nameTok := p.cur
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(ilex.IDENT, "identifier after type name"); err != nil {
		return nil, err
	}
	descTok := p.cur
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return &typeDeclNode{NameTok: nameTok, DescriptorTok: descTok}, nil
}

func (p *Parser) parseStruct() (*structDecl, error) {
	if err := p.next(); err != nil { // consume "struct"
		return nil, err
	}
	if err := p.expect(ilex.IDENT, "identifier after struct"); err != nil {
		return nil, err
	}
	decl := &structDecl{NameTok: p.cur}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(ilex.LBRACE, "{"); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}

	for !p.at(ilex.RBRACE) {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	if err := p.next(); err != nil { // consume "}"
		return nil, err
	}
	if err := p.expect(ilex.SEMICOLON, ";"); err != nil {
		return nil, err
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return decl, nil
}
