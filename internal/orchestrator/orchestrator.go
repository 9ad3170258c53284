// Package orchestrator is the entry orchestrator (E, §4.4 of SPEC_FULL.md):
// it drives one full generation run end to end, parsing an inspect source
// with P1 and evaluating it against the two built-in templates with P2.
//
// Grounded on original_source/src/codegen.cpp's main/GenFile: open the root
// .ins, derive the two output paths, inject HeaderFile/SourceFile, run the
// write parser against each template, and report success or failure per
// file rather than aborting the whole run on the first template's failure
// (the original evaluates the header template, reports, then the source
// template regardless of the header's outcome).
package orchestrator

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/inspectgen/inspectgen/internal/errors"
	"github.com/inspectgen/inspectgen/internal/inspect/parser"
	"github.com/inspectgen/inspectgen/internal/model"
	"github.com/inspectgen/inspectgen/internal/template/eval"
)

//go:embed templates/header.tmpl templates/source.tmpl templates/debug.ins templates/debug.template
var builtinFiles embed.FS

const (
	headerTemplatePath = "templates/header.tmpl"
	sourceTemplatePath = "templates/source.tmpl"
	debugInspectPath   = "templates/debug.ins"
	debugTemplatePath  = "templates/debug.template"

	headerExt = ".gen.h"
	sourceExt = ".gen.cpp"
)

// FileResult is one generated file's outcome: the path it was (or would
// have been) written to, and the error that aborted generation, if any
// (§4.4's "per-file success/failure" report line).
type FileResult struct {
	Path string
	Err  error
}

// Run parses inputPath as an inspect source and evaluates the header and
// source templates against it, writing both outputs under outputDir. The
// two files are attempted independently: a failure evaluating the header
// does not prevent the source template from running.
func Run(inputPath, outputDir string, opts eval.Options) ([]FileResult, error) {
	scope, err := parseInput(inputPath)
	if err != nil {
		return nil, err
	}

	headerPath := outputFilename(inputPath, outputDir, headerExt)
	sourcePath := outputFilename(inputPath, outputDir, sourceExt)

	scope.Dict.Insert("HeaderFile", model.NewString(filepath.Base(headerPath)))
	scope.Dict.Insert("SourceFile", model.NewString(filepath.Base(sourcePath)))

	return []FileResult{
		genFile(headerTemplatePath, headerPath, scope.Dict, opts),
		genFile(sourceTemplatePath, sourcePath, scope.Dict, opts),
	}, nil
}

// RunDebug evaluates the built-in debug template against the built-in
// debug inspect source (the CLI's `-D`/`/D` switch, §6.1), writing the
// result to outPath instead of deriving paths from a real input. Mirrors
// the original's debug mode inserting the literal "no_header.h" for
// HeaderFile rather than a real derived filename.
func RunDebug(outPath string, opts eval.Options) (FileResult, error) {
	insSrc, err := builtinFiles.ReadFile(debugInspectPath)
	if err != nil {
		return FileResult{}, err
	}

	tmp, err := os.CreateTemp("", "inspectgen-debug-*.ins")
	if err != nil {
		return FileResult{}, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(insSrc); err != nil {
		tmp.Close()
		return FileResult{}, err
	}
	if err := tmp.Close(); err != nil {
		return FileResult{}, err
	}

	scope, err := parseInput(tmp.Name())
	if err != nil {
		return FileResult{}, err
	}
	scope.Dict.Insert("HeaderFile", model.NewString("no_header.h"))

	return genFile(debugTemplatePath, outPath, scope.Dict, opts), nil
}

// parseInput reads and parses one root inspect file, turning a reported
// diagnostic into the returned error when present (GenFile/CreateInspectData
// stop the whole run the moment the inspect source itself fails to parse,
// unlike a single template's evaluation failure, which is per-file).
func parseInput(inputPath string) (*parser.GlobalScope, error) {
	reporter := &errors.Reporter{}
	scope, err := parser.ParseFile(inputPath, reporter)
	if err != nil {
		if diag := reporter.Err(); diag != nil {
			return nil, diag
		}
		return nil, err
	}
	return scope, nil
}

// outputFilename replaces inputPath's extension with newExt and relocates
// the result under outputDir. Mirrors GenerateOutputFilename.
func outputFilename(inputPath, outputDir, newExt string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, base+newExt)
}

// genFile evaluates one built-in template against global and writes the
// result to outPath. Mirrors GenFile: a template-evaluation failure is
// reported against this file only, the output file is left unwritten, and
// the caller's other genFile calls still proceed.
func genFile(templatePath, outPath string, global *model.Dict, opts eval.Options) FileResult {
	src, err := builtinFiles.ReadFile(templatePath)
	if err != nil {
		return FileResult{Path: outPath, Err: err}
	}

	e := eval.New(templatePath, string(src), global, opts)
	if err := e.Run(); err != nil {
		if diag := e.Err(); diag != nil {
			return FileResult{Path: outPath, Err: diag}
		}
		return FileResult{Path: outPath, Err: err}
	}

	if err := os.WriteFile(outPath, []byte(e.Output()), 0o644); err != nil {
		return FileResult{Path: outPath, Err: err}
	}
	return FileResult{Path: outPath, Err: nil}
}
