package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/inspectgen/inspectgen/internal/template/eval"
)

func writeInspect(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "example.ins")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunGeneratesHeaderAndSource(t *testing.T) {
	dir := t.TempDir()
	src := `declare_attribute Pub();
declare_attribute Transient();

struct Point
{
	[Pub()] Int X;
	[Pub()] Int Y = 0;
	[Transient()] String Cache;
	Void Reset(Int x, Int y);
};
`
	input := writeInspect(t, dir, src)

	results, err := Run(input, dir, eval.DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("generating %s failed: %v", r.Path, r.Err)
		}
	}

	header, err := os.ReadFile(results[0].Path)
	if err != nil {
		t.Fatalf("reading generated header: %v", err)
	}
	source, err := os.ReadFile(results[1].Path)
	if err != nil {
		t.Fatalf("reading generated source: %v", err)
	}

	snaps.MatchSnapshot(t, "header", string(header))
	snaps.MatchSnapshot(t, "source", string(source))
}

func TestRunDerivesOutputFilenamesFromInputBasename(t *testing.T) {
	dir := t.TempDir()
	input := writeInspect(t, dir, `struct Empty {};`)

	results, err := Run(input, dir, eval.DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantHeader := filepath.Join(dir, "example.gen.h")
	wantSource := filepath.Join(dir, "example.gen.cpp")
	if results[0].Path != wantHeader {
		t.Fatalf("expected header path %q, got %q", wantHeader, results[0].Path)
	}
	if results[1].Path != wantSource {
		t.Fatalf("expected source path %q, got %q", wantSource, results[1].Path)
	}
}

func TestRunReportsParseErrorForMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInspect(t, dir, `struct Foo { Bogus x; };`)

	if _, err := Run(input, dir, eval.DefaultOptions()); err == nil {
		t.Fatalf("expected a parse error for an unrecognized type")
	}
}

func TestRunDebugProducesOutput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "debug.out")

	result, err := RunDebug(outPath, eval.DefaultOptions())
	if err != nil {
		t.Fatalf("RunDebug failed: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("debug generation failed: %v", result.Err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading debug output: %v", err)
	}
	snaps.MatchSnapshot(t, "debug", string(out))
}
