package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetGenerateFlags restores generateCmd's flag-backed globals to their
// defaults between tests, since they're package-level vars shared by every
// invocation of Execute in this process.
func resetGenerateFlags(t *testing.T) {
	t.Helper()
	outputDir = ""
	debugMode = false
	showUsage = false
	tabSize = 4
	useTabsFlag = true
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetGenerateFlags(t)

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestGenerateWritesHeaderAndSourceUnderOutputDir(t *testing.T) {
	dir := t.TempDir()
	insPath := filepath.Join(dir, "widget.ins")
	src := `struct Widget { Int Count; };`
	if err := os.WriteFile(insPath, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	stdout, _, err := runCLI(t, "generate", insPath, "-O", dir)
	if err != nil {
		t.Fatalf("generate failed: %v\nstdout: %s", err, stdout)
	}

	wantHeader := filepath.Join(dir, "widget.gen.h")
	wantSource := filepath.Join(dir, "widget.gen.cpp")
	if !strings.Contains(stdout, wantHeader) {
		t.Fatalf("expected stdout to report %q, got %q", wantHeader, stdout)
	}
	if !strings.Contains(stdout, wantSource) {
		t.Fatalf("expected stdout to report %q, got %q", wantSource, stdout)
	}
	if _, err := os.Stat(wantHeader); err != nil {
		t.Fatalf("expected header file to exist: %v", err)
	}
	if _, err := os.Stat(wantSource); err != nil {
		t.Fatalf("expected source file to exist: %v", err)
	}
}

func TestGenerateRequiresOutputDir(t *testing.T) {
	dir := t.TempDir()
	insPath := filepath.Join(dir, "widget.ins")
	if err := os.WriteFile(insPath, []byte(`struct Widget {};`), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, _, err := runCLI(t, "generate", insPath)
	if err == nil {
		t.Fatal("expected an error when -O is missing")
	}
}

func TestGenerateRejectsDebugWithOutputDir(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "generate", "-D", "-O", dir)
	if err == nil {
		t.Fatal("expected an error when -D and -O are combined")
	}
}

func TestGenerateRejectsMultipleInputFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.ins")
	b := filepath.Join(dir, "b.ins")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte(`struct Foo {};`), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	_, _, err := runCLI(t, "generate", a, b, "-O", dir)
	if err == nil {
		t.Fatal("expected an error when multiple input files are given")
	}
}

func TestGenerateDebugModeProducesOutput(t *testing.T) {
	stdout, _, err := runCLI(t, "generate", "-D")
	if err != nil {
		t.Fatalf("debug generate failed: %v\nstdout: %s", err, stdout)
	}
	if !strings.Contains(stdout, "debug.out") {
		t.Fatalf("expected stdout to report a debug.out path, got %q", stdout)
	}
}
