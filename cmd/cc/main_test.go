package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func compileSource(t *testing.T, src string, opts compileOptions) error {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "input.c")

	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	return compileFile(path, opts)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}

	orig := os.Stdout
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = orig

	buf := make([]byte, 1<<16)
	n, _ := r.Read(buf)

	return string(buf[:n])
}

func TestS1MainReturningZero(t *testing.T) {
	var out string

	err := error(nil)

	out = captureStdout(t, func() {
		err = compileSource(t, "int main(){ return 0; }", compileOptions{})
	})

	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !strings.Contains(out, "ret i32 0") {
		t.Fatalf("expected ret i32 0 in output, got:\n%s", out)
	}
}

func TestS5ReturnTypeMismatchFails(t *testing.T) {
	err := compileSource(t, "int main(){ bool b; return b; }", compileOptions{})
	if err == nil {
		t.Fatal("expected typing to fail on a bool-returning body in an int function")
	}
}

func TestS6ArityMismatchFails(t *testing.T) {
	err := compileSource(t, "int f(); int main(){ return f(1); }", compileOptions{})
	if err == nil {
		t.Fatal("expected typing to fail on a call with a mismatched argument count")
	}
}

func TestS7InnerScopeShadowsOuterDeclaration(t *testing.T) {
	err := compileSource(t, "int main(){ int x; { int x; } return 0; }", compileOptions{})
	if err != nil {
		t.Fatalf("expected shadowing in an inner scope to bind cleanly, got: %v", err)
	}
}

func TestASTOnlyStopsBeforeLowering(t *testing.T) {
	err := compileSource(t, "int main(){ return 0; }", compileOptions{astOnly: true})
	if err != nil {
		t.Fatalf("expected ast-only run to succeed, got: %v", err)
	}
}

func TestLangPragmaRejectsIncompatibleVersion(t *testing.T) {
	src := "// lang: >=2.0.0\nint main(){ return 0; }"
	err := compileSource(t, src, compileOptions{})

	if err == nil {
		t.Fatal("expected a lang pragma requiring >=2.0.0 to be rejected against language version 1.0.0")
	}
}

func TestLangPragmaAcceptsCompatibleVersion(t *testing.T) {
	src := "// lang: >=1.0.0, <2.0.0\nint main(){ return 0; }"
	if err := compileSource(t, src, compileOptions{}); err != nil {
		t.Fatalf("expected a satisfied lang pragma to compile, got: %v", err)
	}
}

func TestLangOverrideFlagTakesPrecedenceOverPragma(t *testing.T) {
	src := "// lang: >=2.0.0\nint main(){ return 0; }"
	if err := compileSource(t, src, compileOptions{langOverride: ">=1.0.0"}); err != nil {
		t.Fatalf("expected -lang override to satisfy the constraint, got: %v", err)
	}
}

func TestUnicodeIdentifierCompiles(t *testing.T) {
	// A Unicode identifier round-trips through the full pipeline. S9's
	// composed-vs-decomposed normalization is checked in the lexer tests.
	src := "int café(){ return 0; } int main(){ return café(); }"
	if err := compileSource(t, src, compileOptions{}); err != nil {
		t.Fatalf("expected a Unicode identifier to compile, got: %v", err)
	}
}

func TestMissingInputFileFails(t *testing.T) {
	err := compileFile(filepath.Join(t.TempDir(), "missing.c"), compileOptions{})
	if err == nil {
		t.Fatal("expected a missing input file to fail")
	}
}
