package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/symbols"
	"github.com/dhamidi/jsast/project"
)

func mustParse(t *testing.T, src string) (*parser.Result, ast.Node) {
	t.Helper()
	res, err := parser.Parse(src, parser.Config{})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	prog, ok := res.Program()
	if !ok {
		t.Fatal("Parse() produced no program")
	}
	return res, prog
}

func TestPrintWalk(t *testing.T) {
	res, prog := mustParse(t, "f(x);")
	var buf bytes.Buffer
	printWalk(&buf, prog, res.Source(), map[ast.Kind]bool{ast.KindIdentifier: true}, true, -1)
	want := "      enter Identifier .callee \"f\" [0..1]\n" +
		"      leave Identifier .callee \"f\" [0..1]\n" +
		"      enter Identifier .arguments \"x\" [2..3]\n" +
		"      leave Identifier .arguments \"x\" [2..3]\n"
	if got := buf.String(); got != want {
		t.Errorf("printWalk() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintWalkDepth(t *testing.T) {
	res, prog := mustParse(t, "f(x);")
	var buf bytes.Buffer
	printWalk(&buf, prog, res.Source(), nil, false, 1)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printWalk() printed %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "  enter ExpressionStatement .body") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestWriteKindCounts(t *testing.T) {
	var buf bytes.Buffer
	writeKindCounts(&buf, map[ast.Kind]int{ast.KindProgram: 1, ast.KindIdentifier: 2})
	out := buf.String()
	if strings.Index(out, "Identifier") > strings.Index(out, "Program") {
		t.Errorf("kinds not sorted by count:\n%s", out)
	}
	if !strings.Contains(out, "3") {
		t.Errorf("total missing:\n%s", out)
	}
}

func TestQualifiedMatch(t *testing.T) {
	method := &symbols.Symbol{Name: "parse", Depth: 1}
	roots := []*symbols.Symbol{
		{Name: "Parser", Children: []*symbols.Symbol{method}},
		{Name: "parse"},
	}

	tests := []struct {
		name string
		want bool
	}{
		{"parse", true},
		{"Parser.parse", true},
		{"Lexer.parse", false},
		{"x.Parser.parse", false},
	}
	for _, tt := range tests {
		if got := qualifiedMatch(roots, method, strings.Split(tt.name, ".")); got != tt.want {
			t.Errorf("qualifiedMatch(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if qualifiedMatch(roots, &symbols.Symbol{Name: "parse"}, []string{"parse"}) {
		t.Error("qualifiedMatch() matched a symbol outside roots")
	}
}

func TestCheckProject(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"ok.js":     "let a = 1;\n",
		"bad.ts":    "let x: = ;\n",
		"latin1.js": "var s = '\xe9';\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	results, err := checkProject(context.Background(), p, 2)
	if err != nil {
		t.Fatalf("checkProject() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("checkProject() = %d results, want 3", len(results))
	}
	if results[0].res.File() != "bad.ts" || !results[0].res.HasErrors() {
		t.Errorf("results[0] = %s, want bad.ts with errors", results[0].path)
	}
	if results[1].path != "latin1.js" || !errors.Is(results[1].err, parser.ErrInvalidUTF8) {
		t.Errorf("results[1] = %s %v, want latin1.js with an encoding error", results[1].path, results[1].err)
	}
	if results[2].res.File() != "ok.js" || !results[2].res.IsValid() {
		t.Errorf("results[2] = %s, want valid ok.js", results[2].path)
	}
}

func TestUseColor(t *testing.T) {
	if on, err := useColor("always"); err != nil || !on {
		t.Errorf("useColor(always) = %v, %v", on, err)
	}
	if on, err := useColor("never"); err != nil || on {
		t.Errorf("useColor(never) = %v, %v", on, err)
	}
	if _, err := useColor("sometimes"); err == nil {
		t.Error("useColor(sometimes) succeeded, want error")
	}
}
