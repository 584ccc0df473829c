package codebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/symbols"
	"github.com/dhamidi/jsast/project"
)

func newCodebase(t *testing.T, files map[string]string) (*Codebase, string) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p, err := project.Load(dir)
	if err != nil {
		t.Fatalf("project.Load() error: %v", err)
	}
	c := New(p)
	if err := c.ScanAll(context.Background()); err != nil {
		t.Fatalf("ScanAll() error: %v", err)
	}
	return c, dir
}

func TestScanAll(t *testing.T) {
	c, dir := newCodebase(t, map[string]string{
		"a.ts":        "export function helper() {}\n",
		"lib/b.js":    "let x = ;\n",
		"notes.txt":   "not code",
		"lib/c.d.txt": "",
	})
	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("Files() = %v, want 2 files", files)
	}

	a := c.GetFile(filepath.Join(dir, "a.ts"))
	if a == nil {
		t.Fatal("GetFile(a.ts) = nil")
	}
	if !a.Result.IsValid() {
		t.Errorf("a.ts diagnostics: %v", a.Result.Diagnostics())
	}
	if len(a.Symbols) != 1 || a.Symbols[0].Name != "helper" {
		t.Errorf("a.ts symbols = %v, want helper", a.Symbols)
	}

	b := c.GetFile(filepath.Join(dir, "lib", "b.js"))
	if b == nil || !b.Result.HasErrors() {
		t.Errorf("lib/b.js should have parse errors")
	}
}

func TestUpdateAndRemoveFile(t *testing.T) {
	c, dir := newCodebase(t, nil)
	path := filepath.Join(dir, "x.ts")

	if err := c.UpdateFile(path, []byte("const a = 1;")); err != nil {
		t.Fatalf("UpdateFile() error: %v", err)
	}
	first := c.GetFile(path)
	if err := c.UpdateFile(path, []byte("const b = 2;")); err != nil {
		t.Fatalf("UpdateFile() error: %v", err)
	}
	second := c.GetFile(path)
	if first == second {
		t.Fatal("UpdateFile() modified the FileInfo in place")
	}
	if got := first.Symbols[0].Name; got != "a" {
		t.Errorf("old FileInfo symbol = %q, want a", got)
	}
	if got := second.Program().Kind(); got != ast.KindProgram {
		t.Errorf("Program().Kind() = %s, want Program", got)
	}

	c.RemoveFile(path)
	if c.GetFile(path) != nil {
		t.Error("GetFile() after RemoveFile() is not nil")
	}
}

func TestDefinition(t *testing.T) {
	c, dir := newCodebase(t, map[string]string{
		"a.ts": "export function helper() {}\nfunction hidden() {}\n",
		"b.ts": "const local = 1;\nhelper(local);\nhidden();\n",
	})
	b := filepath.Join(dir, "b.ts")
	src := string(c.GetFile(b).Content)

	tests := []struct {
		at       string
		wantPath string
		wantName string
	}{
		{"helper(", "a.ts", "helper"},
		{"local)", "b.ts", "local"},
	}
	for _, tt := range tests {
		m, ok := c.Definition(b, strings.Index(src, tt.at))
		if !ok {
			t.Errorf("Definition(%q) not found", tt.at)
			continue
		}
		if filepath.Base(m.Path) != tt.wantPath || m.Symbol.Name != tt.wantName {
			t.Errorf("Definition(%q) = %s %s, want %s %s", tt.at, m.Path, m.Symbol.Name, tt.wantPath, tt.wantName)
		}
	}

	// Cursor just past the identifier.
	end := strings.Index(src, "helper(") + len("helper")
	if m, ok := c.Definition(b, end); !ok || m.Symbol.Name != "helper" {
		t.Errorf("Definition(helper|) = %v, %t, want helper", m.Symbol, ok)
	}

	if _, ok := c.Definition(b, strings.Index(src, "hidden")); ok {
		t.Error("Definition(hidden) resolved a non-exported symbol of another file")
	}
}

func TestSymbolAt(t *testing.T) {
	src := "class A {\n  m() { return 1; }\n}\n"
	c, dir := newCodebase(t, map[string]string{"a.ts": src})
	path := filepath.Join(dir, "a.ts")

	s := c.SymbolAt(path, strings.Index(src, "return"))
	if s == nil || s.Name != "m" {
		t.Fatalf("SymbolAt(return) = %v, want m", s)
	}
	if s := c.SymbolAt(path, len(src)); s != nil {
		t.Errorf("SymbolAt(end) = %v, want nil", s)
	}
}

func TestFindSymbols(t *testing.T) {
	c, _ := newCodebase(t, map[string]string{
		"a.ts": "export function parseFile() {}\n",
		"b.ts": "class Parser { parse() {} }\n",
	})
	var got []string
	for _, m := range c.FindSymbols("PARSE") {
		got = append(got, m.Symbol.Name)
	}
	want := "parseFile Parser parse"
	if strings.Join(got, " ") != want {
		t.Errorf("FindSymbols(PARSE) = %v, want %s", got, want)
	}
}

func TestCompletionsAtPoint(t *testing.T) {
	c, dir := newCodebase(t, map[string]string{
		"a.ts": "export function helper() {}\nexport const other = 1;\n",
		"b.ts": "const hello = 1;\nhe",
	})
	b := filepath.Join(dir, "b.ts")
	items := c.CompletionsAtPoint(b, len("const hello = 1;\nhe"))

	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	if got := strings.Join(labels, ","); got != "hello,helper" {
		t.Errorf("CompletionsAtPoint() labels = %s, want hello,helper", got)
	}
	if items[1].Kind != symbols.KindFunction {
		t.Errorf("helper kind = %s, want function", items[1].Kind)
	}
}

func TestDiagnostics(t *testing.T) {
	c, dir := newCodebase(t, map[string]string{"a.js": "let a;\nlet x = ;\n"})
	ds := Diagnostics(c.GetFile(filepath.Join(dir, "a.js")))
	if len(ds) == 0 {
		t.Fatal("Diagnostics() is empty")
	}
	d := ds[0]
	if *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("Severity = %d, want error", *d.Severity)
	}
	if d.Range.Start.Line != 1 {
		t.Errorf("Range.Start.Line = %d, want 1", d.Range.Start.Line)
	}
	if d.Code == nil || d.Code.Value != "syntax" {
		t.Errorf("Code = %v, want syntax", d.Code)
	}
}

func TestDocumentSymbols(t *testing.T) {
	src := "/** @deprecated use b */\nfunction a() {}\nclass C { m() {} }\n"
	c, dir := newCodebase(t, map[string]string{"a.js": src})
	out := DocumentSymbols(c.GetFile(filepath.Join(dir, "a.js")))
	if len(out) != 2 {
		t.Fatalf("DocumentSymbols() = %d symbols, want 2", len(out))
	}
	if out[0].Kind != protocol.SymbolKindFunction || len(out[0].Tags) != 1 {
		t.Errorf("a = %+v, want a deprecated function", out[0])
	}
	if len(out[1].Children) != 1 || out[1].Children[0].Kind != protocol.SymbolKindMethod {
		t.Errorf("class children = %+v", out[1].Children)
	}
}

func TestHoverText(t *testing.T) {
	c, dir := newCodebase(t, map[string]string{
		"a.ts": "/**\n * Adds numbers.\n * @param a first\n */\nexport async function add(a) {}\n",
	})
	f := c.GetFile(filepath.Join(dir, "a.ts"))
	got := HoverText(f.Symbols[0])
	if !strings.HasPrefix(got, "```ts\nasync function add\n```\n\nAdds numbers.") {
		t.Errorf("HoverText() = %q", got)
	}
	if !strings.Contains(got, "`a`") {
		t.Errorf("HoverText() missing parameter: %q", got)
	}
}

func TestFileWatcher(t *testing.T) {
	c, dir := newCodebase(t, nil)
	path := filepath.Join(dir, "w.js")
	if err := os.WriteFile(path, []byte("let a;"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewFileWatcher(c)
	var updated, removed []string
	w.OnUpdate = func(f *FileInfo) { updated = append(updated, f.Path) }
	w.OnRemove = func(p string) { removed = append(removed, p) }

	w.Scan()
	w.Scan()
	if len(updated) != 1 {
		t.Fatalf("updates after two scans = %v, want one", updated)
	}

	if err := os.WriteFile(path, []byte("let b;"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	w.Scan()
	if len(updated) != 2 {
		t.Fatalf("updates after modification = %v, want two", updated)
	}
	if got := c.GetFile(path).Symbols[0].Name; got != "b" {
		t.Errorf("symbol after modification = %q, want b", got)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.Scan()
	if len(removed) != 1 || c.GetFile(path) != nil {
		t.Errorf("removed = %v, want %s", removed, path)
	}
}

func TestURIPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/x.ts")
	if err != nil {
		t.Fatalf("uriToPath() error: %v", err)
	}
	if path != "/tmp/a b/x.ts" {
		t.Errorf("uriToPath() = %q", path)
	}
	if uri := pathToURI("/tmp/a b/x.ts"); uri != "file:///tmp/a%20b/x.ts" {
		t.Errorf("pathToURI() = %q", uri)
	}
}
