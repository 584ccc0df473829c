package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/jsast/js/parser"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg, err := p.ParserConfig("a.ts")
	if err != nil {
		t.Fatalf("ParserConfig() error: %v", err)
	}
	if cfg.Language != parser.LangTS || cfg.SourceType != parser.SourceModule {
		t.Errorf("ParserConfig(a.ts) = %v, want ts module", cfg)
	}
}

func TestParserConfig(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ConfigFile: `parser:
  source_type: script
  ecma_version: 2019
overrides:
  .mjs:
    source_type: module
    strict: false
`,
	})
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		path       string
		sourceType parser.SourceType
		language   parser.Language
		strict     *bool
	}{
		{"a.js", parser.SourceScript, parser.LangJS, nil},
		{"b.tsx", parser.SourceScript, parser.LangTSX, nil},
		{"c.mjs", parser.SourceModule, parser.LangJS, new(bool)},
	}
	for _, tt := range tests {
		cfg, err := p.ParserConfig(tt.path)
		if err != nil {
			t.Fatalf("ParserConfig(%q) error: %v", tt.path, err)
		}
		if cfg.SourceType != tt.sourceType || cfg.Language != tt.language {
			t.Errorf("ParserConfig(%q) = %v, want %s %s", tt.path, cfg, tt.language, tt.sourceType)
		}
		if cfg.ECMAVersion != parser.ES2019 {
			t.Errorf("ParserConfig(%q).ECMAVersion = %s, want es2019", tt.path, cfg.ECMAVersion)
		}
		if diff := cmp.Diff(tt.strict, cfg.Strict); diff != "" {
			t.Errorf("ParserConfig(%q).Strict mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "parsr: {}\n"},
		{"bad source type", "parser:\n  source_type: commonjs\n"},
		{"bad version", "parser:\n  ecma_version: 2013\n"},
		{"override key", "overrides:\n  ts:\n    language: ts\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Errorf("ParseConfig(%q) succeeded, want error", tt.data)
			}
		})
	}
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) error: %v", err)
	}
	if len(cfg.Exclude) != 0 || cfg.Parser.SourceType != nil {
		t.Errorf("ParseConfig(nil) = %+v, want zero", cfg)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ConfigFile:            "exclude:\n  - \"*.min.js\"\n",
		".gitignore":          "build/\n",
		"src/a.ts":            "",
		"src/b.jsx":           "",
		"src/c.min.js":        "",
		"src/readme.md":       "",
		"index.js":            "",
		"build/out.js":        "",
		"node_modules/m/i.js": "",
	})
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"index.js", "src/a.ts", "src/b.jsx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Files() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilesGitignoreDisabled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		ConfigFile:     "gitignore: false\nextensions: [.js]\n",
		".gitignore":   "build/\n",
		"build/out.js": "",
		"a.ts":         "",
	})
	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files() error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "out.js" {
		t.Errorf("Files() = %v, want build/out.js only", files)
	}
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "a", "b.js": "b", "c.js": "c"})
	paths := []string{
		filepath.Join(dir, "c.js"),
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "b.js"),
	}
	srcs, err := ReadSources(context.Background(), paths)
	if err != nil {
		t.Fatalf("ReadSources() error: %v", err)
	}
	var got string
	for i, s := range srcs {
		if s.Path != paths[i] {
			t.Errorf("srcs[%d].Path = %q, want %q", i, s.Path, paths[i])
		}
		got += string(s.Text)
	}
	if got != "cab" {
		t.Errorf("contents = %q, want %q", got, "cab")
	}

	if _, err := ReadSources(context.Background(), []string{filepath.Join(dir, "missing.js")}); err == nil {
		t.Error("ReadSources() with a missing file succeeded, want error")
	}
}
