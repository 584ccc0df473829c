// Package project finds the JavaScript and TypeScript sources of a
// directory tree and the parser settings that apply to each of them.
//
// Settings live in an optional .jsast.yaml at the project root:
//
//	parser:
//	  source_type: module
//	  ecma_version: 2022
//	exclude:
//	  - dist/
//	  - "**/*.min.js"
//	overrides:
//	  .cjs:
//	    source_type: script
//
// Exclude patterns use .gitignore syntax and are applied together with the
// root .gitignore.
package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jsast/js/parser"
)

// ConfigFile is the name of the project settings file.
const ConfigFile = ".jsast.yaml"

// DefaultExtensions are the file extensions treated as sources.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

var defaultExclude = []string{"node_modules/", ".git/"}

// Settings are parser options where an absent value leaves the default in
// place.
type Settings struct {
	SourceType  *parser.SourceType  `yaml:"source_type,omitempty"`
	Language    *parser.Language    `yaml:"language,omitempty"`
	ECMAVersion *parser.ECMAVersion `yaml:"ecma_version,omitempty"`
	Strict      *bool               `yaml:"strict,omitempty"`
}

func (s Settings) apply(cfg parser.Config) parser.Config {
	if s.SourceType != nil {
		cfg.SourceType = *s.SourceType
	}
	if s.Language != nil {
		cfg.Language = *s.Language
	}
	if s.ECMAVersion != nil {
		cfg.ECMAVersion = *s.ECMAVersion
	}
	if s.Strict != nil {
		cfg.Strict = s.Strict
	}
	return cfg
}

// Config is the content of a .jsast.yaml file.
type Config struct {
	Parser     Settings            `yaml:"parser"`
	Extensions []string            `yaml:"extensions,omitempty"`
	Exclude    []string            `yaml:"exclude,omitempty"`
	Gitignore  *bool               `yaml:"gitignore,omitempty"`
	Overrides  map[string]Settings `yaml:"overrides,omitempty"`
}

// ParseConfig decodes a .jsast.yaml document. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}
	for ext := range cfg.Overrides {
		if !strings.HasPrefix(ext, ".") {
			return Config{}, fmt.Errorf("parse %s: override key %q is not an extension", ConfigFile, ext)
		}
	}
	return cfg, nil
}

// Project is a directory tree of sources.
type Project struct {
	RootDir string
	Config  Config

	ignore *gitignore.GitIgnore
}

// Load reads dir/.jsast.yaml if present and prepares source discovery.
func Load(dir string) (*Project, error) {
	p := &Project{RootDir: dir}
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	switch {
	case err == nil:
		if p.Config, err = ParseConfig(data); err != nil {
			return nil, err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", ConfigFile, err)
	}

	lines := append(append([]string{}, defaultExclude...), p.Config.Exclude...)
	if p.Config.Gitignore == nil || *p.Config.Gitignore {
		if data, err := os.ReadFile(filepath.Join(dir, ".gitignore")); err == nil {
			lines = append(lines, strings.Split(string(data), "\n")...)
		}
	}
	p.ignore = gitignore.CompileIgnoreLines(lines...)
	return p, nil
}

// ParserConfig returns the parser configuration for path: the language
// follows the extension, then project settings and the override for the
// extension apply in that order.
func (p *Project) ParserConfig(path string) (parser.Config, error) {
	cfg := parser.ConfigForPath(path)
	cfg = p.Config.Parser.apply(cfg)
	if o, ok := p.Config.Overrides[strings.ToLower(filepath.Ext(path))]; ok {
		cfg = o.apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return parser.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (p *Project) extensions() []string {
	if len(p.Config.Extensions) > 0 {
		return p.Config.Extensions
	}
	return DefaultExtensions
}

// IsSource reports whether path, relative to the root, is a source file
// that is not excluded.
func (p *Project) IsSource(rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	found := false
	for _, e := range p.extensions() {
		if e == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	return p.ignore == nil || !p.ignore.MatchesPath(filepath.ToSlash(rel))
}

// Files returns the source files below the root, sorted.
func (p *Project) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(p.RootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.RootDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && p.ignore != nil && p.ignore.MatchesPath(filepath.ToSlash(rel)+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if p.IsSource(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.RootDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// Source is the content of one file.
type Source struct {
	Path string
	Text []byte
}

// ReadSources reads paths concurrently and returns them in the order
// given. Reading stops at the first error.
func ReadSources(ctx context.Context, paths []string) ([]Source, error) {
	out := make([]Source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			out[i] = Source{Path: path, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
