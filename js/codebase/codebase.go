// Package codebase keeps the parsed state of every source file in a
// project and answers the position-based queries an editor needs.
package codebase

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/parser"
	"github.com/dhamidi/jsast/js/symbols"
	"github.com/dhamidi/jsast/js/walk"
	"github.com/dhamidi/jsast/project"
)

type Codebase struct {
	mu      sync.RWMutex
	project *project.Project
	files   map[string]*FileInfo
	log     commonlog.Logger
}

// FileInfo is the parsed state of one file. It is replaced, never
// modified, when the file changes.
type FileInfo struct {
	Path    string
	Content []byte
	Result  *parser.Result
	Symbols []*symbols.Symbol
	Lines   *ast.LineIndex
}

// Program returns the root node, which is zero if the parse failed.
func (f *FileInfo) Program() ast.Node {
	prog, _ := f.Result.Program()
	return prog
}

func New(p *project.Project) *Codebase {
	return &Codebase{
		project: p,
		files:   make(map[string]*FileInfo),
		log:     commonlog.GetLogger("jsast.codebase"),
	}
}

func (c *Codebase) RootDir() string {
	return c.project.RootDir
}

func (c *Codebase) Project() *project.Project {
	return c.project
}

// ScanAll parses every source file of the project. Files that fail to
// parse are logged and skipped.
func (c *Codebase) ScanAll(ctx context.Context) error {
	paths, err := c.project.Files()
	if err != nil {
		return err
	}
	srcs, err := project.ReadSources(ctx, paths)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		if err := c.UpdateFile(src.Path, src.Text); err != nil {
			c.log.Warningf("%s: %s", src.Path, err)
		}
	}
	c.log.Infof("scanned %d files in %s", len(srcs), c.project.RootDir)
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

// UpdateFile reparses path from content.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	f, err := c.parse(path, content)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = f
	return nil
}

func (c *Codebase) parse(path string, content []byte) (*FileInfo, error) {
	cfg, err := c.project.ParserConfig(path)
	if err != nil {
		return nil, err
	}
	res, err := parser.ParseBytes(content, cfg, parser.WithFile(path), parser.WithLogger(c.log))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f := &FileInfo{
		Path:    path,
		Content: content,
		Result:  res,
		Lines:   ast.NewLineIndex(res.Source()),
	}
	if prog, ok := res.Program(); ok {
		f.Symbols = symbols.Extract(prog, res.Source(), symbols.WithComments(res.Comments()))
	}
	return f, nil
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the known paths, sorted.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Match is a symbol together with the file declaring it.
type Match struct {
	Path   string
	Symbol *symbols.Symbol
}

// FindSymbols returns the symbols whose name contains query, ignoring
// case, ordered by path and position. An empty query matches everything.
func (c *Codebase) FindSymbols(query string) []Match {
	query = strings.ToLower(query)
	var out []Match
	for _, path := range c.Files() {
		f := c.GetFile(path)
		if f == nil {
			continue
		}
		eachSymbol(f.Symbols, func(s *symbols.Symbol) {
			if strings.Contains(strings.ToLower(s.Name), query) {
				out = append(out, Match{Path: path, Symbol: s})
			}
		})
	}
	return out
}

func eachSymbol(syms []*symbols.Symbol, fn func(*symbols.Symbol)) {
	for _, s := range syms {
		fn(s)
		eachSymbol(s.Children, fn)
	}
}

// SymbolAt returns the innermost symbol whose span contains offset.
func (c *Codebase) SymbolAt(path string, offset int) *symbols.Symbol {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	var found *symbols.Symbol
	syms := f.Symbols
	for len(syms) > 0 {
		var next []*symbols.Symbol
		for _, s := range syms {
			if s.Span.ContainsOffset(offset) {
				found = s
				next = s.Children
				break
			}
		}
		syms = next
	}
	return found
}

// NodeAt returns the innermost node containing offset and its ancestors,
// innermost last.
func (c *Codebase) NodeAt(path string, offset int) []ast.Node {
	f := c.GetFile(path)
	if f == nil || f.Program().IsZero() {
		return nil
	}
	return walk.Enclosing(f.Program(), offset)
}

// Definition resolves the identifier at offset to a declaration, looking
// in the same file first and then at exported symbols of other files.
func (c *Codebase) Definition(path string, offset int) (Match, bool) {
	name := c.identifierAt(path, offset)
	if name == "" {
		return Match{}, false
	}

	if f := c.GetFile(path); f != nil {
		if s := lookup(f.Symbols, name, false); s != nil {
			return Match{Path: path, Symbol: s}, true
		}
	}
	for _, other := range c.Files() {
		if other == path {
			continue
		}
		if f := c.GetFile(other); f != nil {
			if s := lookup(f.Symbols, name, true); s != nil {
				return Match{Path: other, Symbol: s}, true
			}
		}
	}
	return Match{}, false
}

// identifierAt returns the name of the identifier containing offset. A
// cursor right after an identifier, as editors place it, also counts.
func (c *Codebase) identifierAt(path string, offset int) string {
	for _, off := range []int{offset, offset - 1} {
		chain := c.NodeAt(path, off)
		if len(chain) == 0 {
			continue
		}
		if name := identifierName(chain[len(chain)-1]); name != "" {
			return name
		}
	}
	return ""
}

func lookup(syms []*symbols.Symbol, name string, exportedOnly bool) *symbols.Symbol {
	for _, s := range syms {
		if s.Name == name && (!exportedOnly || s.Exported) {
			return s
		}
	}
	if exportedOnly {
		return nil
	}
	var found *symbols.Symbol
	eachSymbol(syms, func(s *symbols.Symbol) {
		if found == nil && s.Name == name {
			found = s
		}
	})
	return found
}

func identifierName(n ast.Node) string {
	switch n.Kind() {
	case ast.KindIdentifier, ast.KindJSXIdentifier:
		return n.Name()
	case ast.KindPrivateIdentifier:
		return "#" + n.Name()
	}
	return ""
}

type CompletionItem struct {
	Label  string
	Kind   symbols.Kind
	Detail string
	Doc    string
}

// CompletionsAtPoint returns the symbols whose name starts with the
// identifier prefix ending at offset: every symbol of the file plus the
// exported top-level symbols of other files.
func (c *Codebase) CompletionsAtPoint(path string, offset int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	prefix := identifierPrefix(f.Content, offset)

	seen := make(map[string]bool)
	var items []CompletionItem
	add := func(s *symbols.Symbol) {
		if seen[s.Name] || !strings.HasPrefix(s.Name, prefix) || s.Name == prefix {
			return
		}
		seen[s.Name] = true
		items = append(items, CompletionItem{
			Label:  s.Name,
			Kind:   s.Kind,
			Detail: strings.TrimSpace(s.Detail + " " + s.Kind.String()),
			Doc:    s.Summary(),
		})
	}
	eachSymbol(f.Symbols, add)
	for _, other := range c.Files() {
		if other == path {
			continue
		}
		if of := c.GetFile(other); of != nil {
			for _, s := range of.Symbols {
				if s.Exported {
					add(s)
				}
			}
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

func identifierPrefix(content []byte, offset int) string {
	offset = min(max(offset, 0), len(content))
	start := offset
	for start > 0 && isIdentByte(content[start-1]) {
		start--
	}
	return string(content[start:offset])
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
