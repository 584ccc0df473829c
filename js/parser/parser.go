package parser

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

// WithArena makes the parser allocate into a. The caller owns a and
// decides when to reset it; without this option every parse gets a fresh
// arena.
func WithArena(a *ast.Arena) Option {
	return func(p *Parser) {
		p.arena = a
	}
}

// WithFile names the source in diagnostics and log messages.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser turns source text into a Result. A Parser keeps its grammar
// instances between calls and is not safe for concurrent use.
type Parser struct {
	arena   *ast.Arena
	file    string
	log     commonlog.Logger
	sitters map[Language]*sitter.Parser
}

func New(opts ...Option) *Parser {
	p := &Parser{
		log:     commonlog.GetLogger("jsast.parser"),
		sitters: make(map[Language]*sitter.Parser),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetArena switches the arena used by subsequent parses.
func (p *Parser) SetArena(a *ast.Arena) {
	p.arena = a
}

// SetFile sets the file name reported by subsequent parses.
func (p *Parser) SetFile(path string) {
	p.file = path
}

// Parse parses src with a new Parser.
func Parse(src string, cfg Config, opts ...Option) (*Result, error) {
	return New(opts...).Parse(src, cfg)
}

// ParseBytes is Parse for a byte slice. The bytes are copied.
func ParseBytes(src []byte, cfg Config, opts ...Option) (*Result, error) {
	return New(opts...).Parse(string(src), cfg)
}

// Parse parses src according to cfg.
//
// Malformed source never makes Parse fail: the returned Result carries
// diagnostics and as much of the tree as could be recovered. An error is
// returned only for invalid UTF-8 (an *EncodingError) or an invalid cfg
// (a *ConfigError).
//
// Parse acquires the arena for its duration; parsing into an arena that
// another parse is using panics.
func (p *Parser) Parse(src string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(src) {
		return nil, &EncodingError{File: p.file, Offset: firstInvalid(src)}
	}

	a := p.arena
	if a == nil {
		a = ast.NewArenaSize(len(src) / 4)
	}
	release := a.Acquire()
	defer release()

	res := &Result{
		source:     src,
		file:       p.file,
		sourceType: cfg.SourceType,
		language:   cfg.Language,
		arena:      a,
	}
	p.run(res, cfg)
	sort.SliceStable(res.diagnostics, func(i, j int) bool {
		return diagStart(res.diagnostics[i]) < diagStart(res.diagnostics[j])
	})
	if len(res.diagnostics) > 0 {
		p.log.Debugf("%s: %d diagnostics", p.name(), len(res.diagnostics))
	}
	return res, nil
}

func (p *Parser) run(res *Result, cfg Config) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorf("%s: parser panic: %v", p.name(), r)
			res.program = ast.Node{}
			res.panicked = true
			res.diagnostics = append(res.diagnostics, ast.Diagnostic{
				Message:  fmt.Sprintf("parser panicked: %v", r),
				Severity: ast.SeverityError,
				Code:     "panic",
			})
		}
	}()

	tree, err := p.sitter(cfg.Language).ParseCtx(context.Background(), nil, []byte(res.source))
	if err != nil {
		panic(fmt.Errorf("tree-sitter: %w", err))
	}
	defer tree.Close()
	root := tree.RootNode()
	if root == nil {
		panic("tree-sitter returned no root node")
	}

	scan := prescan(root, res.source)
	res.comments = scan.comments
	res.diagnostics = append(res.diagnostics, scan.diagnostics...)
	if cfg.SourceType == SourceAuto {
		res.sourceType = SourceScript
		if scan.module {
			res.sourceType = SourceModule
		}
	}

	c := newConverter(res.arena, res.source, cfg, res.sourceType)
	res.program = c.program(root)
	res.diagnostics = append(res.diagnostics, c.diagnostics...)
}

func (p *Parser) sitter(lang Language) *sitter.Parser {
	if sp, ok := p.sitters[lang]; ok {
		return sp
	}
	sp := sitter.NewParser()
	switch lang {
	case LangTS:
		sp.SetLanguage(typescript.GetLanguage())
	case LangTSX:
		sp.SetLanguage(tsx.GetLanguage())
	default:
		sp.SetLanguage(javascript.GetLanguage())
	}
	p.sitters[lang] = sp
	return sp
}

func (p *Parser) name() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

func diagStart(d ast.Diagnostic) int {
	if d.Span == nil {
		return -1
	}
	return d.Span.Start
}

func firstInvalid(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}
