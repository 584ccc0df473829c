package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/jsdoc"
	"github.com/dhamidi/jsast/js/symbols"
	"github.com/dhamidi/jsast/project"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "jsast"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	watch    bool
	log      commonlog.Logger

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
	cancel context.CancelFunc
}

// NewLSPServer creates a server speaking LSP 3.16. With watch set, files
// changed on disk but not open in the editor are reparsed as well.
func NewLSPServer(version string, watch bool) *LSPServer {
	ls := &LSPServer{
		version: version,
		watch:   watch,
		log:     commonlog.GetLogger("jsast.lsp"),
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentCompletion:     ls.textDocumentCompletion,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDefinition:     ls.textDocumentDefinition,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		WorkspaceSymbol:            ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	p, err := project.Load(rootDir)
	if err != nil {
		ls.log.Errorf("%s; using defaults", err)
		p = &project.Project{RootDir: rootDir}
	}
	ls.codebase = New(p)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if !ls.watch {
		if err := ls.codebase.ScanAll(context.Background()); err != nil {
			ls.log.Errorf("scan: %s", err)
		}
		return nil
	}

	w := NewFileWatcher(ls.codebase)
	w.OnUpdate = func(f *FileInfo) {
		if !ls.isOpen(f.Path) {
			ls.publish(f)
		}
	}
	w.OnRemove = func(path string) {
		ls.clear(path)
	}
	runCtx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	go w.Run(runCtx)
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.cancel != nil {
		ls.cancel()
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) update(path string, content []byte) {
	if err := ls.codebase.UpdateFile(path, content); err != nil {
		ls.log.Warningf("%s", err)
		return
	}
	ls.publish(ls.codebase.GetFile(path))
}

func (ls *LSPServer) publish(f *FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil || f == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: Diagnostics(f),
	})
}

func (ls *LSPServer) clear(path string) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	ls.open[path] = true
	ls.notify = ctx.Notify
	ls.mu.Unlock()
	ls.update(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()
	if ls.codebase.Project().IsSource(ls.relative(path)) {
		if err := ls.codebase.ScanFile(path); err == nil {
			ls.publish(ls.codebase.GetFile(path))
			return nil
		}
	}
	ls.codebase.RemoveFile(path)
	ls.clear(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(path, []byte(*params.Text))
		return nil
	}
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.log.Warningf("%s", err)
		return nil
	}
	ls.publish(ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) relative(path string) string {
	rel, err := filepath.Rel(ls.codebase.RootDir(), path)
	if err != nil {
		return path
	}
	return rel
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	offset := f.Lines.Offset(int(params.Position.Line), int(params.Position.Character))

	completions := ls.codebase.CompletionsAtPoint(path, offset)
	if len(completions) == 0 {
		return nil, nil
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		kind := completionKind(c.Kind)
		detail := c.Detail
		item := protocol.CompletionItem{
			Label:  c.Label,
			Kind:   &kind,
			Detail: &detail,
		}
		if c.Doc != "" {
			item.Documentation = c.Doc
		}
		items = append(items, item)
	}
	return items, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	offset := f.Lines.Offset(int(params.Position.Line), int(params.Position.Character))
	chain := ls.codebase.NodeAt(path, offset)
	if len(chain) == 0 {
		return nil, nil
	}
	m, ok := ls.codebase.Definition(path, offset)
	if !ok {
		return nil, nil
	}
	r := spanRange(f.Lines, chain[len(chain)-1].Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: HoverText(m.Symbol),
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	path, f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	offset := f.Lines.Offset(int(params.Position.Line), int(params.Position.Character))
	m, ok := ls.codebase.Definition(path, offset)
	if !ok {
		return nil, nil
	}
	target := ls.codebase.GetFile(m.Path)
	if target == nil {
		return nil, nil
	}
	return protocol.Location{
		URI:   pathToURI(m.Path),
		Range: spanRange(target.Lines, m.Symbol.NameSpan),
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	_, f := ls.file(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	return DocumentSymbols(f), nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	var out []protocol.SymbolInformation
	for _, m := range ls.codebase.FindSymbols(params.Query) {
		f := ls.codebase.GetFile(m.Path)
		if f == nil {
			continue
		}
		out = append(out, protocol.SymbolInformation{
			Name: m.Symbol.Name,
			Kind: symbolKind(m.Symbol.Kind),
			Location: protocol.Location{
				URI:   pathToURI(m.Path),
				Range: spanRange(f.Lines, m.Symbol.NameSpan),
			},
		})
	}
	return out, nil
}

func (ls *LSPServer) file(uri protocol.DocumentUri) (string, *FileInfo) {
	path, err := uriToPath(uri)
	if err != nil {
		return "", nil
	}
	return path, ls.codebase.GetFile(path)
}

// Diagnostics converts the parse diagnostics of f to LSP form.
func Diagnostics(f *FileInfo) []protocol.Diagnostic {
	ds := f.Result.Diagnostics()
	out := make([]protocol.Diagnostic, 0, len(ds))
	source := lsName
	for _, d := range ds {
		sev := protocol.DiagnosticSeverityError
		if d.Severity == ast.SeverityWarning {
			sev = protocol.DiagnosticSeverityWarning
		}
		diag := protocol.Diagnostic{
			Severity: &sev,
			Source:   &source,
			Message:  d.Message,
		}
		if d.Span != nil {
			diag.Range = spanRange(f.Lines, *d.Span)
		}
		if d.Code != "" {
			diag.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		out = append(out, diag)
	}
	return out
}

// DocumentSymbols converts the outline of f to LSP form.
func DocumentSymbols(f *FileInfo) []protocol.DocumentSymbol {
	return documentSymbols(f.Lines, f.Symbols)
}

func documentSymbols(lines *ast.LineIndex, syms []*symbols.Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, s := range syms {
		ds := protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           symbolKind(s.Kind),
			Range:          spanRange(lines, s.Span),
			SelectionRange: spanRange(lines, s.NameSpan),
			Children:       documentSymbols(lines, s.Children),
		}
		if s.Detail != "" {
			detail := s.Detail
			ds.Detail = &detail
		}
		if s.Doc != nil {
			if _, ok := jsdoc.Find[jsdoc.Deprecated](s.Doc); ok {
				ds.Tags = []protocol.SymbolTag{protocol.SymbolTagDeprecated}
			}
		}
		out = append(out, ds)
	}
	return out
}

// HoverText renders a symbol as Markdown: a signature line followed by
// its documentation.
func HoverText(s *symbols.Symbol) string {
	var b strings.Builder
	b.WriteString("```ts\n")
	if s.Detail != "" {
		b.WriteString(s.Detail)
		b.WriteByte(' ')
	}
	b.WriteString(s.Kind.String())
	b.WriteByte(' ')
	b.WriteString(s.Name)
	b.WriteString("\n```")
	if doc := jsdoc.Format(s.Doc); doc != "" {
		b.WriteString("\n\n")
		b.WriteString(doc)
	}
	return b.String()
}

var symbolKinds = map[symbols.Kind]protocol.SymbolKind{
	symbols.KindFunction:    protocol.SymbolKindFunction,
	symbols.KindClass:       protocol.SymbolKindClass,
	symbols.KindMethod:      protocol.SymbolKindMethod,
	symbols.KindConstructor: protocol.SymbolKindConstructor,
	symbols.KindProperty:    protocol.SymbolKindProperty,
	symbols.KindVariable:    protocol.SymbolKindVariable,
	symbols.KindConstant:    protocol.SymbolKindConstant,
	symbols.KindInterface:   protocol.SymbolKindInterface,
	symbols.KindTypeAlias:   protocol.SymbolKindTypeParameter,
	symbols.KindEnum:        protocol.SymbolKindEnum,
	symbols.KindEnumMember:  protocol.SymbolKindEnumMember,
	symbols.KindModule:      protocol.SymbolKindNamespace,
}

func symbolKind(k symbols.Kind) protocol.SymbolKind {
	if sk, ok := symbolKinds[k]; ok {
		return sk
	}
	return protocol.SymbolKindVariable
}

func completionKind(k symbols.Kind) protocol.CompletionItemKind {
	switch k {
	case symbols.KindFunction:
		return protocol.CompletionItemKindFunction
	case symbols.KindClass:
		return protocol.CompletionItemKindClass
	case symbols.KindMethod:
		return protocol.CompletionItemKindMethod
	case symbols.KindConstructor:
		return protocol.CompletionItemKindConstructor
	case symbols.KindProperty:
		return protocol.CompletionItemKindProperty
	case symbols.KindConstant:
		return protocol.CompletionItemKindConstant
	case symbols.KindInterface, symbols.KindTypeAlias:
		return protocol.CompletionItemKindInterface
	case symbols.KindEnum:
		return protocol.CompletionItemKindEnum
	case symbols.KindEnumMember:
		return protocol.CompletionItemKindEnumMember
	case symbols.KindModule:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindVariable
	}
}

func spanRange(lines *ast.LineIndex, s ast.Span) protocol.Range {
	return protocol.Range{
		Start: lspPosition(lines, s.Start),
		End:   lspPosition(lines, s.End),
	}
}

func lspPosition(lines *ast.LineIndex, offset int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(lines.Line(offset) - 1),
		Character: protocol.UInteger(lines.UTF16Column(offset)),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
