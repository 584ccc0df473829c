// Package symbols extracts an outline of the declarations in a program.
package symbols

import (
	"github.com/dhamidi/jsast/js/ast"
	"github.com/dhamidi/jsast/js/comments"
	"github.com/dhamidi/jsast/js/jsdoc"
	"github.com/dhamidi/jsast/js/walk"
)

type Kind uint8

const (
	KindFunction Kind = iota
	KindClass
	KindMethod
	KindConstructor
	KindProperty
	KindVariable
	KindConstant
	KindInterface
	KindTypeAlias
	KindEnum
	KindEnumMember
	KindModule
)

var kindNames = map[Kind]string{
	KindFunction:    "function",
	KindClass:       "class",
	KindMethod:      "method",
	KindConstructor: "constructor",
	KindProperty:    "property",
	KindVariable:    "variable",
	KindConstant:    "constant",
	KindInterface:   "interface",
	KindTypeAlias:   "type",
	KindEnum:        "enum",
	KindEnumMember:  "enum-member",
	KindModule:      "module",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Symbol is one declaration in the outline.
type Symbol struct {
	Kind Kind
	Name string
	// Detail qualifies Kind: the declaration keyword of a variable, the
	// accessor kind of a method, "async" for async functions.
	Detail string
	Span   ast.Span
	// NameSpan covers the declared name, or equals Span when there is none.
	NameSpan  ast.Span
	StartLine int
	EndLine   int
	Depth     int
	Exported  bool
	Doc       *jsdoc.DocComment
	Children  []*Symbol
}

// Summary returns the first sentence of the symbol's documentation.
func (s *Symbol) Summary() string {
	return jsdoc.Summary(s.Doc)
}

// Option configures Extract.
type Option func(*extractor)

// WithComments makes Extract look up a JSDoc comment for each symbol.
// comments must be in source order.
func WithComments(c []ast.Comment) Option {
	return func(e *extractor) {
		e.comments = c
	}
}

// WithLocals includes declarations inside function bodies. By default the
// outline does not descend into functions.
func WithLocals() Option {
	return func(e *extractor) {
		e.locals = true
	}
}

type extractor struct {
	src      string
	comments []ast.Comment
	locals   bool

	roots []*Symbol
	stack []*Symbol
	// owners records which visited nodes pushed a symbol.
	owners map[ast.Node]bool
}

// Extract returns the declarations below root in source order, nested by
// containment.
func Extract(root ast.Node, src string, opts ...Option) []*Symbol {
	e := &extractor{src: src, owners: make(map[ast.Node]bool)}
	for _, opt := range opts {
		opt(e)
	}
	if root.IsZero() {
		return nil
	}
	walk.Visit(root, &walk.Hooks{
		OnEnter: e.enter,
		OnLeave: e.leave,
	})
	return e.roots
}

func (e *extractor) enter(c *walk.Cursor) walk.Action {
	n := c.Node()
	if sym := e.symbolFor(c); sym != nil {
		e.push(n, sym)
	}
	if !e.locals && isFunction(n) {
		return walk.Skip
	}
	return walk.Continue
}

func (e *extractor) leave(c *walk.Cursor) walk.Action {
	if e.owners[c.Node()] {
		delete(e.owners, c.Node())
		e.stack = e.stack[:len(e.stack)-1]
	}
	return walk.Continue
}

func (e *extractor) push(n ast.Node, sym *Symbol) {
	sym.StartLine, sym.EndLine = sym.Span.LineRange(e.src)
	sym.Depth = len(e.stack)
	if len(e.stack) == 0 {
		e.roots = append(e.roots, sym)
	} else {
		parent := e.stack[len(e.stack)-1]
		parent.Children = append(parent.Children, sym)
	}
	e.stack = append(e.stack, sym)
	e.owners[n] = true
}

// symbolFor returns the symbol declared by the cursor's node, or nil.
func (e *extractor) symbolFor(c *walk.Cursor) *Symbol {
	n := c.Node()
	var sym *Symbol
	switch n.Kind() {
	case ast.KindFunctionDeclaration, ast.KindTSDeclareFunction:
		sym = e.named(n, KindFunction, n.Child(ast.FieldID))
		if n.Has(ast.FlagAsync) {
			sym.Detail = "async"
		}
	case ast.KindClassDeclaration:
		sym = e.named(n, KindClass, n.Child(ast.FieldID))
	case ast.KindClassExpression:
		id := n.Child(ast.FieldID)
		if c.Field() == ast.FieldInit || id.IsZero() && c.Parent().Kind() != ast.KindExportDefaultDeclaration {
			return nil
		}
		sym = e.named(n, KindClass, id)
	case ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		if c.Parent().Kind() != ast.KindExportDefaultDeclaration {
			return nil
		}
		sym = e.named(n, KindFunction, n.Child(ast.FieldID))
	case ast.KindMethodDefinition, ast.KindTSMethodSignature:
		kind := KindMethod
		if n.Name() == "constructor" {
			kind = KindConstructor
		}
		sym = e.named(n, kind, n.Child(ast.FieldKey))
		if n.Name() != "method" && n.Name() != "constructor" {
			sym.Detail = n.Name()
		}
	case ast.KindPropertyDefinition, ast.KindTSPropertySignature:
		sym = e.named(n, KindProperty, n.Child(ast.FieldKey))
	case ast.KindProperty:
		if c.Depth() == 0 || c.Parent().Kind() != ast.KindObjectExpression || !e.inDeclaration(c) {
			return nil
		}
		kind := KindProperty
		if n.Has(ast.FlagMethod) || isFunction(n.Child(ast.FieldValue)) {
			kind = KindMethod
		}
		sym = e.named(n, kind, n.Child(ast.FieldKey))
	case ast.KindVariableDeclarator:
		id := n.Child(ast.FieldID)
		if id.Kind() != ast.KindIdentifier {
			return nil
		}
		decl := c.Parent()
		kind := KindVariable
		switch {
		case isFunction(n.Child(ast.FieldInit)):
			kind = KindFunction
		case n.Child(ast.FieldInit).Kind() == ast.KindClassExpression:
			kind = KindClass
		case decl.Name() == "const":
			kind = KindConstant
		}
		sym = e.named(n, kind, id)
		sym.Detail = decl.Name()
		sym.Span = decl.Span()
		if len(decl.List(ast.FieldDeclarations)) > 1 {
			sym.Span = n.Span()
		}
	case ast.KindTSInterfaceDeclaration:
		sym = e.named(n, KindInterface, n.Child(ast.FieldID))
	case ast.KindTSTypeAliasDeclaration:
		sym = e.named(n, KindTypeAlias, n.Child(ast.FieldID))
	case ast.KindTSEnumDeclaration:
		sym = e.named(n, KindEnum, n.Child(ast.FieldID))
		if n.Has(ast.FlagConst) {
			sym.Detail = "const"
		}
	case ast.KindTSEnumMember:
		sym = e.named(n, KindEnumMember, n.Child(ast.FieldID))
	case ast.KindTSModuleDeclaration:
		sym = e.named(n, KindModule, n.Child(ast.FieldID))
		sym.Detail = n.Name()
		if n.Has(ast.FlagGlobal) {
			sym.Name = "global"
		}
	default:
		return nil
	}

	doc, exported := declaration(c)
	sym.Exported = exported
	if e.comments != nil {
		if dc, ok := comments.DocComment(doc, e.comments, e.src); ok {
			sym.Doc = jsdoc.ParseComment(dc)
		}
	}
	return sym
}

// declaration returns the node a symbol's documentation precedes: the
// enclosing export, the variable declaration of a lone declarator, or the
// node itself.
func declaration(c *walk.Cursor) (doc ast.Node, exported bool) {
	path := c.Path()
	i := len(path) - 1
	doc = path[i]
	if doc.Kind() == ast.KindVariableDeclarator && i > 0 {
		i--
		if len(path[i].List(ast.FieldDeclarations)) == 1 {
			doc = path[i]
		}
	}
	if i > 0 && isExport(path[i-1]) {
		exported = true
		if doc == path[i] {
			doc = path[i-1]
		}
	}
	return doc, exported
}

// inDeclaration reports whether an object literal member belongs to an
// object that is itself an outline entry, such as const config = {...}.
func (e *extractor) inDeclaration(c *walk.Cursor) bool {
	path := c.Path()
	for i := len(path) - 2; i >= 0; i-- {
		switch path[i].Kind() {
		case ast.KindObjectExpression:
			continue
		case ast.KindProperty:
			if e.owners[path[i]] {
				return true
			}
			continue
		case ast.KindVariableDeclarator:
			return e.owners[path[i]]
		}
		return false
	}
	return false
}

func (e *extractor) named(n ast.Node, kind Kind, id ast.Node) *Symbol {
	sym := &Symbol{Kind: kind, Span: n.Span(), NameSpan: n.Span()}
	if !id.IsZero() {
		sym.Name = e.keyName(id)
		sym.NameSpan = id.Span()
	}
	if sym.Name == "" && n.Kind() != ast.KindTSModuleDeclaration {
		sym.Name = "default"
	}
	return sym
}

// keyName renders an identifier or property key.
func (e *extractor) keyName(id ast.Node) string {
	switch id.Kind() {
	case ast.KindIdentifier:
		return id.Name()
	case ast.KindPrivateIdentifier:
		return "#" + id.Name()
	case ast.KindStringLiteral:
		return id.Value()
	case ast.KindNumericLiteral, ast.KindBigIntLiteral:
		return id.Name()
	}
	return id.Text(e.src)
}

func isFunction(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindFunctionDeclaration, ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		return true
	}
	return false
}

func isExport(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindExportNamedDeclaration, ast.KindExportDefaultDeclaration:
		return true
	}
	return false
}
