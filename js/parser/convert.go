package parser

import (
	"fmt"

	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

type convertFunc func(c *converter, n *sitter.Node) ast.Node

// converters maps tree-sitter node types to their conversion. Each
// convert_*.go file registers its share in init.
var converters = map[string]convertFunc{}

func register(m map[string]convertFunc) {
	for typ, fn := range m {
		converters[typ] = fn
	}
}

// converter builds arena nodes from a tree-sitter tree. Children are
// converted before their parent so that the Builder can lay out each
// parent's edges contiguously.
type converter struct {
	b           *ast.Builder
	src         string
	lang        Language
	sourceType  SourceType
	version     ECMAVersion
	strict      bool
	jsxDepth    int
	diagnostics []ast.Diagnostic
}

func newConverter(a *ast.Arena, src string, cfg Config, st SourceType) *converter {
	strict := st == SourceModule
	if cfg.Strict != nil {
		strict = *cfg.Strict
	}
	return &converter{
		b:          ast.NewBuilder(a),
		src:        src,
		lang:       cfg.Language,
		sourceType: st,
		version:    cfg.ECMAVersion,
		strict:     strict,
	}
}

func (c *converter) program(root *sitter.Node) ast.Node {
	m := c.b.Mark()
	var stmts []*sitter.Node
	for _, ch := range namedChildren(root) {
		if ch.Type() == "hashbang_line" {
			c.need(ch, "Hashbang syntax", ES2023)
			c.b.Push(ast.FieldHashbang, c.leaf(ch, ast.KindHashbang, c.text(ch)))
			continue
		}
		stmts = append(stmts, ch)
	}
	c.statements(stmts, ast.FieldBody)
	return c.b.Finish(m, ast.KindProgram, ast.Span{Start: 0, End: len(c.src)}, ast.Attrs{Name: c.sourceType.String()})
}

// statements converts a statement list, recognizing a leading directive
// prologue. A "use strict" directive makes the rest of the list strict;
// the caller restores the previous mode when the scope ends.
func (c *converter) statements(stmts []*sitter.Node, f ast.Field) {
	prologue := true
	for _, s := range stmts {
		if prologue {
			if raw, ok := c.directive(s); ok {
				if raw == "use strict" {
					c.strict = true
				}
				m := c.b.Mark()
				c.b.Push(ast.FieldExpression, c.node(s.NamedChild(0)))
				c.b.Push(f, c.b.Finish(m, ast.KindExpressionStatement, spanOf(s), ast.Attrs{Flags: ast.FlagDirective, Name: raw}))
				continue
			}
			prologue = false
		}
		c.b.Push(f, c.node(s))
	}
}

func (c *converter) directive(n *sitter.Node) (string, bool) {
	if n.Type() != "expression_statement" || n.NamedChildCount() != 1 {
		return "", false
	}
	str := n.NamedChild(0)
	if str == nil || str.Type() != "string" {
		return "", false
	}
	raw := c.text(str)
	if len(raw) < 2 {
		return "", false
	}
	return raw[1 : len(raw)-1], true
}

// node converts any tree-sitter node. Comments yield the absent node.
func (c *converter) node(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	if n.IsMissing() {
		if !n.IsNamed() {
			return ast.Node{}
		}
		return c.leaf(n, ast.KindError, "missing "+n.Type())
	}
	typ := n.Type()
	if skipped[typ] {
		return ast.Node{}
	}
	if typ == "ERROR" {
		return c.errorNode(n)
	}
	if fn, ok := converters[typ]; ok {
		return fn(c, n)
	}
	return c.generic(n, ast.KindUnknown, typ)
}

// skipped lists named nodes that carry no tree content of their own.
var skipped = map[string]bool{
	"comment":        true,
	"html_comment":   true,
	"optional_chain": true,
}

// errorNode keeps whatever could be recognized inside a malformed region.
func (c *converter) errorNode(n *sitter.Node) ast.Node {
	return c.generic(n, ast.KindError, firstToken(n, c.src))
}

func (c *converter) generic(n *sitter.Node, k ast.Kind, name string) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldNone, c.node(ch))
	}
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Name: name})
}

func (c *converter) leaf(n *sitter.Node, k ast.Kind, name string) ast.Node {
	return c.b.Leaf(k, spanOf(n), ast.Attrs{Name: name})
}

// wrap builds a node of kind k with the single child n under f.
func (c *converter) wrap(n *sitter.Node, k ast.Kind, f ast.Field, child *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(f, c.node(child))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return nodeText(n, c.src)
}

func (c *converter) report(sp ast.Span, code, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, ast.Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Span:     &sp,
		Severity: ast.SeverityError,
		Code:     code,
	})
}

func spanOf(n *sitter.Node) ast.Span {
	return ast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func nodeText(n *sitter.Node, src string) string {
	return spanOf(n).Text(src)
}

// field returns the child stored under name, or nil.
func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// namedChildren returns the named children of n, without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		ch := n.NamedChild(i)
		if ch == nil || skipped[ch.Type()] {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// hasToken reports whether n has an anonymous child token tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil && !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}
	return false
}

// tokenSpan returns the span of the first anonymous child tok.
func tokenSpan(n *sitter.Node, tok string) (ast.Span, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil && !ch.IsNamed() && ch.Type() == tok {
			return spanOf(ch), true
		}
	}
	return ast.Span{}, false
}

func same(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// unparen returns the expression inside a parenthesized_expression.
func unparen(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "parenthesized_expression" {
		if kids := namedChildren(n); len(kids) == 1 {
			return kids[0]
		}
	}
	return n
}
