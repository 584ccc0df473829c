package parser

import (
	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	register(map[string]convertFunc{
		"jsx_element":              (*converter).jsxElement,
		"jsx_self_closing_element": (*converter).jsxElement,
		"jsx_expression":           (*converter).jsxChildExpression,
		"jsx_text":                 (*converter).jsxText,
		"html_character_reference": (*converter).jsxText,
		"jsx_namespace_name":       (*converter).jsxName,
	})
}

func (c *converter) jsxElement(n *sitter.Node) ast.Node {
	c.checkJSX(n)
	c.jsxDepth++
	defer func() { c.jsxDepth-- }()

	if n.Type() == "jsx_self_closing_element" {
		m := c.b.Mark()
		c.b.Push(ast.FieldOpeningElement, c.jsxOpening(n, ast.FlagSelfClosing))
		return c.b.Finish(m, ast.KindJSXElement, spanOf(n), ast.Attrs{})
	}

	open := field(n, "open_tag")
	closing := field(n, "close_tag")
	fragment := open != nil && field(open, "name") == nil

	m := c.b.Mark()
	if fragment {
		c.b.Push(ast.FieldOpeningElement, c.leaf(open, ast.KindJSXOpeningFragment, ""))
	} else if open != nil {
		c.b.Push(ast.FieldOpeningElement, c.jsxOpening(open, 0))
	}
	c.jsxChildren(n, open, closing)
	if closing != nil {
		if fragment {
			c.b.Push(ast.FieldClosingElement, c.leaf(closing, ast.KindJSXClosingFragment, ""))
		} else {
			cm := c.b.Mark()
			c.b.Push(ast.FieldName, c.jsxName(field(closing, "name")))
			c.b.Push(ast.FieldClosingElement, c.b.Finish(cm, ast.KindJSXClosingElement, spanOf(closing), ast.Attrs{}))
		}
	}
	if fragment {
		return c.b.Finish(m, ast.KindJSXFragment, spanOf(n), ast.Attrs{})
	}
	return c.b.Finish(m, ast.KindJSXElement, spanOf(n), ast.Attrs{})
}

func (c *converter) jsxOpening(n *sitter.Node, flags ast.Flags) ast.Node {
	name := field(n, "name")
	targs := field(n, "type_arguments")
	m := c.b.Mark()
	c.b.Push(ast.FieldName, c.jsxName(name))
	c.b.Push(ast.FieldTypeArguments, c.node(targs))
	for _, ch := range namedChildren(n) {
		if same(ch, name) || same(ch, targs) {
			continue
		}
		switch ch.Type() {
		case "jsx_attribute":
			c.b.Push(ast.FieldAttributes, c.jsxAttribute(ch))
		case "jsx_expression":
			c.b.Push(ast.FieldAttributes, c.jsxSpreadAttribute(ch))
		default:
			c.b.Push(ast.FieldAttributes, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindJSXOpeningElement, spanOf(n), ast.Attrs{Flags: flags})
}

// jsxChildren pushes the children between the tags of n. Adjacent text and
// character references are merged into one JSXText node.
func (c *converter) jsxChildren(n, open, closing *sitter.Node) {
	start, end := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		sp := ast.Span{Start: start, End: end}
		raw := sp.Text(c.src)
		c.b.Push(ast.FieldChildren, c.b.Leaf(ast.KindJSXText, sp, ast.Attrs{Name: raw, Value: cookJSX(raw)}))
		start, end = -1, -1
	}
	for _, ch := range namedChildren(n) {
		if same(ch, open) || same(ch, closing) {
			continue
		}
		switch ch.Type() {
		case "jsx_text", "html_character_reference":
			if start < 0 {
				start = int(ch.StartByte())
			}
			end = int(ch.EndByte())
		default:
			flush()
			c.b.Push(ast.FieldChildren, c.node(ch))
		}
	}
	flush()
}

func (c *converter) jsxText(n *sitter.Node) ast.Node {
	raw := c.text(n)
	return c.b.Leaf(ast.KindJSXText, spanOf(n), ast.Attrs{Name: raw, Value: cookJSX(raw)})
}

// jsxName converts an element or attribute name. Plain identifiers become
// JSXIdentifier, dotted names JSXMemberExpression and colon names
// JSXNamespacedName.
func (c *converter) jsxName(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	switch n.Type() {
	case "identifier", "property_identifier", "type_identifier":
		return c.leaf(n, ast.KindJSXIdentifier, c.text(n))
	case "this":
		return c.leaf(n, ast.KindThisExpression, "")
	case "member_expression", "nested_identifier":
		kids := namedChildren(n)
		object, property := field(n, "object"), field(n, "property")
		if object == nil && len(kids) == 2 {
			object, property = kids[0], kids[1]
		}
		m := c.b.Mark()
		c.b.Push(ast.FieldObject, c.jsxName(object))
		c.b.Push(ast.FieldProperty, c.jsxName(property))
		return c.b.Finish(m, ast.KindJSXMemberExpression, spanOf(n), ast.Attrs{})
	case "jsx_namespace_name":
		kids := namedChildren(n)
		m := c.b.Mark()
		if len(kids) == 2 {
			c.b.Push(ast.FieldNamespace, c.jsxName(kids[0]))
			c.b.Push(ast.FieldName, c.jsxName(kids[1]))
		}
		return c.b.Finish(m, ast.KindJSXNamespacedName, spanOf(n), ast.Attrs{})
	}
	return c.node(n)
}

func (c *converter) jsxAttribute(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	m := c.b.Mark()
	if len(kids) > 0 {
		c.b.Push(ast.FieldName, c.jsxName(kids[0]))
	}
	if len(kids) > 1 {
		v := kids[1]
		switch v.Type() {
		case "string":
			c.b.Push(ast.FieldValue, c.jsxString(v))
		case "jsx_expression":
			c.b.Push(ast.FieldValue, c.jsxContainer(v))
		default:
			c.b.Push(ast.FieldValue, c.node(v))
		}
	}
	return c.b.Finish(m, ast.KindJSXAttribute, spanOf(n), ast.Attrs{})
}

// jsxString converts an attribute string. Backslashes are literal in JSX.
func (c *converter) jsxString(n *sitter.Node) ast.Node {
	raw := c.text(n)
	inner := ""
	if len(raw) >= 2 {
		inner = raw[1 : len(raw)-1]
	}
	return c.b.Leaf(ast.KindStringLiteral, spanOf(n), ast.Attrs{Name: raw, Value: cookJSX(inner)})
}

func (c *converter) jsxSpreadAttribute(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	if len(kids) == 1 && kids[0].Type() == "spread_element" {
		m := c.b.Mark()
		c.b.Push(ast.FieldArgument, c.node(firstNamed(kids[0])))
		return c.b.Finish(m, ast.KindJSXSpreadAttribute, spanOf(n), ast.Attrs{})
	}
	return c.jsxContainer(n)
}

func (c *converter) jsxChildExpression(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	if len(kids) == 1 && kids[0].Type() == "spread_element" {
		m := c.b.Mark()
		c.b.Push(ast.FieldExpression, c.node(firstNamed(kids[0])))
		return c.b.Finish(m, ast.KindJSXSpreadChild, spanOf(n), ast.Attrs{})
	}
	return c.jsxContainer(n)
}

// jsxContainer converts {expr}. An empty container, which may still hold
// comments, gets a JSXEmptyExpression spanning its inside.
func (c *converter) jsxContainer(n *sitter.Node) ast.Node {
	sp := spanOf(n)
	m := c.b.Mark()
	kids := namedChildren(n)
	if len(kids) == 0 {
		inner := ast.Span{Start: sp.Start + 1, End: sp.End - 1}
		if inner.End < inner.Start {
			inner.End = inner.Start
		}
		c.b.Push(ast.FieldExpression, c.b.Leaf(ast.KindJSXEmptyExpression, inner, ast.Attrs{}))
	}
	for _, k := range kids {
		c.b.Push(ast.FieldExpression, c.node(k))
	}
	return c.b.Finish(m, ast.KindJSXExpressionContainer, sp, ast.Attrs{})
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := namedChildren(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}
