package parser

import (
	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	register(map[string]convertFunc{
		"function_declaration":           (*converter).function,
		"generator_function_declaration": (*converter).function,
		"function_expression":            (*converter).function,
		"function":                       (*converter).function,
		"generator_function":             (*converter).function,
		"arrow_function":                 (*converter).arrow,
		"class_declaration":              (*converter).class,
		"abstract_class_declaration":     (*converter).class,
		"class":                          (*converter).class,
		"class_body":                     (*converter).classBody,
		"method_definition": func(c *converter, n *sitter.Node) ast.Node {
			return c.method(n, nil, true)
		},
		"field_definition": func(c *converter, n *sitter.Node) ast.Node {
			return c.fieldDefinition(n, nil)
		},
		"public_field_definition": func(c *converter, n *sitter.Node) ast.Node {
			return c.fieldDefinition(n, nil)
		},
		"class_static_block": (*converter).staticBlock,
		"formal_parameters": func(c *converter, n *sitter.Node) ast.Node {
			return c.generic(n, ast.KindUnknown, n.Type())
		},
		"decorator": func(c *converter, n *sitter.Node) ast.Node {
			return c.wrapFirst(n, ast.KindDecorator, ast.FieldExpression)
		},
	})
}

func (c *converter) functionFlags(n *sitter.Node) ast.Flags {
	var flags ast.Flags
	if hasToken(n, "async") {
		flags |= ast.FlagAsync
		c.need(n, "Async function syntax", ES2017)
	}
	if hasToken(n, "*") {
		flags |= ast.FlagGenerator
		c.need(n, "Generator syntax", ES2015)
	}
	return flags
}

func (c *converter) function(n *sitter.Node) ast.Node {
	k := ast.KindFunctionExpression
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		k = ast.KindFunctionDeclaration
	}
	flags := c.functionFlags(n)
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.ident(field(n, "name")))
	c.signature(n)
	c.b.Push(ast.FieldBody, c.functionBody(field(n, "body")))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags})
}

// signature pushes type parameters, parameters and return type.
func (c *converter) signature(n *sitter.Node) {
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	c.params(field(n, "parameters"))
	c.b.Push(ast.FieldReturnType, c.node(field(n, "return_type")))
}

func (c *converter) params(n *sitter.Node) {
	for _, p := range namedChildren(n) {
		c.b.Push(ast.FieldParams, c.param(p))
	}
}

// param wraps one formal parameter. TypeScript parameters carry their
// pattern, type annotation, default value and modifiers.
func (c *converter) param(n *sitter.Node) ast.Node {
	typ := n.Type()
	if typ != "required_parameter" && typ != "optional_parameter" {
		return c.wrap(n, ast.KindFormalParameter, ast.FieldPattern, n)
	}
	var flags ast.Flags
	if typ == "optional_parameter" {
		flags |= ast.FlagOptional
	}
	if hasToken(n, "readonly") {
		flags |= ast.FlagReadonly
	}
	var access string
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "decorator":
			c.b.Push(ast.FieldDecorators, c.node(ch))
		case "accessibility_modifier":
			access = c.text(ch)
		case "override_modifier":
			flags |= ast.FlagOverride
		}
	}
	pattern := field(n, "pattern")
	if pattern == nil {
		pattern = field(n, "name")
	}
	c.b.Push(ast.FieldPattern, c.node(pattern))
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "type")))
	if v := field(n, "value"); v != nil {
		c.need(v, "Default parameter syntax", ES2015)
		c.b.Push(ast.FieldInit, c.node(v))
	}
	return c.b.Finish(m, ast.KindFormalParameter, spanOf(n), ast.Attrs{Flags: flags, Value: access})
}

func (c *converter) arrow(n *sitter.Node) ast.Node {
	c.need(n, "Arrow function syntax", ES2015)
	flags := c.functionFlags(n)
	body := field(n, "body")
	if body != nil && body.Type() != "statement_block" {
		flags |= ast.FlagExpression
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	if p := field(n, "parameter"); p != nil {
		c.b.Push(ast.FieldParams, c.param(p))
	} else {
		c.params(field(n, "parameters"))
	}
	c.b.Push(ast.FieldReturnType, c.node(field(n, "return_type")))
	c.b.Push(ast.FieldBody, c.functionBody(body))
	return c.b.Finish(m, ast.KindArrowFunctionExpression, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) class(n *sitter.Node) ast.Node {
	c.need(n, "Class syntax", ES2015)
	k := ast.KindClassExpression
	var flags ast.Flags
	switch n.Type() {
	case "class_declaration":
		k = ast.KindClassDeclaration
	case "abstract_class_declaration":
		k = ast.KindClassDeclaration
		flags |= ast.FlagAbstract
	}
	var out ast.Node
	c.withStrict(func() {
		m := c.b.Mark()
		for _, ch := range namedChildren(n) {
			if ch.Type() == "decorator" {
				c.b.Push(ast.FieldDecorators, c.node(ch))
			}
		}
		c.b.Push(ast.FieldID, c.ident(field(n, "name")))
		c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
		for _, ch := range namedChildren(n) {
			if ch.Type() == "class_heritage" {
				c.heritage(ch)
			}
		}
		c.b.Push(ast.FieldBody, c.node(field(n, "body")))
		out = c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags})
	})
	return out
}

func (c *converter) heritage(n *sitter.Node) {
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "extends_clause":
			for _, part := range namedChildren(ch) {
				if part.Type() == "type_arguments" {
					c.b.Push(ast.FieldSuperTypeArgs, c.node(part))
				} else {
					c.b.Push(ast.FieldSuperClass, c.node(part))
				}
			}
		case "implements_clause":
			for _, t := range namedChildren(ch) {
				c.b.Push(ast.FieldImplements, c.node(t))
			}
		default:
			c.b.Push(ast.FieldSuperClass, c.node(ch))
		}
	}
}

func (c *converter) classBody(n *sitter.Node) ast.Node {
	var out ast.Node
	c.withStrict(func() {
		m := c.b.Mark()
		var decorators []ast.Node
		for _, ch := range namedChildren(n) {
			var member ast.Node
			switch ch.Type() {
			case "decorator":
				decorators = append(decorators, c.node(ch))
				continue
			case "method_definition", "method_signature":
				member = c.method(ch, decorators, true)
			case "abstract_method_signature":
				member = c.method(ch, decorators, true)
				c.b.AddFlags(member, ast.FlagAbstract)
			case "field_definition", "public_field_definition":
				member = c.fieldDefinition(ch, decorators)
			default:
				member = c.node(ch)
			}
			decorators = nil
			c.b.Push(ast.FieldBody, member)
		}
		out = c.b.Finish(m, ast.KindClassBody, spanOf(n), ast.Attrs{})
	})
	return out
}

// memberModifiers collects the modifiers shared by class methods and
// fields, and the member's own decorators.
func (c *converter) memberModifiers(n *sitter.Node) (flags ast.Flags, access string, decorators []*sitter.Node) {
	for _, tok := range []struct {
		text string
		flag ast.Flags
	}{
		{"static", ast.FlagStatic},
		{"readonly", ast.FlagReadonly},
		{"abstract", ast.FlagAbstract},
		{"declare", ast.FlagDeclare},
		{"override", ast.FlagOverride},
		{"accessor", ast.FlagAccessor},
		{"?", ast.FlagOptional},
		{"!", ast.FlagDefinite},
	} {
		if hasToken(n, tok.text) {
			flags |= tok.flag
		}
	}
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "accessibility_modifier":
			access = c.text(ch)
		case "override_modifier":
			flags |= ast.FlagOverride
		case "decorator":
			decorators = append(decorators, ch)
		}
	}
	return flags, access, decorators
}

// method converts a method of a class body (MethodDefinition) or of an
// object literal (Property with the method flag). The function itself is
// a FunctionExpression stored as the value.
func (c *converter) method(n *sitter.Node, decorators []ast.Node, inClass bool) ast.Node {
	flags, access, own := c.memberModifiers(n)
	fnFlags := c.functionFlags(n)
	name := field(n, "name")
	if name != nil && name.Type() == "computed_property_name" {
		flags |= ast.FlagComputed
	}

	kind := "method"
	switch {
	case hasToken(n, "get"):
		kind = "get"
	case hasToken(n, "set"):
		kind = "set"
	case inClass && flags&(ast.FlagStatic|ast.FlagComputed) == 0 && c.text(name) == "constructor":
		kind = "constructor"
	case !inClass:
		kind = "init"
		flags |= ast.FlagMethod
	}

	m := c.b.Mark()
	for _, d := range decorators {
		c.b.Push(ast.FieldDecorators, d)
	}
	for _, d := range own {
		c.b.Push(ast.FieldDecorators, c.node(d))
	}
	c.b.Push(ast.FieldKey, c.node(name))

	fm := c.b.Mark()
	c.signature(n)
	body := field(n, "body")
	c.b.Push(ast.FieldBody, c.functionBody(body))
	fnSpan := spanOf(n)
	if p := field(n, "parameters"); p != nil {
		fnSpan.Start = int(p.StartByte())
		if tp := field(n, "type_parameters"); tp != nil {
			fnSpan.Start = int(tp.StartByte())
		}
	}
	c.b.Push(ast.FieldValue, c.b.Finish(fm, ast.KindFunctionExpression, fnSpan, ast.Attrs{Flags: fnFlags}))

	k := ast.KindMethodDefinition
	if !inClass {
		k = ast.KindProperty
	}
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags, Name: kind, Value: access})
}

func (c *converter) fieldDefinition(n *sitter.Node, decorators []ast.Node) ast.Node {
	c.need(n, "Class field syntax", ES2022)
	flags, access, own := c.memberModifiers(n)
	name := field(n, "property")
	if name == nil {
		name = field(n, "name")
	}
	if name != nil && name.Type() == "computed_property_name" {
		flags |= ast.FlagComputed
	}
	m := c.b.Mark()
	for _, d := range decorators {
		c.b.Push(ast.FieldDecorators, d)
	}
	for _, d := range own {
		c.b.Push(ast.FieldDecorators, c.node(d))
	}
	c.b.Push(ast.FieldKey, c.node(name))
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "type")))
	c.b.Push(ast.FieldValue, c.node(field(n, "value")))
	return c.b.Finish(m, ast.KindPropertyDefinition, spanOf(n), ast.Attrs{Flags: flags, Value: access})
}

func (c *converter) staticBlock(n *sitter.Node) ast.Node {
	c.need(n, "Class static block syntax", ES2022)
	m := c.b.Mark()
	if body := field(n, "body"); body != nil {
		for _, s := range namedChildren(body) {
			c.b.Push(ast.FieldBody, c.node(s))
		}
	} else {
		for _, ch := range namedChildren(n) {
			if ch.Type() != "statement_block" {
				continue
			}
			for _, s := range namedChildren(ch) {
				c.b.Push(ast.FieldBody, c.node(s))
			}
		}
	}
	return c.b.Finish(m, ast.KindStaticBlock, spanOf(n), ast.Attrs{})
}

// ident converts a name position. Type names and property names become
// plain identifiers there.
func (c *converter) ident(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	switch n.Type() {
	case "identifier", "type_identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier":
		return c.leaf(n, ast.KindIdentifier, c.text(n))
	}
	return c.node(n)
}

// wrapFirst builds a node of kind k around n's first named child.
func (c *converter) wrapFirst(n *sitter.Node, k ast.Kind, f ast.Field) ast.Node {
	m := c.b.Mark()
	if kids := namedChildren(n); len(kids) > 0 {
		c.b.Push(f, c.node(kids[0]))
	}
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}
