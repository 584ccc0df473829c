package parser

import (
	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	register(map[string]convertFunc{
		"expression_statement": (*converter).expressionStatement,
		"variable_declaration": (*converter).variableDeclaration,
		"lexical_declaration":  (*converter).variableDeclaration,
		"variable_declarator":  (*converter).declarator,
		"statement_block":      (*converter).block,
		"if_statement":         (*converter).ifStatement,
		"for_statement":        (*converter).forStatement,
		"for_in_statement":     (*converter).forInStatement,
		"while_statement":      (*converter).whileStatement,
		"do_statement":         (*converter).doStatement,
		"switch_statement":     (*converter).switchStatement,
		"try_statement":        (*converter).tryStatement,
		"throw_statement":      (*converter).throwStatement,
		"return_statement":     (*converter).returnStatement,
		"break_statement":      (*converter).jumpStatement,
		"continue_statement":   (*converter).jumpStatement,
		"labeled_statement":    (*converter).labeledStatement,
		"with_statement":       (*converter).withStatement,
		"empty_statement": func(c *converter, n *sitter.Node) ast.Node {
			return c.leaf(n, ast.KindEmptyStatement, "")
		},
		"debugger_statement": func(c *converter, n *sitter.Node) ast.Node {
			return c.leaf(n, ast.KindDebuggerStatement, "")
		},
		"import_statement": (*converter).importStatement,
		"export_statement": (*converter).exportStatement,
	})
}

func (c *converter) expressionStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldExpression, c.node(ch))
	}
	return c.b.Finish(m, ast.KindExpressionStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) variableDeclaration(n *sitter.Node) ast.Node {
	kind := "var"
	if k := field(n, "kind"); k != nil {
		kind = c.text(k)
	} else if n.Type() == "lexical_declaration" && n.ChildCount() > 0 {
		kind = c.text(n.Child(0))
	}
	if kind != "var" {
		c.need(n, "Lexical declaration syntax", ES2015)
	}
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		if ch.Type() == "variable_declarator" || ch.Type() == "ERROR" {
			c.b.Push(ast.FieldDeclarations, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindVariableDeclaration, spanOf(n), ast.Attrs{Name: kind})
}

func (c *converter) declarator(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "!") {
		flags |= ast.FlagDefinite
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.node(field(n, "name")))
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "type")))
	c.b.Push(ast.FieldInit, c.node(field(n, "value")))
	return c.b.Finish(m, ast.KindVariableDeclarator, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) block(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldBody, c.node(ch))
	}
	return c.b.Finish(m, ast.KindBlockStatement, spanOf(n), ast.Attrs{})
}

// functionBody converts a function's block, honoring its directive
// prologue.
func (c *converter) functionBody(n *sitter.Node) ast.Node {
	if n == nil || n.Type() != "statement_block" {
		return c.node(n)
	}
	var out ast.Node
	c.scoped(func() {
		m := c.b.Mark()
		c.statements(namedChildren(n), ast.FieldBody)
		out = c.b.Finish(m, ast.KindBlockStatement, spanOf(n), ast.Attrs{})
	})
	return out
}

func (c *converter) ifStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldTest, c.node(unparen(field(n, "condition"))))
	c.b.Push(ast.FieldConsequent, c.node(field(n, "consequence")))
	if alt := field(n, "alternative"); alt != nil {
		if alt.Type() == "else_clause" {
			for _, ch := range namedChildren(alt) {
				c.b.Push(ast.FieldAlternate, c.node(ch))
			}
		} else {
			c.b.Push(ast.FieldAlternate, c.node(alt))
		}
	}
	return c.b.Finish(m, ast.KindIfStatement, spanOf(n), ast.Attrs{})
}

// forClause converts the init and test parts of a for statement, which the
// grammar may wrap in an expression or empty statement.
func (c *converter) forClause(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	switch n.Type() {
	case "empty_statement", ";":
		return ast.Node{}
	case "expression_statement":
		if kids := namedChildren(n); len(kids) > 0 {
			return c.node(kids[0])
		}
		return ast.Node{}
	}
	return c.node(n)
}

func (c *converter) forStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldInit, c.forClause(field(n, "initializer")))
	c.b.Push(ast.FieldTest, c.forClause(field(n, "condition")))
	c.b.Push(ast.FieldUpdate, c.node(field(n, "increment")))
	c.b.Push(ast.FieldBody, c.node(field(n, "body")))
	return c.b.Finish(m, ast.KindForStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) forInStatement(n *sitter.Node) ast.Node {
	k := ast.KindForInStatement
	if op := field(n, "operator"); (op != nil && c.text(op) == "of") || hasToken(n, "of") {
		k = ast.KindForOfStatement
		c.need(n, "for-of syntax", ES2015)
	}
	var flags ast.Flags
	if hasToken(n, "await") {
		flags |= ast.FlagAwait
		c.need(n, "for-await syntax", ES2018)
	}

	m := c.b.Mark()
	left := field(n, "left")
	if kind := field(n, "kind"); kind != nil {
		if kw := c.text(kind); kw != "var" {
			c.need(kind, "Lexical declaration syntax", ES2015)
		}
		leftSpan := spanOf(kind)
		if left != nil {
			leftSpan = spanOf(left)
		}
		d := c.b.Mark()
		c.b.Push(ast.FieldID, c.node(left))
		decl := c.b.Finish(d, ast.KindVariableDeclarator, leftSpan, ast.Attrs{})
		d = c.b.Mark()
		c.b.Push(ast.FieldDeclarations, decl)
		sp := spanOf(kind).Cover(leftSpan)
		c.b.Push(ast.FieldLeft, c.b.Finish(d, ast.KindVariableDeclaration, sp, ast.Attrs{Name: c.text(kind)}))
	} else {
		c.b.Push(ast.FieldLeft, c.node(left))
	}
	c.b.Push(ast.FieldRight, c.node(field(n, "right")))
	c.b.Push(ast.FieldBody, c.node(field(n, "body")))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) whileStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldTest, c.node(unparen(field(n, "condition"))))
	c.b.Push(ast.FieldBody, c.node(field(n, "body")))
	return c.b.Finish(m, ast.KindWhileStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) doStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldBody, c.node(field(n, "body")))
	c.b.Push(ast.FieldTest, c.node(unparen(field(n, "condition"))))
	return c.b.Finish(m, ast.KindDoWhileStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) switchStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldDiscriminant, c.node(unparen(field(n, "value"))))
	for _, cs := range namedChildren(field(n, "body")) {
		switch cs.Type() {
		case "switch_case", "switch_default":
			c.b.Push(ast.FieldCases, c.switchCase(cs))
		default:
			c.b.Push(ast.FieldCases, c.node(cs))
		}
	}
	return c.b.Finish(m, ast.KindSwitchStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) switchCase(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	test := field(n, "value")
	if test != nil {
		c.b.Push(ast.FieldTest, c.node(test))
	}
	for _, ch := range namedChildren(n) {
		if same(ch, test) {
			continue
		}
		c.b.Push(ast.FieldConsequent, c.node(ch))
	}
	return c.b.Finish(m, ast.KindSwitchCase, spanOf(n), ast.Attrs{})
}

func (c *converter) tryStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldBlock, c.node(field(n, "body")))
	if h := field(n, "handler"); h != nil {
		hm := c.b.Mark()
		param := field(h, "parameter")
		if param == nil {
			c.need(h, "Optional catch binding", ES2019)
		}
		c.b.Push(ast.FieldParam, c.node(param))
		c.b.Push(ast.FieldTypeAnnotation, c.node(field(h, "type")))
		c.b.Push(ast.FieldBody, c.node(field(h, "body")))
		c.b.Push(ast.FieldHandler, c.b.Finish(hm, ast.KindCatchClause, spanOf(h), ast.Attrs{}))
	}
	if f := field(n, "finalizer"); f != nil {
		c.b.Push(ast.FieldFinalizer, c.node(field(f, "body")))
	}
	return c.b.Finish(m, ast.KindTryStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) throwStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldArgument, c.node(ch))
	}
	return c.b.Finish(m, ast.KindThrowStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) returnStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldArgument, c.node(ch))
	}
	return c.b.Finish(m, ast.KindReturnStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) jumpStatement(n *sitter.Node) ast.Node {
	k := ast.KindBreakStatement
	if n.Type() == "continue_statement" {
		k = ast.KindContinueStatement
	}
	m := c.b.Mark()
	if l := field(n, "label"); l != nil {
		c.b.Push(ast.FieldLabel, c.leaf(l, ast.KindIdentifier, c.text(l)))
	}
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}

func (c *converter) labeledStatement(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	label := field(n, "label")
	if label != nil {
		c.b.Push(ast.FieldLabel, c.leaf(label, ast.KindIdentifier, c.text(label)))
	}
	body := field(n, "body")
	if body == nil {
		if kids := namedChildren(n); len(kids) > 1 {
			body = kids[len(kids)-1]
		}
	}
	c.b.Push(ast.FieldBody, c.node(body))
	return c.b.Finish(m, ast.KindLabeledStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) withStatement(n *sitter.Node) ast.Node {
	c.strictError(n, "'with' statements are not allowed in strict mode")
	m := c.b.Mark()
	c.b.Push(ast.FieldObject, c.node(unparen(field(n, "object"))))
	c.b.Push(ast.FieldBody, c.node(field(n, "body")))
	return c.b.Finish(m, ast.KindWithStatement, spanOf(n), ast.Attrs{})
}

func (c *converter) importStatement(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "type") || hasToken(n, "typeof") {
		flags |= ast.FlagTypeOnly
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() == "import_require_clause" {
			return c.importRequire(n, ch)
		}
	}
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "import_clause":
			c.importClause(ch)
		case "string":
			c.b.Push(ast.FieldSource, c.node(ch))
		case "import_attribute", "import_assertion":
			for _, obj := range namedChildren(ch) {
				c.b.Push(ast.FieldAttributes, c.node(obj))
			}
		default:
			c.b.Push(ast.FieldNone, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindImportDeclaration, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) importClause(n *sitter.Node) {
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "identifier":
			m := c.b.Mark()
			c.b.Push(ast.FieldLocal, c.node(ch))
			c.b.Push(ast.FieldSpecifiers, c.b.Finish(m, ast.KindImportDefaultSpecifier, spanOf(ch), ast.Attrs{}))
		case "namespace_import":
			m := c.b.Mark()
			for _, id := range namedChildren(ch) {
				c.b.Push(ast.FieldLocal, c.node(id))
			}
			c.b.Push(ast.FieldSpecifiers, c.b.Finish(m, ast.KindImportNamespaceSpecifier, spanOf(ch), ast.Attrs{}))
		case "named_imports":
			for _, spec := range namedChildren(ch) {
				if spec.Type() != "import_specifier" {
					c.b.Push(ast.FieldSpecifiers, c.node(spec))
					continue
				}
				c.b.Push(ast.FieldSpecifiers, c.moduleSpecifier(spec, ast.KindImportSpecifier, ast.FieldImported, ast.FieldLocal))
			}
		default:
			c.b.Push(ast.FieldSpecifiers, c.node(ch))
		}
	}
}

// moduleSpecifier converts import and export specifiers. Without an alias
// only the name is stored.
func (c *converter) moduleSpecifier(n *sitter.Node, k ast.Kind, nameField, aliasField ast.Field) ast.Node {
	var flags ast.Flags
	if hasToken(n, "type") || hasToken(n, "typeof") {
		flags |= ast.FlagTypeOnly
	}
	m := c.b.Mark()
	c.b.Push(nameField, c.node(field(n, "name")))
	c.b.Push(aliasField, c.node(field(n, "alias")))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) importRequire(stmt, clause *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(clause) {
		switch ch.Type() {
		case "identifier":
			c.b.Push(ast.FieldID, c.node(ch))
		default:
			c.b.Push(ast.FieldModuleReference, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindTSImportEqualsDeclaration, spanOf(stmt), ast.Attrs{Name: "require"})
}

func (c *converter) exportStatement(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "type") {
		flags |= ast.FlagTypeOnly
	}
	m := c.b.Mark()
	for _, d := range namedChildren(n) {
		if d.Type() == "decorator" {
			c.b.Push(ast.FieldDecorators, c.node(d))
		}
	}

	switch {
	case hasToken(n, "default"):
		decl := field(n, "declaration")
		if decl == nil {
			decl = field(n, "value")
		}
		c.b.Push(ast.FieldDeclaration, c.node(decl))
		return c.b.Finish(m, ast.KindExportDefaultDeclaration, spanOf(n), ast.Attrs{Flags: flags})

	case hasToken(n, "*"):
		for _, ch := range namedChildren(n) {
			if ch.Type() == "namespace_export" {
				c.need(ch, "export * as syntax", ES2020)
				for _, id := range namedChildren(ch) {
					c.b.Push(ast.FieldExported, c.node(id))
				}
			}
		}
		c.b.Push(ast.FieldSource, c.node(field(n, "source")))
		return c.b.Finish(m, ast.KindExportAllDeclaration, spanOf(n), ast.Attrs{Flags: flags})

	case hasToken(n, "="):
		for _, ch := range namedChildren(n) {
			if ch.Type() != "decorator" {
				c.b.Push(ast.FieldExpression, c.node(ch))
			}
		}
		return c.b.Finish(m, ast.KindTSExportAssignment, spanOf(n), ast.Attrs{})

	case hasToken(n, "as") && hasToken(n, "namespace"):
		for _, ch := range namedChildren(n) {
			c.b.Push(ast.FieldID, c.node(ch))
		}
		return c.b.Finish(m, ast.KindTSNamespaceExportDeclaration, spanOf(n), ast.Attrs{})
	}

	if decl := field(n, "declaration"); decl != nil {
		c.b.Push(ast.FieldDeclaration, c.node(decl))
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() != "export_clause" {
			continue
		}
		for _, spec := range namedChildren(ch) {
			if spec.Type() != "export_specifier" {
				c.b.Push(ast.FieldSpecifiers, c.node(spec))
				continue
			}
			c.b.Push(ast.FieldSpecifiers, c.moduleSpecifier(spec, ast.KindExportSpecifier, ast.FieldLocal, ast.FieldExported))
		}
	}
	c.b.Push(ast.FieldSource, c.node(field(n, "source")))
	return c.b.Finish(m, ast.KindExportNamedDeclaration, spanOf(n), ast.Attrs{Flags: flags})
}
