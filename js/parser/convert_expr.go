package parser

import (
	"strings"

	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

func init() {
	register(map[string]convertFunc{
		"identifier":                            (*converter).identifier,
		"property_identifier":                   (*converter).identifier,
		"shorthand_property_identifier":         (*converter).identifier,
		"shorthand_property_identifier_pattern": (*converter).identifier,
		"statement_identifier":                  (*converter).identifier,
		"undefined":                             (*converter).identifier,
		"import":                                (*converter).identifier,
		"private_property_identifier":           (*converter).privateName,
		"this":                                  (*converter).this,
		"super":                                 (*converter).super,
		"true":                                  (*converter).boolean,
		"false":                                 (*converter).boolean,
		"null":                                  (*converter).null,
		"number":                                (*converter).number,
		"string":                                (*converter).stringLiteral,
		"template_string":                       (*converter).template,
		"regex":                                 (*converter).regex,
		"array":                                 (*converter).array,
		"object":                                (*converter).object,
		"pair":                                  (*converter).pair,
		"spread_element":                        (*converter).spread,
		"call_expression":                       (*converter).call,
		"new_expression":                        (*converter).newExpression,
		"member_expression":                     (*converter).member,
		"subscript_expression":                  (*converter).subscript,
		"assignment_expression":                 (*converter).assignment,
		"augmented_assignment_expression":       (*converter).assignment,
		"binary_expression":                     (*converter).binary,
		"unary_expression":                      (*converter).unary,
		"update_expression":                     (*converter).update,
		"ternary_expression":                    (*converter).ternary,
		"sequence_expression":                   (*converter).sequence,
		"yield_expression":                      (*converter).yield,
		"await_expression":                      (*converter).await,
		"parenthesized_expression":              (*converter).parenthesized,
		"meta_property":                         (*converter).metaProperty,
		"computed_property_name":                (*converter).computedName,
		"object_pattern":                        (*converter).objectPattern,
		"array_pattern":                         (*converter).arrayPattern,
		"pair_pattern":                          (*converter).pair,
		"assignment_pattern":                    (*converter).assignmentPattern,
		"object_assignment_pattern":             (*converter).objectAssignmentPattern,
		"rest_pattern":                          (*converter).rest,
	})
}

func (c *converter) identifier(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindIdentifier, c.text(n))
}

func (c *converter) this(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindThisExpression, "")
}

func (c *converter) super(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindSuper, "")
}

func (c *converter) boolean(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindBooleanLiteral, c.text(n))
}

func (c *converter) null(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindNullLiteral, "null")
}

func (c *converter) privateName(n *sitter.Node) ast.Node {
	c.need(n, "Private name syntax", ES2022)
	return c.leaf(n, ast.KindPrivateIdentifier, strings.TrimPrefix(c.text(n), "#"))
}

func (c *converter) number(n *sitter.Node) ast.Node {
	raw := c.text(n)
	c.checkNumber(n, raw)
	if strings.HasSuffix(raw, "n") {
		return c.leaf(n, ast.KindBigIntLiteral, raw)
	}
	return c.leaf(n, ast.KindNumericLiteral, raw)
}

func (c *converter) stringLiteral(n *sitter.Node) ast.Node {
	raw := c.text(n)
	inner := ""
	if len(raw) >= 2 {
		inner = raw[1 : len(raw)-1]
	}
	cooked, octal := cook(inner, false)
	if octal {
		c.strictError(n, "Octal escape sequences are not allowed in strict mode")
	}
	return c.b.Leaf(ast.KindStringLiteral, spanOf(n), ast.Attrs{Name: raw, Value: cooked})
}

// template converts a template literal. Quasis are the text runs between
// substitutions; they and the substituted expressions are stored
// interleaved in source order.
func (c *converter) template(n *sitter.Node) ast.Node {
	c.need(n, "Template literal syntax", ES2015)
	return c.templateParts(n, ast.KindTemplateLiteral, ast.FieldExpressions, "template_substitution")
}

func (c *converter) templateParts(n *sitter.Node, k ast.Kind, exprField ast.Field, substType string) ast.Node {
	sp := spanOf(n)
	m := c.b.Mark()
	pos := sp.Start + 1
	quasi := func(end int) {
		if end < pos {
			end = pos
		}
		raw := c.src[pos:end]
		cooked, _ := cook(raw, true)
		c.b.Push(ast.FieldQuasis, c.b.Leaf(ast.KindTemplateElement, ast.Span{Start: pos, End: end}, ast.Attrs{Name: raw, Value: cooked}))
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() != substType {
			continue
		}
		quasi(int(ch.StartByte()))
		for _, e := range namedChildren(ch) {
			c.b.Push(exprField, c.node(e))
		}
		pos = int(ch.EndByte())
	}
	end := sp.End - 1
	if end < pos || !strings.HasSuffix(c.text(n), "`") {
		end = sp.End
	}
	quasi(end)
	return c.b.Finish(m, k, sp, ast.Attrs{})
}

func (c *converter) regex(n *sitter.Node) ast.Node {
	flags := c.text(field(n, "flags"))
	c.checkRegExpFlags(n, flags)
	return c.b.Leaf(ast.KindRegExpLiteral, spanOf(n), ast.Attrs{Name: c.text(n), Value: c.text(field(n, "pattern"))})
}

func (c *converter) array(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldElements, c.node(ch))
	}
	return c.b.Finish(m, ast.KindArrayExpression, spanOf(n), ast.Attrs{})
}

func (c *converter) object(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "shorthand_property_identifier":
			c.b.Push(ast.FieldProperties, c.shorthand(ch, c.node(ch)))
		case "method_definition":
			c.b.Push(ast.FieldProperties, c.method(ch, nil, false))
		case "spread_element":
			c.need(ch, "Object spread syntax", ES2018)
			c.b.Push(ast.FieldProperties, c.node(ch))
		default:
			c.b.Push(ast.FieldProperties, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindObjectExpression, spanOf(n), ast.Attrs{})
}

// shorthand builds a shorthand property. The binding is stored once, as
// the value; the key is implied by it.
func (c *converter) shorthand(n *sitter.Node, value ast.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldValue, value)
	return c.b.Finish(m, ast.KindProperty, spanOf(n), ast.Attrs{Flags: ast.FlagShorthand, Name: "init"})
}

func (c *converter) pair(n *sitter.Node) ast.Node {
	var flags ast.Flags
	key := field(n, "key")
	if key != nil && key.Type() == "computed_property_name" {
		flags |= ast.FlagComputed
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldKey, c.node(key))
	c.b.Push(ast.FieldValue, c.node(field(n, "value")))
	return c.b.Finish(m, ast.KindProperty, spanOf(n), ast.Attrs{Flags: flags, Name: "init"})
}

func (c *converter) computedName(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return c.leaf(n, ast.KindError, "computed property name")
	}
	return c.node(kids[0])
}

func (c *converter) spread(n *sitter.Node) ast.Node {
	c.need(n, "Spread syntax", ES2015)
	return c.wrapFirst(n, ast.KindSpreadElement, ast.FieldArgument)
}

func optionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch != nil && (ch.Type() == "optional_chain" || ch.Type() == "?.") {
			return true
		}
	}
	return false
}

func (c *converter) call(n *sitter.Node) ast.Node {
	fn := field(n, "function")
	args := field(n, "arguments")

	if fn != nil && fn.Type() == "import" {
		c.need(n, "Dynamic import syntax", ES2020)
		m := c.b.Mark()
		for i, a := range namedChildren(args) {
			f := ast.FieldSource
			if i > 0 {
				f = ast.FieldOptions
			}
			c.b.Push(f, c.node(a))
		}
		return c.b.Finish(m, ast.KindImportExpression, spanOf(n), ast.Attrs{})
	}

	if args != nil && args.Type() == "template_string" {
		m := c.b.Mark()
		c.b.Push(ast.FieldTag, c.node(fn))
		c.b.Push(ast.FieldTypeArguments, c.node(field(n, "type_arguments")))
		c.b.Push(ast.FieldQuasi, c.node(args))
		return c.b.Finish(m, ast.KindTaggedTemplateExpression, spanOf(n), ast.Attrs{})
	}

	var flags ast.Flags
	if optionalChain(n) {
		flags |= ast.FlagOptional
		c.need(n, "Optional chaining syntax", ES2020)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldCallee, c.node(fn))
	c.b.Push(ast.FieldTypeArguments, c.node(field(n, "type_arguments")))
	for _, a := range namedChildren(args) {
		c.b.Push(ast.FieldArguments, c.node(a))
	}
	return c.b.Finish(m, ast.KindCallExpression, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) newExpression(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldCallee, c.node(field(n, "constructor")))
	c.b.Push(ast.FieldTypeArguments, c.node(field(n, "type_arguments")))
	for _, a := range namedChildren(field(n, "arguments")) {
		c.b.Push(ast.FieldArguments, c.node(a))
	}
	return c.b.Finish(m, ast.KindNewExpression, spanOf(n), ast.Attrs{})
}

func (c *converter) member(n *sitter.Node) ast.Node {
	if isImportMeta(n, c.src) {
		return c.metaProperty(n)
	}
	var flags ast.Flags
	if optionalChain(n) {
		flags |= ast.FlagOptional
		c.need(n, "Optional chaining syntax", ES2020)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldObject, c.node(field(n, "object")))
	c.b.Push(ast.FieldProperty, c.node(field(n, "property")))
	return c.b.Finish(m, ast.KindMemberExpression, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) subscript(n *sitter.Node) ast.Node {
	flags := ast.FlagComputed
	if optionalChain(n) {
		flags |= ast.FlagOptional
		c.need(n, "Optional chaining syntax", ES2020)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldObject, c.node(field(n, "object")))
	c.b.Push(ast.FieldProperty, c.node(field(n, "index")))
	return c.b.Finish(m, ast.KindMemberExpression, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) assignment(n *sitter.Node) ast.Node {
	op := "="
	if o := field(n, "operator"); o != nil {
		op = c.text(o)
	}
	switch op {
	case "**=":
		c.need(n, "The `**=` operator", ES2016)
	case "&&=", "||=", "??=":
		c.need(n, "Logical assignment syntax", ES2021)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldLeft, c.node(field(n, "left")))
	c.b.Push(ast.FieldRight, c.node(field(n, "right")))
	return c.b.Finish(m, ast.KindAssignmentExpression, spanOf(n), ast.Attrs{Name: op})
}

func (c *converter) binary(n *sitter.Node) ast.Node {
	op := c.text(field(n, "operator"))
	k := ast.KindBinaryExpression
	switch op {
	case "&&", "||":
		k = ast.KindLogicalExpression
	case "??":
		k = ast.KindLogicalExpression
		c.need(n, "The `??` operator", ES2020)
	case "**":
		c.need(n, "The `**` operator", ES2016)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldLeft, c.node(field(n, "left")))
	c.b.Push(ast.FieldRight, c.node(field(n, "right")))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Name: op})
}

func (c *converter) unary(n *sitter.Node) ast.Node {
	op := c.text(field(n, "operator"))
	arg := field(n, "argument")
	if op == "delete" {
		if a := unparen(arg); a != nil && a.Type() == "identifier" {
			c.strictError(n, "Deleting an unqualified identifier is not allowed in strict mode")
		}
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldArgument, c.node(arg))
	return c.b.Finish(m, ast.KindUnaryExpression, spanOf(n), ast.Attrs{Flags: ast.FlagPrefix, Name: op})
}

func (c *converter) update(n *sitter.Node) ast.Node {
	op := c.text(field(n, "operator"))
	var flags ast.Flags
	if first := n.Child(0); first != nil && !first.IsNamed() {
		flags |= ast.FlagPrefix
		if op == "" {
			op = first.Type()
		}
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldArgument, c.node(field(n, "argument")))
	return c.b.Finish(m, ast.KindUpdateExpression, spanOf(n), ast.Attrs{Flags: flags, Name: op})
}

func (c *converter) ternary(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldTest, c.node(field(n, "condition")))
	c.b.Push(ast.FieldConsequent, c.node(field(n, "consequence")))
	c.b.Push(ast.FieldAlternate, c.node(field(n, "alternative")))
	return c.b.Finish(m, ast.KindConditionalExpression, spanOf(n), ast.Attrs{})
}

// sequence flattens the nested binary shape some grammar versions use for
// comma expressions.
func (c *converter) sequence(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	var flatten func(s *sitter.Node)
	flatten = func(s *sitter.Node) {
		for _, ch := range namedChildren(s) {
			if ch.Type() == "sequence_expression" {
				flatten(ch)
				continue
			}
			c.b.Push(ast.FieldExpressions, c.node(ch))
		}
	}
	flatten(n)
	return c.b.Finish(m, ast.KindSequenceExpression, spanOf(n), ast.Attrs{})
}

func (c *converter) yield(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "*") {
		flags |= ast.FlagDelegate
	}
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldArgument, c.node(ch))
	}
	return c.b.Finish(m, ast.KindYieldExpression, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) await(n *sitter.Node) ast.Node {
	c.need(n, "Await syntax", ES2017)
	return c.wrapFirst(n, ast.KindAwaitExpression, ast.FieldArgument)
}

func (c *converter) parenthesized(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		if ch.Type() == "type_annotation" {
			c.b.Push(ast.FieldTypeAnnotation, c.node(ch))
			continue
		}
		c.b.Push(ast.FieldExpression, c.node(ch))
	}
	return c.b.Finish(m, ast.KindParenthesizedExpression, spanOf(n), ast.Attrs{})
}

// metaProperty splits new.target and import.meta into two identifiers.
func (c *converter) metaProperty(n *sitter.Node) ast.Node {
	sp := spanOf(n)
	text := c.text(n)
	meta, prop, _ := strings.Cut(text, ".")
	meta = strings.TrimSpace(meta)
	prop = strings.TrimSpace(prop)
	if meta == "import" {
		c.need(n, "import.meta", ES2020)
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldMeta, c.b.Leaf(ast.KindIdentifier, ast.Span{Start: sp.Start, End: sp.Start + len(meta)}, ast.Attrs{Name: meta}))
	c.b.Push(ast.FieldProperty, c.b.Leaf(ast.KindIdentifier, ast.Span{Start: sp.End - len(prop), End: sp.End}, ast.Attrs{Name: prop}))
	return c.b.Finish(m, ast.KindMetaProperty, sp, ast.Attrs{Name: meta + "." + prop})
}

// isImportMeta reports whether n is import.meta. The grammar parses it as
// a member expression whose object is the import keyword.
func isImportMeta(n *sitter.Node, src string) bool {
	if n.Type() != "member_expression" {
		return false
	}
	obj, prop := field(n, "object"), field(n, "property")
	return obj != nil && prop != nil && obj.Type() == "import" && nodeText(prop, src) == "meta"
}

func (c *converter) objectPattern(n *sitter.Node) ast.Node {
	c.need(n, "Destructuring syntax", ES2015)
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "shorthand_property_identifier_pattern", "shorthand_property_identifier":
			c.b.Push(ast.FieldProperties, c.shorthand(ch, c.node(ch)))
		case "rest_pattern":
			c.need(ch, "Object rest syntax", ES2018)
			c.b.Push(ast.FieldProperties, c.node(ch))
		default:
			c.b.Push(ast.FieldProperties, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindObjectPattern, spanOf(n), ast.Attrs{})
}

// objectAssignmentPattern is a shorthand property with a default value,
// as in {a = 1}.
func (c *converter) objectAssignmentPattern(n *sitter.Node) ast.Node {
	left := field(n, "left")
	var flags ast.Flags
	if left != nil && strings.HasPrefix(left.Type(), "shorthand_property_identifier") {
		flags |= ast.FlagShorthand
	}
	m := c.b.Mark()
	am := c.b.Mark()
	c.b.Push(ast.FieldLeft, c.node(left))
	c.b.Push(ast.FieldRight, c.node(field(n, "right")))
	c.b.Push(ast.FieldValue, c.b.Finish(am, ast.KindAssignmentPattern, spanOf(n), ast.Attrs{}))
	return c.b.Finish(m, ast.KindProperty, spanOf(n), ast.Attrs{Flags: flags, Name: "init"})
}

func (c *converter) arrayPattern(n *sitter.Node) ast.Node {
	c.need(n, "Destructuring syntax", ES2015)
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldElements, c.node(ch))
	}
	return c.b.Finish(m, ast.KindArrayPattern, spanOf(n), ast.Attrs{})
}

func (c *converter) assignmentPattern(n *sitter.Node) ast.Node {
	c.need(n, "Default value syntax", ES2015)
	m := c.b.Mark()
	c.b.Push(ast.FieldLeft, c.node(field(n, "left")))
	c.b.Push(ast.FieldRight, c.node(field(n, "right")))
	return c.b.Finish(m, ast.KindAssignmentPattern, spanOf(n), ast.Attrs{})
}

func (c *converter) rest(n *sitter.Node) ast.Node {
	c.need(n, "Rest syntax", ES2015)
	return c.wrapFirst(n, ast.KindRestElement, ast.FieldArgument)
}
