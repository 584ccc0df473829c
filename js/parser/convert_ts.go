package parser

import (
	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

var keywordTypes = map[string]ast.Kind{
	"any":       ast.KindTSAnyKeyword,
	"unknown":   ast.KindTSUnknownKeyword,
	"number":    ast.KindTSNumberKeyword,
	"bigint":    ast.KindTSBigIntKeyword,
	"boolean":   ast.KindTSBooleanKeyword,
	"string":    ast.KindTSStringKeyword,
	"symbol":    ast.KindTSSymbolKeyword,
	"object":    ast.KindTSObjectKeyword,
	"void":      ast.KindTSVoidKeyword,
	"undefined": ast.KindTSUndefinedKeyword,
	"null":      ast.KindTSNullKeyword,
	"never":     ast.KindTSNeverKeyword,
	"intrinsic": ast.KindTSIntrinsicKeyword,
}

func init() {
	register(map[string]convertFunc{
		"type_annotation":           (*converter).typeAnnotation,
		"opting_type_annotation":    (*converter).typeAnnotation,
		"omitting_type_annotation":  (*converter).typeAnnotation,
		"adding_type_annotation":    (*converter).typeAnnotation,
		"type_predicate_annotation": (*converter).typeAnnotation,
		"asserts_annotation":        (*converter).typeAnnotation,
		"predefined_type":           (*converter).predefinedType,
		"type_identifier":           (*converter).typeReference,
		"nested_type_identifier":    (*converter).typeReference,
		"generic_type":              (*converter).typeReference,
		"nested_identifier":         (*converter).qualifiedName,
		"type_arguments":            (*converter).typeArguments,
		"type_parameters":           (*converter).typeParameters,
		"type_parameter":            (*converter).typeParameter,
		"union_type":                (*converter).unionType,
		"intersection_type":         (*converter).unionType,
		"array_type":                (*converter).arrayType,
		"readonly_type":             (*converter).typeOperator,
		"index_type_query":          (*converter).typeOperator,
		"tuple_type":                (*converter).tupleType,
		"optional_type":             (*converter).typeOperator,
		"rest_type":                 (*converter).typeOperator,
		"tuple_parameter":           (*converter).tupleMember,
		"optional_tuple_parameter":  (*converter).tupleMember,
		"function_type":             (*converter).functionType,
		"constructor_type":          (*converter).functionType,
		"object_type":               (*converter).objectType,
		"property_signature":        (*converter).propertySignature,
		"method_signature":          (*converter).methodSignature,
		"call_signature":            (*converter).callSignature,
		"construct_signature":       (*converter).callSignature,
		"index_signature":           (*converter).indexSignature,
		"literal_type":              (*converter).literalType,
		"template_literal_type":     (*converter).templateLiteralType,
		"type_query":                (*converter).typeQuery,
		"lookup_type":               (*converter).lookupType,
		"conditional_type":          (*converter).conditionalType,
		"infer_type":                (*converter).inferType,
		"parenthesized_type":        (*converter).parenthesizedType,
		"this_type":                 (*converter).thisType,
		"type_predicate":            (*converter).typePredicate,
		"asserts":                   (*converter).typePredicate,
		"interface_declaration":     (*converter).interfaceDeclaration,
		"type_alias_declaration":    (*converter).typeAlias,
		"enum_declaration":          (*converter).enumDeclaration,
		"internal_module":           (*converter).moduleDeclaration,
		"module":                    (*converter).moduleDeclaration,
		"ambient_declaration":       (*converter).ambient,
		"function_signature":        (*converter).functionSignature,
		"import_alias":              (*converter).importAlias,
		"as_expression":             (*converter).asExpression,
		"satisfies_expression":      (*converter).asExpression,
		"non_null_expression":       (*converter).nonNull,
		"type_assertion":            (*converter).typeAssertion,
		"instantiation_expression":  (*converter).instantiation,
		"constraint":                (*converter).unwrap,
		"default_type":              (*converter).unwrap,
	})
}

// unwrap converts the single meaningful child of a grammar wrapper node.
func (c *converter) unwrap(n *sitter.Node) ast.Node {
	if ch := firstNamed(n); ch != nil {
		return c.node(ch)
	}
	return c.leaf(n, ast.KindError, "missing "+n.Type())
}

func (c *converter) typeAnnotation(n *sitter.Node) ast.Node {
	return c.wrapFirst(n, ast.KindTSTypeAnnotation, ast.FieldTypeAnnotation)
}

// annotate wraps a bare type in a TSTypeAnnotation spanning the type, for
// positions where the grammar has no colon node of its own.
func (c *converter) annotate(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	if n.Type() == "type_annotation" {
		return c.node(n)
	}
	return c.wrap(n, ast.KindTSTypeAnnotation, ast.FieldTypeAnnotation, n)
}

func (c *converter) predefinedType(n *sitter.Node) ast.Node {
	name := c.text(n)
	if k, ok := keywordTypes[name]; ok {
		return c.leaf(n, k, name)
	}
	return c.leaf(n, ast.KindUnknown, name)
}

// typeName converts the name part of a type reference: an identifier or a
// dotted TSQualifiedName.
func (c *converter) typeName(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	switch n.Type() {
	case "nested_type_identifier", "nested_identifier", "member_expression":
		return c.qualifiedName(n)
	}
	return c.ident(n)
}

func (c *converter) qualifiedName(n *sitter.Node) ast.Node {
	left := field(n, "module")
	if left == nil {
		left = field(n, "object")
	}
	right := field(n, "name")
	if right == nil {
		right = field(n, "property")
	}
	if left == nil || right == nil {
		if kids := namedChildren(n); len(kids) == 2 {
			left, right = kids[0], kids[1]
		}
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldLeft, c.typeName(left))
	c.b.Push(ast.FieldRight, c.ident(right))
	return c.b.Finish(m, ast.KindTSQualifiedName, spanOf(n), ast.Attrs{Name: c.text(n)})
}

func (c *converter) typeReference(n *sitter.Node) ast.Node {
	name := n
	var targs *sitter.Node
	if n.Type() == "generic_type" {
		name = field(n, "name")
		targs = field(n, "type_arguments")
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldTypeName, c.typeName(name))
	c.b.Push(ast.FieldTypeArguments, c.node(targs))
	return c.b.Finish(m, ast.KindTSTypeReference, spanOf(n), ast.Attrs{})
}

func (c *converter) typeArguments(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldParams, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTypeParameterInstantiation, spanOf(n), ast.Attrs{})
}

func (c *converter) typeParameters(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldParams, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTypeParameterDeclaration, spanOf(n), ast.Attrs{})
}

// typeParameter records in/out variance modifiers in Value.
func (c *converter) typeParameter(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "const") {
		flags |= ast.FlagConst
	}
	variance := ""
	switch {
	case hasToken(n, "in") && hasToken(n, "out"):
		variance = "in out"
	case hasToken(n, "in"):
		variance = "in"
	case hasToken(n, "out"):
		variance = "out"
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldName, c.ident(field(n, "name")))
	c.b.Push(ast.FieldConstraint, c.node(field(n, "constraint")))
	c.b.Push(ast.FieldDefault, c.node(field(n, "value")))
	return c.b.Finish(m, ast.KindTSTypeParameter, spanOf(n), ast.Attrs{Flags: flags, Name: c.text(field(n, "name")), Value: variance})
}

// unionType flattens nested unions (or intersections) into one list.
func (c *converter) unionType(n *sitter.Node) ast.Node {
	typ := n.Type()
	k := ast.KindTSUnionType
	if typ == "intersection_type" {
		k = ast.KindTSIntersectionType
	}
	m := c.b.Mark()
	var flatten func(s *sitter.Node)
	flatten = func(s *sitter.Node) {
		for _, ch := range namedChildren(s) {
			if ch.Type() == typ {
				flatten(ch)
				continue
			}
			c.b.Push(ast.FieldTypes, c.node(ch))
		}
	}
	flatten(n)
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}

func (c *converter) arrayType(n *sitter.Node) ast.Node {
	return c.wrapFirst(n, ast.KindTSArrayType, ast.FieldElementType)
}

// typeOperator covers keyof, readonly and the tuple element markers ? and
// ...; Name holds the operator.
func (c *converter) typeOperator(n *sitter.Node) ast.Node {
	op := ""
	switch n.Type() {
	case "readonly_type":
		op = "readonly"
	case "index_type_query":
		op = "keyof"
	case "optional_type":
		op = "?"
	case "rest_type":
		op = "..."
	}
	m := c.b.Mark()
	if ch := firstNamed(n); ch != nil {
		c.b.Push(ast.FieldTypeAnnotation, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTypeOperator, spanOf(n), ast.Attrs{Name: op})
}

func (c *converter) tupleType(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		c.b.Push(ast.FieldElementTypes, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTupleType, spanOf(n), ast.Attrs{})
}

// tupleMember converts a labeled tuple element such as [x: number].
func (c *converter) tupleMember(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if n.Type() == "optional_tuple_parameter" {
		flags |= ast.FlagOptional
	}
	name := field(n, "name")
	typ := field(n, "type")
	m := c.b.Mark()
	c.b.Push(ast.FieldPattern, c.node(name))
	c.b.Push(ast.FieldTypeAnnotation, c.node(typ))
	return c.b.Finish(m, ast.KindFormalParameter, spanOf(n), ast.Attrs{Flags: flags})
}

func (c *converter) functionType(n *sitter.Node) ast.Node {
	k := ast.KindTSFunctionType
	var flags ast.Flags
	if n.Type() == "constructor_type" {
		k = ast.KindTSConstructorType
		if hasToken(n, "abstract") {
			flags |= ast.FlagAbstract
		}
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	c.params(field(n, "parameters"))
	c.b.Push(ast.FieldReturnType, c.annotate(returnType(n)))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{Flags: flags})
}

// returnType finds the result type of a signature. Grammar versions
// disagree on the field name, so the last named child that is neither a
// parameter list nor type parameters is used as a fallback.
func returnType(n *sitter.Node) *sitter.Node {
	if ret := field(n, "return_type"); ret != nil {
		return ret
	}
	if ret := field(n, "type"); ret != nil {
		return ret
	}
	kids := namedChildren(n)
	if len(kids) == 0 {
		return nil
	}
	last := kids[len(kids)-1]
	switch last.Type() {
	case "formal_parameters", "type_parameters":
		return nil
	}
	return last
}

// objectType converts a type literal. A literal holding only a mapped
// clause, as in {[K in T]: V}, is a mapped type.
func (c *converter) objectType(n *sitter.Node) ast.Node {
	members := namedChildren(n)
	if len(members) == 1 && members[0].Type() == "index_signature" {
		if clause := childOfType(members[0], "mapped_type_clause"); clause != nil {
			return c.mappedType(n, members[0], clause)
		}
	}
	m := c.b.Mark()
	for _, ch := range members {
		c.b.Push(ast.FieldMembers, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTypeLiteral, spanOf(n), ast.Attrs{})
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, ch := range namedChildren(n) {
		if ch.Type() == typ {
			return ch
		}
	}
	return nil
}

// mappedType keeps the readonly modifier as written in Name ("readonly",
// "+readonly" or "-readonly") and the optional modifier in Value ("?",
// "+?" or "-?").
func (c *converter) mappedType(n, sig, clause *sitter.Node) ast.Node {
	var flags ast.Flags
	readonly := ""
	prefix := ""
	for i := 0; i < int(sig.ChildCount()); i++ {
		ch := sig.Child(i)
		if ch == nil || ch.IsNamed() {
			continue
		}
		switch ch.Type() {
		case "-", "+":
			prefix = ch.Type()
		case "readonly":
			flags |= ast.FlagReadonly
			readonly = prefix + "readonly"
		}
	}
	optional := ""
	typ := field(sig, "type")
	if typ != nil {
		switch typ.Type() {
		case "opting_type_annotation":
			optional = "?"
		case "adding_type_annotation":
			optional = "+?"
		case "omitting_type_annotation":
			optional = "-?"
		}
	}
	if optional != "" && optional != "-?" {
		flags |= ast.FlagOptional
	}

	m := c.b.Mark()
	pm := c.b.Mark()
	c.b.Push(ast.FieldName, c.ident(field(clause, "name")))
	c.b.Push(ast.FieldConstraint, c.node(field(clause, "type")))
	c.b.Push(ast.FieldTypeParameter, c.b.Finish(pm, ast.KindTSTypeParameter, spanOf(clause), ast.Attrs{Name: c.text(field(clause, "name"))}))
	c.b.Push(ast.FieldNameType, c.node(field(clause, "alias")))
	if typ != nil {
		c.b.Push(ast.FieldTypeAnnotation, c.node(firstNamed(typ)))
	}
	return c.b.Finish(m, ast.KindTSMappedType, spanOf(n), ast.Attrs{Flags: flags, Name: readonly, Value: optional})
}

func (c *converter) memberFlags(n *sitter.Node) ast.Flags {
	var flags ast.Flags
	if hasToken(n, "?") {
		flags |= ast.FlagOptional
	}
	if hasToken(n, "readonly") {
		flags |= ast.FlagReadonly
	}
	if hasToken(n, "static") {
		flags |= ast.FlagStatic
	}
	if key := field(n, "name"); key != nil && key.Type() == "computed_property_name" {
		flags |= ast.FlagComputed
	}
	return flags
}

func (c *converter) propertySignature(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldKey, c.node(field(n, "name")))
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "type")))
	return c.b.Finish(m, ast.KindTSPropertySignature, spanOf(n), ast.Attrs{Flags: c.memberFlags(n)})
}

// methodSignature stores the accessor kind in Name: "method", "get" or
// "set".
func (c *converter) methodSignature(n *sitter.Node) ast.Node {
	kind := "method"
	switch {
	case hasToken(n, "get"):
		kind = "get"
	case hasToken(n, "set"):
		kind = "set"
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldKey, c.node(field(n, "name")))
	c.signature(n)
	return c.b.Finish(m, ast.KindTSMethodSignature, spanOf(n), ast.Attrs{Flags: c.memberFlags(n), Name: kind})
}

func (c *converter) callSignature(n *sitter.Node) ast.Node {
	k := ast.KindTSCallSignatureDeclaration
	if n.Type() == "construct_signature" {
		k = ast.KindTSConstructSignatureDeclaration
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	c.params(field(n, "parameters"))
	c.b.Push(ast.FieldReturnType, c.annotate(returnType(n)))
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}

// indexSignature converts [key: K]: V. The key becomes a parameter so that
// its name and type are kept together.
func (c *converter) indexSignature(n *sitter.Node) ast.Node {
	if clause := childOfType(n, "mapped_type_clause"); clause != nil {
		return c.mappedType(n, n, clause)
	}
	name := field(n, "name")
	index := field(n, "index_type")
	if index == nil {
		for _, ch := range namedChildren(n) {
			if !same(ch, name) && ch.Type() != "type_annotation" && ch.Type() != "opting_type_annotation" && ch.Type() != "omitting_type_annotation" {
				index = ch
				break
			}
		}
	}
	m := c.b.Mark()
	if name != nil {
		pm := c.b.Mark()
		c.b.Push(ast.FieldPattern, c.ident(name))
		c.b.Push(ast.FieldTypeAnnotation, c.annotate(index))
		sp := spanOf(name)
		if index != nil {
			sp = sp.Cover(spanOf(index))
		}
		c.b.Push(ast.FieldParameters, c.b.Finish(pm, ast.KindFormalParameter, sp, ast.Attrs{}))
	}
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "type")))
	return c.b.Finish(m, ast.KindTSIndexSignature, spanOf(n), ast.Attrs{Flags: c.memberFlags(n)})
}

func (c *converter) literalType(n *sitter.Node) ast.Node {
	return c.wrapFirst(n, ast.KindTSLiteralType, ast.FieldLiteral)
}

func (c *converter) templateLiteralType(n *sitter.Node) ast.Node {
	return c.templateParts(n, ast.KindTSTemplateLiteralType, ast.FieldTypes, "template_type")
}

func (c *converter) typeQuery(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for i, ch := range namedChildren(n) {
		if i == 0 {
			c.b.Push(ast.FieldExprName, c.node(ch))
		} else {
			c.b.Push(ast.FieldTypeArguments, c.node(ch))
		}
	}
	return c.b.Finish(m, ast.KindTSTypeQuery, spanOf(n), ast.Attrs{})
}

func (c *converter) lookupType(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	m := c.b.Mark()
	if len(kids) > 0 {
		c.b.Push(ast.FieldObjectType, c.node(kids[0]))
	}
	if len(kids) > 1 {
		c.b.Push(ast.FieldIndexType, c.node(kids[1]))
	}
	return c.b.Finish(m, ast.KindTSIndexedAccessType, spanOf(n), ast.Attrs{})
}

func (c *converter) conditionalType(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldCheckType, c.node(field(n, "left")))
	c.b.Push(ast.FieldExtendsType, c.node(field(n, "right")))
	c.b.Push(ast.FieldTrueType, c.node(field(n, "consequence")))
	c.b.Push(ast.FieldFalseType, c.node(field(n, "alternative")))
	return c.b.Finish(m, ast.KindTSConditionalType, spanOf(n), ast.Attrs{})
}

func (c *converter) inferType(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	m := c.b.Mark()
	if len(kids) > 0 {
		pm := c.b.Mark()
		c.b.Push(ast.FieldName, c.ident(kids[0]))
		if len(kids) > 1 {
			c.b.Push(ast.FieldConstraint, c.node(kids[1]))
		}
		c.b.Push(ast.FieldTypeParameter, c.b.Finish(pm, ast.KindTSTypeParameter, spanOf(kids[0]), ast.Attrs{Name: c.text(kids[0])}))
	}
	return c.b.Finish(m, ast.KindTSInferType, spanOf(n), ast.Attrs{})
}

func (c *converter) parenthesizedType(n *sitter.Node) ast.Node {
	return c.wrapFirst(n, ast.KindTSParenthesizedType, ast.FieldTypeAnnotation)
}

func (c *converter) thisType(n *sitter.Node) ast.Node {
	return c.leaf(n, ast.KindTSThisType, "this")
}

// typePredicate converts x is T and asserts x [is T]. Name is "asserts"
// for assertion signatures.
func (c *converter) typePredicate(n *sitter.Node) ast.Node {
	if n.Type() == "asserts" {
		if inner := childOfType(n, "type_predicate"); inner != nil {
			m := c.b.Mark()
			c.b.Push(ast.FieldParameterName, c.node(field(inner, "name")))
			c.b.Push(ast.FieldTypeAnnotation, c.annotate(field(inner, "type")))
			return c.b.Finish(m, ast.KindTSTypePredicate, spanOf(n), ast.Attrs{Name: "asserts"})
		}
		m := c.b.Mark()
		c.b.Push(ast.FieldParameterName, c.node(firstNamed(n)))
		return c.b.Finish(m, ast.KindTSTypePredicate, spanOf(n), ast.Attrs{Name: "asserts"})
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldParameterName, c.node(field(n, "name")))
	c.b.Push(ast.FieldTypeAnnotation, c.annotate(field(n, "type")))
	return c.b.Finish(m, ast.KindTSTypePredicate, spanOf(n), ast.Attrs{})
}

func (c *converter) interfaceDeclaration(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.ident(field(n, "name")))
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	for _, ch := range namedChildren(n) {
		if ch.Type() != "extends_type_clause" {
			continue
		}
		for _, t := range namedChildren(ch) {
			c.b.Push(ast.FieldExtends, c.node(t))
		}
	}
	if body := field(n, "body"); body != nil {
		bm := c.b.Mark()
		for _, member := range namedChildren(body) {
			c.b.Push(ast.FieldBody, c.node(member))
		}
		c.b.Push(ast.FieldBody, c.b.Finish(bm, ast.KindTSInterfaceBody, spanOf(body), ast.Attrs{}))
	}
	return c.b.Finish(m, ast.KindTSInterfaceDeclaration, spanOf(n), ast.Attrs{})
}

func (c *converter) typeAlias(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.ident(field(n, "name")))
	c.b.Push(ast.FieldTypeParameters, c.node(field(n, "type_parameters")))
	c.b.Push(ast.FieldTypeAnnotation, c.node(field(n, "value")))
	return c.b.Finish(m, ast.KindTSTypeAliasDeclaration, spanOf(n), ast.Attrs{})
}

func (c *converter) enumDeclaration(n *sitter.Node) ast.Node {
	var flags ast.Flags
	if hasToken(n, "const") {
		flags |= ast.FlagConst
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.ident(field(n, "name")))
	for _, member := range namedChildren(field(n, "body")) {
		mm := c.b.Mark()
		if member.Type() == "enum_assignment" {
			c.b.Push(ast.FieldID, c.node(field(member, "name")))
			c.b.Push(ast.FieldInitializer, c.node(field(member, "value")))
		} else {
			c.b.Push(ast.FieldID, c.node(member))
		}
		c.b.Push(ast.FieldMembers, c.b.Finish(mm, ast.KindTSEnumMember, spanOf(member), ast.Attrs{}))
	}
	return c.b.Finish(m, ast.KindTSEnumDeclaration, spanOf(n), ast.Attrs{Flags: flags})
}

// moduleDeclaration stores the declaring keyword in Name: "namespace",
// "module" or "global".
func (c *converter) moduleDeclaration(n *sitter.Node) ast.Node {
	kind := "namespace"
	if n.Type() == "module" {
		kind = "module"
	}
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.typeName(field(n, "name")))
	c.b.Push(ast.FieldBody, c.moduleBlock(field(n, "body")))
	return c.b.Finish(m, ast.KindTSModuleDeclaration, spanOf(n), ast.Attrs{Name: kind})
}

func (c *converter) moduleBlock(n *sitter.Node) ast.Node {
	if n == nil {
		return ast.Node{}
	}
	var out ast.Node
	c.scoped(func() {
		m := c.b.Mark()
		for _, s := range namedChildren(n) {
			c.b.Push(ast.FieldBody, c.node(s))
		}
		out = c.b.Finish(m, ast.KindTSModuleBlock, spanOf(n), ast.Attrs{})
	})
	return out
}

// ambient converts a declare-prefixed declaration: the inner declaration
// gets FlagDeclare and is widened to cover the keyword.
func (c *converter) ambient(n *sitter.Node) ast.Node {
	if hasToken(n, "global") {
		m := c.b.Mark()
		sp, _ := tokenSpan(n, "global")
		c.b.Push(ast.FieldID, c.b.Leaf(ast.KindIdentifier, sp, ast.Attrs{Name: "global"}))
		c.b.Push(ast.FieldBody, c.moduleBlock(childOfType(n, "statement_block")))
		return c.b.Finish(m, ast.KindTSModuleDeclaration, spanOf(n), ast.Attrs{Flags: ast.FlagDeclare | ast.FlagGlobal, Name: "global"})
	}
	inner := firstNamed(n)
	if inner == nil {
		return c.generic(n, ast.KindUnknown, n.Type())
	}
	out := c.node(inner)
	if out.IsZero() {
		return out
	}
	c.b.AddFlags(out, ast.FlagDeclare)
	c.b.Extend(out, spanOf(n))
	return out
}

func (c *converter) functionSignature(n *sitter.Node) ast.Node {
	flags := c.functionFlags(n)
	m := c.b.Mark()
	c.b.Push(ast.FieldID, c.ident(field(n, "name")))
	c.signature(n)
	return c.b.Finish(m, ast.KindTSDeclareFunction, spanOf(n), ast.Attrs{Flags: flags})
}

// importAlias converts import A = B.C, an alias of a namespace member.
func (c *converter) importAlias(n *sitter.Node) ast.Node {
	kids := namedChildren(n)
	m := c.b.Mark()
	if len(kids) > 0 {
		c.b.Push(ast.FieldID, c.ident(kids[0]))
	}
	if len(kids) > 1 {
		c.b.Push(ast.FieldModuleReference, c.typeName(kids[1]))
	}
	return c.b.Finish(m, ast.KindTSImportEqualsDeclaration, spanOf(n), ast.Attrs{Name: "alias"})
}

// asExpression converts x as T and x satisfies T. The `as const` form
// gets a TSTypeReference named const.
func (c *converter) asExpression(n *sitter.Node) ast.Node {
	k := ast.KindTSAsExpression
	if n.Type() == "satisfies_expression" {
		k = ast.KindTSSatisfiesExpression
	}
	kids := namedChildren(n)
	m := c.b.Mark()
	if len(kids) > 0 {
		c.b.Push(ast.FieldExpression, c.node(kids[0]))
	}
	if len(kids) > 1 {
		c.b.Push(ast.FieldTypeAnnotation, c.node(kids[1]))
	} else if sp, ok := tokenSpan(n, "const"); ok {
		rm := c.b.Mark()
		c.b.Push(ast.FieldTypeName, c.b.Leaf(ast.KindIdentifier, sp, ast.Attrs{Name: "const"}))
		c.b.Push(ast.FieldTypeAnnotation, c.b.Finish(rm, ast.KindTSTypeReference, sp, ast.Attrs{}))
	}
	return c.b.Finish(m, k, spanOf(n), ast.Attrs{})
}

func (c *converter) nonNull(n *sitter.Node) ast.Node {
	return c.wrapFirst(n, ast.KindTSNonNullExpression, ast.FieldExpression)
}

// typeAssertion converts the angle-bracket cast <T>x.
func (c *converter) typeAssertion(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		if ch.Type() == "type_arguments" {
			if t := firstNamed(ch); t != nil {
				c.b.Push(ast.FieldTypeAnnotation, c.node(t))
			}
			continue
		}
		c.b.Push(ast.FieldExpression, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSTypeAssertion, spanOf(n), ast.Attrs{})
}

func (c *converter) instantiation(n *sitter.Node) ast.Node {
	m := c.b.Mark()
	for _, ch := range namedChildren(n) {
		if ch.Type() == "type_arguments" {
			c.b.Push(ast.FieldTypeArguments, c.node(ch))
			continue
		}
		c.b.Push(ast.FieldExpression, c.node(ch))
	}
	return c.b.Finish(m, ast.KindTSInstantiationExpression, spanOf(n), ast.Attrs{})
}
