package ast

import (
	"strconv"
	"strings"
)

// The view types below give kind-specific access to a Node. Each AsX
// method reports false when the node's kind does not have that shape.

// Function is a view of any function-like node: declarations, function and
// arrow expressions, class methods, object methods and TypeScript function
// signatures.
type Function struct {
	Node
	fn  Node
	key Node
}

func (n Node) AsFunction() (Function, bool) {
	switch n.Kind() {
	case KindFunctionDeclaration, KindFunctionExpression, KindArrowFunctionExpression, KindTSDeclareFunction:
		return Function{Node: n, fn: n, key: n.Child(FieldID)}, true
	case KindMethodDefinition:
		if v := n.Child(FieldValue); v.Kind() == KindFunctionExpression {
			return Function{Node: n, fn: v, key: n.Child(FieldKey)}, true
		}
	case KindProperty:
		switch v := n.Child(FieldValue); v.Kind() {
		case KindFunctionExpression, KindArrowFunctionExpression:
			return Function{Node: n, fn: v, key: n.Child(FieldKey)}, true
		}
	}
	return Function{}, false
}

// ID returns the function's name node: the identifier of a declaration or
// the key of a method. It is absent for anonymous functions.
func (f Function) ID() Node {
	return f.key
}

// Name returns the function's name, or "" when it is anonymous or computed.
func (f Function) Name() string {
	switch f.key.Kind() {
	case KindIdentifier, KindPrivateIdentifier:
		return f.key.Name()
	case KindStringLiteral:
		return f.key.Value()
	case KindNumericLiteral:
		return f.key.Name()
	}
	return ""
}

func (f Function) IsAsync() bool     { return f.fn.Has(FlagAsync) }
func (f Function) IsGenerator() bool { return f.fn.Has(FlagGenerator) }
func (f Function) IsArrow() bool     { return f.fn.Kind() == KindArrowFunctionExpression }

// Params returns the formal parameters.
func (f Function) Params() []Node { return f.fn.List(FieldParams) }

// Body returns the function body. Arrow functions with an expression body
// return that expression; declarations without a body return the absent
// node.
func (f Function) Body() Node { return f.fn.Child(FieldBody) }

func (f Function) TypeParameters() Node { return f.fn.Child(FieldTypeParameters) }
func (f Function) ReturnType() Node     { return f.fn.Child(FieldReturnType) }

// Class is a view of class declarations and expressions.
type Class struct{ Node }

func (n Node) AsClass() (Class, bool) {
	switch n.Kind() {
	case KindClassDeclaration, KindClassExpression:
		return Class{n}, true
	}
	return Class{}, false
}

func (c Class) ID() Node             { return c.Child(FieldID) }
func (c Class) Name() string         { return c.ID().Name() }
func (c Class) SuperClass() Node     { return c.Child(FieldSuperClass) }
func (c Class) Implements() []Node   { return c.List(FieldImplements) }
func (c Class) TypeParameters() Node { return c.Child(FieldTypeParameters) }
func (c Class) Decorators() []Node   { return c.List(FieldDecorators) }
func (c Class) IsAbstract() bool     { return c.Has(FlagAbstract) }

// Members returns the elements of the class body.
func (c Class) Members() []Node { return c.Child(FieldBody).Children() }

// VariableDeclaration is a view of var, let, const and using declarations.
type VariableDeclaration struct{ Node }

func (n Node) AsVariableDeclaration() (VariableDeclaration, bool) {
	if n.Kind() != KindVariableDeclaration {
		return VariableDeclaration{}, false
	}
	return VariableDeclaration{n}, true
}

// DeclarationKind returns "var", "let", "const", "using" or "await using".
func (v VariableDeclaration) DeclarationKind() string { return v.Name() }
func (v VariableDeclaration) Declarations() []Node    { return v.List(FieldDeclarations) }

type Declarator struct{ Node }

func (n Node) AsDeclarator() (Declarator, bool) {
	if n.Kind() != KindVariableDeclarator {
		return Declarator{}, false
	}
	return Declarator{n}, true
}

func (d Declarator) ID() Node             { return d.Child(FieldID) }
func (d Declarator) Init() Node           { return d.Child(FieldInit) }
func (d Declarator) TypeAnnotation() Node { return d.Child(FieldTypeAnnotation) }

// Import is a view of an import declaration.
type Import struct{ Node }

func (n Node) AsImport() (Import, bool) {
	if n.Kind() != KindImportDeclaration {
		return Import{}, false
	}
	return Import{n}, true
}

func (i Import) Source() Node        { return i.Child(FieldSource) }
func (i Import) Specifiers() []Node  { return i.List(FieldSpecifiers) }
func (i Import) IsTypeOnly() bool    { return i.Has(FlagTypeOnly) }
func (i Import) SourceValue() string { return i.Source().Value() }

// ImportSpecifier is a view of the three import specifier kinds.
type ImportSpecifier struct{ Node }

func (n Node) AsImportSpecifier() (ImportSpecifier, bool) {
	switch n.Kind() {
	case KindImportSpecifier, KindImportDefaultSpecifier, KindImportNamespaceSpecifier:
		return ImportSpecifier{n}, true
	}
	return ImportSpecifier{}, false
}

// Imported returns the exported name being imported. It is absent for
// default and namespace specifiers.
func (s ImportSpecifier) Imported() Node { return s.Child(FieldImported) }

// Local returns the binding introduced in the importing module. Without
// an alias the binding is the imported name itself.
func (s ImportSpecifier) Local() Node {
	if l := s.Child(FieldLocal); !l.IsZero() {
		return l
	}
	return s.Imported()
}

// Export is a view of the three export declaration kinds.
type Export struct{ Node }

func (n Node) AsExport() (Export, bool) {
	switch n.Kind() {
	case KindExportNamedDeclaration, KindExportDefaultDeclaration, KindExportAllDeclaration:
		return Export{n}, true
	}
	return Export{}, false
}

func (e Export) Declaration() Node  { return e.Child(FieldDeclaration) }
func (e Export) Specifiers() []Node { return e.List(FieldSpecifiers) }
func (e Export) Source() Node       { return e.Child(FieldSource) }
func (e Export) Exported() Node     { return e.Child(FieldExported) }
func (e Export) IsDefault() bool    { return e.Kind() == KindExportDefaultDeclaration }
func (e Export) IsAll() bool        { return e.Kind() == KindExportAllDeclaration }
func (e Export) IsTypeOnly() bool   { return e.Has(FlagTypeOnly) }

type Identifier struct{ Node }

func (n Node) AsIdentifier() (Identifier, bool) {
	switch n.Kind() {
	case KindIdentifier, KindPrivateIdentifier, KindJSXIdentifier:
		return Identifier{n}, true
	}
	return Identifier{}, false
}

// Literal is a view of primitive literals. Raw is the source text; Value
// is the cooked string value of string literals and the pattern of
// regular expressions.
type Literal struct{ Node }

func (n Node) AsLiteral() (Literal, bool) {
	if !n.Kind().IsLiteral() {
		return Literal{}, false
	}
	return Literal{n}, true
}

func (l Literal) Raw() string { return l.Name() }

// RegExpFlags returns the flags of a regular expression literal.
func (l Literal) RegExpFlags() string {
	raw := l.Raw()
	if i := strings.LastIndexByte(raw, '/'); i >= 0 && l.Kind() == KindRegExpLiteral {
		return raw[i+1:]
	}
	return ""
}

// Bool returns the value of a boolean literal.
func (l Literal) Bool() bool {
	return l.Kind() == KindBooleanLiteral && l.Raw() == "true"
}

// Number returns the value of a numeric literal.
func (l Literal) Number() (float64, bool) {
	if l.Kind() != KindNumericLiteral {
		return 0, false
	}
	return parseNumber(l.Raw())
}

func parseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			v, err := strconv.ParseUint(s[2:], base, 64)
			return float64(v), err == nil
		}
	}
	if len(s) > 1 && s[0] == '0' && strings.Trim(s, "01234567") == "" {
		v, err := strconv.ParseUint(s[1:], 8, 64)
		return float64(v), err == nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// Call is a view of call and new expressions.
type Call struct{ Node }

func (n Node) AsCall() (Call, bool) {
	switch n.Kind() {
	case KindCallExpression, KindNewExpression:
		return Call{n}, true
	}
	return Call{}, false
}

func (c Call) Callee() Node        { return c.Child(FieldCallee) }
func (c Call) Arguments() []Node   { return c.List(FieldArguments) }
func (c Call) TypeArguments() Node { return c.Child(FieldTypeArguments) }
func (c Call) IsOptional() bool    { return c.Has(FlagOptional) }
func (c Call) IsNew() bool         { return c.Kind() == KindNewExpression }

type Member struct{ Node }

func (n Node) AsMember() (Member, bool) {
	if n.Kind() != KindMemberExpression {
		return Member{}, false
	}
	return Member{n}, true
}

func (m Member) Object() Node     { return m.Child(FieldObject) }
func (m Member) Property() Node   { return m.Child(FieldProperty) }
func (m Member) IsComputed() bool { return m.Has(FlagComputed) }
func (m Member) IsOptional() bool { return m.Has(FlagOptional) }

// PropertyName returns the accessed name of a non-computed member
// expression.
func (m Member) PropertyName() string {
	if m.IsComputed() {
		return ""
	}
	return m.Property().Name()
}

// Binary is a view of binary, logical and assignment expressions.
type Binary struct{ Node }

func (n Node) AsBinary() (Binary, bool) {
	switch n.Kind() {
	case KindBinaryExpression, KindLogicalExpression, KindAssignmentExpression:
		return Binary{n}, true
	}
	return Binary{}, false
}

func (b Binary) Operator() string { return b.Name() }
func (b Binary) Left() Node       { return b.Child(FieldLeft) }
func (b Binary) Right() Node      { return b.Child(FieldRight) }

// Unary is a view of unary and update expressions.
type Unary struct{ Node }

func (n Node) AsUnary() (Unary, bool) {
	switch n.Kind() {
	case KindUnaryExpression, KindUpdateExpression:
		return Unary{n}, true
	}
	return Unary{}, false
}

func (u Unary) Operator() string { return u.Name() }
func (u Unary) Argument() Node   { return u.Child(FieldArgument) }
func (u Unary) IsPrefix() bool   { return u.Has(FlagPrefix) }

// JSXElement is a view of JSX elements and fragments.
type JSXElement struct{ Node }

func (n Node) AsJSXElement() (JSXElement, bool) {
	switch n.Kind() {
	case KindJSXElement, KindJSXFragment:
		return JSXElement{n}, true
	}
	return JSXElement{}, false
}

func (e JSXElement) IsFragment() bool { return e.Kind() == KindJSXFragment }

func (e JSXElement) OpeningElement() Node { return e.Child(FieldOpeningElement) }
func (e JSXElement) ClosingElement() Node { return e.Child(FieldClosingElement) }
func (e JSXElement) JSXChildren() []Node  { return e.List(FieldChildren) }
func (e JSXElement) Attributes() []Node   { return e.OpeningElement().List(FieldAttributes) }

func (e JSXElement) IsSelfClosing() bool {
	return e.OpeningElement().Has(FlagSelfClosing)
}

// TagName returns the element name as written, e.g. "div", "Foo.Bar" or
// "svg:rect". Fragments have no name.
func (e JSXElement) TagName() string {
	return jsxName(e.OpeningElement().Child(FieldName))
}

func jsxName(n Node) string {
	switch n.Kind() {
	case KindJSXIdentifier, KindIdentifier:
		return n.Name()
	case KindThisExpression:
		return "this"
	case KindJSXMemberExpression:
		return jsxName(n.Child(FieldObject)) + "." + jsxName(n.Child(FieldProperty))
	case KindJSXNamespacedName:
		return jsxName(n.Child(FieldNamespace)) + ":" + jsxName(n.Child(FieldName))
	}
	return ""
}

type Interface struct{ Node }

func (n Node) AsInterface() (Interface, bool) {
	if n.Kind() != KindTSInterfaceDeclaration {
		return Interface{}, false
	}
	return Interface{n}, true
}

func (i Interface) ID() Node             { return i.Child(FieldID) }
func (i Interface) Name() string         { return i.ID().Name() }
func (i Interface) Extends() []Node      { return i.List(FieldExtends) }
func (i Interface) TypeParameters() Node { return i.Child(FieldTypeParameters) }
func (i Interface) Members() []Node      { return i.Child(FieldBody).Children() }

type TypeAlias struct{ Node }

func (n Node) AsTypeAlias() (TypeAlias, bool) {
	if n.Kind() != KindTSTypeAliasDeclaration {
		return TypeAlias{}, false
	}
	return TypeAlias{n}, true
}

func (t TypeAlias) ID() Node             { return t.Child(FieldID) }
func (t TypeAlias) Name() string         { return t.ID().Name() }
func (t TypeAlias) TypeParameters() Node { return t.Child(FieldTypeParameters) }
func (t TypeAlias) Type() Node           { return t.Child(FieldTypeAnnotation) }

type Enum struct{ Node }

func (n Node) AsEnum() (Enum, bool) {
	if n.Kind() != KindTSEnumDeclaration {
		return Enum{}, false
	}
	return Enum{n}, true
}

func (e Enum) ID() Node        { return e.Child(FieldID) }
func (e Enum) Name() string    { return e.ID().Name() }
func (e Enum) Members() []Node { return e.List(FieldMembers) }
func (e Enum) IsConst() bool   { return e.Has(FlagConst) }
