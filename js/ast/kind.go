package ast

import "strings"

// Kind discriminates the grammar production a Node represents. The set is
// closed; names follow ESTree and its TypeScript and JSX extensions.
type Kind uint16

const (
	KindInvalid Kind = iota

	// Program and recovery
	KindProgram
	KindHashbang
	KindError
	KindUnknown

	// Statements
	KindExpressionStatement
	KindBlockStatement
	KindEmptyStatement
	KindDebuggerStatement
	KindWithStatement
	KindReturnStatement
	KindLabeledStatement
	KindBreakStatement
	KindContinueStatement
	KindIfStatement
	KindSwitchStatement
	KindSwitchCase
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement

	// Declarations
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindStaticBlock
	KindFormalParameter
	KindDecorator

	// Modules
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportDefaultDeclaration
	KindExportAllDeclaration
	KindExportSpecifier

	// Expressions
	KindIdentifier
	KindPrivateIdentifier
	KindThisExpression
	KindSuper
	KindStringLiteral
	KindNumericLiteral
	KindBigIntLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegExpLiteral
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindSpreadElement
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassExpression
	KindCallExpression
	KindNewExpression
	KindImportExpression
	KindMemberExpression
	KindMetaProperty
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindSequenceExpression
	KindYieldExpression
	KindAwaitExpression
	KindParenthesizedExpression

	// Patterns
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern
	KindRestElement

	// JSX
	KindJSXElement
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXFragment
	KindJSXOpeningFragment
	KindJSXClosingFragment
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXIdentifier
	KindJSXMemberExpression
	KindJSXNamespacedName
	KindJSXText
	KindJSXExpressionContainer
	KindJSXEmptyExpression
	KindJSXSpreadChild

	// TypeScript declarations
	KindTSTypeAliasDeclaration
	KindTSInterfaceDeclaration
	KindTSInterfaceBody
	KindTSEnumDeclaration
	KindTSEnumMember
	KindTSModuleDeclaration
	KindTSModuleBlock
	KindTSDeclareFunction
	KindTSImportEqualsDeclaration
	KindTSExportAssignment
	KindTSNamespaceExportDeclaration

	// TypeScript members
	KindTSPropertySignature
	KindTSMethodSignature
	KindTSIndexSignature
	KindTSCallSignatureDeclaration
	KindTSConstructSignatureDeclaration

	// TypeScript types
	KindTSTypeAnnotation
	KindTSTypeReference
	KindTSQualifiedName
	KindTSTypeParameter
	KindTSTypeParameterDeclaration
	KindTSTypeParameterInstantiation
	KindTSUnionType
	KindTSIntersectionType
	KindTSArrayType
	KindTSTupleType
	KindTSFunctionType
	KindTSConstructorType
	KindTSTypeLiteral
	KindTSLiteralType
	KindTSTemplateLiteralType
	KindTSTypeQuery
	KindTSTypeOperator
	KindTSIndexedAccessType
	KindTSConditionalType
	KindTSInferType
	KindTSMappedType
	KindTSTypePredicate
	KindTSParenthesizedType
	KindTSThisType
	KindTSAnyKeyword
	KindTSUnknownKeyword
	KindTSNumberKeyword
	KindTSBigIntKeyword
	KindTSBooleanKeyword
	KindTSStringKeyword
	KindTSSymbolKeyword
	KindTSObjectKeyword
	KindTSVoidKeyword
	KindTSUndefinedKeyword
	KindTSNullKeyword
	KindTSNeverKeyword
	KindTSIntrinsicKeyword

	// TypeScript expressions
	KindTSAsExpression
	KindTSSatisfiesExpression
	KindTSNonNullExpression
	KindTSTypeAssertion
	KindTSInstantiationExpression

	kindCount
)

var kindNames = map[Kind]string{
	KindInvalid:                         "Invalid",
	KindProgram:                         "Program",
	KindHashbang:                        "Hashbang",
	KindError:                           "Error",
	KindUnknown:                         "Unknown",
	KindExpressionStatement:             "ExpressionStatement",
	KindBlockStatement:                  "BlockStatement",
	KindEmptyStatement:                  "EmptyStatement",
	KindDebuggerStatement:               "DebuggerStatement",
	KindWithStatement:                   "WithStatement",
	KindReturnStatement:                 "ReturnStatement",
	KindLabeledStatement:                "LabeledStatement",
	KindBreakStatement:                  "BreakStatement",
	KindContinueStatement:               "ContinueStatement",
	KindIfStatement:                     "IfStatement",
	KindSwitchStatement:                 "SwitchStatement",
	KindSwitchCase:                      "SwitchCase",
	KindThrowStatement:                  "ThrowStatement",
	KindTryStatement:                    "TryStatement",
	KindCatchClause:                     "CatchClause",
	KindWhileStatement:                  "WhileStatement",
	KindDoWhileStatement:                "DoWhileStatement",
	KindForStatement:                    "ForStatement",
	KindForInStatement:                  "ForInStatement",
	KindForOfStatement:                  "ForOfStatement",
	KindVariableDeclaration:             "VariableDeclaration",
	KindVariableDeclarator:              "VariableDeclarator",
	KindFunctionDeclaration:             "FunctionDeclaration",
	KindClassDeclaration:                "ClassDeclaration",
	KindClassBody:                       "ClassBody",
	KindMethodDefinition:                "MethodDefinition",
	KindPropertyDefinition:              "PropertyDefinition",
	KindStaticBlock:                     "StaticBlock",
	KindFormalParameter:                 "FormalParameter",
	KindDecorator:                       "Decorator",
	KindImportDeclaration:               "ImportDeclaration",
	KindImportSpecifier:                 "ImportSpecifier",
	KindImportDefaultSpecifier:          "ImportDefaultSpecifier",
	KindImportNamespaceSpecifier:        "ImportNamespaceSpecifier",
	KindExportNamedDeclaration:          "ExportNamedDeclaration",
	KindExportDefaultDeclaration:        "ExportDefaultDeclaration",
	KindExportAllDeclaration:            "ExportAllDeclaration",
	KindExportSpecifier:                 "ExportSpecifier",
	KindIdentifier:                      "Identifier",
	KindPrivateIdentifier:               "PrivateIdentifier",
	KindThisExpression:                  "ThisExpression",
	KindSuper:                           "Super",
	KindStringLiteral:                   "StringLiteral",
	KindNumericLiteral:                  "NumericLiteral",
	KindBigIntLiteral:                   "BigIntLiteral",
	KindBooleanLiteral:                  "BooleanLiteral",
	KindNullLiteral:                     "NullLiteral",
	KindRegExpLiteral:                   "RegExpLiteral",
	KindTemplateLiteral:                 "TemplateLiteral",
	KindTemplateElement:                 "TemplateElement",
	KindTaggedTemplateExpression:        "TaggedTemplateExpression",
	KindArrayExpression:                 "ArrayExpression",
	KindObjectExpression:                "ObjectExpression",
	KindProperty:                        "Property",
	KindSpreadElement:                   "SpreadElement",
	KindFunctionExpression:              "FunctionExpression",
	KindArrowFunctionExpression:         "ArrowFunctionExpression",
	KindClassExpression:                 "ClassExpression",
	KindCallExpression:                  "CallExpression",
	KindNewExpression:                   "NewExpression",
	KindImportExpression:                "ImportExpression",
	KindMemberExpression:                "MemberExpression",
	KindMetaProperty:                    "MetaProperty",
	KindUnaryExpression:                 "UnaryExpression",
	KindUpdateExpression:                "UpdateExpression",
	KindBinaryExpression:                "BinaryExpression",
	KindLogicalExpression:               "LogicalExpression",
	KindAssignmentExpression:            "AssignmentExpression",
	KindConditionalExpression:           "ConditionalExpression",
	KindSequenceExpression:              "SequenceExpression",
	KindYieldExpression:                 "YieldExpression",
	KindAwaitExpression:                 "AwaitExpression",
	KindParenthesizedExpression:         "ParenthesizedExpression",
	KindObjectPattern:                   "ObjectPattern",
	KindArrayPattern:                    "ArrayPattern",
	KindAssignmentPattern:               "AssignmentPattern",
	KindRestElement:                     "RestElement",
	KindJSXElement:                      "JSXElement",
	KindJSXOpeningElement:               "JSXOpeningElement",
	KindJSXClosingElement:               "JSXClosingElement",
	KindJSXFragment:                     "JSXFragment",
	KindJSXOpeningFragment:              "JSXOpeningFragment",
	KindJSXClosingFragment:              "JSXClosingFragment",
	KindJSXAttribute:                    "JSXAttribute",
	KindJSXSpreadAttribute:              "JSXSpreadAttribute",
	KindJSXIdentifier:                   "JSXIdentifier",
	KindJSXMemberExpression:             "JSXMemberExpression",
	KindJSXNamespacedName:               "JSXNamespacedName",
	KindJSXText:                         "JSXText",
	KindJSXExpressionContainer:          "JSXExpressionContainer",
	KindJSXEmptyExpression:              "JSXEmptyExpression",
	KindJSXSpreadChild:                  "JSXSpreadChild",
	KindTSTypeAliasDeclaration:          "TSTypeAliasDeclaration",
	KindTSInterfaceDeclaration:          "TSInterfaceDeclaration",
	KindTSInterfaceBody:                 "TSInterfaceBody",
	KindTSEnumDeclaration:               "TSEnumDeclaration",
	KindTSEnumMember:                    "TSEnumMember",
	KindTSModuleDeclaration:             "TSModuleDeclaration",
	KindTSModuleBlock:                   "TSModuleBlock",
	KindTSDeclareFunction:               "TSDeclareFunction",
	KindTSImportEqualsDeclaration:       "TSImportEqualsDeclaration",
	KindTSExportAssignment:              "TSExportAssignment",
	KindTSNamespaceExportDeclaration:    "TSNamespaceExportDeclaration",
	KindTSPropertySignature:             "TSPropertySignature",
	KindTSMethodSignature:               "TSMethodSignature",
	KindTSIndexSignature:                "TSIndexSignature",
	KindTSCallSignatureDeclaration:      "TSCallSignatureDeclaration",
	KindTSConstructSignatureDeclaration: "TSConstructSignatureDeclaration",
	KindTSTypeAnnotation:                "TSTypeAnnotation",
	KindTSTypeReference:                 "TSTypeReference",
	KindTSQualifiedName:                 "TSQualifiedName",
	KindTSTypeParameter:                 "TSTypeParameter",
	KindTSTypeParameterDeclaration:      "TSTypeParameterDeclaration",
	KindTSTypeParameterInstantiation:    "TSTypeParameterInstantiation",
	KindTSUnionType:                     "TSUnionType",
	KindTSIntersectionType:              "TSIntersectionType",
	KindTSArrayType:                     "TSArrayType",
	KindTSTupleType:                     "TSTupleType",
	KindTSFunctionType:                  "TSFunctionType",
	KindTSConstructorType:               "TSConstructorType",
	KindTSTypeLiteral:                   "TSTypeLiteral",
	KindTSLiteralType:                   "TSLiteralType",
	KindTSTemplateLiteralType:           "TSTemplateLiteralType",
	KindTSTypeQuery:                     "TSTypeQuery",
	KindTSTypeOperator:                  "TSTypeOperator",
	KindTSIndexedAccessType:             "TSIndexedAccessType",
	KindTSConditionalType:               "TSConditionalType",
	KindTSInferType:                     "TSInferType",
	KindTSMappedType:                    "TSMappedType",
	KindTSTypePredicate:                 "TSTypePredicate",
	KindTSParenthesizedType:             "TSParenthesizedType",
	KindTSThisType:                      "TSThisType",
	KindTSAnyKeyword:                    "TSAnyKeyword",
	KindTSUnknownKeyword:                "TSUnknownKeyword",
	KindTSNumberKeyword:                 "TSNumberKeyword",
	KindTSBigIntKeyword:                 "TSBigIntKeyword",
	KindTSBooleanKeyword:                "TSBooleanKeyword",
	KindTSStringKeyword:                 "TSStringKeyword",
	KindTSSymbolKeyword:                 "TSSymbolKeyword",
	KindTSObjectKeyword:                 "TSObjectKeyword",
	KindTSVoidKeyword:                   "TSVoidKeyword",
	KindTSUndefinedKeyword:              "TSUndefinedKeyword",
	KindTSNullKeyword:                   "TSNullKeyword",
	KindTSNeverKeyword:                  "TSNeverKeyword",
	KindTSIntrinsicKeyword:              "TSIntrinsicKeyword",
	KindTSAsExpression:                  "TSAsExpression",
	KindTSSatisfiesExpression:           "TSSatisfiesExpression",
	KindTSNonNullExpression:             "TSNonNullExpression",
	KindTSTypeAssertion:                 "TSTypeAssertion",
	KindTSInstantiationExpression:       "TSInstantiationExpression",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind returns the Kind with the given name. Names are case sensitive.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	if !ok || k == KindInvalid {
		return KindInvalid, false
	}
	return k, true
}

// Kinds returns every valid Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsStatement reports whether k is a statement or a declaration that may
// appear in statement position.
func (k Kind) IsStatement() bool {
	switch {
	case k >= KindExpressionStatement && k <= KindForOfStatement:
		return k != KindSwitchCase && k != KindCatchClause
	case k == KindVariableDeclaration, k == KindFunctionDeclaration, k == KindClassDeclaration:
		return true
	case k >= KindImportDeclaration && k <= KindExportAllDeclaration:
		return k == KindImportDeclaration || k == KindExportNamedDeclaration ||
			k == KindExportDefaultDeclaration || k == KindExportAllDeclaration
	case k >= KindTSTypeAliasDeclaration && k <= KindTSNamespaceExportDeclaration:
		return k != KindTSInterfaceBody && k != KindTSEnumMember && k != KindTSModuleBlock
	}
	return false
}

// IsExpression reports whether k is an expression.
func (k Kind) IsExpression() bool {
	switch {
	case k >= KindIdentifier && k <= KindParenthesizedExpression:
		return k != KindTemplateElement && k != KindProperty && k != KindSpreadElement
	case k >= KindJSXElement && k <= KindJSXFragment:
		return k == KindJSXElement || k == KindJSXFragment
	case k >= KindTSAsExpression && k <= KindTSInstantiationExpression:
		return true
	}
	return false
}

// IsJSX reports whether k belongs to the JSX extension.
func (k Kind) IsJSX() bool {
	return k >= KindJSXElement && k <= KindJSXSpreadChild
}

// IsTypeScript reports whether k belongs to the TypeScript extension.
func (k Kind) IsTypeScript() bool {
	return strings.HasPrefix(k.String(), "TS")
}

// IsLiteral reports whether k is a primitive literal.
func (k Kind) IsLiteral() bool {
	return k >= KindStringLiteral && k <= KindRegExpLiteral
}
