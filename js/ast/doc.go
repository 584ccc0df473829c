// Package ast defines the syntax tree produced by the parser for
// JavaScript, TypeScript, JSX and TSX.
//
// # Nodes
//
// Every node lives in an [Arena]. A [Node] is a small handle (arena,
// index, generation) rather than a pointer, and all nodes share one
// representation: a [Kind] tag, a byte [Span], a set of [Flags], two
// string attributes and an ordered list of children. Each child is stored
// under a [Field] that names its role in the parent, mirroring ESTree
// property names:
//
//	decl := program.At(0)                      // VariableDeclaration
//	for _, d := range decl.List(ast.FieldDeclarations) {
//		fmt.Println(d.Child(ast.FieldID).Name())
//	}
//
// Children are kept in source order, and a node's span always covers the
// spans of its children. There are no parent pointers; the walk package
// reconstructs parents during traversal.
//
// # Attributes
//
// Name and Value hold the scalar parts of a node:
//
//	Identifier, PrivateIdentifier, JSXIdentifier   Name: the identifier
//	StringLiteral, TemplateElement                 Name: raw text, Value: cooked value
//	NumericLiteral, BigIntLiteral, BooleanLiteral  Name: raw text
//	RegExpLiteral                                  Name: raw text, Value: pattern
//	Binary, Logical, Assignment, Unary, Update     Name: operator
//	VariableDeclaration                            Name: var, let, const, using
//	MethodDefinition, Property                     Name: method, get, set, init, constructor
//	Error                                          Name: what was expected or found
//	Unknown                                        Name: grammar production
//
// # Views
//
// Kind-specific access goes through views such as [Node.AsFunction] or
// [Node.AsImport], which report whether the node has the requested shape.
//
// # Lifetime
//
// Resetting an Arena invalidates every node allocated from it. Handles
// carry the generation they were created in, so a stale handle panics
// with a [*StaleNodeError] instead of reading another tree's data.
// [Node.Err] performs the same check without panicking.
package ast
