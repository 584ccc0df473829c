// Package parser turns JavaScript, JSX, TypeScript and TSX source text into
// an arena-backed ast tree.
//
// Parsing is done by tree-sitter grammars; the concrete syntax tree is then
// converted into ESTree-shaped nodes in a single pass. Malformed input never
// makes Parse fail. Syntax errors become diagnostics and the affected region
// becomes Error nodes, so the rest of the file still converts normally:
//
//	res, err := parser.Parse(src, parser.Config{Language: parser.LangTS})
//	if err != nil {
//		return err // invalid UTF-8 or an invalid Config
//	}
//	prog, _ := res.Program()
//	for _, d := range res.Diagnostics() {
//		fmt.Println(d)
//	}
//
// Besides syntax errors the converter reports three further classes of
// diagnostic, identified by Diagnostic.Code:
//
//	ecma-version  syntax newer than Config.ECMAVersion
//	strict-mode   syntax forbidden in strict code (with, octal literals, ...)
//	jsx           JSX found while parsing plain JavaScript
//
// # Arenas
//
// Every parse allocates its nodes in an ast.Arena. Without WithArena each
// call gets a fresh arena; a long-running caller can instead reuse one
// arena and Reset it between parses. Nodes from before a reset panic when
// used.
package parser
