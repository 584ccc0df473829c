package parser

import (
	"testing"

	"github.com/dhamidi/jsast/js/ast"
)

// firstOfKind returns the first node of kind k in pre-order.
func firstOfKind(root ast.Node, k ast.Kind) ast.Node {
	for _, n := range collect(root) {
		if n.Kind() == k {
			return n
		}
	}
	return ast.Node{}
}

func TestConvertKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  Config
		want []ast.Kind
	}{
		{"literals", `[1, 2n, "s", /re/g, true, null, this];`, Config{},
			[]ast.Kind{ast.KindArrayExpression, ast.KindNumericLiteral, ast.KindBigIntLiteral, ast.KindStringLiteral, ast.KindRegExpLiteral, ast.KindBooleanLiteral, ast.KindNullLiteral, ast.KindThisExpression}},
		{"operators", "a = (b + c && !d) ?? e; x++; --y; z **= 2; q ? r : s; (t, u);", Config{},
			[]ast.Kind{ast.KindAssignmentExpression, ast.KindBinaryExpression, ast.KindLogicalExpression, ast.KindUnaryExpression, ast.KindUpdateExpression, ast.KindConditionalExpression, ast.KindSequenceExpression, ast.KindParenthesizedExpression}},
		{"calls", "new A(1); f?.(x)[0].y; tag`t${v}`; import('m');", Config{},
			[]ast.Kind{ast.KindNewExpression, ast.KindCallExpression, ast.KindMemberExpression, ast.KindTaggedTemplateExpression, ast.KindTemplateLiteral, ast.KindTemplateElement, ast.KindImportExpression}},
		{"functions", "async function* g() { yield* a; await b; } const h = async (x) => x;", Config{},
			[]ast.Kind{ast.KindFunctionDeclaration, ast.KindYieldExpression, ast.KindAwaitExpression, ast.KindArrowFunctionExpression, ast.KindFormalParameter}},
		{"classes", "class A extends B { static #p = 1; get x() { return super.x; } static { } }", Config{},
			[]ast.Kind{ast.KindClassDeclaration, ast.KindClassBody, ast.KindPropertyDefinition, ast.KindPrivateIdentifier, ast.KindMethodDefinition, ast.KindSuper, ast.KindStaticBlock}},
		{"patterns", "const {a, b: [c = 1], ...d} = e; function f(...r) {}", Config{},
			[]ast.Kind{ast.KindObjectPattern, ast.KindArrayPattern, ast.KindAssignmentPattern, ast.KindRestElement, ast.KindProperty}},
		{"statements", "a: while (x) { do { break a; } while (y); } for (;;) {} for (k in o) {} switch (v) { case 1: default: } try { throw e; } catch { } finally { } if (a) {} else ;", Config{SourceType: SourceScript},
			[]ast.Kind{ast.KindLabeledStatement, ast.KindWhileStatement, ast.KindDoWhileStatement, ast.KindBreakStatement, ast.KindForStatement, ast.KindForInStatement, ast.KindSwitchStatement, ast.KindSwitchCase, ast.KindTryStatement, ast.KindThrowStatement, ast.KindCatchClause, ast.KindIfStatement, ast.KindEmptyStatement}},
		{"modules", `import d, * as ns from "m"; import {x as y} from "n"; export {y as z}; export * from "o"; export default 1;`, Config{},
			[]ast.Kind{ast.KindImportDeclaration, ast.KindImportDefaultSpecifier, ast.KindImportNamespaceSpecifier, ast.KindImportSpecifier, ast.KindExportNamedDeclaration, ast.KindExportSpecifier, ast.KindExportAllDeclaration, ast.KindExportDefaultDeclaration}},
		{"meta", "function F() { return new.target; } import.meta;", Config{},
			[]ast.Kind{ast.KindMetaProperty}},
		{"jsx", `<A.B x="1" {...p} on:y={z}><>text {c}</></A.B>;`, Config{Language: LangJSX},
			[]ast.Kind{ast.KindJSXElement, ast.KindJSXOpeningElement, ast.KindJSXClosingElement, ast.KindJSXMemberExpression, ast.KindJSXAttribute, ast.KindJSXSpreadAttribute, ast.KindJSXNamespacedName, ast.KindJSXFragment, ast.KindJSXText, ast.KindJSXExpressionContainer}},
		{"ts declarations", "interface I<T extends object = {}> extends J { a?: string; m(): void; [k: string]: any; new (): I<T>; (): void }\ntype U = A | B & C;\nenum E { X = 1, Y }\nnamespace N { export const v = 1; }\ndeclare function f(x: number): string;", Config{Language: LangTS},
			[]ast.Kind{ast.KindTSInterfaceDeclaration, ast.KindTSInterfaceBody, ast.KindTSTypeParameterDeclaration, ast.KindTSTypeParameter, ast.KindTSPropertySignature, ast.KindTSMethodSignature, ast.KindTSIndexSignature, ast.KindTSConstructSignatureDeclaration, ast.KindTSCallSignatureDeclaration, ast.KindTSTypeAliasDeclaration, ast.KindTSUnionType, ast.KindTSIntersectionType, ast.KindTSEnumDeclaration, ast.KindTSEnumMember, ast.KindTSModuleDeclaration, ast.KindTSModuleBlock, ast.KindTSDeclareFunction}},
		{"ts types", "let a: string[] = []; let b: [number, string?]; let c: (x: number) => void; let d: keyof T; let e: T[K]; let f: T extends U ? X : Y; let g: { [K in keyof T]?: T[K] }; let h: typeof a; let i: `x${string}`; let j: 'lit';", Config{Language: LangTS},
			[]ast.Kind{ast.KindTSTypeAnnotation, ast.KindTSArrayType, ast.KindTSStringKeyword, ast.KindTSTupleType, ast.KindTSFunctionType, ast.KindTSVoidKeyword, ast.KindTSTypeOperator, ast.KindTSIndexedAccessType, ast.KindTSConditionalType, ast.KindTSMappedType, ast.KindTSTypeQuery, ast.KindTSTemplateLiteralType, ast.KindTSLiteralType}},
		{"ts expressions", "x as T; y!; z satisfies U; const w = [1] as const;", Config{Language: LangTS},
			[]ast.Kind{ast.KindTSAsExpression, ast.KindTSNonNullExpression, ast.KindTSSatisfiesExpression}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src, tt.cfg)
			if !res.IsValid() {
				t.Fatalf("diagnostics: %v", res.Diagnostics())
			}
			got := kindsOf(collect(mustProgram(t, res)))
			for _, k := range tt.want {
				if got[k] == 0 {
					t.Errorf("no %s node", k)
				}
			}
			if got[ast.KindUnknown] != 0 || got[ast.KindError] != 0 {
				prog, _ := res.Program()
				t.Errorf("unconverted nodes:\n%s", prog)
			}
		})
	}
}

func TestConvertDetails(t *testing.T) {
	t.Run("string value is cooked", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, `"aA\n";`, Config{}))
		lit := firstOfKind(prog, ast.KindStringLiteral)
		if lit.Name() != `"aA\n"` || lit.Value() != "aA\n" {
			t.Errorf("literal = %q / %q", lit.Name(), lit.Value())
		}
	})

	t.Run("shorthand property stores value only", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, "({a, b: c});", Config{}))
		props := firstOfKind(prog, ast.KindObjectExpression).List(ast.FieldProperties)
		if len(props) != 2 {
			t.Fatalf("len(properties) = %d, want 2", len(props))
		}
		if !props[0].Has(ast.FlagShorthand) || !props[0].Child(ast.FieldKey).IsZero() {
			t.Errorf("shorthand property = %s", props[0])
		}
		if got := props[0].Child(ast.FieldValue).Name(); got != "a" {
			t.Errorf("shorthand value = %q, want a", got)
		}
		if props[1].Has(ast.FlagShorthand) || props[1].Child(ast.FieldKey).Name() != "b" {
			t.Errorf("keyed property = %s", props[1])
		}
	})

	t.Run("template quasis interleave", func(t *testing.T) {
		src := "`a${x}b${y}`;"
		prog := mustProgram(t, mustParse(t, src, Config{}))
		tpl := firstOfKind(prog, ast.KindTemplateLiteral)
		var got []string
		tpl.Each(func(f ast.Field, ch ast.Node) bool {
			got = append(got, f.String()+":"+ch.Text(src))
			return true
		})
		want := []string{"quasis:a", "expressions:x", "quasis:b", "expressions:y", "quasis:"}
		if len(got) != len(want) {
			t.Fatalf("children = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("child %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("directive prologue", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, "'use strict'; 'other'; x; 'late';", Config{SourceType: SourceScript}))
		body := prog.List(ast.FieldBody)
		if len(body) != 4 {
			t.Fatalf("len(body) = %d", len(body))
		}
		for i, want := range []bool{true, true, false, false} {
			if got := body[i].Has(ast.FlagDirective); got != want {
				t.Errorf("body[%d] directive = %t, want %t", i, got, want)
			}
		}
		if body[0].Name() != "use strict" {
			t.Errorf("directive Name() = %q", body[0].Name())
		}
	})

	t.Run("function view", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, "export async function load(a, {b}) {}", Config{}))
		fn, ok := firstOfKind(prog, ast.KindFunctionDeclaration).AsFunction()
		if !ok {
			t.Fatal("AsFunction() = false")
		}
		if fn.Name() != "load" || !fn.IsAsync() || fn.IsGenerator() || len(fn.Params()) != 2 {
			t.Errorf("function = %s async=%t params=%d", fn.Name(), fn.IsAsync(), len(fn.Params()))
		}
	})

	t.Run("method kinds", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, "class A { constructor() {} get x() {} set x(v) {} m() {} }", Config{}))
		var got []string
		for _, m := range collect(prog) {
			if m.Kind() == ast.KindMethodDefinition {
				got = append(got, m.Name())
			}
		}
		want := []string{"constructor", "get", "set", "method"}
		if len(got) != len(want) {
			t.Fatalf("method kinds = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("method %d kind = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("jsx element", func(t *testing.T) {
		src := `<Foo.Bar id="a&amp;b" disabled>hi &lt; there</Foo.Bar>;`
		prog := mustProgram(t, mustParse(t, src, Config{Language: LangJSX}))
		el, ok := firstOfKind(prog, ast.KindJSXElement).AsJSXElement()
		if !ok {
			t.Fatal("no JSX element")
		}
		if el.TagName() != "Foo.Bar" {
			t.Errorf("TagName() = %q", el.TagName())
		}
		attrs := el.Attributes()
		if len(attrs) != 2 {
			t.Fatalf("len(Attributes()) = %d, want 2", len(attrs))
		}
		if v := attrs[0].Child(ast.FieldValue).Value(); v != "a&b" {
			t.Errorf("attribute value = %q, want a&b", v)
		}
		if !attrs[1].Child(ast.FieldValue).IsZero() {
			t.Error("valueless attribute has a value")
		}
		kids := el.JSXChildren()
		if len(kids) != 1 || kids[0].Kind() != ast.KindJSXText || kids[0].Value() != "hi < there" {
			t.Errorf("children = %v", kids)
		}
	})

	t.Run("ts interface view", func(t *testing.T) {
		prog := mustProgram(t, mustParse(t, "interface Point { x: number; y: number }", Config{Language: LangTS}))
		iface, ok := prog.List(ast.FieldBody)[0].AsInterface()
		if !ok {
			t.Fatal("AsInterface() = false")
		}
		if iface.Name() != "Point" || len(iface.Members()) != 2 {
			t.Errorf("interface %q with %d members", iface.Name(), len(iface.Members()))
		}
	})

	t.Run("import.meta", func(t *testing.T) {
		for _, lang := range []Language{LangJS, LangTS} {
			src := "console.log(import.meta.url);"
			prog := mustProgram(t, mustParse(t, src, Config{Language: lang}))
			meta := firstOfKind(prog, ast.KindMetaProperty)
			if meta.IsZero() {
				t.Fatalf("%s: no MetaProperty in\n%s", lang, prog)
			}
			if meta.Name() != "import.meta" || meta.Text(src) != "import.meta" {
				t.Errorf("%s: meta property = %q %q", lang, meta.Name(), meta.Text(src))
			}
			if got := meta.Child(ast.FieldProperty).Name(); got != "meta" {
				t.Errorf("%s: property = %q, want meta", lang, got)
			}
			var url ast.Node
			for _, n := range collect(prog) {
				if n.Kind() == ast.KindMemberExpression && n.Child(ast.FieldProperty).Name() == "url" {
					url = n
				}
			}
			if url.Child(ast.FieldObject) != meta {
				t.Errorf("%s: object of .url = %s, want the meta property", lang, url.Child(ast.FieldObject).Kind())
			}
		}
	})

	t.Run("declare widens span", func(t *testing.T) {
		src := "declare const x: number;"
		prog := mustProgram(t, mustParse(t, src, Config{Language: LangTS}))
		decl := prog.List(ast.FieldBody)[0]
		if decl.Kind() != ast.KindVariableDeclaration || !decl.Has(ast.FlagDeclare) {
			t.Fatalf("body[0] = %s %s", decl.Kind(), decl.Flags())
		}
		if decl.Span().Start != 0 {
			t.Errorf("span = %v, want start 0", decl.Span())
		}
	})
}
