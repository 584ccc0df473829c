package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/jsast/js/ast"
	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, src string, cfg Config, opts ...Option) *Result {
	t.Helper()
	res, err := Parse(src, cfg, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return res
}

func mustProgram(t *testing.T, res *Result) ast.Node {
	t.Helper()
	prog, ok := res.Program()
	if !ok {
		t.Fatalf("no program; diagnostics: %v", res.Diagnostics())
	}
	return prog
}

// collect returns every node below n in pre-order, n included.
func collect(n ast.Node) []ast.Node {
	out := []ast.Node{n}
	n.Each(func(_ ast.Field, ch ast.Node) bool {
		out = append(out, collect(ch)...)
		return true
	})
	return out
}

func kindsOf(nodes []ast.Node) map[ast.Kind]int {
	m := make(map[ast.Kind]int)
	for _, n := range nodes {
		m[n.Kind()]++
	}
	return m
}

func TestParseValidDeclaration(t *testing.T) {
	src := "const x = 42;"
	res := mustParse(t, src, Config{})
	if !res.IsValid() {
		t.Fatalf("IsValid() = false, diagnostics: %v", res.Diagnostics())
	}
	prog := mustProgram(t, res)
	if prog.Kind() != ast.KindProgram {
		t.Fatalf("root kind = %s, want Program", prog.Kind())
	}
	if got := prog.Span(); got != (ast.Span{Start: 0, End: len(src)}) {
		t.Errorf("program span = %v, want 0..%d", got, len(src))
	}

	body := prog.List(ast.FieldBody)
	if len(body) != 1 {
		t.Fatalf("len(body) = %d, want 1", len(body))
	}
	decl, ok := body[0].AsVariableDeclaration()
	if !ok {
		t.Fatalf("body[0] = %s, want VariableDeclaration", body[0].Kind())
	}
	if decl.DeclarationKind() != "const" {
		t.Errorf("DeclarationKind() = %q, want %q", decl.DeclarationKind(), "const")
	}
	ds := decl.Declarations()
	if len(ds) != 1 {
		t.Fatalf("len(Declarations()) = %d, want 1", len(ds))
	}
	d, ok := ds[0].AsDeclarator()
	if !ok {
		t.Fatalf("Declarations()[0] = %s, want VariableDeclarator", ds[0].Kind())
	}
	if got := d.ID().Name(); got != "x" {
		t.Errorf("id = %q, want %q", got, "x")
	}
	init := d.Init()
	if init.Kind() != ast.KindNumericLiteral || init.Name() != "42" {
		t.Errorf("init = %s %q, want NumericLiteral \"42\"", init.Kind(), init.Name())
	}
}

func TestParseRecoversFromErrors(t *testing.T) {
	src := "const x = ;"
	res := mustParse(t, src, Config{})
	if res.IsValid() {
		t.Fatal("IsValid() = true for malformed input")
	}
	if len(res.Diagnostics()) == 0 {
		t.Fatal("no diagnostics for malformed input")
	}
	if res.Panicked() {
		t.Fatal("Panicked() = true")
	}
	prog := mustProgram(t, res)

	found := false
	for _, n := range collect(prog) {
		switch n.Kind() {
		case ast.KindVariableDeclaration, ast.KindError:
			if strings.HasPrefix(n.Text(src), "const") {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("no node covering the declaration:\n%s", prog.StringWithPositions())
	}
	for _, d := range res.Diagnostics() {
		if d.Span == nil {
			t.Errorf("diagnostic %q has no span", d.Message)
		}
	}
}

func TestParseAlwaysReturnsProgram(t *testing.T) {
	inputs := []string{
		"",
		"}",
		"function (",
		"class { x",
		"a = `unterminated ${",
		"if (a) else {}",
		"let [a, = b;",
		"((((",
	}
	for _, src := range inputs {
		res := mustParse(t, src, Config{})
		prog := mustProgram(t, res)
		if prog.Kind() != ast.KindProgram {
			t.Errorf("Parse(%q) root = %s", src, prog.Kind())
		}
		if res.Panicked() {
			t.Errorf("Parse(%q) panicked: %v", src, res.Diagnostics())
		}
	}
}

func TestEmptyProgram(t *testing.T) {
	res := mustParse(t, "", Config{})
	prog := mustProgram(t, res)
	if prog.Len() != 0 {
		t.Errorf("empty program has %d children", prog.Len())
	}
	if !res.IsValid() {
		t.Errorf("empty program invalid: %v", res.Diagnostics())
	}
}

func TestLineRange(t *testing.T) {
	src := "let a = 1;\nlet b = 2;\nfunction f() {\n  return a;\n}\n"
	prog := mustProgram(t, mustParse(t, src, Config{}))
	body := prog.List(ast.FieldBody)
	if len(body) != 3 {
		t.Fatalf("len(body) = %d, want 3", len(body))
	}
	tests := []struct {
		stmt       int
		start, end int
	}{
		{0, 1, 1},
		{1, 2, 2},
		{2, 3, 5},
	}
	for _, tt := range tests {
		s, e := body[tt.stmt].LineRange(src)
		if s != tt.start || e != tt.end {
			t.Errorf("body[%d].LineRange() = (%d, %d), want (%d, %d)", tt.stmt, s, e, tt.start, tt.end)
		}
	}
}

func TestSpansNest(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  Config
	}{
		{"js", `import {a as b} from "m";
export default class C extends B {
  #x = 1;
  static { this.y = [1, ...b]; }
  async *gen(p = 1, ...rest) { yield* p; await q; }
}
const {k, m: [n] = [], ...o} = obj ?? {};
label: for (const v of list) { if (!v) continue label; }
`, Config{}},
		{"ts", `abstract class S<T> implements I {
  private readonly x: T;
  constructor(public y?: number) { super(); }
  abstract m<U extends keyof T>(u: U): Promise<T[U]>;
}
export type R = { [K in keyof S<any>]?: S<any>[K] } | undefined;
enum E { A = 1 << 0, B }
function isS(x: unknown): x is string { return typeof x === "string" && y! > 0; }
`, Config{Language: LangTS}},
		{"jsx", `const el = <ul className="x">{items.map(i => <li key={i}>{i}</li>)}<br /></ul>;`, Config{Language: LangJSX}},
		{"tsx", `export function View<P>({a}: P & {a: string}) { return <><b>{a as string}</b></>; }`, Config{Language: LangTSX}},
		{"recovered js", "function f( { let = ; }\nconst ok = 1;\nif (x { y(); }", Config{}},
		{"recovered ts", "interface I { a: ; }\nlet z: number = ;\nclass { }", Config{Language: LangTS}},
		{"recovered tsx", "const a = <div>{x</div>;\nconst b: = 2;", Config{Language: LangTSX}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src, tt.cfg)
			if !strings.HasPrefix(tt.name, "recovered") && !res.IsValid() {
				t.Fatalf("diagnostics: %v", res.Diagnostics())
			}
			var check func(n ast.Node)
			check = func(n ast.Node) {
				n.Each(func(f ast.Field, ch ast.Node) bool {
					if !n.Span().Contains(ch.Span()) {
						t.Errorf("%s %v does not contain %s child %s %v", n.Kind(), n.Span(), f, ch.Kind(), ch.Span())
					}
					check(ch)
					return true
				})
			}
			check(mustProgram(t, res))
		})
	}
}

// selfParsable reports whether the text of statement n parses to the same
// kind on its own. Anonymous function and class declarations only exist
// after "export default"; alone they are not a statement.
func selfParsable(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindFunctionDeclaration, ast.KindClassDeclaration:
		return !n.Child(ast.FieldID).IsZero()
	}
	return n.Kind().IsStatement()
}

func TestStatementTextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cfg  Config
	}{
		{"js", `import def, {a as b} from "m";
export const x = 1, y = [2, ...b];
export default function main(p = {q: 1}) { return p.q ?? def; }
class C extends Base { static count = 0; get n() { return this.m; } }
if (x) { y(); } else if (z) w(); else { }
for (let i = 0; i < 3; i++) continue;
for (const k in obj) {}
while (a) break;
do { a--; } while (a > 0);
switch (v) { case 1: f(); break; default: g(); }
try { risky(); } catch ({message}) { log(message); } finally { done(); }
label: { throw new Error("x"); }
;
`, Config{}},
		{"ts", `interface P<T> extends Q { a: T; m(): void }
type U = string | number;
enum Dir { Up = 1, Down }
namespace N { export declare const v: number; }
declare function f(x: number): string;
abstract class A<T> { abstract run(t: T): void; }
let n: number = 1 as number;
export type { U as V };
`, Config{Language: LangTS}},
		{"jsx", `const el = <div className="a">{list.map(i => <span key={i}>{i}</span>)}</div>;
function App() { return <><Child {...props} /></>; }
`, Config{Language: LangJSX}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src, tt.cfg)
			if !res.IsValid() {
				t.Fatalf("diagnostics: %v", res.Diagnostics())
			}
			for _, n := range collect(mustProgram(t, res)) {
				if !selfParsable(n) {
					continue
				}
				text := n.Text(tt.src)
				again := mustProgram(t, mustParse(t, text, tt.cfg))
				body := again.List(ast.FieldBody)
				if len(body) == 0 {
					t.Errorf("%s %q reparsed to an empty program", n.Kind(), text)
					continue
				}
				if body[0].Kind() != n.Kind() {
					t.Errorf("%s %q reparsed as %s", n.Kind(), text, body[0].Kind())
				}
			}
		})
	}
}

func TestArenaReuse(t *testing.T) {
	sources := []string{
		"function f(a, b) { return a + b; }",
		"const {x, y} = point; x = `${y}px`;",
		"class A extends B { constructor() { super(); } }",
	}
	shared := ast.NewArena()
	p := New(WithArena(shared))
	for _, src := range sources {
		shared.Reset()
		res, err := p.Parse(src, Config{})
		if err != nil {
			t.Fatal(err)
		}
		reused := mustProgram(t, res).StringWithPositions()

		fresh := mustProgram(t, mustParse(t, src, Config{})).StringWithPositions()
		if diff := cmp.Diff(fresh, reused); diff != "" {
			t.Errorf("tree from reused arena differs (-fresh +reused):\n%s", diff)
		}
	}
	if st := shared.Stats(); st.Resets != len(sources) {
		t.Errorf("Resets = %d, want %d", st.Resets, len(sources))
	}
}

func TestStaleNodeAfterReset(t *testing.T) {
	a := ast.NewArena()
	res := mustParse(t, "x;", Config{}, WithArena(a))
	prog := mustProgram(t, res)
	a.Reset()
	if err := prog.Err(); err == nil {
		t.Fatal("Err() = nil after reset")
	}
	defer func() {
		if r := recover(); !ast.IsStale(r) {
			t.Errorf("recover() = %v, want stale node panic", r)
		}
	}()
	prog.Kind()
}

func TestComments(t *testing.T) {
	src := "// first\r\nlet a; /* second */\n/** third */\nfunction f() { // fourth\n}\n"
	res := mustParse(t, src, Config{})
	cs := res.Comments()
	want := []struct {
		text  string
		block bool
		doc   bool
	}{
		{" first", false, false},
		{" second ", true, false},
		{"* third ", true, true},
		{" fourth", false, false},
	}
	if len(cs) != len(want) {
		t.Fatalf("len(Comments()) = %d, want %d", len(cs), len(want))
	}
	prev := -1
	for i, w := range want {
		c := cs[i]
		if c.Text != w.text || c.IsBlock() != w.block || c.IsDoc() != w.doc {
			t.Errorf("comment %d = %q block=%t doc=%t, want %q block=%t doc=%t", i, c.Text, c.IsBlock(), c.IsDoc(), w.text, w.block, w.doc)
		}
		if c.Span.Start <= prev {
			t.Errorf("comment %d out of order", i)
		}
		prev = c.Span.Start
	}
	if got := cs[0].Span.Text(src); got != "// first" {
		t.Errorf("first comment span text = %q", got)
	}
	for _, n := range collect(mustProgram(t, res)) {
		if n.Kind() == ast.KindUnknown {
			t.Errorf("comment leaked into tree as %q", n.Name())
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	src := "let a = \"ok\";\nlet b = \"\xff\";"
	_, err := Parse(src, Config{}, WithFile("bad.js"))
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error = %v, want *EncodingError", err)
	}
	if want := strings.IndexByte(src, 0xff); encErr.Offset != want {
		t.Errorf("Offset = %d, want %d", encErr.Offset, want)
	}
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Error("errors.Is(err, ErrInvalidUTF8) = false")
	}
	if !strings.HasPrefix(err.Error(), "bad.js: ") {
		t.Errorf("Error() = %q, want file prefix", err.Error())
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := Parse("x", Config{ECMAVersion: 7})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if cfgErr.Option != "ecma_version" {
		t.Errorf("Option = %q, want ecma_version", cfgErr.Option)
	}
}

func TestAutoSourceType(t *testing.T) {
	tests := []struct {
		src  string
		want SourceType
	}{
		{"var x = 1;", SourceScript},
		{"import x from 'y';", SourceModule},
		{"export const a = 1;", SourceModule},
		{"console.log(import.meta.url);", SourceModule},
		{"if (x) { f(import.meta); }", SourceModule},
		{"function f() { return import('x'); }", SourceScript},
	}
	for _, tt := range tests {
		res := mustParse(t, tt.src, Config{SourceType: SourceAuto})
		if res.SourceType() != tt.want {
			t.Errorf("Parse(%q).SourceType() = %s, want %s", tt.src, res.SourceType(), tt.want)
		}
		if got := mustProgram(t, res).Name(); got != tt.want.String() {
			t.Errorf("program Name() = %q, want %q", got, tt.want)
		}
	}
}

// diagCodes returns the distinct diagnostic codes of res in order.
func diagCodes(res *Result) []string {
	var out []string
	seen := make(map[string]bool)
	for _, d := range res.Diagnostics() {
		if !seen[d.Code] {
			seen[d.Code] = true
			out = append(out, d.Code)
		}
	}
	return out
}

func TestDiagnostics(t *testing.T) {
	yes := true
	tests := []struct {
		name string
		src  string
		cfg  Config
		want []string
	}{
		{"with in module", "with (a) {}", Config{}, []string{"strict-mode"}},
		{"with in script", "with (a) {}", Config{SourceType: SourceScript}, nil},
		{"with under use strict", "'use strict';\nwith (a) {}", Config{SourceType: SourceScript}, []string{"strict-mode"}},
		{"strict override", "with (a) {}", Config{SourceType: SourceScript, Strict: &yes}, []string{"strict-mode"}},
		{"use strict is function scoped", "function f() { 'use strict'; }\nwith (a) {}", Config{SourceType: SourceScript}, nil},
		{"class bodies are strict", "class A { m() { with (a) {} } }", Config{SourceType: SourceScript}, []string{"strict-mode"}},
		{"delete identifier", "delete x;", Config{}, []string{"strict-mode"}},
		{"legacy octal", "var n = 017;", Config{}, []string{"strict-mode"}},
		{"let in es5", "let x = 1;", Config{ECMAVersion: ES5}, []string{"ecma-version"}},
		{"arrow in es5", "var f = () => 1;", Config{ECMAVersion: ES5, SourceType: SourceScript}, []string{"ecma-version"}},
		{"optional chaining in es2019", "a?.b;", Config{ECMAVersion: ES2019}, []string{"ecma-version"}},
		{"optional chaining in es2020", "a?.b;", Config{ECMAVersion: ES2020}, nil},
		{"import.meta in es2019", "import.meta.url;", Config{ECMAVersion: ES2019}, []string{"ecma-version"}},
		{"import.meta in es2020", "import.meta.url;", Config{ECMAVersion: ES2020}, nil},
		{"exponent in es2015", "a ** b;", Config{ECMAVersion: ES2015}, []string{"ecma-version"}},
		{"regexp v flag", "/a/v;", Config{ECMAVersion: ES2023}, []string{"ecma-version"}},
		{"jsx in js", "<div />;", Config{}, []string{"jsx"}},
		{"jsx in jsx", "<div />;", Config{Language: LangJSX}, nil},
		{"syntax error", "let = ;", Config{}, []string{"syntax"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustParse(t, tt.src, tt.cfg)
			if diff := cmp.Diff(tt.want, diagCodes(res)); diff != "" {
				t.Errorf("diagnostic codes mismatch (-want +got):\n%s\n%v", diff, res.Diagnostics())
			}
		})
	}
}

func TestDiagnosticsSorted(t *testing.T) {
	res := mustParse(t, "let a = 017;\nwith (b) {}\nlet c = 08n;", Config{})
	ds := res.Diagnostics()
	for i := 1; i < len(ds); i++ {
		if ds[i].Span.Start < ds[i-1].Span.Start {
			t.Errorf("diagnostic %d (%q) before %d (%q)", i, ds[i].Message, i-1, ds[i-1].Message)
		}
	}
}

func TestVersionMessage(t *testing.T) {
	res := mustParse(t, "async function f() {}", Config{ECMAVersion: ES2015})
	ds := res.Diagnostics()
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %v, want 1", ds)
	}
	want := "Async function syntax requires es2017 or later (configured: es2015)"
	if ds[0].Message != want {
		t.Errorf("Message = %q, want %q", ds[0].Message, want)
	}
}
