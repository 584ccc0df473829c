package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsast/js/parser"
)

const outlineSrc = `/** Greets someone. Politely. */
export function greet(name: string) {
  const local = 1;
}
class Point {
  x = 0;
  constructor() {}
  get len() { return 0; }
}
const config = { port: 80, start() {} };
let a = 1, b = 2;
interface Shape { area(): number; name: string }
type ID = string;
enum Color { Red, Green }
namespace NS { export const v = 1; }
`

func extract(t *testing.T, src string, opts ...Option) []*Symbol {
	t.Helper()
	res, err := parser.Parse(src, parser.Config{Language: parser.LangTS})
	require.NoError(t, err)
	require.True(t, res.IsValid(), "diagnostics: %v", res.Diagnostics())
	prog, ok := res.Program()
	require.True(t, ok)
	opts = append(opts, WithComments(res.Comments()))
	return Extract(prog, src, opts...)
}

type flat struct {
	Kind  Kind
	Name  string
	Depth int
}

func flatten(syms []*Symbol) []flat {
	var out []flat
	for _, s := range syms {
		out = append(out, flat{s.Kind, s.Name, s.Depth})
		out = append(out, flatten(s.Children)...)
	}
	return out
}

func TestExtract(t *testing.T) {
	syms := extract(t, outlineSrc)

	want := []flat{
		{KindFunction, "greet", 0},
		{KindClass, "Point", 0},
		{KindProperty, "x", 1},
		{KindConstructor, "constructor", 1},
		{KindMethod, "len", 1},
		{KindConstant, "config", 0},
		{KindProperty, "port", 1},
		{KindMethod, "start", 1},
		{KindVariable, "a", 0},
		{KindVariable, "b", 0},
		{KindInterface, "Shape", 0},
		{KindMethod, "area", 1},
		{KindProperty, "name", 1},
		{KindTypeAlias, "ID", 0},
		{KindEnum, "Color", 0},
		{KindEnumMember, "Red", 1},
		{KindEnumMember, "Green", 1},
		{KindModule, "NS", 0},
		{KindConstant, "v", 1},
	}
	assert.Equal(t, want, flatten(syms))
}

func TestExtractDetails(t *testing.T) {
	syms := extract(t, outlineSrc)
	require.NotEmpty(t, syms)

	greet := syms[0]
	assert.True(t, greet.Exported)
	assert.Equal(t, 2, greet.StartLine)
	assert.Equal(t, 4, greet.EndLine)
	assert.Equal(t, "Greets someone.", greet.Summary())
	assert.Equal(t, "greet", outlineSrc[greet.NameSpan.Start:greet.NameSpan.End])

	point := syms[1]
	assert.False(t, point.Exported)
	assert.Nil(t, point.Doc)
	require.Len(t, point.Children, 3)
	assert.Equal(t, "get", point.Children[2].Detail)

	a := syms[3]
	assert.Equal(t, "let", a.Detail)
	assert.Equal(t, "a = 1", outlineSrc[a.Span.Start:a.Span.End])

	ns := syms[len(syms)-1]
	assert.Equal(t, "namespace", ns.Detail)
	require.Len(t, ns.Children, 1)
	assert.True(t, ns.Children[0].Exported)
}

func TestExtractLocals(t *testing.T) {
	syms := extract(t, outlineSrc, WithLocals())
	require.NotEmpty(t, syms)
	require.Len(t, syms[0].Children, 1)
	assert.Equal(t, "local", syms[0].Children[0].Name)
}

func TestExtractFunctionValues(t *testing.T) {
	src := "const f = async () => { let hidden; };\nexport default class {}\n"
	syms := extract(t, src)
	assert.Equal(t, []flat{
		{KindFunction, "f", 0},
		{KindClass, "default", 0},
	}, flatten(syms))
	assert.True(t, syms[1].Exported)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "enum-member", KindEnumMember.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
