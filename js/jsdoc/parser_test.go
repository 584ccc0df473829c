package jsdoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/jsast/js/ast"
)

const addDoc = `/**
 * Adds two numbers.
 *
 * @param {number} a - first
 * @param {number} [b=1] second
 * @returns {number} the sum
 */`

func TestParseParamsAndReturns(t *testing.T) {
	doc := Parse(addDoc)

	want := &DocComment{
		Body: []Node{Text{Content: "Adds two numbers."}},
		Tags: []Node{
			Param{Tag: "param", Name: "a", Type: "number", Description: []Node{Text{Content: "first"}}},
			Param{Tag: "param", Name: "b", Type: "number", Optional: true, Default: "1", Description: []Node{Text{Content: "second"}}},
			Returns{Type: "number", Description: []Node{Text{Content: "the sum"}}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineTags(t *testing.T) {
	doc := Parse("/** See {@link Foo#bar the bar} and {@linkcode Baz}. */")

	want := []Node{
		Text{Content: "See "},
		Link{Target: "Foo#bar", Label: "the bar", Style: "link"},
		Text{Content: " and "},
		Link{Target: "Baz", Style: "linkcode"},
		Text{Content: "."},
	}
	if diff := cmp.Diff(want, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLinkPipe(t *testing.T) {
	doc := Parse("/** {@link https://example.com|the docs} */")
	if len(doc.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(doc.Body))
	}
	link, ok := doc.Body[0].(Link)
	if !ok {
		t.Fatalf("expected Link, got %T", doc.Body[0])
	}
	if link.Target != "https://example.com" || link.Label != "the docs" {
		t.Errorf("link = %+v", link)
	}
}

func TestParseBackticks(t *testing.T) {
	doc := Parse("/** Call `run()` now */")
	want := []Node{Text{Content: "Call "}, Code{Content: "run()"}, Text{Content: " now"}}
	if diff := cmp.Diff(want, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTagOnFirstLine(t *testing.T) {
	doc := Parse("/** @deprecated use bar\n * @since 1.2.0\n * @async */")

	if len(doc.Body) != 0 {
		t.Errorf("expected empty body, got %v", doc.Body)
	}
	want := []Node{
		Deprecated{Description: []Node{Text{Content: "use bar"}}},
		Since{Version: "1.2.0"},
		Modifier{Name: "async"},
	}
	if diff := cmp.Diff(want, doc.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExample(t *testing.T) {
	doc := Parse(`/**
 * @example <caption>Usage</caption>
 *   add(1, 2)
 *   // => 3
 */`)

	ex, ok := Find[Example](doc)
	if !ok {
		t.Fatal("expected an @example tag")
	}
	if ex.Caption != "Usage" {
		t.Errorf("Caption = %q, want %q", ex.Caption, "Usage")
	}
	if want := "add(1, 2)\n// => 3"; ex.Code != want {
		t.Errorf("Code = %q, want %q", ex.Code, want)
	}
}

func TestParseTypeTags(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Node
	}{
		{"type", "/** @type {Array<string>} */", TypeTag{Type: "Array<string>"}},
		{"typedef", "/** @typedef {Object} Point */", Typedef{Tag: "typedef", Type: "Object", Name: "Point"}},
		{"callback", "/** @callback Handler */", Typedef{Tag: "callback", Name: "Handler"}},
		{"template", "/** @template {string} K, V - keys */", Template{Constraint: "string", Names: []string{"K", "V"}, Description: []Node{Text{Content: "keys"}}}},
		{"throws", "/** @throws {TypeError} when bad */", Throws{Type: "TypeError", Description: []Node{Text{Content: "when bad"}}}},
		{"nested braces", "/** @param {{x: number}} p */", Param{Tag: "param", Name: "p", Type: "{x: number}"}},
		{"optional type", "/** @param {string=} s */", Param{Tag: "param", Name: "s", Type: "string", Optional: true}},
		{"property path", "/** @property {string} opts.name */", Param{Tag: "property", Name: "opts.name", Type: "string"}},
		{"unknown", "/** @fires change */", UnknownBlockTag{Name: "fires", Content: []Node{Text{Content: "change"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.doc)
			if len(doc.Tags) != 1 {
				t.Fatalf("expected 1 tag, got %d: %v", len(doc.Tags), doc.Tags)
			}
			if diff := cmp.Diff(tt.want, doc.Tags[0]); diff != "" {
				t.Errorf("tag mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseComment(t *testing.T) {
	c := ast.Comment{Text: "* hi there ", Kind: ast.BlockComment}
	doc := ParseComment(c)
	if got := FormatPlainText(doc); got != "hi there" {
		t.Errorf("FormatPlainText() = %q, want %q", got, "hi there")
	}
}

func TestFormat(t *testing.T) {
	got := Format(Parse(addDoc))
	want := "Adds two numbers.\n\n" +
		"**Parameters**\n\n" +
		"- `a` `number`: first\n" +
		"- `b` `number` (optional, default `1`): second\n\n" +
		"**Returns** `number`: the sum"
	if got != want {
		t.Errorf("Format() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestFormatLinks(t *testing.T) {
	got := Format(Parse("/** See {@link Foo#bar the bar}, {@linkcode Baz} and {@link https://x.dev|docs}. */"))
	want := "See the bar, `Baz` and [docs](https://x.dev)."
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"/** Adds numbers. Then more. */", "Adds numbers."},
		{"/**\n * Splits\n * lines here\n */", "Splits lines here"},
		{"/** Version 1.2 is out */", "Version 1.2 is out"},
		{"/** */", ""},
	}
	for _, tt := range tests {
		if got := Summary(Parse(tt.doc)); got != tt.want {
			t.Errorf("Summary(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}
