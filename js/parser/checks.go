package parser

import (
	"strings"

	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// need reports syntax that the configured ECMAScript edition predates.
func (c *converter) need(n *sitter.Node, feature string, since ECMAVersion) {
	c.needSpan(spanOf(n), feature, since)
}

func (c *converter) needSpan(sp ast.Span, feature string, since ECMAVersion) {
	if c.version.Less(since) {
		c.report(sp, "ecma-version", "%s requires %s or later (configured: %s)", feature, since, c.version)
	}
}

// strictError reports syntax that is forbidden in strict mode code.
func (c *converter) strictError(n *sitter.Node, msg string) {
	if c.strict {
		c.report(spanOf(n), "strict-mode", "%s", msg)
	}
}

// withStrict runs fn with strict mode forced on, as for class bodies.
func (c *converter) withStrict(fn func()) {
	saved := c.strict
	c.strict = true
	fn()
	c.strict = saved
}

// scoped runs fn and restores the strict mode afterwards, so that a
// "use strict" directive only affects the function it appears in.
func (c *converter) scoped(fn func()) {
	saved := c.strict
	fn()
	c.strict = saved
}

// isLegacyOctal reports whether a numeric literal is a legacy octal or a
// decimal with a leading zero, such as 017 or 09.
func isLegacyOctal(raw string) bool {
	if len(raw) < 2 || raw[0] != '0' {
		return false
	}
	for i := 1; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

func (c *converter) checkNumber(n *sitter.Node, raw string) {
	if isLegacyOctal(raw) {
		c.strictError(n, "Legacy octal literals are not allowed in strict mode")
	}
	if strings.Contains(raw, "_") {
		c.need(n, "Numeric separator syntax", ES2021)
	}
	if strings.HasSuffix(raw, "n") {
		c.need(n, "BigInt literal syntax", ES2020)
	}
}

func (c *converter) checkRegExpFlags(n *sitter.Node, flags string) {
	for _, f := range flags {
		switch f {
		case 'u', 'y':
			c.need(n, "Regular expression flag `"+string(f)+"`", ES2015)
		case 's':
			c.need(n, "Regular expression flag `s`", ES2018)
		case 'd':
			c.need(n, "Regular expression flag `d`", ES2022)
		case 'v':
			c.need(n, "Regular expression flag `v`", ES2024)
		}
	}
}

// checkJSX reports JSX in plain JavaScript once per outermost element.
func (c *converter) checkJSX(n *sitter.Node) {
	if c.jsxDepth == 0 && c.lang == LangJS {
		c.report(spanOf(n), "jsx", "JSX syntax is not enabled; parse with language jsx or tsx")
	}
}
