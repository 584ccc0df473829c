package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jsast/js/ast"
	sitter "github.com/smacker/go-tree-sitter"
)

// scan holds what one pass over the concrete tree finds before
// conversion: comments, syntax errors and module markers.
type scan struct {
	comments    []ast.Comment
	diagnostics []ast.Diagnostic
	module      bool
}

type scanFrame struct {
	node    *sitter.Node
	depth   int
	inError bool
}

// prescan walks the concrete tree in document order. Only the outermost
// ERROR of a malformed region is reported; missing tokens inside it are
// part of the same problem.
func prescan(root *sitter.Node, src string) scan {
	var s scan
	stack := []scanFrame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node
		typ := n.Type()
		inError := f.inError

		switch {
		case typ == "comment" || typ == "html_comment":
			sp := spanOf(n)
			s.comments = append(s.comments, ast.NewComment(sp.Text(src), sp))
			continue
		case typ == "ERROR":
			if !inError {
				s.diagnostics = append(s.diagnostics, unexpected(n, src))
			}
			inError = true
		case n.IsMissing():
			if !inError {
				sp := spanOf(n)
				s.diagnostics = append(s.diagnostics, ast.Diagnostic{
					Message:  fmt.Sprintf("Expected `%s`", missingName(n)),
					Span:     &sp,
					Severity: ast.SeverityError,
					Code:     "syntax",
				})
			}
			continue
		case f.depth == 1 && (typ == "import_statement" || typ == "export_statement"):
			s.module = true
		case typ == "meta_property" && strings.HasPrefix(nodeText(n, src), "import"):
			s.module = true
		case isImportMeta(n, src):
			s.module = true
		}

		// Push children in reverse so they pop in source order.
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if ch := n.Child(i); ch != nil {
				stack = append(stack, scanFrame{node: ch, depth: f.depth + 1, inError: inError})
			}
		}
	}
	return s
}

func unexpected(n *sitter.Node, src string) ast.Diagnostic {
	sp := spanOf(n)
	tok := firstToken(n, src)
	msg := "Unexpected token"
	switch {
	case tok != "":
		msg = fmt.Sprintf("Unexpected token `%s`", tok)
	case sp.Start >= len(src):
		msg = "Unexpected end of input"
	}
	return ast.Diagnostic{Message: msg, Span: &sp, Severity: ast.SeverityError, Code: "syntax"}
}

// firstToken returns the text of the first non-empty leaf under n,
// shortened for display.
func firstToken(n *sitter.Node, src string) string {
	for n != nil && n.ChildCount() > 0 {
		var next *sitter.Node
		for i := 0; i < int(n.ChildCount()); i++ {
			if ch := n.Child(i); ch != nil && ch.EndByte() > ch.StartByte() {
				next = ch
				break
			}
		}
		if next == nil {
			break
		}
		n = next
	}
	if n == nil {
		return ""
	}
	text := strings.TrimSpace(nodeText(n, src))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if r := []rune(text); len(r) > 24 {
		text = string(r[:24]) + "…"
	}
	return text
}

func missingName(n *sitter.Node) string {
	typ := n.Type()
	if typ == "" {
		return "token"
	}
	return typ
}
