// Package comments relates the comments of a parse to tree nodes.
//
// Comments are not part of the tree. Attach places each one relative to a
// node with a positional heuristic:
//
//   - a comment belongs to the innermost node whose span encloses it;
//   - among that node's children, it trails the previous sibling when it
//     starts on the line where that sibling ends;
//   - otherwise it leads the next sibling;
//   - with no next sibling it trails the previous one;
//   - in a node without children it is dangling.
package comments

import (
	"sort"
	"strings"

	"github.com/dhamidi/jsast/js/ast"
)

// Placement says how a comment relates to its node.
type Placement uint8

const (
	Leading Placement = iota
	Trailing
	Dangling
)

var placementNames = map[Placement]string{
	Leading:  "leading",
	Trailing: "trailing",
	Dangling: "dangling",
}

func (p Placement) String() string {
	if name, ok := placementNames[p]; ok {
		return name
	}
	return "unknown"
}

// Attachment is one comment placed relative to a node.
type Attachment struct {
	Comment   ast.Comment
	Node      ast.Node
	Placement Placement
}

// Map holds the attachments of one tree.
type Map struct {
	all   []Attachment
	index map[ast.Node][]int
}

// Attach places every comment. comments must be in source order, as
// returned by a parse.
func Attach(root ast.Node, comments []ast.Comment, src string) *Map {
	m := &Map{index: make(map[ast.Node][]int)}
	if root.IsZero() {
		return m
	}
	for _, c := range comments {
		a := place(root, c, src)
		m.index[a.Node] = append(m.index[a.Node], len(m.all))
		m.all = append(m.all, a)
	}
	return m
}

func place(root ast.Node, c ast.Comment, src string) Attachment {
	n := root
descend:
	for {
		for _, ch := range n.Children() {
			if ch.Span().Contains(c.Span) && !ch.Span().IsEmpty() {
				n = ch
				continue descend
			}
		}
		break
	}

	var prev, next ast.Node
	for _, ch := range n.Children() {
		sp := ch.Span()
		if sp.End <= c.Span.Start {
			prev = ch
		} else if sp.Start >= c.Span.End && next.IsZero() {
			next = ch
		}
	}
	switch {
	case !prev.IsZero() && sameLine(src, prev.Span().End, c.Span.Start):
		return Attachment{Comment: c, Node: prev, Placement: Trailing}
	case !next.IsZero():
		return Attachment{Comment: c, Node: next, Placement: Leading}
	case !prev.IsZero():
		return Attachment{Comment: c, Node: prev, Placement: Trailing}
	}
	return Attachment{Comment: c, Node: n, Placement: Dangling}
}

func sameLine(src string, from, to int) bool {
	if from < 0 || to > len(src) || from > to {
		return false
	}
	return !strings.Contains(src[from:to], "\n")
}

// All returns every attachment in comment order.
func (m *Map) All() []Attachment {
	return m.all
}

func (m *Map) get(n ast.Node, p Placement) []ast.Comment {
	var out []ast.Comment
	for _, i := range m.index[n] {
		if m.all[i].Placement == p {
			out = append(out, m.all[i].Comment)
		}
	}
	return out
}

// Leading returns the comments placed before n.
func (m *Map) Leading(n ast.Node) []ast.Comment { return m.get(n, Leading) }

// Trailing returns the comments placed after n.
func (m *Map) Trailing(n ast.Node) []ast.Comment { return m.get(n, Trailing) }

// Dangling returns the comments inside n that have no sibling to attach to.
func (m *Map) Dangling(n ast.Node) []ast.Comment { return m.get(n, Dangling) }

// DocComment returns the /** */ comment that directly precedes n,
// separated from it by whitespace only.
func DocComment(n ast.Node, comments []ast.Comment, src string) (ast.Comment, bool) {
	if n.IsZero() {
		return ast.Comment{}, false
	}
	start := n.Span().Start
	i := sort.Search(len(comments), func(i int) bool {
		return comments[i].Span.End > start
	})
	if i == 0 {
		return ast.Comment{}, false
	}
	c := comments[i-1]
	if !c.IsDoc() || c.Span.End > len(src) || start > len(src) {
		return ast.Comment{}, false
	}
	if strings.TrimSpace(src[c.Span.End:start]) != "" {
		return ast.Comment{}, false
	}
	return c, true
}
