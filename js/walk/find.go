package walk

import "github.com/dhamidi/jsast/js/ast"

// Find returns the first node in pre-order for which match returns true,
// or the absent node.
func Find(root ast.Node, match func(ast.Node) bool) ast.Node {
	for n := range All(root) {
		if match(n) {
			return n
		}
	}
	return ast.Node{}
}

// FindAll returns every node for which match returns true, in pre-order.
func FindAll(root ast.Node, match func(ast.Node) bool) []ast.Node {
	var out []ast.Node
	for n := range All(root) {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

// OfKind returns a matcher for Find and FindAll.
func OfKind(kinds ...ast.Kind) func(ast.Node) bool {
	return func(n ast.Node) bool {
		k := n.Kind()
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

// Count returns the number of nodes below root, root included.
func Count(root ast.Node) int {
	n := 0
	for range All(root) {
		n++
	}
	return n
}

// CountKinds returns how many nodes of each kind the tree holds.
func CountKinds(root ast.Node) map[ast.Kind]int {
	out := make(map[ast.Kind]int)
	for n := range All(root) {
		out[n.Kind()]++
	}
	return out
}

// Parents maps every node below root to its parent. Nodes only store
// their children, so this is how to walk upwards outside a traversal.
func Parents(root ast.Node) map[ast.Node]ast.Node {
	out := make(map[ast.Node]ast.Node)
	w := Walk(root)
	for w.Next() {
		if p := w.Parent(); !p.IsZero() {
			out[w.Node()] = p
		}
	}
	return out
}

// Enclosing returns the chain of nodes whose span contains offset, from
// root down to the innermost one. It is empty if root does not contain
// offset.
func Enclosing(root ast.Node, offset int) []ast.Node {
	var out []ast.Node
	w := Walk(root)
	for w.Next() {
		n := w.Node()
		if !n.Span().ContainsOffset(offset) {
			w.SkipChildren()
			continue
		}
		out = w.Path()
	}
	return out
}
