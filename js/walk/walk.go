// Package walk traverses ast trees.
//
// All traversals are pre-order and use an explicit stack, so arbitrarily
// deep trees cannot overflow the goroutine stack. They are single pass and
// finite: every node reachable from the root is produced exactly once.
package walk

import (
	"iter"

	"github.com/dhamidi/jsast/js/ast"
)

type frame struct {
	node  ast.Node
	field ast.Field
	next  int
	depth int
}

// Cursor describes the position of a traversal: the current node and the
// chain of ancestors leading to it.
type Cursor struct {
	stack []frame
}

func (c *Cursor) top() *frame {
	return &c.stack[len(c.stack)-1]
}

func (c *Cursor) push(f frame) {
	c.stack = append(c.stack, f)
}

func (c *Cursor) pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

// Node returns the current node.
func (c *Cursor) Node() ast.Node {
	if len(c.stack) == 0 {
		return ast.Node{}
	}
	return c.top().node
}

// Depth returns the depth of the current node; the root has depth 0.
func (c *Cursor) Depth() int {
	if len(c.stack) == 0 {
		return 0
	}
	return c.top().depth
}

// Field returns the field under which the current node is stored in its
// parent. The root has FieldNone.
func (c *Cursor) Field() ast.Field {
	if len(c.stack) == 0 {
		return ast.FieldNone
	}
	return c.top().field
}

// Parent returns the parent of the current node, or the absent node for
// the root.
func (c *Cursor) Parent() ast.Node {
	if len(c.stack) < 2 {
		return ast.Node{}
	}
	return c.stack[len(c.stack)-2].node
}

// Path returns the nodes from the root down to the current node.
func (c *Cursor) Path() []ast.Node {
	out := make([]ast.Node, len(c.stack))
	for i, f := range c.stack {
		out[i] = f.node
	}
	return out
}

// Walker is a lazy pre-order iterator.
//
//	w := walk.Walk(root)
//	for w.Next() {
//		if w.Node().Kind() == ast.KindFunctionDeclaration {
//			w.SkipChildren()
//		}
//	}
type Walker struct {
	Cursor
	root    ast.Node
	started bool
	skip    bool
}

// Walk returns a Walker positioned before root.
func Walk(root ast.Node) *Walker {
	return &Walker{root: root}
}

// Next advances to the next node and reports whether there is one.
func (w *Walker) Next() bool {
	if !w.started {
		w.started = true
		if w.root.IsZero() {
			return false
		}
		w.push(frame{node: w.root})
		return true
	}
	if len(w.stack) == 0 {
		return false
	}
	if w.skip {
		w.skip = false
		top := w.top()
		top.next = top.node.Len()
	}
	for len(w.stack) > 0 {
		top := w.top()
		if top.next < top.node.Len() {
			i := top.next
			top.next++
			w.push(frame{node: top.node.At(i), field: top.node.FieldAt(i), depth: top.depth + 1})
			return true
		}
		w.pop()
	}
	return false
}

// SkipChildren makes the next call to Next pass over the descendants of
// the current node.
func (w *Walker) SkipChildren() {
	w.skip = true
}

// Stop ends the walk; Next returns false from now on.
func (w *Walker) Stop() {
	w.started = true
	w.stack = w.stack[:0]
}

// All returns the nodes below root, root included, with their depth.
// Breaking out of the loop abandons the walk.
func All(root ast.Node) iter.Seq2[ast.Node, int] {
	return func(yield func(ast.Node, int) bool) {
		w := Walk(root)
		for w.Next() {
			if !yield(w.Node(), w.Depth()) {
				return
			}
		}
	}
}
