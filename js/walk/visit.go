package walk

import "github.com/dhamidi/jsast/js/ast"

// Action tells Visit how to continue after a hook.
type Action uint8

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip passes over the node's children. The node is still left.
	Skip
	// Stop ends the traversal immediately. No further hook is called.
	Stop
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case Stop:
		return "stop"
	}
	return "unknown"
}

// Visitor receives Enter before a node's children and Leave after them.
// The Action returned by Leave is only checked for Stop.
type Visitor interface {
	Enter(c *Cursor) Action
	Leave(c *Cursor) Action
}

// Hooks is a Visitor assembled from functions. Per-kind hooks run before
// the generic hook of the same phase and the strongest of their actions
// wins. Nil hooks continue.
type Hooks struct {
	OnEnter   func(c *Cursor) Action
	OnLeave   func(c *Cursor) Action
	EnterKind map[ast.Kind]func(c *Cursor) Action
	LeaveKind map[ast.Kind]func(c *Cursor) Action
}

func (h *Hooks) Enter(c *Cursor) Action { return run(h.EnterKind, h.OnEnter, c) }
func (h *Hooks) Leave(c *Cursor) Action { return run(h.LeaveKind, h.OnLeave, c) }

func run(kinds map[ast.Kind]func(*Cursor) Action, generic func(*Cursor) Action, c *Cursor) Action {
	act := Continue
	if fn := kinds[c.Node().Kind()]; fn != nil {
		act = fn(c)
		if act == Stop {
			return Stop
		}
	}
	if generic != nil {
		if g := generic(c); g > act {
			act = g
		}
	}
	return act
}

// Visit traverses root depth-first. Every visited node is entered exactly
// once and left exactly once, after all of its children have been left.
// Visit reports false if a hook stopped the traversal.
func Visit(root ast.Node, v Visitor) bool {
	if root.IsZero() {
		return true
	}
	var c Cursor
	c.push(frame{node: root})
	if !c.enter(v) {
		return false
	}
	for len(c.stack) > 0 {
		top := c.top()
		if top.next < top.node.Len() {
			i := top.next
			top.next++
			c.push(frame{node: top.node.At(i), field: top.node.FieldAt(i), depth: top.depth + 1})
			if !c.enter(v) {
				return false
			}
			continue
		}
		if v.Leave(&c) == Stop {
			return false
		}
		c.pop()
	}
	return true
}

// enter calls v.Enter for the top frame and applies a Skip.
func (c *Cursor) enter(v Visitor) bool {
	switch v.Enter(c) {
	case Stop:
		return false
	case Skip:
		top := c.top()
		top.next = top.node.Len()
	}
	return true
}
