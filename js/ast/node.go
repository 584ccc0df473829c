package ast

import "github.com/dhamidi/jsast/js/arena"

// Node is a handle to a node allocated in an Arena. The zero Node is the
// absent node: its Kind is KindInvalid and it has no children.
//
// Node is a small value and is compared with ==. A handle is only valid
// while its arena stays in the generation that created it; any accessor
// other than IsZero, Err and ID panics with a *StaleNodeError afterwards.
type Node struct {
	a   *Arena
	id  uint32
	gen arena.Generation
}

var absent nodeData

func (n Node) data() *nodeData {
	if n.id == 0 {
		return &absent
	}
	if err := n.Err(); err != nil {
		panic(err)
	}
	return n.a.nodes.At(n.id - 1)
}

// Err returns a *StaleNodeError if the node's arena was reset since the
// node was created, and nil otherwise.
func (n Node) Err() error {
	if n.id == 0 {
		return nil
	}
	if err := n.a.mem.Check(n.gen); err != nil {
		return &StaleNodeError{ID: n.id, Err: err}
	}
	return nil
}

// IsZero reports whether n is the absent node.
func (n Node) IsZero() bool {
	return n.id == 0
}

// ID returns an identifier that is unique among the nodes of one arena
// generation. The absent node has ID 0.
func (n Node) ID() uint32 {
	return n.id
}

// Arena returns the arena that owns n.
func (n Node) Arena() *Arena {
	return n.a
}

func (n Node) Kind() Kind {
	return n.data().kind
}

func (n Node) Span() Span {
	return n.data().span
}

func (n Node) Flags() Flags {
	return n.data().flags
}

// Has reports whether all of the flags f are set on n.
func (n Node) Has(f Flags) bool {
	return n.data().flags.Has(f)
}

// Name returns the node's primary string attribute: the name of an
// identifier, the operator of an operator expression, the raw text of a
// literal, or the kind keyword of a declaration.
func (n Node) Name() string {
	d := n.data()
	if n.id == 0 {
		return ""
	}
	return n.a.load(d.name)
}

// Value returns the node's secondary string attribute: the cooked value of
// a string or template literal, the pattern of a regular expression, or
// the accessibility of a class member.
func (n Node) Value() string {
	d := n.data()
	if n.id == 0 {
		return ""
	}
	return n.a.load(d.value)
}

// IsError reports whether n is a recovery node for malformed input.
func (n Node) IsError() bool {
	return n.Kind() == KindError
}

// Len returns the number of children.
func (n Node) Len() int {
	return int(n.data().nedge)
}

func (n Node) edge(i int) edge {
	d := n.data()
	if i < 0 || i >= int(d.nedge) {
		panic("ast: child index out of range")
	}
	return *n.a.edges.At(d.edges + uint32(i))
}

// At returns the i-th child in source order.
func (n Node) At(i int) Node {
	e := n.edge(i)
	return Node{a: n.a, id: e.node, gen: n.gen}
}

// FieldAt returns the field under which the i-th child is stored.
func (n Node) FieldAt(i int) Field {
	return n.edge(i).field
}

// Children returns all children in source order.
func (n Node) Children() []Node {
	l := n.Len()
	if l == 0 {
		return nil
	}
	out := make([]Node, l)
	for i := range out {
		out[i] = n.At(i)
	}
	return out
}

// Each calls fn for every child in source order until fn returns false.
func (n Node) Each(fn func(f Field, child Node) bool) {
	for i, l := 0, n.Len(); i < l; i++ {
		e := n.edge(i)
		if !fn(e.field, Node{a: n.a, id: e.node, gen: n.gen}) {
			return
		}
	}
}

// Child returns the first child stored under f, or the absent node.
func (n Node) Child(f Field) Node {
	for i, l := 0, n.Len(); i < l; i++ {
		if e := n.edge(i); e.field == f {
			return Node{a: n.a, id: e.node, gen: n.gen}
		}
	}
	return Node{}
}

// List returns the children stored under f in source order.
func (n Node) List(f Field) []Node {
	var out []Node
	for i, l := 0, n.Len(); i < l; i++ {
		if e := n.edge(i); e.field == f {
			out = append(out, Node{a: n.a, id: e.node, gen: n.gen})
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child of kind k.
func (n Node) FirstChildOfKind(k Kind) Node {
	for i, l := 0, n.Len(); i < l; i++ {
		if c := n.At(i); c.Kind() == k {
			return c
		}
	}
	return Node{}
}

// ChildrenOfKind returns the direct children of kind k.
func (n Node) ChildrenOfKind(k Kind) []Node {
	var out []Node
	for i, l := 0, n.Len(); i < l; i++ {
		if c := n.At(i); c.Kind() == k {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the source text covered by n.
func (n Node) Text(src string) string {
	return n.Span().Text(src)
}

// LineRange returns the 1-indexed, inclusive line range covered by n.
func (n Node) LineRange(src string) (start, end int) {
	return n.Span().LineRange(src)
}
