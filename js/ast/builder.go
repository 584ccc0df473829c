package ast

// Attrs are the scalar attributes of a node under construction.
type Attrs struct {
	Flags Flags
	Name  string
	Value string
}

// Builder allocates nodes bottom-up. Children are pushed onto a scratch
// stack; Finish pops them into the new parent as one contiguous run of
// edges.
//
//	m := b.Mark()
//	b.Push(ast.FieldLeft, left)
//	b.Push(ast.FieldRight, right)
//	n := b.Finish(m, ast.KindBinaryExpression, span, ast.Attrs{Name: "+"})
type Builder struct {
	a     *Arena
	stack []edge
}

// NewBuilder returns a builder allocating into a.
func NewBuilder(a *Arena) *Builder {
	return &Builder{a: a, stack: make([]edge, 0, 64)}
}

// Arena returns the arena the builder allocates into.
func (b *Builder) Arena() *Arena {
	return b.a
}

// Mark returns the current depth of the scratch stack.
func (b *Builder) Mark() int {
	return len(b.stack)
}

// Push records child under f for the node that the next Finish creates.
// Absent children are ignored.
func (b *Builder) Push(f Field, child Node) {
	if child.IsZero() {
		return
	}
	if child.a != b.a {
		panic("ast: child allocated in a different arena")
	}
	b.stack = append(b.stack, edge{field: f, node: child.id})
}

// Pushed reports whether any child was pushed since mark.
func (b *Builder) Pushed(mark int) bool {
	return len(b.stack) > mark
}

// Discard drops the children pushed since mark.
func (b *Builder) Discard(mark int) {
	b.stack = b.stack[:mark]
}

// Finish allocates a node of kind k whose children are those pushed since
// mark. The node's span is widened to cover every child.
func (b *Builder) Finish(mark int, k Kind, span Span, attrs Attrs) Node {
	kids := b.stack[mark:]
	d := nodeData{
		kind:  k,
		flags: attrs.Flags,
		span:  span,
		nedge: uint32(len(kids)),
		name:  b.a.str(attrs.Name),
		value: b.a.str(attrs.Value),
	}
	if len(kids) > 0 {
		for _, e := range kids {
			d.span = d.span.Cover(b.a.nodes.At(e.node - 1).span)
		}
		d.edges = b.a.edges.AllocSlice(kids)
	}
	b.stack = b.stack[:mark]
	return b.a.alloc(d)
}

// Leaf allocates a node without children.
func (b *Builder) Leaf(k Kind, span Span, attrs Attrs) Node {
	return b.Finish(len(b.stack), k, span, attrs)
}

// AddFlags sets additional flags on an already finished node.
func (b *Builder) AddFlags(n Node, f Flags) {
	if n.IsZero() {
		return
	}
	n.data().flags |= f
}

// Extend widens the span of a finished node to also cover s, for syntax
// such as a leading modifier that is only seen after the node was built.
func (b *Builder) Extend(n Node, s Span) {
	if n.IsZero() {
		return
	}
	d := n.data()
	d.span = d.span.Cover(s)
}
