package ast

import (
	"errors"
	"fmt"

	"github.com/dhamidi/jsast/js/arena"
)

type strRef struct {
	off, n uint32
}

type nodeData struct {
	kind  Kind
	flags Flags
	span  Span
	edges uint32
	nedge uint32
	name  strRef
	value strRef
}

type edge struct {
	field Field
	node  uint32
}

// Arena owns the nodes of one or more parses. Nodes, child links and the
// bytes of names and literal values live in three slabs of one
// arena.Arena, so Reset releases a whole tree in constant time.
//
// An Arena must be used by one parse at a time. Reset must only be called
// once no Node from the previous generation is used anymore; a Node used
// after Reset panics with a *StaleNodeError.
type Arena struct {
	mem   *arena.Arena
	nodes *arena.Slab[nodeData]
	edges *arena.Slab[edge]
	text  *arena.Slab[byte]
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return NewArenaSize(0)
}

// NewArenaSize returns an empty arena pre-sized for roughly the given
// number of nodes.
func NewArenaSize(nodes int) *Arena {
	mem := arena.New()
	return &Arena{
		mem:   mem,
		nodes: arena.NewSlab[nodeData](mem, nodes),
		edges: arena.NewSlab[edge](mem, nodes),
		text:  arena.NewSlab[byte](mem, nodes*4),
	}
}

// Reset invalidates every node allocated so far. Memory is kept for the
// next parse.
func (a *Arena) Reset() {
	a.mem.Reset()
}

// Generation returns the current allocation epoch.
func (a *Arena) Generation() arena.Generation {
	return a.mem.Generation()
}

// Acquire marks the arena as owned by one in-flight operation.
func (a *Arena) Acquire() (release func()) {
	return a.mem.Acquire()
}

// InUse reports whether an operation currently owns the arena.
func (a *Arena) InUse() bool {
	return a.mem.InUse()
}

// Stats reports the arena's occupancy.
func (a *Arena) Stats() arena.Stats {
	return a.mem.Stats()
}

// NodeCount returns the number of nodes allocated in the current
// generation.
func (a *Arena) NodeCount() int {
	return a.nodes.Len()
}

// Node returns the live node with the given ID.
func (a *Arena) Node(id uint32) (Node, error) {
	if id == 0 || int(id) > a.nodes.Len() {
		return Node{}, fmt.Errorf("ast: no node with id %d", id)
	}
	return Node{a: a, id: id, gen: a.mem.Generation()}, nil
}

func (a *Arena) alloc(d nodeData) Node {
	id := a.nodes.Alloc(d) + 1
	return Node{a: a, id: id, gen: a.mem.Generation()}
}

func (a *Arena) str(s string) strRef {
	if s == "" {
		return strRef{}
	}
	return strRef{off: a.text.AllocSlice([]byte(s)), n: uint32(len(s))}
}

func (a *Arena) load(r strRef) string {
	if r.n == 0 {
		return ""
	}
	return string(a.text.Slice(r.off, r.n))
}

// StaleNodeError is the panic value raised when a Node is used after the
// arena that allocated it was reset.
type StaleNodeError struct {
	ID  uint32
	Err error
}

func (e *StaleNodeError) Error() string {
	return fmt.Sprintf("ast: node %d: %v", e.ID, e.Err)
}

func (e *StaleNodeError) Unwrap() error {
	return e.Err
}

// IsStale reports whether err, or a recovered panic value, reports use of a
// node after its arena was reset.
func IsStale(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, arena.ErrStale)
}
