package arena

import "fmt"

// Slab is a contiguous, growable buffer of T owned by an Arena. Items are
// addressed by index; indices stay valid until the owning arena is reset.
//
// T should not contain pointers: Reset only rewinds the length, so
// pointers left in the rewound region would keep their targets reachable
// until overwritten.
type Slab[T any] struct {
	items []T
}

// NewSlab creates a slab registered with a, pre-sized for capacity items.
func NewSlab[T any](a *Arena, capacity int) *Slab[T] {
	s := &Slab[T]{items: make([]T, 0, capacity)}
	a.slabs = append(a.slabs, s)
	return s
}

// Alloc appends v and returns its index.
func (s *Slab[T]) Alloc(v T) uint32 {
	s.items = append(s.items, v)
	return uint32(len(s.items) - 1)
}

// AllocSlice appends vs contiguously and returns the offset of the first
// element.
func (s *Slab[T]) AllocSlice(vs []T) uint32 {
	off := len(s.items)
	s.items = append(s.items, vs...)
	return uint32(off)
}

// At returns a pointer to the item at index i. The pointer is only valid
// until the next allocation from this slab.
func (s *Slab[T]) At(i uint32) *T {
	if int(i) >= len(s.items) {
		panic(fmt.Sprintf("arena: corrupted slab access: index %d, length %d", i, len(s.items)))
	}
	return &s.items[i]
}

// Slice returns n items starting at off. The slice aliases slab memory and
// must not be retained across allocations or resets.
func (s *Slab[T]) Slice(off, n uint32) []T {
	end := int(off) + int(n)
	if end > len(s.items) || end < int(off) {
		panic(fmt.Sprintf("arena: corrupted slab range [%d:%d], length %d", off, end, len(s.items)))
	}
	return s.items[off:end:end]
}

// Len returns the number of live items.
func (s *Slab[T]) Len() int {
	return len(s.items)
}

// Cap returns the retained capacity.
func (s *Slab[T]) Cap() int {
	return cap(s.items)
}

func (s *Slab[T]) rewind() {
	s.items = s.items[:0]
}

func (s *Slab[T]) size() (int, int) {
	return len(s.items), cap(s.items)
}
