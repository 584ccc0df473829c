// Package arena provides bump-style memory regions with O(1) reset.
//
// An Arena owns a fixed set of typed slabs. Allocation appends to a slab's
// contiguous buffer; Reset rewinds every slab to length zero while keeping
// its capacity, and bumps the arena generation so that handles created
// before the reset can be recognized as stale.
//
// An Arena is a single-owner resource. It performs no locking: callers must
// serialize access and must not Reset while anything allocated from it is
// still in use. Acquire marks the arena as owned by one in-flight operation
// so that accidental reentrancy fails loudly instead of corrupting data.
package arena

import (
	"errors"
	"fmt"
)

// ErrStale is reported when a handle from an earlier generation is used
// after the arena has been reset.
var ErrStale = errors.New("arena: handle used after reset")

// Generation identifies one allocation epoch of an Arena. Generations start
// at 1 so that the zero value never matches a live arena.
type Generation uint32

type slab interface {
	rewind()
	size() (items, capacity int)
}

// Arena is a bump allocator made of typed slabs sharing one generation.
type Arena struct {
	gen    Generation
	resets int
	busy   bool
	slabs  []slab
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{gen: 1}
}

// Generation returns the current allocation epoch.
func (a *Arena) Generation() Generation {
	return a.gen
}

// Check returns ErrStale unless gen is the current generation.
func (a *Arena) Check(gen Generation) error {
	if gen != a.gen {
		return fmt.Errorf("%w (handle generation %d, arena generation %d)", ErrStale, gen, a.gen)
	}
	return nil
}

// Acquire marks the arena as in use by one operation and returns the
// function that releases it. Acquiring an arena that is already in use
// panics.
func (a *Arena) Acquire() (release func()) {
	if a.busy {
		panic("arena: acquired while another operation is in flight")
	}
	a.busy = true
	return func() { a.busy = false }
}

// InUse reports whether the arena is currently acquired.
func (a *Arena) InUse() bool {
	return a.busy
}

// Reset invalidates everything allocated so far and makes the memory
// available for reuse. The cost does not depend on how much was allocated.
//
// Reset must only be called once no value derived from the arena is used
// anymore; this is a caller contract the arena cannot verify cheaply.
// Resetting an arena that is acquired panics.
func (a *Arena) Reset() {
	if a.busy {
		panic("arena: reset while an operation is in flight")
	}
	for _, s := range a.slabs {
		s.rewind()
	}
	a.gen++
	if a.gen == 0 {
		a.gen = 1
	}
	a.resets++
}

// Stats describes the arena's current occupancy.
type Stats struct {
	Generation Generation
	Resets     int
	Items      int
	Capacity   int
}

// Stats reports the number of live items and retained capacity across all
// slabs.
func (a *Arena) Stats() Stats {
	st := Stats{Generation: a.gen, Resets: a.resets}
	for _, s := range a.slabs {
		n, c := s.size()
		st.Items += n
		st.Capacity += c
	}
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("gen=%d resets=%d items=%d cap=%d", s.Generation, s.Resets, s.Items, s.Capacity)
}
