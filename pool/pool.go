// Package pool provides a pre-allocated slot pool for managing a
// collection of game objects.
//
// Unlike a plain slice, a Pool is optimized to avoid fragmentation: when an
// object is removed from the middle, its slot is marked reusable, no other
// entry moves, and the next insertion is handed that slot. Don't use a Pool
// if you need the collection to shrink and reclaim memory over time, or if
// insertion order matters.
package pool

import "iter"

// DefaultCapacity is the slot count of a pool created with [New].
const DefaultCapacity = 10

// Handle is returned by [Pool.Push] and later used to query or remove the
// object it was issued for. Handles are comparable and usable as map keys.
//
// Each handle carries the generation of the slot it was issued for, so a
// stale handle (one whose object was removed, even if a new object has
// since been allocated into the same slot) safely misses instead of
// reaching the wrong object. The zero Handle never matches any entry.
type Handle struct {
	index int
	gen   uint32
}

// slot is a single pool entry: either a live value or a link in the free
// list. gen increments every time a value is stored, which is what
// invalidates handles issued for earlier occupants.
type slot[T any] struct {
	value    T
	gen      uint32
	live     bool
	nextFree int
}

// Pool stores values of type T in recyclable slots. The zero value is not
// usable; create pools with [New] or [WithCapacity].
type Pool[T any] struct {
	slots    []slot[T]
	nextFree int
	len      int
}

// New creates a pool with [DefaultCapacity] slots.
func New[T any]() *Pool[T] {
	return WithCapacity[T](DefaultCapacity)
}

// WithCapacity creates a pool with an explicit slot count. The pool grows
// automatically once full. Panics if capacity is not positive.
func WithCapacity[T any](capacity int) *Pool[T] {
	if capacity <= 0 {
		panic("pool: capacity must be greater than zero")
	}
	p := &Pool[T]{slots: make([]slot[T], capacity)}
	linkFree(p.slots, 0)
	return p
}

// linkFree chains slots[from:] into the free list, each pointing at the
// next, ending one past the end of the slice.
func linkFree[T any](slots []slot[T], from int) {
	for i := from; i < len(slots); i++ {
		slots[i].nextFree = i + 1
	}
}

// Len returns the number of live objects in the pool, not to be confused
// with its Cap.
func (p *Pool[T]) Len() int {
	return p.len
}

// Cap returns the total allocated slot count.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// IsEmpty reports whether the pool holds no live objects.
func (p *Pool[T]) IsEmpty() bool {
	return p.len == 0
}

// Push stores v in the next free slot, growing the pool if it is full, and
// returns a handle for it.
func (p *Pool[T]) Push(v T) Handle {
	if p.len == len(p.slots) {
		// Free list is exhausted; double the slot array and chain the
		// new slots onto it.
		grown := make([]slot[T], len(p.slots)*2)
		copy(grown, p.slots)
		linkFree(grown, len(p.slots))
		p.nextFree = len(p.slots)
		p.slots = grown
	}

	i := p.nextFree
	s := &p.slots[i]
	p.nextFree = s.nextFree
	s.gen++
	s.live = true
	s.value = v
	p.len++

	return Handle{index: i, gen: s.gen}
}

// Remove deletes the object h was issued for and returns it. It returns
// false if the object was already removed; removing through a stale handle
// any number of times is harmless.
func (p *Pool[T]) Remove(h Handle) (T, bool) {
	var zero T
	s, ok := p.lookup(h)
	if !ok {
		return zero, false
	}

	v := s.value
	s.value = zero
	s.live = false
	s.nextFree = p.nextFree
	p.nextFree = h.index
	p.len--
	return v, true
}

// Get returns a pointer to the object h was issued for, valid until the
// object is removed or the pool grows. It returns false for stale handles.
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	s, ok := p.lookup(h)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// lookup resolves a handle to its slot, rejecting stale handles whose slot
// has been freed or recycled.
func (p *Pool[T]) lookup(h Handle) (*slot[T], bool) {
	if h.index < 0 || h.index >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

// All iterates the live entries in slot order, which is not insertion
// order. The pool must not be modified during iteration; collect [Pool.Handles]
// instead when the loop body inserts or removes.
func (p *Pool[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range p.slots {
			s := &p.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{index: i, gen: s.gen}, &s.value) {
				return
			}
		}
	}
}

// Handles returns a snapshot of the handles of all live entries, detached
// from the pool so the caller is free to mutate it while ranging.
func (p *Pool[T]) Handles() []Handle {
	handles := make([]Handle, 0, p.len)
	for i := range p.slots {
		s := &p.slots[i]
		if s.live {
			handles = append(handles, Handle{index: i, gen: s.gen})
		}
	}
	return handles
}
