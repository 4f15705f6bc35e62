package engine

import (
	"github.com/kamstrup/intmap"

	"github.com/lixenwraith/broadside/core"
)

// Identified is any registry member
type Identified interface {
	ID() core.Entity
}

// Collection is an insertion-ordered set of entities with an optional capacity
// Dense slice for iteration, intmap index for O(1) membership
// Not synchronized: owned by the simulation tick
type Collection[T Identified] struct {
	capacity int // 0 = unbounded
	items    []T
	index    *intmap.Map[core.Entity, int]
}

// NewCollection creates a collection; capacity 0 means unbounded
func NewCollection[T Identified](capacity int) *Collection[T] {
	hint := capacity
	if hint == 0 {
		hint = 16
	}
	return &Collection[T]{
		capacity: capacity,
		items:    make([]T, 0, hint),
		index:    intmap.New[core.Entity, int](hint),
	}
}

// Add inserts v unless the collection is full or v is already present
// The capacity check happens here, before the caller commits to the entity
func (c *Collection[T]) Add(v T) bool {
	if c.Full() {
		return false
	}
	id := v.ID()
	if _, ok := c.index.Get(id); ok {
		return false
	}
	c.index.Put(id, len(c.items))
	c.items = append(c.items, v)
	return true
}

// Get returns the member with id
func (c *Collection[T]) Get(id core.Entity) (T, bool) {
	if i, ok := c.index.Get(id); ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports membership
func (c *Collection[T]) Has(id core.Entity) bool {
	_, ok := c.index.Get(id)
	return ok
}

// Retain keeps members for which keep returns true and returns the dropped ones
// Single compaction pass; indices of shifted members are rewritten
func (c *Collection[T]) Retain(keep func(T) bool) []T {
	var removed []T
	write := 0
	for _, v := range c.items {
		if !keep(v) {
			removed = append(removed, v)
			c.index.Del(v.ID())
			continue
		}
		c.index.Put(v.ID(), write)
		c.items[write] = v
		write++
	}
	var zero T
	for i := write; i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = c.items[:write]
	return removed
}

// All returns a copy of members in insertion order
// Safe to iterate while the collection is mutated
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of members
func (c *Collection[T]) Len() int { return len(c.items) }

// Full reports whether Add would be rejected for capacity
func (c *Collection[T]) Full() bool {
	return c.capacity > 0 && len(c.items) >= c.capacity
}
