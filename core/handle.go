package core

import "sync/atomic"

// Visual is the resolved presentation of an entity as produced by the asset loader
// Opaque to the simulation; only the scene reads it
type Visual struct {
	Model string
	Glyph rune
	Color uint32 // 0xRRGGBB
	Scale float64
}

// Handle carries identity and lifecycle for one simulated object
// Thread-Safety:
//   - state: atomic, written by the loader goroutine (Resolve) and the tick (Destroy)
//   - visual: published before the Loading->Active CAS, read after observing Active
//   - attached: tick-only
type Handle struct {
	id    Entity
	kind  Kind
	state atomic.Int32

	visual   atomic.Pointer[Visual]
	attached bool
}

// NewHandle creates a handle in Loading state
func NewHandle(id Entity, kind Kind) *Handle {
	h := &Handle{id: id, kind: kind}
	h.state.Store(int32(Loading))
	return h
}

func (h *Handle) ID() Entity { return h.id }

func (h *Handle) Kind() Kind { return h.kind }

// State returns the current lifecycle state
func (h *Handle) State() Lifecycle {
	return Lifecycle(h.state.Load())
}

// IsActive reports whether simulation logic may touch the entity
// Nil-safe so callers can test optional slots directly
func (h *Handle) IsActive() bool {
	return h != nil && h.State() == Active
}

// Resolve performs the Loading->Active transition
// Returns false if the handle was destroyed (or already resolved) before completion
func (h *Handle) Resolve(v Visual) bool {
	if h.State() != Loading {
		return false
	}
	h.visual.Store(&v)
	return h.state.CompareAndSwap(int32(Loading), int32(Active))
}

// Destroy moves the handle to Destroyed and returns the previous state
// Idempotent; a Loading handle is cancelled so a late Resolve fails
func (h *Handle) Destroy() Lifecycle {
	return Lifecycle(h.state.Swap(int32(Destroyed)))
}

// Visual returns the resolved visual, ok=false while Loading
func (h *Handle) Visual() (Visual, bool) {
	v := h.visual.Load()
	if v == nil {
		return Visual{}, false
	}
	return *v, true
}

// Attached reports whether the scene currently holds this entity's visual
func (h *Handle) Attached() bool { return h.attached }

// SetAttached records scene membership, called from the tick only
func (h *Handle) SetAttached(v bool) { h.attached = v }
