package event

import (
	"sync/atomic"

	"github.com/lixenwraith/broadside/parameter"
)

// EventQueue is a bounded multi-producer, single-consumer ring of game events
// Thread-Safety:
//   - Push: claims a ticket by CAS on tail, any goroutine (loader workers, input pump)
//   - Consume: simulation tick only
//   - A slot is readable once its sequence stamp equals ticket+1
//   - A ticket is only claimed once the consumer has released its slot
//
// Overflow: when the ring is full the event being pushed is dropped
type EventQueue struct {
	slots   [parameter.EventQueueSize]slot
	tail    atomic.Uint64 // Next ticket handed to a producer
	head    atomic.Uint64 // Next ticket to consume, consumer-written
	dropped atomic.Uint64
}

type slot struct {
	seq atomic.Uint64 // ticket+1 once written
	ev  GameEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push enqueues ev, never blocks
// Returns false when the ring is full and ev was dropped
func (eq *EventQueue) Push(ev GameEvent) bool {
	for {
		// head before tail keeps tail-head from underflowing
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail-head >= parameter.EventQueueSize {
			eq.dropped.Add(1)
			return false
		}
		if eq.tail.CompareAndSwap(tail, tail+1) {
			s := &eq.slots[tail&parameter.EventBufferMask]
			s.ev = ev
			s.seq.Store(tail + 1) // Publish after the write
			return true
		}
	}
}

// Consume returns every published event in push order
// Stops at the first claimed-but-unwritten slot; the rest is picked up next call
func (eq *EventQueue) Consume() []GameEvent {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if head == tail {
		return nil
	}

	var out []GameEvent
	for ; head < tail; head++ {
		s := &eq.slots[head&parameter.EventBufferMask]
		if s.seq.Load() != head+1 {
			break
		}
		out = append(out, s.ev)
		s.ev = GameEvent{}
	}
	// Releases the read slots to producers
	eq.head.Store(head)
	return out
}

// Len returns the approximate number of pending events
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	return int(eq.tail.Load() - head)
}

// Dropped returns how many events were lost to overflow
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}
