package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickRate is the target simulation rate (ticks per second)
	TickRate = 60

	// TickInterval is the fixed simulation tick duration
	TickInterval = time.Second / TickRate

	// FrameUpdateInterval is the render refresh interval
	FrameUpdateInterval = 16 * time.Millisecond

	// ClockPeriod is the wraparound of the shared simulation clock
	ClockPeriod = 200
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
