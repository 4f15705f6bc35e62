package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// TickFunc runs one simulation tick
type TickFunc func()

// ClockScheduler drives a TickFunc at a fixed interval
// Deadline-based: each tick is scheduled from the previous deadline, not from wake-up time,
// so a slow tick does not accumulate drift; after falling more than two intervals behind it resyncs
type ClockScheduler struct {
	tick         TickFunc
	tickInterval time.Duration
	logger       *zap.Logger

	nextTickDeadline time.Time
	tickCount        atomic.Uint64
	skipped          atomic.Uint64

	// frameDone is signalled after every tick, non-blocking, for the render loop
	frameDone chan struct{}

	mu      sync.Mutex
	running atomic.Bool
	now     func() time.Time
}

// NewClockScheduler creates a scheduler; interval must be positive
func NewClockScheduler(tick TickFunc, tickInterval time.Duration, logger *zap.Logger) *ClockScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClockScheduler{
		tick:         tick,
		tickInterval: tickInterval,
		logger:       logger.Named("scheduler"),
		frameDone:    make(chan struct{}, 1),
		now:          time.Now,
	}
}

// FrameDone receives a signal after each completed tick
// Buffered by one; missed signals coalesce
func (cs *ClockScheduler) FrameDone() <-chan struct{} {
	return cs.frameDone
}

// TickCount returns the number of ticks executed
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Run executes ticks until ctx is cancelled
// Returns ctx.Err() on cancellation; a second concurrent Run returns immediately
func (cs *ClockScheduler) Run(ctx context.Context) error {
	if !cs.running.CompareAndSwap(false, true) {
		return nil
	}
	defer cs.running.Store(false)

	cs.mu.Lock()
	cs.nextTickDeadline = cs.now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	cs.logger.Debug("scheduler started", zap.Duration("interval", cs.tickInterval))

	for {
		select {
		case <-ctx.Done():
			cs.logger.Debug("scheduler stopped",
				zap.Uint64("ticks", cs.tickCount.Load()),
				zap.Uint64("resyncs", cs.skipped.Load()))
			return ctx.Err()
		case <-timer.C:
		}

		cs.processTick()
		timer.Reset(cs.advanceDeadline())
	}
}

// processTick runs one tick and signals the frame channel
func (cs *ClockScheduler) processTick() {
	cs.tick()
	cs.tickCount.Add(1)

	select {
	case cs.frameDone <- struct{}{}:
	default:
	}
}

// advanceDeadline moves the deadline forward one interval and returns the sleep until it
func (cs *ClockScheduler) advanceDeadline() time.Duration {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

	maxBehind := cs.tickInterval * 2
	if now.Sub(cs.nextTickDeadline) > maxBehind {
		cs.nextTickDeadline = now.Add(cs.tickInterval)
		cs.skipped.Add(1)
	}

	sleep := cs.nextTickDeadline.Sub(now)
	if sleep < 0 {
		sleep = 0
	}
	return sleep
}

// Step runs a single tick synchronously, bypassing the timer
func (cs *ClockScheduler) Step() {
	cs.processTick()
}
