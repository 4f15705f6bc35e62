package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/lixenwraith/broadside/core"
)

// ErrClosed is returned to loads pending when the loader shuts down
var ErrClosed = errors.New("asset loader closed")

// Loader resolves visuals asynchronously with bounded concurrency
// Each Load runs on its own goroutine; at most 'workers' resolve at once
type Loader struct {
	manifest Manifest
	sem      *semaphore.Weighted
	delay    time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader creates a loader over manifest
// delay simulates per-model latency so Loading is observable in play
func NewLoader(manifest Manifest, workers int, delay time.Duration, logger *zap.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		manifest: manifest,
		sem:      semaphore.NewWeighted(int64(workers)),
		delay:    delay,
		logger:   logger.Named("asset"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Load starts resolution of kind and returns immediately
// done is invoked exactly once from a loader goroutine
func (l *Loader) Load(kind core.Kind, done func(core.Visual, error)) {
	l.wg.Add(1)
	core.Go(func() {
		defer l.wg.Done()
		done(l.resolve(kind))
	})
}

func (l *Loader) resolve(kind core.Kind) (core.Visual, error) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		return core.Visual{}, fmt.Errorf("%w: %s", ErrClosed, kind)
	}
	defer l.sem.Release(1)

	if l.delay > 0 {
		timer := time.NewTimer(l.delay)
		select {
		case <-l.ctx.Done():
			timer.Stop()
			return core.Visual{}, fmt.Errorf("%w: %s", ErrClosed, kind)
		case <-timer.C:
		}
	}

	v, err := l.manifest.Visual(kind)
	if err != nil {
		l.logger.Warn("model resolution failed", zap.Stringer("kind", kind), zap.Error(err))
		return core.Visual{}, err
	}
	l.logger.Debug("model resolved", zap.Stringer("kind", kind), zap.String("file", v.Model))
	return v, nil
}

// Close cancels pending loads and waits for their callbacks
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}
