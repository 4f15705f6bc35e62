package engine

import (
	"sync"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
)

// ManualLoader queues load requests until the test resolves them
type ManualLoader struct {
	mu      sync.Mutex
	pending []pendingLoad
}

type pendingLoad struct {
	kind core.Kind
	done func(core.Visual, error)
}

func (l *ManualLoader) Load(kind core.Kind, done func(core.Visual, error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, pendingLoad{kind: kind, done: done})
}

// Pending returns the number of unresolved loads
func (l *ManualLoader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// ResolveAll completes every pending load successfully
func (l *ManualLoader) ResolveAll() {
	l.finish(nil)
}

// FailAll completes every pending load with err
func (l *ManualLoader) FailAll(err error) {
	l.finish(err)
}

func (l *ManualLoader) finish(err error) {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, p := range pending {
		p.done(core.Visual{Model: p.kind.String(), Glyph: '#', Scale: 1}, err)
	}
}

// RecordingScene records attach/detach calls
type RecordingScene struct {
	Attached map[core.Entity]core.Kind
	Detached []core.Entity
	Updates  int
}

func NewRecordingScene() *RecordingScene {
	return &RecordingScene{Attached: make(map[core.Entity]core.Kind)}
}

func (s *RecordingScene) Attach(id core.Entity, kind core.Kind, _ core.Visual, _ component.Transform) {
	s.Attached[id] = kind
}

func (s *RecordingScene) Detach(id core.Entity) {
	delete(s.Attached, id)
	s.Detached = append(s.Detached, id)
}

func (s *RecordingScene) Update(core.Entity, component.Transform) {
	s.Updates++
}
