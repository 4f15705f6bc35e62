package input

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/core"
)

// ErrQuit is returned by Pump.Run when the player asked to leave
var ErrQuit = errors.New("quit requested")

// Submitter accepts player commands; game.Loop satisfies it
type Submitter interface {
	Submit(cmd core.Command)
}

// Pump reads terminal events and forwards commands
// Runs on its own goroutine; the simulation only sees queued commands
type Pump struct {
	screen   tcell.Screen
	sink     Submitter
	keys     *KeyTable
	onResize func()
	logger   *zap.Logger
}

// NewPump creates a pump over screen; onResize may be nil
func NewPump(screen tcell.Screen, sink Submitter, keys *KeyTable, onResize func(), logger *zap.Logger) *Pump {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	if onResize == nil {
		onResize = func() {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pump{
		screen:   screen,
		sink:     sink,
		keys:     keys,
		onResize: onResize,
		logger:   logger.Named("input"),
	}
}

// Handle processes one event and reports whether the pump should stop
func (p *Pump) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		b := p.keys.Lookup(ev.Key(), ev.Rune())
		switch b.Intent {
		case IntentQuit:
			return true
		case IntentCommand:
			p.sink.Submit(b.Command)
		}
	case *tcell.EventResize:
		p.onResize()
	}
	return false
}

// Run pumps events until quit, ctx cancellation, or screen finalization
// Finalizing the screen unblocks the poll, so cancellation is observed on the next event
func (p *Pump) Run(ctx context.Context) error {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if p.Handle(ev) {
			p.logger.Info("quit requested")
			return ErrQuit
		}
	}
}
