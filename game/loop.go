package game

import (
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/event"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/status"
	"github.com/lixenwraith/broadside/system"
)

// Options carries the collaborators of a session; nil fields fall back to no-op implementations
type Options struct {
	Loader engine.AssetLoader
	Scene  engine.Scene
	Camera engine.Camera
	Audio  engine.Audio
	HUD    engine.HUD
	Rand   engine.Rand
	Time   engine.TimeProvider
	Status *status.Registry
	Logger *zap.Logger
	// View is the initial camera preset
	View core.CameraView
}

// Loop owns the registry, clock and game state and runs the ordered tick
// Tick must be called from a single goroutine; Submit is safe from any goroutine
type Loop struct {
	world *engine.World
	state *engine.GameState
	clock *engine.SimulationClock

	systems   []engine.System
	movement  *system.MovementSystem
	fire      *system.FireSystem
	collision *system.CollisionSystem

	camera engine.Camera
	audio  engine.Audio
	hud    engine.HUD
	time   engine.TimeProvider

	session uuid.UUID
	start   time.Time
	view    core.CameraView
	started bool
	logger  *zap.Logger

	statTicks    *atomic.Int64
	statDropped  *atomic.Int64
	statEntities *atomic.Int64
	statOver     *atomic.Bool
}

// New wires a session; call Start before the first Tick
func New(opts Options) *Loop {
	if opts.Loader == nil {
		opts.Loader = engine.ImmediateLoader{}
	}
	if opts.Scene == nil {
		opts.Scene = engine.NopScene{}
	}
	if opts.Camera == nil {
		opts.Camera = engine.NopCamera{}
	}
	if opts.Audio == nil {
		opts.Audio = engine.NopAudio{}
	}
	if opts.HUD == nil {
		opts.HUD = engine.NopHUD{}
	}
	if opts.Time == nil {
		opts.Time = engine.WallClock{}
	}
	if opts.Rand == nil {
		now := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>1))
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	session := uuid.New()
	logger := opts.Logger.With(zap.String("session", session.String()))

	l := &Loop{
		state:        engine.NewGameState(),
		clock:        engine.NewSimulationClock(),
		camera:       opts.Camera,
		audio:        opts.Audio,
		hud:          opts.HUD,
		time:         opts.Time,
		session:      session,
		view:         opts.View,
		logger:       logger.Named("loop"),
		statTicks:    opts.Status.Ints.Get("engine.ticks"),
		statDropped:  opts.Status.Ints.Get("queue.dropped"),
		statEntities: opts.Status.Ints.Get("world.entities"),
		statOver:     opts.Status.Bools.Get("game.over"),
	}
	l.world = engine.NewWorld(opts.Loader, opts.Scene, opts.Status, logger)

	l.movement = system.NewMovementSystem(l.world, l.state)
	l.fire = system.NewFireSystem(l.world, l.clock, l.state, l.audio, logger)
	l.collision = system.NewCollisionSystem(l.world, l.state)

	l.systems = []engine.System{
		l.movement,
		system.NewExplosionSystem(l.world),
		l.fire,
		system.NewSpawnSystem(l.world, l.state, opts.Rand, logger),
		l.collision,
		system.NewCombatSystem(l.world, l.state, l.collision, l.audio, logger),
		system.NewDespawnSystem(l.world, l.state),
	}
	slices.SortStableFunc(l.systems, func(a, b engine.System) int {
		return a.Priority() - b.Priority()
	})
	return l
}

// Start spawns the player, sets the camera and starts the music loop
// Idempotent
func (l *Loop) Start() {
	if l.started {
		return
	}
	l.started = true
	l.start = l.time.Now()
	l.statTicks.Store(0)

	p := l.world.SpawnPlayer(parameter.PlayerStartPosition, 0)
	l.camera.SetPreset(l.view)
	l.camera.Follow(p.Position)
	l.audio.PlayLoop(core.TrackSeaShanty)

	names := make([]string, len(l.systems))
	for i, s := range l.systems {
		names[i] = s.Name()
	}
	l.logger.Info("session started",
		zap.Uint64("player", uint64(p.ID())),
		zap.Int("salvo_period", l.clock.Period()),
		zap.Strings("systems", names))
}

// Submit queues a player command for the next tick
func (l *Loop) Submit(cmd core.Command) {
	l.world.Queue.Push(event.GameEvent{Type: event.EventCommand, Payload: cmd})
}

// Tick runs one simulation step
func (l *Loop) Tick() {
	l.clock.Advance()
	l.statTicks.Add(1)

	l.drain()

	for _, s := range l.systems {
		s.Update()
	}

	if l.state.IsOver() {
		l.camera.ZoomTowards(l.state.TerminalPosition())
	} else if p := l.world.Player; p != nil && p.IsActive() {
		l.camera.Follow(p.Position)
	}

	l.world.SyncScene()
	l.statDropped.Store(int64(l.world.Queue.Dropped()))
	l.statEntities.Store(int64(l.world.EntityCount()))
	l.statOver.Store(l.state.IsOver())
	l.hud.Update(l.Snapshot())
}

// drain applies lifecycle completions and queued commands
func (l *Loop) drain() {
	for _, ev := range l.world.Queue.Consume() {
		switch ev.Type {
		case event.EventEntityResolved:
			h, ok := ev.Payload.(*core.Handle)
			if !ok || !h.IsActive() {
				continue
			}
			if t, found := l.world.Lookup(h.ID()); found {
				l.world.Attach(h, t)
			}

		case event.EventAssetFailed:
			p, ok := ev.Payload.(*event.AssetFailedPayload)
			if !ok {
				continue
			}
			l.logger.Warn("asset resolution failed",
				zap.Uint64("entity", uint64(p.Handle.ID())),
				zap.Stringer("kind", p.Handle.Kind()),
				zap.Error(p.Err))

		case event.EventCommand:
			cmd, ok := ev.Payload.(core.Command)
			if !ok {
				continue
			}
			l.apply(cmd)
		}
	}
}

// apply dispatches one command; all input is ignored after GameOver
func (l *Loop) apply(cmd core.Command) {
	if l.state.IsOver() {
		return
	}
	switch cmd.Type {
	case core.CommandFire:
		l.fire.FirePlayer()
	case core.CommandSwitchCameraView:
		l.view = cmd.View
		l.camera.SetPreset(cmd.View)
	default:
		l.movement.ApplyCommand(cmd)
	}
}

// Snapshot returns the HUD view of the current state
func (l *Loop) Snapshot() engine.Snapshot {
	s := engine.Snapshot{
		GameOver: l.state.IsOver(),
		Tick:     uint64(l.statTicks.Load()),
	}
	if l.started {
		s.Elapsed = l.time.Now().Sub(l.start)
	}
	if p := l.world.Player; p != nil {
		s.TreasureCollected = p.TreasureCollected
		s.ShipsDestroyed = p.ShipsDestroyed
		s.Health = p.Health
	}
	return s
}

// World exposes the registry for inspection
func (l *Loop) World() *engine.World {
	return l.world
}

// State exposes the game state for inspection
func (l *Loop) State() *engine.GameState {
	return l.state
}

// Clock exposes the simulation clock for inspection
func (l *Loop) Clock() *engine.SimulationClock {
	return l.clock
}

// Session returns the session id
func (l *Loop) Session() uuid.UUID {
	return l.session
}

// View returns the active camera preset
func (l *Loop) View() core.CameraView {
	return l.view
}
