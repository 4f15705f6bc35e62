package system

import (
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
)

// FireSystem spawns bullets
// Enemy fire is gated by the shared clock so every in-range enemy fires in the same salvo tick
type FireSystem struct {
	world  *engine.World
	clock  *engine.SimulationClock
	state  *engine.GameState
	audio  engine.Audio
	logger *zap.Logger

	// Telemetry
	statEnemy  *atomic.Int64
	statPlayer *atomic.Int64

	enabled bool
}

func NewFireSystem(world *engine.World, clock *engine.SimulationClock, state *engine.GameState, audio engine.Audio, logger *zap.Logger) *FireSystem {
	if audio == nil {
		audio = engine.NopAudio{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FireSystem{
		world:  world,
		clock:  clock,
		state:  state,
		audio:  audio,
		logger: logger.Named("fire"),
	}

	s.statEnemy = world.Status.Ints.Get("fire.enemy")
	s.statPlayer = world.Status.Ints.Get("fire.player")

	s.Init()
	return s
}

func (s *FireSystem) Init() {
	s.statEnemy.Store(0)
	s.statPlayer.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *FireSystem) Name() string {
	return "fire"
}

func (s *FireSystem) Priority() int {
	return parameter.PriorityFire
}

func (s *FireSystem) Update() {
	if !s.enabled || s.state.IsOver() {
		return
	}
	for _, e := range s.world.Enemies.All() {
		s.MaybeFire(e, s.world.Player)
	}
}

// InRange is the per-axis box check on the XZ plane used for fire decisions
// Distinct from the Euclidean collision radius
func InRange(a, b component.Transform) bool {
	return math.Abs(a.Position.X-b.Position.X) < parameter.FireRange &&
		math.Abs(a.Position.Z-b.Position.Z) < parameter.FireRange
}

// MaybeFire fires one bullet from enemy if it is Active, the player is within the box range and the clock is at zero
func (s *FireSystem) MaybeFire(enemy *component.EnemyShip, player *component.PlayerShip) bool {
	if enemy == nil || player == nil || !enemy.IsActive() {
		return false
	}
	if !InRange(enemy.Transform, player.Transform) || !s.clock.AtZero() {
		return false
	}

	b := s.world.SpawnBullet(&enemy.Ship, false)
	s.statEnemy.Add(1)
	s.logger.Debug("enemy fired",
		zap.Uint64("entity", uint64(enemy.ID())),
		zap.Uint64("bullet", uint64(b.ID())))
	return true
}

// FirePlayer fires one bullet from the player ship
// Unconditional while the player is Active and the session is Playing
func (s *FireSystem) FirePlayer() bool {
	p := s.world.Player
	if p == nil || !p.IsActive() || s.state.IsOver() {
		return false
	}
	s.world.SpawnBullet(&p.Ship, true)
	s.statPlayer.Add(1)
	s.audio.PlayOneShot(core.EffectCannon)
	return true
}
