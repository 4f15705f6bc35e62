package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
)

// SpawnSystem rolls for one enemy and one treasure chest per tick
// Each roll succeeds with probability 1/SpawnRollRange and is skipped at the collection cap
type SpawnSystem struct {
	world  *engine.World
	state  *engine.GameState
	rng    engine.Rand
	logger *zap.Logger

	// Telemetry
	statEnemy    *atomic.Int64
	statTreasure *atomic.Int64

	enabled bool
}

func NewSpawnSystem(world *engine.World, state *engine.GameState, rng engine.Rand, logger *zap.Logger) *SpawnSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SpawnSystem{
		world:  world,
		state:  state,
		rng:    rng,
		logger: logger.Named("spawn"),
	}

	s.statEnemy = world.Status.Ints.Get("spawn.enemy")
	s.statTreasure = world.Status.Ints.Get("spawn.treasure")

	s.Init()
	return s
}

func (s *SpawnSystem) Init() {
	s.statEnemy.Store(0)
	s.statTreasure.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *SpawnSystem) Name() string {
	return "spawn"
}

func (s *SpawnSystem) Priority() int {
	return parameter.PrioritySpawn
}

func (s *SpawnSystem) Update() {
	if !s.enabled || s.state.IsOver() {
		return
	}
	s.MaybeSpawnEnemy()
	s.MaybeSpawnTreasure()
}

// roll consumes one draw and reports a hit
func (s *SpawnSystem) roll() bool {
	return s.rng.IntN(parameter.SpawnRollRange) == 0
}

// position samples a point around the player, never on the player's XZ
func (s *SpawnSystem) position(player vmath.Vec3F) vmath.Vec3F {
	for {
		p := vmath.Vec3F{
			X: player.X + s.offset(),
			Y: parameter.SpawnHeight,
			Z: player.Z + s.offset(),
		}
		if !vmath.SameXZ(p, player) {
			return p
		}
	}
}

func (s *SpawnSystem) offset() float64 {
	return s.rng.Float64()*2*parameter.SpawnOffsetRange - parameter.SpawnOffsetRange
}

// MaybeSpawnEnemy spawns an enemy ship on a winning roll below the cap
// No-op while the player ship is not Active
func (s *SpawnSystem) MaybeSpawnEnemy() bool {
	p := s.world.Player
	if p == nil || !p.IsActive() {
		return false
	}
	if !s.roll() || s.world.Enemies.Full() {
		return false
	}

	e, ok := s.world.SpawnEnemy(s.position(p.Position))
	if !ok {
		return false
	}
	s.statEnemy.Add(1)
	s.logger.Debug("enemy spawned",
		zap.Uint64("entity", uint64(e.ID())),
		zap.Float64("x", e.Position.X),
		zap.Float64("z", e.Position.Z))
	return true
}

// MaybeSpawnTreasure spawns a treasure chest on a winning roll below the cap
func (s *SpawnSystem) MaybeSpawnTreasure() bool {
	p := s.world.Player
	if p == nil || !p.IsActive() {
		return false
	}
	if !s.roll() || s.world.Chests.Full() {
		return false
	}

	c, ok := s.world.SpawnTreasure(s.position(p.Position))
	if !ok {
		return false
	}
	s.statTreasure.Add(1)
	s.logger.Debug("treasure spawned",
		zap.Uint64("entity", uint64(c.ID())),
		zap.Float64("x", c.Position.X),
		zap.Float64("z", c.Position.Z))
	return true
}
