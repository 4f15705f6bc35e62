package system

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnEnemyOnWinningRoll(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{X: 10, Y: 1, Z: -15}, 0)

	s.rng.ints = []int{0}
	s.rng.floats = []float64{1.0, 0.0}

	require.True(t, s.spawn.MaybeSpawnEnemy())
	require.Equal(t, 1, s.world.Enemies.Len())

	e := s.world.Enemies.All()[0]
	assert.InDelta(t, 10+parameter.SpawnOffsetRange, e.Position.X, 1e-9)
	assert.InDelta(t, -15-parameter.SpawnOffsetRange, e.Position.Z, 1e-9)
	assert.Equal(t, parameter.SpawnHeight, e.Position.Y)
	assert.Equal(t, []int{parameter.SpawnRollRange}, s.rng.intN)
}

func TestSpawnLosingRoll(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{}, 0)

	s.rng.ints = []int{1, 999}
	assert.False(t, s.spawn.MaybeSpawnEnemy())
	assert.False(t, s.spawn.MaybeSpawnTreasure())
	assert.Equal(t, 0, s.world.Enemies.Len())
	assert.Equal(t, 0, s.world.Chests.Len())
}

func TestSpawnResamplesPlayerXZ(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{Y: 1}, 0)

	// First sample lands exactly on the player
	s.rng.ints = []int{0}
	s.rng.floats = []float64{0.5, 0.5, 0.6, 0.5}

	require.True(t, s.spawn.MaybeSpawnTreasure())
	c := s.world.Chests.All()[0]
	assert.InDelta(t, 50, c.Position.X, 1e-9)
	assert.InDelta(t, 0, c.Position.Z, 1e-9)
}

func TestSpawnRespectsCaps(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{}, 0)

	for i := 0; i < 20; i++ {
		s.rng.ints = []int{0, 0}
		s.rng.floats = []float64{float64(i) / 40, 0.1, float64(i) / 40, 0.9}
		s.spawn.Update()
		assert.LessOrEqual(t, s.world.Enemies.Len(), parameter.MaxEnemyShips)
		assert.LessOrEqual(t, s.world.Chests.Len(), parameter.MaxTreasureChests)
	}
	assert.Equal(t, parameter.MaxEnemyShips, s.world.Enemies.Len())
	assert.Equal(t, parameter.MaxTreasureChests, s.world.Chests.Len())
	assert.Equal(t, int64(parameter.MaxEnemyShips), s.world.Status.Ints.Get("spawn.enemy").Load())
}

func TestSpawnCapCountsLoading(t *testing.T) {
	loader := &engine.ManualLoader{}
	s := newSimWithLoader(t, loader)
	s.world.SpawnPlayer(vmath.Vec3F{}, 0)
	loader.ResolveAll()
	s.attach()

	for i := 0; i < parameter.MaxEnemyShips+3; i++ {
		s.rng.ints = []int{0}
		s.rng.floats = []float64{0.1, 0.2}
		s.spawn.MaybeSpawnEnemy()
	}
	assert.Equal(t, parameter.MaxEnemyShips, s.world.Enemies.Len())
	assert.Equal(t, parameter.MaxEnemyShips, loader.Pending())
}

func TestSpawnRequiresActivePlayer(t *testing.T) {
	loader := &engine.ManualLoader{}
	s := newSimWithLoader(t, loader)
	s.world.SpawnPlayer(vmath.Vec3F{}, 0)

	s.rng.ints = []int{0, 0}
	assert.False(t, s.spawn.MaybeSpawnEnemy())
	assert.False(t, s.spawn.MaybeSpawnTreasure())
	assert.Empty(t, s.rng.intN, "Expected no roll without an Active player")
}

func TestSpawnRateWithSeededSource(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{}, 0)
	s.spawn.rng = rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20000; i++ {
		s.spawn.Update()
	}
	assert.Equal(t, parameter.MaxEnemyShips, s.world.Enemies.Len(), "Expected the cap reached over many rolls")
	assert.Equal(t, parameter.MaxTreasureChests, s.world.Chests.Len())
}
