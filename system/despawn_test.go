package system

import (
	"testing"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDespawnBulletRange(t *testing.T) {
	s := newSim(t)
	p := s.player(t, vmath.Vec3F{}, 0)

	far := s.playerBulletAt(vmath.Vec3F{X: 1000.01})
	near := s.playerBulletAt(vmath.Vec3F{X: 999.99})

	assert.Equal(t, 1, s.despawn.SweepBullets())
	require.Len(t, p.Bullets, 1)
	assert.Same(t, near, p.Bullets[0])
	assert.Equal(t, core.Destroyed, far.State())
	assert.NotContains(t, s.scene.Attached, far.ID())
}

func TestDespawnMeasuresOwnerCurrentPosition(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{Z: -2000}, 0)
	e := s.enemy(t, vmath.Vec3F{})
	b := s.enemyBulletAt(e, vmath.Vec3F{X: 999})

	s.despawn.SweepBullets()
	require.Len(t, e.Bullets, 1)

	// Owner moves away: same bullet is now out of range
	e.Position.X = -2
	s.despawn.SweepBullets()
	assert.Empty(t, e.Bullets)
	assert.Equal(t, core.Destroyed, b.State())
}

func TestDespawnOrphansAgainstLastPosition(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{Z: -2000}, 0)
	e := s.enemy(t, vmath.Vec3F{})
	s.enemyBulletAt(e, vmath.Vec3F{X: 500})
	s.enemyBulletAt(e, vmath.Vec3F{X: 1001})

	s.world.Destroy(e.Handle)
	s.world.PruneDestroyed()
	require.Len(t, s.world.Orphans, 2)

	assert.Equal(t, 1, s.despawn.SweepBullets())
	assert.Len(t, s.world.Orphans, 1)
}

func TestDespawnExplosionLifetime(t *testing.T) {
	s := newSim(t)
	x := s.world.SpawnExplosion(vmath.Vec3F{}, parameter.ExplosionScaleKill)
	s.attach()

	for i := 0; i < 99; i++ {
		s.explosion.Update()
		s.despawn.Update()
	}
	assert.Equal(t, 1, s.world.Explosions.Len())

	s.explosion.Update()
	s.despawn.Update()
	assert.Equal(t, 0, s.world.Explosions.Len())
	assert.Equal(t, core.Destroyed, x.State())
	assert.NotContains(t, s.scene.Attached, x.ID())
	assert.Equal(t, int64(1), s.world.Status.Ints.Get("despawn.explosions").Load())
}

func TestDespawnInGameOverKeepsBulletsExpiresExplosions(t *testing.T) {
	s := newSim(t)
	p := s.player(t, vmath.Vec3F{}, 0)
	s.playerBulletAt(vmath.Vec3F{X: 5000})
	x := s.world.SpawnExplosion(vmath.Vec3F{}, 1)
	s.attach()
	x.ElapsedTenths = parameter.ExplosionLifetimeTenths
	s.state.EnterGameOver(p.Position, 0)

	s.despawn.Update()
	assert.Len(t, p.Bullets, 1)
	assert.Equal(t, 0, s.world.Explosions.Len())
}
