package system

import (
	"math"
	"testing"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireOneShotPerClockPeriod(t *testing.T) {
	s := newSim(t)
	p := s.player(t, vmath.Vec3F{Y: 1}, 0)
	e := s.enemy(t, vmath.Vec3F{X: 10, Y: 2})

	shots := 0
	for i := 0; i < parameter.ClockPeriod; i++ {
		s.clock.Advance()
		if s.fire.MaybeFire(e, p) {
			shots++
		}
	}

	assert.Equal(t, 1, shots)
	require.Len(t, e.Bullets, 1)
	assert.Equal(t, e.Position, e.Bullets[0].Position)
	assert.False(t, e.Bullets[0].PlayerOwned)
	assert.Equal(t, int64(1), s.world.Status.Ints.Get("fire.enemy").Load())
}

func TestFireBoxRange(t *testing.T) {
	s := newSim(t)
	p := s.player(t, vmath.Vec3F{}, 0)
	require.True(t, s.clock.AtZero())

	cases := []struct {
		name string
		pos  vmath.Vec3F
		fire bool
	}{
		{"inside box", vmath.Vec3F{X: 49.9, Z: -49.9}, true},
		// Euclidean distance ~70 but still inside the per-axis box
		{"box corner", vmath.Vec3F{X: 49.5, Z: 49.5}, true},
		{"edge x", vmath.Vec3F{X: 50}, false},
		{"edge z", vmath.Vec3F{Z: -50}, false},
		{"height ignored", vmath.Vec3F{Y: 500}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enemy := newActiveEnemy(tc.pos)
			assert.Equal(t, tc.fire, s.fire.MaybeFire(enemy, p))
		})
	}
}

func TestFireSkipsInactiveEnemy(t *testing.T) {
	loader := &engine.ManualLoader{}
	s := newSimWithLoader(t, loader)
	p := s.world.SpawnPlayer(vmath.Vec3F{}, 0)
	e, _ := s.world.SpawnEnemy(vmath.Vec3F{X: 1})

	assert.False(t, s.fire.MaybeFire(e, p), "Expected Loading enemy not to fire")
	assert.Empty(t, e.Bullets)

	loader.ResolveAll()
	s.world.Destroy(e.Handle)
	assert.False(t, s.fire.MaybeFire(e, p), "Expected Destroyed enemy not to fire")
}

func TestFireSalvoAllEnemiesTogether(t *testing.T) {
	s := newSim(t)
	s.player(t, vmath.Vec3F{}, 0)
	a := s.enemy(t, vmath.Vec3F{X: 10})
	b := s.enemy(t, vmath.Vec3F{X: -10})
	far := s.enemy(t, vmath.Vec3F{X: 300})

	s.fire.Update()

	assert.Len(t, a.Bullets, 1)
	assert.Len(t, b.Bullets, 1)
	assert.Empty(t, far.Bullets)
}

func TestFirePlayer(t *testing.T) {
	s := newSim(t)
	p := s.player(t, vmath.Vec3F{Z: -15}, 0.3)

	require.True(t, s.fire.FirePlayer())
	require.Len(t, p.Bullets, 1)
	b := p.Bullets[0]
	assert.True(t, b.PlayerOwned)
	assert.InDelta(t, vmath.WrapYaw(0.3+math.Pi), b.Yaw, 1e-9)
	assert.Equal(t, 1, s.audio.effects[core.EffectCannon])

	s.state.EnterGameOver(p.Position, 0)
	assert.False(t, s.fire.FirePlayer())
	assert.Len(t, p.Bullets, 1)
}
