package system

import (
	"testing"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/event"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws; exhausted scripts return a losing roll and the centre offset
type scriptedRand struct {
	ints   []int
	floats []float64
	intN   []int
}

func (r *scriptedRand) IntN(n int) int {
	r.intN = append(r.intN, n)
	if len(r.ints) == 0 {
		return 1
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// recordingAudio counts effects
type recordingAudio struct {
	effects map[core.Effect]int
	stops   int
}

func newRecordingAudio() *recordingAudio {
	return &recordingAudio{effects: make(map[core.Effect]int)}
}

func (a *recordingAudio) PlayLoop(core.Track)       {}
func (a *recordingAudio) Stop()                     { a.stops++ }
func (a *recordingAudio) PlayOneShot(e core.Effect) { a.effects[e]++ }

// sim wires every system over one world the way the game loop does
type sim struct {
	world *engine.World
	scene *engine.RecordingScene
	state *engine.GameState
	clock *engine.SimulationClock
	rng   *scriptedRand
	audio *recordingAudio

	movement  *MovementSystem
	explosion *ExplosionSystem
	fire      *FireSystem
	spawn     *SpawnSystem
	collision *CollisionSystem
	combat    *CombatSystem
	despawn   *DespawnSystem
}

func newSim(t *testing.T) *sim {
	return newSimWithLoader(t, engine.ImmediateLoader{})
}

func newSimWithLoader(t *testing.T, loader engine.AssetLoader) *sim {
	t.Helper()
	s := &sim{
		scene: engine.NewRecordingScene(),
		state: engine.NewGameState(),
		clock: engine.NewSimulationClock(),
		rng:   &scriptedRand{},
		audio: newRecordingAudio(),
	}
	s.world = engine.NewWorld(loader, s.scene, nil, nil)
	s.movement = NewMovementSystem(s.world, s.state)
	s.explosion = NewExplosionSystem(s.world)
	s.fire = NewFireSystem(s.world, s.clock, s.state, s.audio, nil)
	s.spawn = NewSpawnSystem(s.world, s.state, s.rng, nil)
	s.collision = NewCollisionSystem(s.world, s.state)
	s.combat = NewCombatSystem(s.world, s.state, s.collision, s.audio, nil)
	s.despawn = NewDespawnSystem(s.world, s.state)
	return s
}

// attach drains resolution events into the scene
func (s *sim) attach() {
	for _, ev := range s.world.Queue.Consume() {
		if ev.Type != event.EventEntityResolved {
			continue
		}
		h := ev.Payload.(*core.Handle)
		if tr, ok := s.world.Lookup(h.ID()); ok {
			s.world.Attach(h, tr)
		}
	}
}

// tick runs one full stage sequence
func (s *sim) tick() {
	s.clock.Advance()
	s.world.Status.Ints.Get("engine.ticks").Add(1)
	s.attach()
	for _, sys := range []engine.System{s.movement, s.explosion, s.fire, s.spawn, s.collision, s.combat, s.despawn} {
		sys.Update()
	}
}

func (s *sim) player(t *testing.T, pos vmath.Vec3F, yaw float64) *component.PlayerShip {
	t.Helper()
	p := s.world.SpawnPlayer(pos, yaw)
	s.attach()
	return p
}

func (s *sim) enemy(t *testing.T, pos vmath.Vec3F) *component.EnemyShip {
	t.Helper()
	e, ok := s.world.SpawnEnemy(pos)
	require.True(t, ok)
	s.attach()
	return e
}

func (s *sim) chest(t *testing.T, pos vmath.Vec3F) *component.TreasureChest {
	t.Helper()
	c, ok := s.world.SpawnTreasure(pos)
	require.True(t, ok)
	s.attach()
	return c
}

// enemyBulletAt creates an enemy bullet placed at pos
func (s *sim) enemyBulletAt(owner *component.EnemyShip, pos vmath.Vec3F) *component.Bullet {
	b := s.world.SpawnBullet(&owner.Ship, false)
	b.Position = pos
	s.attach()
	return b
}

// playerBulletAt creates a player bullet placed at pos
func (s *sim) playerBulletAt(pos vmath.Vec3F) *component.Bullet {
	b := s.world.SpawnBullet(&s.world.Player.Ship, true)
	b.Position = pos
	s.attach()
	return b
}

var detachedID core.Entity = 1 << 40

// newActiveEnemy builds an Active enemy outside the registry
func newActiveEnemy(pos vmath.Vec3F) *component.EnemyShip {
	detachedID++
	h := core.NewHandle(detachedID, core.KindEnemy)
	h.Resolve(core.Visual{Model: "enemy"})
	return &component.EnemyShip{Ship: component.Ship{
		Handle:    h,
		Transform: component.Transform{Position: pos},
		Health:    parameter.ShipInitialHealth,
	}}
}
