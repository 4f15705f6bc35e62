package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/status"
	"github.com/lixenwraith/broadside/vmath"
)

// neverRand loses every spawn roll
type neverRand struct{}

func (neverRand) IntN(int) int     { return 1 }
func (neverRand) Float64() float64 { return 0.25 }

type recordingCamera struct {
	presets []core.CameraView
	follows int
	zooms   []vmath.Vec3F
}

func (c *recordingCamera) Follow(vmath.Vec3F)            { c.follows++ }
func (c *recordingCamera) SetPreset(v core.CameraView)   { c.presets = append(c.presets, v) }
func (c *recordingCamera) ZoomTowards(point vmath.Vec3F) { c.zooms = append(c.zooms, point) }

type recordingAudio struct {
	loops   []core.Track
	stops   int
	effects map[core.Effect]int
}

func (a *recordingAudio) PlayLoop(t core.Track) { a.loops = append(a.loops, t) }
func (a *recordingAudio) Stop()                 { a.stops++ }
func (a *recordingAudio) PlayOneShot(e core.Effect) {
	if a.effects == nil {
		a.effects = make(map[core.Effect]int)
	}
	a.effects[e]++
}

type recordingHUD struct {
	snapshots []engine.Snapshot
}

func (h *recordingHUD) Update(s engine.Snapshot) { h.snapshots = append(h.snapshots, s) }

type fixture struct {
	loop   *Loop
	scene  *engine.RecordingScene
	camera *recordingCamera
	audio  *recordingAudio
	hud    *recordingHUD
	clock  *engine.MockTimeProvider
}

func newFixture(t *testing.T, loader engine.AssetLoader) *fixture {
	t.Helper()
	f := &fixture{
		scene:  engine.NewRecordingScene(),
		camera: &recordingCamera{},
		audio:  &recordingAudio{},
		hud:    &recordingHUD{},
		clock:  engine.NewMockTimeProvider(time.Unix(1000, 0)),
	}
	f.loop = New(Options{
		Loader: loader,
		Scene:  f.scene,
		Camera: f.camera,
		Audio:  f.audio,
		HUD:    f.hud,
		Rand:   neverRand{},
		Time:   f.clock,
		View:   core.ViewBirdsEye,
	})
	return f
}

func TestLoopStart(t *testing.T) {
	f := newFixture(t, engine.ImmediateLoader{})
	f.loop.Start()
	f.loop.Start()

	p := f.loop.World().Player
	require.NotNil(t, p)
	assert.Equal(t, parameter.PlayerStartPosition, p.Position)
	assert.Equal(t, []core.Track{core.TrackSeaShanty}, f.audio.loops, "Expected one music loop")
	assert.Equal(t, []core.CameraView{core.ViewBirdsEye}, f.camera.presets)

	// Attach lands on the first tick that observes activation
	assert.Empty(t, f.scene.Attached)
	f.loop.Tick()
	assert.Equal(t, core.KindPlayer, f.scene.Attached[p.ID()])
}

func TestLoopSystemsOrdered(t *testing.T) {
	f := newFixture(t, nil)
	names := make([]string, 0, len(f.loop.systems))
	for _, s := range f.loop.systems {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"movement", "explosion", "fire", "spawn", "collision", "combat", "despawn"}, names)
	assert.NotEqual(t, f.loop.Session().String(), newFixture(t, nil).loop.Session().String())
}

func TestLoopCommandsApplyOnNextTick(t *testing.T) {
	f := newFixture(t, engine.ImmediateLoader{})
	f.loop.Start()
	f.loop.Tick()
	p := f.loop.World().Player

	f.loop.Submit(core.Command{Type: core.CommandForward})
	f.loop.Submit(core.Command{Type: core.CommandFire})
	f.loop.Submit(core.Command{Type: core.CommandSwitchCameraView, View: core.ViewThirdPerson})
	assert.Equal(t, parameter.PlayerStartPosition, p.Position, "Expected commands deferred to the tick")

	f.loop.Tick()
	assert.InDelta(t, parameter.PlayerStartPosition.Z-parameter.PlayerSpeed, p.Position.Z, 1e-9)
	require.Len(t, p.Bullets, 1)
	assert.Equal(t, core.ViewThirdPerson, f.loop.View())
	assert.Equal(t, core.ViewThirdPerson, f.camera.presets[len(f.camera.presets)-1])
}

func TestLoopWaitsForPlayerAsset(t *testing.T) {
	loader := &engine.ManualLoader{}
	f := newFixture(t, loader)
	f.loop.Start()
	p := f.loop.World().Player

	f.loop.Submit(core.Command{Type: core.CommandForward})
	f.loop.Tick()
	assert.Equal(t, core.Loading, p.State())
	assert.Equal(t, parameter.PlayerStartPosition, p.Position, "Expected Loading player to ignore commands")
	assert.Equal(t, 1, f.camera.follows, "Expected only the start-up follow")

	loader.ResolveAll()
	f.loop.Tick()
	assert.Contains(t, f.scene.Attached, p.ID())
	assert.Equal(t, 2, f.camera.follows)
}

func TestLoopAssetFailureDestroysEntity(t *testing.T) {
	loader := &engine.ManualLoader{}
	f := newFixture(t, loader)
	f.loop.Start()
	loader.ResolveAll()
	f.loop.Tick()

	c, ok := f.loop.World().SpawnTreasure(vmath.Vec3F{X: 40})
	require.True(t, ok)
	loader.FailAll(errors.New("no model"))
	f.loop.Tick()

	assert.Equal(t, core.Destroyed, c.State())
	assert.Equal(t, 0, f.loop.World().Chests.Len())
	assert.NotContains(t, f.scene.Attached, c.ID())
}

func TestLoopHUDSnapshots(t *testing.T) {
	f := newFixture(t, engine.ImmediateLoader{})
	f.loop.Start()

	f.clock.Advance(1500 * time.Millisecond)
	f.loop.Tick()
	f.loop.Tick()

	require.Len(t, f.hud.snapshots, 2)
	s := f.hud.snapshots[1]
	assert.Equal(t, parameter.ShipInitialHealth, s.Health)
	assert.Equal(t, 1500*time.Millisecond, s.Elapsed)
	assert.Equal(t, uint64(2), s.Tick)
	assert.False(t, s.GameOver)
}

func TestLoopSalvosEndSession(t *testing.T) {
	f := newFixture(t, engine.ImmediateLoader{})
	f.loop.Start()
	f.loop.Tick()

	start := parameter.PlayerStartPosition
	_, ok := f.loop.World().SpawnEnemy(vmath.Vec3F{X: start.X, Y: 2, Z: start.Z + 3})
	require.True(t, ok)

	ticks := 1
	for !f.loop.State().IsOver() && ticks < 10*parameter.ClockPeriod*20 {
		f.loop.Tick()
		ticks++
	}

	require.True(t, f.loop.State().IsOver())
	// One salvo per clock period, 5 damage each
	assert.Equal(t, 20*parameter.ClockPeriod, ticks)

	p := f.loop.World().Player
	assert.Equal(t, core.Destroyed, p.State())
	assert.Equal(t, p.Position, f.loop.State().TerminalPosition())
	assert.Equal(t, 1, f.audio.stops)
	assert.Equal(t, 1, f.audio.effects[core.EffectGameOver])

	last := f.hud.snapshots[len(f.hud.snapshots)-1]
	assert.True(t, last.GameOver)
	assert.Equal(t, 0, last.Health)
}

func TestLoopGameOverFreezesAndZooms(t *testing.T) {
	f := newFixture(t, engine.ImmediateLoader{})
	f.loop.Start()
	f.loop.Tick()
	p := f.loop.World().Player

	x := f.loop.World().SpawnExplosion(vmath.Vec3F{X: 3}, 1)
	f.loop.State().EnterGameOver(p.Position, 1)

	f.loop.Submit(core.Command{Type: core.CommandForward})
	f.loop.Submit(core.Command{Type: core.CommandSwitchCameraView, View: core.ViewThirdPerson})
	f.loop.Tick()
	f.loop.Tick()

	assert.Equal(t, parameter.PlayerStartPosition, p.Position, "Expected input ignored after GameOver")
	assert.Equal(t, core.ViewBirdsEye, f.loop.View())
	require.Len(t, f.camera.zooms, 2)
	assert.Equal(t, p.Position, f.camera.zooms[0])
	assert.Equal(t, 2, x.ElapsedTenths, "Expected explosions to keep aging")
}

func TestLoopPublishesMetrics(t *testing.T) {
	reg := status.NewRegistry()
	l := New(Options{Status: reg, Rand: neverRand{}})
	l.Start()
	l.Tick()

	assert.Equal(t, int64(1), reg.Ints.Get("engine.ticks").Load())
	assert.Equal(t, int64(1), reg.Ints.Get("world.entities").Load(), "Expected the player alone")
	assert.False(t, reg.Bools.Get("game.over").Load())

	l.State().EnterGameOver(vmath.Vec3F{}, 1)
	l.Tick()
	assert.True(t, reg.Bools.Get("game.over").Load())
	assert.Zero(t, reg.Ints.Get("queue.dropped").Load())
}

func TestLoopAttachesPlayerAfterQueueOverflow(t *testing.T) {
	loader := &engine.ManualLoader{}
	f := newFixture(t, loader)
	f.loop.Start()
	p := f.loop.World().Player

	for range 1100 {
		f.loop.Submit(core.Command{Type: core.CommandRotateLeft})
	}
	// Resolution notice arrives at a full queue and is lost
	loader.ResolveAll()
	require.True(t, p.IsActive())
	require.Positive(t, f.loop.World().Queue.Dropped())

	f.loop.Tick()
	assert.Equal(t, core.KindPlayer, f.scene.Attached[p.ID()])
	assert.True(t, p.Attached())
}
