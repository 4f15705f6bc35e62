package engine

import (
	"time"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/vmath"
)

// Scene owns visual representations; the core never draws
// Called from the tick goroutine only
type Scene interface {
	Attach(id core.Entity, kind core.Kind, v core.Visual, t component.Transform)
	Detach(id core.Entity)
	Update(id core.Entity, t component.Transform)
}

// AssetLoader resolves a kind to its visual asynchronously
// done may be invoked from any goroutine, exactly once
type AssetLoader interface {
	Load(kind core.Kind, done func(core.Visual, error))
}

// Camera positions the view
type Camera interface {
	Follow(target vmath.Vec3F)
	SetPreset(view core.CameraView)
	ZoomTowards(point vmath.Vec3F)
}

// Audio plays music and effects, fire-and-forget
type Audio interface {
	PlayLoop(track core.Track)
	Stop()
	PlayOneShot(effect core.Effect)
}

// Snapshot is the read-only HUD view produced once per tick
type Snapshot struct {
	TreasureCollected int
	ShipsDestroyed    int
	Health            int
	Elapsed           time.Duration
	GameOver          bool
	Tick              uint64
}

// HUD consumes per-tick snapshots
type HUD interface {
	Update(s Snapshot)
}

// TimeProvider is the wall clock behind the HUD elapsed counter
// The simulation itself advances by ticks only
type TimeProvider interface {
	Now() time.Time
}

// WallClock reads the system clock
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// Rand is the randomness consumed by spawning
// *math/rand/v2.Rand satisfies it
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NopScene discards scene calls
type NopScene struct{}

func (NopScene) Attach(core.Entity, core.Kind, core.Visual, component.Transform) {}
func (NopScene) Detach(core.Entity) {}
func (NopScene) Update(core.Entity, component.Transform) {}

// NopCamera discards camera calls
type NopCamera struct{}

func (NopCamera) Follow(vmath.Vec3F) {}
func (NopCamera) SetPreset(core.CameraView) {}
func (NopCamera) ZoomTowards(vmath.Vec3F) {}

// NopAudio discards audio calls
type NopAudio struct{}

func (NopAudio) PlayLoop(core.Track) {}
func (NopAudio) Stop() {}
func (NopAudio) PlayOneShot(core.Effect) {}

// NopHUD discards snapshots
type NopHUD struct{}

func (NopHUD) Update(Snapshot) {}

// ImmediateLoader resolves every load synchronously with a placeholder visual
// Used by headless runs and tests that do not care about loading latency
type ImmediateLoader struct{}

func (ImmediateLoader) Load(kind core.Kind, done func(core.Visual, error)) {
	done(core.Visual{Model: kind.String(), Glyph: '*', Scale: 1}, nil)
}
