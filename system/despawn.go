package system

import (
	"sync/atomic"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
)

// DespawnSystem removes bullets out of range of their owner and expired explosions
// Bullet sweep is suspended in GameOver; explosions keep expiring
type DespawnSystem struct {
	world *engine.World
	state *engine.GameState

	// Telemetry
	statBullets    *atomic.Int64
	statExplosions *atomic.Int64

	enabled bool
}

func NewDespawnSystem(world *engine.World, state *engine.GameState) *DespawnSystem {
	s := &DespawnSystem{
		world: world,
		state: state,
	}

	s.statBullets = world.Status.Ints.Get("despawn.bullets")
	s.statExplosions = world.Status.Ints.Get("despawn.explosions")

	s.Init()
	return s
}

func (s *DespawnSystem) Init() {
	s.statBullets.Store(0)
	s.statExplosions.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *DespawnSystem) Name() string {
	return "despawn"
}

func (s *DespawnSystem) Priority() int {
	return parameter.PriorityDespawn
}

func (s *DespawnSystem) Update() {
	if !s.enabled {
		return
	}
	if !s.state.IsOver() {
		s.SweepBullets()
	}
	s.SweepExplosions()
	s.world.PruneDestroyed()
}

// inFlight keeps bullets within range of the owner's current position
// Orphans measure against the owner's last position, which no longer moves
func inFlight(b *component.Bullet) bool {
	return b.OwnerDistance() <= parameter.BulletMaxRange
}

// SweepBullets removes out-of-range bullets from every collection and returns the count
func (s *DespawnSystem) SweepBullets() int {
	removed := 0
	drop := func(bullets []*component.Bullet) {
		for _, b := range bullets {
			s.world.Destroy(b.Handle)
			removed++
		}
	}

	if p := s.world.Player; p != nil {
		drop(p.RetainBullets(inFlight))
	}
	for _, e := range s.world.Enemies.All() {
		drop(e.RetainBullets(inFlight))
	}
	removed += s.world.RetainOrphans(inFlight)

	s.statBullets.Add(int64(removed))
	return removed
}

// SweepExplosions removes explosions that reached their lifetime and returns the count
func (s *DespawnSystem) SweepExplosions() int {
	expired := s.world.Explosions.Retain(func(x *component.Explosion) bool {
		return !x.Expired()
	})
	for _, x := range expired {
		s.world.Destroy(x.Handle)
	}
	s.statExplosions.Add(int64(len(expired)))
	return len(expired)
}
