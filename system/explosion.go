package system

import (
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
)

// ExplosionSystem ages explosions and lifts them each tick
// Runs in GameOver as well
type ExplosionSystem struct {
	world *engine.World

	enabled bool
}

func NewExplosionSystem(world *engine.World) *ExplosionSystem {
	s := &ExplosionSystem{world: world}
	s.Init()
	return s
}

func (s *ExplosionSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *ExplosionSystem) Name() string {
	return "explosion"
}

func (s *ExplosionSystem) Priority() int {
	return parameter.PriorityExplosion
}

func (s *ExplosionSystem) Update() {
	if !s.enabled {
		return
	}
	for _, x := range s.world.Explosions.All() {
		if !x.IsActive() {
			continue
		}
		x.ElapsedTenths += parameter.ExplosionTickTenths
		x.Position.Y += parameter.ExplosionRise
	}
}
