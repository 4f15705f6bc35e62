package system

import (
	"math"

	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
)

// MovementSystem moves ships and bullets
// Enemies turn to face the player then advance; bullets fly straight along their yaw
type MovementSystem struct {
	world *engine.World
	state *engine.GameState

	enabled bool
}

func NewMovementSystem(world *engine.World, state *engine.GameState) *MovementSystem {
	s := &MovementSystem{
		world: world,
		state: state,
	}
	s.Init()
	return s
}

func (s *MovementSystem) Init() {
	s.enabled = true
}

// Name returns system's name
func (s *MovementSystem) Name() string {
	return "movement"
}

func (s *MovementSystem) Priority() int {
	return parameter.PriorityMovement
}

// ApplyCommand executes a steering command against the player ship
// Returns false when the command was ignored: not a steering command, no Active player, or GameOver
func (s *MovementSystem) ApplyCommand(cmd core.Command) bool {
	p := s.world.Player
	if p == nil || !p.IsActive() || s.state.IsOver() {
		return false
	}

	// The player model's nose points along local -Z
	nose := p.Yaw + math.Pi

	switch cmd.Type {
	case core.CommandForward:
		p.Position = vmath.Translate(p.Position, nose, p.Speed)
	case core.CommandBackward:
		p.Position = vmath.Translate(p.Position, nose, -p.Speed)
	case core.CommandRotateLeft:
		p.Yaw = vmath.WrapYaw(p.Yaw + parameter.PlayerTurnRate)
	case core.CommandRotateRight:
		p.Yaw = vmath.WrapYaw(p.Yaw - parameter.PlayerTurnRate)
	default:
		return false
	}
	return true
}

func (s *MovementSystem) Update() {
	if !s.enabled || s.state.IsOver() {
		return
	}

	p := s.world.Player
	if p != nil && p.IsActive() {
		for _, e := range s.world.Enemies.All() {
			if !e.IsActive() {
				continue
			}
			e.Yaw = vmath.YawTowards(e.Position, p.Position, e.Yaw)
			e.Advance(e.Speed)
		}
	}

	if p != nil {
		advanceBullets(p.Bullets)
	}
	for _, e := range s.world.Enemies.All() {
		advanceBullets(e.Bullets)
	}
	advanceBullets(s.world.Orphans)
}

func advanceBullets(bullets []*component.Bullet) {
	for _, b := range bullets {
		if b.IsActive() {
			b.Advance(b.Speed)
		}
	}
}
