package component

import (
	"github.com/lixenwraith/broadside/core"
)

// Ship is the shared state of player and enemy ships
type Ship struct {
	*core.Handle
	Transform

	// Health starts at parameter.ShipInitialHealth and floors at 0, which means destroyed
	Health int
	// Speed is forward distance per tick
	Speed float64
	// Bullets fired by this ship, in firing order
	Bullets []*Bullet
}

// TakeDamage subtracts damage, floored at 0, and returns the remaining health
func (s *Ship) TakeDamage(damage int) int {
	s.Health = max(s.Health-damage, 0)
	return s.Health
}

// Dead reports whether the ship's health is exhausted
func (s *Ship) Dead() bool {
	return s.Health <= 0
}

// AddBullet appends a bullet to the ship's collection
func (s *Ship) AddBullet(b *Bullet) {
	s.Bullets = append(s.Bullets, b)
}

// RetainBullets keeps bullets for which keep returns true and returns the rest
// Order of retained bullets is preserved
func (s *Ship) RetainBullets(keep func(*Bullet) bool) (removed []*Bullet) {
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if keep(b) {
			kept = append(kept, b)
		} else {
			removed = append(removed, b)
		}
	}
	// Clear the tail so dropped bullets are collectable
	for i := len(kept); i < len(s.Bullets); i++ {
		s.Bullets[i] = nil
	}
	s.Bullets = kept
	return removed
}

// PlayerShip is the single player-controlled ship
type PlayerShip struct {
	Ship

	TreasureCollected int
	ShipsDestroyed    int
}

// EnemyShip pursues the player and fires in salvos
type EnemyShip struct {
	Ship
}
