package system

import (
	"github.com/lixenwraith/broadside/component"
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/engine"
	"github.com/lixenwraith/broadside/parameter"
	"github.com/lixenwraith/broadside/vmath"
)

// HitKind classifies a proximity event
type HitKind uint8

const (
	HitNone HitKind = iota
	HitPlayerBulletEnemy
	HitEnemyBulletPlayer
	HitPlayerTreasure
)

func (k HitKind) String() string {
	switch k {
	case HitPlayerBulletEnemy:
		return "player_bullet_enemy"
	case HitEnemyBulletPlayer:
		return "enemy_bullet_player"
	case HitPlayerTreasure:
		return "player_treasure"
	default:
		return "none"
	}
}

// Hit is one detected contact; only the fields relevant to Kind are set
type Hit struct {
	Kind   HitKind
	Bullet *component.Bullet
	Enemy  *component.EnemyShip
	Chest  *component.TreasureChest
}

// CollisionSystem detects contacts between Active entities within the collision radius
// Pairwise scan; collections are small enough that no spatial index is kept
type CollisionSystem struct {
	world *engine.World
	state *engine.GameState

	// hits from the last Update, consumed by combat in the same tick
	hits []Hit

	enabled bool
}

func NewCollisionSystem(world *engine.World, state *engine.GameState) *CollisionSystem {
	s := &CollisionSystem{
		world: world,
		state: state,
		hits:  make([]Hit, 0, 16),
	}
	s.Init()
	return s
}

func (s *CollisionSystem) Init() {
	s.hits = s.hits[:0]
	s.enabled = true
}

// Name returns system's name
func (s *CollisionSystem) Name() string {
	return "collision"
}

func (s *CollisionSystem) Priority() int {
	return parameter.PriorityCollision
}

func (s *CollisionSystem) Update() {
	s.hits = s.hits[:0]
	if !s.enabled || s.state.IsOver() {
		return
	}
	s.hits = s.Detect(s.hits)
}

// Hits returns the contacts found by the last Update
func (s *CollisionSystem) Hits() []Hit {
	return s.hits
}

// Touching reports whether two Active entities are strictly within the collision radius
func Touching(a, b *core.Handle, pa, pb vmath.Vec3F) bool {
	if !a.IsActive() || !b.IsActive() {
		return false
	}
	return vmath.V3FDist(pa, pb) < parameter.CollisionRadius
}

// Detect appends contacts to dst in resolution order:
// player bullets against enemies, enemy bullets against the player, the player against chests
func (s *CollisionSystem) Detect(dst []Hit) []Hit {
	p := s.world.Player
	enemies := s.world.Enemies.All()

	if p != nil {
		for _, b := range p.Bullets {
			for _, e := range enemies {
				if Touching(b.Handle, e.Handle, b.Position, e.Position) {
					dst = append(dst, Hit{Kind: HitPlayerBulletEnemy, Bullet: b, Enemy: e})
				}
			}
		}
	}

	if p == nil {
		return dst
	}

	enemyBullet := func(b *component.Bullet) {
		if !b.PlayerOwned && Touching(b.Handle, p.Handle, b.Position, p.Position) {
			dst = append(dst, Hit{Kind: HitEnemyBulletPlayer, Bullet: b})
		}
	}
	for _, e := range enemies {
		for _, b := range e.Bullets {
			enemyBullet(b)
		}
	}
	for _, b := range s.world.Orphans {
		enemyBullet(b)
	}

	for _, c := range s.world.Chests.All() {
		if Touching(p.Handle, c.Handle, p.Position, c.Position) {
			dst = append(dst, Hit{Kind: HitPlayerTreasure, Chest: c})
		}
	}
	return dst
}
