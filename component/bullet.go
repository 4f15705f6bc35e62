package component

import (
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/vmath"
)

// Bullet is a linear projectile owned by the ship that fired it
type Bullet struct {
	*core.Handle
	Transform

	// Owner is a back-reference for range checks, not ownership
	Owner *Ship
	// PlayerOwned selects the target set during collision detection
	PlayerOwned bool
	Speed       float64
}

// OwnerDistance returns the distance to the owner's current position
func (b *Bullet) OwnerDistance() float64 {
	return vmath.V3FDist(b.Position, b.Owner.Position)
}
