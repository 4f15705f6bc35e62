package parameter

import "github.com/lixenwraith/broadside/vmath"

// Ship Hit Points
const (
	// ShipInitialHealth is the starting health of every ship
	ShipInitialHealth = 100
)

// Speeds (world units per tick)
const (
	// PlayerSpeed is the player ship forward speed per move command
	PlayerSpeed = 0.4

	// EnemySpeed is the enemy ship pursuit speed
	EnemySpeed = 0.1

	// BulletSpeed is the projectile speed
	BulletSpeed = 1.0

	// ExplosionRise is the vertical drift of an explosion per tick
	ExplosionRise = 0.1
)

// Player
const (
	// PlayerTurnRate is the yaw change per rotate command (radians)
	PlayerTurnRate = 0.05
)

// PlayerStartPosition is where the player ship is created
var PlayerStartPosition = vmath.Vec3F{X: 0, Y: 1, Z: -15}

// Registry Capacities
const (
	// MaxEnemyShips is the cap on concurrently registered enemy ships
	MaxEnemyShips = 5

	// MaxTreasureChests is the cap on concurrently registered chests
	MaxTreasureChests = 5
)
