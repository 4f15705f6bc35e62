package parameter

// Damage
const (
	// DamagePlayerBullet is the health an enemy loses per player bullet
	DamagePlayerBullet = 25

	// DamageEnemyBullet is the health the player loses per enemy bullet
	DamageEnemyBullet = 5
)

// Ranges
const (
	// CollisionRadius is the exclusive Euclidean hit distance between two entities
	CollisionRadius = 5.0

	// FireRange is the exclusive per-axis box half-width in which an enemy shoots
	FireRange = 50.0

	// BulletMaxRange is the distance from the owner beyond which a bullet is dropped
	BulletMaxRange = 1000.0
)

// Explosions
const (
	// ExplosionScaleKill is the explosion scale for a lethal hit
	ExplosionScaleKill = 5.0

	// ExplosionScaleHit is the explosion scale for a non-lethal hit
	ExplosionScaleHit = 1.0

	// ExplosionTickTenths is the elapsed time added per tick, in tenths
	ExplosionTickTenths = 1

	// ExplosionLifetimeTenths is the elapsed time at which an explosion expires, in tenths (10.0)
	ExplosionLifetimeTenths = 100
)
