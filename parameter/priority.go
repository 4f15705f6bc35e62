package parameter

// System execution order within a tick, lower runs first
const (
	PriorityMovement  = 10
	PriorityExplosion = 15
	PriorityFire      = 20
	PrioritySpawn     = 30
	PriorityCollision = 40
	PriorityCombat    = 50
	PriorityDespawn   = 60
)
