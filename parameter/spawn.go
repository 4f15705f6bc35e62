package parameter

// Procedural Spawning
const (
	// SpawnRollRange is the exclusive upper bound of the per-tick spawn roll
	// A spawn happens only on a roll of exactly 0
	SpawnRollRange = 1000

	// SpawnOffsetRange is the half-width of the square around the player used for placement
	SpawnOffsetRange = 250.0

	// SpawnHeight is the fixed Y of spawned enemies and chests
	SpawnHeight = 2.0
)
