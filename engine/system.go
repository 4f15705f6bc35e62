package engine

// System is one ordered stage of the simulation tick
// Update runs on the tick goroutine; systems consult GameState themselves to suspend in GameOver
type System interface {
	// Init resets per-session state and telemetry
	Init()
	// Name identifies the system in logs
	Name() string
	// Priority orders execution, lower runs first
	Priority() int
	Update()
}
