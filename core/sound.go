package core

// Track is a looping background piece
type Track int

const (
	TrackNone Track = iota
	TrackSeaShanty
	TrackCount
)

// Effect is a one-shot sound
type Effect int

const (
	EffectExplosion Effect = iota // Any explosion spawn
	EffectTreasure                // Chest pickup
	EffectGameOver                // Player ship lost
	EffectCannon                  // Player fire
	EffectCount
)

func (e Effect) String() string {
	switch e {
	case EffectExplosion:
		return "explosion"
	case EffectTreasure:
		return "treasure"
	case EffectGameOver:
		return "game_over"
	case EffectCannon:
		return "cannon"
	default:
		return "unknown"
	}
}
