package core

// Entity is a unique identifier for a simulated object
// Zero is never issued and marks "no entity"
type Entity uint64

// Kind discriminates the simulated object variants
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindEnemy
	KindBullet
	KindTreasure
	KindExplosion
)

var kindNames = [...]string{
	KindNone:      "none",
	KindPlayer:    "player_ship",
	KindEnemy:     "enemy_ship",
	KindBullet:    "bullet",
	KindTreasure:  "treasure_chest",
	KindExplosion: "explosion",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Lifecycle is the coarse state of an entity
// Loading -> Active -> Destroyed, or Loading -> Destroyed when cancelled
type Lifecycle int32

const (
	Loading Lifecycle = iota
	Active
	Destroyed
)

func (l Lifecycle) String() string {
	switch l {
	case Loading:
		return "loading"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	default:
		return "invalid"
	}
}
