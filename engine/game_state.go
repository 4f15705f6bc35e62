package engine

import "github.com/lixenwraith/broadside/vmath"

// Phase is the session phase
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "game_over"
	}
	return "playing"
}

// GameState is the one-way Playing -> GameOver machine
// Owned by the simulation loop; not synchronized
type GameState struct {
	phase    Phase
	terminal vmath.Vec3F
	overTick uint64
}

// NewGameState starts in PhasePlaying
func NewGameState() *GameState {
	return &GameState{phase: PhasePlaying}
}

// Phase returns the current phase
func (g *GameState) Phase() Phase { return g.phase }

// IsOver reports whether the terminal phase was entered
func (g *GameState) IsOver() bool { return g.phase == PhaseGameOver }

// EnterGameOver performs the transition and records the player's last position
// Returns true only for the call that performed the transition
func (g *GameState) EnterGameOver(terminal vmath.Vec3F, tick uint64) bool {
	if g.phase == PhaseGameOver {
		return false
	}
	g.phase = PhaseGameOver
	g.terminal = terminal
	g.overTick = tick
	return true
}

// TerminalPosition is the player position captured at the transition
func (g *GameState) TerminalPosition() vmath.Vec3F { return g.terminal }

// GameOverTick is the tick on which the transition happened
func (g *GameState) GameOverTick() uint64 { return g.overTick }
