package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/broadside/core"
)

// IntentType classifies what a key asks for
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentCommand
	IntentQuit
)

// Binding describes a key's effect without function pointers
type Binding struct {
	Intent  IntentType
	Command core.Command
}

// KeyTable maps keys to bindings
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]Binding
	// Printable rune bindings, matched case-sensitively
	Runes map[rune]Binding
}

func command(t core.CommandType) Binding {
	return Binding{Intent: IntentCommand, Command: core.Command{Type: t}}
}

func view(v core.CameraView) Binding {
	return Binding{Intent: IntentCommand, Command: core.Command{Type: core.CommandSwitchCameraView, View: v}}
}

var quit = Binding{Intent: IntentQuit}

// DefaultKeyTable returns the default key bindings
// Arrows and WASD steer, space or f fires, 1 and 2 pick the camera, q/Esc/Ctrl+C quit
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Binding{
			tcell.KeyUp:     command(core.CommandForward),
			tcell.KeyDown:   command(core.CommandBackward),
			tcell.KeyLeft:   command(core.CommandRotateLeft),
			tcell.KeyRight:  command(core.CommandRotateRight),
			tcell.KeyEscape: quit,
			tcell.KeyCtrlC:  quit,
		},
		Runes: map[rune]Binding{
			'w': command(core.CommandForward),
			'W': command(core.CommandForward),
			's': command(core.CommandBackward),
			'S': command(core.CommandBackward),
			'a': command(core.CommandRotateLeft),
			'A': command(core.CommandRotateLeft),
			'd': command(core.CommandRotateRight),
			'D': command(core.CommandRotateRight),
			' ': command(core.CommandFire),
			'f': command(core.CommandFire),
			'1': view(core.ViewThirdPerson),
			'2': view(core.ViewBirdsEye),
			'q': quit,
			'Q': quit,
		},
	}
}

// Lookup resolves a key press
func (kt *KeyTable) Lookup(key tcell.Key, r rune) Binding {
	if key == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.SpecialKeys[key]
}
