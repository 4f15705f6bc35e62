package event

// EventType represents the type of game event
type EventType int

const (
	EventNone EventType = iota

	// EventEntityResolved signals asset resolution flipped a handle to Active
	// Trigger: asset loader goroutine | Consumer: Loop (scene attach)
	// Payload: *core.Handle
	EventEntityResolved

	// EventAssetFailed signals asset resolution failed; the handle is already destroyed
	// Trigger: asset loader goroutine | Consumer: Loop (logging, registry prune)
	// Payload: *AssetFailedPayload
	EventAssetFailed

	// EventCommand delivers a player command
	// Trigger: input pump | Consumer: Loop
	// Payload: core.Command
	EventCommand
)

func (t EventType) String() string {
	switch t {
	case EventEntityResolved:
		return "entity_resolved"
	case EventAssetFailed:
		return "asset_failed"
	case EventCommand:
		return "command"
	default:
		return "none"
	}
}

// GameEvent is a queued event
type GameEvent struct {
	Type    EventType
	Payload any
}
