package event

import "github.com/lixenwraith/broadside/core"

// AssetFailedPayload carries the cancelled handle and the loader error
type AssetFailedPayload struct {
	Handle *core.Handle
	Err    error
}
