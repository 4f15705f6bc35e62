package component

import "github.com/lixenwraith/broadside/core"

// TreasureChest is a static pickup
type TreasureChest struct {
	*core.Handle
	Transform
}
