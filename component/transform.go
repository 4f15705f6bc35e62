package component

import "github.com/lixenwraith/broadside/vmath"

// Transform is the world placement shared by every simulated object
type Transform struct {
	Position vmath.Vec3F
	Yaw      float64 // Radians about +Y, local +Z is forward
}

// Advance moves the transform dist units along its forward axis
func (t *Transform) Advance(dist float64) {
	t.Position = vmath.Translate(t.Position, t.Yaw, dist)
}
