package component

import (
	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/parameter"
)

// Explosion is a transient visual effect
// Elapsed time is tracked in integer tenths so expiry lands on an exact tick
type Explosion struct {
	*core.Handle
	Transform

	Scale         float64
	ElapsedTenths int
}

// Elapsed returns elapsed time in explosion time units
func (e *Explosion) Elapsed() float64 {
	return float64(e.ElapsedTenths) / 10
}

// Expired reports whether the explosion reached its lifetime
func (e *Explosion) Expired() bool {
	return e.ElapsedTenths >= parameter.ExplosionLifetimeTenths
}
