package engine

import "github.com/lixenwraith/broadside/parameter"

// SimulationClock is the shared cooldown counter in [0, period)
// Incremented once per tick and wrapped; never reset otherwise
type SimulationClock struct {
	value  int
	period int
}

// NewSimulationClock creates a clock with the default period
func NewSimulationClock() *SimulationClock {
	return &SimulationClock{period: parameter.ClockPeriod}
}

// Advance increments and wraps the clock, returning the new value
func (c *SimulationClock) Advance() int {
	c.value++
	if c.value >= c.period {
		c.value = 0
	}
	return c.value
}

// Value returns the current clock value
func (c *SimulationClock) Value() int { return c.value }

// AtZero reports whether the salvo window is open
func (c *SimulationClock) AtZero() bool { return c.value == 0 }

// Period returns the wraparound length
func (c *SimulationClock) Period() int { return c.period }
