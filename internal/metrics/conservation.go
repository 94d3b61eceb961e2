// Package metrics provides epidemic observables collected during a
// simulation run via the sim.Metric observer interface.
package metrics

import (
	"math"

	"github.com/san-kum/episim/internal/sim"
)

// Conservation tracks the maximum relative drift of the population
// total from its initial value. For a correct solver on a closed model
// this stays near floating-point noise.
type Conservation struct {
	dyn          sim.Conserved
	initialTotal float64
	maxDrift     float64
	samples      int
}

func NewConservation(dyn sim.Conserved) *Conservation {
	return &Conservation{dyn: dyn}
}

func (c *Conservation) Name() string { return "mass_drift" }

func (c *Conservation) Observe(x sim.State, u sim.Control, t float64) {
	total := c.dyn.Total(x)

	if c.samples == 0 {
		c.initialTotal = total
	}
	c.samples++

	if c.initialTotal != 0 {
		drift := math.Abs(total-c.initialTotal) / math.Abs(c.initialTotal)
		c.maxDrift = math.Max(c.maxDrift, drift)
	}
}

func (c *Conservation) Value() float64 { return c.maxDrift }

func (c *Conservation) Reset() {
	c.initialTotal = 0
	c.maxDrift = 0
	c.samples = 0
}
