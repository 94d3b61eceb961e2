package metrics

import "github.com/san-kum/episim/internal/sim"

// AttackRate measures the fraction of the population infected over the
// run: the depletion of the susceptible pool from its starting value.
type AttackRate struct {
	initialS float64
	lastS    float64
	samples  int
}

func NewAttackRate() *AttackRate {
	return &AttackRate{}
}

func (a *AttackRate) Name() string { return "attack_rate" }

func (a *AttackRate) Observe(x sim.State, u sim.Control, t float64) {
	if len(x) == 0 {
		return
	}
	if a.samples == 0 {
		a.initialS = x[0]
	}
	a.lastS = x[0]
	a.samples++
}

func (a *AttackRate) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.initialS - a.lastS
}

func (a *AttackRate) Reset() {
	a.initialS = 0
	a.lastS = 0
	a.samples = 0
}
