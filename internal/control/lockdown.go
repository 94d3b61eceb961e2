package control

import "github.com/san-kum/episim/internal/sim"

// Lockdown engages a fixed contact reduction when the infected
// fraction crosses Trigger and releases once it falls back below
// Release. Release < Trigger gives hysteresis so the policy does not
// chatter around the threshold.
type Lockdown struct {
	Trigger   float64
	Release   float64
	Reduction float64

	infectedIdx int
	active      bool
}

func NewLockdown(trigger, release, reduction float64, infectedIdx int) *Lockdown {
	if release > trigger {
		release = trigger
	}
	if reduction < 0 {
		reduction = 0
	}
	if reduction > 1 {
		reduction = 1
	}
	return &Lockdown{
		Trigger:     trigger,
		Release:     release,
		Reduction:   reduction,
		infectedIdx: infectedIdx,
	}
}

func (l *Lockdown) Compute(x sim.State, t float64) sim.Control {
	if l.infectedIdx >= len(x) {
		return sim.Control{0}
	}

	infected := x[l.infectedIdx]
	if !l.active && infected >= l.Trigger {
		l.active = true
	} else if l.active && infected <= l.Release {
		l.active = false
	}

	if l.active {
		return sim.Control{l.Reduction}
	}
	return sim.Control{0}
}

// Active reports whether the lockdown is currently engaged.
func (l *Lockdown) Active() bool { return l.active }
