package metrics

import "github.com/san-kum/episim/internal/sim"

// Peak records the maximum infected fraction observed and when it
// occurred.
type Peak struct {
	infectedIdx int
	max         float64
	atTime      float64
	samples     int
}

func NewPeak(infectedIdx int) *Peak {
	return &Peak{infectedIdx: infectedIdx}
}

func (p *Peak) Name() string { return "peak_infected" }

func (p *Peak) Observe(x sim.State, u sim.Control, t float64) {
	if p.infectedIdx >= len(x) {
		return
	}
	p.samples++
	if x[p.infectedIdx] > p.max || p.samples == 1 {
		p.max = x[p.infectedIdx]
		p.atTime = t
	}
}

func (p *Peak) Value() float64 { return p.max }

// Time returns when the peak occurred.
func (p *Peak) Time() float64 { return p.atTime }

func (p *Peak) Reset() {
	p.max = 0
	p.atTime = 0
	p.samples = 0
}
