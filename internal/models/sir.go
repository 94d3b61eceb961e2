package models

import (
	"fmt"

	"github.com/san-kum/episim/internal/sim"
)

// SIR models a closed epidemic: susceptible individuals are infected
// at rate Beta*I*S and infected individuals recover at rate Gamma*I.
// State layout is [S, I, R]; S+I+R is conserved by the dynamics.
type SIR struct {
	Beta  float64
	Gamma float64
}

func NewSIR() *SIR {
	return &SIR{Beta: 0.3, Gamma: 0.1}
}

func (m *SIR) StateDim() int   { return 3 }
func (m *SIR) ControlDim() int { return 1 }

func (m *SIR) Derivative(x sim.State, u sim.Control, _ float64) sim.State {
	s, i := x[0], x[1]
	beta := m.Beta * (1 - contactReduction(u))
	infection := beta * i * s
	recovery := m.Gamma * i
	return sim.State{-infection, infection - recovery, recovery}
}

func (m *SIR) DefaultState() sim.State { return sim.State{0.99, 0.01, 0.0} }

func (m *SIR) Total(x sim.State) float64 { return x.Sum() }

// R0 is the basic reproduction number.
func (m *SIR) R0() float64 { return m.Beta / m.Gamma }

func (m *SIR) Params() map[string]float64 {
	return map[string]float64{"beta": m.Beta, "gamma": m.Gamma}
}

func (m *SIR) SetParam(name string, v float64) error {
	switch name {
	case "beta":
		m.Beta = v
	case "gamma":
		m.Gamma = v
	default:
		return fmt.Errorf("sir: unknown parameter %q", name)
	}
	return nil
}

// contactReduction clamps the first control input to [0, 1]. A nil or
// empty control means no intervention.
func contactReduction(u sim.Control) float64 {
	if len(u) == 0 {
		return 0
	}
	switch {
	case u[0] < 0:
		return 0
	case u[0] > 1:
		return 1
	}
	return u[0]
}
