package models

import (
	"fmt"

	"github.com/san-kum/episim/internal/sim"
)

// SIRD splits removals into recovery at rate Gamma and death at rate
// Mu. State layout is [S, I, R, D].
type SIRD struct {
	Beta  float64
	Gamma float64
	Mu    float64
}

func NewSIRD() *SIRD {
	return &SIRD{Beta: 0.3, Gamma: 0.09, Mu: 0.01}
}

func (m *SIRD) StateDim() int   { return 4 }
func (m *SIRD) ControlDim() int { return 1 }

func (m *SIRD) Derivative(x sim.State, u sim.Control, _ float64) sim.State {
	s, i := x[0], x[1]
	beta := m.Beta * (1 - contactReduction(u))
	infection := beta * i * s
	recovery := m.Gamma * i
	death := m.Mu * i
	return sim.State{-infection, infection - recovery - death, recovery, death}
}

func (m *SIRD) DefaultState() sim.State { return sim.State{0.99, 0.01, 0.0, 0.0} }

func (m *SIRD) Total(x sim.State) float64 { return x.Sum() }

// R0 accounts for both exits from the infected compartment.
func (m *SIRD) R0() float64 { return m.Beta / (m.Gamma + m.Mu) }

func (m *SIRD) Params() map[string]float64 {
	return map[string]float64{"beta": m.Beta, "gamma": m.Gamma, "mu": m.Mu}
}

func (m *SIRD) SetParam(name string, v float64) error {
	switch name {
	case "beta":
		m.Beta = v
	case "gamma":
		m.Gamma = v
	case "mu":
		m.Mu = v
	default:
		return fmt.Errorf("sird: unknown parameter %q", name)
	}
	return nil
}
