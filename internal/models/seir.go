package models

import (
	"fmt"

	"github.com/san-kum/episim/internal/sim"
)

// SEIR adds an exposed compartment for diseases with a latent period:
// newly infected individuals incubate at rate Sigma before becoming
// infectious. State layout is [S, E, I, R].
type SEIR struct {
	Beta  float64
	Sigma float64
	Gamma float64
}

func NewSEIR() *SEIR {
	return &SEIR{Beta: 0.3, Sigma: 0.2, Gamma: 0.1}
}

func (m *SEIR) StateDim() int   { return 4 }
func (m *SEIR) ControlDim() int { return 1 }

func (m *SEIR) Derivative(x sim.State, u sim.Control, _ float64) sim.State {
	s, e, i := x[0], x[1], x[2]
	beta := m.Beta * (1 - contactReduction(u))
	exposure := beta * i * s
	incubation := m.Sigma * e
	recovery := m.Gamma * i
	return sim.State{-exposure, exposure - incubation, incubation - recovery, recovery}
}

func (m *SEIR) DefaultState() sim.State { return sim.State{0.99, 0.0, 0.01, 0.0} }

func (m *SEIR) Total(x sim.State) float64 { return x.Sum() }

func (m *SEIR) R0() float64 { return m.Beta / m.Gamma }

func (m *SEIR) Params() map[string]float64 {
	return map[string]float64{"beta": m.Beta, "sigma": m.Sigma, "gamma": m.Gamma}
}

func (m *SEIR) SetParam(name string, v float64) error {
	switch name {
	case "beta":
		m.Beta = v
	case "sigma":
		m.Sigma = v
	case "gamma":
		m.Gamma = v
	default:
		return fmt.Errorf("seir: unknown parameter %q", name)
	}
	return nil
}
