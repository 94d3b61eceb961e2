package models

import (
	"fmt"

	"github.com/san-kum/episim/internal/sim"
)

// SIS models infections without lasting immunity: recovered
// individuals return to the susceptible pool. State layout is [S, I].
// For Beta/Gamma > 1 the infected fraction approaches the endemic
// equilibrium 1 - Gamma/Beta.
type SIS struct {
	Beta  float64
	Gamma float64
}

func NewSIS() *SIS {
	return &SIS{Beta: 0.3, Gamma: 0.1}
}

func (m *SIS) StateDim() int   { return 2 }
func (m *SIS) ControlDim() int { return 1 }

func (m *SIS) Derivative(x sim.State, u sim.Control, _ float64) sim.State {
	s, i := x[0], x[1]
	beta := m.Beta * (1 - contactReduction(u))
	infection := beta * i * s
	recovery := m.Gamma * i
	return sim.State{-infection + recovery, infection - recovery}
}

func (m *SIS) DefaultState() sim.State { return sim.State{0.99, 0.01} }

func (m *SIS) Total(x sim.State) float64 { return x.Sum() }

func (m *SIS) R0() float64 { return m.Beta / m.Gamma }

func (m *SIS) Params() map[string]float64 {
	return map[string]float64{"beta": m.Beta, "gamma": m.Gamma}
}

func (m *SIS) SetParam(name string, v float64) error {
	switch name {
	case "beta":
		m.Beta = v
	case "gamma":
		m.Gamma = v
	default:
		return fmt.Errorf("sis: unknown parameter %q", name)
	}
	return nil
}
