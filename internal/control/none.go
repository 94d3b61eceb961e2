// Package control provides intervention policies for epidemic
// simulations. A policy emits a contact-reduction factor in [0, 1]
// that the models apply to their transmission term.
package control

import "github.com/san-kum/episim/internal/sim"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	if dim <= 0 {
		dim = 1
	}
	return &None{dim: dim}
}

func (n *None) Compute(x sim.State, t float64) sim.Control {
	return make(sim.Control, n.dim)
}
