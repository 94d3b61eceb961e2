package analysis

import "github.com/san-kum/episim/internal/epidemic"

// PhasePortrait extracts the S-I projection of a trajectory. In the
// S-I plane every SIR epidemic traces a single arc; the peak sits on
// the line S = 1/R0.
func PhasePortrait(tr *epidemic.Trajectory) (s, i []float64) {
	return tr.Susceptible(), tr.Infected()
}
