// Package analysis provides closed-form epidemic quantities derived
// from model parameters, used to cross-check integrated trajectories.
package analysis

import "math"

// R0 is the basic reproduction number of the SIR model.
func R0(beta, gamma float64) float64 {
	if gamma == 0 {
		return math.Inf(1)
	}
	return beta / gamma
}

// HerdImmunityThreshold is the immune fraction above which an outbreak
// cannot grow. Zero when r0 <= 1 (the epidemic dies out on its own).
func HerdImmunityThreshold(r0 float64) float64 {
	if r0 <= 1 {
		return 0
	}
	return 1 - 1/r0
}

// FinalSize solves the Kermack-McKendrick final-size relation
//
//	s_inf = s0 * exp(-r0 * (s0 + i0 - s_inf))
//
// by fixed-point iteration from s0 and returns the attack fraction
// s0 - s_inf. The iteration decreases monotonically to the stable
// root, so it converges for any r0 >= 0.
func FinalSize(r0, s0, i0 float64) float64 {
	s := s0
	for iter := 0; iter < 1000; iter++ {
		next := s0 * math.Exp(-r0*(s0+i0-s))
		if math.Abs(next-s) < 1e-13 {
			s = next
			break
		}
		s = next
	}
	return s0 - s
}
