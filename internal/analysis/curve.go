package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/episim/internal/epidemic"
)

// CurvePoint is one sweep sample: the transmission rate, the implied
// reproduction number, and the attack fraction of the integrated
// epidemic.
type CurvePoint struct {
	Beta      float64
	R0        float64
	FinalSize float64
}

// FinalSizeCurve sweeps beta over [betaMin, betaMax] at fixed gamma,
// integrating each epidemic to the horizon and recording its final
// size. The curve exposes the R0=1 threshold: attack fraction near
// zero below it, rising sharply above.
func FinalSizeCurve(ctx context.Context, init epidemic.Compartments, tmax, gamma, betaMin, betaMax float64, steps int) ([]CurvePoint, error) {
	if steps < 2 {
		steps = 2
	}
	if betaMax < betaMin {
		return nil, fmt.Errorf("beta range inverted: [%g, %g]", betaMin, betaMax)
	}

	points := make([]CurvePoint, 0, steps)
	step := (betaMax - betaMin) / float64(steps-1)

	for i := 0; i < steps; i++ {
		beta := betaMin + float64(i)*step

		tr, err := epidemic.Integrate(ctx, init, tmax, beta, gamma)
		if err != nil {
			return nil, fmt.Errorf("sweep at beta=%g: %w", beta, err)
		}

		final := tr.Last().State
		points = append(points, CurvePoint{
			Beta:      beta,
			R0:        R0(beta, gamma),
			FinalSize: init.S - final.S,
		})
	}

	return points, nil
}
