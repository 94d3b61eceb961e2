// Package optim calibrates model parameters against observed data.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/epidemic"
)

// GridSearch fits (beta, gamma) to an observed infected series by
// integrating every grid combination and scoring it with RMSE.
type GridSearch struct {
	Betas  []float64
	Gammas []float64
}

func NewGridSearch(betas, gammas []float64) *GridSearch {
	return &GridSearch{Betas: betas, Gammas: gammas}
}

// Fit holds the best grid point found.
type Fit struct {
	Beta  float64
	Gamma float64
	RMSE  float64
}

// Search integrates each (beta, gamma) pair from init over [0, tmax]
// and compares the infected series against observed, which must be
// sampled on the standard schedule for tmax.
func (g *GridSearch) Search(ctx context.Context, init epidemic.Compartments, tmax float64, observed []float64) (Fit, error) {
	if len(g.Betas) == 0 || len(g.Gammas) == 0 {
		return Fit{}, fmt.Errorf("empty parameter grid")
	}

	best := Fit{RMSE: math.Inf(1)}

	for _, beta := range g.Betas {
		for _, gamma := range g.Gammas {
			tr, err := epidemic.Integrate(ctx, init, tmax, beta, gamma)
			if err != nil {
				// A diverging combination disqualifies itself, not the search.
				continue
			}

			score, err := rmse(tr.Infected(), observed)
			if err != nil {
				return Fit{}, err
			}
			if score < best.RMSE {
				best = Fit{Beta: beta, Gamma: gamma, RMSE: score}
			}
		}
	}

	if math.IsInf(best.RMSE, 1) {
		return Fit{}, fmt.Errorf("no grid combination produced a valid trajectory")
	}
	return best, nil
}

func rmse(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(got), len(want))
	}
	sum := 0.0
	for i := range got {
		d := got[i] - want[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(got))), nil
}
