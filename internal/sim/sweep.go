package sim

import (
	"context"
	"runtime"
	"sync"
)

// SweepPoint holds the outcome of one (beta, gamma) combination.
type SweepPoint struct {
	Beta, Gamma float64
	Result      *Result
	Err         error
}

// Sweep runs independent simulations over a parameter grid. Each run
// gets its own Simulator from the build function, so runs share no
// mutable state and can execute concurrently.
type Sweep struct {
	build   func(beta, gamma float64) (*Simulator, State, Config)
	workers int
}

func NewSweep(build func(beta, gamma float64) (*Simulator, State, Config), workers int) *Sweep {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Sweep{build: build, workers: workers}
}

// Run evaluates the full beta x gamma grid and returns points in
// row-major order (beta outer, gamma inner).
func (s *Sweep) Run(ctx context.Context, betas, gammas []float64, times []float64) []SweepPoint {
	points := make([]SweepPoint, len(betas)*len(gammas))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, beta := range betas {
		for j, gamma := range gammas {
			wg.Add(1)
			go func(idx int, beta, gamma float64) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				simulator, x0, cfg := s.build(beta, gamma)
				res, err := simulator.Sample(ctx, x0, times, cfg)
				points[idx] = SweepPoint{Beta: beta, Gamma: gamma, Result: res, Err: err}
			}(i*len(gammas)+j, beta, gamma)
		}
	}

	wg.Wait()
	return points
}
