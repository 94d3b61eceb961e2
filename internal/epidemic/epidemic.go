// Package epidemic exposes the high-level SIR trajectory API: a named
// compartment record, the sample schedule, and an Integrate call that
// drives the adaptive solver over the schedule.
package epidemic

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/models"
	"github.com/san-kum/episim/internal/sim"
)

// Compartments is the SIR state triple. Fields are proportions of a
// population of normalized size 1; S+I+R stays constant under the
// dynamics.
type Compartments struct {
	S, I, R float64
}

func (c Compartments) Vec() sim.State { return sim.State{c.S, c.I, c.R} }

func (c Compartments) Total() float64 { return c.S + c.I + c.R }

func FromVec(x sim.State) (Compartments, error) {
	if len(x) != 3 {
		return Compartments{}, fmt.Errorf("%w: want 3 compartments, got %d", sim.ErrDimensionMismatch, len(x))
	}
	return Compartments{S: x[0], I: x[1], R: x[2]}, nil
}

// SampleSchedule returns round(4*(tmax+1)) evenly spaced report times
// covering [0, tmax] inclusive. The count formula is only integral for
// integral tmax; fractional horizons round to the nearest count.
func SampleSchedule(tmax float64) ([]float64, error) {
	if tmax < 0 || math.IsNaN(tmax) || math.IsInf(tmax, 0) {
		return nil, fmt.Errorf("time horizon must be a finite non-negative value, got %g", tmax)
	}
	n := int(math.Round(4 * (tmax + 1)))
	if n < 2 {
		n = 2
	}
	times := make([]float64, n)
	spacing := tmax / float64(n-1)
	for i := range times {
		times[i] = float64(i) * spacing
	}
	times[n-1] = tmax
	return times, nil
}

// Integrate produces the SIR trajectory for the given initial state,
// horizon, and rates, sampled on the standard schedule. Parameters are
// deliberately not range-checked: epidemiologically nonsensical values
// still define valid dynamics, and solver failures propagate as-is.
func Integrate(ctx context.Context, init Compartments, tmax, beta, gamma float64) (*Trajectory, error) {
	return IntegrateControlled(ctx, init, tmax, beta, gamma, nil)
}

// IntegrateControlled is Integrate with an optional intervention
// policy applied to the transmission term.
func IntegrateControlled(ctx context.Context, init Compartments, tmax, beta, gamma float64, ctrl sim.Controller) (*Trajectory, error) {
	times, err := SampleSchedule(tmax)
	if err != nil {
		return nil, err
	}

	model := models.NewSIR()
	model.Beta = beta
	model.Gamma = gamma

	s := sim.New(model, integrators.NewRK45(), ctrl)
	cfg := sim.DefaultConfig()
	cfg.Duration = tmax

	result, err := s.Sample(ctx, init.Vec(), times, cfg)
	if err != nil {
		return nil, fmt.Errorf("integrating sir over [0, %g]: %w", tmax, err)
	}

	return fromResult(result)
}
