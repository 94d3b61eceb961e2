package sim

import (
	"context"
	"fmt"
	"math"
)

// timeSlop absorbs float accumulation when deciding whether a sample
// time has been reached.
const timeSlop = 1e-12

// Sample integrates adaptively and records the state at exactly the
// requested times. The first time must not precede zero and the
// schedule must be ascending. Unlike Run, any solver failure discards
// the whole result: callers never see a partial trajectory.
func (s *Simulator) Sample(ctx context.Context, x0 State, times []float64, cfg Config) (*Result, error) {
	if cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %g", cfg.Tolerance)
	}
	if len(times) == 0 || times[0] < 0 {
		return nil, ErrBadSchedule
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, ErrBadSchedule
		}
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	adaptive, ok := s.integrator.(AdaptiveIntegrator)
	if !ok {
		return nil, fmt.Errorf("integrator %T does not support adaptive sampling", s.integrator)
	}

	result := &Result{
		States:   make([]State, 0, len(times)),
		Controls: make([]Control, 0, len(times)),
		Times:    make([]float64, 0, len(times)),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt
	initialTotal := s.computeTotal(x)

	for i, target := range times {
		for target-t > timeSlop {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			u := s.control(x, t)

			step := math.Min(dt, target-t)
			newX, taken, next, err := adaptive.StepAdaptive(s.dyn, x, u, t, step, cfg.Tolerance)
			if err != nil {
				return nil, &StepError{Step: result.StepsTaken, Time: t, Err: err}
			}
			if cfg.ValidateState && !newX.IsValid() {
				return nil, &StepError{Step: result.StepsTaken, Time: t, Err: ErrInvalidState}
			}

			x = newX
			t += taken
			result.StepsTaken++

			dt = next
			if cfg.MaxDt > 0 {
				dt = math.Min(dt, cfg.MaxDt)
			}
			if cfg.MinDt > 0 {
				dt = math.Max(dt, cfg.MinDt)
			}
		}

		// Report the schedule time, not the accumulated t, so the
		// output table carries the exact requested points.
		u := s.control(x, t)
		for _, m := range s.metrics {
			m.Observe(x, u, times[i])
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, times[i])
		}

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, times[i])
	}

	finalTotal := s.computeTotal(x)
	if initialTotal != 0 {
		result.MassDrift = math.Abs(finalTotal-initialTotal) / math.Abs(initialTotal)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
