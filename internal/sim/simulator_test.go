package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

// decay is dx/dt = -x, the simplest dynamics with a known solution.
type decay struct{}

func (d *decay) Derivative(x State, u Control, t float64) State {
	return State{-x[0]}
}

func (d *decay) StateDim() int   { return 1 }
func (d *decay) ControlDim() int { return 0 }

func (d *decay) Total(x State) float64 { return x[0] }

type eulerStep struct{}

func (e *eulerStep) Step(dyn Dynamics, x State, u Control, t, dt float64) State {
	dx := dyn.Derivative(x, u, t)
	out := x.Clone()
	for i := range out {
		out[i] += dt * dx[i]
	}
	return out
}

type blowup struct{}

func (b *blowup) Derivative(x State, u Control, t float64) State {
	return State{math.NaN()}
}

func (b *blowup) StateDim() int   { return 1 }
func (b *blowup) ControlDim() int { return 0 }

func TestSimulatorRun(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)

	cfg := Config{Dt: 0.001, Duration: 1.0}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 1001 {
		t.Errorf("expected 1001 states, got %d", len(result.States))
	}

	final := result.Final()[0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 1e-3 {
		t.Errorf("expected final state ~%.6f, got %.6f", expected, final)
	}
}

func TestSimulatorRunInvalidConfig(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"adaptive without tolerance", Config{Dt: 0.1, Duration: 1.0, Adaptive: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), State{1.0}, tt.cfg); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestSimulatorRunDimensionMismatch(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)

	_, err := s.Run(context.Background(), State{1.0, 2.0}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorRunKeepsPartialOnInvalidState(t *testing.T) {
	s := New(&blowup{}, &eulerStep{}, nil)

	cfg := Config{Dt: 0.1, Duration: 1.0, ValidateState: true}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) != 1 {
		t.Fatalf("expected one recorded error, got %d", len(result.Errors))
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if len(result.States) == 0 {
		t.Error("expected partial trajectory to be kept")
	}
}

func TestSimulatorRunContextCancel(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, State{1.0}, Config{Dt: 0.001, Duration: 10.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorMassDrift(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.01, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// decay reports x[0] as its total, which shrinks, so drift must
	// come out clearly nonzero.
	if result.MassDrift < 0.1 {
		t.Errorf("expected large drift for decaying total, got %g", result.MassDrift)
	}
}

func TestSimulatorNilControllerZeroControl(t *testing.T) {
	s := New(&decay{}, &eulerStep{}, nil)
	u := s.control(State{1.0}, 0)
	if len(u) != 0 {
		t.Errorf("expected empty control for zero-dim dynamics, got %v", u)
	}
}
