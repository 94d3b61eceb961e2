package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/episim/internal/sim"
)

// recovery is dI/dt = -gamma*I, the epidemic tail with an exact
// exponential solution.
type recovery struct {
	gamma float64
}

func (r *recovery) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{-r.gamma * x[0]}
}

func (r *recovery) StateDim() int   { return 1 }
func (r *recovery) ControlDim() int { return 0 }

func TestEulerAccuracy(t *testing.T) {
	dyn := &recovery{gamma: 1.0}
	integ := NewEuler()

	x := sim.State{1.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-3 {
		t.Errorf("expected %.6f, got %.6f", expected, x[0])
	}
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &recovery{gamma: 0.5}
	integ := NewRK4()

	x := sim.State{1.0}
	dt := 0.01
	steps := 200

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-0.5 * 2.0)
	if math.Abs(x[0]-expected) > 1e-8 {
		t.Errorf("expected %.10f, got %.10f", expected, x[0])
	}
}

func TestRK4VsEuler(t *testing.T) {
	dyn := &recovery{gamma: 1.0}
	euler := NewEuler()
	rk4 := NewRK4()

	xe := sim.State{1.0}
	xr := sim.State{1.0}
	dt := 0.1

	for i := 0; i < 10; i++ {
		xe = euler.Step(dyn, xe, nil, float64(i)*dt, dt)
		xr = rk4.Step(dyn, xr, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	errEuler := math.Abs(xe[0] - expected)
	errRK4 := math.Abs(xr[0] - expected)

	if errRK4 >= errEuler {
		t.Errorf("rk4 should beat euler at this step size: %e vs %e", errRK4, errEuler)
	}
}
