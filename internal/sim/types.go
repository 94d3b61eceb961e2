package sim

import "math"

// State is a vector of compartment fractions, e.g. [S, I, R].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Sum returns the total of all compartments. For a closed epidemic
// model this is the conserved population mass.
func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Control carries intervention inputs, e.g. a contact-reduction factor.
type Control []float64

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Conserved is implemented by dynamics with a conserved total, used to
// monitor numerical drift across a run.
type Conserved interface {
	Total(x State) float64
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	// StepAdaptive advances one accepted step of size at most dt,
	// shrinking on rejection until the local error estimate meets tol.
	// It returns the new state, the step size actually taken, and a
	// suggested size for the next step.
	StepAdaptive(dyn Dynamics, x State, u Control, t, dt, tol float64) (newX State, taken, next float64, err error)
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-3,
		Duration:      20.0,
		Tolerance:     1e-6,
		MaxDt:         0.5,
		MinDt:         1e-12,
		Adaptive:      true,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Controls   []Control
	Times      []float64
	Metrics    map[string]float64
	MassDrift  float64
	StepsTaken int
	Errors     []error
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Series extracts one state variable as a time series.
func (r *Result) Series(idx int) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}
