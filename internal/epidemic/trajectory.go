package epidemic

import "github.com/san-kum/episim/internal/sim"

// Sample is one reported point of a trajectory.
type Sample struct {
	T     float64
	State Compartments
}

// Trajectory is the time-ordered table of sampled states produced by a
// single Integrate call. It is immutable after construction.
type Trajectory struct {
	samples []Sample
}

func fromResult(r *sim.Result) (*Trajectory, error) {
	samples := make([]Sample, len(r.States))
	for i, x := range r.States {
		c, err := FromVec(x)
		if err != nil {
			return nil, err
		}
		samples[i] = Sample{T: r.Times[i], State: c}
	}
	return &Trajectory{samples: samples}, nil
}

func (tr *Trajectory) Len() int        { return len(tr.samples) }
func (tr *Trajectory) At(i int) Sample { return tr.samples[i] }

func (tr *Trajectory) First() Sample { return tr.samples[0] }
func (tr *Trajectory) Last() Sample  { return tr.samples[len(tr.samples)-1] }

func (tr *Trajectory) Times() []float64 {
	out := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.T
	}
	return out
}

func (tr *Trajectory) Susceptible() []float64 {
	out := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.State.S
	}
	return out
}

func (tr *Trajectory) Infected() []float64 {
	out := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.State.I
	}
	return out
}

func (tr *Trajectory) Recovered() []float64 {
	out := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.State.R
	}
	return out
}
