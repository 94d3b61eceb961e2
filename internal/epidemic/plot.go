package epidemic

import (
	"io"

	"github.com/san-kum/episim/internal/viz"
)

// Plot renders the three compartment series against time with a
// legend. It consumes a precomputed trajectory rather than
// re-integrating.
func Plot(w io.Writer, tr *Trajectory) error {
	series := [][]float64{tr.Susceptible(), tr.Infected(), tr.Recovered()}
	return viz.TimeSeries(w, tr.Times(), series, []string{"S", "I", "R"})
}
