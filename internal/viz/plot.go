// Package viz renders epidemic trajectories in the terminal.
package viz

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 16
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
}

// TimeSeries plots the given series against time on one chart with a
// legend. Series are proportions, so the y-axis reads as such.
func TimeSeries(w io.Writer, times []float64, series [][]float64, labels []string) error {
	if len(series) == 0 || len(times) == 0 {
		return fmt.Errorf("nothing to plot")
	}
	for _, s := range series {
		if len(s) != len(times) {
			return fmt.Errorf("series length %d does not match %d time points", len(s), len(times))
		}
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range series {
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(labels...),
		asciigraph.Caption(fmt.Sprintf("proportion vs t  (t: 0 .. %.4g)", times[len(times)-1])),
	)

	_, err := fmt.Fprintln(w, graph)
	return err
}
