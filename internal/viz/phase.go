package viz

import (
	"fmt"
	"io"
	"strings"
)

const (
	phaseWidth  = 60
	phaseHeight = 18
)

// Phase renders an x-y portrait (typically S on the x-axis, I on the
// y-axis) as a framed braille plot.
func Phase(w io.Writer, xs, ys []float64, xLabel, yLabel string) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return fmt.Errorf("phase plot needs two equal-length series with at least 2 points")
	}

	canvas := NewCanvas(phaseWidth, phaseHeight)
	canvas.PlotXY(xs, ys)

	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(ys)

	fmt.Fprintf(w, "%s (vertical) vs %s (horizontal)\n", yLabel, xLabel)
	fmt.Fprintf(w, "%8.4f ┌%s┐\n", yMax, strings.Repeat("─", phaseWidth))
	for i, row := range canvas.Grid {
		if i == phaseHeight/2 {
			fmt.Fprintf(w, "%8.4f │%s│\n", (yMax+yMin)/2, string(row))
		} else {
			fmt.Fprintf(w, "         │%s│\n", string(row))
		}
	}
	fmt.Fprintf(w, "%8.4f └%s┘\n", yMin, strings.Repeat("─", phaseWidth))
	fmt.Fprintf(w, "          %-10.4f%*.4f\n", xMin, phaseWidth-10, xMax)
	return nil
}
