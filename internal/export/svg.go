// Package export writes trajectories as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/episim/internal/viz"
)

const (
	chartWidth  = 720
	chartHeight = 420
	margin      = 50
)

var palette = []string{"#3366cc", "#cc3333", "#33a02c", "#e6a817", "#9933cc"}

// TrajectorySVG renders the compartment series as polylines with axes
// and a legend.
func TrajectorySVG(w io.Writer, times []float64, series [][]float64, labels []string) error {
	if len(series) == 0 || len(times) < 2 {
		return fmt.Errorf("nothing to export")
	}
	for _, s := range series {
		if len(s) != len(times) {
			return fmt.Errorf("series length %d does not match %d time points", len(s), len(times))
		}
	}

	tMin, tMax := times[0], times[len(times)-1]
	yMin, yMax := series[0][0], series[0][0]
	for _, s := range series {
		for _, v := range s {
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	if tMax == tMin {
		tMax = tMin + 1
	}

	plotW := float64(chartWidth - 2*margin)
	plotH := float64(chartHeight - 2*margin)

	px := func(t float64) float64 { return margin + plotW*(t-tMin)/(tMax-tMin) }
	py := func(v float64) float64 { return margin + plotH*(1-(v-yMin)/(yMax-yMin)) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, chartWidth, chartHeight, chartWidth, chartHeight))

	// Axes
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333" stroke-width="1"/>
`, margin, chartHeight-margin, chartWidth-margin, chartHeight-margin))
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333" stroke-width="1"/>
`, margin, margin, margin, chartHeight-margin))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="#333">t</text>
`, chartWidth-margin+8, chartHeight-margin+4))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="#333">proportion</text>
`, margin-40, margin-12))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="#666">%.3g</text>
`, margin-4, chartHeight-margin+16, tMin))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="#666">%.3g</text>
`, chartWidth-margin-10, chartHeight-margin+16, tMax))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="#666">%.3g</text>
`, margin-36, chartHeight-margin+4, yMin))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="#666">%.3g</text>
`, margin-36, margin+4, yMax))

	for si, s := range series {
		color := palette[si%len(palette)]

		var pts strings.Builder
		for i := range times {
			if i > 0 {
				pts.WriteByte(' ')
			}
			pts.WriteString(fmt.Sprintf("%.2f,%.2f", px(times[i]), py(s[i])))
		}
		sb.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="%s" stroke-width="1.5"/>
`, pts.String(), color))

		// Legend entry
		lx := chartWidth - margin - 100
		ly := margin + 18*si
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>
`, lx, ly, lx+20, ly, color))
		label := fmt.Sprintf("x%d", si)
		if si < len(labels) {
			label = labels[si]
		}
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="#333">%s</text>
`, lx+26, ly+4, label))
	}

	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// CanvasSVG converts a braille canvas (e.g. a phase portrait) into an
// SVG dot grid.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	if scale <= 0 {
		scale = 2
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g fill="#3366cc">
`, width, height, width, height))

	for row, cells := range canvas.Grid {
		for col, cell := range cells {
			bits := int(cell - 0x2800)
			if bits == 0 {
				continue
			}
			for subY := 0; subY < 4; subY++ {
				for subX := 0; subX < 2; subX++ {
					if bits&pixelBit(subX, subY) == 0 {
						continue
					}
					x := (float64(col*2+subX) + 0.5) * scale
					y := (float64(row*4+subY) + 0.5) * scale
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, x, y, scale*0.45))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func pixelBit(subX, subY int) int {
	bits := [4][2]int{
		{0x1, 0x8},
		{0x2, 0x10},
		{0x4, 0x20},
		{0x40, 0x80},
	}
	return bits[subY][subX]
}
