package codegen

import (
	"math"
	"strings"

	"github.com/matzehuels/gridsmith/pkg/grid"
)

// Templates holds pixel grid-template values for a set of tracks.
type Templates struct {
	Columns string `json:"gridTemplateColumns"`
	Rows    string `json:"gridTemplateRows"`
	Gap     string `json:"gap"`
}

// TemplatesFor returns the exact pixel templates of t.
func TemplatesFor(t grid.Tracks, gap float64) Templates {
	return Templates{
		Columns: pxTemplate(t.CellWidths, func(v float64) float64 { return v }),
		Rows:    pxTemplate(t.CellHeights, func(v float64) float64 { return v }),
		Gap:     num(gap) + "px",
	}
}

// RoundedTemplates returns the templates of t with every cell rounded to a
// whole pixel, as used by the placement grid and the overlay.
func RoundedTemplates(t grid.Tracks, gap float64) Templates {
	return Templates{
		Columns: pxTemplate(t.CellWidths, roundPx),
		Rows:    pxTemplate(t.CellHeights, roundPx),
		Gap:     num(gap) + "px",
	}
}

func pxTemplate(cells []float64, f func(float64) float64) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = num(f(c)) + "px"
	}
	return strings.Join(parts, " ")
}

// roundPx rounds halves toward positive infinity.
func roundPx(v float64) float64 {
	return math.Floor(v + 0.5)
}

// roundedLines returns the cumulative positions of the rounded cells.
func roundedLines(cells []float64) []float64 {
	lines := make([]float64, len(cells)+1)
	for i, c := range cells {
		lines[i+1] = lines[i] + roundPx(c)
	}
	return lines
}
