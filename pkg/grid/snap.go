package grid

import (
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

// Position is a pair of 0-based grid-line indices.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// PixelToLineIndex returns the index of the line nearest to position.
// On an exact tie the lowest index wins. An empty lines slice yields an
// INVALID_STATE error; tracks from ComputeTracks never produce one.
func PixelToLineIndex(position float64, lines []float64) (int, error) {
	if len(lines) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidState, "no grid lines to map position %v onto", position)
	}

	best := 0
	bestDist := math.Abs(position - lines[0])
	for i := 1; i < len(lines); i++ {
		if d := math.Abs(position - lines[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// PointerToGridPosition maps a pointer relative to the container's outer
// top-left corner onto the nearest column and row lines of t.
func PointerToGridPosition(pointerX, pointerY float64, t Tracks, padding float64) (Position, error) {
	col, err := PixelToLineIndex(pointerX-padding, t.ColumnLines)
	if err != nil {
		return Position{}, err
	}
	row, err := PixelToLineIndex(pointerY-padding, t.RowLines)
	if err != nil {
		return Position{}, err
	}
	return Position{Col: col, Row: row}, nil
}

// SnapSpan rounds a desired span to integer CSS grid lines and clamps it to a
// grid with maxLines tracks. The start lands in [1, maxLines] and the end in
// [start+1, maxLines+1], so the result always spans at least one track, even
// for empty or inverted requests.
//
// Halves round up. NaN endpoints are treated as 0.
func SnapSpan(desiredStart, desiredEnd float64, maxLines int) (start, end int) {
	s := clampLine(roundHalfUp(desiredStart), 1, float64(maxLines))
	e := clampLine(roundHalfUp(desiredEnd), s+1, float64(maxLines)+1)
	return int(s), int(e)
}

func roundHalfUp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Floor(v + 0.5)
}

// clampLine bounds v to [lo, hi]; lo wins when the bounds cross.
func clampLine(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
