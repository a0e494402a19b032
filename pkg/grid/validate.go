package grid

import (
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

// ValidateTracks reports whether t is a self-consistent result for spec.
// It is meant for tests and assertions, not the per-frame path.
func ValidateTracks(spec Spec, t Tracks) bool {
	return CheckTracks(spec, t) == nil
}

// CheckTracks is like ValidateTracks but describes the first failed check as
// an INVALID_STATE error.
//
// The checks are:
//   - cell and line slices have count and count+1 entries
//   - the cell sizes sum to the available space within Tolerance
//   - the available space equals container - 2*padding within Tolerance
func CheckTracks(spec Spec, t Tracks) error {
	cols := spec.Columns
	if cols == 0 {
		cols = len(spec.ColumnWeights)
	}
	rows := spec.Rows
	if rows == 0 {
		rows = len(spec.RowWeights)
	}

	if err := checkAxis("column", cols, t.CellWidths, t.ColumnLines, t.AvailableWidth); err != nil {
		return err
	}
	if err := checkAxis("row", rows, t.CellHeights, t.RowLines, t.AvailableHeight); err != nil {
		return err
	}

	if want := spec.ContainerWidth - 2*spec.Padding; math.Abs(t.AvailableWidth-want) > Tolerance {
		return errors.New(errors.ErrCodeInvalidState, "available width %v, want %v", t.AvailableWidth, want)
	}
	if want := spec.ContainerHeight - 2*spec.Padding; math.Abs(t.AvailableHeight-want) > Tolerance {
		return errors.New(errors.ErrCodeInvalidState, "available height %v, want %v", t.AvailableHeight, want)
	}
	return nil
}

func checkAxis(axis string, count int, cells, lines []float64, available float64) error {
	if len(cells) != count {
		return errors.New(errors.ErrCodeInvalidState, "%d %s cells, want %d", len(cells), axis, count)
	}
	if len(lines) != count+1 {
		return errors.New(errors.ErrCodeInvalidState, "%d %s lines, want %d", len(lines), axis, count+1)
	}
	var sum float64
	for _, c := range cells {
		sum += c
	}
	if math.IsNaN(sum) || math.Abs(sum-available) > Tolerance {
		return errors.New(errors.ErrCodeInvalidState, "%s cells sum to %v, available %v", axis, sum, available)
	}
	return nil
}

// CheckGeometry returns an advisory DEGENERATE_GEOMETRY error when either axis
// of t has zero or negative available space. The tracks remain usable.
func CheckGeometry(t Tracks) error {
	switch {
	case t.AvailableWidth <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"available width is %v (padding leaves no room for columns)", t.AvailableWidth)
	case t.AvailableHeight <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"available height is %v (padding leaves no room for rows)", t.AvailableHeight)
	}
	return nil
}
