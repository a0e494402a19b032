package grid

import (
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
)

// Tolerance is the slack, in pixels, allowed between summed track sizes and
// the available space when validating tracks.
const Tolerance = 1.0

// Spec describes a grid independently of any rendering.
type Spec struct {
	// Columns and Rows are the declared track counts. Zero means "use the
	// length of the weight slice"; any other value must match it.
	Columns int `json:"columns,omitempty"`
	Rows    int `json:"rows,omitempty"`

	ColumnWeights []float64 `json:"columnWeights"`
	RowWeights    []float64 `json:"rowWeights"`

	ItemGap         float64 `json:"itemGap"`
	Padding         float64 `json:"padding"`
	ContainerWidth  float64 `json:"containerWidth"`
	ContainerHeight float64 `json:"containerHeight"`
}

// Tracks is the concrete pixel geometry derived from a Spec.
type Tracks struct {
	CellWidths  []float64 `json:"cellWidths"`
	CellHeights []float64 `json:"cellHeights"`

	// ColumnLines and RowLines hold count+1 cumulative positions starting at 0.
	ColumnLines []float64 `json:"columnLines"`
	RowLines    []float64 `json:"rowLines"`

	AvailableWidth  float64 `json:"availableWidth"`
	AvailableHeight float64 `json:"availableHeight"`
}

// Columns returns the number of column tracks.
func (t Tracks) Columns() int { return len(t.CellWidths) }

// Rows returns the number of row tracks.
func (t Tracks) Rows() int { return len(t.CellHeights) }

// Degenerate reports whether either axis has no positive space to distribute.
func (t Tracks) Degenerate() bool {
	return t.AvailableWidth <= 0 || t.AvailableHeight <= 0
}

// ComputeTracks distributes the padded container among the weighted tracks.
//
// Each track receives weight/sum(weights) of the available space, where the
// available space is the container size minus the padding on both sides.
// Negative available space is passed through unchanged.
//
// It returns an INVALID_SPECIFICATION error when a weight slice is empty,
// disagrees with its declared count, or contains a weight that is not a
// positive finite number.
func ComputeTracks(spec Spec) (Tracks, error) {
	if err := checkDimensions(spec); err != nil {
		return Tracks{}, err
	}
	if _, err := resolveCount("column", spec.Columns, spec.ColumnWeights); err != nil {
		return Tracks{}, err
	}
	if _, err := resolveCount("row", spec.Rows, spec.RowWeights); err != nil {
		return Tracks{}, err
	}

	availW := spec.ContainerWidth - 2*spec.Padding
	availH := spec.ContainerHeight - 2*spec.Padding

	widths, err := distribute("column", spec.ColumnWeights, availW)
	if err != nil {
		return Tracks{}, err
	}
	heights, err := distribute("row", spec.RowWeights, availH)
	if err != nil {
		return Tracks{}, err
	}

	return Tracks{
		CellWidths:      widths,
		CellHeights:     heights,
		ColumnLines:     prefixLines(widths),
		RowLines:        prefixLines(heights),
		AvailableWidth:  availW,
		AvailableHeight: availH,
	}, nil
}

func checkDimensions(spec Spec) error {
	dims := []struct {
		name  string
		value float64
	}{
		{"item gap", spec.ItemGap},
		{"padding", spec.Padding},
		{"container width", spec.ContainerWidth},
		{"container height", spec.ContainerHeight},
	}
	for _, d := range dims {
		if !finite(d.value) {
			return errors.New(errors.ErrCodeInvalidSpecification, "%s is not a finite number", d.name)
		}
	}
	return nil
}

// resolveCount returns the effective track count for one axis.
func resolveCount(axis string, declared int, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpecification, "%s weights are empty", axis)
	}
	if declared < 0 {
		return 0, errors.New(errors.ErrCodeInvalidSpecification, "%s count %d is negative", axis, declared)
	}
	if declared != 0 && declared != len(weights) {
		return 0, errors.New(errors.ErrCodeInvalidSpecification,
			"%s count %d does not match %d weights", axis, declared, len(weights))
	}
	return len(weights), nil
}

// distribute splits available proportionally to weights.
func distribute(axis string, weights []float64, available float64) ([]float64, error) {
	var sum float64
	for i, w := range weights {
		if !finite(w) || w <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidSpecification,
				"%s weight %d is %v (must be a positive number)", axis, i+1, w)
		}
		sum += w
	}
	if sum <= 0 || !finite(sum) {
		return nil, errors.New(errors.ErrCodeInvalidSpecification, "%s weights sum to %v", axis, sum)
	}

	sizes := make([]float64, len(weights))
	for i, w := range weights {
		sizes[i] = (w / sum) * available
	}
	return sizes, nil
}

// prefixLines returns the cumulative line positions for sizes, starting at 0.
func prefixLines(sizes []float64) []float64 {
	lines := make([]float64, len(sizes)+1)
	for i, s := range sizes {
		lines[i+1] = lines[i] + s
	}
	return lines
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
