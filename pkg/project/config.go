package project

import (
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

// Unit is a CSS length unit used by the configuration.
type Unit string

const (
	UnitPx      Unit = "px"
	UnitRem     Unit = "rem"
	UnitPercent Unit = "%"
)

// RemPx is the pixel size of one rem.
const RemPx = 16.0

// Limits on track counts accepted by Validate.
const (
	MaxColumns = 48
	MaxRows    = 48
)

// Config is the editable grid configuration of a project.
type Config struct {
	Columns int `json:"columns" toml:"columns" bson:"columns"`
	Rows    int `json:"rows" toml:"rows" bson:"rows"`

	// Gap is the editor gap setting in GapUnit. Layout uses GapItems.
	Gap     float64 `json:"gap" toml:"gap" bson:"gap"`
	GapUnit Unit    `json:"gapUnit" toml:"gap_unit" bson:"gap_unit"`

	// GapItems is the gap between items in pixels.
	GapItems float64 `json:"gapItems" toml:"gap_items" bson:"gap_items"`

	Padding     float64 `json:"padding" toml:"padding" bson:"padding"`
	PaddingUnit Unit    `json:"paddingUnit" toml:"padding_unit" bson:"padding_unit"`

	ContainerWidth     float64 `json:"containerWidth" toml:"container_width" bson:"container_width"`
	ContainerWidthUnit Unit    `json:"containerWidthUnit" toml:"container_width_unit" bson:"container_width_unit"`

	// ColumnWidths and RowHeights are fr weights, one per track.
	ColumnWidths []float64 `json:"columnWidths" toml:"column_widths" bson:"column_widths"`
	RowHeights   []float64 `json:"rowHeights" toml:"row_heights" bson:"row_heights"`
}

// DefaultConfig returns a 12x8 grid with 8px gaps, 16px padding and full
// width, every track weighted 1fr.
func DefaultConfig() Config {
	return Config{
		Columns:            12,
		Rows:               8,
		Gap:                8,
		GapUnit:            UnitPx,
		GapItems:           8,
		Padding:            16,
		PaddingUnit:        UnitPx,
		ContainerWidth:     100,
		ContainerWidthUnit: UnitPercent,
		ColumnWidths:       ones(12),
		RowHeights:         ones(8),
	}
}

// Viewport is the pixel frame a configuration is laid out in.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewport is the editor canvas size.
var DefaultViewport = Viewport{Width: 800, Height: 600}

func (v Viewport) orDefault() Viewport {
	if v.Width <= 0 {
		v.Width = DefaultViewport.Width
	}
	if v.Height <= 0 {
		v.Height = DefaultViewport.Height
	}
	return v
}

// Validate checks counts, units and lengths. Weights are not checked here;
// Normalize repairs them and grid.ComputeTracks rejects bad ones.
func (c Config) Validate() error {
	if c.Columns < 1 || c.Columns > MaxColumns {
		return errors.New(errors.ErrCodeInvalidProject, "columns must be between 1 and %d, got %d", MaxColumns, c.Columns)
	}
	if c.Rows < 1 || c.Rows > MaxRows {
		return errors.New(errors.ErrCodeInvalidProject, "rows must be between 1 and %d, got %d", MaxRows, c.Rows)
	}

	units := []struct {
		field   string
		unit    Unit
		allowed []Unit
	}{
		{"gapUnit", c.GapUnit, []Unit{UnitPx, UnitRem}},
		{"paddingUnit", c.PaddingUnit, []Unit{UnitPx, UnitRem}},
		{"containerWidthUnit", c.ContainerWidthUnit, []Unit{UnitPx, UnitPercent}},
	}
	for _, u := range units {
		if !oneOf(u.unit, u.allowed) {
			return errors.New(errors.ErrCodeInvalidProject, "%s %q is not one of %v", u.field, u.unit, u.allowed)
		}
	}

	lengths := []struct {
		field string
		value float64
	}{
		{"gap", c.Gap},
		{"gapItems", c.GapItems},
		{"padding", c.Padding},
		{"containerWidth", c.ContainerWidth},
	}
	for _, l := range lengths {
		if math.IsNaN(l.value) || math.IsInf(l.value, 0) || l.value < 0 {
			return errors.New(errors.ErrCodeInvalidProject, "%s must be a non-negative number, got %v", l.field, l.value)
		}
	}
	return nil
}

func oneOf(u Unit, allowed []Unit) bool {
	for _, a := range allowed {
		if u == a {
			return true
		}
	}
	return false
}

// Normalize returns a copy whose weight slices match the track counts.
// Existing weights are kept, missing ones become 1 and extra ones are dropped.
// Empty units fall back to the defaults.
func (c Config) Normalize() Config {
	c.ColumnWidths = resizeWeights(c.ColumnWidths, c.Columns)
	c.RowHeights = resizeWeights(c.RowHeights, c.Rows)
	if c.GapUnit == "" {
		c.GapUnit = UnitPx
	}
	if c.PaddingUnit == "" {
		c.PaddingUnit = UnitPx
	}
	if c.ContainerWidthUnit == "" {
		c.ContainerWidthUnit = UnitPercent
	}
	return c
}

// Spec converts the configuration to a grid.Spec laid out in v. Percentage
// widths resolve against the viewport width and rem padding against RemPx.
// Zero viewport dimensions fall back to DefaultViewport.
func (c Config) Spec(v Viewport) (grid.Spec, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return grid.Spec{}, err
	}
	v = v.orDefault()

	return grid.Spec{
		Columns:         c.Columns,
		Rows:            c.Rows,
		ColumnWeights:   c.ColumnWidths,
		RowWeights:      c.RowHeights,
		ItemGap:         c.GapItems,
		Padding:         c.PaddingPx(),
		ContainerWidth:  c.ContainerWidthPx(v),
		ContainerHeight: v.Height,
	}, nil
}

// Tracks computes fresh tracks for the configuration in v.
func (c Config) Tracks(v Viewport) (grid.Tracks, error) {
	spec, err := c.Spec(v)
	if err != nil {
		return grid.Tracks{}, err
	}
	return grid.ComputeTracks(spec)
}

// PaddingPx returns the padding in pixels.
func (c Config) PaddingPx() float64 {
	if c.PaddingUnit == UnitRem {
		return c.Padding * RemPx
	}
	return c.Padding
}

// ContainerWidthPx returns the container width in pixels for viewport v.
func (c Config) ContainerWidthPx(v Viewport) float64 {
	if c.ContainerWidthUnit == UnitPercent {
		return v.orDefault().Width * c.ContainerWidth / 100
	}
	return c.ContainerWidth
}

// WithGapUnit returns a copy with the gap converted to unit u, rounded to
// two decimals.
func (c Config) WithGapUnit(u Unit) Config {
	if u == c.GapUnit {
		return c
	}
	switch {
	case c.GapUnit == UnitPx && u == UnitRem:
		c.Gap = math.Round(c.Gap/RemPx*100) / 100
	case c.GapUnit == UnitRem && u == UnitPx:
		c.Gap = math.Round(c.Gap*RemPx*100) / 100
	}
	c.GapUnit = u
	return c
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.ColumnWidths = append([]float64(nil), c.ColumnWidths...)
	c.RowHeights = append([]float64(nil), c.RowHeights...)
	return c
}

func resizeWeights(old []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	w := ones(n)
	copy(w, old)
	return w
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}
