package grid

import (
	"github.com/matzehuels/gridsmith/pkg/errors"
)

// Item is the placement of a rectangle on the grid, as half-open spans of
// 1-based CSS grid lines: [StartCol, EndCol) x [StartRow, EndRow).
type Item struct {
	StartCol int `json:"startCol" toml:"start_col" bson:"start_col"`
	EndCol   int `json:"endCol" toml:"end_col" bson:"end_col"`
	StartRow int `json:"startRow" toml:"start_row" bson:"start_row"`
	EndRow   int `json:"endRow" toml:"end_row" bson:"end_row"`
}

// ColSpan returns the number of columns the item covers.
func (it Item) ColSpan() int { return it.EndCol - it.StartCol }

// RowSpan returns the number of rows the item covers.
func (it Item) RowSpan() int { return it.EndRow - it.StartRow }

// Valid reports whether the item lies on a cols x rows grid with a span of at
// least one track on each axis.
func (it Item) Valid(cols, rows int) bool {
	return it.StartCol >= 1 && it.EndCol > it.StartCol && it.EndCol <= cols+1 &&
		it.StartRow >= 1 && it.EndRow > it.StartRow && it.EndRow <= rows+1
}

// Clamp snaps the item onto a cols x rows grid using SnapSpan on both axes.
func (it Item) Clamp(cols, rows int) Item {
	it.StartCol, it.EndCol = SnapSpan(float64(it.StartCol), float64(it.EndCol), cols)
	it.StartRow, it.EndRow = SnapSpan(float64(it.StartRow), float64(it.EndRow), rows)
	return it
}

// Rect is an axis-aligned rectangle in container pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge of the rectangle.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// SpanRect returns the rectangle covered by the item's tracks, offset by the
// container padding. The gap is not applied.
func (t Tracks) SpanRect(it Item, padding float64) (Rect, error) {
	if !it.Valid(t.Columns(), t.Rows()) {
		return Rect{}, errors.New(errors.ErrCodeInvalidItem,
			"item columns %d-%d rows %d-%d do not fit a %dx%d grid",
			it.StartCol, it.EndCol, it.StartRow, it.EndRow, t.Columns(), t.Rows())
	}
	x0, x1 := t.ColumnLines[it.StartCol-1], t.ColumnLines[it.EndCol-1]
	y0, y1 := t.RowLines[it.StartRow-1], t.RowLines[it.EndRow-1]
	return Rect{X: padding + x0, Y: padding + y0, Width: x1 - x0, Height: y1 - y0}, nil
}

// ItemRect returns the rectangle an item is drawn in: its span rectangle shrunk
// by a half-gap margin on every side.
func (t Tracks) ItemRect(it Item, padding, gap float64) (Rect, error) {
	r, err := t.SpanRect(it, padding)
	if err != nil {
		return Rect{}, err
	}
	half := gap / 2
	return Rect{X: r.X + half, Y: r.Y + half, Width: r.Width - gap, Height: r.Height - gap}, nil
}
