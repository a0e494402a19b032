// Package drag turns pointer gestures over a grid into snapped item placements.
//
// A Gesture is the two-state machine an interactive editor runs while the
// user holds a pointer down on an item: it stays idle until the pointer has
// travelled more than Threshold pixels, then every Move maps the pointer onto
// grid lines through the tracks supplied with that call and returns a
// placement that is always valid for those tracks.
//
// Pointer coordinates are relative to the container's outer top-left corner,
// the same frame grid.PointerToGridPosition uses.
package drag

import (
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

// Threshold is the distance in pixels the pointer must travel on either axis
// before a gesture starts dragging.
const Threshold = 3.0

// Gesture tracks one pointer-down to pointer-up interaction with an item.
type Gesture struct {
	handle    Handle
	origin    grid.Item
	current   grid.Item
	startX    float64
	startY    float64
	threshold float64
	dragging  bool
	ended     bool
}

type options struct {
	locked    bool
	threshold float64
}

// Option configures Begin.
type Option func(*options)

// Locked marks the grabbed item as locked. Locked items cannot be dragged.
func Locked(locked bool) Option {
	return func(o *options) { o.locked = locked }
}

// WithThreshold overrides the drag start distance. Negative values are
// treated as zero.
func WithThreshold(px float64) Option {
	return func(o *options) { o.threshold = math.Max(0, px) }
}

// Begin starts a gesture on item grabbed by handle at the given pointer. The
// handle is normalized as by ParseHandle, so "SE" grabs the south-east corner.
func Begin(item grid.Item, handle Handle, startX, startY float64, opts ...Option) (*Gesture, error) {
	o := options{threshold: Threshold}
	for _, opt := range opts {
		opt(&o)
	}
	if o.locked {
		return nil, errors.New(errors.ErrCodeInvalidState, "item is locked")
	}
	h, err := ParseHandle(string(handle))
	if err != nil {
		return nil, err
	}
	return &Gesture{
		handle:    h,
		origin:    item,
		current:   item,
		startX:    startX,
		startY:    startY,
		threshold: o.threshold,
	}, nil
}

// Handle returns the grabbed handle.
func (g *Gesture) Handle() Handle { return g.handle }

// Origin returns the placement the item had when the gesture began.
func (g *Gesture) Origin() grid.Item { return g.origin }

// Current returns the most recent placement produced by Move.
func (g *Gesture) Current() grid.Item { return g.current }

// Dragging reports whether the pointer has crossed the threshold.
func (g *Gesture) Dragging() bool { return g.dragging }

// Move feeds a pointer position into the gesture. The tracks must be the
// ones currently rendered; they are never cached between calls.
//
// The pointer snaps to its nearest column and row line indices, which are
// treated as CSS grid lines (index+1) when placing the grabbed edges.
//
// It returns the candidate placement and whether it differs from the previous
// one. Until the threshold is crossed the origin is returned unchanged.
func (g *Gesture) Move(pointerX, pointerY float64, t grid.Tracks, padding float64) (grid.Item, bool, error) {
	if g.ended {
		return g.current, false, errors.New(errors.ErrCodeInvalidState, "gesture already ended")
	}
	if !g.dragging {
		if math.Abs(pointerX-g.startX) <= g.threshold && math.Abs(pointerY-g.startY) <= g.threshold {
			return g.current, false, nil
		}
		g.dragging = true
	}

	pos, err := grid.PointerToGridPosition(pointerX, pointerY, t, padding)
	if err != nil {
		return g.current, false, err
	}
	// Line indices are 0-based; CSS grid lines start at 1.
	col, row := pos.Col+1, pos.Row+1

	var next grid.Item
	if g.handle == Move {
		next = g.moveTo(col, row, t.Columns(), t.Rows())
	} else {
		next = g.resizeTo(col, row, t.Columns(), t.Rows())
	}

	changed := next != g.current
	g.current = next
	return next, changed, nil
}

// End finishes the gesture and reports whether it dragged. Callers commit the
// placement to history only when it did.
func (g *Gesture) End() bool {
	g.ended = true
	return g.dragging
}

// moveTo centres the origin's span on the pointer line.
func (g *Gesture) moveTo(col, row, cols, rows int) grid.Item {
	it := g.origin
	it.StartCol, it.EndCol = centreSpan(col, it.ColSpan(), cols)
	it.StartRow, it.EndRow = centreSpan(row, it.RowSpan(), rows)
	return it
}

// centreSpan places a span of the given length centred on line, snapped with
// SnapSpan. At the grid edges the span is shifted inward rather than cut.
func centreSpan(line, span, count int) (start, end int) {
	span = max(1, min(span, count))
	desired := float64(line) - float64(span)/2
	start, _ = grid.SnapSpan(desired, desired+float64(span), count)
	if start+span > count+1 {
		start = count + 1 - span
	}
	return start, start + span
}

// resizeTo replaces the edges named by the handle with the pointer line.
func (g *Gesture) resizeTo(col, row, cols, rows int) grid.Item {
	it := g.origin.Clamp(cols, rows)
	h := g.handle

	if h.west() {
		start, _ := grid.SnapSpan(float64(col), float64(it.EndCol), cols)
		it.StartCol = min(start, it.EndCol-1)
	}
	if h.east() {
		_, it.EndCol = grid.SnapSpan(float64(it.StartCol), float64(col), cols)
	}
	if h.north() {
		start, _ := grid.SnapSpan(float64(row), float64(it.EndRow), rows)
		it.StartRow = min(start, it.EndRow-1)
	}
	if h.south() {
		_, it.EndRow = grid.SnapSpan(float64(it.StartRow), float64(row), rows)
	}
	return it
}
