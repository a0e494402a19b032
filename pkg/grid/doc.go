// Package grid is the unified geometry engine behind every gridsmith view.
//
// A grid is described by a [Spec]: fractional column and row weights, an item
// gap, a container padding and the outer container size. [ComputeTracks] turns
// a Spec into concrete pixel [Tracks] (per-track sizes plus cumulative grid-line
// positions), and the mapping functions turn pointer coordinates back into
// grid-line indices for snapping.
//
// # Single Source of Truth
//
// The overlay renderer, the item placement renderer and the drag controller
// must agree pixel-for-pixel. They do so by deriving their geometry from the
// same Tracks value, recomputed from the current Spec on every frame:
//
//	tracks, err := grid.ComputeTracks(spec)
//	if err != nil {
//	    return err // INVALID_SPECIFICATION, surfaced synchronously
//	}
//	pos, _ := grid.PointerToGridPosition(x, y, tracks, spec.Padding)
//	start, end := grid.SnapSpan(float64(pos.Col+1), float64(pos.Col+1+span), tracks.Columns())
//
// Nothing is cached: the package holds no state, every function is pure and
// O(columns + rows), and identical inputs yield bit-identical outputs.
//
// # Gap Handling
//
// The item gap is never subtracted from track sizes. Tracks tile the padded
// container exactly; the gap is applied afterwards as a half-gap margin inside
// each spanned cell (see [Tracks.ItemRect]). This keeps grid-line math
// independent of the gap value.
//
// # Degenerate Geometry
//
// When the padding is at least half the container size, the available space
// is zero or negative. ComputeTracks still returns tracks (with zero or
// negative cells) so renderers can draw something consistent; [CheckGeometry]
// reports the condition as an advisory DEGENERATE_GEOMETRY error.
//
// # Line Indices
//
// [PixelToLineIndex] and [PointerToGridPosition] return 0-based indices into
// the line slices. Item placements ([Item]) use 1-based CSS grid lines, so
// line index i corresponds to CSS line i+1.
package grid
