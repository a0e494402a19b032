package codegen

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

const overlayCSS = `
    .container { fill: #ffffff; stroke: #e2e8f0; stroke-width: 2; }
    .cell { fill: none; stroke: #e2e8f0; stroke-width: 1; }
    .line { stroke: #f43f5e; stroke-width: 1; stroke-dasharray: 4 3; }
    .line-number { font: 10px ui-monospace, monospace; fill: #64748b; }
    .item { fill: #dbeafe; fill-opacity: 0.7; stroke: #93c5fd; stroke-width: 2; }
    .item.selected { fill: #bfdbfe; stroke: #3b82f6; }
    .item.locked { opacity: 0.5; }
    .item-label { font: 13px system-ui, sans-serif; fill: #334155; }
    .item-span { font: 11px system-ui, sans-serif; fill: #64748b; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	lines       bool
	lineNumbers bool
	selected    string
	title       string
}

// WithLines draws the exact column and row lines on top of the overlay.
func WithLines() SVGOption { return func(r *svgRenderer) { r.lines = true } }

// WithLineNumbers labels the CSS grid line numbers along the top and left.
func WithLineNumbers() SVGOption { return func(r *svgRenderer) { r.lineNumbers = true } }

// WithSelected highlights the item with the given ID.
func WithSelected(id string) SVGOption { return func(r *svgRenderer) { r.selected = id } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// OverlaySVG renders an editor preview of the grid: the container, the
// overlay cells, optional grid lines and the items.
//
// It returns an INVALID_ITEM error if an item does not fit t.
func OverlaySVG(t grid.Tracks, cfg project.Config, items []project.Item, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	if t.Columns() == 0 || t.Rows() == 0 || len(t.ColumnLines) != t.Columns()+1 || len(t.RowLines) != t.Rows()+1 {
		return nil, errors.New(errors.ErrCodeInvalidState, "overlay needs computed tracks")
	}

	pad := cfg.PaddingPx()
	gap := cfg.GapItems
	width := math.Max(0, t.AvailableWidth+2*pad)
	height := math.Max(0, t.AvailableHeight+2*pad)

	rects := make([]grid.Rect, len(items))
	for i, it := range items {
		rect, err := t.ItemRect(it.Item, pad, gap)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Label(i+1), err)
		}
		rects[i] = rect
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", overlayCSS)
	fmt.Fprintf(&buf, `  <rect class="container" x="0" y="0" width="%.2f" height="%.2f"/>`+"\n", width, height)

	renderCells(&buf, t, pad)
	if r.lines {
		renderLines(&buf, t, pad)
	}
	if r.lineNumbers {
		renderLineNumbers(&buf, t, pad)
	}
	for i, it := range items {
		renderItem(&buf, it, i+1, rects[i], it.ID != "" && it.ID == r.selected)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// renderCells draws rounded overlay cells laid edge to edge from the padding
// corner, matching RoundedTemplates.
func renderCells(buf *bytes.Buffer, t grid.Tracks, pad float64) {
	xs := roundedLines(t.CellWidths)
	ys := roundedLines(t.CellHeights)
	buf.WriteString(`  <g class="overlay">` + "\n")
	for row := 0; row < len(ys)-1; row++ {
		for col := 0; col < len(xs)-1; col++ {
			w, h := xs[col+1]-xs[col], ys[row+1]-ys[row]
			if w <= 0 || h <= 0 {
				continue
			}
			fmt.Fprintf(buf, `    <rect class="cell" x="%.0f" y="%.0f" width="%.0f" height="%.0f"/>`+"\n",
				pad+xs[col], pad+ys[row], w, h)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderLines(buf *bytes.Buffer, t grid.Tracks, pad float64) {
	top, bottom := pad, pad+t.RowLines[len(t.RowLines)-1]
	left, right := pad, pad+t.ColumnLines[len(t.ColumnLines)-1]
	buf.WriteString(`  <g class="lines">` + "\n")
	for _, x := range t.ColumnLines {
		fmt.Fprintf(buf, `    <line class="line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", pad+x, top, pad+x, bottom)
	}
	for _, y := range t.RowLines {
		fmt.Fprintf(buf, `    <line class="line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", left, pad+y, right, pad+y)
	}
	buf.WriteString("  </g>\n")
}

func renderLineNumbers(buf *bytes.Buffer, t grid.Tracks, pad float64) {
	buf.WriteString(`  <g class="line-numbers">` + "\n")
	for i, x := range t.ColumnLines {
		fmt.Fprintf(buf, `    <text class="line-number" x="%.2f" y="%.2f" text-anchor="middle">%d</text>`+"\n",
			pad+x, math.Max(10, pad-4), i+1)
	}
	for i, y := range t.RowLines {
		fmt.Fprintf(buf, `    <text class="line-number" x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle">%d</text>`+"\n",
			math.Max(10, pad-4), pad+y, i+1)
	}
	buf.WriteString("  </g>\n")
}

func renderItem(buf *bytes.Buffer, it project.Item, n int, r grid.Rect, selected bool) {
	class := "item"
	if selected {
		class += " selected"
	}
	if it.Locked {
		class += " locked"
	}
	w, h := math.Max(0, r.Width), math.Max(0, r.Height)
	id := fmt.Sprintf("item-%d", n)
	if it.ID != "" {
		id = "item-" + it.ID
	}

	fmt.Fprintf(buf, `  <g id="%s">`+"\n", escape(id))
	fmt.Fprintf(buf, `    <rect class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6"/>`+"\n",
		class, r.X, r.Y, w, h)
	fmt.Fprintf(buf, `    <text class="item-label" x="%.2f" y="%.2f" text-anchor="middle">%s</text>`+"\n",
		r.CenterX(), r.CenterY()-2, escape(it.Label(n)))
	fmt.Fprintf(buf, `    <text class="item-span" x="%.2f" y="%.2f" text-anchor="middle">C: %d→%d | R: %d→%d</text>`+"\n",
		r.CenterX(), r.CenterY()+14, it.StartCol, it.EndCol, it.StartRow, it.EndRow)
	buf.WriteString("  </g>\n")
}
