package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// One terminal cell stands for charW by charH pixels of the layout.
const (
	charW = 8.0
	charH = 16.0
)

type cellClass uint8

const (
	clsPadding cellClass = iota
	clsCell
	clsLine
	clsItem
	clsLocked
	clsSelected
)

var canvasStyles = map[cellClass]lipgloss.Style{
	clsPadding:  lipgloss.NewStyle(),
	clsCell:     lipgloss.NewStyle().Foreground(colorDim),
	clsLine:     lipgloss.NewStyle().Foreground(colorGray),
	clsItem:     lipgloss.NewStyle().Foreground(colorWhite),
	clsLocked:   lipgloss.NewStyle().Foreground(colorYellow),
	clsSelected: lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
}

// itemBox is an item's rectangle in terminal cells, inclusive on all sides.
type itemBox struct {
	id             string
	x0, y0, x1, y1 int
}

func (b itemBox) contains(x, y int) bool {
	return x >= b.x0 && x <= b.x1 && y >= b.y0 && y <= b.y1
}

// handleAt returns the handle under a cell of the box: its border grabs the
// matching edge or corner and the interior moves the item.
func (b itemBox) handleAt(x, y int) drag.Handle {
	var v, h string
	switch {
	case y == b.y0 && b.y1 > b.y0:
		v = "n"
	case y == b.y1 && b.y1 > b.y0:
		v = "s"
	}
	switch {
	case x == b.x0 && b.x1 > b.x0:
		h = "w"
	case x == b.x1 && b.x1 > b.x0:
		h = "e"
	}
	if v+h == "" {
		return drag.Move
	}
	return drag.Handle(v + h)
}

// canvas is a character raster of a laid out project.
type canvas struct {
	w, h  int
	runes [][]rune
	class [][]cellClass
	boxes []itemBox
}

// cellToPixel returns the layout pixel at the centre of a terminal cell.
func cellToPixel(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * charW, (float64(y) + 0.5) * charH
}

// canvasViewport is the pixel frame a w by h cell canvas stands for.
func canvasViewport(w, h int) project.Viewport {
	return project.Viewport{Width: float64(w) * charW, Height: float64(h) * charH}
}

// canvasTracks lays cfg out in the canvas. Pixel container widths wider than
// the canvas are narrowed to fit it.
func canvasTracks(cfg project.Config, w, h int) (grid.Tracks, error) {
	v := canvasViewport(w, h)
	spec, err := cfg.Spec(v)
	if err != nil {
		return grid.Tracks{}, err
	}
	spec.ContainerWidth = math.Min(spec.ContainerWidth, v.Width)
	return grid.ComputeTracks(spec)
}

// drawCanvas rasterizes tracks and items into a w by h canvas. Items are
// drawn in order so later ones overlap earlier ones.
func drawCanvas(t grid.Tracks, cfg project.Config, items []project.Item, selected string, w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), class: make([][]cellClass, h)}
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.class[y] = make([]cellClass, w)
	}
	if t.Degenerate() {
		return c
	}

	pad := cfg.PaddingPx()
	x0, y0 := toCell(pad, charW), toCell(pad, charH)
	x1, y1 := toCell(pad+t.AvailableWidth, charW)-1, toCell(pad+t.AvailableHeight, charH)-1
	c.fill(x0, y0, x1, y1, '·', clsCell)

	for _, line := range t.ColumnLines {
		x := min(toCell(pad+line, charW), x1)
		for y := y0; y <= y1; y++ {
			c.set(x, y, '┊', clsLine)
		}
	}
	for _, line := range t.RowLines {
		y := min(toCell(pad+line, charH), y1)
		for x := x0; x <= x1; x++ {
			r := '┈'
			if y >= 0 && y < c.h && x >= 0 && x < c.w && c.runes[y][x] == '┊' {
				r = '┼'
			}
			c.set(x, y, r, clsLine)
		}
	}

	gap := cfg.GapItems
	for i, it := range items {
		r, err := t.ItemRect(it.Item, pad, gap)
		if err != nil {
			continue
		}
		b := itemBox{
			id: it.ID,
			x0: toCell(r.X, charW),
			y0: toCell(r.Y, charH),
			x1: max(toCell(r.Right(), charW)-1, toCell(r.X, charW)),
			y1: max(toCell(r.Bottom(), charH)-1, toCell(r.Y, charH)),
		}
		cls := clsItem
		switch {
		case it.ID == selected:
			cls = clsSelected
		case it.Locked:
			cls = clsLocked
		}
		c.box(b, it.Label(i+1), cls)
		c.boxes = append(c.boxes, b)
	}
	return c
}

// hit returns the topmost box containing the cell.
func (c *canvas) hit(x, y int) (itemBox, bool) {
	for i := len(c.boxes) - 1; i >= 0; i-- {
		if c.boxes[i].contains(x, y) {
			return c.boxes[i], true
		}
	}
	return itemBox{}, false
}

func (c *canvas) set(x, y int, r rune, cls cellClass) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.class[y][x] = cls
}

func (c *canvas) fill(x0, y0, x1, y1 int, r rune, cls cellClass) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.set(x, y, r, cls)
		}
	}
}

func (c *canvas) box(b itemBox, label string, cls cellClass) {
	c.fill(b.x0, b.y0, b.x1, b.y1, ' ', cls)
	if b.x1 > b.x0 && b.y1 > b.y0 {
		for x := b.x0 + 1; x < b.x1; x++ {
			c.set(x, b.y0, '─', cls)
			c.set(x, b.y1, '─', cls)
		}
		for y := b.y0 + 1; y < b.y1; y++ {
			c.set(b.x0, y, '│', cls)
			c.set(b.x1, y, '│', cls)
		}
		c.set(b.x0, b.y0, '╭', cls)
		c.set(b.x1, b.y0, '╮', cls)
		c.set(b.x0, b.y1, '╰', cls)
		c.set(b.x1, b.y1, '╯', cls)
	}

	inner := b.x1 - b.x0 - 1
	if inner < 1 {
		c.set(b.x0, b.y0, '▪', cls)
		return
	}
	text := []rune(label)
	if len(text) > inner {
		text = text[:inner]
	}
	y := (b.y0 + b.y1) / 2
	x := b.x0 + 1 + (inner-len(text))/2
	for i, r := range text {
		c.set(x+i, y, r, cls)
	}
}

// render returns the canvas with styles applied to runs of equal class.
func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.runes {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.class[y][x] == c.class[y][start] {
				continue
			}
			b.WriteString(canvasStyles[c.class[y][start]].Render(string(row[start:x])))
			start = x
		}
		if y < len(c.runes)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func toCell(px, size float64) int {
	return int(math.Round(px / size))
}
