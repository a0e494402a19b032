package cli

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// boxProject is a 4x3 grid with one 1x1 item in the top-left cell.
func boxProject(locked bool) project.Project {
	p := project.New()
	p.Config.Columns, p.Config.Rows = 4, 3
	p.Config = p.Config.Normalize()
	p.Items = []project.Item{{
		ID:     "box",
		Name:   "Box",
		Locked: locked,
		Item:   grid.Item{StartCol: 1, EndCol: 2, StartRow: 1, EndRow: 2},
	}}
	return p
}

// newTestEditor returns an editor over boxProject in an 80x24 terminal. The
// canvas is 80x20 cells, a 640x320 px viewport: columns every 152px and rows
// every 96px inside the 16px padding. The item box covers cells (3,1)-(20,6).
func newTestEditor(t *testing.T, locked bool) *editorModel {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grid.json")
	m := newEditorModel(project.NewStore(boxProject(locked)), path, log.New(io.Discard))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y + editorHeader, Action: action, Button: tea.MouseButtonLeft}
}

func boxItem(t *testing.T, m *editorModel) project.Item {
	t.Helper()
	it, _, ok := m.store.Project().Item("box")
	if !ok {
		t.Fatal("item box missing")
	}
	return it
}

func TestEditorKeys(t *testing.T) {
	m := newTestEditor(t, false)

	m.Update(key("tab"))
	if sel, ok := m.store.Selected(); !ok || sel.ID != "box" {
		t.Fatalf("selected = %q, %v", sel.ID, ok)
	}

	m.Update(key("d"))
	if got := len(m.store.Items()); got != 2 {
		t.Fatalf("items after duplicate = %d, want 2", got)
	}
	if !m.dirty {
		t.Error("editor not dirty after edit")
	}

	m.Update(key("u"))
	if got := len(m.store.Items()); got != 1 {
		t.Errorf("items after undo = %d, want 1", got)
	}
	m.Update(key("u"))
	if m.status != "nothing to undo" {
		t.Errorf("status = %q", m.status)
	}

	// Arrow keys do not move items.
	m.Update(key("right"))
	if got := boxItem(t, m).StartCol; got != 1 {
		t.Errorf("StartCol after right = %d, want 1", got)
	}

	m.Update(key("]"))
	if got := m.store.Config().Columns; got != 5 {
		t.Errorf("columns = %d, want 5", got)
	}

	m.Update(key("s"))
	if m.dirty {
		t.Error("editor dirty after save")
	}
	p, err := project.ReadFile(m.path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Config.Columns != 5 {
		t.Errorf("saved columns = %d, want 5", p.Config.Columns)
	}
}

func TestEditorQuitConfirm(t *testing.T) {
	m := newTestEditor(t, false)
	m.Update(key("a"))

	if _, cmd := m.Update(key("q")); cmd != nil {
		t.Fatal("quit with unsaved changes did not ask for confirmation")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("second q did not quit")
	}
}

func TestEditorMouseMove(t *testing.T) {
	m := newTestEditor(t, false)

	m.Update(mouse(tea.MouseActionPress, 11, 3))
	if m.gesture == nil || m.gesture.Handle() != drag.Move {
		t.Fatalf("gesture = %+v, want a move", m.gesture)
	}

	// Inside the threshold nothing changes.
	m.Update(mouse(tea.MouseActionMotion, 11, 3))
	if m.store.CanUndo() {
		t.Error("history recorded before the pointer moved")
	}

	m.Update(mouse(tea.MouseActionMotion, 60, 3))
	m.Update(mouse(tea.MouseActionRelease, 60, 3))

	want := grid.Item{StartCol: 4, EndCol: 5, StartRow: 1, EndRow: 2}
	if got := boxItem(t, m).Item; got != want {
		t.Errorf("placement = %+v, want %+v", got, want)
	}
	if m.gesture != nil {
		t.Error("gesture still active after release")
	}

	m.Update(key("u"))
	if got := boxItem(t, m).StartCol; got != 1 {
		t.Errorf("StartCol after undo = %d, want 1", got)
	}
}

func TestEditorMouseResize(t *testing.T) {
	m := newTestEditor(t, false)

	m.Update(mouse(tea.MouseActionPress, 20, 6))
	if m.gesture == nil || m.gesture.Handle() != drag.SouthEast {
		t.Fatalf("gesture = %+v, want se resize", m.gesture)
	}
	m.Update(mouse(tea.MouseActionMotion, 40, 12))
	m.Update(mouse(tea.MouseActionRelease, 40, 12))

	want := grid.Item{StartCol: 1, EndCol: 3, StartRow: 1, EndRow: 3}
	if got := boxItem(t, m).Item; got != want {
		t.Errorf("placement = %+v, want %+v", got, want)
	}
}

func TestEditorMouseLocked(t *testing.T) {
	m := newTestEditor(t, true)

	m.Update(mouse(tea.MouseActionPress, 11, 3))
	if m.gesture != nil {
		t.Error("gesture started on a locked item")
	}
	if m.status != "item is locked" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorMouseMiss(t *testing.T) {
	m := newTestEditor(t, false)
	m.Update(key("tab"))

	m.Update(mouse(tea.MouseActionPress, 70, 15))
	if _, ok := m.store.Selected(); ok {
		t.Error("click on empty grid kept the selection")
	}
	if m.gesture != nil {
		t.Error("gesture started without an item")
	}
}

func TestDrawCanvas(t *testing.T) {
	p := boxProject(false)
	tr, err := canvasTracks(p.Config, 80, 20)
	if err != nil {
		t.Fatal(err)
	}
	c := drawCanvas(tr, p.Config, p.Items, "", 80, 20)

	if len(c.boxes) != 1 {
		t.Fatalf("boxes = %d, want 1", len(c.boxes))
	}
	want := itemBox{id: "box", x0: 3, y0: 1, x1: 20, y1: 6}
	if c.boxes[0] != want {
		t.Errorf("box = %+v, want %+v", c.boxes[0], want)
	}
	if r := c.runes[1][3]; r != '╭' {
		t.Errorf("corner = %q, want ╭", r)
	}
	if !strings.Contains(string(c.runes[3]), "Box") {
		t.Errorf("label row = %q", string(c.runes[3]))
	}
	if r := c.runes[10][30]; r != '·' {
		t.Errorf("cell rune = %q, want ·", r)
	}
	if r := c.runes[10][2]; r != '┊' {
		t.Errorf("first column line = %q, want ┊", r)
	}
	if c.render() == "" {
		t.Error("empty render")
	}
}

func TestDrawCanvasDegenerate(t *testing.T) {
	p := boxProject(false)
	c := drawCanvas(grid.Tracks{}, p.Config, p.Items, "", 10, 4)
	if len(c.boxes) != 0 {
		t.Errorf("boxes = %d, want 0", len(c.boxes))
	}
	for _, row := range c.runes {
		if strings.TrimSpace(string(row)) != "" {
			t.Errorf("row = %q, want blank", string(row))
		}
	}
}

func TestCanvasHit(t *testing.T) {
	c := &canvas{boxes: []itemBox{
		{id: "under", x0: 0, y0: 0, x1: 10, y1: 10},
		{id: "over", x0: 5, y0: 5, x1: 15, y1: 15},
	}}
	tests := []struct {
		x, y int
		want string
	}{
		{1, 1, "under"},
		{7, 7, "over"},
		{14, 14, "over"},
		{20, 20, ""},
	}
	for _, tt := range tests {
		b, ok := c.hit(tt.x, tt.y)
		if tt.want == "" {
			if ok {
				t.Errorf("hit(%d,%d) = %q, want miss", tt.x, tt.y, b.id)
			}
			continue
		}
		if !ok || b.id != tt.want {
			t.Errorf("hit(%d,%d) = %q, want %q", tt.x, tt.y, b.id, tt.want)
		}
	}
}

func TestHandleAt(t *testing.T) {
	b := itemBox{x0: 0, y0: 0, x1: 10, y1: 5}
	tests := []struct {
		x, y int
		want drag.Handle
	}{
		{0, 0, drag.NorthWest},
		{10, 0, drag.NorthEast},
		{0, 5, drag.SouthWest},
		{10, 5, drag.SouthEast},
		{5, 0, drag.North},
		{5, 5, drag.South},
		{0, 3, drag.West},
		{10, 3, drag.East},
		{5, 3, drag.Move},
	}
	for _, tt := range tests {
		if got := b.handleAt(tt.x, tt.y); got != tt.want {
			t.Errorf("handleAt(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}

	flat := itemBox{x0: 0, y0: 2, x1: 10, y1: 2}
	if got := flat.handleAt(5, 2); got != drag.Move {
		t.Errorf("flat box interior = %q, want move", got)
	}
	if got := flat.handleAt(10, 2); got != drag.East {
		t.Errorf("flat box edge = %q, want e", got)
	}
}

func TestPresetListModel(t *testing.T) {
	presets := project.Presets()
	var m tea.Model = newPresetListModel(presets)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("enter did not quit")
	}
	if got := m.(presetListModel).selected; got != presets[1].Name {
		t.Errorf("selected = %q, want %q", got, presets[1].Name)
	}
	if !strings.Contains(m.View(), presets[0].Name) {
		t.Error("view missing preset names")
	}
}
