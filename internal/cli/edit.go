package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// Rows above the canvas (title, help) and below it (status, selection).
const (
	editorHeader = 2
	editorFooter = 2
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [grid.json]",
		Short: "Edit a project interactively in the terminal",
		Long: `Edit a project interactively in the terminal.

Drag items with the mouse: grab the inside of an item to move it or its
border to resize it. Items snap to the nearest grid lines.

Keys:
  tab / shift+tab    select next / previous item
  a  d  x            add, duplicate, delete item
  p                  lock / unlock the selected item
  [ ]  { }           remove / add a column, remove / add a row
  u  ctrl+r          undo, redo
  s                  save
  q                  quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := projectArg(args)
			p, err := project.ReadFile(path)
			if err != nil {
				return err
			}

			m := newEditorModel(project.NewStore(p), path, loggerFromContext(cmd.Context()))
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if em, ok := final.(*editorModel); ok && em.dirty {
				printWarning("Quit with unsaved changes")
			}
			return nil
		},
	}
}

// editorModel is the bubbletea model of the interactive editor.
type editorModel struct {
	store  *project.Store
	path   string
	logger *log.Logger

	width, height int
	tracks        grid.Tracks
	canvas        *canvas

	gesture   *drag.Gesture
	gestureID string
	committed bool

	status   string
	dirty    bool
	confirmQ bool
}

func newEditorModel(s *project.Store, path string, logger *log.Logger) *editorModel {
	m := &editorModel{store: s, path: path, logger: logger, width: 80, height: 24}
	m.layout()
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

func (m *editorModel) canvasSize() (int, int) {
	return max(m.width, 1), max(m.height-editorHeader-editorFooter, 1)
}

// layout recomputes tracks from the current configuration and redraws.
func (m *editorModel) layout() {
	w, h := m.canvasSize()
	t, err := canvasTracks(m.store.Config(), w, h)
	if err != nil {
		m.status = errors.Message(err)
		t = grid.Tracks{}
	}
	m.tracks = t
	sel, _ := m.store.Selected()
	m.canvas = drawCanvas(t, m.store.Config(), m.store.Items(), sel.ID, w, h)
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if cmd := m.handleKey(msg.String()); cmd != nil {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	m.layout()
	return m, nil
}

func (m *editorModel) handleKey(key string) tea.Cmd {
	if key != "q" {
		m.confirmQ = false
	}
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.dirty && !m.confirmQ {
			m.confirmQ = true
			m.status = "unsaved changes, press q again to quit"
			return nil
		}
		return tea.Quit
	case "esc":
		m.gesture = nil
		_ = m.store.Select("")
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case "a":
		m.apply("added item", func() error {
			_, err := m.store.AddItem(project.Item{})
			return err
		})
	case "d":
		if sel, ok := m.store.Selected(); ok {
			m.apply("duplicated item", func() error {
				_, err := m.store.DuplicateItem(sel.ID)
				return err
			})
		}
	case "x", "delete", "backspace":
		if sel, ok := m.store.Selected(); ok {
			m.apply("deleted item", func() error { return m.store.DeleteItem(sel.ID) })
		}
	case "p":
		if sel, ok := m.store.Selected(); ok {
			m.store.Commit()
			m.apply("toggled lock", func() error {
				_, err := m.store.UpdateItem(sel.ID, func(it *project.Item) { it.Locked = !it.Locked })
				return err
			})
		}
	case "]":
		m.resizeGrid(1, 0)
	case "[":
		m.resizeGrid(-1, 0)
	case "}":
		m.resizeGrid(0, 1)
	case "{":
		m.resizeGrid(0, -1)
	case "u", "ctrl+z":
		if m.store.Undo() {
			m.dirty = true
			m.status = "undo"
		} else {
			m.status = "nothing to undo"
		}
	case "ctrl+r", "ctrl+y":
		if m.store.Redo() {
			m.dirty = true
			m.status = "redo"
		} else {
			m.status = "nothing to redo"
		}
	case "s", "ctrl+s":
		m.save()
	}
	return nil
}

// apply runs a store edit and reports its outcome in the status line.
func (m *editorModel) apply(done string, fn func() error) {
	if err := fn(); err != nil {
		m.status = errors.Message(err)
		return
	}
	m.dirty = true
	m.status = done
}

// cycle moves the selection by delta through the items.
func (m *editorModel) cycle(delta int) {
	items := m.store.Items()
	if len(items) == 0 {
		return
	}
	i := 0
	if sel, ok := m.store.Selected(); ok {
		_, idx, _ := m.store.Project().Item(sel.ID)
		i = (idx + delta + len(items)) % len(items)
	}
	_ = m.store.Select(items[i].ID)
}

func (m *editorModel) resizeGrid(dCols, dRows int) {
	m.apply("resized grid", func() error {
		return m.store.SetConfig(func(cfg *project.Config) {
			cfg.Columns += dCols
			cfg.Rows += dRows
		})
	})
}

func (m *editorModel) save() {
	if err := project.WriteFile(m.store.Project(), m.path); err != nil {
		m.status = errors.Message(err)
		return
	}
	m.dirty = false
	m.status = "saved " + m.path
	m.logger.Debug("saved project", "path", m.path)
}

// handleMouse drives a drag gesture from mouse events.
func (m *editorModel) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-editorHeader
	px, py := cellToPixel(x, y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		box, ok := m.canvas.hit(x, y)
		if !ok {
			_ = m.store.Select("")
			return
		}
		_ = m.store.Select(box.id)
		it, _, _ := m.store.Project().Item(box.id)
		g, err := drag.Begin(it.Item, box.handleAt(x, y), px, py, drag.Locked(it.Locked))
		if err != nil {
			m.status = errors.Message(err)
			return
		}
		m.gesture, m.gestureID, m.committed = g, box.id, false

	case tea.MouseActionMotion:
		if m.gesture == nil {
			return
		}
		next, changed, err := m.gesture.Move(px, py, m.tracks, m.store.Config().PaddingPx())
		if err != nil {
			m.status = errors.Message(err)
			return
		}
		if !changed {
			return
		}
		if !m.committed {
			m.store.Commit()
			m.committed = true
		}
		m.apply(placement(next), func() error {
			_, err := m.store.UpdateItem(m.gestureID, func(it *project.Item) { it.Item = next })
			return err
		})

	case tea.MouseActionRelease:
		if m.gesture == nil {
			return
		}
		if m.gesture.End() && m.committed {
			m.logger.Debug("drag", "item", m.gestureID, "handle", m.gesture.Handle(), "from", placement(m.gesture.Origin()), "to", placement(m.gesture.Current()))
		}
		m.gesture = nil
	}
}

func (m *editorModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render(appName) + " " + StyleValue.Render(m.path)
	if m.dirty {
		title += StyleWarning.Render(" *")
	}
	b.WriteString(title + "\n")
	b.WriteString(listDimStyle.Render("tab select · drag to move or resize · a add · x delete · u undo · s save · q quit"))
	b.WriteString("\n")

	b.WriteString(m.canvas.render())
	b.WriteString("\n")

	cfg := m.store.Config()
	info := fmt.Sprintf("%dx%d grid · %d items", cfg.Columns, cfg.Rows, len(m.store.Items()))
	if m.tracks.Degenerate() {
		info += " · " + StyleWarning.Render("padding leaves no room for cells")
	}
	if sel, ok := m.store.Selected(); ok {
		_, idx, _ := m.store.Project().Item(sel.ID)
		info += " · " + StyleHighlight.Render(sel.Label(idx+1)) + " " + placement(sel.Item)
		if sel.Locked {
			info += " " + StyleWarning.Render("locked")
		}
	}
	b.WriteString(StyleDim.Render(info) + "\n")
	b.WriteString(StyleDim.Render(m.status))

	return b.String()
}

// placement formats an item as CSS grid-area lines.
func placement(it grid.Item) string {
	return fmt.Sprintf("%d / %d / %d / %d", it.StartRow, it.StartCol, it.EndRow, it.EndCol)
}
