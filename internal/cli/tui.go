package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridsmith/pkg/project"
)

// List styles
var (
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// newTable returns a table with the shared CLI look.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// tableStyle styles header rows, dims the first column and highlights col.
func tableStyle(col int) func(row, c int) lipgloss.Style {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return func(row, c int) lipgloss.Style {
		switch {
		case row == -1:
			return tableHeaderStyle.Padding(0, 1)
		case c == 0:
			return cell.Foreground(colorGray)
		case c == col:
			return cell.Foreground(colorCyan)
		}
		return cell.Foreground(colorWhite)
	}
}

// =============================================================================
// presetListModel - Interactive preset selection
// =============================================================================

// presetListModel is the bubbletea model for interactive preset selection.
type presetListModel struct {
	presets  []project.Preset
	cursor   int
	offset   int
	height   int
	selected string
}

func newPresetListModel(presets []project.Preset) presetListModel {
	return presetListModel{presets: presets, height: 10}
}

func (m presetListModel) Init() tea.Cmd {
	return nil
}

func (m presetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.presets)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if len(m.presets) > 0 {
				m.selected = m.presets[m.cursor].Name
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m presetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.presets))

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		p := m.presets[i]
		cfg := p.Project().Config
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			p.Name,
			fmt.Sprintf("%dx%d", cfg.Columns, cfg.Rows),
			fmt.Sprintf("%d", len(p.Project().Items)),
			p.Description,
		})
	}

	t := newTable("", "Preset", "Grid", "Items", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if m.offset+row == m.cursor {
				if col == 4 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.presets))))

	return b.String()
}
