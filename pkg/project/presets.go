package project

import (
	"sort"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

// Preset is a named starter project.
type Preset struct {
	Name        string
	Description string
	build       func() Project
}

// Project returns a fresh copy of the preset's project with new item IDs.
func (p Preset) Project() Project {
	return p.build()
}

var presets = map[string]Preset{
	"holy-grail": {
		Name:        "holy-grail",
		Description: "Header, footer, navigation, content and aside",
		build: func() Project {
			return presetProject("Holy grail", Config{
				Columns:      5,
				Rows:         3,
				ColumnWidths: []float64{1, 1.5, 1.5, 1.5, 1},
				RowHeights:   []float64{0.5, 3, 0.5},
			}, []Item{
				NewItem("Header", span(1, 6, 1, 2)),
				NewItem("Nav", span(1, 2, 2, 3)),
				NewItem("Content", span(2, 5, 2, 3)),
				NewItem("Aside", span(5, 6, 2, 3)),
				NewItem("Footer", span(1, 6, 3, 4)),
			})
		},
	},
	"dashboard": {
		Name:        "dashboard",
		Description: "Sidebar with a row of stat cards above two charts",
		build: func() Project {
			return presetProject("Dashboard", Config{
				Columns: 12,
				Rows:    6,
			}, []Item{
				NewItem("Sidebar", span(1, 3, 1, 7)),
				NewItem("Stat 1", span(3, 6, 1, 2)),
				NewItem("Stat 2", span(6, 9, 1, 2)),
				NewItem("Stat 3", span(9, 13, 1, 2)),
				NewItem("Chart", span(3, 10, 2, 5)),
				NewItem("Activity", span(10, 13, 2, 7)),
				NewItem("Table", span(3, 10, 5, 7)),
			})
		},
	},
	"magazine": {
		Name:        "magazine",
		Description: "Feature story with secondary articles and a sidebar",
		build: func() Project {
			return presetProject("Magazine", Config{
				Columns:      6,
				Rows:         4,
				ColumnWidths: []float64{1, 1, 1, 1, 1, 1},
				RowHeights:   []float64{2, 1, 1, 1},
			}, []Item{
				NewItem("Feature", span(1, 5, 1, 2)),
				NewItem("Sidebar", span(5, 7, 1, 4)),
				NewItem("Story 1", span(1, 3, 2, 4)),
				NewItem("Story 2", span(3, 5, 2, 3)),
				NewItem("Story 3", span(3, 5, 3, 4)),
				NewItem("Footer", span(1, 7, 4, 5)),
			})
		},
	},
}

func span(startCol, endCol, startRow, endRow int) grid.Item {
	return grid.Item{StartCol: startCol, EndCol: endCol, StartRow: startRow, EndRow: endRow}
}

// presetProject fills the given grid shape into the default configuration.
func presetProject(name string, shape Config, items []Item) Project {
	cfg := DefaultConfig()
	cfg.Columns, cfg.Rows = shape.Columns, shape.Rows
	cfg.ColumnWidths, cfg.RowHeights = shape.ColumnWidths, shape.RowHeights

	p := New()
	p.Name = name
	p.Config = cfg.Normalize()
	p.Items = items
	return p
}

// Presets returns every preset sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	all := Presets()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodePresetNotFound, "unknown preset %q (available: %v)", name, PresetNames())
	}
	return p, nil
}
