// Package project holds the editable state of a grid layout: its
// configuration, the placed items and an undo history.
//
// A Project is plain data that round-trips through JSON, TOML and BSON. A
// Store wraps one project for interactive editing. Geometry is never stored:
// callers derive fresh tracks from the current configuration with
// [Config.Tracks] whenever they need them.
package project

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

// Version is the project document version written by this package.
const Version = "1.0"

// Item is a named, placed rectangle.
type Item struct {
	ID     string `json:"id" toml:"id" bson:"id"`
	Name   string `json:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
	Locked bool   `json:"locked,omitempty" toml:"locked,omitempty" bson:"locked,omitempty"`

	grid.Item `bson:",inline"`
}

// NewItem returns an item with a fresh ID at the given placement.
func NewItem(name string, placement grid.Item) Item {
	return Item{ID: NewID(), Name: name, Item: placement}
}

// NewID returns a new random identifier.
func NewID() string {
	return uuid.NewString()
}

// Label returns the item's name, or "Item n" for the 1-based position n when
// it has none.
func (it Item) Label(n int) string {
	if it.Name != "" {
		return it.Name
	}
	return "Item " + strconv.Itoa(n)
}

// Project is a complete grid layout document.
type Project struct {
	ID         string `json:"id,omitempty" toml:"id,omitempty" bson:"_id,omitempty"`
	Name       string `json:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
	Version    string `json:"version" toml:"version" bson:"version"`
	Config     Config `json:"config" toml:"config" bson:"config"`
	Items      []Item `json:"items" toml:"items" bson:"items"`
	SelectedID string `json:"selectedItemId,omitempty" toml:"selected_item_id,omitempty" bson:"selected_item_id,omitempty"`
}

// New returns an empty project with the default configuration.
func New() Project {
	return Project{Version: Version, Config: DefaultConfig(), Items: []Item{}}
}

// Clone returns a deep copy of p.
func (p Project) Clone() Project {
	p.Config = p.Config.Clone()
	p.Items = append([]Item{}, p.Items...)
	return p
}

// Item returns the item with the given ID.
func (p Project) Item(id string) (Item, int, bool) {
	for i, it := range p.Items {
		if it.ID == id {
			return it, i, true
		}
	}
	return Item{}, -1, false
}

// Placements returns the grid placement of every item, in order.
func (p Project) Placements() []grid.Item {
	out := make([]grid.Item, len(p.Items))
	for i, it := range p.Items {
		out[i] = it.Item
	}
	return out
}

// Normalize fills in defaults a loaded document may lack: version, weight
// slices and IDs for items without one. Items outside the grid are clamped
// onto it.
func (p Project) Normalize() Project {
	p = p.Clone()
	if p.Version == "" {
		p.Version = Version
	}
	p.Config = p.Config.Normalize()
	if p.Config.Columns >= 1 && p.Config.Rows >= 1 {
		p.Items = clampItems(p.Items, p.Config.Columns, p.Config.Rows)
	}
	for i := range p.Items {
		if p.Items[i].ID == "" {
			p.Items[i].ID = NewID()
		}
	}
	if _, _, ok := p.Item(p.SelectedID); !ok {
		p.SelectedID = ""
	}
	return p
}

// Validate checks the configuration and that every item is named safely,
// uniquely identified and fits the grid.
func (p Project) Validate() error {
	if err := p.Config.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(p.Items))
	for i, it := range p.Items {
		if it.ID == "" {
			return errors.New(errors.ErrCodeInvalidItem, "item %d has no id", i+1)
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeInvalidItem, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		if err := errors.ValidateItemName(it.Name); err != nil {
			return err
		}
		if !it.Valid(p.Config.Columns, p.Config.Rows) {
			return errors.New(errors.ErrCodeInvalidItem,
				"item %q (columns %d-%d, rows %d-%d) does not fit a %dx%d grid",
				it.Label(i+1), it.StartCol, it.EndCol, it.StartRow, it.EndRow, p.Config.Columns, p.Config.Rows)
		}
	}
	return nil
}
