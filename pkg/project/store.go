package project

import (
	"math"
	"sync"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
)

// MaxHistory is the number of undo snapshots a Store keeps.
const MaxHistory = 50

// snapshot is the part of a project undo and redo restore.
type snapshot struct {
	config Config
	items  []Item
}

// Store is an editable project with undo history. It is safe for
// concurrent use.
//
// Structural edits (config changes, adding, deleting and duplicating items)
// record a history snapshot themselves. Weight edits and item updates do
// not, so a drag or a slider can stream many updates and record a single
// step with Commit.
type Store struct {
	mu     sync.RWMutex
	p      Project
	past   []snapshot
	future []snapshot
}

// NewStore returns a store holding a normalized copy of p.
func NewStore(p Project) *Store {
	return &Store{p: p.Normalize()}
}

// Project returns a copy of the current project.
func (s *Store) Project() Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Clone()
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Config.Clone()
}

// Items returns a copy of the current items.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item{}, s.p.Items...)
}

// Selected returns the selected item, if any.
func (s *Store) Selected() (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, _, ok := s.p.Item(s.p.SelectedID)
	return it, ok
}

// Tracks computes fresh tracks from the current configuration.
func (s *Store) Tracks(v Viewport) (grid.Tracks, error) {
	return s.Config().Tracks(v)
}

// Commit records the current state as an undo step and clears redo.
func (s *Store) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit()
}

func (s *Store) commit() {
	s.past = append(s.past, s.snapshot())
	if len(s.past) > MaxHistory {
		s.past = append([]snapshot(nil), s.past[len(s.past)-MaxHistory:]...)
	}
	s.future = nil
}

func (s *Store) snapshot() snapshot {
	return snapshot{config: s.p.Config.Clone(), items: append([]Item{}, s.p.Items...)}
}

func (s *Store) restore(sn snapshot) {
	s.p.Config = sn.config
	s.p.Items = sn.items
	if _, _, ok := s.p.Item(s.p.SelectedID); !ok {
		s.p.SelectedID = ""
	}
}

// SetConfig applies fn to a copy of the configuration. When the track counts
// change, the weight slices are resized keeping existing weights and items
// that no longer fit are clamped onto the grid. The result must validate; on
// error nothing changes.
func (s *Store) SetConfig(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.p.Config.Clone()
	fn(&next)
	next = next.Normalize()
	if err := next.Validate(); err != nil {
		return err
	}
	s.commit()
	s.p.Config = next
	s.p.Items = clampItems(s.p.Items, next.Columns, next.Rows)
	return nil
}

func clampItems(items []Item, cols, rows int) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if !it.Valid(cols, rows) {
			it.Item = it.Clamp(cols, rows)
		}
		out[i] = it
	}
	return out
}

// SetColumnWidth sets the fr weight of column i (0-based). Non-positive
// weights become 1.
func (s *Store) SetColumnWidth(i int, w float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setWeight(s.p.Config.ColumnWidths, "column", i, w)
}

// SetRowHeight sets the fr weight of row i (0-based). Non-positive weights
// become 1.
func (s *Store) SetRowHeight(i int, h float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return setWeight(s.p.Config.RowHeights, "row", i, h)
}

func setWeight(weights []float64, axis string, i int, w float64) error {
	if i < 0 || i >= len(weights) {
		return errors.New(errors.ErrCodeInvalidInput, "%s %d out of range 1-%d", axis, i+1, len(weights))
	}
	if !(w > 0) || math.IsInf(w, 1) {
		w = 1
	}
	weights[i] = w
	return nil
}

// ResetColumnWidths sets every column weight back to 1.
func (s *Store) ResetColumnWidths() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit()
	s.p.Config.ColumnWidths = ones(s.p.Config.Columns)
}

// ResetRowHeights sets every row weight back to 1.
func (s *Store) ResetRowHeights() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit()
	s.p.Config.RowHeights = ones(s.p.Config.Rows)
}

// DefaultPlacement is where AddItem puts an item without a placement: three
// columns by two rows from the top-left corner, limited to the grid.
func (c Config) DefaultPlacement() grid.Item {
	return grid.Item{
		StartCol: 1,
		EndCol:   min(4, c.Columns+1),
		StartRow: 1,
		EndRow:   min(3, c.Rows+1),
	}
}

// AddItem appends an item and selects it. A missing ID is generated and a
// zero placement is replaced with the default one.
func (s *Store) AddItem(it Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.ID == "" {
		it.ID = NewID()
	}
	if it.Item == (grid.Item{}) {
		it.Item = s.p.Config.DefaultPlacement()
	}
	if err := s.checkItem(it, ""); err != nil {
		return Item{}, err
	}

	s.commit()
	s.p.Items = append(s.p.Items, it)
	s.p.SelectedID = it.ID
	return it, nil
}

// UpdateItem applies fn to a copy of the item with the given ID. It does not
// record history; call Commit when the edit is complete.
func (s *Store) UpdateItem(id string, fn func(*Item)) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, i, ok := s.p.Item(id)
	if !ok {
		return Item{}, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}
	fn(&it)
	it.ID = id
	if err := s.checkItem(it, id); err != nil {
		return Item{}, err
	}
	s.p.Items = append([]Item{}, s.p.Items...)
	s.p.Items[i] = it
	return it, nil
}

// DeleteItem removes the item with the given ID, clearing the selection if it
// pointed at it.
func (s *Store) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := s.p.Item(id)
	if !ok {
		return errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}
	s.commit()
	items := make([]Item, 0, len(s.p.Items)-1)
	items = append(items, s.p.Items[:i]...)
	s.p.Items = append(items, s.p.Items[i+1:]...)
	if s.p.SelectedID == id {
		s.p.SelectedID = ""
	}
	return nil
}

// DuplicateItem copies an item one track down and to the right, limited to
// the grid, and selects the copy.
func (s *Store) DuplicateItem(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, _, ok := s.p.Item(id)
	if !ok {
		return Item{}, errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
	}
	cols, rows := s.p.Config.Columns, s.p.Config.Rows

	dup := src
	dup.ID = NewID()
	dup.StartCol = min(src.StartCol+1, cols)
	dup.StartRow = min(src.StartRow+1, rows)
	dup.EndCol = max(dup.StartCol+1, min(src.EndCol+1, cols+1))
	dup.EndRow = max(dup.StartRow+1, min(src.EndRow+1, rows+1))

	s.commit()
	s.p.Items = append(s.p.Items, dup)
	s.p.SelectedID = dup.ID
	return dup, nil
}

// Select selects the item with the given ID. An empty ID clears the
// selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, _, ok := s.p.Item(id); !ok {
			return errors.New(errors.ErrCodeItemNotFound, "item %q not found", id)
		}
	}
	s.p.SelectedID = id
	return nil
}

// CanUndo reports whether Undo has a step to restore.
func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.past) > 0
}

// CanRedo reports whether Redo has a step to restore.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.future) > 0
}

// Undo restores the previous snapshot. It reports false when there is none.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.past) == 0 {
		return false
	}
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append([]snapshot{s.snapshot()}, s.future...)
	s.restore(prev)
	return true
}

// Redo reapplies the most recently undone snapshot. It reports false when
// there is none.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.future) == 0 {
		return false
	}
	next := s.future[0]
	s.future = s.future[1:]
	s.past = append(s.past, s.snapshot())
	s.restore(next)
	return true
}

// Load replaces the project and clears the history.
func (s *Store) Load(p Project) error {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
	s.past, s.future = nil, nil
	return nil
}

// Reset replaces the project with an empty default one and clears the
// history. The project ID and name are kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := New()
	p.ID, p.Name = s.p.ID, s.p.Name
	s.p = p
	s.past, s.future = nil, nil
}

// checkItem validates an item against the current grid and ID uniqueness.
// self is the ID the item is allowed to share.
func (s *Store) checkItem(it Item, self string) error {
	if err := errors.ValidateItemName(it.Name); err != nil {
		return err
	}
	if !it.Valid(s.p.Config.Columns, s.p.Config.Rows) {
		return errors.New(errors.ErrCodeInvalidItem,
			"columns %d-%d, rows %d-%d do not fit a %dx%d grid",
			it.StartCol, it.EndCol, it.StartRow, it.EndRow, s.p.Config.Columns, s.p.Config.Rows)
	}
	if it.ID != self {
		if _, _, dup := s.p.Item(it.ID); dup {
			return errors.New(errors.ErrCodeInvalidItem, "duplicate item id %q", it.ID)
		}
	}
	return nil
}
