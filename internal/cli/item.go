package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// itemCommand creates the item command group.
func (c *CLI) itemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, list, move and remove items",
		Long: `Add, list, move and remove items.

Items are referenced by ID, by 1-based position as shown by 'item list', or
by name.`,
	}

	cmd.AddCommand(c.itemAddCommand())
	cmd.AddCommand(c.itemListCommand())
	cmd.AddCommand(c.itemMoveCommand())
	cmd.AddCommand(c.itemDragCommand())
	cmd.AddCommand(c.itemLockCommand())
	cmd.AddCommand(c.itemRemoveCommand())

	return cmd
}

// editFile loads a project into a store, applies fn and writes it back.
func editFile(path string, fn func(*project.Store) error) (project.Project, error) {
	p, err := project.ReadFile(path)
	if err != nil {
		return project.Project{}, err
	}
	s := project.NewStore(p)
	if err := fn(s); err != nil {
		return project.Project{}, err
	}
	p = s.Project()
	if err := project.WriteFile(p, path); err != nil {
		return project.Project{}, fmt.Errorf("write %s: %w", path, err)
	}
	return p, nil
}

// findItem resolves an item reference: an ID, a 1-based position or a name.
func findItem(p project.Project, ref string) (project.Item, int, error) {
	if it, i, ok := p.Item(ref); ok {
		return it, i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(p.Items) {
		return p.Items[n-1], n - 1, nil
	}
	found := -1
	for i, it := range p.Items {
		if it.Name == ref {
			if found >= 0 {
				return project.Item{}, -1, errors.New(errors.ErrCodeInvalidInput, "name %q matches more than one item; use the ID", ref)
			}
			found = i
		}
	}
	if found < 0 {
		return project.Item{}, -1, errors.New(errors.ErrCodeItemNotFound, "no item %q", ref)
	}
	return p.Items[found], found, nil
}

func (c *CLI) itemAddCommand() *cobra.Command {
	var (
		name             string
		col, row         int
		colSpan, rowSpan int
		locked           bool
	)

	cmd := &cobra.Command{
		Use:   "add <grid.json>",
		Short: "Add an item",
		Long: `Add an item.

--col and --row give the start lines (1-based); --span-cols and --span-rows
the number of tracks covered. Without them the item covers three columns and
two rows from the top-left corner.`,
		Example: `  gridsmith item add grid.json --name Header --col 1 --span-cols 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added project.Item
			p, err := editFile(args[0], func(s *project.Store) error {
				at := s.Config().DefaultPlacement()
				if col > 0 {
					at.StartCol = col
				}
				if row > 0 {
					at.StartRow = row
				}
				at.EndCol = at.StartCol + span(colSpan, at.ColSpan())
				at.EndRow = at.StartRow + span(rowSpan, at.RowSpan())

				it, err := s.AddItem(project.Item{Name: name, Locked: locked, Item: at})
				added = it
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s at %s", added.Label(len(p.Items)), placement(added.Item))
			printDetail("ID: %s", added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "item name")
	cmd.Flags().IntVar(&col, "col", 0, "start column line")
	cmd.Flags().IntVar(&row, "row", 0, "start row line")
	cmd.Flags().IntVar(&colSpan, "span-cols", 0, "columns covered")
	cmd.Flags().IntVar(&rowSpan, "span-rows", 0, "rows covered")
	cmd.Flags().BoolVar(&locked, "locked", false, "lock the item against dragging")

	return cmd
}

func span(flag, def int) int {
	if flag > 0 {
		return flag
	}
	return def
}

func (c *CLI) itemListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <grid.json>",
		Short: "List items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(p.Items) == 0 {
				printInfo("No items")
				return nil
			}
			writeItemTable(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func writeItemTable(w io.Writer, p project.Project) {
	rows := make([][]string, len(p.Items))
	for i, it := range p.Items {
		lock := ""
		if it.Locked {
			lock = "locked"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			it.Label(i + 1),
			fmt.Sprintf("%d-%d", it.StartCol, it.EndCol),
			fmt.Sprintf("%d-%d", it.StartRow, it.EndRow),
			lock,
			shortID(it.ID),
		}
	}
	t := newTable("#", "Name", "Columns", "Rows", "", "ID").
		Rows(rows...).
		StyleFunc(tableStyle(1))
	fmt.Fprintln(w, t.Render())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (c *CLI) itemMoveCommand() *cobra.Command {
	var col, row int

	cmd := &cobra.Command{
		Use:               "move <grid.json> <item>",
		Short:             "Move an item to new start lines, keeping its span",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectItem,
		RunE: func(cmd *cobra.Command, args []string) error {
			if col <= 0 && row <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "give --col and/or --row")
			}
			var (
				moved project.Item
				label string
			)
			_, err := editFile(args[0], func(s *project.Store) error {
				it, i, err := findItem(s.Project(), args[1])
				if err != nil {
					return err
				}
				label = it.Label(i + 1)
				if it.Locked {
					return errors.New(errors.ErrCodeInvalidState, "item %q is locked", label)
				}
				next := it.Item
				if col > 0 {
					next.StartCol, next.EndCol = col, col+it.ColSpan()
				}
				if row > 0 {
					next.StartRow, next.EndRow = row, row+it.RowSpan()
				}
				s.Commit()
				moved, err = s.UpdateItem(it.ID, func(i *project.Item) { i.Item = next })
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Moved %s to %s", label, placement(moved.Item))
			return nil
		},
	}

	cmd.Flags().IntVar(&col, "col", 0, "new start column line")
	cmd.Flags().IntVar(&row, "row", 0, "new start row line")
	return cmd
}

func (c *CLI) itemDragCommand() *cobra.Command {
	var (
		handle    string
		from      string
		to        []string
		threshold float64
		vp        viewportFlags
	)

	cmd := &cobra.Command{
		Use:   "drag <grid.json> <item>",
		Short: "Replay a pointer drag on an item",
		Long: `Replay a pointer drag on an item.

The pointer goes down at --from and visits every --to point in order, as an
editor would see it. Points are "x,y" pixels from the container's outer
top-left corner in the given viewport. The item snaps to the nearest grid
lines; --handle move (default) moves it and an edge or corner handle
(n, ne, e, se, s, sw, w, nw) resizes it.`,
		Example: `  gridsmith item drag grid.json Header --from 40,40 --to 300,40
  gridsmith item drag grid.json 2 --handle se --from 200,150 --to 420,300`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectItem,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := drag.ParseHandle(handle)
			if err != nil {
				return err
			}
			start, err := parsePair(from)
			if err != nil {
				return err
			}
			if len(to) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "give at least one --to point")
			}
			path := make([][2]float64, len(to))
			for i, pt := range to {
				if path[i], err = parsePair(pt); err != nil {
					return err
				}
			}

			var (
				result  project.Item
				label   string
				dragged bool
			)
			_, err = editFile(args[0], func(s *project.Store) error {
				it, i, err := findItem(s.Project(), args[1])
				if err != nil {
					return err
				}
				label = it.Label(i + 1)
				cfg := s.Config()
				t, err := cfg.Tracks(vp.viewport())
				if err != nil {
					return err
				}
				next, moved, err := replayDrag(it, h, start, path, t, cfg.PaddingPx(), threshold)
				if err != nil {
					return err
				}
				result, dragged = it, moved
				if !moved {
					return nil
				}
				s.Commit()
				result, err = s.UpdateItem(it.ID, func(i *project.Item) { i.Item = next })
				return err
			})
			if err != nil {
				return err
			}
			if !dragged {
				printInfo("Pointer stayed within %gpx; %s not moved", threshold, label)
				return nil
			}
			printSuccess("%s is now at %s", label, placement(result.Item))
			return nil
		},
	}

	cmd.Flags().StringVar(&handle, "handle", string(drag.Move), "handle to grab: move, n, ne, e, se, s, sw, w, nw")
	_ = cmd.RegisterFlagCompletionFunc("handle", completeHandles)
	cmd.Flags().StringVar(&from, "from", "", "pointer-down position x,y")
	cmd.Flags().StringArrayVar(&to, "to", nil, "pointer position x,y (repeatable)")
	cmd.Flags().Float64Var(&threshold, "threshold", drag.Threshold, "distance before the drag starts (px)")
	vp.register(cmd)
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

// replayDrag runs a gesture over path and returns the final placement and
// whether the pointer crossed the drag threshold.
func replayDrag(it project.Item, h drag.Handle, start [2]float64, path [][2]float64, t grid.Tracks, padding, threshold float64) (grid.Item, bool, error) {
	g, err := drag.Begin(it.Item, h, start[0], start[1], drag.Locked(it.Locked), drag.WithThreshold(threshold))
	if err != nil {
		return grid.Item{}, false, err
	}
	for _, pt := range path {
		if _, _, err := g.Move(pt[0], pt[1], t, padding); err != nil {
			return grid.Item{}, false, err
		}
	}
	return g.Current(), g.End(), nil
}

func parsePair(s string) ([2]float64, error) {
	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, errors.New(errors.ErrCodeInvalidInput, "point %q is not x,y", s)
	}
	px, py, err := parsePoint(strings.TrimSpace(x), strings.TrimSpace(y))
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{px, py}, nil
}

func (c *CLI) itemLockCommand() *cobra.Command {
	var unlock bool

	cmd := &cobra.Command{
		Use:               "lock <grid.json> <item>",
		Short:             "Lock an item against dragging",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectItem,
		RunE: func(cmd *cobra.Command, args []string) error {
			var label string
			_, err := editFile(args[0], func(s *project.Store) error {
				it, i, err := findItem(s.Project(), args[1])
				if err != nil {
					return err
				}
				label = it.Label(i + 1)
				s.Commit()
				_, err = s.UpdateItem(it.ID, func(i *project.Item) { i.Locked = !unlock })
				return err
			})
			if err != nil {
				return err
			}
			state := "Locked"
			if unlock {
				state = "Unlocked"
			}
			printSuccess("%s %s", state, label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unlock, "off", false, "unlock instead")
	return cmd
}

func (c *CLI) itemRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <grid.json> <item>",
		Aliases:           []string{"remove", "delete"},
		Short:             "Remove an item",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeProjectItem,
		RunE: func(cmd *cobra.Command, args []string) error {
			var label string
			_, err := editFile(args[0], func(s *project.Store) error {
				it, i, err := findItem(s.Project(), args[1])
				if err != nil {
					return err
				}
				label = it.Label(i + 1)
				return s.DeleteItem(it.ID)
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %s", label)
			return nil
		},
	}
}
