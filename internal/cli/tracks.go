package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// viewportFlags holds the --width/--height flags shared by geometry commands.
type viewportFlags struct {
	width, height float64
}

func (f *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", project.DefaultViewport.Width, "viewport width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", project.DefaultViewport.Height, "viewport height in pixels")
}

func (f viewportFlags) viewport() project.Viewport {
	return project.Viewport{Width: f.width, Height: f.height}
}

// tracksCommand creates the tracks command for inspecting track geometry.
func (c *CLI) tracksCommand() *cobra.Command {
	var (
		vp       viewportFlags
		specFile string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "tracks [grid.json]",
		Short: "Show the track geometry of a project",
		Long: `Show the track geometry of a project.

Each column and row receives its weighted share of the container after
padding. The table lists every track's size and the position of the grid
line before it, relative to the inner top-left corner.

Use --spec to lay out a bare grid specification instead of a project:

  {"columnWeights": [1, 2, 1], "rowWeights": [1, 1], "itemGap": 8,
   "padding": 16, "containerWidth": 800, "containerHeight": 600}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := loadSpec(args, specFile, vp.viewport())
			if err != nil {
				return err
			}
			return runTracks(cmd.OutOrStdout(), spec, asJSON)
		},
	}

	vp.register(cmd)
	cmd.Flags().StringVar(&specFile, "spec", "", "read a grid specification (JSON) instead of a project")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tracks as JSON")

	return cmd
}

// loadSpec reads a bare specification file, or converts the project named by
// args laid out in v.
func loadSpec(args []string, specFile string, v project.Viewport) (grid.Spec, error) {
	if specFile != "" {
		data, err := os.ReadFile(specFile)
		if err != nil {
			return grid.Spec{}, fmt.Errorf("read %s: %w", specFile, err)
		}
		var spec grid.Spec
		if err := json.Unmarshal(data, &spec); err != nil {
			return grid.Spec{}, errors.Wrap(errors.ErrCodeInvalidSpecification, err, "decode %s", specFile)
		}
		return spec, nil
	}
	p, err := project.ReadFile(projectArg(args))
	if err != nil {
		return grid.Spec{}, err
	}
	return p.Config.Spec(v)
}

// runTracks lays out spec from scratch on every call.
func runTracks(w io.Writer, spec grid.Spec, asJSON bool) error {
	t, err := grid.ComputeTracks(spec)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	}

	fmt.Fprintln(w, trackTable("Column", t.CellWidths, t.ColumnLines))
	fmt.Fprintln(w, trackTable("Row", t.CellHeights, t.RowLines))
	printKeyValue("Available", fmt.Sprintf("%s × %s px", formatPx(t.AvailableWidth), formatPx(t.AvailableHeight)))
	printStats(t.Columns(), t.Rows(), 0, false)
	if err := grid.CheckGeometry(t); errors.IsAdvisory(err) {
		printWarning("%s", errors.Message(err))
	}
	return nil
}

// trackTable renders one axis: each track with its size and start line.
func trackTable(axis string, sizes, lines []float64) string {
	rows := make([][]string, 0, len(sizes)+1)
	for i, size := range sizes {
		rows = append(rows, []string{strconv.Itoa(i + 1), formatPx(size), formatPx(lines[i])})
	}
	rows = append(rows, []string{"end", "", formatPx(lines[len(lines)-1])})

	return newTable(axis, "Size (px)", "Line (px)").
		Rows(rows...).
		StyleFunc(tableStyle(1)).
		Render()
}

// locateCommand creates the locate command for mapping a pointer to grid lines.
func (c *CLI) locateCommand() *cobra.Command {
	var vp viewportFlags

	cmd := &cobra.Command{
		Use:   "locate <grid.json> <x> <y>",
		Short: "Map a pointer position to the nearest grid lines",
		Long: `Map a pointer position to the nearest grid lines.

x and y are pixels from the container's outer top-left corner. The output
lists the 1-based CSS grid lines nearest to the pointer.`,
		Example: `  gridsmith locate grid.json 240 130`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args[1], args[2])
			if err != nil {
				return err
			}
			p, err := project.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := p.Config.Tracks(vp.viewport())
			if err != nil {
				return err
			}
			pos, err := grid.PointerToGridPosition(x, y, t, p.Config.PaddingPx())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "column line %d, row line %d\n", pos.Col+1, pos.Row+1)
			return nil
		},
	}

	vp.register(cmd)
	return cmd
}

// snapCommand creates the snap command for rounding a span onto grid lines.
func (c *CLI) snapCommand() *cobra.Command {
	var maxLines int

	cmd := &cobra.Command{
		Use:   "snap <start> <end>",
		Short: "Snap a fractional span onto grid lines",
		Long: `Snap a fractional span onto grid lines.

start and end are rounded to the nearest line (halves round up) and limited
to a grid of --max tracks. The span always covers at least one track.`,
		Example: `  gridsmith snap 2.4 2.6 --max 12`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			if maxLines < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--max must be at least 1, got %d", maxLines)
			}
			s, e := grid.SnapSpan(start, end, maxLines)
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", s, e)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLines, "max", 12, "number of tracks on the axis")
	return cmd
}

func parsePoint(a, b string) (float64, float64, error) {
	x, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid number %q", a)
	}
	y, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid number %q", b)
	}
	return x, y, nil
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
