package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/project"
)

type newOptions struct {
	preset      string
	name        string
	columns     int
	rows        int
	interactive bool
	force       bool
}

// newCommand creates the new command for starting a project file.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOptions

	cmd := &cobra.Command{
		Use:   "new [grid.json]",
		Short: "Create a new grid project",
		Long: `Create a new grid project file.

The file is written as JSON or TOML depending on its extension. Without a
preset the project is an empty 12x8 grid; --columns and --rows override the
track counts. Use -i to pick a preset interactively.`,
		Example: `  gridsmith new
  gridsmith new landing.toml --preset holy-grail
  gridsmith new dashboard.json --columns 6 --rows 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(projectArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "start from a preset (see 'gridsmith presets')")
	cmd.Flags().StringVar(&opts.name, "name", "", "project name")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "number of columns")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "number of rows")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick a preset interactively")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")

	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)

	return cmd
}

func (c *CLI) runNew(path string, opts newOptions) error {
	if _, err := project.FormatFromPath(path); err != nil {
		return err
	}
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if opts.interactive {
		preset, ok, err := pickPreset()
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
		opts.preset = preset
	}

	p, err := newProject(opts)
	if err != nil {
		return err
	}
	if err := project.WriteFile(p, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.Logger.Debug("created project", "path", path, "preset", opts.preset, "id", p.ID)

	printSuccess("Created project")
	printFile(path)
	printStats(p.Config.Columns, p.Config.Rows, len(p.Items), false)
	printNewline()
	printNextStep("Edit", "gridsmith edit "+path)
	return nil
}

// newProject builds the project described by opts.
func newProject(opts newOptions) (project.Project, error) {
	p := project.New()
	if opts.preset != "" {
		preset, err := project.LookupPreset(opts.preset)
		if err != nil {
			return project.Project{}, err
		}
		p = preset.Project()
	}

	s := project.NewStore(p)
	if opts.columns > 0 || opts.rows > 0 {
		err := s.SetConfig(func(cfg *project.Config) {
			if opts.columns > 0 {
				cfg.Columns = opts.columns
			}
			if opts.rows > 0 {
				cfg.Rows = opts.rows
			}
		})
		if err != nil {
			return project.Project{}, err
		}
	}

	p = s.Project()
	p.ID = project.NewID()
	if opts.name != "" {
		p.Name = opts.name
	}
	if err := p.Validate(); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// pickPreset runs the preset picker and returns the chosen name.
func pickPreset() (string, bool, error) {
	final, err := tea.NewProgram(newPresetListModel(project.Presets())).Run()
	if err != nil {
		return "", false, fmt.Errorf("preset picker: %w", err)
	}
	m := final.(presetListModel)
	if m.selected == "" {
		return "", false, nil
	}
	return m.selected, true, nil
}
