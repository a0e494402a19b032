package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/project"
)

// presetsCommand creates the presets command listing starter layouts.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in starter layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := project.Presets()
			rows := make([][]string, len(presets))
			for i, p := range presets {
				proj := p.Project()
				rows[i] = []string{
					p.Name,
					fmt.Sprintf("%dx%d", proj.Config.Columns, proj.Config.Rows),
					fmt.Sprintf("%d", len(proj.Items)),
					p.Description,
				}
			}
			t := newTable("Preset", "Grid", "Items", "Description").
				Rows(rows...).
				StyleFunc(tableStyle(0))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			printNextStep("Use one", "gridsmith new grid.json --preset "+presets[0].Name)
			return nil
		},
	}
}
