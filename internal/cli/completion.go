package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/codegen"
	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/project"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script.

  bash        source <(gridsmith completion bash)
  zsh         gridsmith completion zsh > "${fpath[1]}/_gridsmith"
  fish        gridsmith completion fish > ~/.config/fish/completions/gridsmith.fish
  powershell  gridsmith completion powershell | Out-String | Invoke-Expression

Besides commands and flags, the scripts complete preset names, output
formats, drag handles and the item IDs of the project file on the line.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			}
			return root.GenPowerShellCompletionWithDesc(out)
		},
	}
}

type completeFunc = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

func completePresets(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return project.PresetNames(), cobra.ShellCompDirectiveNoFileComp
}

func completeHandles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(drag.Handles))
	for i, h := range drag.Handles {
		out[i] = string(h)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done = toComplete[:i+1]
	}
	var out []string
	for _, f := range codegen.Formats {
		if !strings.Contains(","+done, ","+string(f)+",") {
			out = append(out, done+string(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeProjectItem completes "<grid.json> <item>" argument pairs: project
// files first, then the IDs of that file's items described by their labels.
func completeProjectItem(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	case 1:
		p, err := project.ReadFile(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		out := make([]string, len(p.Items))
		for i, it := range p.Items {
			out[i] = it.ID + "\t" + it.Label(i+1)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

var (
	_ completeFunc = completePresets
	_ completeFunc = completeHandles
	_ completeFunc = completeFormats
	_ completeFunc = completeProjectItem
)
