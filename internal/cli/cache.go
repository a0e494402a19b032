package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/cache"
	"github.com/matzehuels/gridsmith/pkg/errors"
)

var cacheKinds = []string{"artifact"}

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local artifact cache",
	}
	cmd.AddCommand(
		c.cachePathCommand(),
		c.cacheStatsCommand(),
		c.cacheClearCommand(),
		c.cachePruneCommand(),
	)
	return cmd
}

func openLocalCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache: %w", err)
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := openLocalCache()
			if err != nil {
				return err
			}
			s, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}

			kinds := make([]string, 0, len(s.ByKind))
			for k := range s.ByKind {
				kinds = append(kinds, k)
			}
			slices.Sort(kinds)

			t := table.New().Headers("Kind", "Entries")
			for _, k := range kinds {
				t.Row(k, strconv.Itoa(s.ByKind[k]))
			}
			t.Row("total", strconv.Itoa(s.Entries))
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			printKeyValue("Size", formatBytes(s.Bytes))
			if s.Expired > 0 {
				printNextStep(fmt.Sprintf("%d expired", s.Expired), "gridsmith cache prune")
			}
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var kinds []string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, k := range kinds {
				if !slices.Contains(cacheKinds, k) {
					return errors.New(errors.ErrCodeInvalidInput, "unknown cache kind %q (want one of %v)", k, cacheKinds)
				}
			}
			fc, err := openLocalCache()
			if err != nil {
				return err
			}
			n, err := fc.Clear(kinds...)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Nothing to clear")
				return nil
			}
			printSuccess("Removed %d entries", n)
			printDetail("%s", fc.Dir())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "only clear these kinds (artifact)")
	return cmd
}

func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired and unreadable entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := openLocalCache()
			if err != nil {
				return err
			}
			n, err := fc.Prune()
			if err != nil {
				return fmt.Errorf("prune cache: %w", err)
			}
			printSuccess("Pruned %d entries", n)
			return nil
		},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
