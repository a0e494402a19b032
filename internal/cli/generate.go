package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/codegen"
	"github.com/matzehuels/gridsmith/pkg/pipeline"
	"github.com/matzehuels/gridsmith/pkg/project"
)

type generateOpts struct {
	formats []codegen.Format
	output  string
	stdout  bool
	noCache bool
	refresh bool
	vp      viewportFlags
}

// generateCommand creates the generate command for writing code.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts       generateOpts
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "generate [grid.json]",
		Short: "Generate HTML, CSS, Tailwind or SVG from a project",
		Long: `Generate HTML, CSS, Tailwind or SVG from a project.

Formats:
  html      item markup
  css       grid container and item rules
  tailwind  markup with Tailwind utility classes
  full      a standalone HTML page with inline CSS
  svg       a preview of the layout in the viewport

With one format, -o names the output file. With several, -o is a base path
and each format adds its own extension. Without -o the project file name is
used as the base.

Results are cached locally for faster subsequent runs.`,
		Example: `  gridsmith generate grid.json -f full -o index.html
  gridsmith generate grid.json -f html,css
  gridsmith generate grid.json -f css --stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			if opts.stdout && len(formats) != 1 {
				return fmt.Errorf("--stdout needs exactly one format, got %d", len(formats))
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), projectArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html, css (default), tailwind, full, svg (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write the single format to stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")
	opts.vp.register(cmd)

	return cmd
}

// parseFormats parses the --format flag. Empty means the pipeline defaults.
func parseFormats(s string) ([]codegen.Format, error) {
	if strings.TrimSpace(s) == "" {
		return append([]codegen.Format(nil), pipeline.DefaultFormats...), nil
	}
	return codegen.ParseFormats(s)
}

func (c *CLI) runGenerate(ctx context.Context, stdout io.Writer, input string, opts generateOpts) error {
	prog := newProgress(c.Logger)

	p, err := project.ReadFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if !opts.stdout {
		spinner = newSpinnerWithContext(ctx, "Generating code...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Project:  p,
		Formats:  opts.formats,
		Viewport: opts.vp.viewport(),
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Generation failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if opts.stdout {
		_, err := stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	paths := outputPaths(opts.output, input, opts.formats)
	for _, f := range opts.formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("generated", "files", len(opts.formats), "cached", result.CacheInfo.GenerateHit)

	printSuccess("Generated %s", strings.Join(formatNames(opts.formats), ", "))
	for _, f := range opts.formats {
		printFile(paths[f])
	}
	printStats(result.Stats.Columns, result.Stats.Rows, result.Stats.Items, result.CacheInfo.GenerateHit)
	if result.Degenerate {
		printWarning("Padding leaves no room for cells; the preview is empty")
	}
	return nil
}

// outputPaths picks a file for every format. A single format uses output as
// is; otherwise output (or the input without its extension) is a base path.
// Formats sharing an extension get the format name inserted, as in
// grid.full.html.
func outputPaths(output, input string, formats []codegen.Format) map[codegen.Format]string {
	paths := make(map[codegen.Format]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	used := make(map[string]bool, len(formats))
	for _, f := range formats {
		path := base + f.Ext()
		if used[path] {
			path = base + "." + string(f) + f.Ext()
		}
		used[path] = true
		paths[f] = path
	}
	return paths
}

// basePath derives the base output path. If output is empty it strips the
// extension from input; a generated-file extension on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range generatedExts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// generatedExts lists output extensions, longest first.
var generatedExts = []string{".tailwind.html", ".html", ".css", ".svg"}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatNames(formats []codegen.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
