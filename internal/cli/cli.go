// Package cli implements the gridsmith command-line interface.
//
// The commands cover the whole life of a grid layout: creating a project
// from a preset, inspecting its track geometry, placing and dragging items,
// generating HTML, CSS, Tailwind and SVG output, editing interactively in
// the terminal and serving the HTTP API.
//
// # Commands
//
//   - new: Create a project file, optionally from a preset
//   - tracks, locate, snap: Inspect grid geometry
//   - item: Add, list, move, resize and remove items
//   - generate: Write code for a project
//   - edit: Interactive terminal editor
//   - serve: Run the HTTP API
//   - presets, cache, completion: Utilities
//
// # Output
//
// Results (tables, JSON, generated code) are written to the command's output
// stream; status lines, spinners and hints go to stderr. --verbose (-v)
// enables debug logging, and the logger is attached to the command context
// for helpers that only see a context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/buildinfo"
	"github.com/matzehuels/gridsmith/pkg/cache"
	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/observability"
	"github.com/matzehuels/gridsmith/pkg/pipeline"
)

const (
	appName = "gridsmith"

	// defaultProjectFile is used by commands whose project argument is optional.
	defaultProjectFile = "grid.json"
)

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	setLevel(c.Logger, level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Errors are returned, not printed; see ReportError.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Gridsmith designs CSS grid layouts",
		Long:          `Gridsmith is a CLI tool for designing CSS grid layouts: lay out weighted tracks, drag items onto grid lines and generate HTML, CSS and Tailwind markup.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.Register(observability.NewLogHooks(c.Logger))
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.tracksCommand())
	root.AddCommand(c.locateCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.itemCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ReportError prints a failed command's error to stderr and returns the
// process exit status for it. Coded errors show their message and code.
func ReportError(err error) int {
	if code := errors.CodeOf(err); code != "" {
		printError("%s %s", errors.Message(err), StyleDim.Render("("+string(code)+")"))
	} else {
		printError("%s", err)
	}
	return errors.ExitCode(err)
}

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns $XDG_CACHE_HOME/gridsmith, or ~/.cache/gridsmith.
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// projectArg returns the project file named by args, or the default file.
func projectArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return defaultProjectFile
}
