// Package pipeline runs the project → tracks → code pipeline shared by the
// CLI and the HTTP API.
//
// The pipeline has two stages:
//
//  1. Tracks: lay the project's grid out in the viewport with grid.ComputeTracks
//  2. Generate: render the project in one or more codegen formats
//
// Both stages are cached through pkg/cache, keyed by content hash, so a
// repeated request for an unchanged project costs one lookup per artifact.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Project: p,
//	    Formats: []codegen.Format{codegen.FormatCSS, codegen.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	css := result.Artifacts[codegen.FormatCSS]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsmith/pkg/codegen"
	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []codegen.Format{codegen.FormatHTML, codegen.FormatCSS}

// Options configures a pipeline run.
type Options struct {
	Project project.Project `json:"project"`

	// Formats to generate. Empty means DefaultFormats.
	Formats []codegen.Format `json:"formats,omitempty"`

	// Viewport resolves percentage widths and sizes the SVG preview. Zero
	// dimensions fall back to project.DefaultViewport.
	Viewport project.Viewport `json:"viewport,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults normalizes the project, checks it and fills in
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]codegen.Format(nil), DefaultFormats...)
	}
	for _, f := range o.Formats {
		if err := codegen.ValidateFormat(string(f)); err != nil {
			return err
		}
	}
	if o.Viewport.Width < 0 || o.Viewport.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport must not be negative")
	}
	if o.Viewport.Width == 0 {
		o.Viewport.Width = project.DefaultViewport.Width
	}
	if o.Viewport.Height == 0 {
		o.Viewport.Height = project.DefaultViewport.Height
	}

	o.Project = o.Project.Normalize()
	if err := o.Project.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// FormatNames returns the formats as strings, for logging and hooks.
func (o *Options) FormatNames() []string {
	names := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		names[i] = string(f)
	}
	return names
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ProjectHash is the content hash of the normalized project.
	ProjectHash string

	// Tracks is the layout of the project in the requested viewport.
	Tracks grid.Tracks

	// Degenerate is set when padding leaves no room for the cells.
	Degenerate bool

	// Artifacts contains generated outputs keyed by format.
	Artifacts map[codegen.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Columns      int
	Rows         int
	Items        int
	TracksTime   time.Duration
	GenerateTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	TracksHit   bool
	GenerateHit bool // every artifact came from the cache
}
