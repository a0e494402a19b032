package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsmith/pkg/cache"
	"github.com/matzehuels/gridsmith/pkg/codegen"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/observability"
	"github.com/matzehuels/gridsmith/pkg/project"
)

// Runner encapsulates pipeline execution with artifact caching. Tracks are
// recomputed on every call.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute lays out the project and generates every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	p := opts.Project
	result := &Result{}

	spec, err := p.Config.Spec(opts.Viewport)
	if err != nil {
		return nil, err
	}

	// Stage 1: Tracks
	tracksStart := time.Now()
	tracks, err := r.tracks(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("tracks: %w", err)
	}
	result.Tracks = tracks
	result.Degenerate = tracks.Degenerate()
	result.Stats.TracksTime = time.Since(tracksStart)
	result.Stats.Columns = tracks.Columns()
	result.Stats.Rows = tracks.Rows()
	result.Stats.Items = len(p.Items)

	logger.Debug("computed tracks",
		"columns", tracks.Columns(),
		"rows", tracks.Rows(),
		"available", fmt.Sprintf("%gx%g", tracks.AvailableWidth, tracks.AvailableHeight),
		"duration", result.Stats.TracksTime)
	if result.Degenerate {
		logger.Warn("padding leaves no room for cells", "padding", p.Config.PaddingPx())
	}

	// Stage 2: Generate
	generateStart := time.Now()
	artifacts, hash, generateHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.ProjectHash = hash
	result.Artifacts = artifacts
	result.Stats.GenerateTime = time.Since(generateStart)
	result.CacheInfo.GenerateHit = generateHit

	logger.Info("generated code",
		"formats", opts.FormatNames(),
		"items", len(p.Items),
		"cached", generateHit,
		"duration", result.Stats.GenerateTime)

	return result, nil
}

// tracks computes the layout for spec and reports it to the pipeline hooks.
func (r *Runner) tracks(ctx context.Context, spec grid.Spec) (grid.Tracks, error) {
	hooks := observability.Pipeline()
	hooks.OnTracksStart(ctx, len(spec.ColumnWeights), len(spec.RowWeights))
	start := time.Now()
	t, err := grid.ComputeTracks(spec)
	hooks.OnTracksComplete(ctx, time.Since(start), err)
	return t, err
}

// GenerateWithCacheInfo generates every format in opts with caching. It
// returns the artifacts, the project hash used for the keys and whether all
// artifacts came from the cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (map[codegen.Format][]byte, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.FormatNames(), len(opts.Project.Items))
	start := time.Now()

	hash, err := cache.HashJSON(opts.Project)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.FormatNames(), time.Since(start), err)
		return nil, "", false, fmt.Errorf("serialize project for cache key: %w", err)
	}

	artifacts := make(map[codegen.Format][]byte, len(opts.Formats))
	allCached := true
	for _, f := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, artifactKeyOpts(f, opts.Viewport))
		data, hit, err := r.artifact(ctx, key, opts.Refresh, func() ([]byte, error) {
			return codegen.Generate(f, opts.Project, opts.Viewport)
		})
		if err != nil {
			hooks.OnGenerateComplete(ctx, opts.FormatNames(), time.Since(start), err)
			return nil, hash, false, fmt.Errorf("%s: %w", f, err)
		}
		artifacts[f] = data
		allCached = allCached && hit
	}

	hooks.OnGenerateComplete(ctx, opts.FormatNames(), time.Since(start), nil)
	return artifacts, hash, allCached, nil
}

// artifact serves key through the cache. refresh regenerates and overwrites
// the entry without reading it.
func (r *Runner) artifact(ctx context.Context, key string, refresh bool, generate func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()
	if refresh {
		data, err := generate()
		if err != nil {
			return nil, false, err
		}
		if r.Cache.Set(ctx, key, data, cache.TTLArtifact) == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
		return data, false, nil
	}

	data, hit, err := cache.GetOrCompute(ctx, r.Cache, key, cache.TTLArtifact, generate)
	if err != nil {
		return nil, false, err
	}
	if hit {
		hooks.OnCacheHit(ctx, "artifact")
	} else {
		hooks.OnCacheMiss(ctx, "artifact")
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, hit, nil
}

// Generate is a convenience wrapper that returns only the artifacts.
func (r *Runner) Generate(ctx context.Context, opts Options) (map[codegen.Format][]byte, error) {
	artifacts, _, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// artifactKeyOpts leaves the viewport out of the key for the text formats,
// whose output does not depend on it.
func artifactKeyOpts(f codegen.Format, v project.Viewport) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(f)}
	if f == codegen.FormatSVG {
		opts.ViewportWidth = v.Width
		opts.ViewportHeight = v.Height
	}
	return opts
}
