// Package pkg provides the core libraries for gridsmith, a CSS grid layout
// editor and code generator.
//
// # Overview
//
// A gridsmith project is a weighted grid (column and row fr weights, gap,
// padding, container width) plus items placed on integer grid lines. The
// same geometry engine sizes the editor canvas, maps pointer positions back
// to grid lines during drags, and drives the generated CSS, so what the
// editor shows is what the browser renders.
//
// # Architecture
//
//	Project file / API request
//	         ↓
//	    [project] (configuration, items, undoable edits)
//	         ↓
//	    [grid] (tracks, lines, pointer mapping, snapping)
//	         ↓
//	    [codegen] (HTML, CSS, Tailwind, full page, SVG preview)
//
// [pipeline] runs the last two steps behind a [cache] for both the CLI and
// the HTTP server.
//
// # Quick Start
//
// Lay out a grid and snap a pointer onto it:
//
//	import (
//	    "github.com/matzehuels/gridsmith/pkg/grid"
//	)
//
//	t, err := grid.ComputeTracks(grid.Spec{
//	    ColumnWeights:   []float64{1, 2, 1},
//	    RowWeights:      []float64{1, 1},
//	    ItemGap:         8,
//	    Padding:         16,
//	    ContainerWidth:  800,
//	    ContainerHeight: 600,
//	})
//	if err != nil {
//	    return err
//	}
//	pos, _ := grid.PointerToGridPosition(240, 130, t, 16)
//	start, end := grid.SnapSpan(float64(pos.Col+1), float64(pos.Col+3), t.Columns())
//
// Generate CSS for a project file:
//
//	p, _ := project.ReadFile("grid.json")
//	css, _ := codegen.Generate(codegen.FormatCSS, p, project.DefaultViewport)
//
// # Main Packages
//
// [grid] - Track layout and position mapping. Pure functions over a Spec and
// the Tracks computed from it.
//
// [drag] - The pointer gesture state machine: threshold, move and resize
// handles, snapped placements.
//
// [project] - Project documents, presets, JSON and TOML files, and the
// undoable edit store used by the editor.
//
// [codegen] - Markup and stylesheet generation.
//
// [pipeline] - Cached track computation and generation shared by the CLI and
// the API.
//
// [cache] - File, Redis and null cache backends with content-addressed keys.
//
// [store] - Project persistence in a directory or MongoDB.
//
// [api] - The HTTP API served by 'gridsmith serve'.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for pipeline and cache events.
//
// [buildinfo] - Version information injected at build time.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/grid
// [drag]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/drag
// [project]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/project
// [codegen]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/codegen
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gridsmith/pkg/buildinfo
package pkg
