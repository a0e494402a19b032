// Package codegen turns a grid project into markup.
//
// # Overview
//
// Two families of output are produced from the same project:
//
//   - Source markup ([HTML], [CSS], [Tailwind], [FullHTML]) describes the
//     grid with fr tracks, so browsers redistribute space themselves.
//   - Preview geometry ([Templates], [RoundedTemplates], [OverlaySVG]) is
//     derived from [grid.Tracks] and shows exactly what an editor renders.
//
// # Preview geometry
//
// The overlay and the item placement are both drawn from one
// [grid.Tracks] value. The overlay uses rounded cell sizes laid edge to edge;
// items use [grid.Tracks.ItemRect], which applies the item gap as a half-gap
// margin inside the spanned cells.
//
// # Formats
//
// [Generate] dispatches on a [Format]:
//
//	out, err := codegen.Generate(codegen.FormatCSS, p, project.Viewport{})
package codegen
