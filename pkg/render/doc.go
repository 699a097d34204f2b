// Package render draws dashboard layouts and gesture traces.
//
// # Layout images
//
// [LayoutImage] paints every widget as a filled cell-aligned block on a
// transparent canvas using github.com/disintegration/imaging, and
// [LayoutPNG] encodes it:
//
//	err := render.LayoutPNG(w, layout.Config, layout.Widgets, render.PNGOptions{CellSize: 24})
//
// # Push traces
//
// A gesture update records which widget displaced which ([grid.Trace]).
// [TraceDOT] turns a trace into a Graphviz digraph and [TraceSVG] renders
// it with github.com/goccy/go-graphviz, which is handy for debugging
// reflows:
//
//	dot := render.TraceDOT(res.Trace, render.TraceOptions{})
//	svg, err := render.TraceSVG(ctx, dot)
//
// # Caching
//
// [Runner] wraps both renderers with a [cache.Cache]. Keys hash the layout
// content, so an unchanged layout is never drawn twice.
package render
