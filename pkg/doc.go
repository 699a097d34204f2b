// Package pkg holds the dashgrid libraries.
//
// # Overview
//
// Dashgrid keeps dashboard widgets on a bounded integer grid without
// overlaps. Widgets are rectangles measured in cells; dragging or resizing
// one pushes its neighbours out of the way and lets them run back when the
// pointer moves on.
//
// The packages are layered:
//
//  1. [grid] - The layout engine: occupancy queries, placeholder and paste
//     positioning, and the drag and resize gestures with their push trace.
//  2. [dashboard] - A hosted board: one grid session plus the gesture in
//     progress, row reservation, and replayable gesture scripts.
//  3. [store] - Persistence of committed layouts (memory, file, redis, mongo).
//  4. [render] - PNG images of layouts and Graphviz renderings of push
//     traces, cached through [cache].
//  5. [errors], [observability], [buildinfo] - Shared infrastructure.
//
// # Quick Start
//
//	b, err := dashboard.New("ops", "Operations", grid.DefaultConfig(), nil)
//	if err != nil {
//	    return err
//	}
//	w, err := b.AddWidget(grid.Size{Width: 6, Height: 4}, nil)
//
//	if err := b.BeginDrag(ctx, w.ID); err != nil {
//	    return err
//	}
//	u, ok, err := b.UpdateDrag(ctx, grid.Rect{X: 3, Y: 0, Width: 6, Height: 4})
//	// u.Changes holds every widget that moved
//	_, err = b.EndDrag(ctx)
//
// The dashgrid command (cmd/dashgrid) wraps these packages in a CLI, a
// terminal editor and an HTTP API.
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/grid
// [dashboard]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/dashboard
// [store]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/buildinfo
package pkg
