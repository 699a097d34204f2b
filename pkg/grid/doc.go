// Package grid keeps rectangular dashboard widgets in a consistent,
// non-overlapping arrangement on a bounded integer grid.
//
// # Model
//
// A [Session] holds the grid [Config] and the committed rectangle of every
// [Widget]. Rectangles are expressed in grid cells: X grows to the right, Y
// grows downward, and a rectangle covers the half-open ranges
// [X, X+Width) × [Y, Y+Height). Touching edges never count as overlap.
//
// # Queries
//
// [Session.IsFree], [Session.FindFreePos] and [Session.Accommodate] answer
// placement questions for new or pasted widgets. They never mutate the
// session; "no room" is reported through a false second return value.
//
// # Gestures
//
// Interactive moves go through a gesture value:
//
//	d, err := s.BeginDrag("cpu")
//	if err != nil {
//	    return err
//	}
//	if u, ok := d.Update(grid.Rect{X: 4, Y: 2, Width: 6, Height: 3}); ok {
//	    redraw(u.Changes)
//	}
//	final, err := d.End()
//
// While a gesture is in progress every displaced widget lives in the
// gesture's private working arrangement; the session's committed set changes
// only in [Drag.End] or [Resize.End]. Cancelling simply drops the gesture, so
// the pre-gesture state is restored exactly.
//
// Dragging displaces colliding widgets strictly downward and lets widgets
// that were resting on the dragged widget settle upward. Resizing pushes
// neighbors away from the growing edge one cell at a time, squashes them when
// they hit the grid border, and afterwards lets every displaced widget drift
// back toward where it started.
//
// The package is not safe for concurrent use; callers that share a session
// between goroutines must serialize access (see the dashboard package).
package grid
