package grid

import (
	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// Update is the outcome of one gesture step.
type Update struct {
	// ID is the widget the gesture acts on and Rect its rectangle.
	ID   string `json:"id"`
	Rect Rect   `json:"rect"`
	// Changes maps every widget whose rectangle differs from what the host
	// last drew to its new rectangle. It includes the active widget.
	Changes map[string]Rect `json:"changes"`
	// Trace records the displacements that produced this update.
	Trace Trace `json:"trace,omitempty"`
}

// gesture is the state shared by drags and resizes. It exists only between
// Begin and End/Cancel and never leaks into the session's committed set.
type gesture struct {
	s        *Session
	id       string
	original arrangement // committed rectangles at gesture start
	shown    arrangement // last successful working arrangement
	finished bool
}

func (s *Session) beginGesture(id string) (gesture, error) {
	if _, ok := s.widgets[id]; !ok {
		return gesture{}, errs.New(errs.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	orig := s.snapshot()
	return gesture{s: s, id: id, original: orig, shown: orig.clone()}, nil
}

// Rect returns the active widget's current working rectangle.
func (g *gesture) Rect() Rect { return g.shown.get(g.id) }

// ID returns the active widget.
func (g *gesture) ID() string { return g.id }

// Working returns the current working rectangle of every widget.
func (g *gesture) Working() map[string]Rect {
	return g.shown.clone().rects
}

// Finished reports whether End or Cancel has been called.
func (g *gesture) Finished() bool { return g.finished }

// show makes next the working arrangement and reports what changed.
func (g *gesture) show(next arrangement, trace Trace) Update {
	u := Update{
		ID:      g.id,
		Rect:    next.get(g.id),
		Changes: g.shown.diff(next),
		Trace:   trace,
	}
	g.shown = next
	return u
}

// end commits the working arrangement. The returned changes are relative to
// the pre-gesture committed rectangles.
func (g *gesture) end() (Update, error) {
	if g.finished {
		return Update{}, errs.New(errs.ErrCodeGestureFinished, "gesture on %q already finished", g.id)
	}
	g.finished = true
	if !g.shown.valid(g.s.cfg) {
		return Update{}, errs.New(errs.ErrCodeInternal, "gesture on %q produced an invalid arrangement", g.id)
	}
	if err := g.s.commit(g.shown); err != nil {
		return Update{}, err
	}
	return Update{
		ID:      g.id,
		Rect:    g.shown.get(g.id),
		Changes: g.original.diff(g.shown),
	}, nil
}

// cancel drops the working arrangement. The returned changes restore every
// widget the host has drawn away from its committed rectangle.
func (g *gesture) cancel() Update {
	if g.finished {
		return Update{ID: g.id, Changes: map[string]Rect{}}
	}
	g.finished = true
	u := Update{
		ID:      g.id,
		Rect:    g.original.get(g.id),
		Changes: g.shown.diff(g.original),
	}
	g.shown = g.original
	return u
}
