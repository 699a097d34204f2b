package dashboard

import (
	"context"
	"time"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// Gesture kinds.
const (
	KindDrag   = "drag"
	KindResize = "resize"
)

// stepper is the lifecycle shared by grid.Drag and grid.Resize.
type stepper interface {
	Update(grid.Rect) (grid.Update, bool)
	End() (grid.Update, error)
	Cancel() grid.Update
	Rect() grid.Rect
	Working() map[string]grid.Rect
}

type activeGesture struct {
	kind    string
	widget  string
	edges   grid.Edges
	started time.Time
	g       stepper
}

func (a *activeGesture) working() map[string]grid.Rect { return a.g.Working() }

// GestureInfo describes the gesture in progress.
type GestureInfo struct {
	Kind   string     `json:"kind"`
	Widget string     `json:"widget"`
	Edges  grid.Edges `json:"edges,omitempty"`
	Rect   grid.Rect  `json:"rect"`
}

// Gesture returns the gesture in progress, if any.
func (b *Board) Gesture() (GestureInfo, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.active == nil {
		return GestureInfo{}, false
	}
	return GestureInfo{
		Kind:   b.active.kind,
		Widget: b.active.widget,
		Edges:  b.active.edges,
		Rect:   b.active.g.Rect(),
	}, true
}

// BeginDrag starts dragging a widget.
func (b *Board) BeginDrag(ctx context.Context, widget string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.idle(); err != nil {
		return err
	}
	d, err := b.session.BeginDrag(widget)
	if err != nil {
		return err
	}
	b.start(ctx, &activeGesture{kind: KindDrag, widget: widget, g: d})
	return nil
}

// BeginResize starts resizing a widget from the given edges.
func (b *Board) BeginResize(ctx context.Context, widget string, edges grid.Edges) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.idle(); err != nil {
		return err
	}
	r, err := b.session.BeginResize(widget, edges)
	if err != nil {
		return err
	}
	b.start(ctx, &activeGesture{kind: KindResize, widget: widget, edges: edges, g: r})
	return nil
}

// UpdateDrag moves the dragged widget toward candidate. It reports whether
// anything changed.
func (b *Board) UpdateDrag(ctx context.Context, candidate grid.Rect) (grid.Update, bool, error) {
	return b.update(ctx, KindDrag, candidate)
}

// UpdateResize resizes the widget toward target.
func (b *Board) UpdateResize(ctx context.Context, target grid.Rect) (grid.Update, bool, error) {
	return b.update(ctx, KindResize, target)
}

// EndDrag commits the drag.
func (b *Board) EndDrag(ctx context.Context) (grid.Update, error) { return b.end(ctx, KindDrag) }

// EndResize commits the resize.
func (b *Board) EndResize(ctx context.Context) (grid.Update, error) { return b.end(ctx, KindResize) }

// CancelDrag abandons the drag.
func (b *Board) CancelDrag(ctx context.Context) (grid.Update, error) { return b.cancel(ctx, KindDrag) }

// CancelResize abandons the resize.
func (b *Board) CancelResize(ctx context.Context) (grid.Update, error) {
	return b.cancel(ctx, KindResize)
}

// Cancel abandons whatever gesture is in progress. It is a no-op without one.
func (b *Board) Cancel(ctx context.Context) grid.Update {
	b.mu.RLock()
	a := b.active
	b.mu.RUnlock()
	if a == nil {
		return grid.Update{}
	}
	u, _ := b.cancel(ctx, a.kind)
	return u
}

func (b *Board) start(ctx context.Context, a *activeGesture) {
	a.started = time.Now()
	b.active = a
	b.reserve(a.g.Rect())
	b.logger.Debug("gesture started", "board", b.id, "kind", a.kind, "widget", a.widget, "edges", a.edges)
	observability.Gesture().OnGestureStart(ctx, b.id, a.kind, a.widget)
}

// current returns the active gesture if it has the given kind.
func (b *Board) current(kind string) (*activeGesture, error) {
	if b.active == nil || b.active.kind != kind {
		return nil, errs.New(errs.ErrCodeNoGesture, "no %s in progress", kind)
	}
	return b.active, nil
}

func (b *Board) update(ctx context.Context, kind string, r grid.Rect) (grid.Update, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.current(kind)
	if err != nil {
		return grid.Update{}, false, err
	}
	start := time.Now()
	u, ok := a.g.Update(r)
	if ok {
		b.reserve(u.Rect)
		b.logger.Debug("gesture update", "board", b.id, "kind", kind, "widget", a.widget,
			"rect", u.Rect, "changed", len(u.Changes), "pushes", len(u.Trace))
	}
	observability.Gesture().OnGestureUpdate(ctx, b.id, kind, a.widget, len(u.Changes), ok, time.Since(start))
	return u, ok, nil
}

func (b *Board) end(ctx context.Context, kind string) (grid.Update, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.current(kind)
	if err != nil {
		return grid.Update{}, err
	}
	b.active = nil
	u, err := a.g.End()
	observability.Gesture().OnGestureEnd(ctx, b.id, kind, a.widget, err == nil, err)
	if err != nil {
		b.logger.Error("gesture commit failed", "board", b.id, "kind", kind, "widget", a.widget, "err", err)
		return grid.Update{}, err
	}
	b.logger.Info("gesture committed", "board", b.id, "kind", kind, "widget", a.widget,
		"rect", u.Rect, "moved", len(u.Changes), "duration", time.Since(a.started).Round(time.Millisecond))
	return u, nil
}

func (b *Board) cancel(ctx context.Context, kind string) (grid.Update, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.current(kind)
	if err != nil {
		return grid.Update{}, err
	}
	b.active = nil
	u := a.g.Cancel()
	observability.Gesture().OnGestureEnd(ctx, b.id, kind, a.widget, false, nil)
	b.logger.Debug("gesture cancelled", "board", b.id, "kind", kind, "widget", a.widget)
	return u, nil
}
