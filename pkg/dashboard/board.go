// Package dashboard hosts a grid session for interactive editing.
//
// A [Board] wraps one [grid.Session] and adds what a host UI needs around the
// pure engine: a mutex so HTTP handlers can share it, the single active
// gesture, widget add/remove flows with generated IDs, grid row sizing,
// logging, observability hooks and persistence through a [store.Store].
//
// # Gestures
//
// At most one drag or resize is active per board. While it is active, the
// committed widget set cannot be changed; readers such as [Board.Widgets]
// keep seeing the pre-gesture arrangement until the gesture ends.
//
//	if err := b.BeginDrag(ctx, "cpu"); err != nil {
//	    return err
//	}
//	u, moved, err := b.UpdateDrag(ctx, grid.Rect{X: 6, Y: 0, Width: 6, Height: 4})
//	...
//	final, err := b.EndDrag(ctx)
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// DefaultPadRows is the number of free rows kept below the active widget
// while a gesture is in progress.
const DefaultPadRows = 2

// Board is one editable dashboard. It is safe for concurrent use.
type Board struct {
	mu sync.RWMutex

	id      string
	name    string
	session *grid.Session
	active  *activeGesture

	reserved int
	padRows  int
	closed   bool
	logger   *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger. A nil logger selects log.Default().
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithPadRows sets how many rows are reserved below the active widget.
func WithPadRows(n int) Option {
	return func(b *Board) {
		if n >= 0 {
			b.padRows = n
		}
	}
}

// New creates a board. An empty id generates a random one.
func New(id, name string, cfg grid.Config, widgets []grid.Widget, opts ...Option) (*Board, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	s, err := grid.NewSession(cfg.WithDefaults(), widgets)
	if err != nil {
		return nil, err
	}
	b := &Board{
		id:      id,
		name:    name,
		session: s,
		padRows: DefaultPadRows,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// FromLayout creates a board from a stored layout.
func FromLayout(l *store.Layout, opts ...Option) (*Board, error) {
	return New(l.ID, l.Name, l.Config, l.Widgets, opts...)
}

// ID returns the board ID.
func (b *Board) ID() string { return b.id }

// Name returns the board's display name.
func (b *Board) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// Config returns the grid configuration.
func (b *Board) Config() grid.Config { return b.session.Config() }

// Layout returns the committed state as a storable layout.
func (b *Board) Layout() *store.Layout {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.layout()
}

func (b *Board) layout() *store.Layout {
	return &store.Layout{
		ID:      b.id,
		Name:    b.name,
		Config:  b.session.Config(),
		Widgets: b.session.Widgets(),
	}
}

// Widgets returns the committed widgets.
func (b *Board) Widgets() []grid.Widget {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session.Widgets()
}

// Working returns the rectangles the host should draw: the active gesture's
// working arrangement if one is in progress, the committed one otherwise.
func (b *Board) Working() map[string]grid.Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.active != nil {
		return b.active.working()
	}
	out := make(map[string]grid.Rect, b.session.Len())
	for _, w := range b.session.Widgets() {
		out[w.ID] = w.Rect
	}
	return out
}

// Rows returns how many rows the host should show: the lowest occupied row,
// or more while a gesture has reserved space below the active widget.
func (b *Board) Rows() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	occupied := b.session.OccupiedRows()
	if b.active != nil {
		for _, r := range b.active.working() {
			occupied = max(occupied, r.Bottom())
		}
	}
	return max(b.reserved, occupied)
}

// ResetRows drops the reserved rows.
func (b *Board) ResetRows() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reserved = 0
}

// reserve grows the reserved rows to keep padRows free below r.
func (b *Board) reserve(r grid.Rect) {
	want := min(b.session.Config().MaxRows, r.Bottom()+b.padRows)
	b.reserved = max(b.reserved, want)
}

// AddWidget creates a widget of the given size with a generated ID. With an
// explicit position the widget is fitted there as large as possible; without
// one it takes the first free position. DASHBOARD_FULL means there is no
// room left.
func (b *Board) AddWidget(size grid.Size, at *grid.Point) (grid.Widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.idle(); err != nil {
		return grid.Widget{}, err
	}
	if size.Width < 1 || size.Height < 1 {
		return grid.Widget{}, errs.New(errs.ErrCodeInvalidInput, "widget size must be positive")
	}
	r, ok := b.session.PastePos(size, at)
	if !ok {
		return grid.Widget{}, errs.New(errs.ErrCodeDashboardFull, "no room for a %dx%d widget", size.Width, size.Height)
	}
	w := grid.Widget{ID: uuid.NewString(), Rect: r}
	if err := b.session.Add(w); err != nil {
		return grid.Widget{}, err
	}
	b.reserve(r)
	b.logger.Info("widget added", "board", b.id, "widget", w.ID, "rect", r)
	return w, nil
}

// PlaceWidget adds a widget at its exact rectangle.
func (b *Board) PlaceWidget(w grid.Widget) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.idle(); err != nil {
		return err
	}
	if err := b.session.Add(w); err != nil {
		return err
	}
	b.logger.Info("widget placed", "board", b.id, "widget", w.ID, "rect", w.Rect)
	return nil
}

// RemoveWidget deletes a widget.
func (b *Board) RemoveWidget(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.idle(); err != nil {
		return err
	}
	if err := b.session.Remove(id); err != nil {
		return err
	}
	b.logger.Info("widget removed", "board", b.id, "widget", id)
	return nil
}

// IsFree reports whether r is in bounds and unoccupied.
func (b *Board) IsFree(r grid.Rect) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session.IsFree(r)
}

// FindFree returns the first free position for a widget of the given size.
func (b *Board) FindFree(size grid.Size) (grid.Rect, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session.FindFreePos(size)
}

// Accommodate fits desired into free space.
func (b *Board) Accommodate(desired grid.Rect, opts grid.AccommodateOptions) (grid.Rect, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session.Accommodate(desired, opts)
}

// Placeholder returns the new-widget placeholder under the pointer cell and
// reserves rows below it.
func (b *Board) Placeholder(cell grid.Point) (grid.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.session.PlaceholderAt(cell, grid.Size{})
	if ok {
		b.reserve(r)
	}
	return r, ok
}

// PlaceholderSpan returns the placeholder drawn from a pressed cell to the
// pointer cell.
func (b *Board) PlaceholderSpan(from, to grid.Point) (grid.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.session.PlaceholderSpan(from, to)
	if ok {
		b.reserve(r)
	}
	return r, ok
}

// Save writes the committed layout to s. A closed board is not saved.
func (b *Board) Save(ctx context.Context, s store.Store) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return b.closedErr()
	}
	start := time.Now()
	l := b.layout()
	if err := s.Put(ctx, l); err != nil {
		return err
	}
	b.logger.Debug("board saved", "board", b.id, "widgets", len(l.Widgets), "duration", time.Since(start))
	return nil
}

// Close marks the board deleted. It waits for a Save in progress; later
// saves and changes fail with NOT_FOUND. Closing with a gesture in progress
// fails with GESTURE_ACTIVE.
func (b *Board) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active != nil {
		return b.idle()
	}
	b.closed = true
	return nil
}

func (b *Board) closedErr() error {
	return errs.New(errs.ErrCodeNotFound, "board %q was deleted", b.id)
}

// idle rejects committed-set changes while a gesture is in progress or
// after Close.
func (b *Board) idle() error {
	if b.closed {
		return b.closedErr()
	}
	if b.active != nil {
		return errs.New(errs.ErrCodeGestureActive, "a %s of %q is in progress", b.active.kind, b.active.widget)
	}
	return nil
}
