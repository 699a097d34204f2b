package grid

import (
	"slices"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// Session is one dashboard view's grid: the configuration and the committed
// rectangle of every widget, in insertion order. Committed rectangles never
// overlap and always lie inside the grid.
type Session struct {
	cfg     Config
	order   []string
	widgets map[string]Widget
}

// NewSession validates cfg and the initial widgets and returns a session
// holding them. Widgets must have unique IDs, fit the grid, respect their
// minimum height and not overlap each other.
func NewSession(cfg Config, widgets []Widget) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, widgets: make(map[string]Widget, len(widgets))}
	for _, w := range widgets {
		if err := s.Add(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Config returns the grid configuration.
func (s *Session) Config() Config { return s.cfg }

// Len returns the number of widgets.
func (s *Session) Len() int { return len(s.order) }

// Widget returns the committed state of the widget with the given ID.
func (s *Session) Widget(id string) (Widget, bool) {
	w, ok := s.widgets[id]
	return w, ok
}

// Widgets returns all widgets in insertion order.
func (s *Session) Widgets() []Widget {
	out := make([]Widget, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.widgets[id])
	}
	return out
}

// OccupiedRows returns the number of rows down to the lowest widget edge.
func (s *Session) OccupiedRows() int {
	rows := 0
	for _, w := range s.widgets {
		rows = max(rows, w.Rect.Bottom())
	}
	return rows
}

// Add places a widget at its rectangle. The rectangle must be in bounds,
// at least the widget's minimum height, and free.
func (s *Session) Add(w Widget) error {
	if err := errs.ValidateID(w.ID); err != nil {
		return err
	}
	if _, ok := s.widgets[w.ID]; ok {
		return errs.New(errs.ErrCodeDuplicateWidget, "widget %q already exists", w.ID)
	}
	if err := s.checkWidget(w); err != nil {
		return err
	}
	if !s.IsFree(w.Rect) {
		return errs.New(errs.ErrCodePositionOccupied, "widget %q at %s overlaps another widget", w.ID, w.Rect)
	}
	s.order = append(s.order, w.ID)
	s.widgets[w.ID] = w
	return nil
}

// Remove deletes a widget.
func (s *Session) Remove(id string) error {
	if _, ok := s.widgets[id]; !ok {
		return errs.New(errs.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	delete(s.widgets, id)
	s.order = slices.DeleteFunc(slices.Clone(s.order), func(v string) bool { return v == id })
	return nil
}

func (s *Session) checkWidget(w Widget) error {
	if w.MinRows < 0 || w.MaxRows < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "widget %q has negative height bounds", w.ID)
	}
	lo, _ := w.heightBounds(s.cfg)
	if w.MaxRows > 0 && w.MaxRows < lo {
		return errs.New(errs.ErrCodeInvalidInput, "widget %q max_rows %d is below min_rows %d", w.ID, w.MaxRows, lo)
	}
	if !s.cfg.InBounds(w.Rect) {
		return errs.New(errs.ErrCodeInvalidRect, "widget %q at %s is outside the %dx%d grid",
			w.ID, w.Rect, s.cfg.MaxColumns, s.cfg.MaxRows)
	}
	if w.Rect.Height < lo {
		return errs.New(errs.ErrCodeInvalidRect, "widget %q is %d rows high, minimum is %d", w.ID, w.Rect.Height, lo)
	}
	return nil
}

// snapshot copies the committed rectangles into a working arrangement.
func (s *Session) snapshot() arrangement {
	rects := make(map[string]Rect, len(s.order))
	for _, id := range s.order {
		rects[id] = s.widgets[id].Rect
	}
	return newArrangement(slices.Clone(s.order), rects)
}

// commit replaces committed rectangles with the ones in a. Every widget in a
// must still exist and the merged result must satisfy the grid invariants;
// otherwise nothing changes.
func (s *Session) commit(a arrangement) error {
	merged := s.snapshot()
	for _, id := range a.order {
		if _, ok := s.widgets[id]; !ok {
			return errs.New(errs.ErrCodeWidgetNotFound, "widget %q was removed during the gesture", id)
		}
		merged.set(id, a.get(id))
	}
	if !merged.valid(s.cfg) {
		return errs.New(errs.ErrCodeInternal, "gesture result violates grid invariants")
	}
	for _, id := range merged.order {
		w := s.widgets[id]
		if lo, _ := w.heightBounds(s.cfg); merged.get(id).Height < lo {
			return errs.New(errs.ErrCodeInternal, "widget %q would shrink below %d rows", id, lo)
		}
	}
	for _, id := range a.order {
		w := s.widgets[id]
		w.Rect = a.get(id)
		s.widgets[id] = w
	}
	return nil
}
