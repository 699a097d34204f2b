package grid

// Drag is an in-progress move of one widget. Colliding widgets are pushed
// straight down; widgets that rested on the dragged widget settle upward
// into the space it left. A candidate that would push anything past the
// last row is rejected as a whole.
type Drag struct {
	gesture
	last Rect
}

// BeginDrag starts dragging the widget with the given ID.
func (s *Session) BeginDrag(id string) (*Drag, error) {
	g, err := s.beginGesture(id)
	if err != nil {
		return nil, err
	}
	return &Drag{gesture: g, last: g.original.get(id)}, nil
}

// Update moves the dragged widget to candidate. The candidate keeps the
// widget's size and is clamped into the grid. It reports false when nothing
// changed: the candidate equals the last accepted one, the allocation would
// overflow the grid, or the drag has finished.
func (d *Drag) Update(candidate Rect) (Update, bool) {
	if d.finished {
		return Update{}, false
	}
	orig := d.original.get(d.id)
	cfg := d.s.cfg
	candidate.Width, candidate.Height = orig.Width, orig.Height
	candidate.X = clamp(candidate.X, 0, cfg.MaxColumns-orig.Width)
	candidate.Y = clamp(candidate.Y, 0, cfg.MaxRows-orig.Height)
	if candidate == d.last {
		return Update{}, false
	}

	work := d.original.clone()
	rec := &recorder{}
	extended := orig
	extended.Height++
	d.pullUp(work, work.overlapping(extended, d.id), orig.Height, rec)
	if !d.relocate(work, d.id, candidate, rec) {
		return Update{}, false
	}
	work.set(d.id, candidate)
	if !work.valid(cfg) {
		return Update{}, false
	}
	d.last = candidate
	return d.show(work, rec.pushes), true
}

// End commits the last accepted candidate.
func (d *Drag) End() (Update, error) { return d.end() }

// Cancel abandons the drag and restores the pre-drag arrangement.
func (d *Drag) Cancel() Update { return d.cancel() }

// pullUp moves each widget up by at most maxDelta rows into the first free
// spot, ignoring the dragged widget. Widgets that were resting on a widget
// that moved get the same treatment in the next round.
func (d *Drag) pullUp(work arrangement, ids []string, maxDelta int, rec *recorder) {
	for len(ids) > 0 {
		var next []string
		for _, id := range ids {
			r := work.get(id)
			for y := max(0, r.Y-maxDelta); y < r.Y; y++ {
				test := r
				test.Y = y
				if !work.free(test, d.id, id) {
					continue
				}
				extended := r
				extended.Height++
				next = append(next, work.overlapping(extended, d.id, id)...)
				work.set(id, test)
				rec.add(Push{From: d.id, To: id, Kind: PullUp, Axis: axisY.String(), Rect: test})
				break
			}
		}
		ids = next
	}
}

// relocate claims pos for id by pushing every overlapping widget down to
// pos's bottom edge, recursively. Each push moves a widget strictly down, so
// the recursion ends at the last row. It reports false if anything would
// cross the bottom of the grid; work is then left in an undefined state.
func (d *Drag) relocate(work arrangement, id string, pos Rect, rec *recorder) bool {
	if pos.Bottom() > d.s.cfg.MaxRows {
		return false
	}
	for _, other := range work.order {
		if other == id || other == d.id {
			continue
		}
		r := work.get(other)
		if !r.Overlaps(pos) {
			continue
		}
		test := r
		test.Y = pos.Bottom()
		if !d.relocate(work, other, test, rec) {
			return false
		}
		work.set(other, test)
		rec.add(Push{From: id, To: other, Kind: PushDown, Axis: axisY.String(), Rect: test})
	}
	return true
}
