package grid

import "slices"

// Resize is an in-progress resize of one widget from an edge or corner
// handle. The opposite edges stay fixed. Neighbors in the way run away from
// the growing edge one cell at a time and get squashed against the grid
// border; when nothing gives way the widget simply stops growing. After each
// update displaced widgets drift back toward their pre-resize rectangles as
// far as free space allows.
//
// Internally the grid is mirrored along every axis whose start edge (left or
// top) is dragged, so growth always points right and down.
type Resize struct {
	gesture
	edges Edges
	m     mirror

	work    arrangement // mirrored working arrangement
	origin  arrangement // mirrored pre-resize arrangement
	current Rect        // mirrored active rectangle
	tested  Rect
	axes    []axis
	minH    int
	maxH    int
}

// BeginResize starts resizing the widget with the given ID from edges.
func (s *Session) BeginResize(id string, edges Edges) (*Resize, error) {
	if err := edges.Validate(); err != nil {
		return nil, err
	}
	g, err := s.beginGesture(id)
	if err != nil {
		return nil, err
	}
	m := newMirror(s.cfg, edges)
	lo, hi := s.widgets[id].heightBounds(s.cfg)
	r := &Resize{
		gesture: g,
		edges:   edges,
		m:       m,
		work:    m.arrangement(g.original),
		origin:  m.arrangement(g.original),
		minH:    lo,
		maxH:    hi,
	}
	r.current = r.work.get(id)
	r.tested = r.current
	return r, nil
}

// Edges returns the dragged edges.
func (r *Resize) Edges() Edges { return r.edges }

// Update resizes the widget toward target, where only the dragged edges of
// target matter. It reports false when the widget's rectangle did not
// change: target resolves to the current or the last attempted rectangle,
// no single step could be made, or the resize has finished.
func (r *Resize) Update(target Rect) (Update, bool) {
	if r.finished {
		return Update{}, false
	}
	t := r.targetRect(target)
	if t == r.current || t == r.tested {
		return Update{}, false
	}
	r.tested = t
	r.trackAxes(t)

	best, bestWork := r.current, r.work.clone()
	rec := &recorder{}
	for _, a := range r.axes {
		dir := sign(t.dim(a) - best.dim(a))
		for n := abs(t.dim(a) - best.dim(a)); n > 0; n-- {
			step := best
			step.setDim(a, step.dim(a)+dir)
			trial := bestWork.clone()
			trial.set(r.id, step)
			mark := rec.mark()
			if !r.clear(trial, best, step, rec) {
				rec.rollback(mark)
				break
			}
			best, bestWork = step, trial
		}
	}
	if best == r.current {
		return Update{}, false
	}

	r.current, r.tested = best, best
	r.runBack(bestWork, rec)
	r.work = bestWork
	return r.show(r.m.arrangement(bestWork), r.m.trace(rec.pushes)), true
}

// End commits the current arrangement.
func (r *Resize) End() (Update, error) { return r.end() }

// Cancel abandons the resize and restores the pre-resize arrangement.
func (r *Resize) Cancel() Update { return r.cancel() }

// targetRect converts a host rectangle into the clamped mirrored rectangle
// the widget should grow or shrink to.
func (r *Resize) targetRect(target Rect) Rect {
	o := r.original.get(r.id)
	width, height := o.Width, o.Height
	switch {
	case r.edges&EdgeRight != 0:
		width = target.Right() - o.X
	case r.edges&EdgeLeft != 0:
		width = o.Right() - target.X
	}
	switch {
	case r.edges&EdgeBottom != 0:
		height = target.Bottom() - o.Y
	case r.edges&EdgeTop != 0:
		height = o.Bottom() - target.Y
	}

	t := r.origin.get(r.id)
	cfg := r.s.cfg
	if r.edges&(EdgeLeft|EdgeRight) != 0 {
		t.Width = clamp(width, 1, cfg.MaxColumns-t.X)
	}
	if r.edges&(EdgeTop|EdgeBottom) != 0 {
		t.Height = clamp(height, r.minH, min(r.maxH, cfg.MaxRows-t.Y))
	}
	return t
}

// trackAxes orders the axes still to be stepped toward t. Axes already
// pending at the previous update keep their place; axes that start to
// differ from the current rectangle now follow in x, y order.
func (r *Resize) trackAxes(t Rect) {
	next := make([]axis, 0, 2)
	for _, a := range r.axes {
		if t.dim(a) != r.current.dim(a) {
			next = append(next, a)
		}
	}
	for _, a := range []axis{axisX, axisY} {
		if t.dim(a) != r.current.dim(a) && !slices.Contains(next, a) {
			next = append(next, a)
		}
	}
	r.axes = next
}

// clear makes room for step by displacing every widget it overlaps. prev is
// the active rectangle before the step and decides where each widget runs.
func (r *Resize) clear(work arrangement, prev, step Rect, rec *recorder) bool {
	for _, id := range work.order {
		if id == r.id || !work.get(id).Overlaps(step) {
			continue
		}
		a, dir, ok := runAwayDir(prev, work.get(id))
		if !ok {
			return false
		}
		if !r.runAway(work, id, a, dir, true, r.id, map[string]bool{}, rec) {
			return false
		}
	}
	return work.valid(r.s.cfg)
}

// runAwayDir returns the axis and direction that move dst away from src.
func runAwayDir(src, dst Rect) (axis, int, bool) {
	switch {
	case src.Right() <= dst.X:
		return axisX, 1, true
	case src.X >= dst.Right():
		return axisX, -1, true
	case src.Bottom() <= dst.Y:
		return axisY, 1, true
	case src.Y >= dst.Bottom():
		return axisY, -1, true
	}
	return axisX, 0, false
}

// runAway moves id one cell along a in direction dir, recursively moving
// whatever it then overlaps. At the grid border, or when the widgets ahead
// cannot move, the widget is squashed by one cell instead if squash is set
// and it is above its minimum size. On failure work is restored.
func (r *Resize) runAway(work arrangement, id string, a axis, dir int, squash bool, from string, chain map[string]bool, rec *recorder) bool {
	if chain[id] {
		return false
	}
	chain[id] = true
	defer delete(chain, id)

	cfg := r.s.cfg
	orig := work.get(id)
	minDim := r.s.widgets[id].minDim(cfg, a)

	moved := orig
	moved.setPos(a, orig.pos(a)+dir)
	if moved.pos(a) < 0 || moved.pos(a)+moved.dim(a) > cfg.limit(a) {
		if !squash || orig.dim(a) <= minDim {
			return false
		}
		squashed := orig
		squashed.setDim(a, orig.dim(a)-1)
		if dir == 1 {
			squashed.setPos(a, orig.pos(a)+1)
		}
		work.set(id, squashed)
		rec.add(Push{From: from, To: id, Kind: PushSquash, Axis: a.String(), Rect: squashed})
		return true
	}

	before := work.clone()
	mark := rec.mark()
	work.set(id, moved)
	rec.add(Push{From: from, To: id, Kind: RunAway, Axis: a.String(), Rect: moved})

	ahead := work.overlapping(moved, r.id, id)
	if r.pushAll(work, ahead, a, dir, false, id, chain, rec) {
		return true
	}
	restore(work, before)
	rec.rollback(mark)
	if !squash {
		return false
	}

	if orig.dim(a) > minDim {
		squashed := orig
		squashed.setDim(a, orig.dim(a)-1)
		if dir == 1 {
			squashed.setPos(a, orig.pos(a)+1)
		}
		work.set(id, squashed)
		rec.add(Push{From: from, To: id, Kind: PushSquash, Axis: a.String(), Rect: squashed})
		return true
	}

	work.set(id, moved)
	rec.add(Push{From: from, To: id, Kind: RunAway, Axis: a.String(), Rect: moved})
	if r.pushAll(work, ahead, a, dir, true, id, chain, rec) {
		return true
	}
	restore(work, before)
	rec.rollback(mark)
	return false
}

func (r *Resize) pushAll(work arrangement, ids []string, a axis, dir int, squash bool, from string, chain map[string]bool, rec *recorder) bool {
	for _, id := range ids {
		if !r.runAway(work, id, a, dir, squash, from, chain, rec) {
			return false
		}
	}
	return true
}

// runBack repeatedly moves every displaced widget one cell toward its
// pre-resize position, and grows it one cell toward its pre-resize size,
// whenever the result is free. It stops when a full pass changes nothing.
func (r *Resize) runBack(work arrangement, rec *recorder) {
	var displaced []string
	for _, id := range work.order {
		if id != r.id && work.get(id) != r.origin.get(id) {
			displaced = append(displaced, id)
		}
	}
	for moved := true; moved; {
		moved = false
		for _, id := range displaced {
			cur, want := work.get(id), r.origin.get(id)
			next := cur
			next.X += sign(want.X - cur.X)
			if next.Width < want.Width {
				next.Width++
			}
			next.Y += sign(want.Y - cur.Y)
			if next.Height < want.Height {
				next.Height++
			}
			if next == cur || !r.s.cfg.InBounds(next) || !work.free(next, id) {
				continue
			}
			work.set(id, next)
			rec.add(Push{From: r.id, To: id, Kind: RunBack, Rect: next})
			moved = true
		}
	}
}

func restore(work, from arrangement) {
	for id, rect := range from.rects {
		work.rects[id] = rect
	}
}
