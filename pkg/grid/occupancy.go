package grid

// IsFree reports whether r lies inside the grid and overlaps no committed
// widget other than those listed in except.
func (s *Session) IsFree(r Rect, except ...string) bool {
	if !s.cfg.InBounds(r) {
		return false
	}
	for _, id := range s.order {
		if contains(except, id) {
			continue
		}
		if s.widgets[id].Rect.Overlaps(r) {
			return false
		}
	}
	return true
}

// FindFreePos returns the first free rectangle of the given size in
// row-major order: rows top to bottom, columns left to right within a row.
// It reports false when no such rectangle exists.
func (s *Session) FindFreePos(size Size) (Rect, bool) {
	if size.Width < 1 || size.Height < 1 {
		return Rect{}, false
	}
	maxX := s.cfg.MaxColumns - size.Width
	maxY := s.cfg.MaxRows - size.Height
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			r := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
			if s.IsFree(r) {
				return r, true
			}
		}
	}
	return Rect{}, false
}
