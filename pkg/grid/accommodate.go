package grid

// AccommodateOptions selects the corner a fitted rectangle is anchored to.
// By default the top-left corner of the desired rectangle stays put and the
// rectangle shrinks from the right and bottom; ReverseX anchors the right
// edge instead and ReverseY the bottom edge.
type AccommodateOptions struct {
	ReverseX bool `json:"reverse_x"`
	ReverseY bool `json:"reverse_y"`
}

// Accommodate shrinks desired to the best in-bounds, collision-free
// rectangle that keeps the anchored corner. It reports false when not even a
// one column wide, minimum-height rectangle fits at the anchor.
//
// Every width from the widest free band down to one column is tried, each
// with its tallest free height. The winner is the candidate closest to
// desired (Euclidean distance between the free edges), except that a
// candidate wider than one column always beats a single-column one. Equal
// distances go to the wider candidate.
func (s *Session) Accommodate(desired Rect, opts AccommodateOptions) (Rect, bool) {
	d, ok := s.fitDesired(desired, opts.ReverseY)
	if !ok {
		return Rect{}, false
	}
	minH := s.cfg.WidgetMinRows

	band := Rect{X: d.X, Y: d.Y, Width: d.Width, Height: minH}
	if opts.ReverseY {
		band.Y = d.Bottom() - minH
	}
	band, ok = s.widestBand(band, opts.ReverseX)
	if !ok {
		return Rect{}, false
	}

	var (
		best      Rect
		bestScore int
		found     bool
	)
	for x, w := band.X, band.Width; w >= 1; w-- {
		v := s.tallest(Rect{X: x, Y: d.Y, Width: w, Height: d.Height}, opts.ReverseY)
		dx, dy := v.Width-d.Width, v.Height-d.Height
		if opts.ReverseX {
			dx = v.X - d.X
		}
		if opts.ReverseY {
			dy = v.Y - d.Y
		}
		score := dx*dx + dy*dy
		if !found || betterFit(v, score, best, bestScore) {
			best, bestScore, found = v, score, true
		}
		if opts.ReverseX {
			x++
		}
	}
	return best, found
}

// betterFit orders accommodation candidates: wider than one column first,
// then smaller distance, then larger width, then lower x.
func betterFit(v Rect, score int, best Rect, bestScore int) bool {
	if (v.Width > 1) != (best.Width > 1) {
		return v.Width > 1
	}
	if score != bestScore {
		return score < bestScore
	}
	if v.Width != best.Width {
		return v.Width > best.Width
	}
	return v.X < best.X
}

// fitDesired clips desired to the grid and grows it to the minimum widget
// height, keeping the bottom edge when reverseY is set.
func (s *Session) fitDesired(desired Rect, reverseY bool) (Rect, bool) {
	if desired.Width < 1 || desired.Height < 1 {
		return Rect{}, false
	}
	minH := s.cfg.WidgetMinRows
	if desired.Height < minH {
		if reverseY {
			desired.Y = desired.Bottom() - minH
		}
		desired.Height = minH
	}
	x0, x1 := max(desired.X, 0), min(desired.Right(), s.cfg.MaxColumns)
	y0, y1 := max(desired.Y, 0), min(desired.Bottom(), s.cfg.MaxRows)
	if x1 <= x0 || y1-y0 < minH {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// widestBand grows a minimum-height band one column at a time from the
// anchored edge for as long as it stays free.
func (s *Session) widestBand(band Rect, reverse bool) (Rect, bool) {
	best := Rect{}
	if reverse {
		for x, w := band.Right()-1, 1; x >= band.X; x, w = x-1, w+1 {
			r := Rect{X: x, Y: band.Y, Width: w, Height: band.Height}
			if !s.IsFree(r) {
				break
			}
			best = r
		}
	} else {
		for w := 1; w <= band.Width; w++ {
			r := Rect{X: band.X, Y: band.Y, Width: w, Height: band.Height}
			if !s.IsFree(r) {
				break
			}
			best = r
		}
	}
	return best, best.Width > 0
}

// tallest grows a column of fixed x and width from the minimum height toward
// pos.Height for as long as it stays free. The starting minimum-height
// rectangle must already be free.
func (s *Session) tallest(pos Rect, reverse bool) Rect {
	minH := s.cfg.WidgetMinRows
	best := Rect{X: pos.X, Y: pos.Y, Width: pos.Width, Height: minH}
	if reverse {
		best.Y = pos.Bottom() - minH
		for y, h := best.Y-1, minH+1; y >= pos.Y; y, h = y-1, h+1 {
			r := Rect{X: pos.X, Y: y, Width: pos.Width, Height: h}
			if !s.IsFree(r) {
				break
			}
			best = r
		}
		return best
	}
	for h := minH + 1; h <= pos.Height; h++ {
		r := Rect{X: pos.X, Y: pos.Y, Width: pos.Width, Height: h}
		if !s.IsFree(r) {
			break
		}
		best = r
	}
	return best
}
