package grid

// Default size of the placeholder offered for a new widget.
const (
	PlaceholderWidth  = 6
	PlaceholderHeight = 2
)

// PlaceholderAt returns the rectangle a new widget would take when the
// pointer rests on cell. Sizes are tried from size down to one column and
// the minimum widget height (width first), and for every size the rectangle
// is shifted around the pointer by 0, -1, +1, -2, +2 ... cells. The first
// in-bounds free rectangle that still covers cell wins. A zero size selects
// the default placeholder size.
func (s *Session) PlaceholderAt(cell Point, size Size) (Rect, bool) {
	if size == (Size{}) {
		size = Size{Width: PlaceholderWidth, Height: PlaceholderHeight}
	}
	size.Width = min(size.Width, s.cfg.MaxColumns)
	size.Height = min(size.Height, s.cfg.MaxRows)
	pointer := Rect{X: cell.X, Y: cell.Y, Width: 1, Height: 1}
	if size.Width < 1 || size.Height < 1 || !s.cfg.InBounds(pointer) {
		return Rect{}, false
	}

	// Center the default-size rectangle on the pointer, clamped to the grid.
	base := Point{
		X: clamp(cell.X-size.Width/2, 0, s.cfg.MaxColumns-size.Width),
		Y: clamp(cell.Y-size.Height/2, 0, s.cfg.MaxRows-size.Height),
	}
	offsetsX := spiralOffsets(size.Width)
	offsetsY := spiralOffsets(size.Height)
	minH := min(s.cfg.WidgetMinRows, size.Height)

	for w := size.Width; w >= 1; w-- {
		for h := size.Height; h >= minH; h-- {
			for _, dy := range offsetsY {
				for _, dx := range offsetsX {
					r := Rect{X: base.X + dx, Y: base.Y + dy, Width: w, Height: h}
					if r.Overlaps(pointer) && s.IsFree(r) {
						return r, true
					}
				}
			}
		}
	}
	return Rect{}, false
}

// PlaceholderSpan fits the rectangle spanned by a pressed cell and the
// current pointer cell, anchored at the pressed cell.
func (s *Session) PlaceholderSpan(from, to Point) (Rect, bool) {
	desired := Rect{
		X:      min(from.X, to.X),
		Y:      min(from.Y, to.Y),
		Width:  abs(from.X-to.X) + 1,
		Height: abs(from.Y-to.Y) + 1,
	}
	return s.Accommodate(desired, AccommodateOptions{
		ReverseX: to.X < from.X,
		ReverseY: to.Y < from.Y,
	})
}

// PastePos places a pasted widget of the given size. With an explicit
// position the size is clipped to the grid and accommodated there; without
// one the first free position is used. False means the dashboard has no
// room left.
func (s *Session) PastePos(size Size, at *Point) (Rect, bool) {
	if at == nil {
		return s.FindFreePos(size)
	}
	desired := Rect{
		X:      at.X,
		Y:      at.Y,
		Width:  min(size.Width, s.cfg.MaxColumns-at.X),
		Height: min(size.Height, s.cfg.MaxRows-at.Y),
	}
	return s.Accommodate(desired, AccommodateOptions{})
}

// spiralOffsets returns 0, -1, 1, -2, 2 ... up to ±(n-1).
func spiralOffsets(n int) []int {
	out := make([]int, 0, 2*n-1)
	out = append(out, 0)
	for i := 1; i < n; i++ {
		out = append(out, -i, i)
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
