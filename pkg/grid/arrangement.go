package grid

import "maps"

// arrangement maps widget IDs to rectangles in a fixed iteration order. It is
// the working copy gestures mutate; the session's committed set is never
// touched until a gesture ends.
type arrangement struct {
	order []string
	rects map[string]Rect
}

func newArrangement(order []string, rects map[string]Rect) arrangement {
	return arrangement{order: order, rects: rects}
}

func (a arrangement) clone() arrangement {
	return arrangement{order: a.order, rects: maps.Clone(a.rects)}
}

func (a arrangement) get(id string) Rect { return a.rects[id] }

func (a arrangement) set(id string, r Rect) { a.rects[id] = r }

// free reports whether r overlaps no rectangle other than the excluded ones.
// Bounds are not checked.
func (a arrangement) free(r Rect, except ...string) bool {
	for _, id := range a.order {
		if contains(except, id) {
			continue
		}
		if a.rects[id].Overlaps(r) {
			return false
		}
	}
	return true
}

// overlapping returns, in order, the IDs whose rectangles overlap r.
func (a arrangement) overlapping(r Rect, except ...string) []string {
	var ids []string
	for _, id := range a.order {
		if contains(except, id) {
			continue
		}
		if a.rects[id].Overlaps(r) {
			ids = append(ids, id)
		}
	}
	return ids
}

// diff returns the rectangles in b that differ from a.
func (a arrangement) diff(b arrangement) map[string]Rect {
	changes := make(map[string]Rect)
	for _, id := range b.order {
		if a.rects[id] != b.rects[id] {
			changes[id] = b.rects[id]
		}
	}
	return changes
}

// valid reports whether every rectangle is in bounds and no two overlap.
func (a arrangement) valid(cfg Config) bool {
	for i, id := range a.order {
		r := a.rects[id]
		if !cfg.InBounds(r) {
			return false
		}
		for _, other := range a.order[i+1:] {
			if r.Overlaps(a.rects[other]) {
				return false
			}
		}
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
