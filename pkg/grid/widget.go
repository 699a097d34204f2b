package grid

// Widget is a rectangle on the grid identified by an opaque ID. What the
// widget displays is of no concern to this package.
type Widget struct {
	ID   string `json:"id" toml:"id" bson:"id"`
	Rect Rect   `json:"rect" toml:"rect" bson:"rect"`

	// MinRows and MaxRows bound the widget height during resizing. Zero
	// means the grid-wide WidgetMinRows/WidgetMaxRows apply.
	MinRows int `json:"min_rows,omitempty" toml:"min_rows,omitempty" bson:"min_rows,omitempty"`
	MaxRows int `json:"max_rows,omitempty" toml:"max_rows,omitempty" bson:"max_rows,omitempty"`
}

// heightBounds resolves the widget's height limits against the grid config.
func (w Widget) heightBounds(cfg Config) (lo, hi int) {
	lo, hi = cfg.WidgetMinRows, cfg.WidgetMaxRows
	if w.MinRows > 0 {
		lo = w.MinRows
	}
	if w.MaxRows > 0 {
		hi = w.MaxRows
	}
	return lo, max(lo, min(hi, cfg.MaxRows))
}

// minDim returns the smallest size the widget may be squashed to along a.
func (w Widget) minDim(cfg Config, a axis) int {
	if a == axisX {
		return 1
	}
	lo, _ := w.heightBounds(cfg)
	return lo
}
