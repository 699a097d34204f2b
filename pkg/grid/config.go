package grid

import (
	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// Default grid dimensions.
const (
	DefaultMaxColumns    = 24
	DefaultMaxRows       = 64
	DefaultWidgetMinRows = 2
	DefaultWidgetMaxRows = 32
)

// Largest accepted grid. Hosts size canvases and occupancy scans from the
// grid extent, so it is capped well above any real dashboard.
const (
	MaxGridColumns = 256
	MaxGridRows    = 512
)

// Config describes the bounded grid widgets live on. It is fixed for the
// lifetime of a session.
type Config struct {
	MaxColumns    int `json:"max_columns" toml:"max_columns" bson:"max_columns"`
	MaxRows       int `json:"max_rows" toml:"max_rows" bson:"max_rows"`
	WidgetMinRows int `json:"widget_min_rows" toml:"widget_min_rows" bson:"widget_min_rows"`
	WidgetMaxRows int `json:"widget_max_rows" toml:"widget_max_rows" bson:"widget_max_rows"`
}

// DefaultConfig returns the standard 24-column dashboard grid.
func DefaultConfig() Config {
	return Config{
		MaxColumns:    DefaultMaxColumns,
		MaxRows:       DefaultMaxRows,
		WidgetMinRows: DefaultWidgetMinRows,
		WidgetMaxRows: DefaultWidgetMaxRows,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.MaxColumns == 0 {
		c.MaxColumns = d.MaxColumns
	}
	if c.MaxRows == 0 {
		c.MaxRows = d.MaxRows
	}
	if c.WidgetMinRows == 0 {
		c.WidgetMinRows = min(d.WidgetMinRows, c.MaxRows)
	}
	if c.WidgetMaxRows == 0 {
		c.WidgetMaxRows = max(c.WidgetMinRows, min(d.WidgetMaxRows, c.MaxRows))
	}
	return c
}

// Validate reports whether the configuration describes a usable grid.
func (c Config) Validate() error {
	switch {
	case c.MaxColumns < 1:
		return errs.New(errs.ErrCodeInvalidConfig, "max_columns must be positive (got %d)", c.MaxColumns)
	case c.MaxColumns > MaxGridColumns:
		return errs.New(errs.ErrCodeInvalidConfig, "max_columns %d exceeds the limit of %d", c.MaxColumns, MaxGridColumns)
	case c.MaxRows < 1:
		return errs.New(errs.ErrCodeInvalidConfig, "max_rows must be positive (got %d)", c.MaxRows)
	case c.MaxRows > MaxGridRows:
		return errs.New(errs.ErrCodeInvalidConfig, "max_rows %d exceeds the limit of %d", c.MaxRows, MaxGridRows)
	case c.WidgetMinRows < 1:
		return errs.New(errs.ErrCodeInvalidConfig, "widget_min_rows must be positive (got %d)", c.WidgetMinRows)
	case c.WidgetMinRows > c.MaxRows:
		return errs.New(errs.ErrCodeInvalidConfig, "widget_min_rows %d exceeds max_rows %d", c.WidgetMinRows, c.MaxRows)
	case c.WidgetMaxRows < c.WidgetMinRows:
		return errs.New(errs.ErrCodeInvalidConfig, "widget_max_rows %d is below widget_min_rows %d", c.WidgetMaxRows, c.WidgetMinRows)
	}
	return nil
}

// Bounds returns the rectangle covering the whole grid.
func (c Config) Bounds() Rect {
	return Rect{Width: c.MaxColumns, Height: c.MaxRows}
}

// InBounds reports whether r is non-empty and lies entirely inside the grid.
func (c Config) InBounds(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 1 && r.Height >= 1 &&
		r.Right() <= c.MaxColumns && r.Bottom() <= c.MaxRows
}

// limit returns the grid extent along an axis.
func (c Config) limit(a axis) int {
	if a == axisX {
		return c.MaxColumns
	}
	return c.MaxRows
}
