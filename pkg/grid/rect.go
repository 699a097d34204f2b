package grid

import "fmt"

// Point is a grid cell.
type Point struct {
	X int `json:"x" toml:"x" bson:"x"`
	Y int `json:"y" toml:"y" bson:"y"`
}

// Size is a widget footprint in cells.
type Size struct {
	Width  int `json:"width" toml:"width" bson:"width"`
	Height int `json:"height" toml:"height" bson:"height"`
}

// Rect is a position and size in grid cells.
type Rect struct {
	X      int `json:"x" toml:"x" bson:"x"`
	Y      int `json:"y" toml:"y" bson:"y"`
	Width  int `json:"width" toml:"width" bson:"width"`
	Height int `json:"height" toml:"height" bson:"height"`
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Size returns the rectangle's footprint.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left cell.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Overlaps reports whether the two rectangles share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Contains reports whether the cell p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X < r.Right() && r.Y <= p.Y && p.Y < r.Bottom()
}

// Area returns the number of covered cells.
func (r Rect) Area() int { return r.Width * r.Height }

// String returns the rectangle as "(x,y width×height)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %d×%d)", r.X, r.Y, r.Width, r.Height)
}

// axis selects a coordinate/size pair of a rectangle.
type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) String() string {
	if a == axisX {
		return "x"
	}
	return "y"
}

// pos returns the rectangle's coordinate along a.
func (r Rect) pos(a axis) int {
	if a == axisX {
		return r.X
	}
	return r.Y
}

// dim returns the rectangle's size along a.
func (r Rect) dim(a axis) int {
	if a == axisX {
		return r.Width
	}
	return r.Height
}

func (r *Rect) setPos(a axis, v int) {
	if a == axisX {
		r.X = v
	} else {
		r.Y = v
	}
}

func (r *Rect) setDim(a axis, v int) {
	if a == axisX {
		r.Width = v
	} else {
		r.Height = v
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
