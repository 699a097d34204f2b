package grid_test

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func ExampleSession_FindFreePos() {
	cfg := grid.Config{MaxColumns: 4, MaxRows: 4, WidgetMinRows: 2, WidgetMaxRows: 4}
	s, _ := grid.NewSession(cfg, []grid.Widget{
		{ID: "W1", Rect: grid.Rect{X: 0, Y: 0, Width: 2, Height: 2}},
		{ID: "W2", Rect: grid.Rect{X: 2, Y: 0, Width: 2, Height: 2}},
	})
	r, ok := s.FindFreePos(grid.Size{Width: 2, Height: 2})
	fmt.Println(r, ok)
	// Output: (0,2 2×2) true
}

func ExampleDrag() {
	cfg := grid.Config{MaxColumns: 4, MaxRows: 8, WidgetMinRows: 2, WidgetMaxRows: 8}
	s, _ := grid.NewSession(cfg, []grid.Widget{
		{ID: "cpu", Rect: grid.Rect{X: 0, Y: 0, Width: 2, Height: 2}},
		{ID: "mem", Rect: grid.Rect{X: 2, Y: 0, Width: 2, Height: 2}},
	})
	d, _ := s.BeginDrag("cpu")
	u, _ := d.Update(grid.Rect{X: 2, Y: 0, Width: 2, Height: 2})
	fmt.Println(u.Changes["cpu"], u.Changes["mem"])
	d.End()
	mem, _ := s.Widget("mem")
	fmt.Println(mem.Rect)
	// Output:
	// (2,0 2×2) (2,2 2×2)
	// (2,2 2×2)
}

func ExampleResize() {
	cfg := grid.Config{MaxColumns: 6, MaxRows: 4, WidgetMinRows: 1, WidgetMaxRows: 4}
	s, _ := grid.NewSession(cfg, []grid.Widget{
		{ID: "W1", Rect: grid.Rect{X: 0, Y: 0, Width: 2, Height: 2}},
		{ID: "W2", Rect: grid.Rect{X: 2, Y: 0, Width: 2, Height: 2}},
	})
	r, _ := s.BeginResize("W1", grid.EdgeRight)
	u, _ := r.Update(grid.Rect{X: 0, Y: 0, Width: 4, Height: 2})
	fmt.Println(u.Changes["W1"], u.Changes["W2"])
	// Output: (0,0 4×2) (4,0 2×2)
}
