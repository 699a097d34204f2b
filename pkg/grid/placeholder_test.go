package grid

import "testing"

func TestPlaceholderAt(t *testing.T) {
	tests := []struct {
		name    string
		widgets []Widget
		cell    Point
		size    Size
		want    Rect
		wantOK  bool
	}{
		{
			name:   "centered on pointer",
			cell:   Point{10, 5},
			want:   Rect{7, 4, 6, 2},
			wantOK: true,
		},
		{
			name:   "clamped at left edge",
			cell:   Point{0, 0},
			want:   Rect{0, 0, 6, 2},
			wantOK: true,
		},
		{
			name:    "shifted away from neighbor",
			widgets: []Widget{w("a", 10, 0, 4, 2)},
			cell:    Point{9, 0},
			want:    Rect{4, 0, 6, 2},
			wantOK:  true,
		},
		{
			name:    "shrinks into narrow gap",
			widgets: []Widget{w("a", 0, 0, 10, 2), w("b", 12, 0, 12, 2)},
			cell:    Point{11, 0},
			want:    Rect{10, 0, 2, 2},
			wantOK:  true,
		},
		{
			name:    "pointer on widget",
			widgets: []Widget{w("a", 8, 4, 4, 4)},
			cell:    Point{9, 5},
			wantOK:  false,
		},
		{
			name:   "pointer outside grid",
			cell:   Point{30, 0},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, DefaultConfig(), tt.widgets...)
			got, ok := s.PlaceholderAt(tt.cell, tt.size)
			if ok != tt.wantOK {
				t.Fatalf("PlaceholderAt() ok = %v, want %v (got %v)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("PlaceholderAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaceholderSpan(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), w("a", 0, 0, 2, 2))
	tests := []struct {
		name     string
		from, to Point
		want     Rect
	}{
		{"down right", Point{2, 2}, Point{5, 4}, Rect{2, 2, 4, 3}},
		{"up left", Point{5, 5}, Point{2, 3}, Rect{2, 3, 4, 3}},
		{"up left against widget", Point{4, 3}, Point{0, 0}, Rect{0, 2, 5, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.PlaceholderSpan(tt.from, tt.to)
			if !ok {
				t.Fatal("PlaceholderSpan() ok = false")
			}
			if got != tt.want {
				t.Errorf("PlaceholderSpan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPastePos(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), w("a", 0, 0, 6, 2))
	tests := []struct {
		name   string
		size   Size
		at     *Point
		want   Rect
		wantOK bool
	}{
		{"first free", Size{6, 2}, nil, Rect{6, 0, 6, 2}, true},
		{"clipped at right border", Size{6, 2}, &Point{22, 4}, Rect{22, 4, 2, 2}, true},
		{"explicit position", Size{6, 2}, &Point{2, 2}, Rect{2, 2, 6, 2}, true},
		{"position taken", Size{6, 2}, &Point{1, 1}, Rect{}, false},
		{"too large for grid", Size{25, 2}, nil, Rect{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.PastePos(tt.size, tt.at)
			if ok != tt.wantOK {
				t.Fatalf("PastePos() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("PastePos() = %v, want %v", got, tt.want)
			}
		})
	}
}
