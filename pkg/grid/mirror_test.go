package grid

import "testing"

func TestParseEdges(t *testing.T) {
	tests := []struct {
		in      string
		want    Edges
		wantErr bool
	}{
		{"right", EdgeRight, false},
		{"bottom-right", EdgeBottom | EdgeRight, false},
		{"Top,Left", EdgeTop | EdgeLeft, false},
		{"", 0, true},
		{"left-right", 0, true},
		{"middle", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEdges(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEdges(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseEdges(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEdgesString(t *testing.T) {
	if got := (EdgeRight | EdgeBottom).String(); got != "bottom-right" {
		t.Errorf("String() = %q, want %q", got, "bottom-right")
	}
	if got := Edges(0).String(); got != "none" {
		t.Errorf("String() = %q, want %q", got, "none")
	}
}

func TestMirrorRoundTrip(t *testing.T) {
	cfg := smallGrid(10, 8, 1)
	m := newMirror(cfg, EdgeLeft|EdgeTop)
	r := Rect{1, 2, 3, 4}
	got := m.rect(r)
	if want := (Rect{6, 2, 3, 4}); got != want {
		t.Errorf("mirror.rect(%v) = %v, want %v", r, got, want)
	}
	if back := m.rect(got); back != r {
		t.Errorf("mirror applied twice = %v, want %v", back, r)
	}
}
