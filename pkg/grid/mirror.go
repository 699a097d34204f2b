package grid

import (
	"strings"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// Edges is the set of widget edges a resize handle drags.
type Edges uint8

// Resize handles. Combine them for corners, e.g. EdgeRight|EdgeBottom.
const (
	// EdgeLeft moves the left edge; the right edge stays fixed.
	EdgeLeft Edges = 1 << iota
	// EdgeRight moves the right edge.
	EdgeRight
	// EdgeTop moves the top edge; the bottom edge stays fixed.
	EdgeTop
	// EdgeBottom moves the bottom edge.
	EdgeBottom
)

var edgeNames = []struct {
	edge Edges
	name string
}{
	{EdgeTop, "top"},
	{EdgeBottom, "bottom"},
	{EdgeLeft, "left"},
	{EdgeRight, "right"},
}

// ParseEdges parses handle names such as "right", "bottom-left" or
// "top,right".
func ParseEdges(s string) (Edges, error) {
	var e Edges
	for _, part := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '-' || r == ',' || r == ' ' || r == '+'
	}) {
		found := false
		for _, n := range edgeNames {
			if n.name == part {
				e |= n.edge
				found = true
			}
		}
		if !found {
			return 0, errs.New(errs.ErrCodeInvalidInput, "unknown edge %q", part)
		}
	}
	return e, e.Validate()
}

// Validate rejects empty handles and handles that name opposite edges.
func (e Edges) Validate() error {
	switch {
	case e == 0:
		return errs.New(errs.ErrCodeInvalidInput, "resize needs at least one edge")
	case e&EdgeLeft != 0 && e&EdgeRight != 0:
		return errs.New(errs.ErrCodeInvalidInput, "cannot resize from both left and right edges")
	case e&EdgeTop != 0 && e&EdgeBottom != 0:
		return errs.New(errs.ErrCodeInvalidInput, "cannot resize from both top and bottom edges")
	case e&^(EdgeLeft|EdgeRight|EdgeTop|EdgeBottom) != 0:
		return errs.New(errs.ErrCodeInvalidInput, "unknown edge bits %#x", uint8(e))
	}
	return nil
}

func (e Edges) String() string {
	var parts []string
	for _, n := range edgeNames {
		if e&n.edge != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "-")
}

// MarshalText implements encoding.TextMarshaler.
func (e Edges) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Edges) UnmarshalText(b []byte) error {
	v, err := ParseEdges(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// mirror flips the grid along the axes whose start edge is being dragged,
// so that the resize core only ever grows rightward and downward. Applying
// it twice is the identity.
type mirror struct {
	x, y       bool
	cols, rows int
}

func newMirror(cfg Config, e Edges) mirror {
	return mirror{x: e&EdgeLeft != 0, y: e&EdgeTop != 0, cols: cfg.MaxColumns, rows: cfg.MaxRows}
}

func (m mirror) rect(r Rect) Rect {
	if m.x {
		r.X = m.cols - r.X - r.Width
	}
	if m.y {
		r.Y = m.rows - r.Y - r.Height
	}
	return r
}

func (m mirror) arrangement(a arrangement) arrangement {
	out := a.clone()
	for id, r := range out.rects {
		out.rects[id] = m.rect(r)
	}
	return out
}

func (m mirror) trace(t Trace) Trace {
	for i := range t {
		t[i].Rect = m.rect(t[i].Rect)
	}
	return t
}
