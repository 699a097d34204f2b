package render

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

const (
	DefaultCellSize = 24
	maxCellSize     = 128
)

// PNGOptions configures layout image rendering.
type PNGOptions struct {
	// CellSize is the edge length of one grid cell in pixels.
	CellSize int
	// Rows is the number of rows to draw. Zero draws down to the lowest
	// widget, never fewer than one row.
	Rows int
	// Grid draws cell lines behind the widgets.
	Grid bool
}

func (o *PNGOptions) setDefaults() error {
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.CellSize < 4 || o.CellSize > maxCellSize {
		return errs.New(errs.ErrCodeInvalidInput, "cell size must be between 4 and %d", maxCellSize)
	}
	if o.Rows < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "rows cannot be negative")
	}
	return nil
}

var (
	background = color.NRGBA{0xf5, 0xf6, 0xf8, 0xff}
	gridLine   = color.NRGBA{0xdd, 0xe1, 0xe6, 0xff}
	border     = color.NRGBA{0x2b, 0x30, 0x3b, 0xff}
	palette    = []color.NRGBA{
		{0x4e, 0x79, 0xa7, 0xff},
		{0xf2, 0x8e, 0x2b, 0xff},
		{0xe1, 0x57, 0x59, 0xff},
		{0x76, 0xb7, 0xb2, 0xff},
		{0x59, 0xa1, 0x4f, 0xff},
		{0xed, 0xc9, 0x48, 0xff},
		{0xb0, 0x7a, 0xa1, 0xff},
		{0x9c, 0x75, 0x5f, 0xff},
	}
)

// WidgetColor returns the fill color of a widget. It depends only on the ID
// so a widget keeps its color across renders.
func WidgetColor(id string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}

// LayoutImage paints the widgets onto a canvas sized to the grid width and
// the requested rows.
func LayoutImage(cfg grid.Config, widgets []grid.Widget, opts PNGOptions) (*image.NRGBA, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rows := opts.Rows
	if rows == 0 {
		rows = 1
		for _, w := range widgets {
			rows = max(rows, w.Rect.Bottom())
		}
	}
	rows = min(rows, cfg.MaxRows)
	cs := opts.CellSize

	img := imaging.New(cfg.MaxColumns*cs, rows*cs, background)
	if opts.Grid {
		drawGridLines(img, cfg.MaxColumns, rows, cs)
	}

	inset := max(1, cs/12)
	for _, w := range widgets {
		r := w.Rect
		if r.Y >= rows {
			continue
		}
		pw, ph := r.Width*cs-2*inset, r.Height*cs-2*inset
		if pw <= 0 || ph <= 0 {
			continue
		}
		at := image.Pt(r.X*cs+inset, r.Y*cs+inset)
		img = imaging.Paste(img, imaging.New(pw, ph, border), at)
		if pw > 2 && ph > 2 {
			img = imaging.Paste(img, imaging.New(pw-2, ph-2, WidgetColor(w.ID)), at.Add(image.Pt(1, 1)))
		}
	}
	return img, nil
}

// drawGridLines paints the inner cell boundaries in place.
func drawGridLines(img *image.NRGBA, cols, rows, cs int) {
	line := image.NewUniform(gridLine)
	h, w := rows*cs, cols*cs
	for x := 1; x < cols; x++ {
		draw.Draw(img, image.Rect(x*cs, 0, x*cs+1, h), line, image.Point{}, draw.Src)
	}
	for y := 1; y < rows; y++ {
		draw.Draw(img, image.Rect(0, y*cs, w, y*cs+1), line, image.Point{}, draw.Src)
	}
}

// LayoutPNG renders the layout and writes it to w as PNG.
func LayoutPNG(w io.Writer, cfg grid.Config, widgets []grid.Widget, opts PNGOptions) error {
	img, err := LayoutImage(cfg, widgets, opts)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
