package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printCacheStatus prints whether an artifact came from the cache.
func printCacheStatus(cached bool) {
	if cached {
		fmt.Println("  " + styleCached.Render(iconCached))
		return
	}
	fmt.Println("  " + styleComputed.Render(iconFresh))
}

// =============================================================================
// Grid Drawing
// =============================================================================

// widgetStyle colors a widget the same way the PNG renderer does.
func widgetStyle(id string) lipgloss.Style {
	c := render.WidgetColor(id)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
}

// widgetGlyph returns the label drawn in a widget's cells.
func widgetGlyph(order int) string {
	const glyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	return string(glyphs[order%len(glyphs)])
}

// drawGrid draws rects on a text grid, two characters per cell. ids fixes
// the glyph order; active is drawn bold.
func drawGrid(ids []string, rects map[string]grid.Rect, cols, rows int, active string) string {
	cells := make([][]string, rows)
	for y := range cells {
		cells[y] = make([]string, cols)
	}
	for i, id := range ids {
		r, ok := rects[id]
		if !ok {
			continue
		}
		style := widgetStyle(id)
		if id == active {
			style = style.Bold(true).Reverse(true)
		}
		cell := style.Render(strings.Repeat(widgetGlyph(i), 2))
		for y := r.Y; y < min(r.Bottom(), rows); y++ {
			for x := r.X; x < min(r.Right(), cols); x++ {
				cells[y][x] = cell
			}
		}
	}

	empty := StyleDim.Render("· ")
	var b strings.Builder
	for _, row := range cells {
		for _, c := range row {
			if c == "" {
				c = empty
			}
			b.WriteString(c)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// widgetTable lists widgets with their glyph and rectangle.
func widgetTable(widgets []grid.Widget) string {
	rows := make([][]string, 0, len(widgets))
	for i, w := range widgets {
		rows = append(rows, []string{
			widgetStyle(w.ID).Render(widgetGlyph(i)),
			w.ID,
			strconv.Itoa(w.Rect.X),
			strconv.Itoa(w.Rect.Y),
			strconv.Itoa(w.Rect.Width),
			strconv.Itoa(w.Rect.Height),
		})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Widget", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
