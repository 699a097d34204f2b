package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// TraceOptions configures push-trace diagrams.
type TraceOptions struct {
	// Detailed adds the resulting rectangle to every edge label.
	Detailed bool
	// Active highlights the widget the gesture acted on.
	Active string
}

var kindStyles = map[grid.PushKind]string{
	grid.PushDown:   `color="#4e79a7"`,
	grid.PushSquash: `color="#e15759", style=bold`,
	grid.PullUp:     `color="#59a14f", style=dashed`,
	grid.RunAway:    `color="#f28e2b"`,
	grid.RunBack:    `color="#76b7b2", style=dashed`,
}

// TraceDOT converts a push trace to Graphviz DOT. Every push becomes an
// edge from the displacing widget to the displaced one, numbered in the
// order the pushes happened.
func TraceDOT(t grid.Trace, opts TraceOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph trace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, id := range t.Widgets() {
		c := WidgetColor(id)
		attrs := []string{fmt.Sprintf("color=\"#%02x%02x%02x\"", c.R, c.G, c.B)}
		if id == opts.Active {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, p := range t {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", p.From, p.To, strings.Join(edgeAttrs(i+1, p, opts.Detailed), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(n int, p grid.Push, detailed bool) []string {
	label := fmt.Sprintf("%d %s", n, p.Kind)
	if p.Axis != "" {
		label += " " + p.Axis
	}
	if detailed {
		label += "\n" + p.Rect.String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s, ok := kindStyles[p.Kind]; ok {
		attrs = append(attrs, s)
	}
	return attrs
}

// TraceSVG renders a DOT graph to SVG using Graphviz.
func TraceSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin with pixel dimensions matching its view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
