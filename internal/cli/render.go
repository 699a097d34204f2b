package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
)

type renderOpts struct {
	output   string
	cellSize int
	rows     int
	grid     bool
	trace    string
	detailed bool
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <layout.json>",
		Short: "Render a layout as PNG or a gesture trace as SVG",
		Long: `Render a layout to a PNG image.

With --trace the gesture script is replayed on the layout and the resulting
push trace (which widget displaced which, and how) is rendered as an SVG
graph instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.trace != "" {
				return c.runRenderTrace(cmd, args[0], opts)
			}
			return c.runRenderPNG(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().IntVar(&opts.cellSize, "cell", render.DefaultCellSize, "cell size in pixels")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "rows to draw (default: down to the lowest widget)")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw cell lines")
	cmd.Flags().StringVar(&opts.trace, "trace", "", "gesture script whose push trace to render")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label trace edges with the resulting rectangles")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRenderPNG(cmd *cobra.Command, input string, opts renderOpts) error {
	b, err := c.loadBoard(input)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	data, hit, err := runner.PNGWithCacheInfo(cmd.Context(), b.Config(), b.Widgets(), render.PNGOptions{
		CellSize: opts.cellSize,
		Rows:     opts.rows,
		Grid:     opts.grid,
	})
	if err != nil {
		return err
	}
	out := basePath(opts.output, input) + ".png"
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered %s", StyleValue.Render(b.ID()))
	printCacheStatus(hit)
	printFile(out)
	return nil
}

func (c *CLI) runRenderTrace(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	b, err := c.loadBoard(input)
	if err != nil {
		return err
	}
	s, scriptData, err := loadScript(opts.trace)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	layoutHash, err := render.LayoutHash(b.Config(), b.Widgets())
	if err != nil {
		return err
	}

	traceOpts := render.TraceOptions{Detailed: opts.detailed}
	if len(s.Gestures) == 1 {
		traceOpts.Active = s.Gestures[0].Widget
	}
	var pushes int
	svg, hit, err := runner.TraceSVG(ctx, layoutHash, cache.Hash(scriptData), traceOpts, func() (grid.Trace, error) {
		res, err := dashboard.Replay(ctx, b, s)
		pushes = len(res.Trace)
		return res.Trace, err
	})
	if err != nil {
		return err
	}

	out := basePath(opts.output, input) + ".trace.svg"
	if opts.output != "" {
		out = opts.output
	}
	if err := os.WriteFile(out, svg, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered trace of %s gestures", StyleNumber.Render(fmt.Sprint(len(s.Gestures))))
	if !hit {
		printDetail("%d pushes", pushes)
	}
	printCacheStatus(hit)
	printFile(out)
	return nil
}
