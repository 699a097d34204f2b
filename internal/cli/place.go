package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/store"
)

type placeOpts struct {
	width, height int
	x, y          int
	output        string
	write         bool
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{x: -1, y: -1}

	cmd := &cobra.Command{
		Use:   "place <layout.json>",
		Short: "Add a widget at the best free position",
		Long: `Add a widget to a layout.

Without --x/--y the widget takes the first free position in row-major order.
With them it is fitted as close to that cell as possible, shrinking when the
requested size does not fit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", grid.PlaceholderWidth, "widget width in columns")
	cmd.Flags().IntVar(&opts.height, "height", grid.PlaceholderHeight, "widget height in rows")
	cmd.Flags().IntVar(&opts.x, "x", -1, "preferred column")
	cmd.Flags().IntVar(&opts.y, "y", -1, "preferred row")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the layout file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to this file")
	cmd.MarkFlagsRequiredTogether("x", "y")

	return cmd
}

func (c *CLI) runPlace(input string, opts placeOpts) error {
	b, err := c.loadBoard(input)
	if err != nil {
		return err
	}

	var at *grid.Point
	if opts.x >= 0 && opts.y >= 0 {
		at = &grid.Point{X: opts.x, Y: opts.y}
	}
	w, err := b.AddWidget(grid.Size{Width: opts.width, Height: opts.height}, at)
	if errs.Is(err, errs.ErrCodeDashboardFull) {
		printWarning("%s", errs.UserMessage(err))
		return nil
	}
	if err != nil {
		return err
	}

	printSuccess("Placed %s at %s", StyleValue.Render(w.ID), StyleNumber.Render(w.Rect.String()))

	out := opts.output
	if out == "" && opts.write {
		out = input
	}
	if out == "" {
		return nil
	}
	if err := store.WriteFile(out, b.Layout()); err != nil {
		return err
	}
	printFile(out)
	return nil
}
