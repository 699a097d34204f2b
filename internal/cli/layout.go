package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// loadBoard reads a layout file into a board. Layouts without an ID are
// named after the file.
func (c *CLI) loadBoard(path string) (*dashboard.Board, error) {
	l, err := store.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if l.ID == "" {
		l.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if l.Config.MaxColumns == 0 {
		l.Config = c.Config.Grid
	}
	b, err := dashboard.FromLayout(l, dashboard.WithLogger(c.Logger), dashboard.WithPadRows(c.Config.Board.PadRows))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// basePath strips the extension from input unless output is given.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <layout.json>",
		Short:             "Draw a layout in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.loadBoard(args[0])
			if err != nil {
				return err
			}
			printBoard(b)
			return nil
		},
	}
}

func printBoard(b *dashboard.Board) {
	l := b.Layout()
	title := l.ID
	if l.Name != "" {
		title = l.Name
	}
	fmt.Println(StyleTitle.Render(title))
	printKeyValue("Grid", fmt.Sprintf("%d × %d", l.Config.MaxColumns, l.Config.MaxRows))
	printKeyValue("Widgets", StyleNumber.Render(fmt.Sprint(len(l.Widgets))))
	printKeyValue("Rows used", StyleNumber.Render(fmt.Sprint(b.Rows())))
	fmt.Println()

	if len(l.Widgets) == 0 {
		printInfo("No widgets")
		return
	}
	ids := make([]string, len(l.Widgets))
	for i, w := range l.Widgets {
		ids[i] = w.ID
	}
	fmt.Print(drawGrid(ids, b.Working(), l.Config.MaxColumns, max(1, b.Rows()), ""))
	fmt.Println()
	fmt.Println(widgetTable(l.Widgets))
}
