package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	"github.com/matzehuels/dashgrid/pkg/store"
)

type replayOpts struct {
	output string
	dryRun bool
	show   bool
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay <layout.json> <script.toml>",
		Short: "Replay recorded drag and resize gestures on a layout",
		Long: `Replay a TOML gesture script against a layout and write the result.

A script is a list of gestures, each with the pointer rectangles it visits:

  [[gesture]]
  kind = "drag"
  widget = "cpu"

  [[gesture.step]]
  x = 6
  y = 0
  width = 6
  height = 4`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeFiles("json", "toml"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplay(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overwrite the layout)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "do not write the result")
	cmd.Flags().BoolVar(&opts.show, "show", false, "draw the resulting layout")

	return cmd
}

func loadScript(path string) (*dashboard.Script, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := dashboard.ParseScript(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, data, nil
}

func (c *CLI) runReplay(cmd *cobra.Command, input, scriptPath string, opts replayOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	b, err := c.loadBoard(input)
	if err != nil {
		return err
	}
	s, _, err := loadScript(scriptPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := dashboard.Replay(ctx, b, s)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("replayed %d gestures", res.Gestures))

	printSuccess("Replayed %s gestures", StyleNumber.Render(fmt.Sprint(res.Gestures)))
	printDetail("%d updates · %d committed · %d pushes", res.Updates, res.Committed, len(res.Trace))
	if opts.show {
		fmt.Println()
		printBoard(b)
	}

	if opts.dryRun {
		return nil
	}
	out := opts.output
	if out == "" {
		out = input
	}
	if err := store.WriteFile(out, b.Layout()); err != nil {
		return err
	}
	printFile(out)
	return nil
}
