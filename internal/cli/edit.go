package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/store"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "edit <layout.json>",
		Short:             "Edit a layout interactively in the terminal",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles("json"),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = input
			}
			b, err := c.loadBoard(input)
			if err != nil {
				return err
			}

			// Board logging would corrupt the terminal UI.
			c.SetLogLevel(LogError)

			m := NewEditorModel(cmd.Context(), b)
			m.Save = func() error { return store.WriteFile(output, b.Layout()) }

			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if em, ok := final.(EditorModel); ok && em.Saved {
				printSuccess("Saved %s", StyleValue.Render(b.ID()))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by the save key (default: the input file)")

	return cmd
}
