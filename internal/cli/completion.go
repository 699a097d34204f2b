package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for dashgrid on stdout.

Layout arguments complete to .json files and gesture scripts to .toml files.

  bash:        source <(dashgrid completion bash)
  zsh:         dashgrid completion zsh > "${fpath[1]}/_dashgrid"
  fish:        dashgrid completion fish > ~/.config/fish/completions/dashgrid.fish
  powershell:  dashgrid completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeFiles completes positional arguments to files with the given
// extension per position. Positions past the end get no completion.
func completeFiles(exts ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= len(exts) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{exts[len(args)]}, cobra.ShellCompDirectiveFilterFileExt
	}
}
