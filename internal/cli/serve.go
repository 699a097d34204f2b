package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/server"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}

			hooks := logHooks{logger: c.Logger}
			observability.SetGestureHooks(hooks)
			observability.SetStoreHooks(hooks)
			defer observability.Reset()

			srv := server.New(st, server.Options{
				Grid:     c.Config.Grid,
				PadRows:  c.Config.Board.PadRows,
				Renderer: runner,
				Logger:   c.Logger,
			})
			printInfo("Serving on %s (store: %s)", StyleValue.Render(addr), c.Config.Store.Backend)
			return srv.Run(ctx, addr, c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout, c.Config.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
