// Package cli implements the dashgrid command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/internal/config"
	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/render"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dashgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's pre-run from ConfigPath.
	Config     config.Config
	ConfigPath string
}

// New creates a new CLI instance with the built-in configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dashgrid arranges dashboard widgets on a collision-free grid",
		Long:         `Dashgrid keeps dashboard widgets on a bounded integer grid without overlaps. It places new widgets, replays drag and resize gestures, renders layouts and serves boards over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/dashgrid/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file and attaches the logger to the
// command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	c.Logger.Debug("config loaded", "path", c.ConfigPath, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a render runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*render.Runner, error) {
	ch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return render.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the configured layout store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, c.Config.Store)
}
