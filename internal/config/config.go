// Package config loads the dashgrid configuration file.
//
// The file is TOML with one section per concern:
//
//	[grid]
//	max_columns = 24
//	max_rows = 64
//
//	[board]
//	pad_rows = 2
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
//	[cache]
//	enabled = true
//
// Missing keys keep their defaults; the result is validated as a whole.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/store"
)

const appName = "dashgrid"

// Config is the complete configuration.
type Config struct {
	Grid   grid.Config  `toml:"grid"`
	Board  Board        `toml:"board"`
	Store  store.Config `toml:"store"`
	Server Server       `toml:"server"`
	Cache  Cache        `toml:"cache"`
}

// Board configures hosted dashboards.
type Board struct {
	// PadRows is the number of free rows kept below the active widget
	// during a gesture.
	PadRows int `toml:"pad_rows"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Cache configures the render cache.
type Cache struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the cache directory.
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:  grid.DefaultConfig(),
		Board: Board{PadRows: 2},
		Store: store.Config{Backend: store.BackendFile},
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Cache: Cache{Enabled: true},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("[grid]: %w", err)
	}
	if c.Board.PadRows < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "[board]: pad_rows cannot be negative")
	}
	switch c.Store.Backend {
	case "", store.BackendMemory, store.BackendFile:
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "[store]: redis_addr is required for the redis backend")
		}
	case store.BackendMongo:
		if c.Store.MongoURI == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "[store]: mongo_uri is required for the mongo backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "[store]: unknown backend %q", c.Store.Backend)
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "[server]: addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "[server]: timeouts cannot be negative")
	}
	return nil
}

// Load reads the configuration from path on top of the defaults. An empty
// path reads the default file, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	cfg.Grid = cfg.Grid.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/dashgrid/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the render cache directory: the configured one, or
// $XDG_CACHE_HOME/dashgrid (~/.cache/dashgrid).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
