// Package store persists dashboard layouts.
//
// The grid engine itself never persists anything; this package is the
// collaborator that saves committed arrangements between sessions. A
// [Layout] is one dashboard: its grid configuration and the committed
// rectangle of every widget.
//
// Backends:
//   - memory: in-process map, for tests and ephemeral servers
//   - file: one JSON file per layout in a directory, for the CLI
//   - redis: JSON values plus an ID set, for multi-instance servers
//   - mongo: one document per layout
//
// Use [Open] to pick a backend from configuration:
//
//	s, err := store.Open(ctx, store.Config{Backend: "file", Path: dir})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	l, err := s.Get(ctx, "ops")
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/maruel/natural"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

// Layout is a persisted dashboard.
type Layout struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	Config    grid.Config   `json:"config" bson:"config"`
	Widgets   []grid.Widget `json:"widgets" bson:"widgets"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// Validate checks the layout ID and that the widgets form a valid grid.
func (l *Layout) Validate() error {
	if err := errs.ValidateID(l.ID); err != nil {
		return err
	}
	_, err := l.Session()
	return err
}

// Session builds a grid session from the layout. Zero config fields take
// their defaults.
func (l *Layout) Session() (*grid.Session, error) {
	return grid.NewSession(l.Config.WithDefaults(), l.Widgets)
}

// Store is implemented by every layout backend.
type Store interface {
	// Get returns the layout with the given ID or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Layout, error)
	// Put creates or replaces a layout and stamps UpdatedAt.
	Put(ctx context.Context, l *Layout) error
	// Delete removes a layout. Deleting a missing layout is not an error.
	Delete(ctx context.Context, id string) error
	// List returns all layout IDs in natural order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend connections.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`

	// file
	Path string `toml:"path"`

	// redis
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`

	// mongo
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Open creates the backend named by cfg.Backend. An empty backend selects
// the memory store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Path)
	case BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.Prefix,
		})
	case BackendMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	}
	return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}

// ReadFile loads a layout from a JSON file.
func ReadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse layout %s", path)
	}
	return &l, nil
}

// WriteFile saves a layout as indented JSON.
func WriteFile(path string, l *Layout) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "layout %q not found", id)
}

func sortIDs(ids []string) []string {
	sort.Sort(natural.StringSlice(ids))
	return ids
}

func stamp(l *Layout) {
	l.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
}

// observe reports one backend operation to the store hooks.
func observe(ctx context.Context, backend, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, backend, op, time.Since(start), err)
}
