// Package cache stores rendered layout artifacts.
//
// Keys are derived from a SHA-256 hash of the layout plus the render
// options, so an unchanged layout never renders twice. Two backends are
// provided: [FileCache] for the CLI and [NullCache] when caching is off.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "png"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources.
	Close() error
}

// Cache TTLs. Artifacts are keyed by content, so they only expire to bound
// disk usage.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLTrace    = 24 * time.Hour
)
