package cache

import (
	"context"
	"time"

	"github.com/matzehuels/dashgrid/pkg/observability"
)

// NullCache is used when caching is disabled: every Get misses and Set
// discards. Misses are still reported to the cache hooks so render counts
// stay comparable with the file cache.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
