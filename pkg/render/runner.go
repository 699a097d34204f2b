package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Runner renders layouts and traces through a cache.
//
// It holds no per-render state, so one Runner can serve concurrent callers.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Scoped returns a runner sharing r's cache whose keys carry prefix.
func (r *Runner) Scoped(prefix string) *Runner {
	return &Runner{Cache: r.Cache, Keyer: cache.NewScopedKeyer(r.Keyer, prefix), Logger: r.Logger}
}

// LayoutHash hashes the parts of a layout that affect its rendering.
func LayoutHash(cfg grid.Config, widgets []grid.Widget) (string, error) {
	data, err := json.Marshal(struct {
		Config  grid.Config   `json:"config"`
		Widgets []grid.Widget `json:"widgets"`
	}{cfg, widgets})
	if err != nil {
		return "", fmt.Errorf("serialize layout for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// PNGWithCacheInfo renders a layout PNG and reports whether it came from
// the cache.
func (r *Runner) PNGWithCacheInfo(ctx context.Context, cfg grid.Config, widgets []grid.Widget, opts PNGOptions) ([]byte, bool, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, false, err
	}
	hash, err := LayoutHash(cfg, widgets)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:   "png",
		CellSize: opts.CellSize,
		Rows:     opts.Rows,
		Grid:     opts.Grid,
	})

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		r.Logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := LayoutPNG(&buf, cfg, widgets, opts); err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	r.Logger.Info("rendered layout", "widgets", len(widgets), "bytes", buf.Len(), "duration", time.Since(start))
	return buf.Bytes(), false, nil
}

// PNG renders a layout PNG through the cache.
func (r *Runner) PNG(ctx context.Context, cfg grid.Config, widgets []grid.Widget, opts PNGOptions) ([]byte, error) {
	data, _, err := r.PNGWithCacheInfo(ctx, cfg, widgets, opts)
	return data, err
}

// TraceSVG renders the trace of a gesture script replayed on a layout.
// scriptHash identifies the script; the trace itself is only computed on
// a miss, by calling trace.
func (r *Runner) TraceSVG(ctx context.Context, layoutHash, scriptHash string, opts TraceOptions, trace func() (grid.Trace, error)) ([]byte, bool, error) {
	key := r.Keyer.TraceKey(layoutHash, scriptHash, fmt.Sprintf("svg:%t:%s", opts.Detailed, opts.Active))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	t, err := trace()
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	svg, err := TraceSVG(ctx, TraceDOT(t, opts))
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, svg, cache.TTLTrace); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	r.Logger.Info("rendered trace", "pushes", len(t), "duration", time.Since(start))
	return svg, false, nil
}
