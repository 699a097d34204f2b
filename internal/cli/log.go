package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/observability"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that writes to w
// and filters messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "replayed 3 gestures (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports store and gesture events to a logger. serve installs it
// so operators see what the API does at debug level.
type logHooks struct {
	observability.NoopGestureHooks
	observability.NoopStoreHooks
	logger *log.Logger
}

func (h logHooks) OnGestureStart(_ context.Context, board, kind, widget string) {
	h.logger.Debug("gesture start", "board", board, "kind", kind, "widget", widget)
}

func (h logHooks) OnGestureEnd(_ context.Context, board, kind, widget string, committed bool, err error) {
	if err != nil {
		h.logger.Warn("gesture failed", "board", board, "kind", kind, "widget", widget, "err", err)
		return
	}
	h.logger.Debug("gesture end", "board", board, "kind", kind, "widget", widget, "committed", committed)
}

func (h logHooks) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("store op failed", "backend", backend, "op", op, "duration", d, "err", err)
		return
	}
	h.logger.Debug("store op", "backend", backend, "op", op, "duration", d)
}
