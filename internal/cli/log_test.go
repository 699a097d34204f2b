package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("x") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.done("replayed 2 gestures")
	assert.Contains(t, buf.String(), "replayed 2 gestures (")
}

func TestLoggerContext(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, log.Default(), loggerFromContext(ctx))

	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	assert.Same(t, l, loggerFromContext(withLogger(ctx, l)))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnGestureStart(ctx, "ops", "drag", "cpu")
	h.OnGestureEnd(ctx, "ops", "drag", "cpu", true, nil)
	h.OnStoreOp(ctx, "file", "put", time.Millisecond, errors.New("disk full"))

	out := buf.String()
	for _, want := range []string{"gesture start", "gesture end", "store op failed", "disk full"} {
		assert.Contains(t, out, want)
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnStoreOp(context.Background(), "file", "get", time.Millisecond, nil)
	assert.Zero(t, buf.Len())
}
