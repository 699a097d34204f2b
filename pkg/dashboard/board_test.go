package dashboard

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/store"
)

func testConfig() grid.Config {
	return grid.Config{MaxColumns: 12, MaxRows: 10, WidgetMinRows: 2, WidgetMaxRows: 10}
}

func rect(x, y, w, h int) grid.Rect {
	return grid.Rect{X: x, Y: y, Width: w, Height: h}
}

func newBoard(t *testing.T, widgets ...grid.Widget) *Board {
	t.Helper()
	b, err := New("ops", "Operations", testConfig(), widgets, WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return b
}

func committed(b *Board) map[string]grid.Rect {
	out := map[string]grid.Rect{}
	for _, w := range b.Widgets() {
		out[w.ID] = w.Rect
	}
	return out
}

func TestNew(t *testing.T) {
	b, err := New("", "", testConfig(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID(), "empty id should be generated")

	_, err = New("../etc", "", testConfig(), nil)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidID), "got %v", err)

	_, err = New("ops", "", testConfig(), []grid.Widget{
		{ID: "a", Rect: rect(0, 0, 4, 2)},
		{ID: "b", Rect: rect(2, 0, 4, 2)},
	})
	assert.True(t, errs.Is(err, errs.ErrCodePositionOccupied), "got %v", err)
}

func TestFromLayoutRoundTrip(t *testing.T) {
	l := &store.Layout{
		ID:      "ops",
		Name:    "Operations",
		Config:  testConfig(),
		Widgets: []grid.Widget{{ID: "cpu", Rect: rect(0, 0, 6, 4)}},
	}
	b, err := FromLayout(l)
	require.NoError(t, err)
	got := b.Layout()
	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.Name, got.Name)
	assert.Equal(t, l.Config, got.Config)
	assert.Equal(t, l.Widgets, got.Widgets)
}

func TestAddWidget(t *testing.T) {
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 6, 2)})

	w, err := b.AddWidget(grid.Size{Width: 6, Height: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, rect(6, 0, 6, 2), w.Rect)
	assert.NotEmpty(t, w.ID)

	at := grid.Point{X: 0, Y: 2}
	w, err = b.AddWidget(grid.Size{Width: 4, Height: 3}, &at)
	require.NoError(t, err)
	assert.Equal(t, rect(0, 2, 4, 3), w.Rect)
	assert.Len(t, b.Widgets(), 3)

	_, err = b.AddWidget(grid.Size{}, nil)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput), "got %v", err)
}

func TestAddWidgetFull(t *testing.T) {
	b, err := New("ops", "", grid.Config{MaxColumns: 12, MaxRows: 4, WidgetMinRows: 2, WidgetMaxRows: 4},
		[]grid.Widget{{ID: "all", Rect: rect(0, 0, 12, 4)}})
	require.NoError(t, err)

	_, err = b.AddWidget(grid.Size{Width: 2, Height: 2}, nil)
	assert.True(t, errs.Is(err, errs.ErrCodeDashboardFull), "got %v", err)
}

func TestRemoveWidget(t *testing.T) {
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 6, 2)})
	require.NoError(t, b.RemoveWidget("cpu"))
	assert.Empty(t, b.Widgets())

	err := b.RemoveWidget("cpu")
	assert.True(t, errs.Is(err, errs.ErrCodeWidgetNotFound), "got %v", err)
}

func TestDragLifecycle(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	require.NoError(t, b.BeginDrag(ctx, "cpu"))
	info, ok := b.Gesture()
	require.True(t, ok)
	assert.Equal(t, GestureInfo{Kind: KindDrag, Widget: "cpu", Rect: rect(0, 0, 4, 2)}, info)

	u, moved, err := b.UpdateDrag(ctx, rect(4, 0, 4, 2))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, rect(4, 0, 4, 2), u.Rect)

	// Readers see the committed arrangement until the drag ends.
	assert.Equal(t, rect(0, 0, 4, 2), committed(b)["cpu"])
	assert.Equal(t, rect(4, 0, 4, 2), b.Working()["cpu"])

	final, err := b.EndDrag(ctx)
	require.NoError(t, err)
	assert.Equal(t, rect(4, 0, 4, 2), final.Rect)
	assert.Equal(t, rect(4, 0, 4, 2), committed(b)["cpu"])

	_, ok = b.Gesture()
	assert.False(t, ok)
}

func TestCancelDrag(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	require.NoError(t, b.BeginDrag(ctx, "cpu"))
	_, _, err := b.UpdateDrag(ctx, rect(4, 4, 4, 2))
	require.NoError(t, err)

	u, err := b.CancelDrag(ctx)
	require.NoError(t, err)
	assert.Equal(t, rect(0, 0, 4, 2), u.Rect)
	assert.Equal(t, rect(0, 0, 4, 2), committed(b)["cpu"])

	assert.Equal(t, grid.Update{}, b.Cancel(ctx), "cancel without gesture is a no-op")
}

func TestResizeLifecycle(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t,
		grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)},
		grid.Widget{ID: "mem", Rect: rect(4, 0, 4, 2)},
	)

	require.NoError(t, b.BeginResize(ctx, "cpu", grid.EdgeRight))
	u, ok, err := b.UpdateResize(ctx, rect(0, 0, 6, 2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rect(0, 0, 6, 2), u.Rect)
	assert.Equal(t, rect(6, 0, 4, 2), u.Changes["mem"])

	_, err = b.EndResize(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]grid.Rect{
		"cpu": rect(0, 0, 6, 2),
		"mem": rect(6, 0, 4, 2),
	}, committed(b))
}

func TestGestureExclusion(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t,
		grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)},
		grid.Widget{ID: "mem", Rect: rect(4, 0, 4, 2)},
	)
	require.NoError(t, b.BeginDrag(ctx, "cpu"))

	tests := []struct {
		name string
		fn   func() error
		code errs.Code
	}{
		{"second drag", func() error { return b.BeginDrag(ctx, "mem") }, errs.ErrCodeGestureActive},
		{"resize", func() error { return b.BeginResize(ctx, "mem", grid.EdgeBottom) }, errs.ErrCodeGestureActive},
		{"add", func() error { _, err := b.AddWidget(grid.Size{Width: 2, Height: 2}, nil); return err }, errs.ErrCodeGestureActive},
		{"place", func() error { return b.PlaceWidget(grid.Widget{ID: "x", Rect: rect(0, 6, 2, 2)}) }, errs.ErrCodeGestureActive},
		{"remove", func() error { return b.RemoveWidget("mem") }, errs.ErrCodeGestureActive},
		{"wrong kind update", func() error { _, _, err := b.UpdateResize(ctx, rect(0, 0, 6, 2)); return err }, errs.ErrCodeNoGesture},
		{"wrong kind end", func() error { _, err := b.EndResize(ctx); return err }, errs.ErrCodeNoGesture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			assert.True(t, errs.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}

	_, err := b.CancelDrag(ctx)
	require.NoError(t, err)
	_, err = b.EndDrag(ctx)
	assert.True(t, errs.Is(err, errs.ErrCodeNoGesture), "got %v", err)
}

func TestBeginUnknownWidget(t *testing.T) {
	b := newBoard(t)
	err := b.BeginDrag(context.Background(), "nope")
	assert.True(t, errs.Is(err, errs.ErrCodeWidgetNotFound), "got %v", err)
	_, ok := b.Gesture()
	assert.False(t, ok, "failed begin must not leave a gesture")
}

func TestRows(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})
	assert.Equal(t, 2, b.Rows())

	require.NoError(t, b.BeginDrag(ctx, "cpu"))
	assert.Equal(t, 4, b.Rows(), "begin reserves pad rows below the widget")

	_, _, err := b.UpdateDrag(ctx, rect(0, 4, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, 8, b.Rows())

	_, _, err = b.UpdateDrag(ctx, rect(0, 8, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, 10, b.Rows(), "reservation is capped at MaxRows")

	_, err = b.EndDrag(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Rows())

	b.ResetRows()
	assert.Equal(t, 10, b.Rows(), "occupied rows still count")
}

func TestPlaceholder(t *testing.T) {
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	r, ok := b.Placeholder(grid.Point{X: 8, Y: 0})
	require.True(t, ok)
	assert.True(t, r.Contains(grid.Point{X: 8, Y: 0}))
	assert.True(t, b.IsFree(r))

	_, ok = b.Placeholder(grid.Point{X: 1, Y: 1})
	assert.False(t, ok, "occupied cell has no placeholder")

	r, ok = b.PlaceholderSpan(grid.Point{X: 4, Y: 0}, grid.Point{X: 7, Y: 1})
	require.True(t, ok)
	assert.Equal(t, rect(4, 0, 4, 2), r)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	require.NoError(t, b.Save(ctx, s))
	got, err := s.Get(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, b.Widgets(), got.Widgets)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	require.NoError(t, b.BeginDrag(ctx, "cpu"))
	assert.True(t, errs.Is(b.Close(), errs.ErrCodeGestureActive))
	b.Cancel(ctx)

	require.NoError(t, b.Close())
	assert.True(t, errs.Is(b.Save(ctx, s), errs.ErrCodeNotFound))
	_, err := s.Get(ctx, "ops")
	assert.True(t, errs.Is(err, errs.ErrCodeNotFound))

	_, err = b.AddWidget(grid.Size{Width: 2, Height: 2}, nil)
	assert.True(t, errs.Is(err, errs.ErrCodeNotFound))
	assert.True(t, errs.Is(b.BeginDrag(ctx, "cpu"), errs.ErrCodeNotFound))
}

type recordingHooks struct {
	observability.NoopGestureHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnGestureStart(_ context.Context, _, kind, _ string) {
	h.record("start:" + kind)
}

func (h *recordingHooks) OnGestureUpdate(_ context.Context, _, kind, _ string, _ int, accepted bool, _ time.Duration) {
	if accepted {
		h.record("update:" + kind)
	} else {
		h.record("noop:" + kind)
	}
}

func (h *recordingHooks) OnGestureEnd(_ context.Context, _, kind, _ string, committed bool, _ error) {
	if committed {
		h.record("commit:" + kind)
	} else {
		h.record("cancel:" + kind)
	}
}

func TestGestureHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetGestureHooks(h)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})

	require.NoError(t, b.BeginDrag(ctx, "cpu"))
	_, _, _ = b.UpdateDrag(ctx, rect(4, 0, 4, 2))
	_, _, _ = b.UpdateDrag(ctx, rect(4, 0, 4, 2))
	_, err := b.EndDrag(ctx)
	require.NoError(t, err)

	require.NoError(t, b.BeginResize(ctx, "cpu", grid.EdgeBottom))
	_, err = b.CancelResize(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start:drag", "update:drag", "noop:drag", "commit:drag",
		"start:resize", "cancel:resize",
	}, h.events)
}

func TestConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, grid.Widget{ID: "cpu", Rect: rect(0, 0, 4, 2)})
	require.NoError(t, b.BeginDrag(ctx, "cpu"))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Rows()
			_ = b.Widgets()
			_, _, _ = b.UpdateDrag(ctx, rect(i, 0, 4, 2))
		}()
	}
	wg.Wait()

	_, err := b.EndDrag(ctx)
	require.NoError(t, err)
}
