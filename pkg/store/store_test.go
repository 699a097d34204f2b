package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func sampleLayout(id string) *Layout {
	return &Layout{
		ID:     id,
		Name:   "Operations",
		Config: grid.DefaultConfig(),
		Widgets: []grid.Widget{
			{ID: "cpu", Rect: grid.Rect{X: 0, Y: 0, Width: 6, Height: 4}},
			{ID: "mem", Rect: grid.Rect{X: 6, Y: 0, Width: 6, Height: 4}, MinRows: 3},
		},
	}
}

// testStore runs the behavior every backend must share.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrCodeNotFound), "got %v", err)
	})

	t.Run("put and get", func(t *testing.T) {
		l := sampleLayout("ops")
		require.NoError(t, s.Put(ctx, l))
		assert.False(t, l.UpdatedAt.IsZero(), "Put should stamp UpdatedAt")

		got, err := s.Get(ctx, "ops")
		require.NoError(t, err)
		assert.Equal(t, l.Name, got.Name)
		assert.Equal(t, l.Config, got.Config)
		assert.Equal(t, l.Widgets, got.Widgets)
		assert.True(t, l.UpdatedAt.Equal(got.UpdatedAt), "UpdatedAt %v, want %v", got.UpdatedAt, l.UpdatedAt)
	})

	t.Run("put replaces", func(t *testing.T) {
		l := sampleLayout("ops")
		l.Widgets = l.Widgets[:1]
		require.NoError(t, s.Put(ctx, l))
		got, err := s.Get(ctx, "ops")
		require.NoError(t, err)
		assert.Len(t, got.Widgets, 1)
	})

	t.Run("list natural order", func(t *testing.T) {
		for _, id := range []string{"board10", "board2", "board1"} {
			require.NoError(t, s.Put(ctx, sampleLayout(id)))
		}
		ids, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"board1", "board2", "board10", "ops"}, ids)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "ops"))
		_, err := s.Get(ctx, "ops")
		assert.True(t, errs.Is(err, errs.ErrCodeNotFound), "got %v", err)
		assert.NoError(t, s.Delete(ctx, "ops"), "deleting a missing layout is not an error")
	})

	t.Run("invalid id", func(t *testing.T) {
		err := s.Put(ctx, sampleLayout("../escape"))
		assert.True(t, errs.Is(err, errs.ErrCodeInvalidID), "got %v", err)
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	l := sampleLayout("ops")
	require.NoError(t, s.Put(ctx, l))
	l.Widgets[0].Rect.X = 12

	got, err := s.Get(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Widgets[0].Rect.X, "store must not alias caller data")
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, dir, s.Path())
	testStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Backend: BackendFile, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig), "got %v", err)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := sampleLayout("ops")
	require.NoError(t, WriteFile(path, l))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, l.Widgets, got.Widgets)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Layout)
		wantCode errs.Code
	}{
		{"valid", func(*Layout) {}, ""},
		{"bad id", func(l *Layout) { l.ID = "" }, errs.ErrCodeInvalidID},
		{"overlap", func(l *Layout) { l.Widgets[1].Rect.X = 3 }, errs.ErrCodePositionOccupied},
		{"zero config uses defaults", func(l *Layout) { l.Config = grid.Config{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleLayout("ops")
			tt.mutate(l)
			assert.Equal(t, tt.wantCode, errs.GetCode(l.Validate()))
		})
	}
}
