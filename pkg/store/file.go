package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// FileStore is a file-based layout store for CLI applications.
// Layouts are stored as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based layout store.
// If baseDir is empty, defaults to ~/.config/dashgrid/layouts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "dashgrid", "layouts")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) layoutPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, id string) (l *Layout, err error) {
	defer func(start time.Time) { observe(ctx, BackendFile, "get", start, err) }(time.Now())

	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.layoutPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read layout file")
	}

	l = new(Layout)
	if err := json.Unmarshal(data, l); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "parse layout %q", id)
	}
	return l, nil
}

func (s *FileStore) Put(ctx context.Context, l *Layout) (err error) {
	defer func(start time.Time) { observe(ctx, BackendFile, "put", start, err) }(time.Now())

	if err := errs.ValidateID(l.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(l)
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "marshal layout")
	}

	// Write through a temp file so readers never see a partial layout.
	tmp := s.layoutPath(l.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "write layout file")
	}
	if err := os.Rename(tmp, s.layoutPath(l.ID)); err != nil {
		os.Remove(tmp)
		return errs.Wrap(errs.ErrCodeStorage, err, "replace layout file")
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe(ctx, BackendFile, "delete", start, err) }(time.Now())

	if err := errs.ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.layoutPath(id)); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeStorage, err, "remove layout file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) (ids []string, err error) {
	defer func(start time.Time) { observe(ctx, BackendFile, "list", start, err) }(time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read layout dir")
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return sortIDs(ids), nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
