// Package server exposes dashboards over an HTTP JSON API.
//
// Boards are loaded from the store on first use and kept in memory, so a
// gesture spans several requests against the same [dashboard.Board]. Every
// committed change (widget add/remove, ended gesture) is written back to the
// store before the response is sent.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashgrid/pkg/dashboard"
	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
	"github.com/matzehuels/dashgrid/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Grid is the configuration of boards created without one.
	Grid grid.Config
	// PadRows is passed to every hosted board.
	PadRows int
	// Renderer draws board images. Nil renders without a cache.
	Renderer *render.Runner
	// Logger defaults to log.Default().
	Logger *log.Logger
	// RequestTimeout bounds every request. Zero selects one minute.
	RequestTimeout time.Duration
}

// Server hosts boards backed by a store.
type Server struct {
	store    store.Store
	grid     grid.Config
	padRows  int
	renderer *render.Runner
	logger   *log.Logger
	timeout  time.Duration

	mu     sync.Mutex
	boards map[string]*dashboard.Board
}

// New creates a server over st.
func New(st store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewRunner(nil, nil, opts.Logger)
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = time.Minute
	}
	return &Server{
		store:    st,
		grid:     opts.Grid.WithDefaults(),
		padRows:  opts.PadRows,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		timeout:  opts.RequestTimeout,
		boards:   make(map[string]*dashboard.Board),
	}
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.observe)

	s.registerRoutes(r)
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errc
	return nil
}

// board returns the hosted board, loading it from the store on first use.
func (s *Server) board(ctx context.Context, id string) (*dashboard.Board, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.boards[id]; ok {
		return b, nil
	}
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := dashboard.FromLayout(l, s.boardOptions()...)
	if err != nil {
		return nil, err
	}
	s.boards[id] = b
	return b, nil
}

// create registers a new board and persists it.
func (s *Server) create(ctx context.Context, id, name string, cfg *grid.Config) (*dashboard.Board, error) {
	c := s.grid
	if cfg != nil {
		c = cfg.WithDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	b, err := dashboard.New(id, name, c, nil, s.boardOptions()...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[b.ID()]; ok {
		return nil, errs.New(errs.ErrCodeInvalidInput, "board %q already exists", b.ID())
	}
	if _, err := s.store.Get(ctx, b.ID()); err == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "board %q already exists", b.ID())
	} else if !errs.Is(err, errs.ErrCodeNotFound) {
		return nil, err
	}
	if err := b.Save(ctx, s.store); err != nil {
		return nil, err
	}
	s.boards[b.ID()] = b
	return b, nil
}

// drop forgets and deletes a board.
func (s *Server) drop(ctx context.Context, id string) error {
	if err := errs.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	if ok {
		// Close waits for in-flight saves, so none lands after the delete.
		if err := b.Close(); err != nil {
			return err
		}
		delete(s.boards, id)
	}
	return s.store.Delete(ctx, id)
}

func (s *Server) boardOptions() []dashboard.Option {
	return []dashboard.Option{
		dashboard.WithLogger(s.logger),
		dashboard.WithPadRows(s.padRows),
	}
}
