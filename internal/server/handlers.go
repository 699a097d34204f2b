package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dashgrid/pkg/buildinfo"
	"github.com/matzehuels/dashgrid/pkg/dashboard"
	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/render"
	"github.com/matzehuels/dashgrid/pkg/store"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Post("/", s.handleCreateBoard)

		r.Route("/{board}", func(r chi.Router) {
			r.Get("/", s.withBoard(s.handleGetBoard))
			r.Delete("/", s.handleDeleteBoard)
			r.Get("/render.png", s.withBoard(s.handleRender))

			r.Post("/widgets", s.withBoard(s.handleAddWidget))
			r.Delete("/widgets/{widget}", s.withBoard(s.handleRemoveWidget))

			r.Get("/free", s.withBoard(s.handleFree))
			r.Post("/accommodate", s.withBoard(s.handleAccommodate))
			r.Post("/placeholder", s.withBoard(s.handlePlaceholder))

			r.Post("/drag", s.withBoard(s.handleBeginDrag))
			r.Put("/drag", s.withBoard(s.handleUpdate(dashboard.KindDrag)))
			r.Post("/drag/end", s.withBoard(s.handleEnd(dashboard.KindDrag)))
			r.Post("/drag/cancel", s.withBoard(s.handleCancel(dashboard.KindDrag)))

			r.Post("/resize", s.withBoard(s.handleBeginResize))
			r.Put("/resize", s.withBoard(s.handleUpdate(dashboard.KindResize)))
			r.Post("/resize/end", s.withBoard(s.handleEnd(dashboard.KindResize)))
			r.Post("/resize/cancel", s.withBoard(s.handleCancel(dashboard.KindResize)))
		})
	})
}

type boardHandler func(w http.ResponseWriter, r *http.Request, b *dashboard.Board)

// withBoard resolves the {board} URL parameter.
func (s *Server) withBoard(h boardHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := s.board(r.Context(), chi.URLParam(r, "board"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		h(w, r, b)
	}
}

// persist saves b after a committed change. A board deleted meanwhile
// reports NOT_FOUND and is not written back.
func (s *Server) persist(ctx context.Context, b *dashboard.Board) error {
	err := b.Save(ctx, s.store)
	if errs.Is(err, errs.ErrCodeNotFound) {
		return err
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save board %s", b.ID())
	}
	return nil
}

// BoardResponse is the JSON view of a board.
type BoardResponse struct {
	*store.Layout
	Rows    int                    `json:"rows"`
	Gesture *dashboard.GestureInfo `json:"gesture,omitempty"`
	// Working holds the rectangles to draw while a gesture is in progress.
	Working map[string]grid.Rect `json:"working,omitempty"`
}

func boardResponse(b *dashboard.Board) BoardResponse {
	resp := BoardResponse{Layout: b.Layout(), Rows: b.Rows()}
	if g, ok := b.Gesture(); ok {
		resp.Gesture = &g
		resp.Working = b.Working()
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"boards": ids})
}

// CreateBoardRequest creates a board. An empty ID is generated.
type CreateBoardRequest struct {
	ID     string       `json:"id,omitempty"`
	Name   string       `json:"name"`
	Config *grid.Config `json:"config,omitempty"`
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req CreateBoardRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	b, err := s.create(r.Context(), req.ID, req.Name, req.Config)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.logger.Info("board created", "board", b.ID(), "name", req.Name)
	s.respondJSON(w, http.StatusCreated, boardResponse(b))
}

func (s *Server) handleGetBoard(w http.ResponseWriter, _ *http.Request, b *dashboard.Board) {
	s.respondJSON(w, http.StatusOK, boardResponse(b))
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board")
	if err := s.drop(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.logger.Info("board deleted", "board", id)
	w.WriteHeader(http.StatusNoContent)
}

// AddWidgetRequest adds a widget. With an ID the widget is placed exactly
// at X/Y; without one it is fitted at X/Y or at the first free position.
type AddWidgetRequest struct {
	ID      string `json:"id,omitempty"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	X       *int   `json:"x,omitempty"`
	Y       *int   `json:"y,omitempty"`
	MinRows int    `json:"min_rows,omitempty"`
	MaxRows int    `json:"max_rows,omitempty"`
}

func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	var req AddWidgetRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if (req.X == nil) != (req.Y == nil) {
		s.respondError(w, r, errs.New(errs.ErrCodeInvalidInput, "x and y must be given together"))
		return
	}

	var (
		widget grid.Widget
		err    error
	)
	if req.ID != "" {
		if req.X == nil {
			s.respondError(w, r, errs.New(errs.ErrCodeInvalidInput, "an explicit widget id needs x and y"))
			return
		}
		widget = grid.Widget{
			ID:      req.ID,
			Rect:    grid.Rect{X: *req.X, Y: *req.Y, Width: req.Width, Height: req.Height},
			MinRows: req.MinRows,
			MaxRows: req.MaxRows,
		}
		err = b.PlaceWidget(widget)
	} else {
		var at *grid.Point
		if req.X != nil {
			at = &grid.Point{X: *req.X, Y: *req.Y}
		}
		widget, err = b.AddWidget(grid.Size{Width: req.Width, Height: req.Height}, at)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.persist(r.Context(), b); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, widget)
}

func (s *Server) handleRemoveWidget(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	if err := b.RemoveWidget(chi.URLParam(r, "widget")); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.persist(r.Context(), b); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FitResponse reports a fitted rectangle.
type FitResponse struct {
	Found bool       `json:"found"`
	Rect  *grid.Rect `json:"rect,omitempty"`
}

func fit(r grid.Rect, ok bool) FitResponse {
	if !ok {
		return FitResponse{}
	}
	return FitResponse{Found: true, Rect: &r}
}

func (s *Server) handleFree(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	width, err1 := strconv.Atoi(r.URL.Query().Get("width"))
	height, err2 := strconv.Atoi(r.URL.Query().Get("height"))
	if err1 != nil || err2 != nil || width < 1 || height < 1 {
		s.respondError(w, r, errs.New(errs.ErrCodeInvalidInput, "width and height must be positive integers"))
		return
	}
	s.respondJSON(w, http.StatusOK, fit(b.FindFree(grid.Size{Width: width, Height: height})))
}

// AccommodateRequest asks for the best free rectangle near Rect.
type AccommodateRequest struct {
	Rect     grid.Rect `json:"rect"`
	ReverseX bool      `json:"reverse_x"`
	ReverseY bool      `json:"reverse_y"`
}

func (s *Server) handleAccommodate(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	var req AccommodateRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, fit(b.Accommodate(req.Rect, grid.AccommodateOptions{
		ReverseX: req.ReverseX,
		ReverseY: req.ReverseY,
	})))
}

// PlaceholderRequest asks for the new-widget placeholder under Cell, or for
// the span from Cell to To when To is set.
type PlaceholderRequest struct {
	Cell grid.Point  `json:"cell"`
	To   *grid.Point `json:"to,omitempty"`
}

func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	var req PlaceholderRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.To != nil {
		s.respondJSON(w, http.StatusOK, fit(b.PlaceholderSpan(req.Cell, *req.To)))
		return
	}
	s.respondJSON(w, http.StatusOK, fit(b.Placeholder(req.Cell)))
}

// BeginRequest starts a gesture. Edges applies to resizes only.
type BeginRequest struct {
	Widget string     `json:"widget"`
	Edges  grid.Edges `json:"edges,omitempty"`
}

func (s *Server) handleBeginDrag(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	var req BeginRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := b.BeginDrag(r.Context(), req.Widget); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, boardResponse(b))
}

func (s *Server) handleBeginResize(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	var req BeginRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := b.BeginResize(r.Context(), req.Widget, req.Edges); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, boardResponse(b))
}

// UpdateRequest moves the pointer of the active gesture.
type UpdateRequest struct {
	Rect grid.Rect `json:"rect"`
}

// UpdateResponse is the outcome of a gesture step.
type UpdateResponse struct {
	grid.Update
	Changed bool `json:"changed"`
	Rows    int  `json:"rows"`
}

func (s *Server) handleUpdate(kind string) boardHandler {
	return func(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
		var req UpdateRequest
		if err := decode(w, r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
		var (
			u       grid.Update
			changed bool
			err     error
		)
		if kind == dashboard.KindResize {
			u, changed, err = b.UpdateResize(r.Context(), req.Rect)
		} else {
			u, changed, err = b.UpdateDrag(r.Context(), req.Rect)
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, UpdateResponse{Update: u, Changed: changed, Rows: b.Rows()})
	}
}

func (s *Server) handleEnd(kind string) boardHandler {
	return func(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
		var (
			u   grid.Update
			err error
		)
		if kind == dashboard.KindResize {
			u, err = b.EndResize(r.Context())
		} else {
			u, err = b.EndDrag(r.Context())
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := s.persist(r.Context(), b); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, UpdateResponse{Update: u, Changed: true, Rows: b.Rows()})
	}
}

func (s *Server) handleCancel(kind string) boardHandler {
	return func(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
		var (
			u   grid.Update
			err error
		)
		if kind == dashboard.KindResize {
			u, err = b.CancelResize(r.Context())
		} else {
			u, err = b.CancelDrag(r.Context())
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, UpdateResponse{Update: u, Changed: len(u.Changes) > 0, Rows: b.Rows()})
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request, b *dashboard.Board) {
	opts := render.PNGOptions{Grid: r.URL.Query().Get("grid") == "true"}
	if v := r.URL.Query().Get("cell"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, r, errs.New(errs.ErrCodeInvalidInput, "cell must be an integer"))
			return
		}
		opts.CellSize = n
	}
	data, hit, err := s.renderer.Scoped("board:"+b.ID()+":").PNGWithCacheInfo(r.Context(), b.Config(), b.Widgets(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(data)
}
