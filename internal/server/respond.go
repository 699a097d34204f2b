package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/observability"
)

const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidRect, errs.ErrCodeInvalidID:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeWidgetNotFound:
		return http.StatusNotFound
	case errs.ErrCodeDuplicateWidget, errs.ErrCodePositionOccupied, errs.ErrCodeDashboardFull,
		errs.ErrCodeGestureActive, errs.ErrCodeNoGesture, errs.ErrCodeGestureFinished:
		return http.StatusConflict
	case errs.ErrCodeStorage:
		return http.StatusBadGateway
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "code", code)
	}
	s.respondJSON(w, status, errorBody{Code: code, Message: errs.UserMessage(err)})
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// observe reports requests to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", status,
			"duration", d, "request_id", middleware.GetReqID(r.Context()))
	})
}
