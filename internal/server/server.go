// Package server exposes the document operations over HTTP. One parameterized
// handler set serves every document type; the schema registry supplies the
// per-type differences. Authentication is handled upstream and is not part of
// this surface.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campusunion/documentdesk/internal/docerr"
	"github.com/campusunion/documentdesk/internal/models"
	"github.com/campusunion/documentdesk/internal/schema"
	"github.com/campusunion/documentdesk/internal/services"
)

// maxUploadBytes bounds multipart parsing; PDFs here are office documents,
// not scans of entire binders.
const maxUploadBytes = 32 << 20

// Server wires the services to their routes.
type Server struct {
	registry *schema.Registry
	locator  *services.Locator
	updater  *services.Updater
	attacher *services.Attacher
	creator  *services.Creator
	overview *services.Overview
	mailer   *services.Mailer

	mux *http.ServeMux
	now func() time.Time
}

// New creates a Server and registers all routes.
func New(registry *schema.Registry, locator *services.Locator, updater *services.Updater,
	attacher *services.Attacher, creator *services.Creator, overview *services.Overview,
	mailer *services.Mailer) *Server {
	s := &Server{
		registry: registry,
		locator:  locator,
		updater:  updater,
		attacher: attacher,
		creator:  creator,
		overview: overview,
		mailer:   mailer,
		mux:      http.NewServeMux(),
		now:      time.Now,
	}
	s.mux.HandleFunc("POST /api/find-doc", s.handleFind)
	s.mux.HandleFunc("POST /api/update-doc", s.handleUpdate)
	s.mux.HandleFunc("POST /api/update-status", s.handleUpdateStatus)
	s.mux.HandleFunc("POST /api/attach-doc", s.handleAttach)
	s.mux.HandleFunc("POST /api/log-doc", s.handleCreate)
	s.mux.HandleFunc("POST /api/schedule-mail", s.handleScheduleMail)
	s.mux.HandleFunc("GET /api/search-options", s.handleSearchOptions)
	s.mux.HandleFunc("GET /api/records", s.handleRecords)
	s.mux.HandleFunc("GET /api/records/export", s.handleRecordsExport)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestLog(s.mux)
}

// withRequestLog tags every request with an id and logs its outcome. The
// duration is measured on the wall clock, not s.now, which exists for
// domain timestamps and may be pinned in tests.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
		slog.Info("Request handled.",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"durationMs", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body.", "error", err)
	}
}

// writeError maps the error taxonomy to a status and a short message. The
// cause chain stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	kind := docerr.KindOf(err)
	status := docerr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed.", "kind", string(kind), "error", err)
	} else {
		slog.Warn("Request rejected.", "kind", string(kind), "error", err)
	}
	writeJSON(w, status, models.ErrorResponse{Error: docerr.MessageOf(err)})
}
