// Package server exposes take template extraction as an HTTP service.
// Compile faults map to 422 responses carrying the fault kind and
// position; execution itself cannot fail, so everything else is a
// malformed request.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/takedsl/take"
	"github.com/takedsl/take/api"
)

// Server is the extraction service.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    Config
	m      *metrics
}

// NewServer configures the service routes.
func NewServer(log *slog.Logger, cfg Config) *Server {
	s := &Server{log: log, cfg: cfg, m: newMetrics()}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.m.reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(s.auth(s.cfg.APIKey))
		}
		r.Post("/v1/extract", s.handleExtract)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req api.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.m.extractions.WithLabelValues("bad_request").Inc()
		s.writeError(w, status, api.ExtractError{Kind: "request", Message: "invalid request body: " + err.Error()})
		return
	}
	if req.Template == "" {
		s.m.extractions.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, api.ExtractError{Kind: "request", Message: "template is required"})
		return
	}

	tmpl, err := take.New(req.Template)
	if err != nil {
		var cerr take.CompileError
		if errors.As(err, &cerr) {
			line, col := cerr.Position()
			s.m.extractions.WithLabelValues("compile_error").Inc()
			s.m.compileErrors.WithLabelValues(cerr.Kind()).Inc()
			s.writeError(w, http.StatusUnprocessableEntity, api.ExtractError{
				Kind:    cerr.Kind(),
				Message: cerr.Error(),
				Line:    line,
				Column:  col,
			})
			return
		}
		s.m.extractions.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, api.ExtractError{Kind: "request", Message: err.Error()})
		return
	}

	var opts []take.ExecOption
	if req.BaseURL != "" {
		opts = append(opts, take.ExecBaseURL(req.BaseURL))
	}
	data, err := tmpl.Exec(req.Document, opts...)
	if err != nil {
		s.m.extractions.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, api.ExtractError{Kind: "request", Message: err.Error()})
		return
	}

	s.m.extractions.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, api.ExtractResponse{Data: take.Flatten(data)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, e api.ExtractError) {
	s.writeJSON(w, status, api.ErrorResponse{Error: e})
}
