// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server runs a local API gateway that answers POST /query the way
// the deployed LLM query function does. It lets the front-end and the hio
// client be exercised without cloud credentials.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

const (
	defaultAddr            = ":3001"
	defaultPrefix          = "/api"
	defaultShutdownTimeout = 5 * time.Second
	defaultLocation        = "us-central1"
	defaultModel           = "gemini-1.0-pro"

	// maxQueryBody bounds the size of an accepted query request.
	maxQueryBody = 1 << 20
)

// Error messages returned in ErrorResponse bodies.
const (
	msgProjectNotConfigured = "project is not configured"
	msgInvalidRequest       = "invalid request: JSON payload with 'query' key is required"
)

// Server is the local gateway.
type Server struct {
	cfg       types.ServerConfig
	log       zerolog.Logger
	metrics   *Metrics
	responder atomic.Pointer[responderBox]
	project   atomic.Pointer[string]
	router    chi.Router
}

// responderBox lets an interface value live behind an atomic.Pointer.
type responderBox struct {
	r Responder
}

// New builds a server answering with responder, or with a MockResponder for
// cfg when responder is nil.
func New(cfg types.ServerConfig, responder Responder, log zerolog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	cfg.Prefix = "/" + strings.Trim(cfg.Prefix, "/")
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Location == "" {
		cfg.Location = defaultLocation
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if responder == nil {
		responder = &MockResponder{Project: cfg.Project, Location: cfg.Location, Model: cfg.Model}
	}

	s := &Server{
		cfg:     cfg,
		log:     log,
		metrics: NewMetrics(),
	}
	s.SetResponder(responder)
	s.SetProject(cfg.Project)
	s.router = s.routes()
	return s
}

// SetResponder swaps the responder used for subsequent queries.
func (s *Server) SetResponder(r Responder) {
	s.responder.Store(&responderBox{r: r})
}

// SetProject updates the configured project. Queries are rejected while it
// is empty.
func (s *Server) SetProject(project string) {
	s.project.Store(&project)
}

func (s *Server) currentProject() string {
	return *s.project.Load()
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route(s.cfg.Prefix, func(r chi.Router) {
		r.Post("/query", s.handleQuery)
	})
	return r
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	log := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()

	if s.currentProject() == "" {
		s.metrics.QueriesTotal.WithLabelValues("unconfigured").Inc()
		log.Error().Msg("query rejected: project is not configured")
		writeError(w, http.StatusInternalServerError, msgProjectNotConfigured)
		return
	}

	var req types.QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBody)).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		s.metrics.QueriesTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	log.Info().Str("query", req.Query).Msg("received query")

	resp, err := s.responder.Load().r.Respond(log.WithContext(r.Context()), req.Query)
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("processing query")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", err))
		return
	}

	s.metrics.QueriesTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// logRequests logs one line per request, skipping health and metrics probes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Str("query_path", s.cfg.Prefix+"/query").Msg("gateway listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info().Msg("shutting down gateway")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
