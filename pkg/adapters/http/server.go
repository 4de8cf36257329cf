package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Board is the subset of switchboard.Board served over HTTP.
type Board interface {
	Toggles() []*domain.Toggle
	Lookup(name string) (*domain.Toggle, error)
	Reload(ctx context.Context) error
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves the toggle API.
type Server struct {
	Board   Board
	Logger  *slog.Logger
	Version string
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	version  string
}

// WithGatherer serves the given registry on /metrics instead of the default one.
func WithGatherer(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) HandlerOption {
	return func(c *handlerConfig) {
		c.version = v
	}
}

// NewHandler creates a new HTTP handler for the board.
func NewHandler(board Board, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{Board: board, Logger: cfg.logger, Version: cfg.version}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/toggles", s.ListToggles)
	r.Get("/toggles/{name}", s.GetToggle)
	r.Post("/reload", s.Reload)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListToggles handles GET /toggles.
func (s *Server) ListToggles(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Statuses(s.Board.Toggles()))
}

// GetToggle handles GET /toggles/{name}.
func (s *Server) GetToggle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	t, err := s.Board.Lookup(name)
	if errors.Is(err, domain.ErrToggleNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, t.Status())
}

// Reload handles POST /reload.
// A definition error answers 422 and leaves the previous toggles in place.
func (s *Server) Reload(w http.ResponseWriter, r *http.Request) {
	if err := s.Board.Reload(r.Context()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMissingDependency) || errors.Is(err, domain.ErrDuplicateToggle) || errors.Is(err, domain.ErrMissingName) {
			status = http.StatusUnprocessableEntity
		}
		s.Logger.Warn("Reload failed", "error", err)
		s.writeError(w, status, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int{"toggles": len(s.Board.Toggles())})
}

// SubscribeEvents handles GET /events, streaming source changes as SSE.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, err := s.Board.Watch(r.Context())
	if err != nil {
		s.writeError(w, http.StatusNotImplemented, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "switchboard-http",
		"version": s.Version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
