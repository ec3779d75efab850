// Package http exposes the sentence engine over HTTP: one endpoint to run
// sentences inside named sessions, plus vocabulary listing and session
// management.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plainspeak/plainspeak/internal/logging"
	"github.com/plainspeak/plainspeak/pkg/domain"
	"github.com/plainspeak/plainspeak/pkg/lexicon"
	"github.com/plainspeak/plainspeak/pkg/session"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// Engine is the run surface the server needs per request. The root
// plainspeak.Engine satisfies it.
type Engine interface {
	Run(ctx context.Context, sentence string) (*domain.Result, error)
}

// EngineFactory builds a fresh engine bound to the given variable store.
// One engine serves one request; the store carries the session's variables
// between requests via the snapshot store.
type EngineFactory func(store *vars.Store) Engine

// Server routes HTTP requests to session-scoped engine runs.
type Server struct {
	factory  EngineFactory
	sessions *session.Manager
	catalog  *lexicon.Catalog
	usages   *lexicon.Usages
	logger   *slog.Logger
	registry *prometheus.Registry
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithMetricsRegistry mounts /metrics for the given registry.
func WithMetricsRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) { s.registry = reg }
}

// NewHandler creates the HTTP handler.
func NewHandler(factory EngineFactory, sessions *session.Manager, catalog *lexicon.Catalog, usages *lexicon.Usages, opts ...ServerOption) http.Handler {
	s := &Server{
		factory:  factory,
		sessions: sessions,
		catalog:  catalog,
		usages:   usages,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/run", s.handleRun)
	r.Get("/verbs", s.handleVerbs)
	r.Get("/sessions", s.handleListSessions)
	r.Delete("/sessions/{id}", s.handleDeleteSession)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

type runRequest struct {
	Sentence string `json:"sentence"`
	Session  string `json:"session,omitempty"`
}

type runResponse struct {
	Session string `json:"session"`
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Value   any    `json:"value,omitempty"`
	Stored  string `json:"stored,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Sentence == "" {
		http.Error(w, "sentence is required", http.StatusBadRequest)
		return
	}
	if req.Session == "" {
		req.Session = uuid.NewString()
	}

	resp := runResponse{Session: req.Session}
	err := s.sessions.WithLock(r.Context(), req.Session, func(ctx context.Context) error {
		snapshot, err := s.sessions.Store().Load(ctx, req.Session)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}

		store := vars.NewStore()
		if snapshot != nil {
			store.Restore(snapshot)
		}

		engine := s.factory(store)
		result, runErr := engine.Run(ctx, req.Sentence)
		if result != nil {
			resp.Valid = result.Validation.Valid
			resp.Reason = result.Validation.Reason
			resp.Value = result.Value
			resp.Stored = result.Stored
		}
		if runErr != nil {
			resp.Error = runErr.Error()
			return nil // Run failures are payload, not transport errors.
		}
		return s.sessions.Store().Save(ctx, req.Session, store.Snapshot())
	})
	if err != nil {
		s.logger.Error("run failed", "session", req.Session, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type verbInfo struct {
	Name      string   `json:"name"`
	Synonyms  []string `json:"synonyms,omitempty"`
	Shape     string   `json:"shape"`
	Retrieval bool     `json:"retrieval"`
	Usages    []string `json:"usages"`
}

func (s *Server) handleVerbs(w http.ResponseWriter, r *http.Request) {
	verbs := s.catalog.Verbs()
	out := make([]verbInfo, 0, len(verbs))
	for _, k := range verbs {
		out = append(out, verbInfo{
			Name:      k.Name,
			Synonyms:  k.Synonyms,
			Shape:     k.Roles.Shape(),
			Retrieval: k.Retrieval,
			Usages:    s.usages.Names(k.Name),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to encode response", "err", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
