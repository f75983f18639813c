// Package httpapi exposes the turn interface over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/observability"
	"github.com/aretw0/parley/pkg/session"
)

// Engine defines what the server needs from the dialogue core.
type Engine interface {
	RunTurn(ctx context.Context, state *domain.State, utterance string) (*domain.Turn, error)
	NewSessionWithID(id string) *domain.State
	Inspect() []domain.Node
}

// Server serves the turn API over chi.
type Server struct {
	engine   Engine
	sessions *session.Manager
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors and the /metrics route.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates the API server over an engine and a session manager.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/graph", s.handleGraph)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Get("/", s.handleListSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/turns", s.handleTurn)
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Gatherer(), promhttp.HandlerOpts{}))
	}
	return r
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

type turnRequest struct {
	Utterance string `json:"utterance"`
}

type turnResponse struct {
	SessionID   string        `json:"session_id"`
	Response    string        `json:"response"`
	Action      domain.Action `json:"action"`
	HitNode     string        `json:"hit_node,omitempty"`
	RequireSlot string        `json:"require_slot,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Inspect())
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	state := s.engine.NewSessionWithID(id)

	if err := s.sessions.Save(r.Context(), id, state); err != nil {
		s.logger.Error("failed to create session", "err", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: id})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	if s.metrics != nil {
		s.metrics.SetActiveSessions(len(ids))
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	state, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		http.Error(w, "failed to delete session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTurn runs one utterance through the engine under the session lock:
// load, turn, save is atomic per conversation.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	started := time.Now()
	var turn *domain.Turn

	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		state, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		turn, err = s.engine.RunTurn(ctx, state, req.Utterance)
		if err != nil {
			return err
		}
		return s.sessions.Store().Save(ctx, id, state)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		s.logger.Error("turn failed", "session_id", id, "err", err)
		http.Error(w, "turn failed", http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveTurnDuration(time.Since(started))
	}

	writeJSON(w, http.StatusOK, turnResponse{
		SessionID:   id,
		Response:    turn.Response,
		Action:      turn.Action,
		HitNode:     turn.HitNode,
		RequireSlot: turn.RequireSlot,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
