// Package server exposes the heuristics engine and canonical matcher over
// HTTP. No auth, storage or LLM calls happen here; callers branch on the
// returned needs_review/should_skip_llm flags themselves.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/chamchi6619/pantry-core/internal/catalog"
	"github.com/chamchi6619/pantry-core/internal/common"
	"github.com/chamchi6619/pantry-core/internal/export"
	"github.com/chamchi6619/pantry-core/internal/history"
	"github.com/chamchi6619/pantry-core/internal/match"
)

// Service wires handlers to their collaborators. Everything is injected;
// nothing is reached through globals.
type Service struct {
	cfg      common.ServerConfig
	logger   *slog.Logger
	locale   string
	catalog  *catalog.Catalog
	matcher  *match.Matcher
	history  *history.Ring
	exporter *export.Service
}

func NewService(cfg common.ServerConfig, defaultLocale string, cat *catalog.Catalog, ring *history.Ring, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		logger:   logger,
		locale:   defaultLocale,
		catalog:  cat,
		matcher:  match.NewMatcher(),
		history:  ring,
		exporter: export.NewService(logger),
	}
}

// Router builds the chi router with request-id and recovery middleware.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/receipts/parse", s.handleParseReceipt)
		r.Post("/receipts/export", s.handleExportReceipt)
		r.Post("/match", s.handleMatch)
		r.Get("/suggestions", s.handleSuggestions)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *Service) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	return common.RequestIDFromContext(ctx)
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Service) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorBody{Error: msg})
}
