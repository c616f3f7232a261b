// Package server provides the HTTP API for Kotae.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/genai"
	"github.com/hyperjump/kotae/internal/loader"
	"github.com/hyperjump/kotae/internal/match"
	"github.com/hyperjump/kotae/internal/storage"
)

// Server is the HTTP server for the Kotae API. It owns the matcher and
// guards it with a lock: the matcher itself is single-threaded by contract,
// so all access goes through the server's synchronization.
type Server struct {
	store   storage.Store
	gen     genai.Generator
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server

	mu      sync.RWMutex
	matcher *match.Matcher
}

// NewServer creates a server with the given dependencies. gen may be nil
// when the text-generation fallback is disabled.
func NewServer(
	matcher *match.Matcher,
	store storage.Store,
	gen genai.Generator,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		matcher: matcher,
		store:   store,
		gen:     gen,
		config:  cfg,
		logger:  logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/ask", s.handleAsk)
	r.Post("/api/v1/faqs", s.handleCreateFAQ)
	r.Get("/api/v1/faqs", s.handleListFAQs)
	r.Get("/api/v1/faqs/{id}", s.handleGetFAQ)
	r.Delete("/api/v1/faqs/{id}", s.handleDeleteFAQ)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Reload rebuilds the matcher from the store and the configured FAQ
// sources. Called at startup and when a watched source file changes.
func (s *Server) Reload(ctx context.Context) error {
	m, err := loader.BuildMatcher(ctx, s.store, s.config.FAQ.Sources, s.logger)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.matcher = m
	s.mu.Unlock()
	s.logger.Info("corpus reloaded", zap.Int("entries", m.Len()))
	return nil
}

// findAnswer runs a query against the current matcher under the read lock.
func (s *Server) findAnswer(query string, threshold float64) match.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher.FindAnswer(query, threshold)
}

// addEntry appends to the current matcher under the write lock.
func (s *Server) addEntry(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matcher.AddEntry(question, answer)
}

// corpusLen returns the current corpus size under the read lock.
func (s *Server) corpusLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matcher.Len()
}
