// Package server is the reference notes backend: the REST surface the client
// package talks to, backed by a NoteStorage implementation.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/storage"
)

type Server struct {
	store     storage.NoteStorage
	auth      *TokenAuth
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
	http      *http.Server
}

func New(addr string, store storage.NoteStorage, auth *TokenAuth, logger *zap.Logger) *Server {
	s := &Server{
		store:     store,
		auth:      auth,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the REST surface consumed by the client package.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.auth.Middleware)

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", s.ListNotesHandler)
		r.Post("/", s.CreateNoteHandler)
		r.Put("/{id}", s.UpdateNoteHandler)
		r.Put("/{id}/{flagName}", s.UpdateNoteFlagHandler)
		r.Delete("/{id}", s.DeleteNoteHandler)
	})

	return r
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting notes backend", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
