// Package health serves the HTTP status endpoint for the service variant.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"gembot/internal/database"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	countTimeout      = 5 * time.Second
)

// statusResponse is the GET / payload.
type statusResponse struct {
	Status string `json:"status"`
	Users  int64  `json:"users"`
}

// Server exposes the bot status over HTTP.
type Server struct {
	srv   *http.Server
	store database.Store
	log   *slog.Logger
}

// NewServer builds the status server listening on the given port.
func NewServer(port int, store database.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store: store,
		log:   logger.With("component", "health_server"),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Get("/", s.handleStatus)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// handleStatus reports that the bot is running along with the number of
// distinct users seen so far. The endpoint stays healthy when the store is
// not: the user count degrades to zero instead of failing the request.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), countTimeout)
	defer cancel()

	users, err := s.store.CountDistinctUsers(ctx)
	if err != nil {
		s.log.ErrorContext(r.Context(), "Failed to count users for status endpoint", "error", err)
		users = 0
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(statusResponse{Status: "running", Users: users}); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to write status response", "error", err)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("Status server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Status server shutdown failed", "error", err)
			return fmt.Errorf("status server shutdown: %w", err)
		}
		s.log.Info("Status server stopped.")
		return nil

	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("status server failed: %w", err)
		}
		return nil
	}
}
