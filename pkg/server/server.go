// Package server is the reference implementation of the manas REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/auth"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/datastore"
)

// Server wires the datastore and token issuer to HTTP handlers.
type Server struct {
	store      *datastore.Store
	issuer     *auth.Issuer
	logger     *zap.Logger
	cleanupKey string
	now        func() time.Time
	registry   *prometheus.Registry
	metrics    *metrics
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCleanupKey requires the global cleanup to present key in x-api-key.
func WithCleanupKey(key string) Option {
	return func(s *Server) { s.cleanupKey = key }
}

// WithClock replaces time.Now. Calendar boundaries use the clock's location.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(store *datastore.Store, issuer *auth.Issuer, opts ...Option) *Server {
	s := &Server{
		store:    store,
		issuer:   issuer,
		logger:   zap.NewNop(),
		now:      time.Now,
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.registry)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Api-Key"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		// the global sweep is keyed by a shared secret, not a user
		r.Delete("/thoughts/cleanup", s.globalCleanup)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Route("/thoughts", func(r chi.Router) {
				r.Get("/", s.listThoughts)
				r.Post("/", s.createThought)
				r.Post("/cleanup", s.cleanup)
				r.Put("/{id}", s.updateThought)
				r.Delete("/{id}", s.deleteThought)
			})
			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", s.listSessions)
				r.Post("/", s.createSession)
			})
			r.Route("/user", func(r chi.Router) {
				r.Get("/preferences", s.getPreferences)
				r.Put("/preferences", s.putPreferences)
				r.Get("/stats", s.stats)
			})
		})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully. When
// cleanupEvery is positive a global cleanup runs on that interval.
func (s *Server) ListenAndServe(ctx context.Context, addr string, cleanupEvery time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cleanupEvery > 0 {
		go s.sweep(ctx, cleanupEvery)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.store.Cleanup(ctx, "", s.now())
			if err != nil {
				s.logger.Warn("scheduled cleanup failed", zap.Error(err))
				continue
			}
			s.metrics.cleaned.Add(float64(n))
			s.logger.Info("scheduled cleanup", zap.Int64("deleted", n))
		}
	}
}
