package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/auth"
)

type metrics struct {
	requests *prometheus.CounterVec
	thoughts prometheus.Counter
	sessions *prometheus.CounterVec
	cleaned  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "manas_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		thoughts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "manas_thoughts_created_total",
			Help: "Thoughts created.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "manas_sessions_recorded_total",
			Help: "Pomodoro sessions recorded by mode.",
		}, []string{"mode"}),
		cleaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "manas_thoughts_purged_total",
			Help: "Thoughts removed by cleanup.",
		}),
	}
	reg.MustRegister(m.requests, m.thoughts, m.sessions, m.cleaned)
	return m
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.logger.Info("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
		)
	})
}

// authenticate resolves the bearer token to a user and makes sure the user
// row exists.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.issuer.Verify(r.Header.Get("Authorization"))
		if err != nil {
			s.fail(w, r, apperr.NewAuth("Unauthorized").WithCause(err))
			return
		}
		if err := s.store.EnsureUser(r.Context(), userID, s.now()); err != nil {
			s.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userID)))
	})
}
