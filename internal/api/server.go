package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esports-waitlist/internal/common/auth"
	"esports-waitlist/internal/common/config"
	"esports-waitlist/internal/common/logger"
	"esports-waitlist/internal/intake/session"
)

// HealthCheck probes one dependency for /healthz.
type HealthCheck func(ctx context.Context) error

// Server is the intake gateway: a mux.Router in front of the session service.
type Server struct {
	*http.Server
	Router *mux.Router

	sessions *session.Service
	identity auth.IdentityProvider
	checks   map[string]HealthCheck
	logger   logger.Logger
}

func NewServer(cfg config.ServerConfig, sessions *session.Service, identity auth.IdentityProvider, checks map[string]HealthCheck, log logger.Logger) *Server {
	srv := &Server{
		Router:   mux.NewRouter(),
		sessions: sessions,
		identity: identity,
		checks:   checks,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
	srv.routes()

	srv.Server = &http.Server{
		Addr:         cfg.Address,
		Handler:      srv.Router,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}
	return srv
}

func (s *Server) routes() {
	r := s.Router
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/catalog", s.catalog).Methods(http.MethodGet)
	v1.HandleFunc("/identity", s.identityStatus).Methods(http.MethodGet)

	v1.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}", s.getSession).Methods(http.MethodGet)
	v1.HandleFunc("/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/sessions/{id}/actions", s.dispatch).Methods(http.MethodPost)
	v1.HandleFunc("/sessions/{id}/submit", s.submit).Methods(http.MethodPost)

	v1.HandleFunc("/partnerships", s.submitPartnership).Methods(http.MethodPost)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		s.logger.Debug("Request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}
