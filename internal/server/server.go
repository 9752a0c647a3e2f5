// ABOUTME: Read-only HTTP JSON API over the session history.
// ABOUTME: Routes recommendations, dashboard, progress and sessions, plus Prometheus metrics.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harperreed/coach/internal/metrics"
	"github.com/harperreed/coach/internal/models"
)

// HistoryLoader reads the full session history.
type HistoryLoader interface {
	Load() ([]models.WorkoutSession, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	history HistoryLoader
	catalog *models.Catalog
	log     *log.Logger
	metrics *metrics.Manager
	gather  prometheus.Gatherer
	now     func() time.Time
	router  chi.Router
}

// Options configures New. Zero values pick working defaults.
type Options struct {
	Logger   *log.Logger
	Metrics  *metrics.Manager
	Gatherer prometheus.Gatherer
	Now      func() time.Time
}

// New creates a new Server with all routes configured.
func New(history HistoryLoader, catalog *models.Catalog, opts Options) *Server {
	s := &Server{
		history: history,
		catalog: catalog,
		log:     opts.Logger,
		metrics: opts.Metrics,
		gather:  opts.Gatherer,
		now:     opts.Now,
		router:  chi.NewRouter(),
	}
	if s.catalog == nil {
		s.catalog = models.DefaultCatalog()
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewTestManager()
	}
	if s.gather == nil {
		s.gather = prometheus.NewRegistry()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Instrument(s.metrics))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/routines", s.handleRoutines)
		r.Get("/recommendations/{exerciseID}", s.handleRecommendation)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/exercises/{exerciseID}/progress", s.handleProgress)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
	})

	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{}))
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
