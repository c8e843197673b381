// Package httpapi serves sky snapshots and charts over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/aalvaropc/rashi/internal/usecase"
)

type Config struct {
	// Location interprets date/time query parameters.
	Location *time.Location
	// RequestTimeout bounds each snapshot computation.
	RequestTimeout time.Duration
	ChartSize      int

	// RatePerMinute limits /api and /chart requests per client IP; 0 disables.
	RatePerMinute int
	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string
}

type Deps struct {
	Sky     *usecase.Sky
	Chart   func(size int) *usecase.ExportChart
	Metrics http.Handler
	Logger  *slog.Logger
	Now     func() time.Time
}

type server struct {
	cfg  Config
	deps Deps
}

// NewRouter wires the endpoints:
//
//	GET /api/sky     snapshot and table rows as JSON
//	GET /chart.svg   rendered chart
//	GET /healthz     liveness
//	GET /metrics     Prometheus exposition (when Metrics is set)
func NewRouter(cfg Config, deps Deps) http.Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &server{cfg: cfg, deps: deps}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Group(func(r chi.Router) {
		if cfg.RatePerMinute > 0 {
			r.Use(httprate.LimitByIP(cfg.RatePerMinute, time.Minute))
		}
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		r.Get("/api/sky", s.sky)
		r.Get("/chart.svg", s.chart)
	})

	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.deps.Logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
