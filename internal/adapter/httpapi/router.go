// Package httpapi exposes planning and submissions over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
)

// Observer receives one call per finished request, labelled with the route
// pattern.
type Observer interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
	Handler() http.Handler
}

type RouterConfig struct {
	Planner  input.SubmissionPlanner
	Runner   input.SubmissionRunner
	Registry output.SpecialistRegistry
	Metrics  Observer
	Logger   output.LoggerPort

	ServiceName    string
	JSONLogs       bool
	MaxRequestSize int64
	// RequestTimeout bounds planning routes only. Submissions run for as long
	// as the engine needs.
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "suparaise-agent"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	h := NewHandler(cfg.Planner, cfg.Runner, cfg.Registry, cfg.Logger, cfg.MaxRequestSize)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(httplog.RequestLogger(httplog.NewLogger(cfg.ServiceName, httplog.Options{
		JSON:    cfg.JSONLogs,
		Concise: true,
	})))
	r.Use(chimw.Recoverer)
	if cfg.Metrics != nil {
		r.Use(observe(cfg.Metrics))
	}

	r.Get("/health", healthHandler(cfg.ServiceName))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
			r.Post("/instructions", h.CreateInstruction)
			r.Get("/specialists", h.ListSpecialists)
		})
		r.Post("/submissions", h.CreateSubmission)
	})

	return r
}

func healthHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": service,
		})
	}
}

func observe(m Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			path := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, path, status, time.Since(start))
		})
	}
}
