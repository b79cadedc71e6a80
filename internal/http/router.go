package http

import (
	"context"
	"net/http"
	"time"

	"news-map/internal/config"
	"news-map/internal/metrics"
	"news-map/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	chi.Router
	limiter *middleware.RateLimiter
}

// NewRouter builds the router with request ids, CORS, logging and panic
// recovery. Rate limiting applies only to the routes that run the pipeline.
// There is no request timeout middleware: the pipeline enforces its own
// deadline and returns partial results when it passes.
func NewRouter(cfg config.ServerConfig, m *metrics.Metrics) *Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(m))
	r.Use(middleware.Recovery)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Articles-Skipped"},
		MaxAge:         300,
	}))

	return &Router{
		Router:  r,
		limiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

// RegisterNewsRoutes registers the news and map routes behind the rate
// limiter.
func (r *Router) RegisterNewsRoutes(newsHandler *NewsHandler) {
	r.Group(func(g chi.Router) {
		g.Use(r.limiter.Middleware)
		newsHandler.RegisterRoutes(g)
	})
}

// RegisterHealthRoutes registers liveness and readiness checks. /ready pings
// every named dependency.
func (r *Router) RegisterHealthRoutes(deps map[string]Pinger) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string, len(deps))
		status := http.StatusOK
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeJSON(w, status, map[string]interface{}{
			"status":    state,
			"checks":    checks,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}

// RegisterMetricsRoutes registers metrics routes
func (r *Router) RegisterMetricsRoutes(m *metrics.Metrics) {
	r.Method(http.MethodGet, "/metrics", m.Handler())
}

// RegisterStaticRoutes serves static for every path no other route matched.
// Register it last.
func (r *Router) RegisterStaticRoutes(static http.Handler) {
	r.Method(http.MethodGet, "/*", static)
}
