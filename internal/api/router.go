package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api/handler"
	apimw "github.com/ricirt/sample-health/internal/api/middleware"
	"github.com/ricirt/sample-health/internal/metrics"
	"github.com/ricirt/sample-health/internal/ratelimiter"
)

// HealthPath is the only route served on the public listener.
const HealthPath = "/health"

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
// A nil limiter disables rate limiting.
func NewRouter(
	m *metrics.Metrics,
	limiter *ratelimiter.Limiter,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer) // recover panics, return 500
	r.Use(chimw.RealIP)    // trust X-Forwarded-For / X-Real-IP
	r.Use(apimw.CorrelationID)
	r.Use(apimw.RequestLogger(logger, HealthPath))
	r.Use(apimw.Instrument(m))
	r.Use(apimw.RateLimit(limiter, m, logger))

	hh := handler.NewHealthHandler(nil, logger)

	// --- routes ---
	r.Get(HealthPath, hh.Health)

	// Anything else, including other methods on /health, is a plain 404.
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.NotFound)

	return r
}

// NewMetricsRouter serves the Prometheus scrape endpoint. It is mounted on
// its own listener so the public surface stays a single route.
func NewMetricsRouter(reg prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}
