package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api/handler"
	"github.com/ricirt/sample-health/internal/metrics"
	"github.com/ricirt/sample-health/internal/ratelimiter"
)

// RateLimit rejects requests with 429 once the limiter's bucket is empty.
// A nil limiter passes everything through.
func RateLimit(l *ratelimiter.Limiter, m *metrics.Metrics, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				m.RateLimited.Inc()
				logger.Warn("request rate limited",
					zap.String("path", r.URL.Path),
					zap.String("correlation_id", GetCorrelationID(r.Context())),
				)
				handler.TooManyRequests(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
