package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ricirt/sample-health/internal/metrics"
)

// unmatchedRoute labels requests that hit no route, keeping label
// cardinality bounded no matter what paths clients send.
const unmatchedRoute = "unmatched"

// Instrument records request count, latency and in-flight gauge.
// The route label is chi's matched pattern, read after routing completes.
func Instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.ObserveRequest(route, methodLabel(r.Method), statusOf(ww), time.Since(start))
		})
	}
}

// otherMethod labels any method outside the standard set. net/http accepts
// arbitrary method tokens, so the raw value would be unbounded.
const otherMethod = "other"

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
		http.MethodConnect, http.MethodTrace:
		return method
	}
	return otherMethod
}
