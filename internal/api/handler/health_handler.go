package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/domain"
)

// HealthHandler serves the liveness probe endpoint.
type HealthHandler struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewHealthHandler returns a handler stamping responses with now.
// A nil clock defaults to time.Now.
func NewHealthHandler(now func() time.Time, logger *zap.Logger) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now, logger: logger}
}

// Health handles GET /health
//
// @Summary  Liveness probe
// @Tags     system
// @Produce  json
// @Success  200  {object}  domain.HealthResponse
// @Router   /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, domain.NewHealthResponse(h.now()))
}

// NotFound handles every unrouted path and every method other than GET on
// /health.
func NotFound(w http.ResponseWriter, r *http.Request) {
	mapError(w, domain.ErrNotFound)
}

// TooManyRequests answers a request rejected by the rate limiter.
func TooManyRequests(w http.ResponseWriter, r *http.Request) {
	mapError(w, domain.ErrRateLimited)
}
