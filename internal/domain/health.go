package domain

import "time"

// Fixed identifiers reported by the health endpoint.
const (
	StatusOK    = "OK"
	ServiceName = "sample"
)

// Version is reported in every health response. Release builds may
// override it with -ldflags "-X github.com/ricirt/sample-health/internal/domain.Version=...".
var Version = "1.0.0"

// TimestampLayout is ISO-8601 in UTC with microsecond precision.
// The width is fixed so sequential timestamps also sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// HealthResponse is the body of GET /health. It is built fresh for every
// request and never stored.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

// NewHealthResponse returns the health payload stamped with now, converted to UTC.
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Status:    StatusOK,
		Timestamp: now.UTC().Format(TimestampLayout),
		Service:   ServiceName,
		Version:   Version,
	}
}
