package domain

import "errors"

// Sentinel errors used throughout the application.
// ErrNotFound and ErrRateLimited double as the plain-text response bodies.
var (
	ErrNotFound    = errors.New("Not Found")
	ErrRateLimited = errors.New("Too Many Requests")
	ErrInvalidPort = errors.New("port must be an integer between 0 and 65535")

	// ErrEphemeralPort is returned when a fixed port is needed to reach the
	// server but PORT asks for a kernel-assigned one.
	ErrEphemeralPort = errors.New("an explicit port is required, not 0")

	// ErrUnhealthy is returned by the probe client when /health did not
	// answer 200 with status OK.
	ErrUnhealthy = errors.New("service is unhealthy")
)
