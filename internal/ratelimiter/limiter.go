package ratelimiter

import (
	"golang.org/x/time/rate"
)

// Limiter is a single token bucket shared by every request on the public
// listener. It is off unless RATE_LIMIT is set.
// Burst is set equal to the rate so no extra burst capacity is allowed
// beyond the configured per-second maximum.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter with ratePerSec tokens per second.
// A non-positive rate returns nil, which callers treat as "no limit".
func New(ratePerSec int) *Limiter {
	if ratePerSec <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
	}
}

// Allow reports whether a request may proceed right now. Probes are never
// made to wait: they are either served or rejected.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}
