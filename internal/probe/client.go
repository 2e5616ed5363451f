package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/domain"
)

// Client probes a running health endpoint, retrying a bounded number of
// times. The URL is injected so tests can point it at an httptest server.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

func NewClient(url string, timeout time.Duration, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *Client {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Check issues GET requests until one reports healthy or maxRetries
// attempts have failed. The last error is returned, wrapping
// domain.ErrUnhealthy when the server answered but not with 200 OK.
// Stops early when ctx is cancelled.
func (c *Client) Check(ctx context.Context) (*domain.HealthResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.checkOnce(ctx)
		if err == nil {
			c.logger.Debug("health check succeeded", zap.Int("attempt", attempt))
			return resp, nil
		}
		lastErr = err
		c.logger.Info("health check failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.maxRetries),
			zap.Error(err),
		)

		if attempt == c.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("health check cancelled: %w", ctx.Err())
		case <-time.After(c.retryDelay):
		}
	}
	return nil, fmt.Errorf("health check failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) checkOnce(ctx context.Context) (*domain.HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, domain.ErrUnhealthy)
	}

	var hr domain.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if hr.Status != domain.StatusOK {
		return nil, fmt.Errorf("reported status %q: %w", hr.Status, domain.ErrUnhealthy)
	}

	return &hr, nil
}
