package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ricirt/sample-health/internal/domain"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a default; only a malformed PORT or METRICS_PORT is fatal.
type Config struct {
	// Server
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Logging: debug, info, warn or error
	LogLevel string

	// Prometheus scrape listener. 0 disables it.
	MetricsPort int

	// Requests per second accepted on the public listener. 0 disables limiting.
	RateLimit int

	// Probe client (cmd/healthcheck)
	ProbeTimeout    time.Duration
	ProbeRetries    int
	ProbeRetryDelay time.Duration
}

func Load() (*Config, error) {
	port, err := getPort("PORT", 8080)
	if err != nil {
		return nil, err
	}
	metricsPort, err := getPort("METRICS_PORT", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            port,
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		MetricsPort: metricsPort,
		RateLimit:   getInt("RATE_LIMIT", 0),

		ProbeTimeout:    getDuration("PROBE_TIMEOUT", 2*time.Second),
		ProbeRetries:    getInt("PROBE_RETRIES", 3),
		ProbeRetryDelay: getDuration("PROBE_RETRY_DELAY", time.Second),
	}, nil
}

// Addr is the listen address for the public server on all interfaces.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// HealthURL is the loopback URL of the health endpoint served on PORT.
// PORT=0 lets the kernel pick the server's port, which a separate process
// cannot know, so it is rejected.
func (c *Config) HealthURL(path string) (string, error) {
	if c.Port == 0 {
		return "", fmt.Errorf("PORT=0: %w", domain.ErrEphemeralPort)
	}
	return "http://127.0.0.1:" + strconv.Itoa(c.Port) + path, nil
}

// MetricsAddr is the listen address for the scrape server, or "" when disabled.
func (c *Config) MetricsAddr() string {
	if c.MetricsPort == 0 {
		return ""
	}
	return ":" + strconv.Itoa(c.MetricsPort)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// getPort is stricter than getInt: a set but unusable value is an error
// rather than a silent fallback.
func getPort(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 65535 {
		return 0, fmt.Errorf("%s=%q: %w", key, v, domain.ErrInvalidPort)
	}
	return n, nil
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
