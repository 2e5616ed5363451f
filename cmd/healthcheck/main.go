// Command healthcheck probes the local /health endpoint and exits 0 when
// the service reports OK, 1 otherwise. It reads the same PORT variable as
// the server, so a container can use it as its HEALTHCHECK without curl.
// PORT must be set explicitly; 0 is rejected.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api"
	"github.com/ricirt/sample-health/internal/config"
	"github.com/ricirt/sample-health/internal/logging"
	"github.com/ricirt/sample-health/internal/probe"
)

func main() {
	_ = godotenv.Load()

	cfg, cfgErr := config.Load()

	levelName := "info"
	if cfg != nil {
		levelName = cfg.LogLevel
	}
	level, levelErr := logging.ParseLevel(levelName)
	logger, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if cfgErr != nil {
		logger.Fatal("failed to load config", zap.Error(cfgErr))
	}
	if levelErr != nil {
		logger.Warn("invalid log level, using info", zap.Error(levelErr))
	}

	url, err := cfg.HealthURL(api.HealthPath)
	if err != nil {
		logger.Fatal("cannot locate health endpoint", zap.Error(err))
	}

	c := probe.NewClient(url, cfg.ProbeTimeout, cfg.ProbeRetries, cfg.ProbeRetryDelay, logger)

	hr, err := c.Check(context.Background())
	if err != nil {
		logger.Error("service unhealthy", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("service healthy",
		zap.String("service", hr.Service),
		zap.String("version", hr.Version),
		zap.String("timestamp", hr.Timestamp),
	)
}
