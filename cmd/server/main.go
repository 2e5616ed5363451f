package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api"
	"github.com/ricirt/sample-health/internal/config"
	"github.com/ricirt/sample-health/internal/domain"
	"github.com/ricirt/sample-health/internal/logging"
	"github.com/ricirt/sample-health/internal/metrics"
	"github.com/ricirt/sample-health/internal/ratelimiter"
	"github.com/ricirt/sample-health/internal/server"
)

func main() {
	// A missing .env is normal; real environment variables always win.
	dotenvErr := godotenv.Load()

	// ---- configuration ----
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
	if dotenvErr != nil && !os.IsNotExist(dotenvErr) {
		logger.Warn("failed to read .env file", zap.Error(dotenvErr))
	}
	if levelErr != nil {
		logger.Warn("invalid log level, using info", zap.Error(levelErr))
	}

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	limiter := ratelimiter.New(cfg.RateLimit)

	// ---- HTTP servers ----
	// Both listeners are bound before either serves so a port conflict
	// exits non-zero straight away.
	public := server.New("public", cfg.Addr(), api.NewRouter(m, limiter, logger),
		cfg.ReadTimeout, cfg.WriteTimeout, logger)
	if err := public.Listen(); err != nil {
		logger.Fatal("failed to bind HTTP listener", zap.Error(err))
	}

	var scrape *server.Server
	if addr := cfg.MetricsAddr(); addr != "" {
		scrape = server.New("metrics", addr, api.NewMetricsRouter(reg),
			cfg.ReadTimeout, cfg.WriteTimeout, logger)
		if err := scrape.Listen(); err != nil {
			logger.Fatal("failed to bind metrics listener", zap.Error(err))
		}
	}

	logger.Info("health endpoint available",
		zap.String("url", fmt.Sprintf("http://localhost:%d%s", public.Port(), api.HealthPath)),
		zap.String("service", domain.ServiceName),
		zap.String("version", domain.Version),
		zap.Bool("rate_limited", limiter != nil),
	)

	errCh := make(chan error, 2)
	go func() { errCh <- public.Serve() }()
	if scrape != nil {
		go func() { errCh <- scrape.Serve() }()
	}

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := public.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if scrape != nil {
		if err := scrape.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", zap.Error(err))
		}
	}

	logger.Info("server stopped cleanly")
}
