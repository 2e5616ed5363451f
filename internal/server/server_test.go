package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api"
	"github.com/ricirt/sample-health/internal/config"
	"github.com/ricirt/sample-health/internal/metrics"
	"github.com/ricirt/sample-health/internal/server"
)

func newHealthServer(t *testing.T, addr string) *server.Server {
	t.Helper()
	router := api.NewRouter(metrics.New(prometheus.NewRegistry()), nil, zap.NewNop())
	return server.New("public", addr, router, time.Second, time.Second, zap.NewNop())
}

// freePort asks the kernel for an unused port and releases it.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestServer_ServesHealthOnConfiguredPort(t *testing.T) {
	port := freePort(t)
	t.Setenv("PORT", strconv.Itoa(port))

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}

	s := newHealthServer(t, cfg.Addr())
	if err := s.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}
	if s.Port() != port {
		t.Fatalf("expected bound port %d, got %d", port, s.Port())
	}

	done := make(chan error, 1)
	go func() { done <- s.Serve() }()

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "OK" {
		t.Fatalf("unexpected body: %v", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("expected clean Serve return, got %v", err)
	}
}

func TestServer_ListenFailsOnOccupiedPort(t *testing.T) {
	occupied, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer occupied.Close()
	port := occupied.Addr().(*net.TCPAddr).Port

	s := newHealthServer(t, ":"+strconv.Itoa(port))
	if err := s.Listen(); err == nil {
		t.Fatalf("expected bind on occupied port %d to fail", port)
	}
}

func TestServer_EphemeralPort(t *testing.T) {
	s := newHealthServer(t, "127.0.0.1:0")
	if err := s.Listen(); err != nil {
		t.Fatal(err)
	}
	defer s.Shutdown(context.Background()) //nolint:errcheck

	if s.Port() == 0 {
		t.Fatal("expected kernel-assigned port")
	}
}

func TestServer_ServeBeforeListen(t *testing.T) {
	s := newHealthServer(t, "127.0.0.1:0")
	if err := s.Serve(); err == nil {
		t.Fatal("expected error when serving without a listener")
	}
}
