package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ricirt/sample-health/internal/api/handler"
	"github.com/ricirt/sample-health/internal/domain"
)

func TestHealthHandler_Health(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 8, 15, 0, 500000000, time.UTC)
	h := handler.NewHealthHandler(func() time.Time { return fixed }, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var body domain.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := domain.HealthResponse{
		Status:    "OK",
		Timestamp: "2026-10-19T08:15:00.500000Z",
		Service:   "sample",
		Version:   "1.0.0",
	}
	if body != want {
		t.Fatalf("expected %+v, got %+v", want, body)
	}
}

func TestHealthHandler_TimestampComputedPerRequest(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return time.Date(2026, 1, 1, 0, 0, calls, 0, time.UTC)
	}
	h := handler.NewHealthHandler(clock, zap.NewNop())

	var stamps []string
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		var body domain.HealthResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		stamps = append(stamps, body.Timestamp)
	}

	if calls != 3 {
		t.Fatalf("expected clock to be read once per request, got %d reads", calls)
	}
	if stamps[0] == stamps[1] || stamps[1] == stamps[2] {
		t.Fatalf("expected a fresh timestamp per request, got %v", stamps)
	}
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	handler.NotFound(w, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	if w.Body.String() != "Not Found" {
		t.Fatalf("expected body %q, got %q", "Not Found", w.Body.String())
	}
}

func TestTooManyRequests(t *testing.T) {
	w := httptest.NewRecorder()
	handler.TooManyRequests(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("expected Retry-After: 1, got %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("expected text/plain, got %q", ct)
	}
	if w.Body.String() != "Too Many Requests" {
		t.Fatalf("expected body %q, got %q", "Too Many Requests", w.Body.String())
	}
}
