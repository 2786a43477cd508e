package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_Scrape(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordAuthAttempt("login", "success")
	c.RecordTaskOp("create", "success")
	c.RecordHTTPRequest(http.MethodGet, "/tasks", http.StatusOK, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, metric := range []string{
		"tasklight_auth_attempts_total",
		"tasklight_task_operations_total",
		"tasklight_http_requests_total",
		"tasklight_http_request_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("scrape output missing %s", metric)
		}
	}
}

func TestNoop_DoesNothing(t *testing.T) {
	n := NewNoop()
	n.RecordAuthAttempt("login", "success")
	n.RecordTaskOp("create", "success")
	n.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}
