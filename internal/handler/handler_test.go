package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandler_Hello(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Hello(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["service"] != "tasklight" {
		t.Errorf("unexpected service name: %s", response["service"])
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response errorBody
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error.Code != "NOT_FOUND" {
		t.Errorf("unexpected error code: %s", response.Error.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodPatch, "/register", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}

	var response errorBody
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Errorf("unexpected error code: %s", response.Error.Code)
	}
}
