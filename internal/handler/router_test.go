package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/tasklight/tasklight/internal/auth"
	"github.com/tasklight/tasklight/internal/handler"
	"github.com/tasklight/tasklight/internal/middleware"
	"github.com/tasklight/tasklight/internal/service"
	"github.com/tasklight/tasklight/internal/testutil"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

// newTestRouter wires the full route tree against an in-memory store, the
// same shape the API server builds at startup.
func newTestRouter(t *testing.T) (*chi.Mux, *testutil.MemStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := testutil.NewMemStore()
	tokens := auth.NewTokenIssuer(testSecret, time.Hour)

	authHandler := handler.NewAuthHandler(service.NewAuthService(store, tokens, nil), logger)
	taskHandler := handler.NewTaskHandler(service.NewTaskService(store, nil), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Auth(middleware.AuthConfig{Logger: logger, Tokens: tokens}))
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r, store
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user through the API and returns the token.
func registerUser(t *testing.T, router http.Handler, username, email, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "registration failed: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
