package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tasklight/tasklight/internal/auth"
)

// TokenHeader is the request header carrying the raw bearer token.
// The token is sent as-is, not wrapped in an Authorization scheme.
const TokenHeader = "X-Auth-Token"

// TokenVerifier resolves a raw token string to a user ID.
// Implemented by *auth.TokenIssuer.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens TokenVerifier
}

// Auth returns a middleware that authenticates requests on protected routes.
// It reads the raw token from the X-Auth-Token header, verifies it, and
// injects the resolved user ID into the request context. Requests are
// rejected before any store access:
//
//   - missing header: 401 "No token, authorization denied"
//   - invalid or expired token: 401 "Token is not valid"
//
// There are no roles or permissions; an authenticated user is scoped only
// to their own tasks.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "No token, authorization denied")
				return
			}

			userID, err := cfg.Tokens.Verify(token)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "Token is not valid")
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHENTICATED","message":"` + message + `"}}`))
}
