package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins is a list of origins allowed to make cross-origin
	// requests. If empty, all cross-origin requests are denied.
	AllowedOrigins []string

	// AllowedMethods specifies the allowed HTTP methods.
	AllowedMethods []string

	// AllowedHeaders specifies the allowed request headers.
	AllowedHeaders []string

	// MaxAge is the value for Access-Control-Max-Age header (in seconds).
	MaxAge int
}

// DefaultCORSConfig returns production-safe CORS defaults.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			TokenHeader,
			RequestIDHeader,
			"Accept",
		},
		MaxAge: 86400,
	}
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// Origins must be whitelisted explicitly; preflight OPTIONS requests are
// answered here.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methodsStr := strings.Join(cfg.AllowedMethods, ", ")
	headersStr := strings.Join(cfg.AllowedHeaders, ", ")

	originMap := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		originMap[strings.ToLower(origin)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originMap[strings.ToLower(origin)] {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// Proceed without CORS headers; the browser blocks the response.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methodsStr)
				w.Header().Set("Access-Control-Allow-Headers", headersStr)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
