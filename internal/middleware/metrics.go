package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tasklight/tasklight/internal/metrics"
)

// Metrics returns a middleware that records request count and latency.
// The route label uses the chi route pattern, not the raw path, to keep
// metric cardinality bounded.
func Metrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}

			recorder.RecordHTTPRequest(r.Method, route, wrapped.status, time.Since(start))
		})
	}
}
