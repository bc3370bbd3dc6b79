package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rihla-travel/portal/internal/telemetry"
)

// Router resolves the route pattern for a request; *http.ServeMux satisfies it.
type Router interface {
	Handler(r *http.Request) (http.Handler, string)
}

// routePattern labels requests by their registered pattern so paths with ids
// do not explode the label set.
func routePattern(router Router, r *http.Request) string {
	if router == nil {
		return "unmatched"
	}
	_, pattern := router.Handler(r)
	if pattern == "" {
		return "unmatched"
	}
	return pattern
}

// Metrics records request counts and latency per route pattern.
func Metrics(m *telemetry.Metrics, router Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			pattern := routePattern(router, r)
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			m.Requests.WithLabelValues(r.Method, pattern, strconv.Itoa(rw.statusCode)).Inc()
			m.RequestLatency.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}
