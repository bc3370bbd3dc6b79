package middleware

import (
	"net/http"
	"strings"

	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/ctxkeys"
)

// Config puts the sanitized configuration into every request context.
// Secrets such as JWTSecret and the storage keys never reach templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), sanitized)))
		})
	}
}

// WithURLPath records the request path for nav highlighting, without a
// trailing slash so /services/ and /services match the same link.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if len(path) > 1 {
			path = strings.TrimRight(path, "/")
		}
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithURLPath(r.Context(), path)))
	})
}
