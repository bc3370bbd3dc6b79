package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rihla-travel/portal/internal/ctxkeys"
)

// htmxOrigin serves the pinned htmx build loaded by the layout.
const htmxOrigin = "https://unpkg.com"

// SecurityHeaders sets the CSP and the usual hardening headers. Uploaded
// documents are previewed inline on the dashboard, so the storage origin is
// allowed for images and frames.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		h.Set("Content-Security-Policy", contentSecurityPolicy(GetNonce(r.Context()), storageOrigins(r)))
		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(nonce string, storage []string) string {
	scripts := []string{"'self'", htmxOrigin}
	if nonce != "" {
		scripts = append(scripts, fmt.Sprintf("'nonce-%s'", nonce))
	}
	media := append([]string{"'self'", "data:"}, storage...)
	frames := append([]string{"'self'"}, storage...)

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		"style-src 'self' 'unsafe-inline'",
		"img-src " + strings.Join(media, " "),
		"frame-src " + strings.Join(frames, " "),
		"connect-src 'self'",
		"form-action 'self' https://accounts.google.com",
		"frame-ancestors 'none'",
		"base-uri 'self'",
	}
	return strings.Join(directives, "; ")
}

// storageOrigins returns the scheme+host of the configured public storage
// URL and endpoint.
func storageOrigins(r *http.Request) []string {
	cfg := ctxkeys.Config(r.Context())
	if cfg == nil {
		return nil
	}

	var origins []string
	for _, raw := range []string{cfg.StoragePublicURL, cfg.StorageEndpoint} {
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		origins = append(origins, u.Scheme+"://"+u.Host)
	}
	return origins
}
