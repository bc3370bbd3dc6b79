package middleware

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

type nonceKey struct{}

// NonceMiddleware gives each request a fresh CSP nonce. The layout stamps it
// on its script tags via templ.GetNonce; SecurityHeaders reads it back with
// GetNonce to build script-src.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := randomToken(16, base64.StdEncoding)
		if err != nil {
			// Scripts stay blocked by the CSP; the page itself still renders.
			slog.Warn("failed to generate csp nonce", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(templ.WithNonce(r.Context(), nonce), nonceKey{}, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}
