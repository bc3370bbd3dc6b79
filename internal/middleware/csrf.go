package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rihla-travel/portal/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenBytes = 32
	csrfCookieTTL  = 7 * 24 * time.Hour
	csrfFormMemory = 32 << 20
)

// CSRFProtection is a double-submit check. Every request gets the cookie
// token in its context so templates can echo it. Unsafe methods must send it
// back, in the X-CSRF-Token header (htmx, from the layout's hx-headers) or in
// the csrf_token field (plain forms, including multipart intake posts).
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := csrfToken(w, r)
		if err != nil {
			slog.Error("failed to issue csrf token", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

		if safeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		submitted, err := submittedCSRFToken(r)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			slog.Warn("request body too large", "path", r.URL.Path, "limit", maxErr.Limit)
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		if !sameToken(token, submitted) {
			slog.Warn("csrf validation failed",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", clientIP(r),
			)
			// A stale tab reloads and picks up the current token.
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Refresh", "true")
			}
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// csrfToken returns the visitor's token, issuing a cookie when it is missing
// or malformed.
func csrfToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(csrfCookieName); err == nil &&
		len(c.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenBytes) {
		return c.Value, nil
	}

	token, err := randomToken(csrfTokenBytes, base64.RawURLEncoding)
	if err != nil {
		return "", err
	}

	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(csrfCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// submittedCSRFToken reads the header first so multipart bodies are only
// parsed when a plain form posted them. Handlers see the parsed form.
func submittedCSRFToken(r *http.Request) (string, error) {
	if v := r.Header.Get(csrfHeader); v != "" {
		return v, nil
	}

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(csrfFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return "", err
	}
	return r.PostFormValue(csrfFormField), nil
}

func sameToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

// randomToken returns n random bytes in enc.
func randomToken(n int, enc *base64.Encoding) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return enc.EncodeToString(b), nil
}
