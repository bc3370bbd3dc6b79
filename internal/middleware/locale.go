package middleware

import (
	"net/http"
	"time"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
)

// LangCookieMaxAge keeps the language choice for a year.
const LangCookieMaxAge = 365 * 24 * time.Hour

// Locale resolves the visitor's language once per request: the lang cookie,
// then Accept-Language, then Arabic.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var persisted string
		if c, err := r.Cookie(i18n.CookieName); err == nil {
			persisted = c.Value
		}

		lang := i18n.Resolve(persisted, r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", lang.String())
		w.Header().Add("Vary", "Cookie, Accept-Language")

		next.ServeHTTP(w, r.WithContext(ctxkeys.WithLang(r.Context(), lang)))
	})
}

// SetLangCookie persists lang under the single preference key.
func SetLangCookie(w http.ResponseWriter, lang i18n.Lang, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   int(LangCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
