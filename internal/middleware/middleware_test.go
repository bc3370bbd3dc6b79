package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(ctxkeys.WithUser(r.Context(), user))
}

func TestRequireOperator(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		htmx     bool
		wantCode int
		wantLoc  string
		wantNext bool
	}{
		{name: "anonymous", wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "customer", user: &model.User{ID: "u1", Role: model.RoleCustomer}, wantCode: http.StatusSeeOther, wantLoc: "/"},
		{name: "operator", user: &model.User{ID: "u2", Role: model.RoleOperator}, wantCode: http.StatusOK, wantNext: true},
		{name: "anonymous htmx", htmx: true, wantCode: http.StatusSeeOther, wantLoc: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := RequireOperator(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/dash", nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.htmx {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("HX-Redirect"))
			} else if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func TestRequireAuthAndGuest(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }

	rec := httptest.NewRecorder()
	RequireAuth(ok)(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	RequireAuth(ok)(rec, withUser(httptest.NewRequest(http.MethodGet, "/profile", nil), &model.User{ID: "u1"}))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	RequireGuest(ok)(rec, withUser(httptest.NewRequest(http.MethodGet, "/login", nil), &model.User{ID: "u1"}))
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		accept string
		want   i18n.Lang
	}{
		{"default", "", "", i18n.AR},
		{"browser english", "", "en-US,en;q=0.9", i18n.EN},
		{"browser french", "", "fr-FR", i18n.AR},
		{"cookie wins", "ar", "en-GB", i18n.AR},
		{"bad cookie ignored", "de", "en", i18n.EN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got i18n.Lang
			h := Locale(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ctxkeys.Lang(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), rec.Header().Get("Content-Language"))
		})
	}
}

func TestSetLangCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLangCookie(rec, i18n.EN, true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "lang", cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.Config{AppEnv: "production", StoragePublicURL: "https://cdn.example.com/uploads"}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		Config(cfg),
		NonceMiddleware,
		SecurityHeaders,
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-")
	assert.Contains(t, csp, "img-src 'self' data: https://cdn.example.com")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestCSRFProtection(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ctxkeys.CSRFToken(r.Context())))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := rec.Result().Cookies()[0]
	token := rec.Body.String()
	assert.Equal(t, cookie.Value, token)

	req := httptest.NewRequest(http.MethodPost, "/lang/toggle", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/lang/toggle", nil)
	req.AddCookie(cookie)
	req.Header.Set("X-CSRF-Token", token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	form := strings.NewReader("csrf_token=" + token)
	req = httptest.NewRequest(http.MethodPost, "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsLabelsByPattern(t *testing.T) {
	m := telemetry.NopMetrics()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /services/{slug}", func(w http.ResponseWriter, r *http.Request) {})

	h := Metrics(m, mux)(mux)
	for _, slug := range []string{"europe-visa", "global-jobs"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/services/"+slug, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "GET /services/{slug}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMaxBody(t *testing.T) {
	h := MaxBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=much-longer-than-eight"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCSRFRejectsStaleHTMXTab(t *testing.T) {
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodPost, "/services/europe-visa", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("X-CSRF-Token", "stale")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("HX-Refresh"))
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestCSRFOversizedPlainFormIsTooLarge(t *testing.T) {
	h := MaxBody(64)(CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("csrf_token", strings.Repeat("a", 43)))
	fw, err := mw.CreateFormFile("passport", "passport.pdf")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("x"), 1024))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/services/europe-visa", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNonceMiddleware(t *testing.T) {
	var seen []string
	h := NonceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, GetNonce(r.Context()))
	}))
	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1])
}

func TestWithURLPath(t *testing.T) {
	tests := map[string]string{
		"/":                      "/",
		"/services/":             "/services",
		"/locations/dubai":       "/locations/dubai",
		"/services/europe-visa/": "/services/europe-visa",
	}
	for in, want := range tests {
		var got string
		h := WithURLPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = ctxkeys.URLPath(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, in, nil))
		assert.Equal(t, want, got, in)
	}
}
