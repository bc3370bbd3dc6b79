package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/middleware"
	"github.com/rihla-travel/portal/internal/ui"
)

type LocaleHandler struct {
	secure bool
}

func NewLocaleHandler(secure bool) *LocaleHandler {
	return &LocaleHandler{secure: secure}
}

// Toggle flips between Arabic and English, persists the choice and sends the
// visitor back to the page they were on. An explicit lang form value wins.
func (h *LocaleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	next := ctxkeys.Lang(r.Context()).Toggle()
	if l, ok := i18n.Parse(r.FormValue("lang")); ok {
		next = l
	}
	middleware.SetLangCookie(w, next, h.secure)

	if ui.IsHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-origin path of the Referer, or "/". Browsers read
// "//host" and "/\host" as another origin.
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") ||
		strings.HasPrefix(ref.Path, "//") ||
		strings.HasPrefix(ref.Path, `/\`) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
