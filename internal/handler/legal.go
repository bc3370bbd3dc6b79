package handler

import (
	"net/http"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/pages"
)

type LegalHandler struct {
	content *service.ContentService
}

func NewLegalHandler(content *service.ContentService) *LegalHandler {
	return &LegalHandler{content: content}
}

// ShowPage serves /privacy and /terms. The slug is bound by the route.
func (h *LegalHandler) ShowPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := ctxkeys.Lang(r.Context())

		page, err := h.content.Legal(slug, lang)
		if err != nil {
			ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(lang))
			return
		}

		ui.Render(w, r, pages.Legal(lang, page))
	}
}
