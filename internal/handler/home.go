package handler

import (
	"log/slog"
	"net/http"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/pages"
)

// homeServices is how many service cards the landing page shows.
const homeServices = 4

type HomeHandler struct {
	content *service.ContentService
}

func NewHomeHandler(content *service.ContentService) *HomeHandler {
	return &HomeHandler{content: content}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())

	forms := intake.Catalog()
	if len(forms) > homeServices {
		forms = forms[:homeServices]
	}

	ui.Render(w, r, pages.Home(lang, pages.HomeData{
		Destinations: h.content.Destinations(lang),
		Services:     forms,
	}))
}

func (h *HomeHandler) ServicesPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Services(ctxkeys.Lang(r.Context()), intake.Catalog()))
}

func (h *HomeHandler) LocationsPage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	ui.Render(w, r, pages.Locations(lang, h.content.Destinations(lang)))
}

func (h *HomeHandler) LocationPage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())

	page, err := h.content.Destination(r.PathValue("slug"), lang)
	if err != nil {
		slog.Debug("destination not found", "error", err)
		h.NotFoundPage(w, r)
		return
	}

	ui.Render(w, r, pages.Location(lang, page))
}

func (h *HomeHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Contact(ctxkeys.Lang(r.Context())))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(ctxkeys.Lang(r.Context())))
}
