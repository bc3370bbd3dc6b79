package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/components/toast"
	"github.com/rihla-travel/portal/internal/ui/pages"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// DashboardPage shows the tab named by ?tab, users by default. Tab switches
// and refreshes come from HTMX and get only the table back; each one queries
// the store again.
func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)

	key := r.URL.Query().Get("tab")
	if key == "" {
		key = intake.UsersKey
	}

	tab, err := h.dashboardService.Rows(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrUnknownService) {
			http.Redirect(w, r, "/dash", http.StatusSeeOther)
			return
		}
		slog.Error("failed to load dashboard tab", "error", err, "tab", key)
		if ui.IsHTMX(r) {
			ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, "Something went wrong")), toast.Target)
			return
		}
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := dashboardData(lang, tab)
	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.DashboardTableFragment(lang, data))
		return
	}
	ui.Render(w, r, pages.Dashboard(lang, data))
}

func (h *DashboardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)

	svc, row, err := h.dashboardService.Row(ctx, r.PathValue("tab"), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownService) || errors.Is(err, repository.ErrApplicationNotFound) {
			ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, "Record not found.")), toast.Target)
			return
		}
		slog.Error("failed to load dashboard row", "error", err, "tab", r.PathValue("tab"))
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, "Something went wrong")), toast.Target)
		return
	}

	ui.Render(w, r, pages.DashboardDetail(lang, pages.DetailData{
		Title:  svc.Title.In(lang),
		Detail: service.Detail(svc, row, lang),
	}))
}

func dashboardData(lang i18n.Lang, tab *service.DashboardTab) pages.DashboardData {
	svc := tab.Service
	data := pages.DashboardData{
		Table: pages.DashboardTable{
			Key:   svc.Key,
			Title: svc.Title.In(lang),
			Dated: svc.DateField != "",
		},
	}

	for _, s := range intake.Services() {
		data.Tabs = append(data.Tabs, pages.Tab{
			Key:    s.Key,
			Title:  s.Title.In(lang),
			Active: s.Key == svc.Key,
		})
	}

	for _, col := range svc.DisplayFields {
		data.Table.Headers = append(data.Table.Headers, service.FieldLabel(svc, lang, col))
	}
	for _, row := range tab.Rows {
		r := pages.DashboardRow{ID: row.ID()}
		for _, col := range svc.DisplayFields {
			r.Cells = append(r.Cells, service.CellValue(svc, row, col, lang))
		}
		if data.Table.Dated {
			r.Date = service.FormatValue(row[svc.DateField])
		}
		data.Table.Rows = append(data.Table.Rows, r)
	}
	return data
}
