package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rihla-travel/portal/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
	baseURL        string
}

func NewSEOHandler(sitemapService *service.SitemapService, baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: sitemapService,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Robots keeps crawlers out of the signed-in areas.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /dash\nDisallow: /profile\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
	if err != nil {
		slog.Warn("failed to write robots.txt", "error", err)
	}
}

// Sitemap generates and serves the sitemap.xml dynamically
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, err = w.Write(sitemap)
	if err != nil {
		slog.Warn("failed to write sitemap", "error", err)
	}
}
