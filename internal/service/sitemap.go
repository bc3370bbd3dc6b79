package service

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/rihla-travel/portal/internal/intake"
)

// publicRoutes are the static pages listed in the sitemap. Signed-in pages
// (profile, dashboard) stay out.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "daily"},
	{"/services", "0.9", "weekly"},
	{"/locations", "0.8", "weekly"},
	{"/contact", "0.6", "monthly"},
	{"/login", "0.3", "monthly"},
	{"/register", "0.3", "monthly"},
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type SitemapService struct {
	content *ContentService
	baseURL string
}

func NewSitemapService(content *ContentService, baseURL string) *SitemapService {
	return &SitemapService{
		content: content,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateSitemap lists the static pages, every service form, destinations
// and legal pages.
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	today := time.Now().Format("2006-01-02")
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	add := func(path, priority, freq string) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + path,
			LastMod:    today,
			ChangeFreq: freq,
			Priority:   priority,
		})
	}

	for _, route := range publicRoutes {
		add(route.Path, route.Priority, route.ChangeFreq)
	}
	for _, f := range intake.Catalog() {
		add("/services/"+f.Slug, "0.8", "monthly")
	}
	for _, slug := range s.content.DestinationSlugs() {
		add("/locations/"+slug, "0.7", "monthly")
	}
	for _, slug := range s.content.LegalSlugs() {
		add("/legal/"+slug, "0.2", "yearly")
	}

	output, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return []byte(xml.Header + string(output)), nil
}
