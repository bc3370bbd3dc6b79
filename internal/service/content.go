package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/markdown"
)

var ErrPageNotFound = errors.New("page not found")

// Page is one rendered markdown file. Files are named {slug}.{lang}.md.
type Page struct {
	Slug        string
	Lang        i18n.Lang
	Title       string
	Summary     string
	Image       string
	Price       string
	Order       int
	HTML        string
	LastUpdated string
}

type pageMeta struct {
	Title       string `yaml:"title"`
	Summary     string `yaml:"summary"`
	Image       string `yaml:"image"`
	Price       string `yaml:"price"`
	Order       int    `yaml:"order"`
	LastUpdated string `yaml:"lastUpdated"`
}

// ContentService serves the destination and legal pages. Everything is
// parsed once at startup from the embedded content tree.
type ContentService struct {
	destinations map[i18n.Lang][]*Page
	legal        map[string]map[i18n.Lang]*Page
}

func NewContentService(fsys fs.FS) (*ContentService, error) {
	s := &ContentService{
		destinations: make(map[i18n.Lang][]*Page),
		legal:        make(map[string]map[i18n.Lang]*Page),
	}
	parser := markdown.NewParser()

	dest, err := loadPages(fsys, "destinations", parser)
	if err != nil {
		return nil, err
	}
	for _, p := range dest {
		s.destinations[p.Lang] = append(s.destinations[p.Lang], p)
	}
	for lang := range s.destinations {
		slices.SortStableFunc(s.destinations[lang], func(a, b *Page) int {
			return a.Order - b.Order
		})
	}

	legal, err := loadPages(fsys, "legal", parser)
	if err != nil {
		return nil, err
	}
	for _, p := range legal {
		if s.legal[p.Slug] == nil {
			s.legal[p.Slug] = make(map[i18n.Lang]*Page)
		}
		s.legal[p.Slug][p.Lang] = p
	}

	return s, nil
}

func loadPages(fsys fs.FS, dir string, parser *markdown.Parser) ([]*Page, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var pages []*Page
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		base := strings.TrimSuffix(e.Name(), ".md")
		slug, code, ok := strings.Cut(base, ".")
		lang, known := i18n.Parse(code)
		if !ok || !known {
			return nil, fmt.Errorf("%s/%s: name must be {slug}.{ar|en}.md", dir, e.Name())
		}

		source, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		var meta pageMeta
		html, err := parser.Parse(source, &meta)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s/%s: %w", dir, e.Name(), err)
		}

		title := meta.Title
		if title == "" {
			title = Humanize(strings.ReplaceAll(slug, "-", "_"))
		}

		pages = append(pages, &Page{
			Slug:        slug,
			Lang:        lang,
			Title:       title,
			Summary:     meta.Summary,
			Image:       meta.Image,
			Price:       meta.Price,
			Order:       meta.Order,
			HTML:        string(html),
			LastUpdated: parseDate(meta.LastUpdated),
		})
	}
	return pages, nil
}

// Destinations lists the best-selling destinations in display order.
func (s *ContentService) Destinations(lang i18n.Lang) []*Page {
	if pages, ok := s.destinations[lang]; ok {
		return pages
	}
	return s.destinations[i18n.Default]
}

func (s *ContentService) Destination(slug string, lang i18n.Lang) (*Page, error) {
	for _, p := range s.Destinations(lang) {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
}

// Legal returns the legal page in lang, or in the other language when only
// one translation exists.
func (s *ContentService) Legal(slug string, lang i18n.Lang) (*Page, error) {
	byLang, ok := s.legal[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	if p, ok := byLang[lang]; ok {
		return p, nil
	}
	return byLang[lang.Toggle()], nil
}

func (s *ContentService) LegalSlugs() []string {
	slugs := make([]string, 0, len(s.legal))
	for slug := range s.legal {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	return slugs
}

func (s *ContentService) DestinationSlugs() []string {
	var slugs []string
	for _, p := range s.Destinations(i18n.Default) {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func parseDate(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}
