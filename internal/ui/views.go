package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/model"
)

//go:embed templates
var templateFS embed.FS

// View is what every template receives. Lang is set by the caller; the
// request-scoped parts are read from the render context.
type View struct {
	Lang    i18n.Lang
	Title   string
	User    *model.User
	Profile *model.Profile
	Config  *config.Config
	CSRF    string
	Nonce   string
	Path    string
	Data    any
}

func (v View) T(key string) string {
	return i18n.T(v.Lang, key)
}

// Text picks the side of a bilingual literal for the view's language.
func (v View) Text(t i18n.Text) string {
	return t.In(v.Lang)
}

// Input merges the direction-dependent padding and alignment of a text input
// with extra classes; later classes win.
func (v View) Input(extra ...string) string {
	base := "w-full rounded-lg border border-gray-300 py-2 focus:border-sky-600 focus:ring-sky-600"
	return twmerge.Merge(append([]string{base, directionClasses(v.Lang)}, extra...)...)
}

func directionClasses(l i18n.Lang) string {
	if l.IsRTL() {
		return "pr-4 pl-10 text-right"
	}
	return "pl-4 pr-10 text-left"
}

var funcs = template.FuncMap{
	"cls": func(classes ...string) string {
		return twmerge.Merge(classes...)
	},
	"raw": func(s string) template.HTML {
		return template.HTML(s) //nolint:gosec // rendered from embedded markdown only
	},
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"view": func(v View, data any) View {
		v.Data = data
		return v
	},
	"hasPrefix": strings.HasPrefix,
	"initial": func(s string) string {
		for _, r := range strings.TrimSpace(s) {
			return strings.ToUpper(string(r))
		}
		return "?"
	},
}

type templates struct {
	base  *template.Template
	pages map[string]*template.Template
}

var views = mustParse(templateFS)

// mustParse builds one set holding the layout and partials, then one clone
// of it per page so every page can define its own "content".
func mustParse(fsys fs.FS) *templates {
	base := template.Must(template.New("").Funcs(funcs).ParseFS(fsys, "templates/partials/*.html"))

	names, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		panic(err)
	}

	t := &templates{base: base, pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		clone := template.Must(base.Clone())
		t.pages[strings.TrimSuffix(path.Base(name), ".html")] = template.Must(clone.ParseFS(fsys, name))
	}
	return t
}

func newView(ctx context.Context, lang i18n.Lang, title string, data any) View {
	return View{
		Lang:    lang,
		Title:   title,
		User:    ctxkeys.User(ctx),
		Profile: ctxkeys.Profile(ctx),
		Config:  ctxkeys.Config(ctx),
		CSRF:    ctxkeys.CSRFToken(ctx),
		Nonce:   templ.GetNonce(ctx),
		Path:    ctxkeys.URLPath(ctx),
		Data:    data,
	}
}

// Page renders the full document for the page template name.
func Page(lang i18n.Lang, name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := views.pages[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", newView(ctx, lang, title, data))
	})
}

// Fragment renders a single partial, for HTMX swaps.
func Fragment(lang i18n.Lang, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return views.base.ExecuteTemplate(w, name, newView(ctx, lang, "", data))
	})
}
