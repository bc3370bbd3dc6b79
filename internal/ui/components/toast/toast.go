// Package toast renders the small notifications shown after HTMX actions.
package toast

import (
	"github.com/a-h/templ"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/ui"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Target is the OOB swap target appending to the layout's toast container.
const Target = "beforeend:#toast-container"

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Icon        bool
	Dismissible bool
	Duration    int // milliseconds, 0 keeps the toast until dismissed
}

func Toast(lang i18n.Lang, p Props) templ.Component {
	return ui.Fragment(lang, "toast", p)
}

// Success and Error build the two common toasts with translated titles.
func Success(lang i18n.Lang, description string) templ.Component {
	return Toast(lang, Props{
		Title:       i18n.T(lang, "Success"),
		Description: description,
		Variant:     VariantSuccess,
		Icon:        true,
		Dismissible: true,
		Duration:    5000,
	})
}

func Error(lang i18n.Lang, description string) templ.Component {
	return Toast(lang, Props{
		Title:       i18n.T(lang, "Error"),
		Description: description,
		Variant:     VariantError,
		Icon:        true,
		Dismissible: true,
	})
}
