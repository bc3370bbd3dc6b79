// Package intake describes the portal's services declaratively: which scalar
// fields and documents each application form collects, where uploads go and
// which table receives the row.
package intake

import (
	"fmt"
	"strings"

	"github.com/rihla-travel/portal/internal/i18n"
)

type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
)

type Option struct {
	Value string
	Label i18n.Text
}

// Field is one scalar input. Name is the form key, Column the table column.
type Field struct {
	Name        string
	Column      string
	Label       i18n.Text
	Placeholder i18n.Text
	Kind        Kind
	Required    bool
	Options     []Option
}

// FileField is one document input whose public URL lands in Column.
type FileField struct {
	Name     string
	Column   string
	Label    i18n.Text
	Required bool
	Accept   string
}

type Form struct {
	Slug        string
	Title       i18n.Text
	Description i18n.Text
	Note        i18n.Text // Shown above the documents, e.g. transfer instructions
	Icon        string
	Folder      string
	Table       string
	Fields      []Field
	Files       []FileField
	// Extra columns shown on the dashboard besides name, email and phone.
	DashboardExtras []string
}

func (f *Form) HasFiles() bool {
	return len(f.Files) > 0
}

// OptionLabel maps a stored select value back to its label.
func (f *Form) OptionLabel(field, value string, lang i18n.Lang) string {
	for _, fl := range f.Fields {
		if fl.Name != field && fl.Column != field {
			continue
		}
		for _, o := range fl.Options {
			if o.Value == value {
				return o.Label.In(lang)
			}
		}
	}
	return value
}

// FileColumns lists the URL columns in schema order.
func (f *Form) FileColumns() []string {
	cols := make([]string, 0, len(f.Files))
	for _, ff := range f.Files {
		cols = append(cols, ff.Column)
	}
	return cols
}

// Columns lists every column the form writes, scalar fields first.
func (f *Form) Columns() []string {
	cols := make([]string, 0, len(f.Fields)+len(f.Files))
	for _, fl := range f.Fields {
		cols = append(cols, fl.Column)
	}
	return append(cols, f.FileColumns()...)
}

// ValidationError lists the required inputs that were left empty.
type ValidationError struct {
	Fields []string
	Labels []i18n.Text
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Validate checks required fields and files. values holds trimmed or raw
// scalar input keyed by field name; files reports which file inputs carry a file.
func (f *Form) Validate(values map[string]string, files map[string]bool) error {
	verr := &ValidationError{}
	for _, fl := range f.Fields {
		if fl.Required && strings.TrimSpace(values[fl.Name]) == "" {
			verr.Fields = append(verr.Fields, fl.Name)
			verr.Labels = append(verr.Labels, fl.Label)
		}
	}
	for _, ff := range f.Files {
		if ff.Required && !files[ff.Name] {
			verr.Fields = append(verr.Fields, ff.Name)
			verr.Labels = append(verr.Labels, ff.Label)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
