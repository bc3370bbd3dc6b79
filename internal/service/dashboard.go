package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownService = errors.New("unknown service")

// EmptyValue is shown for NULL and empty cells.
const EmptyValue = "—"

const dateLayout = "2006-01-02 15:04"

// DashboardService runs the owner dashboard queries. Every call goes to the
// store; nothing is cached between tabs or refreshes.
type DashboardService struct {
	applications repository.ApplicationRepository
}

func NewDashboardService(applications repository.ApplicationRepository) *DashboardService {
	return &DashboardService{applications: applications}
}

type DashboardTab struct {
	Service *intake.Service
	Rows    []model.Row
}

// Rows loads the most recent records of the tab named key.
func (s *DashboardService) Rows(ctx context.Context, key string) (*DashboardTab, error) {
	svc, ok := intake.LookupService(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, key)
	}

	rows, err := s.applications.Select(ctx, repository.Query{
		Table:   svc.Table,
		Columns: svc.Columns(),
		OrderBy: svc.OrderBy(),
		Limit:   intake.DashboardLimit,
	})
	if err != nil {
		return nil, err
	}

	return &DashboardTab{Service: svc, Rows: rows}, nil
}

// Row loads a single record of the tab named key.
func (s *DashboardService) Row(ctx context.Context, key, id string) (*intake.Service, model.Row, error) {
	svc, ok := intake.LookupService(key)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownService, key)
	}

	row, err := s.applications.ByID(ctx, svc.Table, svc.Columns(), id)
	if err != nil {
		return nil, nil, err
	}
	return svc, row, nil
}

type DetailField struct {
	Label string
	Value string
}

type DetailFile struct {
	Label   string
	URL     string // empty when no file was uploaded
	IsImage bool
}

type RowDetail struct {
	ID     string
	Fields []DetailField
	Date   string
	Files  []DetailFile
}

// Detail lays out one row for the detail view in lang.
func Detail(svc *intake.Service, row model.Row, lang i18n.Lang) RowDetail {
	d := RowDetail{ID: row.ID()}

	for _, col := range svc.DisplayFields {
		d.Fields = append(d.Fields, DetailField{
			Label: FieldLabel(svc, lang, col),
			Value: CellValue(svc, row, col, lang),
		})
	}

	if svc.DateField != "" {
		d.Date = FormatValue(row[svc.DateField])
	}

	for _, f := range svc.FileFields {
		url, _ := row[f.Column].(string)
		d.Files = append(d.Files, DetailFile{
			Label:   f.Label.In(lang),
			URL:     url,
			IsImage: url != "" && isImage(url),
		})
	}
	return d
}

// FieldLabel resolves a column header: the static label table first, then
// the form's own field label, then the humanized column name.
func FieldLabel(svc *intake.Service, lang i18n.Lang, column string) string {
	if t, ok := intake.StaticLabel(column); ok {
		return t.In(lang)
	}
	if svc != nil && svc.Form != nil {
		for _, fl := range svc.Form.Fields {
			if fl.Column == column {
				return fl.Label.In(lang)
			}
		}
	}
	return Humanize(column)
}

var titleCaser = cases.Title(language.English)

// Humanize turns "num_guests" into "Num Guests".
func Humanize(column string) string {
	return titleCaser.String(strings.ReplaceAll(column, "_", " "))
}

// CellValue formats row[column], mapping stored select values to their labels.
func CellValue(svc *intake.Service, row model.Row, column string, lang i18n.Lang) string {
	v := FormatValue(row[column])
	if v == EmptyValue || svc == nil || svc.Form == nil {
		return v
	}
	return svc.Form.OptionLabel(column, v, lang)
}

// FormatValue renders a scanned value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return EmptyValue
	case time.Time:
		return x.UTC().Format(dateLayout)
	case *time.Time:
		if x == nil {
			return EmptyValue
		}
		return x.UTC().Format(dateLayout)
	case string:
		if x == "" {
			return EmptyValue
		}
		if t, err := time.Parse(time.RFC3339Nano, x); err == nil {
			return t.UTC().Format(dateLayout)
		}
		return x
	case []byte:
		return FormatValue(string(x))
	}
	return fmt.Sprint(v)
}

func isImage(url string) bool {
	switch strings.ToLower(path.Ext(url)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}
