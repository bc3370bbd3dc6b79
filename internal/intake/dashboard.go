package intake

import "github.com/rihla-travel/portal/internal/i18n"

// DashboardLimit caps how many recent rows a dashboard tab loads.
const DashboardLimit = 500

// FileColumn is a labeled file-URL column shown in the row detail view.
type FileColumn struct {
	Label  i18n.Text
	Column string
}

// Service describes one dashboard tab.
type Service struct {
	Key           string
	Title         i18n.Text
	Table         string
	DisplayFields []string
	// DateField orders the tab when set; otherwise rows are ordered by id.
	DateField  string
	FileFields []FileColumn
	Form       *Form
}

// UsersKey is the tab listing registered users.
const UsersKey = "users"

var usersService = &Service{
	Key:           UsersKey,
	Title:         i18n.Text{Ar: "المستخدمين المسجلين", En: "Registered Users"},
	Table:         "user_profiles",
	DisplayFields: []string{"display_name", "phone", "email"},
}

func serviceFor(f *Form) *Service {
	display := []string{"full_name"}
	for _, fl := range f.Fields {
		if fl.Name == "phone" {
			display = append(display, fl.Column)
		}
	}
	display = append(display, "email")
	display = append(display, f.DashboardExtras...)

	files := make([]FileColumn, 0, len(f.Files))
	for _, ff := range f.Files {
		files = append(files, FileColumn{Label: ff.Label, Column: ff.Column})
	}

	return &Service{
		Key:           f.Slug,
		Title:         f.Title,
		Table:         f.Table,
		DisplayFields: display,
		DateField:     "created_at",
		FileFields:    files,
		Form:          f,
	}
}

var services = func() []*Service {
	s := []*Service{usersService}
	for _, f := range forms {
		s = append(s, serviceFor(f))
	}
	return s
}()

// Services returns the dashboard tabs, users first.
func Services() []*Service {
	return services
}

// LookupService returns the tab for key.
func LookupService(key string) (*Service, bool) {
	for _, s := range services {
		if s.Key == key {
			return s, true
		}
	}
	return nil, false
}

// Columns is the select list for the tab: display fields, the date field,
// every file column and id, without duplicates.
func (s *Service) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		cols = append(cols, c)
	}
	for _, c := range s.DisplayFields {
		add(c)
	}
	add(s.DateField)
	for _, f := range s.FileFields {
		add(f.Column)
	}
	add("id")
	return cols
}

// OrderBy is the date field when configured, else id.
func (s *Service) OrderBy() string {
	if s.DateField != "" {
		return s.DateField
	}
	return "id"
}

var fieldLabels = map[string]i18n.Text{
	"full_name":     {Ar: "الاسم", En: "Name"},
	"display_name":  {Ar: "الاسم", En: "Name"},
	"phone":         {Ar: "الموبايل", En: "Mobile"},
	"phone_number":  {Ar: "الموبايل", En: "Mobile"},
	"email":         {Ar: "البريد الإلكتروني", En: "Email"},
	"contract_type": {Ar: "نوع العقد", En: "Contract Type"},
	"created_at":    {Ar: "تاريخ الإنشاء", En: "Created At"},
	"date_from":     {Ar: "من", En: "From"},
	"date_to":       {Ar: "إلى", En: "To"},
	"country":       {Ar: "الدولة", En: "Country"},
}

// StaticLabel returns the fixed label for column, if one exists.
func StaticLabel(column string) (i18n.Text, bool) {
	t, ok := fieldLabels[column]
	return t, ok
}
