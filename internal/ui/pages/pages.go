// Package pages builds the portal's pages. Every constructor takes the
// visitor's language explicitly; nothing reads it from a global.
package pages

import (
	"github.com/a-h/templ"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/validation"
)

// Notice is an inline message above a form.
type Notice struct {
	Text    string
	IsError bool
}

func ErrorNotice(lang i18n.Lang, key string) *Notice {
	return &Notice{Text: i18n.T(lang, key), IsError: true}
}

func InfoNotice(lang i18n.Lang, key string) *Notice {
	return &Notice{Text: i18n.T(lang, key)}
}

type HomeData struct {
	Destinations []*service.Page
	Services     []*intake.Form
}

func Home(lang i18n.Lang, data HomeData) templ.Component {
	return ui.Page(lang, "home", i18n.T(lang, "Home"), data)
}

func Services(lang i18n.Lang, forms []*intake.Form) templ.Component {
	return ui.Page(lang, "services", i18n.T(lang, "Our Services"), forms)
}

// IntakeForm is one service form with the values to show. Values are kept
// after a failed submission; files never are.
type IntakeForm struct {
	Form     *intake.Form
	Values   map[string]string
	Missing  map[string]bool
	SignedIn bool
	Notice   *Notice
}

func (f IntakeForm) Value(name string) string {
	return f.Values[name]
}

func ServiceForm(lang i18n.Lang, data IntakeForm) templ.Component {
	return ui.Page(lang, "service", data.Form.Title.In(lang), data)
}

// IntakeFormFragment is the swappable form alone.
func IntakeFormFragment(lang i18n.Lang, data IntakeForm) templ.Component {
	return ui.Fragment(lang, "intake-form", data)
}

func Locations(lang i18n.Lang, destinations []*service.Page) templ.Component {
	return ui.Page(lang, "locations", i18n.T(lang, "Destinations"), destinations)
}

func Location(lang i18n.Lang, page *service.Page) templ.Component {
	return ui.Page(lang, "location", page.Title, page)
}

func Legal(lang i18n.Lang, page *service.Page) templ.Component {
	return ui.Page(lang, "legal", page.Title, page)
}

func Contact(lang i18n.Lang) templ.Component {
	return ui.Page(lang, "contact", i18n.T(lang, "Contact Us"), nil)
}

func NotFound(lang i18n.Lang) templ.Component {
	return ui.Page(lang, "not-found", i18n.T(lang, "Page not found"), nil)
}

type LoginData struct {
	Email         string
	Notice        *Notice
	GoogleEnabled bool
}

func Login(lang i18n.Lang, data LoginData) templ.Component {
	return ui.Page(lang, "login", i18n.T(lang, "Sign in"), data)
}

type RegisterData struct {
	Name          string
	Email         string
	CountryCode   string
	Phone         string
	Notice        *Notice
	CountryCodes  []string
	GoogleEnabled bool
}

func Register(lang i18n.Lang, data RegisterData) templ.Component {
	if data.CountryCodes == nil {
		data.CountryCodes = validation.CountryCodes
	}
	if data.CountryCode == "" {
		data.CountryCode = validation.CountryCodes[0]
	}
	return ui.Page(lang, "register", i18n.T(lang, "Create account"), data)
}

type ForgotPasswordData struct {
	Email  string
	Notice *Notice
	Sent   bool
}

func ForgotPassword(lang i18n.Lang, data ForgotPasswordData) templ.Component {
	return ui.Page(lang, "forgot-password", i18n.T(lang, "Reset password"), data)
}

type ResetPasswordData struct {
	Token   string
	Notice  *Notice
	Invalid bool
}

func ResetPassword(lang i18n.Lang, data ResetPasswordData) templ.Component {
	return ui.Page(lang, "reset-password", i18n.T(lang, "Reset password"), data)
}

// ApplicationGroup lists the user's rows of one service, formatted.
type ApplicationGroup struct {
	Title string
	Key   string
	Items []ApplicationItem
}

type ApplicationItem struct {
	Reference string
	Submitted string
}

type ProfileData struct {
	Name         string
	Email        string
	CountryCode  string
	Phone        string
	AvatarURL    string
	HasPassword  bool
	CountryCodes []string
	Applications []ApplicationGroup
}

func Profile(lang i18n.Lang, data ProfileData) templ.Component {
	if data.CountryCodes == nil {
		data.CountryCodes = validation.CountryCodes
	}
	return ui.Page(lang, "profile", i18n.T(lang, "My profile"), data)
}

// AvatarFragment swaps the avatar image after an upload.
func AvatarFragment(lang i18n.Lang, data ProfileData) templ.Component {
	return ui.Fragment(lang, "avatar", data)
}

// DashboardTable is the active tab, ready to print.
type DashboardTable struct {
	Key     string
	Title   string
	Headers []string
	Rows    []DashboardRow
	Dated   bool
}

type DashboardRow struct {
	ID    string
	Cells []string
	Date  string
}

type Tab struct {
	Key    string
	Title  string
	Active bool
}

type DashboardData struct {
	Tabs  []Tab
	Table DashboardTable
}

func Dashboard(lang i18n.Lang, data DashboardData) templ.Component {
	return ui.Page(lang, "dashboard", i18n.T(lang, "Owner dashboard"), data)
}

// DashboardTableFragment is swapped in on tab switch and refresh.
func DashboardTableFragment(lang i18n.Lang, data DashboardData) templ.Component {
	return ui.Fragment(lang, "dash-table", data)
}

type DetailData struct {
	Title  string
	Detail service.RowDetail
}

func DashboardDetail(lang i18n.Lang, data DetailData) templ.Component {
	return ui.Fragment(lang, "dash-detail", data)
}
