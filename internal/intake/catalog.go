package intake

import (
	"fmt"

	"github.com/rihla-travel/portal/internal/i18n"
)

const (
	acceptDocs   = "image/*,application/pdf"
	acceptImages = "image/*"
)

// Shared scalar inputs. Every form posts the phone as "phone"; only the
// column differs between tables.
func fullNameField() Field {
	return Field{
		Name:        "full_name",
		Column:      "full_name",
		Label:       i18n.Text{Ar: "الاسم الكامل", En: "Full Name"},
		Placeholder: i18n.Text{Ar: "اكتب اسمك الكامل", En: "Enter your full name"},
		Kind:        KindText,
		Required:    true,
	}
}

func emailField() Field {
	return Field{
		Name:        "email",
		Column:      "email",
		Label:       i18n.Text{Ar: "البريد الإلكتروني", En: "Email"},
		Placeholder: i18n.Text{Ar: "example@email.com", En: "example@email.com"},
		Kind:        KindEmail,
		Required:    true,
	}
}

func phoneField(column string) Field {
	return Field{
		Name:        "phone",
		Column:      column,
		Label:       i18n.Text{Ar: "رقم الهاتف", En: "Phone Number"},
		Placeholder: i18n.Text{Ar: "أدخل رقم الهاتف", En: "Enter your phone number"},
		Kind:        KindTel,
		Required:    true,
	}
}

func countryField(label i18n.Text, options []Option) Field {
	return Field{
		Name:     "country",
		Column:   "country",
		Label:    label,
		Kind:     KindSelect,
		Required: true,
		Options:  options,
	}
}

func doc(name, column string, label i18n.Text) FileField {
	return FileField{Name: name, Column: column, Label: label, Required: true, Accept: acceptDocs}
}

func photo(name, column string, label i18n.Text) FileField {
	return FileField{Name: name, Column: column, Label: label, Required: true, Accept: acceptImages}
}

type destinationPrice struct {
	en, ar string
	price  int
}

var middleEastPrices = []destinationPrice{
	{"United Arab Emirates", "الإمارات العربية المتحدة", 300},
	{"Saudi Arabia", "المملكة العربية السعودية", 250},
	{"Qatar", "قطر", 220},
	{"Kuwait", "الكويت", 200},
	{"Bahrain", "البحرين", 180},
	{"Oman", "عُمان", 200},
	{"Jordan", "الأردن", 150},
	{"Lebanon", "لبنان", 130},
}

func middleEastOptions() []Option {
	opts := make([]Option, 0, len(middleEastPrices))
	for _, d := range middleEastPrices {
		opts = append(opts, Option{
			Value: d.en,
			Label: i18n.Text{
				Ar: fmt.Sprintf("%s - %d دولار", d.ar, d.price),
				En: fmt.Sprintf("%s - $%d", d.en, d.price),
			},
		})
	}
	return opts
}

// Stored values stay in English regardless of the visitor's language.
func countryOptions(names ...i18n.Text) []Option {
	opts := make([]Option, 0, len(names))
	for _, n := range names {
		opts = append(opts, Option{Value: n.En, Label: n})
	}
	return opts
}

var (
	canada      = i18n.Text{Ar: "كندا", En: "Canada"}
	germany     = i18n.Text{Ar: "ألمانيا", En: "Germany"}
	australia   = i18n.Text{Ar: "أستراليا", En: "Australia"}
	sweden      = i18n.Text{Ar: "السويد", En: "Sweden"}
	netherlands = i18n.Text{Ar: "هولندا", En: "Netherlands"}
	uae         = i18n.Text{Ar: "الإمارات", En: "UAE"}
	qatar       = i18n.Text{Ar: "قطر", En: "Qatar"}
	saudi       = i18n.Text{Ar: "السعودية", En: "Saudi Arabia"}
	japan       = i18n.Text{Ar: "اليابان", En: "Japan"}
	usa         = i18n.Text{Ar: "الولايات المتحدة", En: "United States"}
)

var forms = []*Form{
	{
		Slug:        "europe-visa",
		Title:       i18n.Text{Ar: "تجهيز ملفات السياحة لأوروبا", En: "Preparing Europe Travel Files"},
		Description: i18n.Text{Ar: "نساعدك في تجهيز كافة الأوراق والمستندات المطلوبة للحصول على تأشيرات السياحة الأوروبية بسهولة وسرعة.", En: "We help you prepare all the required documents to obtain European tourist visas quickly and easily."},
		Note:        i18n.Text{Ar: "من فضلك تأكد من صحة البيانات والملفات المرفقة", En: "Please make sure your details and attached files are correct"},
		Icon:        "globe-europe",
		Folder:      "europe-visa",
		Table:       "europe_visa_applications",
		Fields:      []Field{fullNameField(), emailField(), phoneField("phone_number")},
		Files: []FileField{
			doc("passport", "passport_url", i18n.Text{Ar: "جواز السفر", En: "Passport"}),
			doc("birth_certificate", "birth_certificate_url", i18n.Text{Ar: "شهادة الميلاد", En: "Birth Certificate"}),
			doc("bank_statement", "bank_statement_url", i18n.Text{Ar: "كشف حساب بنكي لآخر 6 شهور", En: "Bank Statement (Last 6 Months)"}),
			doc("utility_bill", "utility_bill_url", i18n.Text{Ar: "فاتورة مرافق حديثة", En: "Recent Utility Bill"}),
			photo("personal_photo", "personal_photo_url", i18n.Text{Ar: "صورة شخصية بخلفية بيضاء", En: "Personal Photo (White Background)"}),
			doc("transfer_receipt", "transfer_receipt_url", i18n.Text{Ar: "إيصال تحويل المبلغ 150 دولار أمريكي", En: "Transfer Receipt of 150 USD"}),
		},
	},
	{
		Slug:        "work-contracts",
		Title:       i18n.Text{Ar: "عقود عمل معتمدة في أوروبا", En: "Certified Work Contracts in Europe"},
		Description: i18n.Text{Ar: "نوفر عقود عمل موثوقة وقانونية في الدول الأوروبية بمختلف التخصصات.", En: "We provide reliable and legal work contracts across European countries in various fields."},
		Icon:        "briefcase",
		Folder:      "work-contracts",
		Table:       "work_contract_applications",
		Fields: []Field{
			fullNameField(), emailField(), phoneField("phone"),
			{
				Name:     "contract_type",
				Column:   "contract_type",
				Label:    i18n.Text{Ar: "نوع العقد", En: "Contract Type"},
				Kind:     KindSelect,
				Required: true,
				Options: []Option{
					{Value: "seasonal", Label: i18n.Text{Ar: "عقود موسمية", En: "Seasonal Contract"}},
					{Value: "two_years", Label: i18n.Text{Ar: "عقود عامان", En: "Two-Year Contract"}},
				},
			},
		},
		Files: []FileField{
			doc("passport", "passport_url", i18n.Text{Ar: "جواز السفر", En: "Passport"}),
			photo("personal_photo", "personal_photo_url", i18n.Text{Ar: "صورة شخصية بخلفية بيضاء", En: "Personal Photo (White Background)"}),
			doc("cv", "cv_url", i18n.Text{Ar: "السيرة الذاتية (تشمل الخبرات والشهادات)", En: "CV (Including Experience & Certificates)"}),
			doc("transfer_receipt", "transfer_receipt_url", i18n.Text{
				Ar: "إيصال تحويل مبلغ 1000 دولار أمريكي إلى رقم الحساب (0000) *يُسترد في حالة الرفض",
				En: "Transfer receipt of $1000 USD to account number (0000) *Refundable if rejected",
			}),
		},
		DashboardExtras: []string{"contract_type"},
	},
	{
		Slug:        "middleeast-visas",
		Title:       i18n.Text{Ar: "تأشيرات السياحة والحجوزات الفندقية للشرق الأوسط", En: "Tourist Visas & Hotel Bookings for the Middle East"},
		Description: i18n.Text{Ar: "احصل على تأشيرات السفر والحجوزات الفندقية بسهولة وأمان لأي دولة في الشرق الأوسط.", En: "Get travel visas and hotel bookings easily and safely for any Middle Eastern country."},
		Note:        i18n.Text{Ar: "يُرجى تحويل المبلغ المحدد بالدولار الأمريكي إلى رقم الحساب (000000).", En: "Transfer the corresponding amount in USD to account (000000)."},
		Icon:        "passport",
		Folder:      "middleeast-visas",
		Table:       "middleeast_visa_applications",
		Fields: []Field{
			fullNameField(), emailField(), phoneField("phone"),
			countryField(i18n.Text{Ar: "الدولة المطلوبة", En: "Destination Country"}, middleEastOptions()),
		},
		Files: []FileField{
			doc("passport", "passport_url", i18n.Text{Ar: "جواز السفر", En: "Passport"}),
			photo("personal_photo", "personal_photo_url", i18n.Text{Ar: "صورة 4×6 بخلفية بيضاء", En: "Photo 4x6 (white background)"}),
			doc("transfer_receipt", "transfer_receipt_url", i18n.Text{Ar: "إيصال تحويل المبلغ", En: "Transfer Receipt"}),
		},
	},
	{
		Slug:        "flight-tickets",
		Title:       i18n.Text{Ar: "تذاكر الطيران بأرخص الأسعار", En: "Cheap Flight Tickets"},
		Description: i18n.Text{Ar: "نقارن بين مئات الرحلات لتوفير أفضل الأسعار بأمان وضمان.", En: "We compare hundreds of flights to provide the best and safest ticket prices."},
		Note:        i18n.Text{Ar: "أدخل متوسط تاريخ الرحلة وسنرسل لك الرحلات المتاحة إلى وجهتك خلال الفترة المحددة.", En: "Enter your approximate travel dates and we will send you the available flights for that period."},
		Icon:        "plane-departure",
		Folder:      "flight-tickets",
		Table:       "flight_ticket_requests",
		Fields: []Field{
			fullNameField(), emailField(), phoneField("phone"),
			{Name: "from_airport", Column: "from_airport", Label: i18n.Text{Ar: "من مطار", En: "From Airport"}, Kind: KindText, Required: true},
			{Name: "to_airport", Column: "to_airport", Label: i18n.Text{Ar: "إلى مطار", En: "To Airport"}, Kind: KindText, Required: true},
			{Name: "date_from", Column: "date_from", Label: i18n.Text{Ar: "من تاريخ", En: "From Date"}, Kind: KindDate, Required: true},
			{Name: "date_to", Column: "date_to", Label: i18n.Text{Ar: "إلى تاريخ", En: "To Date"}, Kind: KindDate, Required: true},
		},
		Files: []FileField{
			doc("passport", "passport_url", i18n.Text{Ar: "إرفاق جواز السفر", En: "Attach Passport"}),
		},
	},
	{
		Slug:        "global-work-visas",
		Title:       i18n.Text{Ar: "توفير تأشيرات العمل لجميع دول العالم", En: "Work Visas for All Countries"},
		Description: i18n.Text{Ar: "خدمات متكاملة لاستخراج تأشيرات العمل والإجراءات القانونية للعمل في أي دولة تختارها.", En: "End-to-end services to obtain work visas and handle legal procedures for any country you choose."},
		Icon:        "handshake",
		Folder:      "global-work-visas",
		Table:       "global_work_visas",
		Fields: []Field{
			fullNameField(), emailField(), phoneField("phone_number"),
			countryField(i18n.Text{Ar: "الدولة المطلوبة", En: "Target Country"}, countryOptions(canada, germany, australia, sweden, japan, usa)),
		},
		Files: []FileField{
			photo("profile_photo", "profile_photo_url", i18n.Text{Ar: "صورة شخصية 4×6 بخلفية بيضاء", En: "Profile Photo 4x6 (White Background)"}),
			{Name: "driving_license", Column: "driving_license_url", Label: i18n.Text{Ar: "رخصة القيادة (إن وجدت)", En: "Driving License (if any)"}, Accept: acceptDocs},
			doc("cv", "cv_url", i18n.Text{Ar: "السيرة الذاتية", En: "CV"}),
		},
	},
	{
		Slug:        "global-jobs",
		Title:       i18n.Text{Ar: "توفير فرص العمل في جميع دول العالم", En: "Job Opportunities Worldwide"},
		Description: i18n.Text{Ar: "نوفر فرص عمل حقيقية مع شركات وشركاء حول العالم متناسبة مع مهاراتك وخبراتك.", En: "We provide real job opportunities with partners and companies worldwide that match your skills and experience."},
		Note:        i18n.Text{Ar: "برجاء إرفاق الهوية إذا كنت مواطناً، أو الإقامة إذا كنت أجنبياً", En: "Attach your national ID if you are a citizen, or your residence permit otherwise"},
		Icon:        "globe",
		Folder:      "global-jobs",
		Table:       "global_jobs_applications",
		Fields: []Field{
			fullNameField(), phoneField("phone_number"), emailField(),
			countryField(i18n.Text{Ar: "اختر الدولة", En: "Select Country"}, countryOptions(canada, germany, australia, sweden, netherlands, uae, qatar, saudi)),
			{Name: "profession", Column: "profession", Label: i18n.Text{Ar: "المهنة", En: "Profession"}, Kind: KindText, Required: true},
			{Name: "experience_years", Column: "experience_years", Label: i18n.Text{Ar: "عدد سنوات الخبرة", En: "Years of Experience"}, Kind: KindNumber, Required: true},
		},
		Files: []FileField{
			doc("id_or_residence", "id_or_residence_url", i18n.Text{Ar: "الهوية / الإقامة", En: "ID or Residence"}),
			doc("cv", "cv_url", i18n.Text{Ar: "السيرة الذاتية", En: "CV / Resume"}),
		},
	},
	{
		Slug:        "investment-consulting",
		Title:       i18n.Text{Ar: "الاستشارات الاستثمارية من خبراء متخصصين", En: "Investment Consulting by Expert Advisors"},
		Description: i18n.Text{Ar: "استشارات استثمارية متخصصة من فريق خبراء لمساعدتك في اتخاذ قرارات مالية واستثمارية مدروسة.", En: "Specialized investment advice from a team of experts to help you make well-informed financial and investment decisions."},
		Icon:        "chart-line",
		Table:       "investment_consulting",
		Fields: []Field{
			fullNameField(),
			{
				Name:     "phone",
				Column:   "phone_number",
				Label:    i18n.Text{Ar: "رقم الموبايل (واتساب)", En: "WhatsApp Number"},
				Kind:     KindTel,
				Required: true,
			},
			emailField(),
			{
				Name:     "investment_type",
				Column:   "investment_type",
				Label:    i18n.Text{Ar: "نوع الاستثمار", En: "Investment Type"},
				Kind:     KindSelect,
				Required: true,
				Options: []Option{
					{Value: "Real Estate (Buying properties in active markets)", Label: i18n.Text{Ar: "الاستثمار العقاري (شراء عقارات في دول نشطة عقارياً)", En: "Real Estate (Buying properties in active markets)"}},
					{Value: "Commercial Investment (Providing goods in consuming markets)", Label: i18n.Text{Ar: "الاستثمار التجاري (توفير السلع المطلوبة في الدول المستهلكة)", En: "Commercial Investment (Providing goods in consuming markets)"}},
					{Value: "Other types of investments", Label: i18n.Text{Ar: "استثمارات متنوعة أخرى", En: "Other types of investments"}},
				},
			},
			{Name: "budget", Column: "investment_budget", Label: i18n.Text{Ar: "الميزانية المتاحة للاستثمار (بالدولار)", En: "Available Budget (USD)"}, Kind: KindNumber, Required: true},
		},
	},
	{
		Slug:        "events-and-travel",
		Title:       i18n.Text{Ar: "تجهيز وتنظيم الحفلات والمؤتمرات والرحلات", En: "Events, Conferences & Travel Planning"},
		Description: i18n.Text{Ar: "تنظيم شامل للفعاليات والحفلات العامة والمؤتمرات والرحلات السياحية، من التخطيط حتى التنفيذ.", En: "Full-service planning for events, public parties, conferences and tour packages, from planning to execution."},
		Note:        i18n.Text{Ar: "يرجى التأكد من إرفاق المستندات المطلوبة التالية:", En: "Please make sure to attach the following documents:"},
		Icon:        "calendar",
		Folder:      "events-service",
		Table:       "events_service_requests",
		Fields: []Field{
			fullNameField(), emailField(), phoneField("phone_number"),
			{
				Name:   "event_type",
				Column: "event_type",
				Label:  i18n.Text{Ar: "نوع الحدث", En: "Event Type"},
				Kind:   KindSelect,
				Options: []Option{
					{Value: "Conference", Label: i18n.Text{Ar: "مؤتمر", En: "Conference"}},
					{Value: "Public Event", Label: i18n.Text{Ar: "حفلة عامة", En: "Public Event"}},
					{Value: "Tour", Label: i18n.Text{Ar: "رحلة سياحية", En: "Tour"}},
				},
			},
			{Name: "event_date", Column: "event_date", Label: i18n.Text{Ar: "تاريخ الحدث", En: "Event Date"}, Kind: KindDate, Required: true},
			{Name: "location", Column: "location", Label: i18n.Text{Ar: "الموقع المقترح", En: "Suggested Location"}, Placeholder: i18n.Text{Ar: "اكتب موقع إقامة الحدث", En: "Enter the event location"}, Kind: KindText, Required: true},
			{Name: "num_guests", Column: "num_guests", Label: i18n.Text{Ar: "عدد الحضور المتوقع", En: "Expected Guests"}, Placeholder: i18n.Text{Ar: "اكتب عدد الحضور", En: "Enter number of guests"}, Kind: KindNumber, Required: true},
			{Name: "special_requests", Column: "special_requests", Label: i18n.Text{Ar: "طلبات أو ملاحظات خاصة", En: "Special Requests / Notes"}, Placeholder: i18n.Text{Ar: "اكتب أي تفاصيل إضافية هنا", En: "Add any extra details here"}, Kind: KindTextarea},
		},
		Files: []FileField{
			doc("id_card", "id_card_url", i18n.Text{Ar: "الهوية الشخصية", En: "ID Card"}),
			photo("venue_photos", "venue_photos_url", i18n.Text{Ar: "صور موقع الحدث", En: "Venue Photos"}),
			doc("transfer_receipt", "transfer_receipt_url", i18n.Text{Ar: "إيصال التحويل المسبق", En: "Advance Transfer Receipt"}),
		},
		DashboardExtras: []string{"event_type", "special_requests"},
	},
}

var bySlug = func() map[string]*Form {
	m := make(map[string]*Form, len(forms))
	for _, f := range forms {
		m[f.Slug] = f
	}
	return m
}()

// Catalog returns every service form in display order.
func Catalog() []*Form {
	return forms
}

// Lookup returns the form for slug.
func Lookup(slug string) (*Form, bool) {
	f, ok := bySlug[slug]
	return f, ok
}

// ByTable returns the form writing to table.
func ByTable(table string) (*Form, bool) {
	for _, f := range forms {
		if f.Table == table {
			return f, true
		}
	}
	return nil, false
}
