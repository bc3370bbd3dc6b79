package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// arabic maps English source strings to their Arabic translation.
// English output is the key itself.
var arabic = map[string]string{
	// Layout
	"Home":                 "الرئيسية",
	"Book":                 "احجز",
	"Services":             "الخدمات",
	"Destinations":         "الوجهات",
	"Contact":              "اتصل بنا",
	"Contact Us":           "اتصل بنا",
	"Book now!":            "إحجز الآن!",
	"Sign in":              "تسجيل الدخول",
	"Sign out":             "تسجيل الخروج",
	"Profile":              "الملف الشخصي",
	"Dashboard":            "لوحة التحكم",
	"Travel made easy":     "السفر أصبح أسهل",
	"Quick Links":          "روابط سريعة",
	"Get in Touch":         "تواصل معنا",
	"All Rights Reserved.": "جميع الحقوق محفوظة.",
	"Privacy Policy":       "سياسة الخصوصية",
	"Terms of Service":     "شروط الاستخدام",
	"Last updated":         "آخر تحديث",
	"Page not found":       "الصفحة غير موجودة",
	"Back to home":         "العودة للرئيسية",
	"Something went wrong": "حدث خطأ ما",

	// Home
	"Discover the world with us":                                    "اكتشف العالم معنا",
	"Visas, flights, work contracts and events handled end to end.": "تأشيرات وتذاكر طيران وعقود عمل وفعاليات من البداية حتى النهاية.",
	"Explore Now!":                       "استكشف الآن!",
	"Book your next trip":                "احجز رحلتك القادمة",
	"Tell us where you want to go and we will handle the rest.": "أخبرنا إلى أين تريد الذهاب وسنتولى الباقي.",
	"Best-selling destinations":          "الوجهات الأكثر مبيعاً",
	"Have a look at our services!":       "تعرّف على خدماتنا!",
	"View All Services":                  "عرض جميع الخدمات",
	"Our Services":                       "خدماتنا",
	"Apply now":                          "قدّم الآن",
	"Reach us by phone, WhatsApp or email and our team will get back to you.": "تواصل معنا عبر الهاتف أو واتساب أو البريد الإلكتروني وسيعود إليك فريقنا.",
	"Phone":                              "الهاتف",
	"WhatsApp":                           "واتساب",
	"Email":                              "البريد الإلكتروني",

	// Intake forms
	"Required documents":                    "المستندات المطلوبة",
	"Submit Application":                    "إرسال الطلب",
	"Submitting...":                         "جارٍ الإرسال...",
	"Select an option":                      "اختر",
	"Optional":                              "اختياري",
	"Success":                               "تم بنجاح",
	"Your application has been submitted successfully.": "تم إرسال طلبك بنجاح.",
	"Error":                                 "خطأ",
	"An error occurred while submitting.":   "حدث خطأ أثناء الإرسال.",
	"Please fill in all required fields.":   "يرجى تعبئة جميع الحقول المطلوبة.",
	"Missing:":                              "الحقول الناقصة:",
	"You must log in first.":                "يجب تسجيل الدخول أولاً.",
	"The uploaded files are too large.":     "حجم الملفات المرفوعة كبير جداً.",
	"Please re-select your files before resubmitting.": "يرجى إعادة اختيار الملفات قبل الإرسال مرة أخرى.",

	// Identity
	"Create account":                         "إنشاء حساب",
	"Full name":                              "الاسم الكامل",
	"Password":                               "كلمة المرور",
	"Phone number":                           "رقم الهاتف",
	"Country code":                           "رمز الدولة",
	"Forgot your password?":                  "نسيت كلمة المرور؟",
	"Don't have an account?":                 "ليس لديك حساب؟",
	"Already have an account?":               "لديك حساب بالفعل؟",
	"Continue with Google":                   "المتابعة باستخدام Google",
	"Reset password":                         "إعادة تعيين كلمة المرور",
	"Send reset link":                        "إرسال رابط إعادة التعيين",
	"New password":                           "كلمة المرور الجديدة",
	"Update password":                        "تحديث كلمة المرور",
	"Password updated. Please sign in.":      "تم تحديث كلمة المرور. يرجى تسجيل الدخول.",
	"If an account exists for that email, we sent a reset link.": "إذا كان هناك حساب بهذا البريد فقد أرسلنا رابط إعادة التعيين.",
	"Account created. Please check your email to verify your account.": "تم إنشاء الحساب. يرجى التحقق من بريدك الإلكتروني لتفعيل الحساب.",
	"Email verified. You can sign in now.":   "تم تأكيد البريد الإلكتروني. يمكنك تسجيل الدخول الآن.",
	"Invalid or expired link.":               "الرابط غير صالح أو منتهي الصلاحية.",
	"Invalid email or password.":             "البريد الإلكتروني أو كلمة المرور غير صحيحة.",
	"Please verify your email before signing in.": "يرجى تأكيد بريدك الإلكتروني قبل تسجيل الدخول.",
	"Email and password are required.":       "البريد الإلكتروني وكلمة المرور مطلوبان.",
	"Please provide a valid email address.":  "يرجى إدخال بريد إلكتروني صالح.",
	"An account with this email already exists.": "يوجد حساب بهذا البريد الإلكتروني بالفعل.",
	"Password must be at least 8 characters.": "يجب أن تتكون كلمة المرور من 8 أحرف على الأقل.",
	"Password is too common, please choose a stronger one.": "كلمة المرور شائعة جداً، يرجى اختيار كلمة أقوى.",
	"Please enter your name.":                "يرجى إدخال اسمك.",
	"Please enter a valid phone number.":     "يرجى إدخال رقم هاتف صالح.",
	"An error occurred. Please try again.":   "حدث خطأ. يرجى المحاولة مرة أخرى.",
	"Google sign-in failed. Please try again.": "فشل تسجيل الدخول عبر Google. يرجى المحاولة مرة أخرى.",

	// Profile
	"My profile":          "ملفي الشخصي",
	"Save changes":        "حفظ التغييرات",
	"Profile updated.":    "تم تحديث الملف الشخصي.",
	"My applications":     "طلباتي",
	"No applications yet": "لا توجد طلبات بعد",
	"Change password":     "تغيير كلمة المرور",
	"Submitted":           "تاريخ الإرسال",
	"Current password":    "كلمة المرور الحالية",
	"Password updated.":   "تم تحديث كلمة المرور.",
	"Current password is incorrect.": "كلمة المرور الحالية غير صحيحة.",
	"Profile picture updated.":       "تم تحديث الصورة الشخصية.",
	"Please upload a JPG, PNG or WebP image up to 5 MB.": "يرجى رفع صورة JPG أو PNG أو WebP بحجم لا يتجاوز 5 ميجابايت.",
	"This account uses Google sign-in.": "هذا الحساب يستخدم تسجيل الدخول عبر Google.",

	// Dashboard
	"Owner dashboard":   "لوحة تحكم المالك",
	"Refresh":           "تحديث",
	"Details":           "التفاصيل",
	"Close":             "إغلاق",
	"No records":        "لا توجد سجلات",
	"Open":              "فتح",
	"No file":           "لا يوجد ملف",
	"Files":             "الملفات",
	"Latest records":    "أحدث السجلات",
	"Users":             "المستخدمون",
	"Record not found.": "السجل غير موجود.",
}

var cat = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for en, ar := range arabic {
		_ = b.SetString(language.English, en, en)
		_ = b.SetString(language.Arabic, en, ar)
	}
	return b
}

// Printer returns a message printer bound to l.
func Printer(l Lang) *message.Printer {
	return message.NewPrinter(l.Tag(), message.Catalog(cat))
}

// T translates a UI string into l.
func T(l Lang, key string) string {
	return Printer(l).Sprintf(message.Key(key, key))
}

// Has reports whether key has an Arabic translation.
func Has(key string) bool {
	_, ok := arabic[key]
	return ok
}
