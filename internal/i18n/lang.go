// Package i18n holds the portal's two UI languages, the resolution policy for a
// visitor's language and the translated UI strings.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	AR Lang = "ar"
	EN Lang = "en"

	// Default applies when neither a stored preference nor the browser asks for English.
	Default = AR

	// CookieName is the single key the preference is persisted under.
	CookieName = "lang"
)

// Parse accepts only the two supported codes.
func Parse(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case AR:
		return AR, true
	case EN:
		return EN, true
	}
	return "", false
}

func (l Lang) Toggle() Lang {
	if l == EN {
		return AR
	}
	return EN
}

// Dir is the HTML text direction for the language.
func (l Lang) Dir() string {
	if l == EN {
		return "ltr"
	}
	return "rtl"
}

func (l Lang) IsRTL() bool {
	return l.Dir() == "rtl"
}

func (l Lang) Tag() language.Tag {
	if l == EN {
		return language.English
	}
	return language.Arabic
}

// Name is the language's own name, used on the toggle button.
func (l Lang) Name() string {
	if l == EN {
		return "English"
	}
	return "العربية"
}

func (l Lang) String() string {
	return string(l)
}

// Resolve picks the language for a visitor: a valid persisted choice wins,
// then the browser language, then Default.
func Resolve(persisted, acceptLanguage string) Lang {
	if l, ok := Parse(persisted); ok {
		return l
	}
	return FromBrowser(acceptLanguage)
}

// FromBrowser returns EN only when the browser's preferred language is English.
func FromBrowser(acceptLanguage string) Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	base, _ := tags[0].Base()
	if base.String() == "en" {
		return EN
	}
	return Default
}

// Text is a literal carried in both languages.
type Text struct {
	Ar string
	En string
}

// In returns the text for l, falling back to whichever side is filled.
func (t Text) In(l Lang) string {
	if l == EN {
		if t.En != "" {
			return t.En
		}
		return t.Ar
	}
	if t.Ar != "" {
		return t.Ar
	}
	return t.En
}
