package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		persisted      string
		acceptLanguage string
		want           Lang
	}{
		{name: "persisted english wins over arabic browser", persisted: "en", acceptLanguage: "ar-EG", want: EN},
		{name: "persisted arabic wins over english browser", persisted: "ar", acceptLanguage: "en-US", want: AR},
		{name: "no preference english browser", acceptLanguage: "en-US,en;q=0.9", want: EN},
		{name: "no preference bare english", acceptLanguage: "en", want: EN},
		{name: "no preference french browser", acceptLanguage: "fr-FR,fr;q=0.9,en;q=0.5", want: AR},
		{name: "no preference arabic browser", acceptLanguage: "ar", want: AR},
		{name: "nothing known", want: AR},
		{name: "garbage preference falls through to browser", persisted: "de", acceptLanguage: "en-GB", want: EN},
		{name: "weighted english first", acceptLanguage: "de;q=0.3, en;q=0.8", want: EN},
		{name: "malformed header", acceptLanguage: ";;;", want: AR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.persisted, tt.acceptLanguage))
		})
	}
}

func TestToggleAndDirection(t *testing.T) {
	assert.Equal(t, EN, AR.Toggle())
	assert.Equal(t, AR, EN.Toggle())
	assert.Equal(t, AR, AR.Toggle().Toggle())

	assert.Equal(t, "rtl", AR.Dir())
	assert.Equal(t, "ltr", EN.Dir())
	assert.True(t, AR.IsRTL())
	assert.False(t, EN.IsRTL())
}

func TestParse(t *testing.T) {
	l, ok := Parse(" EN ")
	assert.True(t, ok)
	assert.Equal(t, EN, l)

	_, ok = Parse("fr")
	assert.False(t, ok)
}

func TestTextIn(t *testing.T) {
	txt := Text{Ar: "دبي", En: "Dubai"}
	assert.Equal(t, "دبي", txt.In(AR))
	assert.Equal(t, "Dubai", txt.In(EN))

	arOnly := Text{Ar: "عربي"}
	assert.Equal(t, "عربي", arOnly.In(EN))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "لا يوجد ملف", T(AR, "No file"))
	assert.Equal(t, "No file", T(EN, "No file"))
	assert.Equal(t, "untranslated key", T(EN, "untranslated key"))
	assert.True(t, Has("Submit Application"))
}
