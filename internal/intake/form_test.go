package intake

import (
	"errors"
	"testing"

	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasEveryService(t *testing.T) {
	slugs := []string{
		"europe-visa", "middleeast-visas", "flight-tickets", "global-jobs",
		"global-work-visas", "investment-consulting", "work-contracts", "events-and-travel",
	}
	assert.Len(t, Catalog(), len(slugs))
	for _, slug := range slugs {
		f, ok := Lookup(slug)
		require.True(t, ok, slug)
		assert.NotEmpty(t, f.Table)
		assert.NotEmpty(t, f.Title.Ar)
		assert.NotEmpty(t, f.Title.En)
		if f.HasFiles() {
			assert.NotEmpty(t, f.Folder, "forms with files need a folder: %s", slug)
		}
	}

	_, ok := Lookup("moon-visa")
	assert.False(t, ok)
}

func TestFormColumnsAreUnique(t *testing.T) {
	for _, f := range Catalog() {
		seen := map[string]bool{}
		for _, c := range f.Columns() {
			assert.False(t, seen[c], "%s: duplicate column %s", f.Slug, c)
			seen[c] = true
		}
	}
}

func TestValidate(t *testing.T) {
	f, _ := Lookup("investment-consulting")

	complete := map[string]string{
		"full_name":       "Test User",
		"email":           "t@example.com",
		"phone":           "0100000000",
		"investment_type": "Other types of investments",
		"budget":          "5000",
	}
	assert.NoError(t, f.Validate(complete, nil))

	partial := map[string]string{
		"full_name": "  ",
		"email":     "t@example.com",
		"budget":    "5000",
	}
	err := f.Validate(partial, nil)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"full_name", "phone", "investment_type"}, verr.Fields)
	assert.Equal(t, "WhatsApp Number", verr.Labels[1].In(i18n.EN))
}

func TestValidateFiles(t *testing.T) {
	f, _ := Lookup("global-work-visas")
	values := map[string]string{
		"full_name": "Sara",
		"email":     "sara@example.com",
		"phone":     "0500000000",
		"country":   "Japan",
	}

	// Driving licence is optional.
	err := f.Validate(values, map[string]bool{"profile_photo": true, "cv": true})
	assert.NoError(t, err)

	err = f.Validate(values, map[string]bool{"profile_photo": true})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"cv"}, verr.Fields)
}

func TestOptionLabel(t *testing.T) {
	f, _ := Lookup("work-contracts")
	assert.Equal(t, "عقود موسمية", f.OptionLabel("contract_type", "seasonal", i18n.AR))
	assert.Equal(t, "Two-Year Contract", f.OptionLabel("contract_type", "two_years", i18n.EN))
	assert.Equal(t, "unknown", f.OptionLabel("contract_type", "unknown", i18n.EN))

	me, _ := Lookup("middleeast-visas")
	assert.Equal(t, "Qatar - $220", me.OptionLabel("country", "Qatar", i18n.EN))
}

func TestDashboardDescriptorsMatchForms(t *testing.T) {
	for _, s := range Services() {
		if s.Key == UsersKey {
			assert.Empty(t, s.DateField)
			assert.Equal(t, "id", s.OrderBy())
			continue
		}
		require.NotNil(t, s.Form, s.Key)
		cols := map[string]bool{}
		for _, c := range s.Form.Columns() {
			cols[c] = true
		}
		for _, ff := range s.FileFields {
			assert.True(t, cols[ff.Column], "%s: file column %s not written by form", s.Key, ff.Column)
		}
		assert.Equal(t, "created_at", s.OrderBy())
	}
}

func TestServiceColumns(t *testing.T) {
	s, ok := LookupService("work-contracts")
	require.True(t, ok)
	assert.Equal(t, []string{
		"full_name", "phone", "email", "contract_type", "created_at",
		"passport_url", "personal_photo_url", "cv_url", "transfer_receipt_url", "id",
	}, s.Columns())

	u, _ := LookupService(UsersKey)
	assert.Equal(t, []string{"display_name", "phone", "email", "id"}, u.Columns())
}
