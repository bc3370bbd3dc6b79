package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/middleware"
	"github.com/rihla-travel/portal/internal/model"
	repoMocks "github.com/rihla-travel/portal/internal/repository/mocks"
	"github.com/rihla-travel/portal/internal/service"
	storeMocks "github.com/rihla-travel/portal/internal/storage/mocks"
	"github.com/rihla-travel/portal/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var customer = &model.User{ID: "user-1", Email: "account@example.com", Role: model.RoleCustomer}

func newIntakeHandler(t *testing.T) (*IntakeHandler, *storeMocks.MockStorage, *repoMocks.MockApplicationRepository) {
	t.Helper()
	store := new(storeMocks.MockStorage)
	repo := new(repoMocks.MockApplicationRepository)
	t.Cleanup(func() {
		store.AssertExpectations(t)
		repo.AssertExpectations(t)
	})
	submissions := service.NewSubmissionService(store, repo, telemetry.NopMetrics())
	return NewIntakeHandler(submissions, 10<<20), store, repo
}

// request carries lang and, when set, user in its context.
func request(method, target string, body *bytes.Buffer, user *model.User, lang i18n.Lang) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	ctx := ctxkeys.WithLang(req.Context(), lang)
	if user != nil {
		ctx = ctxkeys.WithUser(ctx, user)
	}
	return req.WithContext(ctx)
}

func postForm(slug string, values url.Values, user *model.User, lang i18n.Lang) *http.Request {
	req := request(http.MethodPost, "/services/"+slug, bytes.NewBufferString(values.Encode()), user, lang)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("slug", slug)
	return req
}

func investmentValues() url.Values {
	return url.Values{
		"full_name":       {"Test User"},
		"email":           {"t@example.com"},
		"phone":           {"0100000000"},
		"investment_type": {"Other types of investments"},
		"budget":          {"5000"},
	}
}

func TestIntakeFormPage(t *testing.T) {
	h, _, _ := newIntakeHandler(t)

	req := request(http.MethodGet, "/services/investment-consulting", nil, nil, i18n.EN)
	req.SetPathValue("slug", "investment-consulting")
	rec := httptest.NewRecorder()
	h.FormPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/services/investment-consulting"`)
	assert.Contains(t, body, `href="/login"`)
	assert.NotContains(t, body, "Submit Application")
}

func TestIntakeFormPageUnknownService(t *testing.T) {
	h, _, _ := newIntakeHandler(t)

	req := request(http.MethodGet, "/services/moon-visa", nil, nil, i18n.EN)
	req.SetPathValue("slug", "moon-visa")
	rec := httptest.NewRecorder()
	h.FormPage(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIntakeSubmitRequiresLogin(t *testing.T) {
	h, store, repo := newIntakeHandler(t)
	submit := middleware.RequireAuth(h.Submit)

	rec := httptest.NewRecorder()
	submit(rec, postForm("investment-consulting", investmentValues(), nil, i18n.EN))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := postForm("investment-consulting", investmentValues(), nil, i18n.EN)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	submit(rec, req)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIntakeSubmitWithoutSessionRedirects(t *testing.T) {
	h, _, _ := newIntakeHandler(t)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("investment-consulting", investmentValues(), nil, i18n.EN))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestIntakeSubmitSuccess(t *testing.T) {
	h, _, repo := newIntakeHandler(t)

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(app *model.Application) bool {
		return app.Table == "investment_consulting" &&
			app.UserID == customer.ID &&
			app.Values["investment_budget"] == "5000"
	})).Return(nil).Once()

	req := postForm("investment-consulting", investmentValues(), customer, i18n.EN)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Your application has been submitted successfully.")
	assert.Contains(t, body, `hx-swap-oob="beforeend:#toast-container"`)
	// The form comes back empty.
	assert.NotContains(t, body, `value="Test User"`)
	assert.NotContains(t, body, "<html")
}

func TestIntakeSubmitMissingFieldsKeepsValues(t *testing.T) {
	h, _, _ := newIntakeHandler(t)

	values := investmentValues()
	values.Del("phone")
	values.Del("investment_type")

	t.Run("htmx", func(t *testing.T) {
		req := postForm("investment-consulting", values, customer, i18n.EN)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		h.Submit(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Please fill in all required fields.")
		assert.Contains(t, body, "WhatsApp Number")
		assert.Contains(t, body, `value="Test User"`)
		assert.Contains(t, body, "border-red-500")
		assert.Contains(t, body, `hx-swap-oob=`)
	})

	t.Run("full page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Submit(rec, postForm("investment-consulting", values, customer, i18n.EN))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "<html")
	})
}

func TestIntakeSubmitInsertFailure(t *testing.T) {
	h, _, repo := newIntakeHandler(t)

	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("investment-consulting", investmentValues(), customer, i18n.AR))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "حدث خطأ أثناء الإرسال.")
	assert.Contains(t, body, `dir="rtl"`)
}

func multipartRequest(t *testing.T, slug string, values map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := request(http.MethodPost, "/services/"+slug, &buf, customer, i18n.EN)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetPathValue("slug", slug)
	return req
}

func TestIntakeSubmitUploadsThenInserts(t *testing.T) {
	h, store, repo := newIntakeHandler(t)

	var order []string
	store.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "global-work-visas/")
	}), mock.Anything, int64(8), mock.Anything).Run(func(args mock.Arguments) {
		order = append(order, "save")
	}).Return(nil).Twice()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(app *model.Application) bool {
		v, ok := app.Values["driving_license_url"]
		cv, _ := app.Values["cv_url"].(string)
		return ok && v == nil &&
			strings.HasPrefix(cv, "https://cdn.example.com/uploads/global-work-visas/") &&
			strings.HasSuffix(cv, "_cv.pdf")
	})).Run(func(args mock.Arguments) {
		order = append(order, "insert")
	}).Return(nil).Once()

	req := multipartRequest(t, "global-work-visas",
		map[string]string{"full_name": "Sara", "email": "sara@example.com", "phone": "0500000000", "country": "Japan"},
		map[string]string{"profile_photo": "photo.jpg", "cv": `C:\Users\sara\cv.pdf`},
	)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"save", "save", "insert"}, order)
}

func TestIntakeSubmitUploadFailureSkipsInsert(t *testing.T) {
	h, store, _ := newIntakeHandler(t)

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded).Once()

	req := multipartRequest(t, "global-work-visas",
		map[string]string{"full_name": "Sara", "email": "sara@example.com", "phone": "0500000000", "country": "Japan"},
		map[string]string{"profile_photo": "photo.jpg", "cv": "cv.pdf"},
	)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please re-select your files before resubmitting.")
}
