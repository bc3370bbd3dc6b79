package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/middleware"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/components/toast"
	"github.com/rihla-travel/portal/internal/ui/pages"
)

type IntakeHandler struct {
	submissions *service.SubmissionService
	maxBytes    int64
}

func NewIntakeHandler(submissions *service.SubmissionService, maxBytes int64) *IntakeHandler {
	return &IntakeHandler{
		submissions: submissions,
		maxBytes:    maxBytes,
	}
}

func (h *IntakeHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())

	form, ok := intake.Lookup(r.PathValue("slug"))
	if !ok {
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(lang))
		return
	}

	ui.Render(w, r, pages.ServiceForm(lang, pages.IntakeForm{
		Form:     form,
		SignedIn: ctxkeys.User(r.Context()) != nil,
	}))
}

// Submit runs one upload-then-insert pass. HTMX gets the form back (reset on
// success, with the typed values on failure) plus a toast; plain posts get
// the whole page.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)
	user := ctxkeys.User(ctx)

	form, ok := intake.Lookup(r.PathValue("slug"))
	if !ok {
		ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(lang))
		return
	}

	if user == nil {
		middleware.Redirect(w, r, "/login")
		return
	}

	data := pages.IntakeForm{Form: form, SignedIn: true}

	err := r.ParseMultipartForm(h.maxBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("failed to parse intake form", "error", err, "service", form.Slug)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respond(w, r, data, http.StatusRequestEntityTooLarge, pages.ErrorNotice(lang, "The uploaded files are too large."))
			return
		}
		h.respond(w, r, data, http.StatusBadRequest, pages.ErrorNotice(lang, "An error occurred while submitting."))
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	sub, closeFiles, err := readSubmission(r, form)
	defer closeFiles()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err, "service", form.Slug)
		h.respond(w, r, data, http.StatusBadRequest, pages.ErrorNotice(lang, "An error occurred while submitting."))
		return
	}
	data.Values = sub.Values

	_, err = h.submissions.Submit(ctx, user, form, sub)
	if err != nil {
		status, notice := h.failure(lang, form, &data, err)
		h.respond(w, r, data, status, notice)
		return
	}

	fresh := pages.IntakeForm{
		Form:     form,
		SignedIn: true,
		Notice:   pages.InfoNotice(lang, "Your application has been submitted successfully."),
	}
	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.IntakeFormFragment(lang, fresh))
		ui.RenderOOB(w, r, toast.Success(lang, fresh.Notice.Text), toast.Target)
		return
	}
	ui.Render(w, r, pages.ServiceForm(lang, fresh))
}

// failure maps a submission error to a status and notice, marking the
// missing inputs on data for validation errors.
func (h *IntakeHandler) failure(lang i18n.Lang, form *intake.Form, data *pages.IntakeForm, err error) (int, *pages.Notice) {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr):
		data.Missing = make(map[string]bool, len(verr.Fields))
		for _, f := range verr.Fields {
			data.Missing[f] = true
		}
		labels := make([]string, 0, len(verr.Labels))
		for _, l := range verr.Labels {
			labels = append(labels, l.In(lang))
		}
		text := i18n.T(lang, "Please fill in all required fields.") + " " +
			i18n.T(lang, "Missing:") + " " + strings.Join(labels, "، ")
		if form.HasFiles() {
			text += " " + i18n.T(lang, "Please re-select your files before resubmitting.")
		}
		return http.StatusUnprocessableEntity, &pages.Notice{Text: text, IsError: true}

	}

	slog.Error("submission failed", "error", err, "service", form.Slug)
	notice := pages.ErrorNotice(lang, "An error occurred while submitting.")
	if form.HasFiles() {
		notice.Text += " " + i18n.T(lang, "Please re-select your files before resubmitting.")
	}
	return http.StatusInternalServerError, notice
}

// respond re-renders the form with notice. HTMX only swaps 2xx responses, so
// fragments go out as 200 and carry the outcome in the toast.
func (h *IntakeHandler) respond(w http.ResponseWriter, r *http.Request, data pages.IntakeForm, status int, notice *pages.Notice) {
	lang := ctxkeys.Lang(r.Context())
	data.Notice = notice

	if ui.IsHTMX(r) {
		ui.Render(w, r, pages.IntakeFormFragment(lang, data))
		ui.RenderOOB(w, r, toast.Error(lang, notice.Text), toast.Target)
		return
	}

	ui.RenderStatus(w, r, status, pages.ServiceForm(lang, data))
}

// readSubmission collects the form's scalar values and selected files. The
// returned func closes every opened file.
func readSubmission(r *http.Request, form *intake.Form) (service.Submission, func(), error) {
	sub := service.Submission{
		Values: make(map[string]string, len(form.Fields)),
		Files:  make(map[string]service.Upload, len(form.Files)),
	}
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fl := range form.Fields {
		if v := r.FormValue(fl.Name); v != "" {
			sub.Values[fl.Name] = v
		}
	}

	if r.MultipartForm == nil {
		return sub, closeAll, nil
	}
	for _, ff := range form.Files {
		headers := r.MultipartForm.File[ff.Name]
		if len(headers) == 0 || headers[0].Size == 0 {
			continue
		}
		fh := headers[0]
		file, err := fh.Open()
		if err != nil {
			return sub, closeAll, err
		}
		opened = append(opened, file)
		sub.Files[ff.Name] = service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        file,
		}
	}
	return sub, closeAll, nil
}
