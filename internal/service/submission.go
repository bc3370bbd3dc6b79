package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/storage"
	"github.com/rihla-travel/portal/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInsertFailed    = errors.New("failed to save application")
)

// UploadError reports the document that could not be stored. Nothing was
// inserted when it is returned.
type UploadError struct {
	Field string
	Key   string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s to %s: %v", e.Field, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Upload is one selected file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Submission is a filled-in form. Values is keyed by field name, Files by
// file input name; inputs left empty are simply absent.
type Submission struct {
	Values map[string]string
	Files  map[string]Upload
}

// SubmissionEvent describes a stored application to notifiers.
type SubmissionEvent struct {
	Application *model.Application
	Form        *intake.Form
	User        *model.User
}

// Applicant is the name entered on the form.
func (e SubmissionEvent) Applicant() string {
	name, _ := e.Application.Values["full_name"].(string)
	return name
}

// ContactEmail is the address entered on the form, or the account's.
func (e SubmissionEvent) ContactEmail() string {
	if email, _ := e.Application.Values["email"].(string); email != "" {
		return email
	}
	return e.User.Email
}

// Notifier is told about each stored application. Failures are logged and
// never change the outcome of the submission.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, e SubmissionEvent) error
}

type SubmissionService struct {
	storage      storage.Storage
	applications repository.ApplicationRepository
	metrics      *telemetry.Metrics
	notifiers    []Notifier
	now          func() time.Time
}

func NewSubmissionService(
	storage storage.Storage,
	applications repository.ApplicationRepository,
	metrics *telemetry.Metrics,
	notifiers ...Notifier,
) *SubmissionService {
	return &SubmissionService{
		storage:      storage,
		applications: applications,
		metrics:      metrics,
		notifiers:    notifiers,
		now:          time.Now,
	}
}

// Submit runs one upload-then-insert pass for form:
//
//  1. required fields and files are checked before any network call
//  2. each present file is stored at {folder}/{epoch-millis}_{name}, one after another
//  3. one row with the scalar values, the file URLs and user.ID is inserted
//
// The first failed upload aborts the submission. A failed insert leaves the
// stored files for the reconciler. Every call creates a new row.
func (s *SubmissionService) Submit(ctx context.Context, user *model.User, form *intake.Form, sub Submission) (*model.Application, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "submission.submit",
		trace.WithAttributes(attribute.String("rihla.service", form.Slug)))
	defer span.End()

	if user == nil {
		return nil, ErrUnauthenticated
	}

	values, present, err := s.validate(ctx, form, sub)
	if err != nil {
		s.metrics.Submissions.WithLabelValues(form.Slug, telemetry.OutcomeInvalid).Inc()
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	keys, err := s.upload(ctx, form, present, values)
	if err != nil {
		s.metrics.Submissions.WithLabelValues(form.Slug, telemetry.OutcomeUploadFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		slog.Error("submission upload failed", "error", err, "service", form.Slug, "user_id", user.ID, "orphaned_keys", keys)
		return nil, err
	}

	app := &model.Application{
		ID:      uuid.Must(uuid.NewV7()).String(),
		UserID:  user.ID,
		Service: form.Slug,
		Table:   form.Table,
		Values:  values,
	}

	insertCtx, insertSpan := telemetry.Tracer().Start(ctx, "submission.insert",
		trace.WithAttributes(attribute.String("db.sql.table", form.Table)))
	err = s.applications.Insert(insertCtx, app)
	insertSpan.End()
	if err != nil {
		s.metrics.Submissions.WithLabelValues(form.Slug, telemetry.OutcomeInsertFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		slog.Error("submission insert failed", "error", err, "service", form.Slug, "user_id", user.ID, "orphaned_keys", keys)
		return nil, fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}

	s.metrics.Submissions.WithLabelValues(form.Slug, telemetry.OutcomeSuccess).Inc()
	span.SetAttributes(attribute.String("rihla.application_id", app.ID))
	slog.Info("application submitted", "service", form.Slug, "application_id", app.ID, "user_id", user.ID, "files", len(keys))

	s.notify(ctx, SubmissionEvent{Application: app, Form: form, User: user})

	return app, nil
}

// validate returns the column values for the scalar fields and the file
// inputs that carry a file.
func (s *SubmissionService) validate(ctx context.Context, form *intake.Form, sub Submission) (map[string]any, map[string]Upload, error) {
	_, span := telemetry.Tracer().Start(ctx, "submission.validate")
	defer span.End()

	present := make(map[string]Upload)
	has := make(map[string]bool)
	for name, up := range sub.Files {
		if up.Body == nil || up.Filename == "" {
			continue
		}
		present[name] = up
		has[name] = true
	}

	if err := form.Validate(sub.Values, has); err != nil {
		return nil, nil, err
	}

	values := make(map[string]any, len(form.Fields)+len(form.Files))
	for _, fl := range form.Fields {
		v := strings.TrimSpace(sub.Values[fl.Name])
		if v == "" {
			values[fl.Column] = nil
			continue
		}
		values[fl.Column] = v
	}
	return values, present, nil
}

// upload stores each present file in schema order and records its URL in
// values. Absent optional files get a NULL column. It returns the keys
// written so far, also on error.
func (s *SubmissionService) upload(ctx context.Context, form *intake.Form, present map[string]Upload, values map[string]any) ([]string, error) {
	if !form.HasFiles() {
		return nil, nil
	}

	ctx, span := telemetry.Tracer().Start(ctx, "submission.upload")
	defer span.End()

	var keys []string
	for _, ff := range form.Files {
		up, ok := present[ff.Name]
		if !ok {
			values[ff.Column] = nil
			continue
		}

		key := fmt.Sprintf("%s/%d_%s", form.Folder, s.now().UnixMilli(), baseName(up.Filename))
		err := s.storage.Save(ctx, key, up.Body, up.Size, up.ContentType)
		if err != nil {
			s.metrics.Uploads.WithLabelValues(form.Slug, telemetry.OutcomeFailed).Inc()
			return keys, &UploadError{Field: ff.Name, Key: key, Err: err}
		}
		s.metrics.Uploads.WithLabelValues(form.Slug, telemetry.OutcomeSuccess).Inc()

		keys = append(keys, key)
		values[ff.Column] = s.storage.URL(key)
	}
	span.SetAttributes(attribute.Int("rihla.uploads", len(keys)))
	return keys, nil
}

func (s *SubmissionService) notify(ctx context.Context, e SubmissionEvent) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, e); err != nil {
			slog.Warn("submission notification failed", "notifier", n.Name(), "error", err, "application_id", e.Application.ID)
		}
	}
}

// baseName keeps only the last path element of a client file name. Some
// browsers send full Windows paths.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return "file"
	}
	return name
}
