package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	repoMocks "github.com/rihla-travel/portal/internal/repository/mocks"
	"github.com/rihla-travel/portal/internal/storage"
	storeMocks "github.com/rihla-travel/portal/internal/storage/mocks"
	"github.com/rihla-travel/portal/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconciler(t *testing.T) (*Reconciler, *storeMocks.MockStorage, *repoMocks.MockApplicationRepository, *telemetry.Metrics) {
	t.Helper()
	store := new(storeMocks.MockStorage)
	repo := new(repoMocks.MockApplicationRepository)
	metrics := telemetry.NopMetrics()
	r := NewReconciler(store, repo, metrics)
	r.now = func() time.Time { return fixedNow }
	return r, store, repo, metrics
}

func refs(urls ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, u := range urls {
		m[u] = struct{}{}
	}
	return m
}

func TestReconcileDeletesOnlyOldUnreferenced(t *testing.T) {
	r, store, repo, metrics := newReconciler(t)

	old := fixedNow.Add(-48 * time.Hour)
	young := fixedNow.Add(-time.Hour)

	repo.On("ReferencedValues", mock.Anything, "global_jobs_applications", []string{"id_or_residence_url", "cv_url"}).
		Return(refs("https://cdn.example.com/uploads/global-jobs/1_kept.pdf"), nil)
	repo.On("ReferencedValues", mock.Anything, mock.Anything, mock.Anything).Return(refs(), nil)

	store.On("List", mock.Anything, "global-jobs/").Return([]storage.Object{
		{Key: "global-jobs/1_kept.pdf", LastModified: old},
		{Key: "global-jobs/2_orphan.pdf", LastModified: old},
		{Key: "global-jobs/3_inflight.pdf", LastModified: young},
	}, nil)
	store.On("List", mock.Anything, mock.Anything).Return([]storage.Object{}, nil)
	store.On("Delete", mock.Anything, "global-jobs/2_orphan.pdf").Return(nil).Once()

	report, err := r.Run(context.Background(), ReconcileOptions{Grace: 24 * time.Hour})
	require.NoError(t, err)

	var jobs FolderReport
	for _, f := range report.Folders {
		if f.Folder == "global-jobs" {
			jobs = f
		}
	}
	assert.Equal(t, 3, jobs.Scanned)
	assert.Equal(t, 1, jobs.Referenced)
	assert.Equal(t, 1, jobs.Young)
	assert.Equal(t, 1, jobs.Deleted)
	assert.Equal(t, []string{"global-jobs/2_orphan.pdf"}, jobs.Orphans)
	assert.Equal(t, 1, report.Deleted())

	store.AssertNumberOfCalls(t, "Delete", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reconciled.WithLabelValues("global-jobs", "deleted")))
}

func TestReconcileMatchesByKeyAcrossBaseURLs(t *testing.T) {
	r, store, repo, _ := newReconciler(t)

	old := fixedNow.Add(-48 * time.Hour)
	repo.On("ReferencedValues", mock.Anything, "global_jobs_applications", mock.Anything).
		Return(refs(
			"https://bucket.s3.eu-west-1.amazonaws.com/global-jobs/1_kept.pdf",
			"https://bucket.s3.eu-west-1.amazonaws.com/global-jobs/2_passport%20%232.pdf",
			"https://old-cdn.example.org/global-jobs/3_raw name.pdf",
		), nil)
	repo.On("ReferencedValues", mock.Anything, mock.Anything, mock.Anything).Return(refs(), nil)

	store.On("List", mock.Anything, "global-jobs/").Return([]storage.Object{
		{Key: "global-jobs/1_kept.pdf", LastModified: old},
		{Key: "global-jobs/2_passport #2.pdf", LastModified: old},
		{Key: "global-jobs/3_raw name.pdf", LastModified: old},
	}, nil)
	store.On("List", mock.Anything, mock.Anything).Return([]storage.Object{}, nil)

	report, err := r.Run(context.Background(), ReconcileOptions{Grace: 24 * time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted())
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcileDryRunDeletesNothing(t *testing.T) {
	r, store, repo, metrics := newReconciler(t)

	repo.On("ReferencedValues", mock.Anything, mock.Anything, mock.Anything).Return(refs(), nil)
	store.On("List", mock.Anything, "events-service/").Return([]storage.Object{
		{Key: "events-service/1_hall.jpg", LastModified: fixedNow.Add(-72 * time.Hour)},
	}, nil)
	store.On("List", mock.Anything, mock.Anything).Return([]storage.Object{}, nil)

	report, err := r.Run(context.Background(), ReconcileOptions{Grace: 24 * time.Hour, DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted())
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Reconciled.WithLabelValues("events-service", "found")))
}

func TestReconcileSkipsFolderWhenReferencesFail(t *testing.T) {
	r, store, repo, _ := newReconciler(t)

	repo.On("ReferencedValues", mock.Anything, "europe_visa_applications", mock.Anything).
		Return(nil, errors.New("db down"))
	repo.On("ReferencedValues", mock.Anything, mock.Anything, mock.Anything).Return(refs(), nil)
	store.On("List", mock.Anything, mock.Anything).Return([]storage.Object{}, nil)

	report, err := r.Run(context.Background(), ReconcileOptions{Grace: time.Hour})
	assert.ErrorContains(t, err, "europe-visa")
	assert.ErrorContains(t, err, "db down")

	store.AssertNotCalled(t, "List", mock.Anything, "europe-visa/")
	for _, f := range report.Folders {
		assert.NotEqual(t, "europe-visa", f.Folder)
	}
}

func TestReconcileFoldersSkipFormsWithoutFiles(t *testing.T) {
	order, byFolder := folders()
	assert.NotContains(t, order, "")
	assert.Len(t, order, 7)
	assert.Equal(t, "events_service_requests", byFolder["events-service"][0].table)
}
