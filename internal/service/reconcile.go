package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rihla-travel/portal/internal/intake"
	"github.com/rihla-travel/portal/internal/lease"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/storage"
	"github.com/rihla-travel/portal/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const reconcileLease = "reconcile"

type ReconcileOptions struct {
	// Objects younger than Grace are kept even when unreferenced; their
	// submission may still be inserting.
	Grace  time.Duration
	DryRun bool
}

type FolderReport struct {
	Folder     string
	Scanned    int
	Referenced int
	Young      int
	Deleted    int
	Failed     int
	Orphans    []string
}

type ReconcileReport struct {
	Folders []FolderReport
}

func (r *ReconcileReport) Deleted() int {
	n := 0
	for _, f := range r.Folders {
		n += f.Deleted
	}
	return n
}

// Reconciler removes uploads that no application row references, left
// behind when an insert failed after its files were stored.
type Reconciler struct {
	storage      storage.Storage
	applications repository.ApplicationRepository
	metrics      *telemetry.Metrics
	now          func() time.Time
}

func NewReconciler(storage storage.Storage, applications repository.ApplicationRepository, metrics *telemetry.Metrics) *Reconciler {
	return &Reconciler{
		storage:      storage,
		applications: applications,
		metrics:      metrics,
		now:          time.Now,
	}
}

type folderSource struct {
	table   string
	columns []string
}

// folders groups the file-collecting forms by storage folder.
func folders() ([]string, map[string][]folderSource) {
	var order []string
	byFolder := make(map[string][]folderSource)
	for _, f := range intake.Catalog() {
		if !f.HasFiles() {
			continue
		}
		if _, ok := byFolder[f.Folder]; !ok {
			order = append(order, f.Folder)
		}
		byFolder[f.Folder] = append(byFolder[f.Folder], folderSource{table: f.Table, columns: f.FileColumns()})
	}
	return order, byFolder
}

// Run scans every service folder once. A folder whose references cannot be
// loaded is skipped entirely so nothing referenced is ever deleted.
func (r *Reconciler) Run(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "reconcile.run",
		trace.WithAttributes(attribute.Bool("rihla.dry_run", opts.DryRun)))
	defer span.End()

	report := &ReconcileReport{}
	cutoff := r.now().Add(-opts.Grace)

	var errs []error
	order, byFolder := folders()
	for _, folder := range order {
		fr, err := r.folder(ctx, folder, byFolder[folder], cutoff, opts.DryRun)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", folder, err))
			continue
		}
		report.Folders = append(report.Folders, fr)
	}

	slog.Info("reconcile finished", "deleted", report.Deleted(), "dry_run", opts.DryRun, "errors", len(errs))
	return report, errors.Join(errs...)
}

func (r *Reconciler) folder(ctx context.Context, folder string, sources []folderSource, cutoff time.Time, dryRun bool) (FolderReport, error) {
	fr := FolderReport{Folder: folder}

	// Keyed by object key so rows written under an older public URL
	// still protect their files.
	referenced := make(map[string]struct{})
	for _, src := range sources {
		refs, err := r.applications.ReferencedValues(ctx, src.table, src.columns)
		if err != nil {
			return fr, fmt.Errorf("load references from %s: %w", src.table, err)
		}
		for ref := range refs {
			for _, key := range storage.KeysFromURL(ref, folder) {
				referenced[key] = struct{}{}
			}
		}
	}

	objects, err := r.storage.List(ctx, folder+"/")
	if err != nil {
		return fr, err
	}

	for _, obj := range objects {
		fr.Scanned++
		if _, ok := referenced[obj.Key]; ok {
			fr.Referenced++
			continue
		}
		if obj.LastModified.After(cutoff) {
			fr.Young++
			continue
		}

		fr.Orphans = append(fr.Orphans, obj.Key)
		if dryRun {
			r.metrics.Reconciled.WithLabelValues(folder, "found").Inc()
			continue
		}

		if err := r.storage.Delete(ctx, obj.Key); err != nil {
			fr.Failed++
			r.metrics.Reconciled.WithLabelValues(folder, "failed").Inc()
			slog.Warn("failed to delete orphaned upload", "error", err, "key", obj.Key)
			continue
		}
		fr.Deleted++
		r.metrics.Reconciled.WithLabelValues(folder, "deleted").Inc()
		slog.Info("deleted orphaned upload", "key", obj.Key, "last_modified", obj.LastModified)
	}

	return fr, nil
}

// Loop runs the reconciler every interval until ctx ends. With a locker
// only the instance holding the lease does the work.
func (r *Reconciler) Loop(ctx context.Context, interval time.Duration, opts ReconcileOptions, locker *lease.Locker) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx, interval, opts, locker)
		}
	}
}

func (r *Reconciler) runOnce(ctx context.Context, interval time.Duration, opts ReconcileOptions, locker *lease.Locker) {
	if locker != nil {
		l, err := locker.Acquire(ctx, reconcileLease, interval)
		if errors.Is(err, lease.ErrHeld) {
			slog.Debug("reconcile skipped, lease held elsewhere")
			return
		}
		if err != nil {
			slog.Error("failed to acquire reconcile lease", "error", err)
			return
		}
		defer func() {
			if err := l.Release(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("failed to release reconcile lease", "error", err)
			}
		}()
	}

	if _, err := r.Run(ctx, opts); err != nil {
		slog.Error("reconcile failed", "error", err)
	}
}
