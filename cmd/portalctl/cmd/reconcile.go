package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rihla-travel/portal/internal/db"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/storage"
	"github.com/rihla-travel/portal/internal/telemetry"
	"github.com/spf13/cobra"
)

func ReconcileCmd() *cobra.Command {
	var (
		grace  time.Duration
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Delete uploads that no application references",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, database, err := open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			store, err := storage.New(ctx, cfg)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("grace") {
				grace = cfg.ReconcileGrace
			}

			r := service.NewReconciler(store, repository.NewApplicationRepository(database), telemetry.NopMetrics())
			report, err := r.Run(ctx, service.ReconcileOptions{Grace: grace, DryRun: dryRun})
			if report != nil {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "FOLDER\tSCANNED\tREFERENCED\tYOUNG\tORPHANS\tDELETED\tFAILED")
				for _, f := range report.Folders {
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
						f.Folder, f.Scanned, f.Referenced, f.Young, len(f.Orphans), f.Deleted, f.Failed)
				}
				if flushErr := w.Flush(); flushErr != nil {
					return flushErr
				}
				if dryRun {
					for _, f := range report.Folders {
						for _, key := range f.Orphans {
							fmt.Fprintln(cmd.OutOrStdout(), key)
						}
					}
				}
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&grace, "grace", 24*time.Hour, "keep unreferenced objects younger than this")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list orphans without deleting them")
	return cmd
}
