package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rihla-travel/portal/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()
			return db.MigrateUp(cmd.Context(), database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()
			return db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			migrations, err := db.MigrateStatus(cmd.Context(), database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE")
			for _, m := range migrations {
				state := "pending"
				if m.Applied {
					state = "applied"
				}
				fmt.Fprintf(w, "%d\t%s\n", m.Version, state)
			}
			return w.Flush()
		},
	})

	return cmd
}
