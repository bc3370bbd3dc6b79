package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rihla-travel/portal/cmd/portalctl/cmd"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:          "portalctl",
		Short:        "Operator tools for the Rihla portal",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.OperatorCmd())
	rootCmd.AddCommand(cmd.ReconcileCmd())
	rootCmd.AddCommand(cmd.CSSCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
