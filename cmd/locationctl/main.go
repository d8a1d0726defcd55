// Command locationctl is the operator tool for the location service: it
// resolves call numbers against the database, prints probe plans and runs
// migrations, config sync and the development seed.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"locationservice/internal/config"
	"locationservice/internal/db"
)

var (
	databaseURL string
	maxWords    int
	noColor     bool
)

var (
	tierColor   = color.New(color.FgCyan)
	okColor     = color.New(color.FgGreen, color.Bold)
	missColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
	detailColor = color.New(color.Faint)
)

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "locationctl",
		Short:         "Operate the call number location service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	root.PersistentFlags().StringVar(&databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string (or set DATABASE_URL)")
	root.PersistentFlags().IntVar(&maxWords, "max-words", cfg.MaxCallNoWords, "Word-count ceiling for call numbers")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// connect opens the database and runs pending migrations.
func connect(ctx context.Context) (*db.DB, error) {
	database, err := db.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(databaseURL); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
