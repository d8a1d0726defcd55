package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"locationservice/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			database.Close()
			okColor.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync owners and redirect rules from a YAML config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yamlCfg, err := config.LoadYAMLConfigFile(file)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", file, err)
			}
			if yamlCfg == nil {
				return fmt.Errorf("config file %s not found", file)
			}

			database, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.SyncOwners(cmd.Context(), yamlCfg); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "synced %d owners\n", len(yamlCfg.Owners))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "config.yaml", "YAML config file")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo owner and locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.SeedDevData(cmd.Context()); err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "demo data seeded (owner: demo)")
			return nil
		},
	}
}
