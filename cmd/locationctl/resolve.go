package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"locationservice/internal/config"
	"locationservice/internal/db"
	"locationservice/internal/models"
	"locationservice/internal/resolver"
)

// tracingStore prints every code lookup before delegating to the database.
type tracingStore struct {
	*db.DB
	cmd *cobra.Command
}

func (t tracingStore) FindByCode(ctx context.Context, tier models.Tier, code, owner string) ([]models.Location, error) {
	locs, err := t.DB.FindByCode(ctx, tier, code, owner)
	mark := "-"
	if len(locs) > 0 {
		mark = "+"
	}
	detailColor.Fprintf(t.cmd.OutOrStdout(), "  %s %-10s %q\n", mark, tier, code)
	return locs, err
}

func (t tracingStore) FindByCollectionCode(ctx context.Context, tier models.Tier, collectionCode, owner string) ([]models.Location, error) {
	locs, err := t.DB.FindByCollectionCode(ctx, tier, collectionCode, owner)
	detailColor.Fprintf(t.cmd.OutOrStdout(), "  %d %-10s collection %q\n", len(locs), tier, collectionCode)
	return locs, err
}

func newResolveCmd() *cobra.Command {
	var (
		owner      string
		collection string
		trace      bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resolve <call number>",
		Short: "Resolve a call number to a shelf, collection or library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			database, err := connect(ctx)
			if err != nil {
				return err
			}
			defer database.Close()

			var lookup resolver.Lookup = database
			if trace {
				lookup = tracingStore{DB: database, cmd: cmd}
			}
			res := resolver.New(lookup, database, resolver.Config{MaxWords: maxWords, Collation: config.Load().Collation, Logger: slog.Default()})

			result, err := res.ResolveInCollection(ctx, args[0], owner, collection)
			if err != nil {
				if errors.Is(err, resolver.ErrInvalidInput) {
					return err
				}
				return fmt.Errorf("resolution failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if !result.Found() {
				missColor.Fprintf(out, "not found")
				printf(cmd, " %q (%d lookups)\n", result.CallNumber, result.Lookups)
				return nil
			}

			loc := result.Location
			okColor.Fprintf(out, "%s", loc.Tier)
			printf(cmd, " %s %q\n", loc.Name, loc.CallNo)
			printf(cmd, "  id:      %s\n", loc.ID)
			printf(cmd, "  window:  %q\n", result.Window)
			if result.CallNumber != result.Original {
				printf(cmd, "  rewrote: %q -> %q\n", result.Original, result.CallNumber)
			}
			printf(cmd, "  lookups: %d\n", result.Lookups)
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner code (required)")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Collection code to search first")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "Print every lookup")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Resolution timeout")
	cmd.MarkFlagRequired("owner")
	return cmd
}
