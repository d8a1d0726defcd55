package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"locationservice/internal/models"
	"locationservice/internal/resolver"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <call number>",
		Short: "Print the windows probed for a call number, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := resolver.Tokenize(args[0])
			if len(words) == 0 {
				return fmt.Errorf("call number is empty")
			}

			steps := resolver.NewStepParser(maxWords)
			plan := steps.Plan(len(words))
			if plan == nil {
				missColor.Fprintf(cmd.OutOrStdout(), "%d words exceeds the ceiling of %d: no lookups\n", len(words), steps.MaxWords())
				return nil
			}

			out := cmd.OutOrStdout()
			n := 0
			for _, tier := range models.TierOrder {
				tierColor.Fprintf(out, "%s\n", tier)
				for _, w := range plan {
					n++
					printf(cmd, "  %3d  %q\n", n, w.Text(words))
				}
			}
			detailColor.Fprintf(out, "%d lookups when nothing matches\n", n)
			return nil
		},
	}
}
