package cmd

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/usage"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored quiz history, usage counters or the LLM request log",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		clearHistory, _ := cmd.Flags().GetBool("history")
		clearEvents, _ := cmd.Flags().GetBool("events")
		clearUsage, _ := cmd.Flags().GetBool("usage")
		if all {
			clearHistory, clearEvents, clearUsage = true, true, true
		}
		if !clearHistory && !clearEvents && !clearUsage {
			return errors.New("nothing to reset: pass --history, --usage, --events or --all")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if clearHistory {
			n, err := s.HistoryRepo().ClearQuizzes(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d quiz records.\n", n)
		}
		if clearEvents {
			n, err := s.EventRepo().ClearLLMEvents(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d LLM events.\n", n)
		}
		if clearUsage {
			zero := usage.Stats{TotalCost: decimal.Zero, SessionCost: decimal.Zero}
			if err := s.UsageRepo().SaveUsage(ctx, zero); err != nil {
				return err
			}
			fmt.Fprintln(out, "Usage counters reset.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Delete quiz history")
	resetCmd.Flags().Bool("events", false, "Delete the LLM request log")
	resetCmd.Flags().Bool("usage", false, "Zero the total and session usage counters")
	resetCmd.Flags().Bool("all", false, "Delete everything except settings")
}
