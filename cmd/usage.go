package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/usage"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tracker, err := usage.Load(cmd.Context(), s.UsageRepo(), llm.DefaultPricing)
		if err != nil {
			return err
		}
		snap := tracker.Snapshot()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %12s  %10s\n", "", "Tokens", "Cost")
		fmt.Fprintf(out, "%-10s  %12d  %10s\n", "Session", snap.SessionTokens, formatCost(snap.SessionCost))
		fmt.Fprintf(out, "%-10s  %12d  %10s\n", "Total", snap.TotalTokens, formatCost(snap.TotalCost))
		return nil
	},
}

var usageResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the session counters (totals are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tracker, err := usage.Load(cmd.Context(), s.UsageRepo(), llm.DefaultPricing)
		if err != nil {
			return err
		}
		if err := tracker.ResetSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session usage reset.")
		return nil
	},
}

func formatCost(usd decimal.Decimal) string {
	if usd.LessThan(decimal.RequireFromString("0.01")) {
		return "$" + usd.StringFixed(4)
	}
	return "$" + usd.StringFixed(2)
}

func init() {
	usageCmd.AddCommand(usageResetCmd)
}
