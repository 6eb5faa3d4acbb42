package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.HistoryRepo().ListQuizzes(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		sum := history.Summarize(records, time.Now())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Quizzes taken:  %d\n", sum.TotalQuizzes)
		fmt.Fprintf(out, "Average score:  %d%%\n", sum.AverageScore)
		fmt.Fprintf(out, "Best score:     %d%%\n", sum.BestScore)
		fmt.Fprintf(out, "Day streak:     %d\n", sum.StreakDays)
		fmt.Fprintf(out, "Study time:     %s\n", sum.StudyTime.Round(time.Second))
		return nil
	},
}
