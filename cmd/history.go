package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse completed quizzes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.HistoryRepo().ListQuizzes(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-32s  %-7s  %-6s  %s\n",
			"ID", "Completed", "Title", "Score", "Level", "Model")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, r := range records {
			fmt.Fprintf(out, "%-5d  %-16s  %-32s  %-7s  %-6s  %s\n",
				r.ID,
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Title, 32),
				fmt.Sprintf("%d/%d", r.Score, r.Total),
				r.Difficulty,
				r.Model,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Review a completed quiz with answers and explanations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.HistoryRepo().GetQuiz(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get quiz: %w", err)
		}
		if r == nil {
			return fmt.Errorf("quiz %d not found", id)
		}

		th := loadTheme(cmd.Context(), s.SettingsRepo())
		out := cmd.OutOrStdout()

		lipgloss.Fprintln(out, th.Title.Render(r.Title))
		lipgloss.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("%s · %s · %s · %s",
			r.CompletedAt.Local().Format("2006-01-02 15:04"), r.Difficulty, r.Model, r.Duration().Round(time.Second))))
		lipgloss.Fprintln(out, components.ScoreLine(th, r.Score, r.Total))
		lipgloss.Fprintln(out)

		if r.Document == nil {
			return nil
		}
		for i, q := range r.Document.Questions {
			res := session.QuestionResult{Question: q}
			if i < len(r.Answers) {
				res.Answer = r.Answers[i]
			}
			res.Correct = session.Matches(q, res.Answer)
			lipgloss.Fprintln(out, components.ResultLine(th, i, res))
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
