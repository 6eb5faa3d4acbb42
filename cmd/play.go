package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/screens/play"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// playQuiz runs the play screen over in and out until the learner submits
// or quits, then prints the results.
func playQuiz(ctx context.Context, in io.Reader, out io.Writer, th theme.Theme, s *session.Session) error {
	scr := play.New(ctx, s, th)
	p := tea.NewProgram(scr,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}

	if scr.Abandoned() || s.State() != session.Completed {
		lipgloss.Fprintln(out, th.Hint.Render("Quiz left without submitting; nothing was recorded."))
		return nil
	}
	return printResults(out, th, s)
}

func printResults(out io.Writer, th theme.Theme, s *session.Session) error {
	results, err := s.Results()
	if err != nil {
		return err
	}

	doc := s.Document()
	lipgloss.Fprintln(out)
	if doc.Title != "" {
		lipgloss.Fprintln(out, th.Title.Render(doc.Title))
	}
	lipgloss.Fprintln(out, components.ScoreLine(th, s.Score(), len(results)))
	lipgloss.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("Time: %s", s.Elapsed().Round(time.Second))))
	lipgloss.Fprintln(out)
	for i, r := range results {
		lipgloss.Fprintln(out, components.ResultLine(th, i, r))
	}
	return nil
}
