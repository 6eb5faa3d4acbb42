package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/ui/components"
)

func (s *Screen) View() tea.View {
	return tea.NewView(s.Render())
}

// Render returns the screen content.
func (s *Screen) Render() string {
	v := s.session.Current()

	body := s.choice.View()
	if v.Type == quiz.FillBlank {
		body = s.input.View()
	}

	var b strings.Builder
	if title := s.session.Document().Title; title != "" {
		b.WriteString(s.theme.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(components.QuestionCard(s.theme, v, s.width, body))
	b.WriteString("\n")

	switch {
	case s.confirm:
		msg := "Submit your answers? (y/n)"
		if n := s.unanswered(); n > 0 {
			msg = fmt.Sprintf("%d unanswered. Submit anyway? (y/n)", n)
		}
		b.WriteString(s.theme.Selected.Render(msg))
	case s.notice != "":
		b.WriteString(s.theme.Incorrect.Render(s.notice))
	default:
		b.WriteString(s.theme.Hint.Render(s.keyHints(v.Type)))
	}
	b.WriteString("\n")
	return b.String()
}

func (s *Screen) keyHints(t quiz.QuestionType) string {
	switch t {
	case quiz.FillBlank:
		return "enter answer  tab next  shift+tab back  esc submit"
	case quiz.TrueFalse:
		return "t/f or ↑↓ enter to answer  ←→ move  esc submit"
	}
	return fmt.Sprintf("1-%d or ↑↓ enter to answer  ←→ move  esc submit", len(s.choice.Options))
}
