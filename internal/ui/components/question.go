package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

var typeLabels = map[quiz.QuestionType]string{
	quiz.MultipleChoice: "Multiple choice",
	quiz.TrueFalse:      "True or false",
	quiz.FillBlank:      "Fill in the blank",
}

// QuestionCard renders the current question inside a card. body is the
// answer widget, usually a MultiChoice or TextInput view.
func QuestionCard(t theme.Theme, v session.QuestionView, width int, body string) string {
	var b strings.Builder

	progress := float64(v.Index+1) / float64(v.Total)
	b.WriteString(NewProgressBar(t, fmt.Sprintf("Question %d of %d", v.Index+1, v.Total), progress, false, width).View())
	b.WriteString("\n\n")
	b.WriteString(t.Subtitle.Render(typeLabels[v.Type]))
	b.WriteString("\n")
	b.WriteString(t.Body.Bold(true).Render(v.Prompt))
	b.WriteString("\n\n")
	b.WriteString(body)

	return t.Card.Render(strings.TrimRight(b.String(), "\n"))
}

// ResultLine renders the outcome of one question after submission.
func ResultLine(t theme.Theme, index int, r session.QuestionResult) string {
	mark, style := "✗", t.Incorrect
	if r.Correct {
		mark, style = "✓", t.Correct
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%s %d. ", mark, index+1)))
	b.WriteString(t.Body.Render(r.Question.Prompt))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("   your answer: " + describe(r.Question, r.Answer)))
	if !r.Correct {
		b.WriteString("\n")
		b.WriteString(t.Subtitle.Render("   correct:     " + describe(r.Question, r.Question.Correct)))
	}
	if r.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(t.Hint.Render("   " + r.Question.Explanation))
	}
	return b.String()
}

// ScoreLine renders the final score.
func ScoreLine(t theme.Theme, score, total int) string {
	pct := 0
	if total > 0 {
		pct = score * 100 / total
	}
	style := t.Correct
	if pct < 50 {
		style = t.Incorrect
	}
	return t.Title.Render("Score: ") + style.Render(fmt.Sprintf("%d/%d (%d%%)", score, total, pct))
}

func describe(q quiz.Question, a quiz.Answer) string {
	if !a.IsSet() {
		return "(no answer)"
	}
	if i, ok := a.Index(); ok && i >= 0 && i < len(q.Options) {
		return q.Options[i]
	}
	if text, ok := a.Text(); ok {
		return text
	}
	return a.String()
}
