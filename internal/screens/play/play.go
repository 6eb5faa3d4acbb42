// Package play is the interactive terminal screen for taking a quiz
// session.
package play

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

const defaultWidth = 60

// Screen drives one quiz session from key presses. Answering a question
// moves on to the next one; answering the last one asks to submit.
type Screen struct {
	ctx     context.Context
	session *session.Session
	theme   theme.Theme
	width   int

	choice components.MultiChoice
	input  components.TextInput

	notice    string
	confirm   bool
	abandoned bool
}

var _ tea.Model = (*Screen)(nil)

// New creates a Screen for s. ctx is passed to the session's event sink.
func New(ctx context.Context, s *session.Session, th theme.Theme) *Screen {
	scr := &Screen{
		ctx:     ctx,
		session: s,
		theme:   th,
		width:   defaultWidth,
	}
	scr.load()
	return scr
}

// Abandoned reports whether the learner quit without submitting.
func (s *Screen) Abandoned() bool { return s.abandoned }

func (s *Screen) Init() tea.Cmd {
	if s.fillBlank() {
		return s.input.Init()
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width < defaultWidth+4 {
			s.width = msg.Width - 4
		} else {
			s.width = defaultWidth
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and similar for the text input.
	if s.fillBlank() && !s.confirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		s.abandoned = true
		return s, tea.Quit
	}

	if s.session.State() == session.Completed {
		return s, tea.Quit
	}

	if s.confirm {
		switch key {
		case "y", "Y", "enter":
			return s.submit()
		case "n", "N", "esc":
			s.confirm = false
			return s, s.focus()
		}
		return s, nil
	}

	switch key {
	case "esc", "ctrl+s":
		s.notice = ""
		s.confirm = true
		return s, nil
	case "tab", "pgdown":
		return s, s.move(s.session.Advance)
	case "shift+tab", "pgup":
		return s, s.move(s.session.Retreat)
	}

	if s.fillBlank() {
		if key == "enter" {
			text := s.input.Value()
			if text == "" {
				s.notice = "Type an answer first."
				return s, nil
			}
			return s.record(quiz.TextAnswer(text))
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "right", "l":
		return s, s.move(s.session.Advance)
	case "left", "h":
		return s, s.move(s.session.Retreat)
	}

	if s.session.Current().Type == quiz.TrueFalse {
		switch key {
		case "t":
			return s.record(quiz.IndexAnswer(0))
		case "f":
			return s.record(quiz.IndexAnswer(1))
		}
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.choice.Submitted = false
		return s.record(quiz.IndexAnswer(s.choice.Chosen))
	}
	return s, nil
}

// record stores a for the current question, then advances, or asks to
// submit when the last question was answered.
func (s *Screen) record(a quiz.Answer) (tea.Model, tea.Cmd) {
	if err := s.session.RecordAnswer(s.ctx, a); err != nil {
		s.notice = err.Error()
		var invalid *session.ErrInvalidAnswer
		if errors.As(err, &invalid) {
			s.notice = invalid.Reason
		}
		return s, nil
	}

	if cur, total := s.session.Progress(); cur < total {
		return s, s.move(s.session.Advance)
	}
	s.load()
	s.confirm = true
	return s, nil
}

func (s *Screen) move(step func() error) tea.Cmd {
	if err := step(); err != nil {
		s.notice = err.Error()
		return nil
	}
	s.load()
	return s.focus()
}

func (s *Screen) submit() (tea.Model, tea.Cmd) {
	score := s.session.Submit(s.ctx)
	_, total := s.session.Progress()
	logger.WithContext(s.ctx).WithFields(logrus.Fields{
		"session_id": s.session.ID(),
		"score":      score,
		"total":      total,
	}).Debug("quiz submitted")
	s.confirm = false
	return s, tea.Quit
}

// load rebuilds the answer widget for the current question, restoring any
// recorded answer.
func (s *Screen) load() {
	v := s.session.Current()
	s.notice = ""

	if v.Type == quiz.FillBlank {
		s.input = components.NewTextInput(s.theme, "Type your answer...", 0)
		if text, ok := v.Answer.Text(); ok {
			s.input.SetValue(text)
		}
		return
	}

	chosen := -1
	if i, ok := v.Answer.Index(); ok {
		chosen = i
	}
	s.choice = components.NewMultiChoice(s.theme, v.Options, chosen)
}

func (s *Screen) focus() tea.Cmd {
	if s.fillBlank() {
		return s.input.Init()
	}
	return nil
}

func (s *Screen) fillBlank() bool {
	return s.session.Current().Type == quiz.FillBlank
}

func (s *Screen) unanswered() int {
	n := 0
	for _, a := range s.session.Answers() {
		if !a.IsSet() {
			n++
		}
	}
	return n
}
