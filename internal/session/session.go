// Package session runs a single quiz: it sequences questions, records
// answers and scores the result.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/quiz"
)

// State is the lifecycle state of a Session.
type State int

const (
	InProgress State = iota
	Completed
)

func (s State) String() string {
	if s == Completed {
		return "completed"
	}
	return "in progress"
}

// Info describes how the quiz was requested. It is carried into
// QuizCompleted for history records.
type Info struct {
	Topic      string
	Difficulty quiz.Difficulty
	Model      string
}

// Session is the state machine for one quiz run. A Session is owned by a
// single caller and is not safe for concurrent use.
type Session struct {
	id      string
	info    Info
	doc     *quiz.Document
	answers []quiz.Answer
	current int
	score   int
	state   State

	sink event.Sink
	now  func() time.Time

	startedAt   time.Time
	completedAt time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSink sets the sink for AnswerRecorded and QuizCompleted events.
func WithSink(s event.Sink) Option {
	return func(sess *Session) {
		if s != nil {
			sess.sink = s
		}
	}
}

// WithInfo attaches request details to the session.
func WithInfo(info Info) Option {
	return func(s *Session) { s.info = info }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New starts a session over a copy of doc. It returns ErrEmptyQuiz when
// doc has no questions.
func New(doc *quiz.Document, opts ...Option) (*Session, error) {
	if doc == nil || len(doc.Questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	s := &Session{
		id:   uuid.NewString(),
		doc:  doc.Clone(),
		sink: event.Discard,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.answers = make([]quiz.Answer, len(s.doc.Questions))
	s.startedAt = s.now()
	return s, nil
}

// ID returns the session's unique ID.
func (s *Session) ID() string { return s.id }

// Info returns the request details attached with WithInfo.
func (s *Session) Info() Info { return s.info }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Document returns a copy of the quiz document.
func (s *Session) Document() *quiz.Document { return s.doc.Clone() }

// Progress returns the 1-based position of the current question and the
// number of questions.
func (s *Session) Progress() (current, total int) {
	return s.current + 1, len(s.doc.Questions)
}

// Elapsed returns the time since the session started, or its total
// duration once completed.
func (s *Session) Elapsed() time.Duration {
	if s.state == Completed {
		return s.completedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// QuestionView is what a presentation layer needs to render the current
// question.
type QuestionView struct {
	Index   int
	Total   int
	Type    quiz.QuestionType
	Prompt  string
	Options []string
	Answer  quiz.Answer
}

// Current returns the question at the current position.
func (s *Session) Current() QuestionView {
	q := s.doc.Questions[s.current]
	return QuestionView{
		Index:   s.current,
		Total:   len(s.doc.Questions),
		Type:    q.Type,
		Prompt:  q.Prompt,
		Options: append([]string(nil), q.Options...),
		Answer:  s.answers[s.current],
	}
}

// RecordAnswer stores a for the current question, replacing any earlier
// answer. Choice questions take an option index in range; fill-blank
// questions take text.
func (s *Session) RecordAnswer(ctx context.Context, a quiz.Answer) error {
	if s.state != InProgress {
		return &ErrInvalidState{Op: "record answer", State: s.state}
	}

	q := s.doc.Questions[s.current]
	if err := checkAnswer(s.current, q, a); err != nil {
		return err
	}

	s.answers[s.current] = a
	s.sink.Emit(ctx, AnswerRecorded{SessionID: s.id, Index: s.current, Answer: a})
	return nil
}

func checkAnswer(index int, q quiz.Question, a quiz.Answer) error {
	switch {
	case q.Type == quiz.FillBlank:
		if _, ok := a.Text(); !ok {
			return &ErrInvalidAnswer{Index: index, Type: q.Type, Reason: "expected a text answer"}
		}
	default:
		i, ok := a.Index()
		if !ok {
			return &ErrInvalidAnswer{Index: index, Type: q.Type, Reason: "expected an option index"}
		}
		if i < 0 || i >= len(q.Options) {
			return &ErrInvalidAnswer{Index: index, Type: q.Type, Reason: "option index out of range"}
		}
	}
	return nil
}

// Advance moves to the next question. It is a no-op on the last question.
func (s *Session) Advance() error {
	if s.state != InProgress {
		return &ErrInvalidState{Op: "advance", State: s.state}
	}
	if s.current < len(s.doc.Questions)-1 {
		s.current++
	}
	return nil
}

// Retreat moves to the previous question. It is a no-op on the first
// question.
func (s *Session) Retreat() error {
	if s.state != InProgress {
		return &ErrInvalidState{Op: "retreat", State: s.state}
	}
	if s.current > 0 {
		s.current--
	}
	return nil
}

// Submit completes the session and returns the score. Calling Submit
// again returns the same score without emitting another event.
func (s *Session) Submit(ctx context.Context) int {
	if s.state == Completed {
		return s.score
	}

	score := 0
	for i, q := range s.doc.Questions {
		if Matches(q, s.answers[i]) {
			score++
		}
	}

	s.score = score
	s.state = Completed
	s.completedAt = s.now()

	s.sink.Emit(ctx, QuizCompleted{
		SessionID:   s.id,
		Info:        s.info,
		Score:       score,
		Total:       len(s.doc.Questions),
		Document:    s.doc.Clone(),
		Answers:     append([]quiz.Answer(nil), s.answers...),
		StartedAt:   s.startedAt,
		CompletedAt: s.completedAt,
	})
	return score
}

// Score returns the final score, or 0 while the session is in progress.
func (s *Session) Score() int { return s.score }

// Matches reports whether a is the correct answer to q. Fill-blank answers
// are compared case-insensitively after trimming surrounding whitespace.
// An unanswered question never matches.
func Matches(q quiz.Question, a quiz.Answer) bool {
	switch a.Kind() {
	case quiz.AnswerIndex:
		got, _ := a.Index()
		want, ok := q.Correct.Index()
		return ok && q.Type.IsChoice() && got == want
	case quiz.AnswerText:
		got, _ := a.Text()
		want, ok := q.Correct.Text()
		return ok && q.Type == quiz.FillBlank &&
			strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
	}
	return false
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	Question quiz.Question
	Answer   quiz.Answer
	Correct  bool
}

// Results returns the per-question outcome of a completed session.
func (s *Session) Results() ([]QuestionResult, error) {
	if s.state != Completed {
		return nil, &ErrInvalidState{Op: "read results", State: s.state}
	}
	out := make([]QuestionResult, len(s.doc.Questions))
	for i, q := range s.doc.Questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = QuestionResult{
			Question: q,
			Answer:   s.answers[i],
			Correct:  Matches(q, s.answers[i]),
		}
	}
	return out, nil
}

// Answers returns a copy of the recorded answers by question position.
func (s *Session) Answers() []quiz.Answer {
	return append([]quiz.Answer(nil), s.answers...)
}
