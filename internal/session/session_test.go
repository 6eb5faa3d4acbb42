package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/quiz"
)

func testDocument() *quiz.Document {
	return &quiz.Document{
		Title: "Geography",
		Questions: []quiz.Question{
			{
				ID:      1,
				Type:    quiz.MultipleChoice,
				Prompt:  "Largest ocean?",
				Options: []string{"A) Atlantic", "B) Pacific", "C) Indian", "D) Arctic"},
				Correct: quiz.IndexAnswer(1),
			},
			{
				ID:      2,
				Type:    quiz.TrueFalse,
				Prompt:  "The Nile flows north.",
				Options: []string{"True", "False"},
				Correct: quiz.IndexAnswer(0),
			},
			{
				ID:      3,
				Type:    quiz.FillBlank,
				Prompt:  "The capital of France is ____.",
				Correct: quiz.TextAnswer("paris"),
			},
		},
	}
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := New(testDocument(), opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNew_EmptyQuiz(t *testing.T) {
	if _, err := New(&quiz.Document{Title: "empty"}); !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz for nil document, got %v", err)
	}
}

func TestNew_InitialState(t *testing.T) {
	s := newTestSession(t)

	if s.State() != InProgress {
		t.Errorf("state = %v, want InProgress", s.State())
	}
	if cur, total := s.Progress(); cur != 1 || total != 3 {
		t.Errorf("progress = (%d, %d), want (1, 3)", cur, total)
	}
	for i, a := range s.Answers() {
		if a.IsSet() {
			t.Errorf("answer %d should be unset", i)
		}
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.ID() == "" {
		t.Error("expected generated session ID")
	}
}

func TestNew_CopiesDocument(t *testing.T) {
	doc := testDocument()
	s, err := New(doc)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	doc.Questions[0].Options[1] = "changed"
	if s.Current().Options[1] != "B) Pacific" {
		t.Fatal("session shares the caller's document")
	}
}

func TestAdvanceRetreat_Bounds(t *testing.T) {
	s := newTestSession(t)

	if err := s.Retreat(); err != nil {
		t.Fatalf("retreat at start: %v", err)
	}
	if cur, _ := s.Progress(); cur != 1 {
		t.Fatalf("retreat at index 0 moved to %d", cur)
	}

	for i := 0; i < 10; i++ {
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		cur, total := s.Progress()
		if cur < 1 || cur > total {
			t.Fatalf("position %d outside [1, %d]", cur, total)
		}
	}
	if cur, _ := s.Progress(); cur != 3 {
		t.Fatalf("expected to stop at last question, got %d", cur)
	}

	for i := 0; i < 10; i++ {
		if err := s.Retreat(); err != nil {
			t.Fatalf("retreat: %v", err)
		}
	}
	if cur, _ := s.Progress(); cur != 1 {
		t.Fatalf("expected to stop at first question, got %d", cur)
	}
}

func TestRecordAnswer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		answer  quiz.Answer
		wantErr bool
	}{
		{"mc valid", 0, quiz.IndexAnswer(3), false},
		{"mc out of range", 0, quiz.IndexAnswer(4), true},
		{"mc negative", 0, quiz.IndexAnswer(-1), true},
		{"mc text", 0, quiz.TextAnswer("B"), true},
		{"mc none", 0, quiz.Answer{}, true},
		{"tf valid", 1, quiz.IndexAnswer(1), false},
		{"tf out of range", 1, quiz.IndexAnswer(2), true},
		{"fill valid", 2, quiz.TextAnswer("Paris"), false},
		{"fill index", 2, quiz.IndexAnswer(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			for i := 0; i < tt.index; i++ {
				s.Advance()
			}
			err := s.RecordAnswer(context.Background(), tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RecordAnswer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidAnswer
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidAnswer, got %T", err)
				}
				if invalid.Index != tt.index {
					t.Errorf("index = %d, want %d", invalid.Index, tt.index)
				}
				if s.Current().Answer.IsSet() {
					t.Error("invalid answer must not be stored")
				}
			}
		})
	}
}

func TestRecordAnswer_Overwrites(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	s.RecordAnswer(ctx, quiz.IndexAnswer(0))
	s.RecordAnswer(ctx, quiz.IndexAnswer(1))

	if got, _ := s.Current().Answer.Index(); got != 1 {
		t.Fatalf("answer = %d, want 1", got)
	}
}

func TestSubmit_ScoresAndIsIdempotent(t *testing.T) {
	var rec event.Recorder
	s := newTestSession(t, WithSink(&rec))
	ctx := context.Background()

	s.RecordAnswer(ctx, quiz.IndexAnswer(1)) // correct
	s.Advance()
	s.RecordAnswer(ctx, quiz.IndexAnswer(1)) // wrong
	s.Advance()
	s.RecordAnswer(ctx, quiz.TextAnswer(" Paris ")) // correct, case and space

	first := s.Submit(ctx)
	second := s.Submit(ctx)

	if first != 2 || second != 2 {
		t.Fatalf("scores = %d, %d, want 2, 2", first, second)
	}
	if s.State() != Completed {
		t.Fatalf("state = %v, want Completed", s.State())
	}

	var completed int
	for _, e := range rec.Events() {
		if c, ok := e.(QuizCompleted); ok {
			completed++
			if c.Score != 2 || c.Total != 3 {
				t.Errorf("event score = %d/%d", c.Score, c.Total)
			}
			if c.Percent() != 66 {
				t.Errorf("percent = %d, want 66", c.Percent())
			}
		}
	}
	if completed != 1 {
		t.Fatalf("QuizCompleted emitted %d times, want 1", completed)
	}
}

func TestSubmit_UnansweredNeverMatches(t *testing.T) {
	s := newTestSession(t)
	if got := s.Submit(context.Background()); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestCompleted_RejectsMutation(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()
	s.Submit(ctx)

	checks := map[string]error{
		"record":  s.RecordAnswer(ctx, quiz.IndexAnswer(0)),
		"advance": s.Advance(),
		"retreat": s.Retreat(),
	}
	for op, err := range checks {
		var invalid *ErrInvalidState
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected ErrInvalidState, got %v", op, err)
		}
	}

	if cur, total := s.Progress(); cur != 1 || total != 3 {
		t.Errorf("progress after completion = (%d, %d)", cur, total)
	}
}

func TestMatches_FillBlank(t *testing.T) {
	q := quiz.Question{Type: quiz.FillBlank, Correct: quiz.TextAnswer("  Mitochondria")}

	tests := []struct {
		answer string
		want   bool
	}{
		{"mitochondria", true},
		{" MITOCHONDRIA ", true},
		{"\tMitochondria\n", true},
		{"mitochondrion", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Matches(q, quiz.TextAnswer(tt.answer)); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
	if Matches(q, quiz.Answer{}) {
		t.Error("unanswered must not match")
	}
}

func TestResults(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.Results(); err == nil {
		t.Fatal("expected error before completion")
	}

	s.RecordAnswer(ctx, quiz.IndexAnswer(1))
	s.Submit(ctx)

	results, err := s.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	if !results[0].Correct || results[1].Correct || results[2].Correct {
		t.Errorf("unexpected correctness: %v %v %v", results[0].Correct, results[1].Correct, results[2].Correct)
	}
}

func TestAnswerRecordedEvent(t *testing.T) {
	var rec event.Recorder
	s := newTestSession(t, WithSink(&rec), WithID("fixed-id"))
	s.Advance()
	s.RecordAnswer(context.Background(), quiz.IndexAnswer(0))

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	got, ok := events[0].(AnswerRecorded)
	if !ok {
		t.Fatalf("event type %T", events[0])
	}
	if got.SessionID != "fixed-id" || got.Index != 1 {
		t.Errorf("event = %+v", got)
	}
}

func TestElapsed(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := newTestSession(t, WithClock(clock))

	now = now.Add(90 * time.Second)
	if s.Elapsed() != 90*time.Second {
		t.Errorf("elapsed = %v, want 90s", s.Elapsed())
	}
	s.Submit(context.Background())

	now = now.Add(time.Hour)
	if s.Elapsed() != 90*time.Second {
		t.Errorf("elapsed after completion = %v, want 90s", s.Elapsed())
	}
}
