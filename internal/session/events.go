package session

import (
	"time"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// AnswerRecorded is emitted after RecordAnswer stores an answer.
type AnswerRecorded struct {
	SessionID string
	Index     int
	Answer    quiz.Answer
}

func (AnswerRecorded) Name() string { return "quiz.answer_recorded" }

// QuizCompleted is emitted once, when Submit first completes a session.
type QuizCompleted struct {
	SessionID   string
	Info        Info
	Score       int
	Total       int
	Document    *quiz.Document
	Answers     []quiz.Answer
	StartedAt   time.Time
	CompletedAt time.Time
}

func (QuizCompleted) Name() string { return "quiz.completed" }

// Percent returns the score as a whole percentage.
func (e QuizCompleted) Percent() int {
	if e.Total == 0 {
		return 0
	}
	return e.Score * 100 / e.Total
}
