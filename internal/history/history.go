// Package history keeps the record of completed quizzes and derives the
// learner's dashboard stats from it.
package history

import (
	"context"
	"math"
	"time"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
)

// Record is one completed quiz.
type Record struct {
	ID          int64
	SessionID   string
	Title       string
	Topic       string
	Difficulty  quiz.Difficulty
	Model       string
	Score       int
	Total       int
	Document    *quiz.Document
	Answers     []quiz.Answer
	StartedAt   time.Time
	CompletedAt time.Time
}

// Percent returns the score as a whole percentage.
func (r Record) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// Duration returns how long the quiz took.
func (r Record) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.CompletedAt.Before(r.StartedAt) {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// FromCompleted builds a Record from a QuizCompleted event.
func FromCompleted(e session.QuizCompleted) *Record {
	r := &Record{
		SessionID:   e.SessionID,
		Topic:       e.Info.Topic,
		Difficulty:  e.Info.Difficulty,
		Model:       e.Info.Model,
		Score:       e.Score,
		Total:       e.Total,
		Document:    e.Document,
		Answers:     e.Answers,
		StartedAt:   e.StartedAt,
		CompletedAt: e.CompletedAt,
	}
	if e.Document != nil {
		r.Title = e.Document.Title
	}
	return r
}

// Repo stores Records.
type Repo interface {
	AppendQuiz(ctx context.Context, r *Record) error

	// ListQuizzes returns the most recent records first. limit <= 0 means
	// all.
	ListQuizzes(ctx context.Context, limit int) ([]Record, error)

	// GetQuiz returns nil when id does not exist.
	GetQuiz(ctx context.Context, id int64) (*Record, error)

	// ClearQuizzes deletes every record and returns how many were removed.
	ClearQuizzes(ctx context.Context) (int64, error)
}

// Summary is the dashboard view over all records.
type Summary struct {
	TotalQuizzes int

	// AverageScore is the mean of per-quiz percentages, rounded.
	AverageScore int
	BestScore    int

	// StreakDays counts consecutive calendar days with a completed quiz,
	// ending today or yesterday.
	StreakDays int

	StudyTime time.Duration
}

// Summarize computes a Summary. Calendar days are taken in now's location.
func Summarize(records []Record, now time.Time) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	days := make(map[time.Time]bool, len(records))
	var pctSum int
	for _, r := range records {
		s.TotalQuizzes++
		p := r.Percent()
		pctSum += p
		if p > s.BestScore {
			s.BestScore = p
		}
		s.StudyTime += r.Duration()
		days[day(r.CompletedAt.In(now.Location()))] = true
	}
	s.AverageScore = int(math.Round(float64(pctSum) / float64(s.TotalQuizzes)))

	d := day(now)
	if !days[d] {
		d = d.AddDate(0, 0, -1)
	}
	for days[d] {
		s.StreakDays++
		d = d.AddDate(0, 0, -1)
	}
	return s
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
