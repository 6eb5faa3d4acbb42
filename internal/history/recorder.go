package history

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/session"
)

// Recorder is an event.Sink that appends one Record per QuizCompleted
// event. Other events are ignored.
type Recorder struct {
	repo Repo
}

// NewRecorder returns a Recorder writing to repo.
func NewRecorder(repo Repo) *Recorder {
	return &Recorder{repo: repo}
}

var _ event.Sink = (*Recorder)(nil)

func (r *Recorder) Emit(ctx context.Context, e event.Event) {
	completed, ok := e.(session.QuizCompleted)
	if !ok {
		return
	}

	rec := FromCompleted(completed)
	log := logger.WithContext(ctx).WithFields(logrus.Fields{
		"session_id": rec.SessionID,
		"score":      rec.Score,
		"total":      rec.Total,
	})

	// A failed write must not undo the completed quiz.
	if err := r.repo.AppendQuiz(ctx, rec); err != nil {
		log.WithError(err).Warn("failed to save quiz history")
		return
	}
	log.WithField("history_id", rec.ID).Debug("quiz history saved")
}
