package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// ErrEmptyQuiz is returned by New for a document without questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// ErrInvalidAnswer is returned when an answer does not fit the current
// question.
type ErrInvalidAnswer struct {
	Index  int
	Type   quiz.QuestionType
	Reason string
}

func (e *ErrInvalidAnswer) Error() string {
	return fmt.Sprintf("invalid answer for question %d (%s): %s", e.Index+1, e.Type, e.Reason)
}

// ErrInvalidState is returned when an operation is not allowed in the
// session's current state.
type ErrInvalidState struct {
	Op    string
	State State
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("cannot %s: session is %s", e.Op, e.State)
}
