package quizgen

import (
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/usage"
)

// GenerationStarted is emitted once parameters are accepted.
type GenerationStarted struct {
	Params quiz.Parameters
}

func (GenerationStarted) Name() string { return "generation.started" }

// ModelDowngraded is emitted before the single fallback request.
type ModelDowngraded struct {
	From string
	To   string
}

func (ModelDowngraded) Name() string { return "generation.model_downgraded" }

// GenerationSucceeded carries the new session. Charge is zero when the
// endpoint did not report usage.
type GenerationSucceeded struct {
	Session *session.Session
	Usage   llm.Usage
	Charge  usage.Charge
}

func (GenerationSucceeded) Name() string { return "generation.succeeded" }

// GenerationFailed carries the terminal error.
type GenerationFailed struct {
	Err *Error
}

func (GenerationFailed) Name() string { return "generation.failed" }
