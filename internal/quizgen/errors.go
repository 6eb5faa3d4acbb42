package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindInvalidParameters Kind = "invalid_parameters"
	KindInvalidCredential Kind = "invalid_credential"
	KindAuth              Kind = "auth"
	KindForbidden         Kind = "forbidden"
	KindBadRequest        Kind = "bad_request"
	KindRateLimited       Kind = "rate_limited"
	KindTransport         Kind = "transport"
	KindUnexpectedStatus  Kind = "unexpected_status"
	KindMalformedResponse Kind = "malformed_response"
	KindInvalidDocument   Kind = "invalid_document"
	KindEmptyQuiz         Kind = "empty_quiz"
	KindCanceled          Kind = "canceled"
	KindUnknown           Kind = "unknown"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageParameters Stage = "parameters"
	StageRequest    Stage = "request"
	StageExtract    Stage = "extract"
	StageValidate   Stage = "validate"
	StageSession    Stage = "session"
)

// Error is the single terminal error returned by Generate.
type Error struct {
	Kind  Kind
	Stage Stage

	// Model is the model the failing request asked for, if any.
	Model string

	Err error
}

// NewError classifies err and wraps it. It lets callers report failures
// that happen outside Generate, such as provider construction, with the
// same messages.
func NewError(stage Stage, model string, err error) *Error {
	return &Error{Kind: classify(err), Stage: stage, Model: model, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("quiz generation failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage describes the failure and what to do about it in terms an
// end user can act on.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidParameters:
		var pe *quiz.ErrInvalidParameters
		if errors.As(e.Err, &pe) {
			return fmt.Sprintf("Check the quiz settings: %s %s.", pe.Field, pe.Reason)
		}
		return "Check the quiz settings and try again."
	case KindInvalidCredential:
		var ce *llm.ErrInvalidCredentialFormat
		if errors.As(e.Err, &ce) {
			return fmt.Sprintf("The %s API key is not valid (%s). Update it in settings.", ce.Provider, ce.Reason)
		}
		return "The API key is not valid. Update it in settings."
	case KindAuth:
		return "The API key was rejected. Check that it is correct and still active."
	case KindForbidden:
		return fmt.Sprintf("Your API key does not have access to %s. Choose a different model.", e.modelName())
	case KindBadRequest:
		return fmt.Sprintf("The request was rejected. Check that %s is a valid model name, or shorten the study material.", e.modelName())
	case KindRateLimited:
		return "The AI service is rate limiting requests. Wait a minute and try again."
	case KindTransport:
		return "Could not reach the AI service. Check your internet connection and the endpoint URL."
	case KindUnexpectedStatus:
		var se *llm.ErrUnexpectedStatus
		if errors.As(e.Err, &se) {
			return fmt.Sprintf("The AI service returned an unexpected error (HTTP %d). Try again later.", se.Status)
		}
		return "The AI service returned an unexpected error. Try again later."
	case KindMalformedResponse:
		return "The AI returned a response that could not be read as a quiz. Try generating again."
	case KindInvalidDocument:
		var de *quiz.ErrInvalidDocument
		if errors.As(e.Err, &de) && len(de.Violations) > 0 {
			return fmt.Sprintf("The AI returned invalid questions (%s). Try generating again.", strings.Join(de.Violations, "; "))
		}
		return "The AI returned invalid questions. Try generating again."
	case KindEmptyQuiz:
		return "The AI returned a quiz with no questions. Try a more specific topic."
	case KindCanceled:
		if errors.Is(e.Err, context.DeadlineExceeded) {
			return "Quiz generation timed out. Try again, or ask for fewer questions."
		}
		return "Quiz generation was canceled."
	}
	return fmt.Sprintf("Quiz generation failed: %v", e.Err)
}

func (e *Error) modelName() string {
	if e.Model == "" {
		return "the selected model"
	}
	return fmt.Sprintf("model %q", e.Model)
}

// classify maps an error from any pipeline stage to its Kind.
func classify(err error) Kind {
	var (
		paramErr     *quiz.ErrInvalidParameters
		credErr      *llm.ErrInvalidCredentialFormat
		authErr      *llm.ErrAuth
		forbiddenErr *llm.ErrForbidden
		badReqErr    *llm.ErrBadRequest
		rateErr      *llm.ErrRateLimit
		transportErr *llm.ErrTransport
		statusErr    *llm.ErrUnexpectedStatus
		respErr      *llm.ErrInvalidResponse
		malformedErr *quiz.ErrMalformedResponse
		docErr       *quiz.ErrInvalidDocument
	)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &paramErr):
		return KindInvalidParameters
	case errors.As(err, &credErr):
		return KindInvalidCredential
	case errors.As(err, &authErr):
		return KindAuth
	case errors.As(err, &forbiddenErr):
		return KindForbidden
	case errors.As(err, &badReqErr):
		return KindBadRequest
	case errors.As(err, &rateErr):
		return KindRateLimited
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &statusErr):
		return KindUnexpectedStatus
	case errors.As(err, &respErr), errors.As(err, &malformedErr):
		return KindMalformedResponse
	case errors.As(err, &docErr):
		return KindInvalidDocument
	case errors.Is(err, session.ErrEmptyQuiz):
		return KindEmptyQuiz
	}
	return KindUnknown
}
