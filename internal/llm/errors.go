package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentialFormat indicates the configured API key cannot be a
// valid key for the provider. It is returned before any network call.
type ErrInvalidCredentialFormat struct {
	Provider string
	Reason   string
}

func (e *ErrInvalidCredentialFormat) Error() string {
	return fmt.Sprintf("invalid %s API key format: %s", e.Provider, e.Reason)
}

// ErrAuth indicates the endpoint rejected the credential (401).
type ErrAuth struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrAuth) Error() string {
	return statusMessage("authentication failed", e.Status, e.Body)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrForbidden indicates the credential lacks access to the model or
// endpoint (403).
type ErrForbidden struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrForbidden) Error() string {
	return statusMessage("access forbidden", e.Status, e.Body)
}

func (e *ErrForbidden) Unwrap() error { return e.Err }

// ErrBadRequest indicates the endpoint rejected the request body (400),
// usually an unknown model or an oversized prompt.
type ErrBadRequest struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrBadRequest) Error() string {
	return statusMessage("bad request", e.Status, e.Body)
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
// Retries is the number of automatic retries already spent; once the
// retry decorator gives up this is the terminal rate-limit-exceeded error.
type ErrRateLimit struct {
	Status  int
	Body    string
	Retries int
	Err     error
}

func (e *ErrRateLimit) Error() string {
	msg := statusMessage("rate limited", e.Status, e.Body)
	if e.Retries > 0 {
		msg = fmt.Sprintf("%s (after %d retries)", msg, e.Retries)
	}
	return msg
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnexpectedStatus covers any other non-2xx response.
type ErrUnexpectedStatus struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrUnexpectedStatus) Error() string {
	return statusMessage("unexpected response", e.Status, e.Body)
}

func (e *ErrUnexpectedStatus) Unwrap() error { return e.Err }

// ErrTransport indicates the request never produced an HTTP response:
// DNS, dial, TLS or connection failures.
type ErrTransport struct {
	Err error
}

func (e *ErrTransport) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not reach LLM endpoint: %v", e.Err)
	}
	return "could not reach LLM endpoint"
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx reply that carried no usable
// assistant message.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

func statusMessage(what string, status int, body string) string {
	if body == "" {
		return fmt.Sprintf("%s (HTTP %d)", what, status)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", what, status, body)
}

// errorForStatus maps an HTTP status to the error taxonomy. A zero status
// means no response was received.
func errorForStatus(status int, body string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case status == 0:
		return &ErrTransport{Err: err}
	case status == http.StatusUnauthorized:
		return &ErrAuth{Status: status, Body: body, Err: err}
	case status == http.StatusForbidden:
		return &ErrForbidden{Status: status, Body: body, Err: err}
	case status == http.StatusBadRequest:
		return &ErrBadRequest{Status: status, Body: body, Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Status: status, Body: body, Err: err}
	default:
		return &ErrUnexpectedStatus{Status: status, Body: body, Err: err}
	}
}
