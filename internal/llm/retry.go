package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizcraft/internal/logger"
)

// RetryPolicy describes how rate-limited requests are retried. It is plain
// data so the schedule can be inspected and replaced in tests.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// Delay returns the wait before retry number n (0-based).
	Delay func(n int) time.Duration

	// Sleep waits for d or until ctx is done. Nil means a real timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries twice, waiting 2s then 4s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		Delay:      ExponentialDelay(2 * time.Second),
	}
}

// ExponentialDelay returns a delay function computing 2^n * base.
func ExponentialDelay(base time.Duration) func(n int) time.Duration {
	return func(n int) time.Duration {
		return base * time.Duration(1<<n)
	}
}

func (p RetryPolicy) wait(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryProvider is a decorator that retries rate-limited requests with
// exponential backoff. Every other error is returned immediately.
type RetryProvider struct {
	inner  Provider
	policy RetryPolicy
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.Delay == nil {
		policy.Delay = DefaultRetryPolicy().Delay
	}
	return &RetryProvider{inner: p, policy: policy}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	for retry := 0; ; retry++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			return nil, err
		}
		if retry >= r.policy.MaxRetries {
			rl.Retries = retry
			return nil, err
		}

		wait := r.policy.Delay(retry)
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"retry": retry + 1,
			"wait":  wait.String(),
			"model": modelFor(req, r.inner.ModelID(), nil),
		}).Warn("rate limited by LLM endpoint, backing off")

		if err := r.policy.wait(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) Unwrap() Provider {
	return r.inner
}
