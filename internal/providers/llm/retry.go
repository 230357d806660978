package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/annals/internal/core"
	"github.com/sandevgo/annals/pkg/log"
	"github.com/sandevgo/annals/pkg/retry"
)

// FailureHook observes every failed attempt. Attempts are 1-indexed.
type FailureHook func(attempt int, err error)

// Retrying decorates a Completer with bounded retries and linear backoff.
type Retrying struct {
	next    core.Completer
	retrier *retry.Retrier
	hooks   []FailureHook
}

type RetryOption func(*Retrying)

func WithFailureHook(fn FailureHook) RetryOption {
	return func(r *Retrying) {
		if fn != nil {
			r.hooks = append(r.hooks, fn)
		}
	}
}

func WithRetry(next core.Completer, retrier *retry.Retrier, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:    next,
		retrier: retrier,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrying) Complete(ctx context.Context, messages []core.Message) (string, error) {
	logger := log.FromCtx(ctx)
	maxAttempts := r.retrier.MaxAttempts()

	var (
		text    string
		attempt int
	)
	err := r.retrier.Do(ctx, func() error {
		attempt++

		out, err := r.next.Complete(ctx, messages)
		if err != nil {
			logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_attempts", maxAttempts).
				Msg("completion attempt failed")
			for _, hook := range r.hooks {
				hook(attempt, err)
			}
			return err
		}

		text = out
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("completion failed after %d attempt(s): %w", attempt, err)
	}
	return text, nil
}
