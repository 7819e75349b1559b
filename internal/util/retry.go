package util

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy controls how often and how fast an operation is retried.
// Delay doubles after every failed attempt up to MaxDelay.
type RetryPolicy struct {
	MaxTries int
	Delay    time.Duration
	MaxDelay time.Duration
}

// DefaultRetryPolicy is used for object storage and broker calls.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries: 3,
	Delay:    200 * time.Millisecond,
	MaxDelay: 2 * time.Second,
}

func (p RetryPolicy) tries() int {
	if p.MaxTries <= 0 {
		return 1
	}
	return p.MaxTries
}

func (p RetryPolicy) next(d time.Duration) time.Duration {
	d *= 2
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// RetryWithPolicy calls fn until it succeeds, the policy runs out of tries
// or ctx is done. Between attempts it sleeps for the policy delay.
// Returns ctx.Err() if the context is canceled, otherwise the last error.
func RetryWithPolicy[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := p.Delay
	for i := 0; i < p.tries(); i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if isContextErr(err) {
			return zero, err
		}
		lastErr = err

		if delay > 0 && i < p.tries()-1 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
			delay = p.next(delay)
		}
	}
	return zero, lastErr
}

// RetryErrWithPolicy is RetryWithPolicy for operations without a result.
func RetryErrWithPolicy(ctx context.Context, p RetryPolicy, fn func(context.Context) error) error {
	_, err := RetryWithPolicy(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
