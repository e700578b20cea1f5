// Package retrier provides exponential backoff for transient failures,
// primarily around exchange API calls.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 15 * time.Second
	defaultAttempts  = 4
)

// Retrier retries a failing call with exponentially growing, jittered delays.
type Retrier struct {
	baseDelay time.Duration
	maxDelay  time.Duration
	attempts  int
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(r *Retrier) { r.baseDelay = d }
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(r *Retrier) { r.maxDelay = d }
}

// WithAttempts sets the total number of attempts, including the first call.
func WithAttempts(n int) Option {
	return func(r *Retrier) { r.attempts = n }
}

// New creates a Retrier with sensible defaults for network calls.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		baseDelay: defaultBaseDelay,
		maxDelay:  defaultMaxDelay,
		attempts:  defaultAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is cancelled.
// The last error is returned when all attempts fail.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := r.baseDelay

	var err error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			// up to ±25% jitter keeps concurrent callers from retrying in lockstep
			jittered := delay + time.Duration((rand.Float64()-0.5)*0.5*float64(delay))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(jittered):
			}

			delay *= 2
			if delay > r.maxDelay {
				delay = r.maxDelay
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

// DoWithData is Do for functions that return a value alongside the error.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var ferr error
		result, ferr = fn(ctx)
		return ferr
	})

	return result, err
}
