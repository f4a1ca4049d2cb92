package services

import (
	"context"
	"time"

	"linkstash/model"
)

// RetryPolicy retries an operation a fixed number of times with a
// fixed delay between attempts. Only failures the classifier accepts
// are retried; validation, not-found and conflict outcomes surface
// immediately.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy mirrors the storage-boundary policy: three
// attempts, one second apart, storage-class failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       time.Second,
		Retryable:   model.IsStorage,
	}
}

// Do runs fn until it succeeds, the attempts run out, or the context
// is done. The last error is returned unchanged.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(p.Delay):
		}
	}
	return err
}
