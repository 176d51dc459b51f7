package resilience

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Retry controls backoff behavior. The zero value is not usable; start
// from DefaultRetry.
type Retry struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Backoff is the delay before the first retry; it doubles each time.
	Backoff time.Duration
	// MaxBackoff caps the doubled delay.
	MaxBackoff time.Duration
}

// DefaultRetry suits short synchronous API calls: three tries, starting
// at half a second.
func DefaultRetry() Retry {
	return Retry{
		Attempts:   3,
		Backoff:    500 * time.Millisecond,
		MaxBackoff: 8 * time.Second,
	}
}

// Do runs fn, retrying transient failures per r. Non-transient errors and
// context cancellation return immediately.
func (r Retry) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	delay := r.Backoff

	var lastErr error
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == r.Attempts {
			break
		}

		zap.L().Debug("resilience: retrying after transient error",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		// Jitter up to +25% keeps concurrent callers from retrying in
		// lockstep.
		sleep := delay + time.Duration(rand.Int64N(int64(delay)/4+1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}

		delay *= 2
		if delay > r.MaxBackoff {
			delay = r.MaxBackoff
		}
	}

	return lastErr
}
