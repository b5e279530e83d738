// Package retry implements spec.md's C10 bounded exponential backoff with
// jitter, used by the beacon client and any durable-store wrapper. Only
// vaulterrors.KindNetworkUnavailable failures are retried; every other kind
// surfaces on the first attempt.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/driftlock/timevault/internal/metrics"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// Policy holds the bounded-exponential-backoff parameters.
type Policy struct {
	MaxAttempts int           // in [1, 5], default 3
	BaseDelay   time.Duration // default 1s
	MaxDelay    time.Duration // default 10s
}

// DefaultPolicy matches spec.md's default parameters.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}
}

// Do runs fn, retrying only on a NetworkUnavailable failure, up to
// p.MaxAttempts total attempts. Delay before attempt i>1 is
// min(MaxDelay, BaseDelay*2^(i-2) + U[0,500ms)).
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	if attempts > 5 {
		attempts = 5
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		if i > 1 {
			delay := backoffDelay(p, i)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		err := fn(ctx)
		if err == nil {
			observeAttempt("success")
			return nil
		}
		lastErr = err
		kind, ok := vaulterrors.KindOf(err)
		if !ok || kind != vaulterrors.KindNetworkUnavailable {
			observeAttempt("non_retryable")
			return err
		}
		observeAttempt("retryable")
	}
	return lastErr
}

func observeAttempt(outcome string) {
	if metrics.RetryAttempts == nil {
		return
	}
	metrics.RetryAttempts.WithLabelValues(string(vaulterrors.KindNetworkUnavailable), outcome).Inc()
}

func backoffDelay(p Policy, attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	max := p.MaxDelay
	if max <= 0 {
		max = 10 * time.Second
	}
	exp := base * time.Duration(math.Pow(2, float64(attempt-2)))
	jitter := time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
	delay := exp + jitter
	if delay > max {
		delay = max
	}
	return delay
}
