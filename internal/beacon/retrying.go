package beacon

import (
	"context"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/retry"
)

// RetryingClient wraps a Client with spec.md §4.10's bounded-backoff policy
// (C10): only NetworkUnavailable failures are retried, which in practice
// means transient relay timeouts on HTTPClient — FixtureClient and
// MockClient never fail that way, so wrapping them costs nothing beyond one
// extra call frame.
type RetryingClient struct {
	inner  Client
	policy retry.Policy
}

// NewRetryingClient wraps inner with p, retrying ChainInfo and Signature
// independently per call.
func NewRetryingClient(inner Client, p retry.Policy) *RetryingClient {
	return &RetryingClient{inner: inner, policy: p}
}

func (r *RetryingClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	var out chain.BeaconChain
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		info, err := r.inner.ChainInfo(ctx)
		if err != nil {
			return err
		}
		out = info
		return nil
	})
	return out, err
}

func (r *RetryingClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	var out []byte
	err := retry.Do(ctx, r.policy, func(ctx context.Context) error {
		sig, err := r.inner.Signature(ctx, round)
		if err != nil {
			return err
		}
		out = sig
		return nil
	})
	return out, err
}
