// Package beacon defines the external BeaconClient contract (spec.md §4.3)
// and its process-wide chain-info cache. Concrete backends (HTTP, fixture,
// mock) register themselves with internal/registry/beacon the same way the
// teacher's encryption providers register with internal/registry/encrypt.
package beacon

import (
	"context"
	"sync/atomic"

	"github.com/driftlock/timevault/internal/chain"
)

// SignatureLen is the compressed G1 signature length returned by Signature.
const SignatureLen = 48

// Client is the external contract the core consumes. Implementations must be
// reentrancy-safe: two goroutines may call ChainInfo or Signature
// concurrently.
type Client interface {
	// ChainInfo returns the beacon's immutable chain description.
	ChainInfo(ctx context.Context) (chain.BeaconChain, error)
	// Signature returns the round's 48-byte compressed G1 signature. It
	// fails with RoundNotYet before round_time(round), and
	// NetworkUnavailable on transport errors.
	Signature(ctx context.Context, round uint64) ([]byte, error)
}

// CachingClient wraps a Client with spec.md §5's process-wide, write-once
// chain-info cache: the first successful ChainInfo result wins, and any
// concurrent or later fetch compares-and-drops rather than overwriting it.
// A failed fetch is never cached, so a later call may still succeed and
// populate the cache.
type CachingClient struct {
	inner  Client
	cached atomic.Pointer[chain.BeaconChain]
}

// NewCachingClient wraps inner with a write-once chain-info cache.
func NewCachingClient(inner Client) *CachingClient {
	return &CachingClient{inner: inner}
}

func (c *CachingClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	if cached := c.cached.Load(); cached != nil {
		return *cached, nil
	}
	info, err := c.inner.ChainInfo(ctx)
	if err != nil {
		return chain.BeaconChain{}, err
	}
	c.cached.CompareAndSwap(nil, &info)
	return *c.cached.Load(), nil
}

func (c *CachingClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	return c.inner.Signature(ctx, round)
}
