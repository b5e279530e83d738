package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/retry"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func TestDoSucceedsWithoutRetry(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.DefaultPolicy(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestDoRetriesOnlyNetworkUnavailable(t *testing.T) {
	calls := 0
	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return vaulterrors.New(vaulterrors.KindNetworkUnavailable, "dial timeout")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	policy := retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	err := retry.Do(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return vaulterrors.New(vaulterrors.KindNetworkUnavailable, "still down")
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestDoDoesNotRetryNonTransientKinds(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), retry.DefaultPolicy(), func(ctx context.Context) error {
		calls++
		return vaulterrors.New(vaulterrors.KindRoundNotYet, "round not produced yet")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestDoHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: time.Second}
	calls := 0
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		calls++
		return vaulterrors.New(vaulterrors.KindNetworkUnavailable, "down")
	})
	require.Error(t, err)
	require.LessOrEqual(t, calls, 1)
}
