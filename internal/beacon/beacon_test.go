package beacon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func TestMockClientSignsAnyRound(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)

	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, chain.QuicknetChainHash, c.ChainHash)

	sig, err := mock.Signature(ctx, 123)
	require.NoError(t, err)
	require.Len(t, sig, beacon.SignatureLen)
}

func TestMockClientRejectsRoundZero(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	_, err = mock.Signature(context.Background(), 0)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindRoundNotYet, kind)
}

func TestFixtureClientServesOnlyRecordedRounds(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	info, err := mock.ChainInfo(context.Background())
	require.NoError(t, err)

	fixture := beacon.NewFixtureClient(info)
	_, err = fixture.Signature(context.Background(), 5)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindRoundNotYet, kind)

	sig, err := mock.Signature(context.Background(), 5)
	require.NoError(t, err)
	fixture.RecordSignature(5, sig)

	got, err := fixture.Signature(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, sig, got)
}

type countingClient struct {
	calls int
	chain chain.BeaconChain
	err   error
}

func (c *countingClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	c.calls++
	if c.err != nil {
		return chain.BeaconChain{}, c.err
	}
	return c.chain, nil
}

func (c *countingClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	return nil, nil
}

func TestCachingClientCachesOnlySuccess(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	info, err := mock.ChainInfo(context.Background())
	require.NoError(t, err)

	failing := &countingClient{err: vaulterrors.New(vaulterrors.KindNetworkUnavailable, "down")}
	caching := beacon.NewCachingClient(failing)

	_, err = caching.ChainInfo(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, failing.calls)

	failing.err = nil
	failing.chain = info
	got, err := caching.ChainInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, info.ChainHash, got.ChainHash)
	require.Equal(t, 2, failing.calls)

	_, err = caching.ChainInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, failing.calls, "third call must hit the cache, not the inner client")
}
