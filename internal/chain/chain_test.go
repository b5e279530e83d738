package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/chain"
)

func quicknet() chain.BeaconChain {
	var pk [chain.PublicKeyLen]byte
	return chain.Quicknet(pk)
}

func TestQuicknetConstants(t *testing.T) {
	c := quicknet()
	require.Equal(t, uint64(3), c.PeriodSeconds)
	require.Equal(t, uint64(1692803367), c.GenesisSeconds)
	require.Equal(t, chain.QuicknetChainHash, c.ChainHash)
	require.Equal(t, "bls-unchained-g1-rfc9380", c.Scheme)
	require.NoError(t, c.Validate())
}

func TestRoundTimeInvariant(t *testing.T) {
	c := quicknet()
	for _, r := range []uint64{1, 2, 100, 1_000_000} {
		require.Equal(t, c.GenesisSeconds+r*c.PeriodSeconds, c.RoundTime(r))
	}
}

func TestRoundForTimeIsMinimalAndSound(t *testing.T) {
	c := quicknet()
	genesisMs := int64(c.GenesisSeconds) * 1000

	require.Equal(t, uint64(1), c.RoundForTime(genesisMs))
	require.Equal(t, uint64(1), c.RoundForTime(genesisMs-1000))

	exactRound := c.RoundForTime(genesisMs + 3000)
	require.Equal(t, c.TimeForRound(exactRound), genesisMs+3000)

	offByOne := c.RoundForTime(genesisMs + 3001)
	require.Greater(t, c.TimeForRound(offByOne), genesisMs+3001-3000)
	require.GreaterOrEqual(t, c.TimeForRound(offByOne), genesisMs+3001)
}

func TestTimeForRoundMatchesRoundTime(t *testing.T) {
	c := quicknet()
	require.Equal(t, int64(c.RoundTime(42))*1000, c.TimeForRound(42))
}

func TestValidateRejectsBadScheme(t *testing.T) {
	c := quicknet()
	c.Scheme = "bls-unchained-g2-rfc9380"
	require.Error(t, c.Validate())
}

func TestValidateRejectsBadChainHash(t *testing.T) {
	c := quicknet()
	c.ChainHash = "not-hex"
	require.Error(t, c.Validate())
}
