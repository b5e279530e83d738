package sharecodec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/localindex"
	"github.com/driftlock/timevault/internal/sharecodec"
	"github.com/driftlock/timevault/internal/vaultcore"
)

func armTestVault(t *testing.T, plaintext string) vaultcore.VaultRef {
	t.Helper()
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	return armTestVaultWith(t, mock, plaintext)
}

// armTestVaultWith seals plaintext against mock, so the returned ref unlocks
// only with that same mock's signatures.
func armTestVaultWith(t *testing.T, mock *beacon.MockClient, plaintext string) vaultcore.VaultRef {
	t.Helper()
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte(plaintext), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)
	index := localindex.NewMemory()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()
	return *ref
}

func TestEncodeDecodeVaultRoundTrip(t *testing.T) {
	ref := armTestVault(t, "hello")

	encoded, err := sharecodec.EncodeVault(ref)
	require.NoError(t, err)

	decoded, err := sharecodec.DecodeVault(encoded, ref.ID)
	require.NoError(t, err)

	want := ref
	want.CreatedAtMs = 0
	require.Equal(t, want, decoded)
}

func TestEncodeDecodeVaultUnlocksToSamePlaintext(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	ref := armTestVaultWith(t, mock, "hello")
	encoded, err := sharecodec.EncodeVault(ref)
	require.NoError(t, err)
	decoded, err := sharecodec.DecodeVault(encoded, ref.ID)
	require.NoError(t, err)

	originalPlaintext, err := vaultcore.Unlock(ctx, c, mock, nil, ref)
	require.NoError(t, err)
	roundTrippedPlaintext, err := vaultcore.Unlock(ctx, c, mock, nil, decoded)
	require.NoError(t, err)
	require.Equal(t, originalPlaintext, roundTrippedPlaintext)
}

func TestEncodeDecodeBundleRoundTrip(t *testing.T) {
	refA := armTestVault(t, "a")
	refB := armTestVault(t, "b")

	encoded, err := sharecodec.EncodeBundle([]vaultcore.VaultRef{refA, refB})
	require.NoError(t, err)

	decoded, err := sharecodec.DecodeBundle(encoded, []string{refA.ID, refB.ID})
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.Equal(t, refA.ID, decoded[0].ID)
	require.Equal(t, refB.ID, decoded[1].ID)
}

func TestDecodeBundleRejectsMismatchedIDCount(t *testing.T) {
	refA := armTestVault(t, "a")
	encoded, err := sharecodec.EncodeBundle([]vaultcore.VaultRef{refA})
	require.NoError(t, err)

	_, err = sharecodec.DecodeBundle(encoded, []string{"one", "two"})
	require.Error(t, err)
}

func TestDecodeVaultRejectsMalformedFragment(t *testing.T) {
	_, err := sharecodec.DecodeVault("not-valid-base64!!", "id")
	require.Error(t, err)
}
