package vaulterrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/vaulterrors"
)

func TestKindOf(t *testing.T) {
	err := vaulterrors.New(vaulterrors.KindAEADAuthFail, "tag mismatch")
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindAEADAuthFail, kind)
}

func TestKindOfWrapped(t *testing.T) {
	inner := vaulterrors.New(vaulterrors.KindNetworkUnavailable, "dial tcp: timeout")
	wrapped := errors.Join(errors.New("retry exhausted"), inner)
	kind, ok := vaulterrors.KindOf(wrapped)
	require.False(t, ok, "errors.Join does not expose a linear Unwrap chain")
	_ = kind
}

func TestRetryable(t *testing.T) {
	require.True(t, vaulterrors.New(vaulterrors.KindNetworkUnavailable, "").Retryable())
	require.False(t, vaulterrors.New(vaulterrors.KindAEADAuthFail, "").Retryable())
	require.False(t, vaulterrors.New(vaulterrors.KindRoundNotYet, "").Retryable())
}

func TestVEFInvalidCarriesField(t *testing.T) {
	err := vaulterrors.VEFInvalid("unlock_time_ms", "must be in the future")
	require.Equal(t, vaulterrors.KindVEFInvalid, err.Kind)
	require.Equal(t, "unlock_time_ms", err.Field)
	require.Contains(t, err.Error(), "unlock_time_ms")
}

func TestErrorIsMatchesOnKind(t *testing.T) {
	err := vaulterrors.New(vaulterrors.KindMalformedEncoding, "bad alphabet")
	require.True(t, errors.Is(err, &vaulterrors.Error{Kind: vaulterrors.KindMalformedEncoding}))
	require.False(t, errors.Is(err, &vaulterrors.Error{Kind: vaulterrors.KindAEADAuthFail}))
}
