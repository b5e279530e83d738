package aead_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/aead"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	blob, err := aead.Encrypt(plaintext, key)
	require.NoError(t, err)
	require.Len(t, blob, aead.NonceSize+len(plaintext)+aead.TagSize)

	got, err := aead.Decrypt(blob, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)

	blob, err := aead.Encrypt(nil, key)
	require.NoError(t, err)
	require.Len(t, blob, 28)

	got, err := aead.Decrypt(blob, key)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)

	a, err := aead.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)
	b, err := aead.Encrypt([]byte("same plaintext"), key)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key1, err := aead.GenerateKey()
	require.NoError(t, err)
	key2, err := aead.GenerateKey()
	require.NoError(t, err)

	blob, err := aead.Encrypt([]byte("secret"), key1)
	require.NoError(t, err)

	_, err = aead.Decrypt(blob, key2)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindAEADAuthFail, kind)
}

func TestDecryptTamperedTagFails(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)
	blob, err := aead.Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	tampered := make(aead.Blob, len(blob))
	copy(tampered, blob)
	tampered[len(tampered)-1] ^= 0xff

	_, err = aead.Decrypt(tampered, key)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindAEADAuthFail, kind)
}

func TestDecryptTruncatedFails(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)
	_, err = aead.Decrypt(aead.Blob{0x01, 0x02}, key)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindAEADAuthFail, kind)
}

func TestZeroWipesKeyAndBlob(t *testing.T) {
	key, err := aead.GenerateKey()
	require.NoError(t, err)
	key.Zero()
	require.Equal(t, aead.DataKey{}, key)

	blob := aead.Blob{1, 2, 3, 4}
	blob.Zero()
	require.Equal(t, aead.Blob{0, 0, 0, 0}, blob)
}
