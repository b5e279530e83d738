package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

func TestB64URLRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("hello world, this is a longer payload to cross a few base64 groups"),
	}
	for _, c := range cases {
		enc := codec.EncodeB64URL(c)
		require.NotContains(t, enc, "=")
		require.NotContains(t, enc, "+")
		require.NotContains(t, enc, "/")
		dec, err := codec.DecodeB64URL(enc)
		require.NoError(t, err)
		require.Equal(t, c, dec)
	}
}

func TestB64URLAcceptsPadded(t *testing.T) {
	dec, err := codec.DecodeB64URL("Zm9v") // "foo", naturally unpadded
	require.NoError(t, err)
	require.Equal(t, []byte("foo"), dec)

	dec, err = codec.DecodeB64URL("Zm8=") // "fo", padded standard form
	require.NoError(t, err)
	require.Equal(t, []byte("fo"), dec)
}

func TestB64URLMalformedLength(t *testing.T) {
	_, err := codec.DecodeB64URL("a") // length 1, remainder 1 mod 4
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindMalformedEncoding, kind)
}

func TestB64URLMalformedAlphabet(t *testing.T) {
	_, err := codec.DecodeB64URL("!!!!")
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindMalformedEncoding, kind)
}

func TestHexRoundTrip(t *testing.T) {
	in := []byte{0x00, 0x01, 0xab, 0xcd, 0xff}
	enc := codec.EncodeHex(in)
	require.Equal(t, "0001abcdff", enc)
	dec, err := codec.DecodeHex(enc)
	require.NoError(t, err)
	require.Equal(t, in, dec)
}

func TestHexMalformed(t *testing.T) {
	_, err := codec.DecodeHex("xyz")
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindMalformedEncoding, kind)

	_, err = codec.DecodeHex("abc") // odd length
	require.Error(t, err)
}

func TestTruncateUTF8(t *testing.T) {
	s := "héllo" // 'é' is 2 bytes
	require.Equal(t, "h", codec.TruncateUTF8(s, 2))
	require.Equal(t, s, codec.TruncateUTF8(s, 100))
}

func TestIsBlank(t *testing.T) {
	require.True(t, codec.IsBlank(""))
	require.True(t, codec.IsBlank("   \t\n"))
	require.False(t, codec.IsBlank("  x "))
}
