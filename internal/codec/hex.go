package codec

import (
	"encoding/hex"

	"github.com/driftlock/timevault/internal/vaulterrors"
)

// EncodeHex renders b as lowercase hex, two characters per byte.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex parses lowercase (or uppercase, for leniency) hex back into
// bytes. Fails with MalformedEncoding on an odd length or any non-hex byte.
func DecodeHex(s string) ([]byte, error) {
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	return out, nil
}
