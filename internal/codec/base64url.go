// Package codec implements the byte codecs spec.md calls out as C1: URL-safe
// base64 with no padding, and lowercase hex. Both are pure, total, and
// allocate at most one output buffer per call.
package codec

import (
	"encoding/base64"

	"github.com/driftlock/timevault/internal/vaulterrors"
)

// EncodeB64URL encodes b as unpadded URL-safe base64.
func EncodeB64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeB64URL decodes s, which may be padded or unpadded URL-safe base64.
// It restores the standard alphabet, reinstates padding, and decodes.
// Fails with a MalformedEncoding error on any non-alphabet byte or a length
// with remainder 1 mod 4.
func DecodeB64URL(s string) ([]byte, error) {
	if len(s)%4 == 1 {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEncoding,
			"invalid base64 length")
	}
	standard := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '-':
			standard[i] = '+'
		case '_':
			standard[i] = '/'
		default:
			standard[i] = s[i]
		}
	}
	trimmed := string(standard)
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '=' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if rem := len(trimmed) % 4; rem != 0 {
		trimmed += "===="[:4-rem]
	}
	out, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	return out, nil
}
