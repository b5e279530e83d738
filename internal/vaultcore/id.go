package vaultcore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// canonicalID mirrors the field order spec.md §4.7.1 requires: p, t, c, h.
// encoding/json marshals struct fields in declaration order, which is what
// makes this canonical rather than alphabetical-by-key.
type canonicalID struct {
	P string   `json:"p"`
	T int64    `json:"t"`
	C []string `json:"c"`
	H string   `json:"h"`
}

// ComputeVaultID derives the content-addressed vault id: the lowercase hex
// of the first 16 bytes of SHA-256 over the canonical JSON of
// {p:inline, t:unlockTimeMs, c:[scheme,chainHash], h:envelopeHash}.
func ComputeVaultID(inline string, unlockTimeMs int64, scheme, chainHash, envelope string) (string, error) {
	envelopeSum := sha256.Sum256([]byte(envelope))
	envelopeHash := hex.EncodeToString(envelopeSum[:])

	doc := canonicalID{
		P: inline,
		T: unlockTimeMs,
		C: []string{scheme, chainHash},
		H: envelopeHash,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:16]), nil
}
