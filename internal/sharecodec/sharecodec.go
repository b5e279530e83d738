// Package sharecodec implements the hash-share codec (spec.md §4.8/6.3):
// a compact JSON shape, one-character keys, encoded as a URL-safe-base64
// fragment so a single vault or a bundle can travel inside a URL without a
// server round-trip. Grounded on the teacher's internal/codec compact-wire
// helpers, generalized from its single-record shape to the single/bundle
// pair here.
package sharecodec

import (
	"encoding/json"

	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/vaulterrors"
	"github.com/driftlock/timevault/internal/vaultcore"
)

// fragment is the compact single-vault shape. Field tags are deliberately
// one character to minimize the encoded fragment's length.
type fragment struct {
	T uint64 `json:"t"`
	R uint64 `json:"r"`
	C string `json:"c"`
	D string `json:"d"`
	N string `json:"n,omitempty"`
}

func toFragment(ref vaultcore.VaultRef) fragment {
	return fragment{
		T: uint64(ref.UnlockTimeMs),
		R: ref.TlockRound,
		C: ref.TlockCiphertext,
		D: ref.InlineData,
		N: ref.Name,
	}
}

// toRef synthesizes a VaultRef from a decoded fragment. created_at_ms is
// always 0: it participates in neither cryptographic state nor id
// computation, so its absence from the wire shape is safe (spec.md §4.8).
// id is supplied out-of-band by the caller since it is never transmitted.
func (f fragment) toRef(id string) vaultcore.VaultRef {
	return vaultcore.VaultRef{
		ID:              id,
		UnlockTimeMs:    int64(f.T),
		TlockRound:      f.R,
		TlockCiphertext: f.C,
		InlineData:      f.D,
		Name:            f.N,
	}
}

// EncodeVault encodes a single vault into a share fragment (without the
// leading '#').
func EncodeVault(ref vaultcore.VaultRef) (string, error) {
	raw, err := json.Marshal(toFragment(ref))
	if err != nil {
		return "", vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	return codec.EncodeB64URL(raw), nil
}

// DecodeVault reverses EncodeVault. id is supplied by the caller (e.g. from
// a URL path) since the fragment never carries it.
func DecodeVault(encoded, id string) (vaultcore.VaultRef, error) {
	raw, err := codec.DecodeB64URL(encoded)
	if err != nil {
		return vaultcore.VaultRef{}, err
	}
	var f fragment
	if err := json.Unmarshal(raw, &f); err != nil {
		return vaultcore.VaultRef{}, vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	return f.toRef(id), nil
}

// EncodeBundle encodes a set of vaults as a share-fragment array.
func EncodeBundle(refs []vaultcore.VaultRef) (string, error) {
	frags := make([]fragment, len(refs))
	for i, ref := range refs {
		frags[i] = toFragment(ref)
	}
	raw, err := json.Marshal(frags)
	if err != nil {
		return "", vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	return codec.EncodeB64URL(raw), nil
}

// DecodeBundle reverses EncodeBundle. ids supplies one out-of-band id per
// entry, in order; len(ids) must equal the number of decoded fragments.
func DecodeBundle(encoded string, ids []string) ([]vaultcore.VaultRef, error) {
	raw, err := codec.DecodeB64URL(encoded)
	if err != nil {
		return nil, err
	}
	var frags []fragment
	if err := json.Unmarshal(raw, &frags); err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindMalformedEncoding, err)
	}
	if len(frags) != len(ids) {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEncoding, "id count does not match fragment count")
	}
	refs := make([]vaultcore.VaultRef, len(frags))
	for i, f := range frags {
		refs[i] = f.toRef(ids[i])
	}
	return refs, nil
}
