// Package timelock implements spec.md's C4: identity-based
// encapsulation/decapsulation of a 32-byte data key against a future drand
// beacon round, per §4.4. Round arithmetic lives in internal/chain. Grounded structurally on
// the teacher's internal/plugin/encrypt/vault provider (wrap a secret to an
// external authority, verify before trusting it) but the authority here is
// the drand beacon rather than a pre-trusted KMS.
package timelock

import (
	"crypto/rand"
	"time"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// Ciphertext is the decoded form of an armored timelock envelope (spec.md
// §3.4 / §6.2): round, U (96-byte G2 element), V and W (32 bytes each).
type Ciphertext struct {
	Round uint64
	U     []byte
	V     []byte
	W     []byte
}

// IsUnlockable reports whether the wall clock has reached tMs. Pure, no
// network.
func IsUnlockable(tMs int64) bool {
	return time.Now().UnixMilli() >= tMs
}

// Encap wraps a 32-byte data key to round r of the given chain. It requires
// only the chain's public key (from BeaconClient.ChainInfo), not a produced
// round signature.
func Encap(c chain.BeaconChain, dataKey [32]byte, round uint64) (*Ciphertext, error) {
	if round < 1 {
		return nil, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "round must be >= 1")
	}

	sigma := make([]byte, 32)
	if _, err := rand.Read(sigma); err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	t, err := h3(sigma, dataKey[:])
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	qPoint := suite.G2().Point()
	if err := qPoint.UnmarshalBinary(c.PublicKey[:]); err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindMalformedEnvelope, err)
	}

	idR, err := hashToG1(roundIdentity(round))
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	// U = t * P, the G2 generator scaled by t.
	u := suite.G2().Point().Mul(t, g2Generator())
	uBytes, err := u.MarshalBinary()
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	// e(id_r, Q)^t == e(t*id_r, Q), avoiding a direct GT exponentiation.
	scaledID := suite.G1().Point().Mul(t, idR)
	gt := suite.Pair(scaledID, qPoint)
	gtBytes, err := gt.MarshalBinary()
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	pad2, err := h2(gtBytes)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	v := xor(sigma, pad2)

	pad4, err := h4(sigma)
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	w := xor(dataKey[:], pad4)

	return &Ciphertext{Round: round, U: uBytes, V: v, W: w}, nil
}

// Decap recovers the 32-byte data key from an envelope given the beacon's
// round signature sigR (a 48-byte compressed G1 point).
func Decap(c chain.BeaconChain, env *Ciphertext, sigR []byte) ([32]byte, error) {
	var zero [32]byte

	if len(env.U) != g2ElementLen {
		return zero, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "U has wrong length")
	}
	if len(env.V) != 32 || len(env.W) != 32 {
		return zero, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "V/W have wrong length")
	}
	if len(sigR) != g1ElementLen {
		return zero, vaulterrors.New(vaulterrors.KindBeaconInvalid, "signature has wrong length")
	}

	qPoint := suite.G2().Point()
	if err := qPoint.UnmarshalBinary(c.PublicKey[:]); err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindMalformedEnvelope, err)
	}

	idR, err := hashToG1(roundIdentity(env.Round))
	if err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	sigPoint := suite.G1().Point()
	if err := sigPoint.UnmarshalBinary(sigR); err != nil {
		return zero, vaulterrors.New(vaulterrors.KindBeaconInvalid, "malformed signature encoding")
	}

	// Verify the beacon signature itself: e(sigR, P) == e(id_r, Q).
	lhs := suite.Pair(sigPoint, g2Generator())
	rhs := suite.Pair(idR, qPoint)
	if !lhs.Equal(rhs) {
		return zero, vaulterrors.New(vaulterrors.KindBeaconInvalid, "pairing check failed")
	}

	uPoint := suite.G2().Point()
	if err := uPoint.UnmarshalBinary(env.U); err != nil {
		return zero, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed U encoding")
	}

	// gt represents e(U, sig_r) == e(id_r, Q)^t when the envelope is honest.
	gt := suite.Pair(sigPoint, uPoint)
	gtBytes, err := gt.MarshalBinary()
	if err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}

	pad2, err := h2(gtBytes)
	if err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	sigma := xor(env.V, pad2)

	pad4, err := h4(sigma)
	if err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	k := xor(env.W, pad4)

	tPrime, err := h3(sigma, k)
	if err != nil {
		return zero, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	recomputedU := suite.G2().Point().Mul(tPrime, g2Generator())
	if !recomputedU.Equal(uPoint) {
		return zero, vaulterrors.New(vaulterrors.KindTimelockAuthFail, "recomputed U mismatch")
	}

	var out [32]byte
	copy(out[:], k)
	return out, nil
}
