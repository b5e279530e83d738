package timelock

import (
	"github.com/drand/kyber"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// Keypair is a synthetic beacon secret/public pair, used by the in-process
// mock beacon backend (spec.md §4.3's "an implementer is free to back this
// by ... an in-process mock") to sign rounds without a real drand network.
type Keypair struct {
	Secret kyber.Scalar
	Public [chain.PublicKeyLen]byte
}

// GenerateKeypair mints a fresh random G2 secret/public pair.
func GenerateKeypair() (Keypair, error) {
	secret := suite.G2().Scalar().Pick(suite.RandomStream())
	pub := suite.G2().Point().Mul(secret, nil)
	raw, err := pub.MarshalBinary()
	if err != nil {
		return Keypair{}, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	var out [chain.PublicKeyLen]byte
	copy(out[:], raw)
	return Keypair{Secret: secret, Public: out}, nil
}

// Sign produces the round signature sigma_r = secret * id_r, the same
// operation a real drand beacon node performs.
func (kp Keypair) Sign(round uint64) ([]byte, error) {
	idR, err := hashToG1(roundIdentity(round))
	if err != nil {
		return nil, err
	}
	sig := suite.G1().Point().Mul(kp.Secret, idR)
	return sig.MarshalBinary()
}
