package timelock

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/pairing/bls12381"
)

// suite is the BLS12-381 pairing suite used throughout encapsulation and
// decapsulation. G1 elements (identities, beacon signatures) are 48 bytes
// compressed; G2 elements (the generator, the chain public key, and U) are
// 96 bytes compressed; GT is the pairing's target group. See SPEC_FULL.md for
// why this group assignment was chosen over spec.md's literal byte tables.
var suite = bls12381.NewBLS12381Suite()

const (
	g1ElementLen = 48
	g2ElementLen = 96
)

// g2Generator returns the suite's fixed G2 base point (kyber.Point.Base()).
func g2Generator() kyber.Point {
	return suite.G2().Point().Base()
}

// hashToG1 hashes digest onto a G1 point per RFC 9380, as required by the
// bls-unchained-g1-rfc9380 scheme.
func hashToG1(digest []byte) (kyber.Point, error) {
	hashable, ok := suite.G1().Point().(kyber.HashablePoint)
	if !ok {
		return nil, errNotHashable
	}
	return hashable.Hash(digest), nil
}
