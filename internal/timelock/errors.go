package timelock

import "errors"

// errNotHashable indicates the configured pairing suite's G1 point type does
// not implement kyber.HashablePoint, which should never happen for
// bls12381.NewBLS12381Suite() — guarded defensively since Encap/Decap must
// never panic on cryptographic input.
var errNotHashable = errors.New("timelock: G1 point type does not support hash-to-curve")
