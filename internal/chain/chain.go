// Package chain describes the immutable parameters of a drand randomness
// beacon (spec.md §3.1) and the pure round arithmetic derived from them
// (spec.md §4.4.1). It has no network dependency; internal/beacon supplies
// the live BeaconChain over the wire.
package chain

import (
	"encoding/hex"
	"fmt"
)

// PublicKeyLen is the compressed BLS12-381 G2 public key length in bytes.
const PublicKeyLen = 96

// Scheme is the only supported drand signature scheme.
const Scheme = "bls-unchained-g1-rfc9380"

// QuicknetChainHash is the hex-encoded chain hash of drand's quicknet
// network, hard-coded per spec.md §6.4.
const QuicknetChainHash = "52db9ba70e0cc0f6eaf7803dd07447a1f5477735fd3f661792ba94600c84e971"

// BeaconChain is the immutable description of a randomness beacon.
type BeaconChain struct {
	PublicKey      [PublicKeyLen]byte
	PeriodSeconds  uint64
	GenesisSeconds uint64
	ChainHash      string
	Scheme         string
}

// Quicknet returns the well-known parameters of drand's quicknet chain, with
// the supplied public key (quicknet's group key is not itself a compile-time
// constant here — callers supply the key fetched via BeaconClient.ChainInfo;
// this function does not check it against QuicknetChainHash).
func Quicknet(publicKey [PublicKeyLen]byte) BeaconChain {
	return BeaconChain{
		PublicKey:      publicKey,
		PeriodSeconds:  3,
		GenesisSeconds: 1692803367,
		ChainHash:      QuicknetChainHash,
		Scheme:         Scheme,
	}
}

// Validate checks the chain's self-consistency: correct scheme tag and a
// well-formed chain hash.
func (c BeaconChain) Validate() error {
	if c.Scheme != Scheme {
		return fmt.Errorf("unsupported scheme %q", c.Scheme)
	}
	raw, err := hex.DecodeString(c.ChainHash)
	if err != nil || len(raw) != 32 {
		return fmt.Errorf("malformed chain_hash %q", c.ChainHash)
	}
	if c.PeriodSeconds == 0 {
		return fmt.Errorf("period_seconds must be positive")
	}
	return nil
}

// RoundTime returns the Unix-seconds timestamp at which round r is produced.
// Round 0 is reserved/undefined; callers must not pass it.
func (c BeaconChain) RoundTime(round uint64) uint64 {
	return c.GenesisSeconds + round*c.PeriodSeconds
}

// RoundForTime returns the smallest round r >= 1 whose RoundTime, in
// milliseconds, is >= tMs.
func (c BeaconChain) RoundForTime(tMs int64) uint64 {
	if tMs <= int64(c.GenesisSeconds)*1000 {
		return 1
	}
	// Smallest r with (genesis + r*period)*1000 >= tMs.
	numerator := tMs - int64(c.GenesisSeconds)*1000
	period := int64(c.PeriodSeconds) * 1000
	r := numerator / period
	if numerator%period != 0 {
		r++
	}
	if r < 1 {
		r = 1
	}
	return uint64(r)
}

// TimeForRound returns the millisecond Unix timestamp at which round r is
// produced.
func (c BeaconChain) TimeForRound(round uint64) int64 {
	return int64(c.RoundTime(round)) * 1000
}
