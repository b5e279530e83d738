package beacon

import (
	"context"
	"sync"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// FixtureClient replays a fixed, pre-recorded set of round signatures for a
// fixed chain. It is grounded on the retrieved
// other_examples/8d9de897_writerslogic-witnessd DrandConfig shape, but
// answers from an in-memory map instead of a network relay, for
// deterministic tests against known rounds.
type FixtureClient struct {
	Chain chain.BeaconChain

	mu         sync.Mutex
	signatures map[uint64][]byte
}

// NewFixtureClient returns a client serving c and an initially empty set of
// recorded round signatures.
func NewFixtureClient(c chain.BeaconChain) *FixtureClient {
	return &FixtureClient{Chain: c, signatures: map[uint64][]byte{}}
}

// RecordSignature adds a round's signature to the fixture, as if that round
// had already been produced.
func (f *FixtureClient) RecordSignature(round uint64, sig []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signatures[round] = sig
}

func (f *FixtureClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	return f.Chain, nil
}

func (f *FixtureClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sig, ok := f.signatures[round]
	if !ok {
		return nil, vaulterrors.New(vaulterrors.KindRoundNotYet, "round not recorded in fixture")
	}
	return sig, nil
}
